// Package security validates untrusted inputs before swatch acts on them.
package security

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
)

// ValidateImageURL checks that raw is an http(s) URL with a host. Unless
// allowPrivate is set, hosts that are localhost or literal loopback, private,
// link-local or unspecified addresses are rejected to limit SSRF.
// Hostnames are not resolved.
func ValidateImageURL(raw string, allowPrivate bool) error {
	if raw == "" {
		return fmt.Errorf("empty URL")
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return fmt.Errorf("invalid URL protocol (only http:// and https:// allowed): %s", parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("URL must have a hostname")
	}

	if !allowPrivate && isLocalOrPrivateHost(parsed.Hostname()) {
		return fmt.Errorf("URL cannot point to local or private hosts: %s", parsed.Hostname())
	}
	return nil
}

// ValidateExecutable checks that path names an executable regular file.
func ValidateExecutable(path string) error {
	if path == "" {
		return fmt.Errorf("empty plugin path")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("plugin not found: %s", path)
		}
		return fmt.Errorf("failed to stat plugin: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("plugin is not a regular file: %s", path)
	}
	if info.Mode().Perm()&0o111 == 0 {
		return fmt.Errorf("plugin is not executable: %s", path)
	}
	return nil
}

func isLocalOrPrivateHost(host string) bool {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	if host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return true
	}

	ip := net.ParseIP(host)
	if ip == nil {
		return false
	}
	return ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() || ip.IsUnspecified()
}
