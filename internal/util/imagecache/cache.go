// Package imagecache keeps downloaded source images on disk, keyed by URL.
package imagecache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	httputil "github.com/jmylchreest/swatch/internal/util/http"
)

// maxExtLen bounds the extension copied from the URL path.
const maxExtLen = 5

type CacheOptions struct {
	// CacheDir defaults to DefaultCacheDir().
	CacheDir string

	// AllowOverwrite forces a fresh download even when a copy exists.
	AllowOverwrite bool

	Fetch httputil.FetchOptions
}

// DefaultCacheDir returns <user cache dir>/swatch/images, falling back to
// ~/.cache when the platform has no cache directory.
func DefaultCacheDir() (string, error) {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "swatch", "images"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine cache directory: %w", err)
	}
	return filepath.Join(home, ".cache", "swatch", "images"), nil
}

// Filename maps rawURL to a stable name: 32 hex digits of its SHA-256
// followed by the lower-cased path extension, or ".img".
func Filename(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))

	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	}
	ext := strings.ToLower(path.Ext(p))
	if ext == "" || len(ext) > maxExtLen {
		ext = ".img"
	}
	return hex.EncodeToString(sum[:16]) + ext
}

// DownloadAndCache returns the path of the local copy of rawURL, fetching it
// when no copy exists yet.
func DownloadAndCache(ctx context.Context, rawURL string, opts CacheOptions) (string, error) {
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return "", errors.New("invalid URL: must start with http:// or https://")
	}

	dir := opts.CacheDir
	if dir == "" {
		var err error
		if dir, err = DefaultCacheDir(); err != nil {
			return "", err
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil { // #nosec G301
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}

	dest := filepath.Join(dir, Filename(rawURL))
	if !opts.AllowOverwrite && exists(dest) {
		return dest, nil
	}

	data, err := httputil.Fetch(ctx, rawURL, opts.Fetch)
	if err != nil {
		return "", fmt.Errorf("failed to download image: %w", err)
	}
	if err := writeAtomic(dest, data); err != nil {
		return "", err
	}
	return dest, nil
}

func exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

// writeAtomic writes data beside dest and renames it into place so readers
// never observe a partial file.
func writeAtomic(dest string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".download-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write cached image: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to write cached image: %w", err)
	}
	if err = os.Rename(tmp.Name(), dest); err != nil {
		return fmt.Errorf("failed to move cached image into place: %w", err)
	}
	return nil
}
