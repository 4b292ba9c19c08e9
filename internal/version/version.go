// Package version holds build metadata injected at link time:
//
//	go build -ldflags "-X github.com/jmylchreest/swatch/internal/version.Version=v1.2.3 \
//	  -X github.com/jmylchreest/swatch/internal/version.Commit=$(git rev-parse HEAD) \
//	  -X github.com/jmylchreest/swatch/internal/version.Date=$(date -u +%FT%TZ)"
package version

import (
	"fmt"
	"runtime"
	"strings"
)

const unset = "unknown"

var (
	Version = "dev"
	Commit  = unset
	Date    = unset
)

// Build describes the running binary.
type Build struct {
	Version  string `json:"version"`
	Commit   string `json:"commit,omitempty"`
	Date     string `json:"date,omitempty"`
	Go       string `json:"go"`
	Platform string `json:"platform"`
}

// Get returns the build metadata. Unset commit and date are left empty.
func Get() Build {
	b := Build{
		Version:  Version,
		Go:       runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
	}
	if Commit != unset {
		b.Commit = Commit
	}
	if Date != unset {
		b.Date = Date
	}
	return b
}

// String renders b for `swatch version`.
func (b Build) String() string {
	var details []string
	if b.Commit != "" {
		details = append(details, "commit: "+shortCommit(b.Commit))
	}
	if b.Date != "" {
		details = append(details, "built: "+b.Date)
	}
	details = append(details, b.Go, b.Platform)
	return fmt.Sprintf("swatch version %s (%s)", b.Version, strings.Join(details, ", "))
}

// String is shorthand for Get().String().
func String() string {
	return Get().String()
}

// Short returns the bare version.
func Short() string {
	return Version
}

// UserAgent is sent on outbound image requests.
func UserAgent() string {
	return "swatch/" + Version
}

func shortCommit(c string) string {
	if len(c) > 8 {
		return c[:8]
	}
	return c
}
