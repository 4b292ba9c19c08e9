// Command cssfile is a swatch sink plugin that keeps a CSS file of theme
// custom properties up to date.
//
// The target path comes from SWATCH_CSS_SINK_FILE (default "swatch-theme.css").
// Light properties are written to :root and dark properties to .dark.
package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jmylchreest/swatch/internal/theme"
	"github.com/jmylchreest/swatch/internal/version"
	sinkapi "github.com/jmylchreest/swatch/pkg/sink"
)

const defaultFile = "swatch-theme.css"

type cssFileSink struct {
	path string

	mu    sync.Mutex
	modes map[theme.Mode]theme.Properties
}

func (s *cssFileSink) Apply(ctx context.Context, req sinkapi.ApplyRequest) error {
	mode, err := theme.ParseMode(req.Mode)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.modes[mode] = req.Properties

	var buf bytes.Buffer
	for _, m := range []theme.Mode{theme.ModeLight, theme.ModeDark} {
		props, ok := s.modes[m]
		if !ok {
			continue
		}
		if err := theme.NewCSSSink(&buf, m).Apply(ctx, props); err != nil {
			return err
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".swatch-theme.*.css")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write theme: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}

func (s *cssFileSink) GetMetadata() sinkapi.Info {
	return sinkapi.Info{
		Name:            "cssfile",
		Version:         version.Version,
		ProtocolVersion: sinkapi.ProtocolVersion,
		Description:     "Write theme custom properties to a CSS file",
	}
}

func main() {
	path := os.Getenv("SWATCH_CSS_SINK_FILE")
	if path == "" {
		path = defaultFile
	}
	sinkapi.Serve(&cssFileSink{path: path, modes: map[theme.Mode]theme.Properties{}})
}
