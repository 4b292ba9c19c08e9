package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/extract"
	"github.com/jmylchreest/swatch/internal/security"
	"github.com/jmylchreest/swatch/internal/theme"
	"github.com/jmylchreest/swatch/internal/version"
)

// PaletteResponse is the body of GET /api/palette.
type PaletteResponse struct {
	colour.ColorPalette
	Strategy string `json:"strategy"`
	Fallback bool   `json:"fallback"`
}

// GET /healthz
func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  version.Get(),
	})
}

// GET /api/palette?src=&strategy=
func (s *Server) palette(w http.ResponseWriter, r *http.Request) {
	src, ok := s.source(w, r)
	if !ok {
		return
	}

	strategy := extract.StrategyProminent
	if v := r.URL.Query().Get("strategy"); v != "" {
		strategy = extract.Strategy(v)
	}
	ex, ok := s.extractors[strategy]
	if !ok {
		s.badRequest(w, r, fmt.Errorf("unknown strategy %q (valid strategies: %v)", strategy, extract.ValidStrategies()))
		return
	}

	palette := s.generate(r.Context(), ex, src)
	if palette.ColorHex == nil {
		palette.ColorHex = []string{}
	}
	writeJSON(w, http.StatusOK, PaletteResponse{
		ColorPalette: palette,
		Strategy:     string(strategy),
		Fallback:     palette.IsFallback(),
	})
}

// GET /api/extracted?src=
func (s *Server) extracted(w http.ResponseWriter, r *http.Request) {
	src, ok := s.source(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.canvas.ExtractColors(r.Context(), src))
}

// GET /api/theme.css?src=&mode=light|dark|both
func (s *Server) themeCSS(w http.ResponseWriter, r *http.Request) {
	src, ok := s.source(w, r)
	if !ok {
		return
	}

	modes := []theme.Mode{theme.ModeLight, theme.ModeDark}
	if v := r.URL.Query().Get("mode"); v != "" && v != "both" {
		mode, err := theme.ParseMode(v)
		if err != nil {
			s.badRequest(w, r, err)
			return
		}
		modes = []theme.Mode{mode}
	}

	palette := s.generate(r.Context(), s.extractors[extract.StrategyProminent], src)

	var buf bytes.Buffer
	for _, mode := range modes {
		if err := theme.ApplyThemeColors(r.Context(), palette, mode, theme.NewCSSSink(&buf, mode)); err != nil {
			s.writeError(w, r, http.StatusInternalServerError, "Internal Server Error", err, "Retry the request")
			return
		}
	}

	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	if palette.IsFallback() {
		w.Header().Set("X-Swatch-Fallback", "true")
	}
	_, _ = w.Write(buf.Bytes())
}

// source validates the src query parameter.
func (s *Server) source(w http.ResponseWriter, r *http.Request) (string, bool) {
	src := r.URL.Query().Get("src")
	if src == "" {
		s.badRequest(w, r, errMissingSrc)
		return "", false
	}
	if err := security.ValidateImageURL(src, s.cfg.AllowPrivateHosts); err != nil {
		s.badRequest(w, r, err)
		return "", false
	}
	return src, true
}

// generate runs ex and falls back to the baseline palette on failure.
func (s *Server) generate(ctx context.Context, ex extract.Extractor, src string) colour.ColorPalette {
	palette, err := extract.GeneratePalette(ctx, ex, src)
	if err != nil {
		level := s.logger.Warn
		if errors.Is(err, context.Canceled) {
			level = s.logger.Debug
		}
		level("extraction failed, using fallback palette",
			"id", RequestID(ctx), "src", src, "strategy", ex.Name(), "error", err)
	}
	return palette
}
