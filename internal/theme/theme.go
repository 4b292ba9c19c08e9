// Package theme turns a generated palette into CSS custom properties and
// hands them to a Sink.
package theme

import (
	"context"
	"fmt"
	"maps"
	"strings"
	"sync"

	"github.com/jmylchreest/swatch/internal/colour"
)

// Mode selects which half of a ColorPalette is applied.
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// borderShift is how far --border and --input move away from the background lightness.
const borderShift = 10

// ParseMode parses a mode name, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeLight:
		return ModeLight, nil
	case ModeDark:
		return ModeDark, nil
	default:
		return "", fmt.Errorf("invalid theme mode %q (valid modes: light, dark)", s)
	}
}

// Properties maps CSS custom property names ("--primary") to "H S% L%" values.
type Properties map[string]string

// Sink receives a full set of theme properties for one mode. Values from a
// later Apply override earlier ones for the same property; concurrent
// callers race and the last write wins.
type Sink interface {
	Apply(ctx context.Context, props Properties) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, props Properties) error

// Apply calls f.
func (f SinkFunc) Apply(ctx context.Context, props Properties) error {
	return f(ctx, props)
}

// MapSink keeps applied properties in memory, merging each Apply over the
// values already held.
type MapSink struct {
	mu    sync.RWMutex
	props Properties
}

// NewMapSink creates an empty MapSink.
func NewMapSink() *MapSink {
	return &MapSink{props: Properties{}}
}

// Apply merges props over the current values.
func (s *MapSink) Apply(_ context.Context, props Properties) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.props == nil {
		s.props = Properties{}
	}
	maps.Copy(s.props, props)
	return nil
}

// Get returns the current value of a property.
func (s *MapSink) Get(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.props[name]
	return v, ok
}

// Snapshot returns a copy of every property applied so far.
func (s *MapSink) Snapshot() Properties {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.props)
}

// Variables computes the CSS custom properties for one mode of palette.
// Any mode other than ModeLight selects the dark theme. Roles whose hex
// cannot be parsed are left out.
func Variables(palette colour.ColorPalette, mode Mode) Properties {
	colors := palette.Dark
	if mode == ModeLight {
		colors = palette.Light
	}

	props := Properties{}
	for _, role := range colour.Roles() {
		hex, _ := colors.Get(role)
		hsl, err := colour.HexToHSL(hex)
		if err != nil {
			continue
		}
		fg, err := colour.HexToHSL(colour.ContrastColor(hex))
		if err != nil {
			continue
		}

		name := "--" + string(role)
		props[name] = hsl.CSS()
		props[name+"-foreground"] = fg.CSS()

		if role == colour.RoleSurface {
			for _, alias := range []string{"--card", "--popover"} {
				props[alias] = hsl.CSS()
				props[alias+"-foreground"] = fg.CSS()
			}
		}
	}

	if bg, err := colour.HexToHSL(colors.Background); err == nil {
		shift := borderShift
		if mode == ModeLight {
			shift = -borderShift
		}
		bg.L = min(max(bg.L+float64(shift), 0), 100)
		props["--border"] = bg.CSS()
		props["--input"] = bg.CSS()
	}

	if primary, err := colour.HexToHSL(colors.Primary); err == nil {
		props["--ring"] = primary.CSS()
	}

	return props
}

// ApplyThemeColors writes the properties for mode to sink in a single call.
func ApplyThemeColors(ctx context.Context, palette colour.ColorPalette, mode Mode, sink Sink) error {
	if sink == nil {
		return fmt.Errorf("theme sink is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := sink.Apply(ctx, Variables(palette, mode)); err != nil {
		return fmt.Errorf("failed to apply %s theme: %w", mode, err)
	}
	return nil
}
