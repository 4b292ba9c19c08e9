package theme

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
)

// Selector returns the CSS selector a mode's properties are scoped to.
func Selector(mode Mode) string {
	if mode == ModeDark {
		return ".dark"
	}
	return ":root"
}

// CSSSink renders applied properties as a CSS rule block.
type CSSSink struct {
	w        io.Writer
	selector string
}

// NewCSSSink creates a sink writing rules for mode's selector to w.
func NewCSSSink(w io.Writer, mode Mode) *CSSSink {
	return &CSSSink{w: w, selector: Selector(mode)}
}

// Apply writes one rule block with properties sorted by name.
func (s *CSSSink) Apply(_ context.Context, props Properties) error {
	names := slices.Sorted(maps.Keys(props))

	var b strings.Builder
	fmt.Fprintf(&b, "%s {\n", s.selector)
	for _, name := range names {
		fmt.Fprintf(&b, "  %s: %s;\n", name, props[name])
	}
	b.WriteString("}\n")

	_, err := io.WriteString(s.w, b.String())
	return err
}
