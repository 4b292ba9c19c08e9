// Swatch derives Material-style colour themes from images.
//
// It extracts representative colours from an image file or URL, builds light
// and dark theme palettes, and renders them as JSON, CSS custom properties,
// or through an external sink plugin.
package main

import (
	"github.com/jmylchreest/swatch/internal/cli"
)

func main() {
	cli.Execute()
}
