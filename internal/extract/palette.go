package extract

import (
	"context"

	"github.com/jmylchreest/swatch/internal/colour"
)

// GeneratePalette extracts colours from src with ex and derives a theme palette.
// When extraction fails the fallback palette is returned along with the error,
// so callers can render something and still report what went wrong.
func GeneratePalette(ctx context.Context, ex Extractor, src string) (colour.ColorPalette, error) {
	colors, err := ex.Extract(ctx, src)
	if err != nil {
		return colour.FallbackPalette(), err
	}
	return colour.GenerateThemePalette(colors), nil
}
