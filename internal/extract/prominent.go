package extract

import (
	"context"
	"fmt"
	"image"
	"sort"

	"github.com/EdlinOrg/prominentcolor"
	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/swatch/internal/colour"
	imgload "github.com/jmylchreest/swatch/internal/image"
)

// ProminentExtractor finds the dominant colour and a small palette with
// prominentcolor's k-means implementation.
type ProminentExtractor struct {
	loader      imgload.Loader
	paletteSize int
	logger      hclog.Logger
}

// NewProminentExtractor creates a ProminentExtractor.
func NewProminentExtractor(opts Options) *ProminentExtractor {
	opts = opts.withDefaults()
	return &ProminentExtractor{
		loader:      opts.Loader,
		paletteSize: opts.PaletteSize,
		logger:      opts.Logger.Named("prominent"),
	}
}

// Name returns the strategy name.
func (e *ProminentExtractor) Name() string {
	return string(StrategyProminent)
}

// Extract returns [dominant, palette...] as hex colours.
// If only the palette pass fails, the dominant colour is still returned.
func (e *ProminentExtractor) Extract(ctx context.Context, src string) ([]string, error) {
	img, err := e.loader.Load(ctx, src)
	if err != nil {
		return []string{}, fmt.Errorf("%w: %w", ErrImageLoad, err)
	}
	if err := ctx.Err(); err != nil {
		return []string{}, err
	}

	dominant, err := cluster(img, 1)
	if err != nil {
		return []string{}, fmt.Errorf("%w: %w", ErrNoColours, err)
	}
	if len(dominant) == 0 {
		return []string{}, ErrNoColours
	}

	colours := []string{dominant[0]}

	palette, err := cluster(img, e.paletteSize)
	if err != nil {
		e.logger.Warn("palette pass failed, returning dominant colour only", "src", src, "error", err)
		return colours, nil
	}
	colours = append(colours, palette...)

	e.logger.Debug("extracted colours", "src", src, "count", len(colours))
	return colours, nil
}

// cluster runs k-means over the whole image (no centre crop, no background
// masks) and returns the centroids as hex, largest cluster first.
func cluster(img image.Image, k int) ([]string, error) {
	items, err := prominentcolor.KmeansWithAll(
		k,
		img,
		prominentcolor.ArgumentNoCropping,
		prominentcolor.DefaultSize,
		[]prominentcolor.ColorBackgroundMask{},
	)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Cnt > items[j].Cnt
	})

	hexes := make([]string, 0, len(items))
	for _, item := range items {
		hexes = append(hexes, colour.RGBToHex(int(item.Color.R), int(item.Color.G), int(item.Color.B)))
	}
	return hexes, nil
}
