package extract

import (
	"context"
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/hashicorp/go-hclog"
	xdraw "golang.org/x/image/draw"

	"github.com/jmylchreest/swatch/internal/colour"
	imgload "github.com/jmylchreest/swatch/internal/image"
)

const (
	// MaxCanvasDimension bounds both sides of the sampling canvas.
	MaxCanvasDimension = 100

	// alphaThreshold is the minimum alpha for a pixel to be counted.
	alphaThreshold = 128

	secondaryMinYIQDiff = 50
	accentMinYIQDiff    = 100
)

// CanvasExtractor draws the image onto a small canvas and ranks exact pixel
// colours by frequency.
type CanvasExtractor struct {
	loader imgload.Loader
	limit  int
	logger hclog.Logger
}

// NewCanvasExtractor creates a CanvasExtractor. Extract returns at most
// PaletteSize+1 colours.
func NewCanvasExtractor(opts Options) *CanvasExtractor {
	opts = opts.withDefaults()
	return &CanvasExtractor{
		loader: opts.Loader,
		limit:  opts.PaletteSize + 1,
		logger: opts.Logger.Named("canvas"),
	}
}

// Name returns the strategy name.
func (e *CanvasExtractor) Name() string {
	return string(StrategyCanvas)
}

// Extract returns the most frequent opaque colours, most frequent first.
func (e *CanvasExtractor) Extract(ctx context.Context, src string) ([]string, error) {
	ranked, err := e.rank(ctx, src)
	if err != nil {
		return []string{}, err
	}
	if len(ranked) > e.limit {
		ranked = ranked[:e.limit]
	}
	return ranked, nil
}

// ExtractColors builds the lightweight four-colour theme for src.
// It never fails: any error yields colour.DefaultExtractedColors.
func (e *CanvasExtractor) ExtractColors(ctx context.Context, src string) (result colour.ExtractedColors) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("canvas sampling panicked, using defaults", "src", src, "panic", r)
			result = colour.DefaultExtractedColors
		}
	}()

	ranked, err := e.rank(ctx, src)
	if err != nil {
		e.logger.Warn("canvas sampling failed, using defaults", "src", src, "error", err)
		return colour.DefaultExtractedColors
	}

	return pickExtractedColors(ranked)
}

// rank loads src, samples it and returns every opaque colour ordered by
// frequency. Ties keep first-seen order.
func (e *CanvasExtractor) rank(ctx context.Context, src string) ([]string, error) {
	img, err := e.loader.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImageLoad, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	canvas := drawCanvas(img)

	counts := make(map[string]int)
	var order []string
	pix := canvas.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		if pix[i+3] < alphaThreshold {
			continue
		}
		hex := colour.RGBToHex(int(pix[i]), int(pix[i+1]), int(pix[i+2]))
		if counts[hex] == 0 {
			order = append(order, hex)
		}
		counts[hex]++
	}

	if len(order) == 0 {
		return nil, ErrNoColours
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	e.logger.Trace("ranked canvas colours", "src", src, "unique", len(order))
	return order, nil
}

// drawCanvas copies img into a non-premultiplied RGBA canvas, scaling it down
// with bilinear filtering so neither side exceeds MaxCanvasDimension.
func drawCanvas(img image.Image) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	scale := math.Min(1, float64(MaxCanvasDimension)/float64(max(w, h, 1)))
	cw := max(int(math.Floor(float64(w)*scale)), 1)
	ch := max(int(math.Floor(float64(h)*scale)), 1)

	canvas := image.NewNRGBA(image.Rect(0, 0, cw, ch))
	if cw == w && ch == h {
		xdraw.Draw(canvas, canvas.Bounds(), img, b.Min, xdraw.Src)
	} else {
		xdraw.ApproxBiLinear.Scale(canvas, canvas.Bounds(), img, b, xdraw.Src, nil)
	}
	return canvas
}

// pickExtractedColors chooses primary, secondary and accent from a ranked list.
// Secondary is the first colour whose YIQ brightness differs from primary by
// more than 50, else the second most frequent; accent uses a threshold of 100,
// else the third most frequent.
func pickExtractedColors(ranked []string) colour.ExtractedColors {
	if len(ranked) == 0 {
		return colour.DefaultExtractedColors
	}

	primary := ranked[0]
	primaryYIQ := colour.ContrastYIQ(primary)

	pick := func(minDiff float64, fallbackIdx int, fallback string) string {
		for _, c := range ranked[1:] {
			if math.Abs(colour.ContrastYIQ(c)-primaryYIQ) > minDiff {
				return c
			}
		}
		if len(ranked) > fallbackIdx {
			return ranked[fallbackIdx]
		}
		return fallback
	}

	secondary := pick(secondaryMinYIQDiff, 1, primary)
	accent := pick(accentMinYIQDiff, 2, secondary)

	return colour.ExtractedColors{
		Primary:     primary,
		Secondary:   secondary,
		TextColor:   colour.ContrastColor(primary),
		AccentColor: accent,
	}
}
