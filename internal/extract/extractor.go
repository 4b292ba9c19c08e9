// Package extract produces ordered lists of representative hex colours from images.
package extract

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"

	imgload "github.com/jmylchreest/swatch/internal/image"
)

var (
	// ErrImageLoad wraps any failure to fetch or decode the source image.
	ErrImageLoad = errors.New("failed to load image")

	// ErrNoColours is returned when an image has no usable pixels.
	ErrNoColours = errors.New("no colours found in image")
)

// Extractor produces an ordered list of hex colours from an image source.
// Implementations keep no per-call state and are safe for concurrent use.
type Extractor interface {
	// Name returns the strategy name.
	Name() string

	// Extract returns colours ordered by prominence, most prominent first.
	// On failure the slice is empty and the error says why; callers treat
	// that as "no colours" and fall back to a default palette.
	Extract(ctx context.Context, src string) ([]string, error)
}

// Strategy names an extraction strategy.
type Strategy string

const (
	// StrategyProminent clusters pixels with k-means (dominant colour plus palette).
	StrategyProminent Strategy = "prominent"

	// StrategyCanvas downsamples the image and ranks exact pixel colours by frequency.
	StrategyCanvas Strategy = "canvas"
)

// DefaultPaletteSize is the number of palette colours requested after the dominant one.
const DefaultPaletteSize = 6

// ValidStrategies returns the list of valid strategy names.
func ValidStrategies() []Strategy {
	return []Strategy{StrategyProminent, StrategyCanvas}
}

// IsValidStrategy checks if the given strategy name is valid.
func IsValidStrategy(s Strategy) bool {
	for _, valid := range ValidStrategies() {
		if s == valid {
			return true
		}
	}
	return false
}

// Options configures an extractor.
type Options struct {
	// Loader loads images. Defaults to imgload.NewSmartLoader().
	Loader imgload.Loader

	// PaletteSize is the number of palette colours after the dominant colour.
	// Defaults to DefaultPaletteSize.
	PaletteSize int

	Logger hclog.Logger
}

func (o Options) withDefaults() Options {
	if o.Loader == nil {
		o.Loader = imgload.NewSmartLoader()
	}
	if o.PaletteSize <= 0 {
		o.PaletteSize = DefaultPaletteSize
	}
	if o.Logger == nil {
		o.Logger = hclog.NewNullLogger()
	}
	return o
}

// New creates an Extractor for the given strategy.
func New(s Strategy, opts Options) (Extractor, error) {
	switch s {
	case StrategyProminent:
		return NewProminentExtractor(opts), nil
	case StrategyCanvas:
		return NewCanvasExtractor(opts), nil
	default:
		return nil, fmt.Errorf("unknown strategy: %s (valid strategies: %v)", s, ValidStrategies())
	}
}
