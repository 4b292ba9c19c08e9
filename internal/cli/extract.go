package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/extract"
	"github.com/jmylchreest/swatch/internal/image"
)

type extractOptions struct {
	strategy    string
	paletteSize int
	format      string
	output      string
	preview     bool
	cacheDir    string
}

// addSourceFlags registers the flags shared by commands that read an image.
func (o *extractOptions) addSourceFlags(cmd *cobra.Command, withStrategy bool) {
	if withStrategy {
		cmd.Flags().StringVarP(&o.strategy, "strategy", "s", string(extract.StrategyProminent), "extraction strategy (prominent, canvas)")
		cmd.Flags().IntVarP(&o.paletteSize, "colours", "c", extract.DefaultPaletteSize, "palette colours to request after the dominant colour")
	}
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&o.cacheDir, "cache-dir", "", "cache remote images in this directory")
}

// resolve expands ~ in src and the path flags, returning the expanded src.
func (o *extractOptions) resolve(src string) (string, error) {
	var err error
	for _, p := range []*string{&o.output, &o.cacheDir} {
		if *p, err = expandPath(*p); err != nil {
			return "", err
		}
	}
	return expandPath(src)
}

// extractor validates the source and builds the configured extractor.
func (o *extractOptions) extractor(g *globalOptions, src string) (extract.Extractor, error) {
	if err := image.ValidateImagePath(src); err != nil {
		return nil, fmt.Errorf("invalid image path: %w", err)
	}
	if o.strategy == "" {
		o.strategy = string(extract.StrategyProminent)
	}
	if !extract.IsValidStrategy(extract.Strategy(o.strategy)) {
		return nil, fmt.Errorf("invalid strategy: %s (valid strategies: %v)", o.strategy, extract.ValidStrategies())
	}
	if o.paletteSize < 0 || o.paletteSize > 64 {
		return nil, fmt.Errorf("colours must be between 0 and 64 (0 uses the default), got %d", o.paletteSize)
	}
	return extract.New(extract.Strategy(o.strategy), o.extractOptions(g))
}

func (o *extractOptions) extractOptions(g *globalOptions) extract.Options {
	return extract.Options{
		Loader: image.NewSmartLoaderWithOptions(image.SmartLoaderOptions{
			CacheDir:   o.cacheDir,
			AllowFiles: true,
			Logger:     g.Logger(),
		}),
		PaletteSize: o.paletteSize,
		Logger:      g.Logger(),
	}
}

func newExtractCmd(g *globalOptions) *cobra.Command {
	o := &extractOptions{}
	cmd := &cobra.Command{
		Use:   "extract <image>",
		Short: "Extract representative colours from an image",
		Long: `Extract an ordered list of hex colours from an image file or HTTP(S) URL.

The prominent strategy clusters pixels with k-means and returns the dominant
colour followed by the palette. The canvas strategy shrinks the image and
ranks exact pixel colours by frequency.

Supported image formats: JPEG, PNG, GIF, WebP

Examples:
  # Dominant colour and palette
  swatch extract cover.jpg

  # Frequency ranking as JSON
  swatch extract --strategy canvas --format json https://example.com/cover.png

  # Colour swatches in the terminal
  swatch extract --preview cover.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, g, o, args[0])
		},
	}
	o.addSourceFlags(cmd, true)
	cmd.Flags().StringVarP(&o.format, "format", "f", "hex", "output format (hex, json)")
	cmd.Flags().BoolVar(&o.preview, "preview", false, "show colour swatches when writing to a terminal")
	return cmd
}

func runExtract(cmd *cobra.Command, g *globalOptions, o *extractOptions, src string) error {
	if err := checkFormat(o.format, "hex", "json"); err != nil {
		return err
	}
	src, err := o.resolve(src)
	if err != nil {
		return err
	}
	ex, err := o.extractor(g, src)
	if err != nil {
		return err
	}

	logger := g.Logger()
	logger.Debug("extracting colours", "src", src, "strategy", ex.Name())

	colors, err := ex.Extract(cmd.Context(), src)
	if err != nil {
		return fmt.Errorf("failed to extract colours: %w", err)
	}
	logger.Debug("extracted colours", "count", len(colors))

	var b strings.Builder
	switch o.format {
	case "json":
		data, err := json.MarshalIndent(colors, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to convert to JSON: %w", err)
		}
		b.Write(data)
		b.WriteString("\n")
	default:
		preview := o.preview && o.output == "" && isTerminal(cmd.OutOrStdout())
		for _, hex := range colors {
			if preview {
				b.WriteString(colour.FormatHexWithPreview(hex, 8))
			} else {
				b.WriteString(hex)
			}
			b.WriteString("\n")
		}
	}
	return writeOutput(cmd, o.output, b.String())
}
