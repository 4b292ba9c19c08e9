package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/extract"
)

func newPaletteCmd(g *globalOptions) *cobra.Command {
	o := &extractOptions{}
	cmd := &cobra.Command{
		Use:   "palette <image>",
		Short: "Generate light and dark theme palettes from an image",
		Long: `Extract colours from an image and derive a light and a dark theme with
primary, secondary, tertiary, background, surface and error roles.

If no colours can be extracted the baseline palette is printed and a warning
is logged.

Examples:
  swatch palette cover.jpg
  swatch palette --format json --strategy canvas https://example.com/cover.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPalette(cmd, g, o, args[0])
		},
	}
	o.addSourceFlags(cmd, true)
	cmd.Flags().StringVarP(&o.format, "format", "f", "table", "output format (table, text, json, yaml)")
	cmd.Flags().BoolVar(&o.preview, "preview", false, "show colour swatches when writing to a terminal")
	return cmd
}

// loadPalette extracts and builds a palette, falling back to the baseline
// palette when the image yields nothing.
func loadPalette(ctx context.Context, g *globalOptions, o *extractOptions, src string) (colour.ColorPalette, error) {
	src, err := o.resolve(src)
	if err != nil {
		return colour.ColorPalette{}, err
	}
	ex, err := o.extractor(g, src)
	if err != nil {
		return colour.ColorPalette{}, err
	}

	palette, err := extract.GeneratePalette(ctx, ex, src)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return colour.ColorPalette{}, ctxErr
		}
		g.Logger().Warn("extraction failed, using fallback palette", "src", src, "strategy", ex.Name(), "error", err)
	}
	return palette, nil
}

func runPalette(cmd *cobra.Command, g *globalOptions, o *extractOptions, src string) error {
	if err := checkFormat(o.format, "table", "text", "json", "yaml"); err != nil {
		return err
	}
	palette, err := loadPalette(cmd.Context(), g, o, src)
	if err != nil {
		return err
	}

	switch o.format {
	case "json":
		data, err := palette.ToJSON()
		if err != nil {
			return fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return writeOutput(cmd, o.output, string(data)+"\n")
	case "yaml":
		data, err := palette.ToYAML()
		if err != nil {
			return fmt.Errorf("failed to convert to YAML: %w", err)
		}
		return writeOutput(cmd, o.output, string(data))
	case "text":
		return writeOutput(cmd, o.output, palette.String())
	default:
		preview := o.preview && o.output == "" && isTerminal(cmd.OutOrStdout())
		return writeOutput(cmd, o.output, formatPaletteTable(palette, preview))
	}
}

func formatPaletteTable(p colour.ColorPalette, preview bool) string {
	cell := func(hex string) string {
		if preview {
			return colour.FormatHexWithPreview(hex, 4)
		}
		return hex
	}

	t := NewTable([]string{"ROLE", "LIGHT", "DARK"})
	for _, role := range colour.Roles() {
		light, _ := p.Light.Get(role)
		dark, _ := p.Dark.Get(role)
		t.AddRow(string(role), cell(light), cell(dark))
	}

	source := p.Source
	if p.IsFallback() {
		source += " (fallback)"
	}
	return "Source: " + source + "\n\n" + t.Render()
}
