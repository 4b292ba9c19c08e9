package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/extract"
	"github.com/jmylchreest/swatch/internal/image"
)

func newLiteCmd(g *globalOptions) *cobra.Command {
	o := &extractOptions{}
	cmd := &cobra.Command{
		Use:   "lite <image>",
		Short: "Pick a lightweight four-colour scheme from an image",
		Long: `Sample an image on a small canvas and pick primary, secondary, text and
accent colours. Secondary and accent are chosen for brightness contrast
against the primary colour.

Lite never fails on a bad image: it prints the default scheme instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLite(cmd, g, o, args[0])
		},
	}
	o.addSourceFlags(cmd, false)
	cmd.Flags().StringVarP(&o.format, "format", "f", "text", "output format (text, json)")
	cmd.Flags().BoolVar(&o.preview, "preview", false, "show colour swatches when writing to a terminal")
	return cmd
}

func runLite(cmd *cobra.Command, g *globalOptions, o *extractOptions, src string) error {
	if err := checkFormat(o.format, "text", "json"); err != nil {
		return err
	}
	src, err := o.resolve(src)
	if err != nil {
		return err
	}
	if err := image.ValidateImagePath(src); err != nil {
		g.Logger().Warn("image is not usable, using default colours", "src", src, "error", err)
	}

	colors := extract.NewCanvasExtractor(o.extractOptions(g)).ExtractColors(cmd.Context(), src)

	if o.format == "json" {
		data, err := json.MarshalIndent(colors, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return writeOutput(cmd, o.output, string(data)+"\n")
	}

	preview := o.preview && o.output == "" && isTerminal(cmd.OutOrStdout())
	return writeOutput(cmd, o.output, formatExtracted(colors, preview))
}

func formatExtracted(c colour.ExtractedColors, preview bool) string {
	t := NewTable([]string{"ROLE", "HEX"})
	for _, row := range []struct{ role, hex string }{
		{"primary", c.Primary},
		{"secondary", c.Secondary},
		{"text", c.TextColor},
		{"accent", c.AccentColor},
	} {
		hex := row.hex
		if preview {
			hex = colour.FormatHexWithPreview(hex, 4)
		}
		t.AddRow(row.role, hex)
	}
	return t.Render()
}
