package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/image"
	"github.com/jmylchreest/swatch/internal/sink"
	"github.com/jmylchreest/swatch/internal/theme"
	"github.com/jmylchreest/swatch/internal/watch"
)

type themeOptions struct {
	extractOptions
	mode     string
	sinkPath string
	watch    bool
}

// modes parses --mode, where "both" means light then dark.
func (o *themeOptions) modes() ([]theme.Mode, error) {
	if strings.EqualFold(o.mode, "both") {
		return []theme.Mode{theme.ModeLight, theme.ModeDark}, nil
	}
	mode, err := theme.ParseMode(o.mode)
	if err != nil {
		return nil, fmt.Errorf("invalid theme mode %q (valid modes: light, dark, both)", o.mode)
	}
	return []theme.Mode{mode}, nil
}

func newThemeCmd(g *globalOptions) *cobra.Command {
	o := &themeOptions{}
	cmd := &cobra.Command{
		Use:   "theme <image>",
		Short: "Emit CSS custom properties for an image's theme",
		Long: `Generate a palette from an image and render it as CSS custom properties in
"H S% L%" form: --primary, --primary-foreground and so on for every role,
plus --card, --popover, --border, --input and --ring.

Light mode is written to :root and dark mode to .dark. With --sink the
properties are handed to an external sink plugin instead of printed.
With --watch the theme is re-applied each time the image file changes, which
suits wallpaper setters that overwrite a fixed path.

Examples:
  swatch theme cover.jpg > theme.css
  swatch theme --mode dark cover.jpg
  swatch theme --sink ./swatch-sink-cssfile cover.jpg
  swatch theme --watch --sink ./swatch-sink-cssfile ~/.config/wallpaper.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTheme(cmd, g, o, args[0])
		},
	}
	o.addSourceFlags(cmd, true)
	cmd.Flags().StringVarP(&o.mode, "mode", "m", "both", "theme mode (light, dark, both)")
	cmd.Flags().StringVar(&o.sinkPath, "sink", "", "path to a sink plugin that receives the properties")
	cmd.Flags().BoolVarP(&o.watch, "watch", "w", false, "re-apply the theme whenever the image file changes")
	return cmd
}

func runTheme(cmd *cobra.Command, g *globalOptions, o *themeOptions, src string) error {
	modes, err := o.modes()
	if err != nil {
		return err
	}
	if o.sinkPath != "" && o.output != "" {
		return fmt.Errorf("--sink and --output are mutually exclusive")
	}
	if o.sinkPath, err = expandPath(o.sinkPath); err != nil {
		return err
	}
	if src, err = o.resolve(src); err != nil {
		return err
	}

	render := func(ctx context.Context) error {
		var b strings.Builder
		palette, err := loadPalette(ctx, g, &o.extractOptions, src)
		if err != nil {
			return err
		}
		for _, mode := range modes {
			if err := theme.ApplyThemeColors(ctx, palette, mode, theme.NewCSSSink(&b, mode)); err != nil {
				return err
			}
		}
		return writeOutput(cmd, o.output, b.String())
	}

	if o.sinkPath != "" {
		executor := sink.New(o.sinkPath, g.Logger())
		defer executor.Close()
		render = func(ctx context.Context) error {
			palette, err := loadPalette(ctx, g, &o.extractOptions, src)
			if err != nil {
				return err
			}
			for _, mode := range modes {
				if err := theme.ApplyThemeColors(ctx, palette, mode, executor.Sink(mode)); err != nil {
					return err
				}
			}
			g.Logger().Info("theme applied", "sink", o.sinkPath, "modes", len(modes))
			return nil
		}
	}

	if !o.watch {
		return render(cmd.Context())
	}
	if image.IsRemote(src) {
		return fmt.Errorf("--watch requires a local image file")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watch.File(ctx, src, watch.Options{Logger: g.Logger()}, render)
}
