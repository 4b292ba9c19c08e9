// Package cli provides the command-line interface for swatch.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/version"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	verbose bool
	quiet   bool
	logger  hclog.Logger
}

// Logger returns the logger built in PersistentPreRunE, or a null logger
// before that has run.
func (g *globalOptions) Logger() hclog.Logger {
	if g.logger == nil {
		return hclog.NewNullLogger()
	}
	return g.logger
}

// NewRootCmd builds the swatch command tree.
func NewRootCmd() *cobra.Command {
	g := &globalOptions{}

	root := &cobra.Command{
		Use:   "swatch",
		Short: "Derive Material-style colour themes from images",
		Long: `Swatch extracts representative colours from an image and turns them into a
light and dark theme palette, CSS custom properties, or a lightweight
four-colour scheme.

Every flag can also be set through an environment variable named
SWATCH_<FLAG>, for example SWATCH_STRATEGY=canvas. Flags on the command
line win over the environment.`,
		Version:      version.Short(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := applyEnvOverrides(cmd); err != nil {
				return err
			}
			if g.verbose && g.quiet {
				return fmt.Errorf("--verbose and --quiet are mutually exclusive")
			}
			g.logger = newLogger(cmd.ErrOrStderr(), g.verbose, g.quiet)
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().BoolVarP(&g.quiet, "quiet", "q", false, "suppress non-error output")
	root.SetVersionTemplate(version.String() + "\n")

	root.AddCommand(
		newVersionCmd(),
		newExtractCmd(g),
		newLiteCmd(g),
		newPaletteCmd(g),
		newThemeCmd(g),
		newServeCmd(g),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			build := version.Get()
			if !asJSON {
				fmt.Fprintln(cmd.OutOrStdout(), build)
				return nil
			}
			data, err := json.MarshalIndent(build, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal version: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print version information as JSON")
	return cmd
}
