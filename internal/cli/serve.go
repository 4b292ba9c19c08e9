package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/config"
	"github.com/jmylchreest/swatch/internal/server"
)

type serveOptions struct {
	envFile  string
	addr     string
	cacheDir string
}

func newServeCmd(g *globalOptions) *cobra.Command {
	o := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve palettes over HTTP",
		Long: `Start an HTTP server exposing the colour pipeline for remote images:

  GET /api/palette?src=<url>&strategy=prominent|canvas
  GET /api/extracted?src=<url>
  GET /api/theme.css?src=<url>&mode=light|dark|both
  GET /healthz

Settings are read from the environment and an optional .env file:
SWATCH_ADDR, SWATCH_FETCH_TIMEOUT, SWATCH_MAX_IMAGE_BYTES, SWATCH_MAX_IMAGE_PIXELS,
SWATCH_CACHE_DIR, SWATCH_ALLOWED_ORIGINS, SWATCH_SHUTDOWN_GRACE and
SWATCH_ALLOW_PRIVATE_HOSTS. Flags override them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			envFile, err := expandPath(o.envFile)
			if err != nil {
				return err
			}
			cfg, err := config.LoadServer(envFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = o.addr
			}
			if cmd.Flags().Changed("cache-dir") {
				cfg.CacheDir = o.cacheDir
			}
			if cfg.CacheDir, err = expandPath(cfg.CacheDir); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.New(cfg, g.Logger().Named("server")).ListenAndServe(ctx)
		},
	}
	cmd.Flags().StringVar(&o.envFile, "env-file", ".env", "dotenv file to load if present")
	cmd.Flags().StringVar(&o.addr, "addr", config.DefaultServer().Addr, "listen address")
	cmd.Flags().StringVar(&o.cacheDir, "cache-dir", "", "cache remote images in this directory")
	return cmd
}
