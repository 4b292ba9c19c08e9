// Package server exposes the colour pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/swatch/internal/config"
	"github.com/jmylchreest/swatch/internal/extract"
	imgload "github.com/jmylchreest/swatch/internal/image"
	"github.com/jmylchreest/swatch/internal/security"
	httputil "github.com/jmylchreest/swatch/internal/util/http"
)

// maxRedirects matches the net/http default policy.
const maxRedirects = 10

// Server serves palettes, extracted colours and theme CSS for remote images.
type Server struct {
	cfg    config.Server
	logger hclog.Logger

	extractors map[extract.Strategy]extract.Extractor
	canvas     *extract.CanvasExtractor
}

// New creates a Server. Only HTTP(S) image sources are accepted; local paths
// are refused by the loader.
func New(cfg config.Server, logger hclog.Logger) *Server {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return NewWithLoader(cfg, newLoader(cfg, fetchClient(cfg, nil), logger), logger)
}

// fetchClient builds the client used for image downloads. A nil transport
// selects http.DefaultTransport.
func fetchClient(cfg config.Server, transport http.RoundTripper) *http.Client {
	timeout := cfg.FetchTimeout
	if timeout <= 0 {
		timeout = httputil.DefaultTimeout
	}
	return &http.Client{
		Transport:     transport,
		Timeout:       timeout,
		CheckRedirect: redirectPolicy(cfg.AllowPrivateHosts),
	}
}

// redirectPolicy applies the image URL rules to every redirect target, so a
// public URL cannot bounce a fetch onto loopback or a private network.
func redirectPolicy(allowPrivate bool) func(*http.Request, []*http.Request) error {
	return func(req *http.Request, via []*http.Request) error {
		if len(via) >= maxRedirects {
			return fmt.Errorf("stopped after %d redirects", maxRedirects)
		}
		if err := security.ValidateImageURL(req.URL.String(), allowPrivate); err != nil {
			return fmt.Errorf("redirect refused: %w", err)
		}
		return nil
	}
}

func newLoader(cfg config.Server, client *http.Client, logger hclog.Logger) *imgload.SmartLoader {
	return imgload.NewSmartLoaderWithOptions(imgload.SmartLoaderOptions{
		Fetch: httputil.FetchOptions{
			MaxBytes: cfg.MaxImageBytes,
			Client:   client,
		},
		CacheDir:  cfg.CacheDir,
		MaxPixels: cfg.MaxPixels,
		Logger:    logger,
	})
}

// NewWithLoader creates a Server that loads images through loader.
func NewWithLoader(cfg config.Server, loader imgload.Loader, logger hclog.Logger) *Server {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	opts := extract.Options{Loader: loader, Logger: logger}

	s := &Server{
		cfg:        cfg,
		logger:     logger,
		extractors: make(map[extract.Strategy]extract.Extractor),
		canvas:     extract.NewCanvasExtractor(opts),
	}
	for _, strategy := range extract.ValidStrategies() {
		ex, _ := extract.New(strategy, opts)
		s.extractors[strategy] = ex
	}
	return s
}

// Handler returns the root handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.withRequestID(s.withLogging(s.withCORS(s.routes())))
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.Handler(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: s.cfg.FetchTimeout + 30*time.Second,
	}

	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info("shutting down server")

		grace := s.cfg.ShutdownGrace
		if grace <= 0 {
			grace = 5 * time.Second
		}
		sctx, cancel := context.WithTimeout(context.Background(), grace)
		defer cancel()
		shutdownErr <- srv.Shutdown(sctx)
	}()

	s.logger.Info("starting server", "addr", ln.Addr().String())
	if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	if err := <-shutdownErr; err != nil {
		return err
	}
	s.logger.Info("stopped server", "addr", ln.Addr().String())
	return nil
}
