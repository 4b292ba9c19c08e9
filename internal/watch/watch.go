// Package watch re-runs work when a local file changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"
)

// DefaultDebounce collapses the burst of events most editors and
// wallpaper setters produce for a single save.
const DefaultDebounce = 250 * time.Millisecond

type Options struct {
	Debounce time.Duration
	Logger   hclog.Logger
}

// File calls fn once, then again after every write to path or replacement
// of it, until ctx is done. The parent directory is watched so files that
// are replaced by rename are still seen. An error from the first call is
// returned; later errors are logged and watching continues.
func File(ctx context.Context, path string, opts Options, fn func(context.Context) error) error {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	logger = logger.Named("watch")

	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}

	if err := fn(ctx); err != nil {
		return err
	}
	logger.Info("watching for changes", "path", target)

	timer := time.NewTimer(opts.Debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				logger.Trace("change detected", "op", ev.Op.String())
				timer.Reset(opts.Debounce)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)

		case <-timer.C:
			logger.Debug("file changed, re-running", "path", target)
			if err := fn(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				logger.Error("update failed", "error", err)
			}
		}
	}
}
