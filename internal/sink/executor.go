// Package sink runs external theme sink plugins and exposes them as theme.Sink values.
package sink

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	"github.com/jmylchreest/swatch/internal/security"
	"github.com/jmylchreest/swatch/internal/theme"
	sinkapi "github.com/jmylchreest/swatch/pkg/sink"
)

// remoteSink is the host view of a dispensed plugin.
type remoteSink interface {
	Apply(ctx context.Context, req sinkapi.ApplyRequest) error
	GetMetadata() (sinkapi.Info, error)
}

// Executor owns a running sink plugin process.
type Executor struct {
	path   string
	logger hclog.Logger

	mu     sync.Mutex
	client *plugin.Client
	remote remoteSink
	info   sinkapi.Info
}

// New creates an Executor for the plugin binary at path. The process is
// started lazily on the first Apply.
func New(path string, logger hclog.Logger) *Executor {
	if logger == nil {
		logger = hclog.New(&hclog.LoggerOptions{
			Name:   "sink",
			Output: io.Discard,
			Level:  hclog.Off,
		})
	}
	return &Executor{path: path, logger: logger.Named("sink")}
}

// Sink returns a theme.Sink that sends properties to the plugin tagged with mode.
func (e *Executor) Sink(mode theme.Mode) theme.Sink {
	return theme.SinkFunc(func(ctx context.Context, props theme.Properties) error {
		return e.Apply(ctx, mode, props)
	})
}

// Apply sends one mode's properties to the plugin.
func (e *Executor) Apply(ctx context.Context, mode theme.Mode, props theme.Properties) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	remote, info, err := e.connect()
	if err != nil {
		return err
	}

	e.logger.Debug("applying theme", "plugin", info.Name, "mode", mode, "properties", len(props))
	if err := remote.Apply(ctx, sinkapi.ApplyRequest{Mode: string(mode), Properties: props}); err != nil {
		e.resetIfExited()
		return fmt.Errorf("sink plugin %s: %w", e.path, err)
	}
	return nil
}

// resetIfExited drops a dead plugin process so the next Apply restarts it.
func (e *Executor) resetIfExited() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.client == nil || !e.client.Exited() {
		return
	}
	e.logger.Warn("sink plugin exited, restarting on next apply", "path", e.path)
	e.client.Kill()
	e.client = nil
	e.remote = nil
}

// Info returns the connected plugin's metadata, starting it if needed.
func (e *Executor) Info() (sinkapi.Info, error) {
	_, info, err := e.connect()
	return info, err
}

// Close kills the plugin process.
func (e *Executor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.client != nil {
		e.client.Kill()
		e.client = nil
	}
	e.remote = nil
}

// connect returns the live plugin and its metadata, starting the process
// when none is running. The metadata is copied under e.mu.
func (e *Executor) connect() (remoteSink, sinkapi.Info, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.remote != nil {
		return e.remote, e.info, nil
	}
	if err := security.ValidateExecutable(e.path); err != nil {
		return nil, sinkapi.Info{}, err
	}

	e.client = plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig: sinkapi.Handshake,
		Plugins: map[string]plugin.Plugin{
			sinkapi.PluginName: &sinkapi.SinkRPC{},
		},
		Cmd:              exec.Command(e.path), // #nosec G204 - user-specified plugin path
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolNetRPC},
		Logger:           e.logger,
	})

	rpcClient, err := e.client.Client()
	if err != nil {
		e.client.Kill()
		e.client = nil
		return nil, sinkapi.Info{}, fmt.Errorf("failed to get RPC client: %w", err)
	}

	raw, err := rpcClient.Dispense(sinkapi.PluginName)
	if err != nil {
		e.client.Kill()
		e.client = nil
		return nil, sinkapi.Info{}, fmt.Errorf("failed to dispense plugin: %w", err)
	}

	remote, ok := raw.(remoteSink)
	if !ok {
		e.client.Kill()
		e.client = nil
		return nil, sinkapi.Info{}, fmt.Errorf("plugin %s returned unexpected type %T", e.path, raw)
	}

	if err := e.attach(remote); err != nil {
		e.client.Kill()
		e.client = nil
		return nil, sinkapi.Info{}, err
	}
	return remote, e.info, nil
}

// attach validates a dispensed sink and records it. Callers hold e.mu.
func (e *Executor) attach(remote remoteSink) error {
	info, err := remote.GetMetadata()
	if err != nil {
		return fmt.Errorf("failed to get plugin metadata: %w", err)
	}
	if err := sinkapi.IsCompatible(info.ProtocolVersion); err != nil {
		return fmt.Errorf("plugin %s: %w", info.Name, err)
	}

	e.remote = remote
	e.info = info
	e.logger.Debug("connected to sink plugin", "name", info.Name, "version", info.Version)
	return nil
}
