package sink

import (
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"
)

// Serve runs impl as a sink plugin. It blocks until the host disconnects and
// is meant to be the last call in a plugin's main.
func Serve(impl ThemeSink) {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: Handshake,
		Plugins: map[string]plugin.Plugin{
			PluginName: &SinkRPC{Impl: impl},
		},
		Logger: hclog.New(&hclog.LoggerOptions{
			Name:       impl.GetMetadata().Name,
			Level:      hclog.Info,
			JSONFormat: true,
		}),
	})
}
