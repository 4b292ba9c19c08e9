// Package sink provides the public API for swatch theme sink plugins.
// External plugins should import this package instead of internal packages.
package sink

import (
	"github.com/hashicorp/go-plugin"
)

const (
	// ProtocolVersion defines the current sink API version.
	// Format: MAJOR.MINOR.PATCH.
	ProtocolVersion = "0.1.0"

	// MinCompatibleVersion is the oldest protocol version this swatch version can work with.
	MinCompatibleVersion = "0.1.0"

	// PluginName is the key sinks are dispensed under.
	PluginName = "sink"
)

// Handshake is the handshake configuration for go-plugin protocol.
// The go-plugin protocol version is the major part of ProtocolVersion; the full
// version is checked with IsCompatible after connecting.
var Handshake = plugin.HandshakeConfig{
	ProtocolVersion:  0,
	MagicCookieKey:   "SWATCH_SINK_PLUGIN",
	MagicCookieValue: "swatch_theme_sink",
}
