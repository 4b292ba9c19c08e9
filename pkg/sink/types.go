package sink

// Info contains metadata about a sink plugin.
type Info struct {
	Name            string `json:"name"`
	Version         string `json:"version"`
	ProtocolVersion string `json:"protocol_version"`
	Description     string `json:"description"`
}

// ApplyRequest carries one mode's CSS custom properties to a sink.
type ApplyRequest struct {
	// Mode is "light" or "dark".
	Mode string `json:"mode"`

	// Properties maps property names ("--primary") to "H S% L%" values.
	Properties map[string]string `json:"properties"`
}
