package sink

import "context"

// ThemeSink is the interface sink plugins implement for go-plugin RPC.
type ThemeSink interface {
	// Apply receives a full set of theme properties. Each call replaces the
	// previous one for the same mode.
	Apply(ctx context.Context, req ApplyRequest) error

	// GetMetadata returns plugin metadata.
	GetMetadata() Info
}
