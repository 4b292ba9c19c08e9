package sink

import (
	"context"
	"net/rpc"

	"github.com/hashicorp/go-plugin"
)

// SinkRPC implements the go-plugin Plugin interface for theme sinks.
type SinkRPC struct {
	plugin.Plugin
	Impl ThemeSink
}

// Server returns an RPC server for this plugin.
func (p *SinkRPC) Server(*plugin.MuxBroker) (any, error) {
	return &RPCServer{Impl: p.Impl}, nil
}

// Client returns an RPC client for this plugin.
func (p *SinkRPC) Client(_ *plugin.MuxBroker, c *rpc.Client) (any, error) {
	return &RPCClient{client: c}, nil
}

// RPCServer is the plugin-side RPC server.
type RPCServer struct {
	Impl ThemeSink
}

// Apply implements the RPC method for applying theme properties.
// Sink errors travel back in resp so the host sees the plugin's message.
func (s *RPCServer) Apply(req ApplyRequest, resp *string) error {
	if err := s.Impl.Apply(context.Background(), req); err != nil {
		*resp = err.Error()
	}
	return nil
}

// GetMetadata implements the RPC method for fetching plugin metadata.
func (s *RPCServer) GetMetadata(_ any, resp *Info) error {
	*resp = s.Impl.GetMetadata()
	return nil
}

// RPCClient is the host-side RPC client.
type RPCClient struct {
	client *rpc.Client
}

// Apply calls the remote Apply method.
func (c *RPCClient) Apply(_ context.Context, req ApplyRequest) error {
	var errMsg string
	if err := c.client.Call("Plugin.Apply", req, &errMsg); err != nil {
		return err
	}
	if errMsg != "" {
		return &RPCError{Message: errMsg}
	}
	return nil
}

// GetMetadata calls the remote GetMetadata method.
func (c *RPCClient) GetMetadata() (Info, error) {
	var info Info
	err := c.client.Call("Plugin.GetMetadata", new(any), &info)
	return info, err
}

// RPCError represents an error returned from an RPC call.
type RPCError struct {
	Message string
}

// Error implements the error interface.
func (e *RPCError) Error() string {
	return e.Message
}
