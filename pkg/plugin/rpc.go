package plugin

import (
	"context"
	"net/rpc"

	"github.com/hashicorp/go-plugin"
)

// ExportPluginRPC implements the go-plugin Plugin interface for export plugins.
type ExportPluginRPC struct {
	plugin.Plugin
	Impl ExportPlugin
}

// Server returns an RPC server for this plugin.
func (p *ExportPluginRPC) Server(*plugin.MuxBroker) (any, error) {
	return &ExportPluginRPCServer{Impl: p.Impl}, nil
}

// Client returns an RPC client for this plugin.
func (p *ExportPluginRPC) Client(_ *plugin.MuxBroker, c *rpc.Client) (any, error) {
	return &ExportPluginRPCClient{client: c}, nil
}

// ExportPluginRPCServer is the RPC server implementation for export plugins.
type ExportPluginRPCServer struct {
	Impl ExportPlugin
}

// Generate implements the RPC method for file generation.
func (s *ExportPluginRPCServer) Generate(palette PaletteData, resp *map[string][]byte) error {
	result, err := s.Impl.Generate(context.Background(), palette)
	if err != nil {
		return err
	}
	*resp = result
	return nil
}

// GetMetadata implements the RPC method for fetching plugin metadata.
func (s *ExportPluginRPCServer) GetMetadata(_ any, resp *PluginInfo) error {
	*resp = s.Impl.GetMetadata()
	return nil
}

// ExportPluginRPCClient is the RPC client implementation for export plugins.
type ExportPluginRPCClient struct {
	client *rpc.Client
}

// Generate calls the remote Generate method. The call is abandoned when ctx
// is done; the plugin process is left to the caller to kill.
func (c *ExportPluginRPCClient) Generate(ctx context.Context, palette PaletteData) (map[string][]byte, error) {
	var result map[string][]byte
	call := c.client.Go("Plugin.Generate", palette, &result, make(chan *rpc.Call, 1))
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-call.Done:
		if call.Error != nil {
			return nil, &RPCError{Message: call.Error.Error()}
		}
		return result, nil
	}
}

// GetMetadata calls the remote GetMetadata method.
func (c *ExportPluginRPCClient) GetMetadata() (PluginInfo, error) {
	var info PluginInfo
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
