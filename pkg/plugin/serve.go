package plugin

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hashicorp/go-plugin"
)

// Serve runs impl as a go-plugin export plugin. Invoked with --plugin-info it
// prints the plugin metadata as JSON and exits instead, which is how the host
// discovers the plugin's protocol and version.
func Serve(impl ExportPlugin) {
	if len(os.Args) > 1 && os.Args[1] == "--plugin-info" {
		info := impl.GetMetadata()
		if info.ProtocolVersion == "" {
			info.ProtocolVersion = ProtocolVersion
		}
		if info.PluginProtocol == "" {
			info.PluginProtocol = string(PluginTypeGoPlugin)
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(info); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding plugin info: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: Handshake,
		Plugins: map[string]plugin.Plugin{
			PluginName: &ExportPluginRPC{Impl: impl},
		},
	})
}
