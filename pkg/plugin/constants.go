// Package plugin provides the public API for shadecraft export plugins.
// External plugins should import this package instead of internal packages.
package plugin

import (
	"github.com/hashicorp/go-plugin"
)

const (
	// ProtocolVersion defines the current plugin API version.
	// Format: MAJOR.MINOR.PATCH.
	// - Increment MAJOR for breaking changes (incompatible API changes).
	// - Increment MINOR for backward-compatible additions.
	// - Increment PATCH for backward-compatible bug fixes.
	ProtocolVersion = "0.1.0"

	// MinCompatibleVersion is the oldest protocol version this shadecraft version can work with.
	MinCompatibleVersion = "0.1.0"

	// PluginName is the key export plugins are dispensed under.
	PluginName = "export"
)

// Handshake is the handshake configuration for go-plugin protocol.
// go-plugin only compares the major version; minor and patch are checked
// against the --plugin-info reply with IsCompatible.
var Handshake = plugin.HandshakeConfig{
	ProtocolVersion:  uint(CurrentVersion().Major),
	MagicCookieKey:   "SHADECRAFT_PLUGIN",
	MagicCookieValue: "shadecraft_palette_export",
}

// PluginType defines the type of plugin communication protocol.
type PluginType string

const (
	// PluginTypeGoPlugin indicates the plugin uses HashiCorp go-plugin RPC protocol.
	PluginTypeGoPlugin PluginType = "go-plugin"

	// PluginTypeJSON indicates the plugin uses simple JSON over stdin/stdout.
	PluginTypeJSON PluginType = "json-stdio"
)
