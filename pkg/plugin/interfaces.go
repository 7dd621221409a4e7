package plugin

import (
	"context"
)

// ExportPlugin is the interface that external export plugins must implement
// for go-plugin RPC.
type ExportPlugin interface {
	// Generate renders the palette into one or more files.
	Generate(ctx context.Context, palette PaletteData) (map[string][]byte, error)

	// GetMetadata returns plugin metadata.
	GetMetadata() PluginInfo
}
