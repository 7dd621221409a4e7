// Package output provides the interface and base types for export plugins.
package output

import (
	"sort"

	"github.com/jmylchreest/shadecraft/internal/colour"
	"github.com/spf13/cobra"
)

// Plugin represents an export plugin that renders a palette into one or
// more files.
type Plugin interface {
	// Name returns the plugin's name (e.g., "css", "tailwind").
	Name() string

	// Description returns a human-readable description of the plugin.
	Description() string

	// Generate renders the palette.
	// Returns map of filename -> content to support plugins that generate multiple files.
	Generate(palette *colour.Palette) (map[string][]byte, error)

	// RegisterFlags registers plugin-specific flags with cobra command.
	RegisterFlags(cmd *cobra.Command)

	// Validate checks if the plugin configuration is valid.
	Validate() error

	// DefaultOutputDir returns the default output directory for this plugin.
	DefaultOutputDir() string
}

// Registry holds all registered export plugins.
type Registry struct {
	plugins map[string]Plugin
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		plugins: make(map[string]Plugin),
	}
}

// Register adds a plugin to the registry, replacing any plugin of the same name.
func (r *Registry) Register(plugin Plugin) {
	r.plugins[plugin.Name()] = plugin
}

// Get retrieves a plugin by name.
func (r *Registry) Get(name string) (Plugin, bool) {
	plugin, ok := r.plugins[name]
	return plugin, ok
}

// List returns all registered plugin names in sorted order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.plugins))
	for name := range r.plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns all registered plugins.
func (r *Registry) All() map[string]Plugin {
	// Return a copy to prevent external modification
	plugins := make(map[string]Plugin, len(r.plugins))
	for name, plugin := range r.plugins {
		plugins[name] = plugin
	}
	return plugins
}
