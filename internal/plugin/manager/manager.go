// Package manager provides export plugin management with configuration support.
package manager

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/shadecraft/internal/colour"
	"github.com/jmylchreest/shadecraft/internal/plugin/executor"
	"github.com/jmylchreest/shadecraft/internal/plugin/output"
	"github.com/jmylchreest/shadecraft/internal/plugin/output/css"
	"github.com/jmylchreest/shadecraft/internal/plugin/output/jsonout"
	"github.com/jmylchreest/shadecraft/internal/plugin/output/swatch"
	"github.com/jmylchreest/shadecraft/internal/plugin/output/tailwind"
	"github.com/jmylchreest/shadecraft/pkg/plugin"
)

// Environment variables read by WithEnvConfig.
const (
	EnvDisabledPlugins = "SHADECRAFT_DISABLED_PLUGINS"
	EnvPlugins         = "SHADECRAFT_PLUGINS"
)

const (
	versionUnknown = "unknown"

	// defaultTimeout bounds a single external plugin run.
	defaultTimeout = 30 * time.Second
)

// Config holds plugin configuration.
type Config struct {
	// DisabledPlugins is a list of plugin names to disable. "all" disables
	// every plugin.
	DisabledPlugins []string

	// ExternalPlugins maps a plugin name to the absolute path of its binary.
	ExternalPlugins map[string]string
}

// Builder provides a fluent interface for constructing a Manager with configuration.
type Builder struct {
	config   Config
	registry *output.Registry
	logger   hclog.Logger
	useEnv   bool
}

// NewBuilder creates a new Manager builder with default settings.
func NewBuilder() *Builder {
	return &Builder{
		registry: output.NewRegistry(),
		logger:   hclog.NewNullLogger(),
	}
}

// WithConfig sets the configuration for the manager.
func (b *Builder) WithConfig(config Config) *Builder {
	b.config = config
	return b
}

// WithEnvConfig loads configuration from environment variables.
// Reads SHADECRAFT_DISABLED_PLUGINS and SHADECRAFT_PLUGINS.
func (b *Builder) WithEnvConfig() *Builder {
	b.useEnv = true
	return b
}

// WithLogger sets the logger handed to external plugin executors.
func (b *Builder) WithLogger(logger hclog.Logger) *Builder {
	if logger != nil {
		b.logger = logger
	}
	return b
}

// WithCustomRegistry allows providing a custom plugin registry (useful for testing).
func (b *Builder) WithCustomRegistry(registry *output.Registry) *Builder {
	b.registry = registry
	return b
}

// Build constructs the Manager and registers the built-in plugins. Configured
// external plugins are not run until LoadExternalPlugins is called.
func (b *Builder) Build() *Manager {
	config := b.config

	if b.useEnv {
		if disabled := os.Getenv(EnvDisabledPlugins); disabled != "" {
			config.DisabledPlugins = parsePluginList(disabled)
		}
		if external := os.Getenv(EnvPlugins); external != "" {
			parsed, invalid := parseExternalList(external)
			for _, entry := range invalid {
				b.logger.Warn("ignoring malformed plugin entry", "entry", entry, "env", EnvPlugins)
			}
			if config.ExternalPlugins == nil {
				config.ExternalPlugins = make(map[string]string, len(parsed))
			}
			for name, path := range parsed {
				config.ExternalPlugins[name] = path
			}
		}
	}

	m := &Manager{
		config:   config,
		registry: b.registry,
		logger:   b.logger,
	}

	m.registerBuiltinPlugins()
	return m
}

// Manager manages plugin enable/disable state and owns the plugin registry.
type Manager struct {
	config   Config
	registry *output.Registry
	logger   hclog.Logger

	loadExternal sync.Once
}

// LoadExternalPlugins queries and registers every configured external plugin.
// Only the first call does any work. A plugin that cannot be loaded is logged
// and skipped.
func (m *Manager) LoadExternalPlugins(ctx context.Context) {
	m.loadExternal.Do(func() {
		names := make([]string, 0, len(m.config.ExternalPlugins))
		for name := range m.config.ExternalPlugins {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			if err := m.RegisterExternalPlugin(ctx, name, m.config.ExternalPlugins[name]); err != nil {
				m.logger.Warn("skipping external plugin", "name", name, "error", err)
			}
		}
	})
}

// registerBuiltinPlugins registers all built-in plugins.
func (m *Manager) registerBuiltinPlugins() {
	m.registry.Register(css.New())
	m.registry.Register(jsonout.New())
	m.registry.Register(tailwind.New())
	m.registry.Register(swatch.New())
}

// Registry returns the plugin registry.
func (m *Manager) Registry() *output.Registry {
	return m.registry
}

// GetPlugin retrieves a plugin by name, whether or not it is enabled.
func (m *Manager) GetPlugin(name string) (output.Plugin, bool) {
	return m.registry.Get(name)
}

// GetConfig returns the current configuration.
func (m *Manager) GetConfig() Config {
	return m.config
}

// IsEnabled reports whether the named plugin is enabled. Plugins are enabled
// unless listed in DisabledPlugins.
func (m *Manager) IsEnabled(name string) bool {
	for _, disabled := range m.config.DisabledPlugins {
		if disabled == "all" || disabled == name {
			return false
		}
	}
	return true
}

// SetDisabled adds a plugin to the disabled list.
func (m *Manager) SetDisabled(name string) {
	if slices.Contains(m.config.DisabledPlugins, name) {
		return
	}
	m.config.DisabledPlugins = append(m.config.DisabledPlugins, name)
}

// Resolve returns the enabled plugins for names, in the order given.
// Unknown and disabled names are an error.
func (m *Manager) Resolve(names []string) ([]output.Plugin, error) {
	plugins := make([]output.Plugin, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		p, ok := m.registry.Get(name)
		if !ok {
			return nil, fmt.Errorf("unknown export format: %s (available: %s)", name, strings.Join(m.registry.List(), ", "))
		}
		if !m.IsEnabled(name) {
			return nil, fmt.Errorf("export format %s is disabled", name)
		}
		plugins = append(plugins, p)
	}
	return plugins, nil
}

// Entry describes a registered plugin for listings.
type Entry struct {
	Name        string
	Description string
	External    bool
	Enabled     bool

	// Path is the binary of an external plugin, empty for built-ins.
	Path string
}

// List returns every registered plugin, sorted by name.
func (m *Manager) List() []Entry {
	names := m.registry.List()
	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		p, _ := m.registry.Get(name)
		entry := Entry{
			Name:        name,
			Description: p.Description(),
			Enabled:     m.IsEnabled(name),
		}
		if ext, ok := p.(*ExternalPlugin); ok {
			entry.External = true
			entry.Path = ext.Path()
		}
		entries = append(entries, entry)
	}
	return entries
}

// RegisterExternalPlugin queries the binary at path and registers it under name.
func (m *Manager) RegisterExternalPlugin(ctx context.Context, name, path string) error {
	if !filepath.IsAbs(path) {
		return fmt.Errorf("plugin path must be absolute: %s", path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("plugin not found or not accessible: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("plugin path is a directory, not a file: %s", path)
	}

	exec, err := executor.New(ctx, path, m.logger)
	if err != nil {
		return err
	}
	defer exec.Close()

	pluginInfo := exec.Info()
	if pluginInfo.ProtocolVersion == "" {
		m.logger.Debug("plugin does not report a protocol version", "name", name)
	}

	m.registry.Register(&ExternalPlugin{
		name:        name,
		description: pluginInfo.Description,
		version:     pluginInfo.Version,
		path:        path,
		logger:      m.logger,
		timeout:     defaultTimeout,
	})
	m.logger.Debug("registered external plugin", "name", name, "path", path)
	return nil
}

// parsePluginList parses a comma-separated list of plugin names.
func parsePluginList(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// parseExternalList parses "name=/path,name2=/path2". Entries without a name
// or a path are returned as invalid.
func parseExternalList(s string) (map[string]string, []string) {
	plugins := make(map[string]string)
	var invalid []string
	for _, entry := range parsePluginList(s) {
		name, path, ok := strings.Cut(entry, "=")
		name, path = strings.TrimSpace(name), strings.TrimSpace(path)
		if !ok || name == "" || path == "" {
			invalid = append(invalid, entry)
			continue
		}
		plugins[name] = path
	}
	return plugins, invalid
}

// ExternalPlugin wraps an external executable as an export plugin.
type ExternalPlugin struct {
	name        string
	description string
	version     string
	path        string
	args        map[string]any
	dryRun      bool
	logger      hclog.Logger
	timeout     time.Duration
}

// NewExternalPlugin creates a new external plugin wrapper.
func NewExternalPlugin(name, description, path string, logger hclog.Logger) *ExternalPlugin {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &ExternalPlugin{
		name:        name,
		description: description,
		path:        path,
		logger:      logger,
		timeout:     defaultTimeout,
	}
}

// Name returns the plugin's name.
func (p *ExternalPlugin) Name() string {
	return p.name
}

// Description returns the plugin's description.
func (p *ExternalPlugin) Description() string {
	if p.description == "" {
		return fmt.Sprintf("external plugin (%s)", p.path)
	}
	return p.description
}

// Version returns the version the plugin reported at registration.
func (p *ExternalPlugin) Version() string {
	if p.version == "" {
		return versionUnknown
	}
	return p.version
}

// Path returns the plugin binary path.
func (p *ExternalPlugin) Path() string {
	return p.path
}

// SetArgs sets custom arguments passed through to the plugin.
func (p *ExternalPlugin) SetArgs(args map[string]any) {
	p.args = args
}

// SetDryRun sets the dry-run mode reported to the plugin.
func (p *ExternalPlugin) SetDryRun(dryRun bool) {
	p.dryRun = dryRun
}

// Generate runs the external plugin and returns the files it produced.
func (p *ExternalPlugin) Generate(palette *colour.Palette) (map[string][]byte, error) {
	if palette == nil {
		return nil, fmt.Errorf("palette cannot be nil")
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	exec, err := executor.New(ctx, p.path, p.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create plugin executor: %w", err)
	}
	defer exec.Close()

	data := PaletteData(palette)
	data.PluginArgs = p.args
	data.DryRun = p.dryRun

	files, err := exec.Execute(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("plugin %s failed: %w", p.name, err)
	}
	if files == nil {
		files = make(map[string][]byte)
	}
	return files, nil
}

// RegisterFlags is a no-op for external plugins (they don't have flags).
func (p *ExternalPlugin) RegisterFlags(_ *cobra.Command) {}

// Validate checks if the plugin is valid.
func (p *ExternalPlugin) Validate() error {
	if p.path == "" {
		return fmt.Errorf("plugin %s has no path", p.name)
	}
	return nil
}

// DefaultOutputDir returns the default output directory for this plugin.
func (p *ExternalPlugin) DefaultOutputDir() string {
	return "."
}

// PaletteData converts a palette to the form sent to external plugins. Every
// colour is sent as lowercase #rrggbb.
func PaletteData(palette *colour.Palette) plugin.PaletteData {
	return plugin.PaletteData{
		Primary:         colour.NormaliseHex(palette.Primary),
		Secondary:       colour.NormaliseHex(palette.Secondary),
		Harmony:         palette.Harmony.String(),
		Simulation:      simulationName(palette.Simulation),
		PrimaryShades:   shades(palette.PrimaryShades),
		SecondaryShades: shades(palette.SecondaryShades),
	}
}

func simulationName(mode colour.SimulationMode) string {
	if mode == colour.SimulationNone {
		return ""
	}
	return mode.String()
}

func shades(ramp colour.ShadeRamp) []plugin.Shade {
	out := make([]plugin.Shade, 0, len(ramp))
	for label, hex := range ramp.All() {
		out = append(out, plugin.Shade{Label: label, Hex: colour.NormaliseHex(hex)})
	}
	return out
}
