// Package tailwind provides a Tailwind CSS output plugin.
package tailwind

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/jmylchreest/shadecraft/internal/colour"
	"github.com/jmylchreest/shadecraft/internal/plugin/output/common"
	"github.com/spf13/cobra"
)

//go:embed *.tmpl
var templates embed.FS

// Plugin implements the output.Plugin interface for Tailwind CSS.
type Plugin struct {
	format    string // "config" or "css"
	outputDir string
}

// New creates a new Tailwind CSS output plugin.
func New() *Plugin {
	return &Plugin{
		format:    "config",
		outputDir: "",
	}
}

// NewWithFormat creates a new Tailwind CSS output plugin with a specific format.
func NewWithFormat(format string) *Plugin {
	return &Plugin{
		format:    format,
		outputDir: "",
	}
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return "tailwind"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "Tailwind colour scales as tailwind.config.js or a v4 @theme stylesheet"
}

// RegisterFlags registers plugin-specific flags with the cobra command.
func (p *Plugin) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.format, "tailwind.format", "config", "Output format (config or css)")
	cmd.Flags().StringVar(&p.outputDir, "tailwind.output-dir", "", "Output directory (default: current directory)")
}

// Validate checks if the plugin configuration is valid.
func (p *Plugin) Validate() error {
	if p.format != "css" && p.format != "config" {
		return fmt.Errorf("invalid format: %s (must be 'config' or 'css')", p.format)
	}
	return nil
}

// DefaultOutputDir returns the default output directory for this plugin.
func (p *Plugin) DefaultOutputDir() string {
	if p.outputDir != "" {
		return p.outputDir
	}
	return "."
}

// Generate renders the palette's colour scales.
func (p *Plugin) Generate(palette *colour.Palette) (map[string][]byte, error) {
	if palette == nil {
		return nil, fmt.Errorf("palette cannot be nil")
	}

	name, file := "tailwind.config.js.tmpl", "tailwind.config.js"
	if p.format == "css" {
		name, file = "theme.css.tmpl", "theme.css"
	}

	content, err := render(name, prepareData(palette))
	if err != nil {
		return nil, err
	}

	return map[string][]byte{file: content}, nil
}

// Data holds the template input.
type Data struct {
	Groups []Group
}

// Group is one named colour scale.
type Group struct {
	Name   string
	Shades []Shade
}

// Shade is a single scale step.
type Shade struct {
	Label int
	Hex   string
}

func prepareData(palette *colour.Palette) Data {
	return Data{Groups: []Group{
		newGroup("primary", palette.PrimaryShades),
		newGroup("secondary", palette.SecondaryShades),
	}}
}

func newGroup(name string, ramp colour.ShadeRamp) Group {
	group := Group{Name: name}
	for label, hex := range ramp.All() {
		group.Shades = append(group.Shades, Shade{Label: label, Hex: hex})
	}
	return group
}

func render(name string, data Data) ([]byte, error) {
	tmplContent, err := templates.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", name, err)
	}

	tmpl, err := template.New(name).Funcs(common.TemplateFuncs()).Parse(string(tmplContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	return buf.Bytes(), nil
}
