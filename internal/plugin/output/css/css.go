// Package css provides an export plugin that writes the shade ramps as CSS
// custom properties.
package css

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/shadecraft/internal/colour"
	"github.com/spf13/cobra"
)

// Plugin implements the output.Plugin interface for CSS variables.
type Plugin struct {
	selector  string
	outputDir string
}

// New creates a new CSS variables export plugin.
func New() *Plugin {
	return &Plugin{
		selector: ":root",
	}
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return "css"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "CSS custom properties (--primary-50 ... --secondary-900)"
}

// RegisterFlags registers plugin-specific flags with the cobra command.
func (p *Plugin) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.selector, "css.selector", p.selector, "Selector wrapping the variables")
	cmd.Flags().StringVar(&p.outputDir, "css.output-dir", "", "Output directory (default: current directory)")
}

// Validate checks if the plugin configuration is valid.
func (p *Plugin) Validate() error {
	if strings.TrimSpace(p.selector) == "" {
		return fmt.Errorf("css selector cannot be empty")
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

// Generate renders palette.css.
func (p *Plugin) Generate(palette *colour.Palette) (map[string][]byte, error) {
	if palette == nil {
		return nil, fmt.Errorf("palette cannot be nil")
	}

	var b strings.Builder
	b.WriteString(p.selector + " {\n")
	writeRamp(&b, "primary", palette.PrimaryShades)
	b.WriteString("\n")
	writeRamp(&b, "secondary", palette.SecondaryShades)
	b.WriteString("}\n")

	return map[string][]byte{"palette.css": []byte(b.String())}, nil
}

func writeRamp(b *strings.Builder, name string, ramp colour.ShadeRamp) {
	for label, hex := range ramp.All() {
		fmt.Fprintf(b, "  --%s-%d: %s;\n", name, label, hex)
	}
}
