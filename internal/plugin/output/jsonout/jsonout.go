// Package jsonout provides an export plugin that writes the shade ramps as JSON.
package jsonout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/jmylchreest/shadecraft/internal/colour"
	"github.com/spf13/cobra"
)

// Plugin implements the output.Plugin interface for JSON.
type Plugin struct {
	detailed  bool
	outputDir string
}

// New creates a new JSON export plugin.
func New() *Plugin {
	return &Plugin{}
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return "json"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "JSON object of shade label to hex for each ramp"
}

// RegisterFlags registers plugin-specific flags with the cobra command.
func (p *Plugin) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&p.detailed, "json.detailed", false, "Include RGB, HSL and contrast data")
	cmd.Flags().StringVar(&p.outputDir, "json.output-dir", "", "Output directory (default: current directory)")
}

// Validate checks if the plugin configuration is valid.
func (p *Plugin) Validate() error {
	return nil
}

// DefaultOutputDir returns the default output directory for this plugin.
func (p *Plugin) DefaultOutputDir() string {
	if p.outputDir != "" {
		return p.outputDir
	}
	return "."
}

// Document is the compact JSON export layout.
type Document struct {
	Primary   Ramp `json:"primary"`
	Secondary Ramp `json:"secondary"`
}

// Ramp marshals a shade ramp as an object keyed by label, in ramp order.
type Ramp colour.ShadeRamp

// MarshalJSON implements json.Marshaler.
func (r Ramp) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, hex := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		value, err := json.Marshal(hex)
		if err != nil {
			return nil, err
		}
		buf.WriteString(strconv.Quote(strconv.Itoa(colour.ShadeLabels[i])))
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Generate renders palette.json.
func (p *Plugin) Generate(palette *colour.Palette) (map[string][]byte, error) {
	if palette == nil {
		return nil, fmt.Errorf("palette cannot be nil")
	}

	var (
		data []byte
		err  error
	)
	if p.detailed {
		data, err = palette.ToJSON()
	} else {
		data, err = json.MarshalIndent(Document{
			Primary:   Ramp(palette.PrimaryShades),
			Secondary: Ramp(palette.SecondaryShades),
		}, "", "  ")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal palette: %w", err)
	}

	return map[string][]byte{"palette.json": append(data, '\n')}, nil
}
