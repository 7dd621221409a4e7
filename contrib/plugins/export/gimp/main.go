// gimp - Shadecraft export plugin for GIMP/Inkscape palettes
//
// An external export plugin served over go-plugin RPC. It writes both shade
// ramps as a GIMP palette (.gpl), which GIMP, Inkscape and Krita can load.
//
// Build:
//   go build -o shadecraft-gimp ./contrib/plugins/export/gimp
//
// Usage:
//   export SHADECRAFT_PLUGINS=gimp=/abs/path/to/shadecraft-gimp
//   shadecraft export 4f46e5 --format gimp --plugin-args gimp='{"name":"Brand"}'
//
// License: MIT

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmylchreest/shadecraft/pkg/plugin"
)

const (
	defaultName = "Shadecraft"
	fileName    = "palette.gpl"
)

// GIMPPlugin renders palettes in the GIMP palette format.
type GIMPPlugin struct{}

// Generate writes palette.gpl. The optional "name" plugin argument sets the
// palette name shown in the application's palette list.
func (p *GIMPPlugin) Generate(_ context.Context, palette plugin.PaletteData) (map[string][]byte, error) {
	if len(palette.PrimaryShades) == 0 || len(palette.SecondaryShades) == 0 {
		return nil, fmt.Errorf("palette has no shades")
	}

	name := defaultName
	if v, ok := palette.PluginArgs["name"].(string); ok && v != "" {
		name = v
	}

	var b strings.Builder
	b.WriteString("GIMP Palette\n")
	fmt.Fprintf(&b, "Name: %s\n", name)
	fmt.Fprintf(&b, "Columns: %d\n", len(palette.PrimaryShades))
	fmt.Fprintf(&b, "# %s harmony from %s\n", palette.Harmony, palette.Primary)

	for _, group := range []struct {
		name   string
		shades []plugin.Shade
	}{
		{"primary", palette.PrimaryShades},
		{"secondary", palette.SecondaryShades},
	} {
		for _, shade := range group.shades {
			r, g, bl, err := channels(shade.Hex)
			if err != nil {
				return nil, fmt.Errorf("%s-%d: %w", group.name, shade.Label, err)
			}
			fmt.Fprintf(&b, "%3d %3d %3d\t%s-%d\n", r, g, bl, group.name, shade.Label)
		}
	}

	return map[string][]byte{fileName: []byte(b.String())}, nil
}

// GetMetadata returns plugin metadata.
func (p *GIMPPlugin) GetMetadata() plugin.PluginInfo {
	return plugin.PluginInfo{
		Name:           "gimp",
		Version:        "0.1.0",
		Description:    "GIMP palette (.gpl) with both shade ramps",
		PluginProtocol: string(plugin.PluginTypeGoPlugin),
	}
}

// channels decodes a #rrggbb or #rgb value in either case.
func channels(hex string) (r, g, b uint8, err error) {
	if len(hex) == 4 && hex[0] == '#' {
		hex = string([]byte{'#', hex[1], hex[1], hex[2], hex[2], hex[3], hex[3]})
	}
	if len(hex) != 7 {
		return 0, 0, 0, fmt.Errorf("invalid hex colour %q", hex)
	}
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex colour %q", hex)
	}
	return r, g, b, nil
}

func main() {
	plugin.Serve(&GIMPPlugin{})
}
