package plugin

// PaletteData is the palette sent to export plugins.
type PaletteData struct {
	Primary         string         `json:"primary"`
	Secondary       string         `json:"secondary"`
	Harmony         string         `json:"harmony"`
	Simulation      string         `json:"simulation,omitempty"`
	PrimaryShades   []Shade        `json:"primary_shades"`
	SecondaryShades []Shade        `json:"secondary_shades"`
	PluginArgs      map[string]any `json:"plugin_args,omitempty"`
	DryRun          bool           `json:"dry_run"`
}

// Shade is one labelled step of a shade ramp, e.g. {500, "#4f46e5"}.
type Shade struct {
	Label int    `json:"label"`
	Hex   string `json:"hex"`
}

// PluginInfo contains metadata about a plugin.
type PluginInfo struct {
	Name            string `json:"name"`
	Version         string `json:"version"`
	ProtocolVersion string `json:"protocol_version"`
	Description     string `json:"description"`
	PluginProtocol  string `json:"plugin_protocol"` // "json-stdio" or "go-plugin"
}
