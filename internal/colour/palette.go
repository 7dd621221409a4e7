package colour

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultPrimary is the primary colour used when none is given.
const DefaultPrimary = "#4f46e5"

// Palette is a primary colour, its harmony-derived secondary colour and a
// shade ramp for each.
type Palette struct {
	Primary         string         `json:"primary"`
	Secondary       string         `json:"secondary"`
	Harmony         HarmonyRule    `json:"harmony"`
	PrimaryShades   ShadeRamp      `json:"primary_shades"`
	SecondaryShades ShadeRamp      `json:"secondary_shades"`
	Simulation      SimulationMode `json:"simulation,omitempty"`

	// source is the palette Simulate was called on.
	source *Palette
}

// NewPalette derives the secondary colour from primary using rule and
// generates both shade ramps.
func NewPalette(primary string, rule HarmonyRule) *Palette {
	secondary := GenerateSecondaryColor(primary, rule)
	return &Palette{
		Primary:         primary,
		Secondary:       secondary,
		Harmony:         rule,
		PrimaryShades:   GenerateColorShades(primary),
		SecondaryShades: GenerateColorShades(secondary),
		Simulation:      SimulationNone,
	}
}

// Simulate returns a copy of the palette with every colour passed through
// SimulateColor. The receiver is not modified. Simulating an already
// simulated palette starts again from its unsimulated colours.
func (p *Palette) Simulate(mode SimulationMode) *Palette {
	p = p.Unsimulated()
	return &Palette{
		Primary:         SimulateColor(p.Primary, mode),
		Secondary:       SimulateColor(p.Secondary, mode),
		Harmony:         p.Harmony,
		PrimaryShades:   SimulateRamp(p.PrimaryShades, mode),
		SecondaryShades: SimulateRamp(p.SecondaryShades, mode),
		Simulation:      mode,
		source:          p,
	}
}

// Unsimulated returns the palette a simulated palette was derived from, or
// the receiver itself when it was not produced by Simulate.
func (p *Palette) Unsimulated() *Palette {
	if p.source != nil {
		return p.source
	}
	return p
}

// Contrast reports the contrast of the primary colour on the secondary.
// With swap set the secondary is treated as the foreground instead.
func (p *Palette) Contrast(swap bool) ContrastReport {
	if swap {
		return Contrast(p.Secondary, p.Primary)
	}
	return Contrast(p.Primary, p.Secondary)
}

// PaletteJSON is the serialised form of a palette.
type PaletteJSON struct {
	Primary    ColourJSON     `json:"primary"`
	Secondary  ColourJSON     `json:"secondary"`
	Harmony    HarmonyRule    `json:"harmony"`
	Simulation SimulationMode `json:"simulation,omitempty"`
	Contrast   ContrastReport `json:"contrast"`
}

// ColourJSON is a single colour with its derived values and ramp.
type ColourJSON struct {
	Hex    string  `json:"hex"`
	RGB    RGB     `json:"rgb"`
	HSL    HSL     `json:"hsl"`
	Shades []Shade `json:"shades"`
}

// Shade is a labelled ramp entry.
type Shade struct {
	Label int    `json:"label"`
	Hex   string `json:"hex"`
}

// ToJSON converts the palette to indented JSON, reporting the contrast of
// the unsimulated primary colour on the unsimulated secondary.
func (p *Palette) ToJSON() ([]byte, error) {
	return json.MarshalIndent(p.Document(p.Unsimulated().Contrast(false)), "", "  ")
}

// Document returns the serialisable form of the palette carrying the given
// contrast report, which may have been computed from another palette.
func (p *Palette) Document(contrast ContrastReport) PaletteJSON {
	doc := PaletteJSON{
		Primary:   colourJSON(p.Primary, p.PrimaryShades),
		Secondary: colourJSON(p.Secondary, p.SecondaryShades),
		Harmony:   p.Harmony,
		Contrast:  contrast,
	}
	if p.Simulation != SimulationNone {
		doc.Simulation = p.Simulation
	}
	return doc
}

func colourJSON(hex string, ramp ShadeRamp) ColourJSON {
	rgb := HexToRGB(hex)
	shades := make([]Shade, 0, shadeCount)
	for label, shade := range ramp.All() {
		shades = append(shades, Shade{Label: label, Hex: shade})
	}
	return ColourJSON{
		Hex:    rgb.Hex(),
		RGB:    rgb,
		HSL:    RGBToHSL(rgb),
		Shades: shades,
	}
}

// String returns a human-readable string representation of the palette.
func (p *Palette) String() string {
	return p.StringWithPreview(false)
}

// StringWithPreview renders the palette as text, optionally with ANSI
// colour blocks beside each entry.
func (p *Palette) StringWithPreview(showPreview bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Harmony: %s\n", p.Harmony.Label())
	if p.Simulation != "" && p.Simulation != SimulationNone {
		fmt.Fprintf(&b, "Simulation: %s\n", p.Simulation.Label())
	}
	b.WriteString("\n")

	writeRamp(&b, "Primary", p.Primary, p.PrimaryShades, showPreview)
	b.WriteString("\n")
	writeRamp(&b, "Secondary", p.Secondary, p.SecondaryShades, showPreview)

	return b.String()
}

func writeRamp(b *strings.Builder, title, hex string, ramp ShadeRamp, showPreview bool) {
	rgb := HexToRGB(hex)
	if showPreview {
		fmt.Fprintf(b, "%-10s %s %s  %s\n", title+":", ColourPreview(rgb, 4), rgb.Hex(), RGBToHSL(rgb))
	} else {
		fmt.Fprintf(b, "%-10s %s  %s\n", title+":", rgb.Hex(), RGBToHSL(rgb))
	}

	for i, shade := range ramp {
		if showPreview {
			fmt.Fprintf(b, "  %4s  %s\n", ramp.Label(i), ColourPreviewWithText(HexToRGB(shade), shade, 10))
		} else {
			fmt.Fprintf(b, "  %4s  %s\n", ramp.Label(i), shade)
		}
	}
}
