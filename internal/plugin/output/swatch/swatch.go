// Package swatch provides an export plugin that renders the palette as a PNG
// swatch sheet.
package swatch

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strconv"

	"github.com/jmylchreest/shadecraft/internal/colour"
	"github.com/spf13/cobra"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Layout in pixels.
const (
	padding      = 40
	columnWidth  = 280
	columnGap    = 60
	headerHeight = 60
	rowHeight    = 50
	boxWidth     = 60
	hexGap       = 20
	titleOffset  = 30

	// Width and Height are the dimensions of the rendered sheet.
	Width  = padding*2 + columnWidth*2 + columnGap
	Height = padding*2 + headerHeight + rowHeight*10
)

// Theme selects the sheet's background and text colours.
type Theme string

// Sheet themes.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

type themeColours struct {
	background, title, text string
}

var themes = map[Theme]themeColours{
	ThemeLight: {background: "#ffffff", title: "#1e293b", text: "#475569"},
	ThemeDark:  {background: "#1e293b", title: "#f1f5f9", text: "#cbd5e1"},
}

// Plugin implements the output.Plugin interface for PNG swatch sheets.
type Plugin struct {
	theme     string
	outputDir string
}

// New creates a new swatch plugin using the light theme.
func New() *Plugin {
	return &Plugin{theme: string(ThemeLight)}
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return "image"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "PNG swatch sheet of both shade ramps"
}

// RegisterFlags registers plugin-specific flags with the cobra command.
func (p *Plugin) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.theme, "image.theme", string(ThemeLight), "Sheet theme (light or dark)")
	cmd.Flags().StringVar(&p.outputDir, "image.output-dir", "", "Output directory (default: current directory)")
}

// Validate checks if the plugin configuration is valid.
func (p *Plugin) Validate() error {
	if _, ok := themes[Theme(p.theme)]; !ok {
		return fmt.Errorf("invalid theme: %s (must be 'light' or 'dark')", p.theme)
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

// Generate renders palette.png.
func (p *Plugin) Generate(palette *colour.Palette) (map[string][]byte, error) {
	if palette == nil {
		return nil, fmt.Errorf("palette cannot be nil")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	img := Render(palette, Theme(p.theme))

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}

	return map[string][]byte{"palette.png": buf.Bytes()}, nil
}

// Render draws both ramps side by side. An unknown theme renders as light.
func Render(palette *colour.Palette, theme Theme) *image.RGBA {
	tc, ok := themes[theme]
	if !ok {
		tc = themes[ThemeLight]
	}

	img := image.NewRGBA(image.Rect(0, 0, Width, Height))
	fill(img, img.Bounds(), rgba(tc.background))

	drawColumn(img, palette.PrimaryShades, "Primary", padding, tc)
	drawColumn(img, palette.SecondaryShades, "Secondary", padding+columnWidth+columnGap, tc)

	return img
}

func drawColumn(img *image.RGBA, ramp colour.ShadeRamp, title string, x int, tc themeColours) {
	drawText(img, title, x, padding+titleOffset, rgba(tc.title))

	for i, hex := range ramp {
		y := padding + headerHeight + i*rowHeight
		box := image.Rect(x, y, x+boxWidth, y+rowHeight)
		fill(img, box, rgba(hex))

		mid := y + rowHeight/2 + textMiddle()
		label := strconv.Itoa(colour.ShadeLabels[i])
		labelX := x + (boxWidth-measure(label))/2
		drawText(img, label, labelX, mid, labelColour(hex))

		drawText(img, hex, x+boxWidth+hexGap, mid, rgba(tc.text))
	}
}

// labelColour returns black on light swatches and white on dark ones.
func labelColour(hex string) color.Color {
	if colour.RelativeLuminance(rgba(hex)) > 0.5 {
		return color.Black
	}
	return color.White
}

func fill(img draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func drawText(img draw.Image, text string, x, baseline int, c color.Color) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, baseline),
	}
	d.DrawString(text)
}

func measure(text string) int {
	return font.MeasureString(basicfont.Face7x13, text).Round()
}

// textMiddle is the baseline offset that vertically centres a line of text.
func textMiddle() int {
	m := basicfont.Face7x13.Metrics()
	return (m.Ascent - m.Descent).Round() / 2
}

func rgba(hex string) color.RGBA {
	c := colour.HexToRGB(hex)
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}
