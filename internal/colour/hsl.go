package colour

import (
	"fmt"
	"math"
)

// HSL is a colour in hue/saturation/lightness form.
// H is in degrees [0, 360); S and L are percentages [0, 100].
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// String returns the colour in CSS notation, e.g. "hsl(243.4, 75.4%, 58.6%)".
func (c HSL) String() string {
	return fmt.Sprintf("hsl(%.1f, %.1f%%, %.1f%%)", c.H, c.S, c.L)
}

// Hex converts the colour back to a lowercase #rrggbb string.
func (c HSL) Hex() string {
	return HSLToHex(c.H, c.S, c.L)
}

// HexToHSL converts a hex colour to HSL. Malformed input yields black.
func HexToHSL(hex string) HSL {
	return RGBToHSL(HexToRGB(hex))
}

// RGBToHSL converts RGB to HSL.
// When two channels share the maximum, the hue sector is chosen by checking
// red, then green, then blue.
func RGBToHSL(rgb RGB) HSL {
	r := float64(rgb.R) / 255.0
	g := float64(rgb.G) / 255.0
	b := float64(rgb.B) / 255.0

	maxVal := math.Max(r, math.Max(g, b))
	minVal := math.Min(r, math.Min(g, b))
	delta := maxVal - minVal

	l := (maxVal + minVal) / 2.0

	if delta == 0 {
		// Achromatic (grey).
		return HSL{H: 0, S: 0, L: l * 100}
	}

	var s float64
	if l > 0.5 {
		s = delta / (2.0 - maxVal - minVal)
	} else {
		s = delta / (maxVal + minVal)
	}

	var h float64
	switch maxVal {
	case r:
		h = (g - b) / delta
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/delta + 2
	case b:
		h = (r-g)/delta + 4
	}

	return HSL{H: h * 60, S: s * 100, L: l * 100}
}

// HSLToHex converts HSL (degrees, percent, percent) to a lowercase hex string.
// Saturation and lightness are clamped into [0, 100] before the chroma is
// computed, so ramp steps that overshoot still produce a valid colour.
func HSLToHex(h, s, l float64) string {
	return HSLToRGB(h, s, l).Hex()
}

// HSLToRGB converts HSL (degrees, percent, percent) to RGB using the
// six-sector chroma formula.
func HSLToRGB(h, s, l float64) RGB {
	h = normaliseHue(h)
	s = clamp(s, 0, 100) / 100
	l = clamp(l, 0, 100) / 100

	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return rgbFromFloat((r+m)*255, (g+m)*255, (b+m)*255)
}

// normaliseHue wraps a hue in degrees into [0, 360).
func normaliseHue(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// HueDistance calculates the angular distance between two hues on the colour wheel.
// Returns a value between 0 and 180 degrees (shortest path around the wheel).
func HueDistance(h1, h2 float64) float64 {
	diff := math.Abs(normaliseHue(h1) - normaliseHue(h2))
	if diff > 180 {
		diff = 360 - diff
	}
	return diff
}
