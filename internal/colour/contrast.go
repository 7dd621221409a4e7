package colour

import (
	"image/color"
	"math"
)

// WCAGLevel is a WCAG 2.x conformance level for a contrast ratio.
type WCAGLevel string

// Conformance levels.
const (
	WCAGFail WCAGLevel = "Fail"
	WCAGAA   WCAGLevel = "AA"
	WCAGAAA  WCAGLevel = "AAA"
)

// Contrast thresholds. Large text (18pt, or 14pt bold) has its own scale.
const (
	normalTextAA  = 4.5
	normalTextAAA = 7.0
	largeTextAA   = 3.0
	largeTextAAA  = 4.5
)

// ContrastReport classifies a contrast ratio for normal and large text.
type ContrastReport struct {
	Ratio  float64   `json:"ratio"`
	Normal WCAGLevel `json:"normal"`
	Large  WCAGLevel `json:"large"`
}

// Luminance calculates the relative luminance of a hex colour according to WCAG 2.0.
// Returns a value between 0 (darkest) and 1 (lightest). Malformed input is black.
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func Luminance(hex string) float64 {
	return luminanceRGB(HexToRGB(hex))
}

// RelativeLuminance is Luminance for an image/color value.
func RelativeLuminance(c color.Color) float64 {
	r, g, b, _ := c.RGBA()
	// Convert from 16-bit to 8-bit.
	return luminanceRGB(RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)})
}

func luminanceRGB(rgb RGB) float64 {
	r := gammaCorrect(float64(rgb.R) / 255.0)
	g := gammaCorrect(float64(rgb.G) / 255.0)
	b := gammaCorrect(float64(rgb.B) / 255.0)

	// ITU-R BT.709 coefficients.
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// gammaCorrect linearises a gamma-encoded sRGB component in [0, 1].
func gammaCorrect(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio calculates the contrast ratio between two colours according to WCAG 2.0.
// Returns a value between 1 and 21 and does not depend on argument order.
// If the computation does not produce a usable ratio the result is 1.
// https://www.w3.org/TR/WCAG20/#contrast-ratiodef.
func ContrastRatio(hexA, hexB string) float64 {
	return contrastFromLuminance(Luminance(hexA), Luminance(hexB))
}

func contrastFromLuminance(l1, l2 float64) float64 {
	// Ensure l1 is the lighter colour.
	if l1 < l2 {
		l1, l2 = l2, l1
	}

	ratio := (l1 + 0.05) / (l2 + 0.05)
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) || ratio < 1 {
		return 1
	}
	return ratio
}

// WCAGReport classifies ratio against the WCAG AA/AAA thresholds.
// Normal and large text are graded independently.
func WCAGReport(ratio float64) ContrastReport {
	normal := WCAGFail
	switch {
	case ratio >= normalTextAAA:
		normal = WCAGAAA
	case ratio >= normalTextAA:
		normal = WCAGAA
	}

	large := WCAGFail
	switch {
	case ratio >= largeTextAAA:
		large = WCAGAAA
	case ratio >= largeTextAA:
		large = WCAGAA
	}

	return ContrastReport{Ratio: ratio, Normal: normal, Large: large}
}

// Contrast computes the ratio between two colours and classifies it.
func Contrast(foreground, background string) ContrastReport {
	return WCAGReport(ContrastRatio(foreground, background))
}

// Passes reports whether the level meets at least the required level.
func (l WCAGLevel) Passes(required WCAGLevel) bool {
	return l.rank() >= required.rank()
}

func (l WCAGLevel) rank() int {
	switch l {
	case WCAGAAA:
		return 2
	case WCAGAA:
		return 1
	default:
		return 0
	}
}
