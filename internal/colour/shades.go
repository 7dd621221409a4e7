package colour

import "strconv"

const (
	// shadeCount is the number of entries in every ramp.
	shadeCount = 10

	// baseIndex is the ramp position holding the unmodified base colour (label 500).
	baseIndex = 5

	// lightCeiling and darkFloor bound the ramp's lightness in percent, so the
	// ends never reach pure white or pure black.
	lightCeiling = 98.0
	darkFloor    = 8.0

	fallbackHex = "#000000"
)

// ShadeLabels are the conventional names of the ramp positions.
var ShadeLabels = [shadeCount]int{50, 100, 200, 300, 400, 500, 600, 700, 800, 900}

// ShadeRamp is an ordered lightest-to-darkest sequence of ten hex colours.
type ShadeRamp [shadeCount]string

// Base returns the ramp's 500 entry, which is the colour it was built from.
func (r ShadeRamp) Base() string {
	return r[baseIndex]
}

// Label returns the shade label of position i as a string (e.g. "500").
func (r ShadeRamp) Label(i int) string {
	return strconv.Itoa(ShadeLabels[i])
}

// All returns an iterator over (label, hex) pairs in ramp order.
func (r ShadeRamp) All() func(func(int, string) bool) {
	return func(yield func(int, string) bool) {
		for i, hex := range r {
			if !yield(ShadeLabels[i], hex) {
				return
			}
		}
	}
}

// GenerateColorShades builds a ten step ramp from base, holding hue and
// saturation while stepping lightness towards 98% (indices 0-4) and 8%
// (indices 6-9). Index 5 is base exactly as given. Malformed input yields a
// ramp of ten blacks.
func GenerateColorShades(baseHex string) ShadeRamp {
	base, err := ParseHex(baseHex)
	if err != nil {
		return fallbackRamp()
	}
	hsl := RGBToHSL(base)

	var shades ShadeRamp
	shades[baseIndex] = baseHex

	for i := baseIndex - 1; i >= 0; i-- {
		lightness := hsl.L + ((lightCeiling-hsl.L)/6)*float64(baseIndex-i)
		shades[i] = HSLToHex(hsl.H, hsl.S, lightness)
	}

	for i := baseIndex + 1; i < shadeCount; i++ {
		lightness := hsl.L - ((hsl.L-darkFloor)/4)*float64(i-baseIndex)
		shades[i] = HSLToHex(hsl.H, hsl.S, lightness)
	}

	return shades
}

func fallbackRamp() ShadeRamp {
	var shades ShadeRamp
	for i := range shades {
		shades[i] = fallbackHex
	}
	return shades
}
