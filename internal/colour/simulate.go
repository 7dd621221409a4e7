package colour

import (
	"fmt"
	"strings"
)

// SimulationMode selects a colour-vision deficiency to simulate.
type SimulationMode string

// Simulation modes.
const (
	SimulationNone          SimulationMode = "none"
	SimulationProtanopia    SimulationMode = "protanopia"    // red cones absent
	SimulationDeuteranopia  SimulationMode = "deuteranopia"  // green cones absent
	SimulationTritanopia    SimulationMode = "tritanopia"    // blue cones absent
	SimulationAchromatopsia SimulationMode = "achromatopsia" // monochromacy
)

// SimulationModes lists every mode in display order.
var SimulationModes = []SimulationMode{
	SimulationNone,
	SimulationProtanopia,
	SimulationDeuteranopia,
	SimulationTritanopia,
	SimulationAchromatopsia,
}

// matrix is a row-major 3x3 channel mixing transform.
type matrix [3][3]float64

// The matrices are applied to gamma-encoded channels, not linear light.
// This is the common consumer-grade approximation and the outputs depend on it.
var simulationMatrices = map[SimulationMode]matrix{
	SimulationProtanopia: {
		{0.567, 0.433, 0.000},
		{0.558, 0.442, 0.000},
		{0.000, 0.242, 0.758},
	},
	SimulationDeuteranopia: {
		{0.625, 0.375, 0.000},
		{0.700, 0.300, 0.000},
		{0.000, 0.300, 0.700},
	},
	SimulationTritanopia: {
		{0.950, 0.050, 0.000},
		{0.000, 0.433, 0.567},
		{0.000, 0.475, 0.525},
	},
	SimulationAchromatopsia: {
		{0.299, 0.587, 0.114},
		{0.299, 0.587, 0.114},
		{0.299, 0.587, 0.114},
	},
}

// String returns the mode name.
func (m SimulationMode) String() string {
	return string(m)
}

// Label returns the capitalised display name, e.g. "Protanopia".
func (m SimulationMode) Label() string {
	if m == "" {
		return ""
	}
	return strings.ToUpper(string(m[:1])) + string(m[1:])
}

// ParseSimulationMode parses a mode name, ignoring case.
func ParseSimulationMode(s string) (SimulationMode, error) {
	name := SimulationMode(strings.ToLower(strings.TrimSpace(s)))
	for _, mode := range SimulationModes {
		if mode == name {
			return mode, nil
		}
	}
	return "", fmt.Errorf("invalid simulation mode: %s (valid: none, protanopia, deuteranopia, tritanopia, achromatopsia)", s)
}

// SimulateColor returns how hex appears under the given deficiency.
// SimulationNone returns hex unchanged. Other modes mix the channels, clamp
// each to [0, 255] and return lowercase #rrggbb. An unknown mode leaves the
// channels as they are.
func SimulateColor(hex string, mode SimulationMode) string {
	if mode == SimulationNone {
		return hex
	}
	return SimulateRGB(HexToRGB(hex), mode).Hex()
}

// SimulateRGB applies the mode's matrix to an RGB value.
func SimulateRGB(rgb RGB, mode SimulationMode) RGB {
	m, ok := simulationMatrices[mode]
	if !ok {
		return rgb
	}

	r, g, b := float64(rgb.R), float64(rgb.G), float64(rgb.B)
	return rgbFromFloat(
		m[0][0]*r+m[0][1]*g+m[0][2]*b,
		m[1][0]*r+m[1][1]*g+m[1][2]*b,
		m[2][0]*r+m[2][1]*g+m[2][2]*b,
	)
}

// SimulateRamp applies SimulateColor to every entry of a ramp.
func SimulateRamp(ramp ShadeRamp, mode SimulationMode) ShadeRamp {
	var out ShadeRamp
	for i, hex := range ramp {
		out[i] = SimulateColor(hex, mode)
	}
	return out
}
