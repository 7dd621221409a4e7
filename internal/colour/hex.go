// Package colour provides the colour maths behind shadecraft: hex, RGB and
// HSL conversion, harmony rules, shade ramps, WCAG contrast and colour-vision
// deficiency simulation.
//
// Every function in this package is pure. Malformed input degrades to a
// deterministic fallback (black) instead of returning an error, so callers
// driving a live display never fail on a partially typed value. ParseHex is
// the one exception and reports the error for callers that want it.
package colour

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidHex is returned by ParseHex for anything other than #rgb or #rrggbb.
var ErrInvalidHex = errors.New("invalid hex colour")

// RGB represents a colour in RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB color as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB color as a lowercase hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// ParseHex parses "#rgb" or "#rrggbb" (either case) into an RGB value.
// Shorthand digits are doubled, so "#abc" parses as "#aabbcc".
func ParseHex(hex string) (RGB, error) {
	if !strings.HasPrefix(hex, "#") {
		return RGB{}, fmt.Errorf("%w: %q (missing '#')", ErrInvalidHex, hex)
	}

	digits := hex[1:]
	switch len(digits) {
	case 3:
		var v [3]uint8
		for i := range 3 {
			n, ok := hexDigit(digits[i])
			if !ok {
				return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, hex)
			}
			v[i] = n<<4 | n
		}
		return RGB{R: v[0], G: v[1], B: v[2]}, nil
	case 6:
		var v [3]uint8
		for i := range 3 {
			hi, ok1 := hexDigit(digits[2*i])
			lo, ok2 := hexDigit(digits[2*i+1])
			if !ok1 || !ok2 {
				return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, hex)
			}
			v[i] = hi<<4 | lo
		}
		return RGB{R: v[0], G: v[1], B: v[2]}, nil
	default:
		return RGB{}, fmt.Errorf("%w: %q (expected 3 or 6 digits, got %d)", ErrInvalidHex, hex, len(digits))
	}
}

// HexToRGB parses a hex colour, returning black for malformed input.
func HexToRGB(hex string) RGB {
	rgb, err := ParseHex(hex)
	if err != nil {
		return RGB{}
	}
	return rgb
}

// IsValidHex reports whether hex is a well-formed #rgb or #rrggbb value.
func IsValidHex(hex string) bool {
	_, err := ParseHex(hex)
	return err == nil
}

// NormaliseHex returns the canonical lowercase #rrggbb form of hex,
// or "#000000" when hex is malformed.
func NormaliseHex(hex string) string {
	return HexToRGB(hex).Hex()
}

// rgbFromFloat rounds each channel to the nearest integer and clamps it to [0, 255].
func rgbFromFloat(r, g, b float64) RGB {
	return RGB{R: channel(r), G: channel(g), B: channel(b)}
}

func channel(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(math.Round(clamp(v, 0, 255)))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// hexDigit converts a single hex digit to its value.
func hexDigit(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
