package colour

import (
	"fmt"
	"math"
	"strings"
)

// HarmonyRule selects the fixed hue rotation used to derive a secondary colour.
type HarmonyRule string

// Harmony rules.
const (
	HarmonyComplementary      HarmonyRule = "complementary"
	HarmonyAnalogous          HarmonyRule = "analogous"
	HarmonyTriadic            HarmonyRule = "triadic"
	HarmonySplitComplementary HarmonyRule = "split-complementary"
)

// HarmonyRules lists every rule in display order.
var HarmonyRules = []HarmonyRule{
	HarmonyComplementary,
	HarmonyAnalogous,
	HarmonyTriadic,
	HarmonySplitComplementary,
}

// Offset returns the hue rotation in degrees.
// Unknown rules rotate by 180 degrees, the same as complementary.
func (r HarmonyRule) Offset() float64 {
	switch r {
	case HarmonyAnalogous:
		return 30
	case HarmonyTriadic:
		return 120
	case HarmonySplitComplementary:
		return 150
	default:
		return 180
	}
}

// String returns the rule name.
func (r HarmonyRule) String() string {
	return string(r)
}

// Label returns the short display label used in tables.
func (r HarmonyRule) Label() string {
	switch r {
	case HarmonyComplementary:
		return "Complementary"
	case HarmonyAnalogous:
		return "Analogous"
	case HarmonyTriadic:
		return "Triadic"
	case HarmonySplitComplementary:
		return "Split-Comp"
	default:
		return string(r)
	}
}

// ParseHarmonyRule parses a rule name. Matching ignores case, and both
// underscores and spaces are accepted in place of the hyphen.
func ParseHarmonyRule(s string) (HarmonyRule, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.NewReplacer("_", "-", " ", "-").Replace(name)
	if name == "split-comp" {
		return HarmonySplitComplementary, nil
	}
	for _, rule := range HarmonyRules {
		if string(rule) == name {
			return rule, nil
		}
	}
	return "", fmt.Errorf("invalid harmony rule: %s (valid: complementary, analogous, triadic, split-complementary)", s)
}

// GenerateSecondaryColor rotates the primary colour's hue by the rule's
// offset, keeping saturation and lightness, and returns the result as hex.
func GenerateSecondaryColor(primaryHex string, rule HarmonyRule) string {
	return secondaryHSL(HexToHSL(primaryHex), rule).Hex()
}

func secondaryHSL(primary HSL, rule HarmonyRule) HSL {
	return HSL{
		H: math.Mod(primary.H+rule.Offset(), 360),
		S: primary.S,
		L: primary.L,
	}
}
