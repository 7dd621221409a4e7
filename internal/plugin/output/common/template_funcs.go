// Package common provides shared utilities for export plugins.
package common

import (
	"fmt"
	"text/template"

	"github.com/jmylchreest/shadecraft/internal/colour"
)

// TemplateFuncs returns the template functions available to every template
// based export plugin. Colour functions take a hex string, so they compose
// with ranges over shade ramps:
//
//	{{ range .Shades }}{{ .Hex | rgbSpaces }}{{ end }}
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"hex":       hexFunc,
		"rgbSpaces": rgbSpacesFunc,
	}
}

// hexFunc normalises a colour to lowercase #rrggbb, expanding shorthand.
func hexFunc(hex string) string {
	return colour.HexToRGB(hex).Hex()
}

// rgbSpacesFunc returns space separated channels, e.g. "79 70 229".
func rgbSpacesFunc(hex string) string {
	rgb := colour.HexToRGB(hex)
	return fmt.Sprintf("%d %d %d", rgb.R, rgb.G, rgb.B)
}
