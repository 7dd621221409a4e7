// Shadecraft - A colour palette and accessibility toolkit
//
// Shadecraft builds a palette from a single primary colour, checks WCAG
// contrast, simulates colour vision deficiencies and exports the result
// for your stylesheets and design tools.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import "github.com/jmylchreest/shadecraft/internal/cli"

func main() {
	cli.Execute()
}
