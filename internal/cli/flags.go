package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/jmylchreest/shadecraft/internal/colour"
)

// harmonyValue is a pflag.Value for a colour.HarmonyRule.
type harmonyValue struct {
	rule *colour.HarmonyRule
}

var _ pflag.Value = harmonyValue{}

func newHarmonyValue(rule *colour.HarmonyRule, def colour.HarmonyRule) harmonyValue {
	*rule = def
	return harmonyValue{rule: rule}
}

func (v harmonyValue) String() string {
	if v.rule == nil {
		return ""
	}
	return v.rule.String()
}

func (v harmonyValue) Set(s string) error {
	rule, err := colour.ParseHarmonyRule(s)
	if err != nil {
		return err
	}
	*v.rule = rule
	return nil
}

func (v harmonyValue) Type() string {
	return "harmony"
}

// simulationValue is a pflag.Value for a colour.SimulationMode.
type simulationValue struct {
	mode *colour.SimulationMode
}

var _ pflag.Value = simulationValue{}

func newSimulationValue(mode *colour.SimulationMode, def colour.SimulationMode) simulationValue {
	*mode = def
	return simulationValue{mode: mode}
}

func (v simulationValue) String() string {
	if v.mode == nil {
		return ""
	}
	return v.mode.String()
}

func (v simulationValue) Set(s string) error {
	mode, err := colour.ParseSimulationMode(s)
	if err != nil {
		return err
	}
	*v.mode = mode
	return nil
}

func (v simulationValue) Type() string {
	return "mode"
}

// choiceValue is a pflag.Value restricted to a fixed set of strings.
type choiceValue struct {
	value   *string
	choices []string
}

var _ pflag.Value = choiceValue{}

func newChoiceValue(value *string, def string, choices ...string) choiceValue {
	*value = def
	return choiceValue{value: value, choices: choices}
}

func (v choiceValue) String() string {
	if v.value == nil {
		return ""
	}
	return *v.value
}

func (v choiceValue) Set(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, choice := range v.choices {
		if s == choice {
			*v.value = s
			return nil
		}
	}
	return fmt.Errorf("must be one of: %s", strings.Join(v.choices, ", "))
}

func (v choiceValue) Type() string {
	return "string"
}

// Preview modes for ANSI colour blocks.
const (
	previewAuto   = "auto"
	previewAlways = "always"
	previewNever  = "never"
)

// Output formats for commands that print a palette.
const (
	formatText = "text"
	formatJSON = "json"
)

// showPreview resolves a preview mode for w. Auto previews only when w is a
// terminal.
func showPreview(mode string, w io.Writer) bool {
	switch mode {
	case previewAlways:
		return true
	case previewNever:
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// parseHexArg accepts a hex colour with or without the leading '#' and
// returns it as lowercase #rrggbb.
func parseHexArg(arg string) (string, error) {
	hex := strings.TrimSpace(arg)
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	if _, err := colour.ParseHex(hex); err != nil {
		return "", fmt.Errorf("invalid colour %q: %w", arg, err)
	}
	return colour.NormaliseHex(hex), nil
}

// primaryArg returns the first argument as a hex colour, or the default
// primary when there are no arguments.
func primaryArg(args []string) (string, error) {
	if len(args) == 0 {
		return colour.DefaultPrimary, nil
	}
	return parseHexArg(args[0])
}
