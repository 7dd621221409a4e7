// Package testing provides shared test utilities for export plugins.
package testing

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/shadecraft/internal/colour"
	"github.com/jmylchreest/shadecraft/internal/plugin/output"
)

// TestConfig holds configuration for running plugin tests.
type TestConfig struct {
	ExpectedName  string   // Plugin name, also the flag prefix
	ExpectedFiles []string // Files that Generate() should return
}

// RunAllTests runs all standard tests for a plugin.
func RunAllTests(t *testing.T, p output.Plugin, config TestConfig) {
	TestBasicInterface(t, p, config.ExpectedName)
	TestGeneration(t, p, config.ExpectedFiles)
	TestFlags(t, p, config.ExpectedName)
}

// TestBasicInterface tests the plugin interface methods that all plugins must implement.
func TestBasicInterface(t *testing.T, p output.Plugin, expectedName string) {
	t.Run("Name", func(t *testing.T) {
		if p.Name() != expectedName {
			t.Errorf("Name() = %s, want %s", p.Name(), expectedName)
		}
	})

	t.Run("Description", func(t *testing.T) {
		if p.Description() == "" {
			t.Error("Description() should not be empty")
		}
	})

	t.Run("DefaultOutputDir", func(t *testing.T) {
		if p.DefaultOutputDir() == "" {
			t.Error("DefaultOutputDir() should not be empty")
		}
	})

	t.Run("Validate", func(t *testing.T) {
		if err := p.Validate(); err != nil {
			t.Errorf("Validate() error = %v, want nil", err)
		}
	})
}

// TestGeneration tests the Generate method across harmony rules and
// simulated palettes.
func TestGeneration(t *testing.T, p output.Plugin, expectedFiles []string) {
	for _, palette := range TestPalettes() {
		name := palette.Harmony.String()
		if palette.Simulation != colour.SimulationNone {
			name += "/" + palette.Simulation.String()
		}

		t.Run("Generate/"+name, func(t *testing.T) {
			files, err := p.Generate(palette)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}

			if len(files) != len(expectedFiles) {
				t.Fatalf("Generate() returned %d files, want %d", len(files), len(expectedFiles))
			}
			for _, expectedFile := range expectedFiles {
				content, ok := files[expectedFile]
				if !ok {
					t.Errorf("Generate() did not return %s", expectedFile)
					continue
				}
				if len(content) == 0 {
					t.Errorf("Generate() returned empty %s", expectedFile)
				}
			}
		})
	}

	t.Run("GenerateNilPalette", func(t *testing.T) {
		if _, err := p.Generate(nil); err == nil {
			t.Error("Generate() with nil palette should return error")
		}
	})
}

// TestFlags tests that the plugin registers its flags under its own prefix and
// that the output directory flag is honoured.
func TestFlags(t *testing.T, p output.Plugin, expectedFlagPrefix string) {
	t.Run("RegisterFlags", func(t *testing.T) {
		cmd := &cobra.Command{Use: "test"}
		p.RegisterFlags(cmd)

		expectedFlag := expectedFlagPrefix + ".output-dir"
		if cmd.Flags().Lookup(expectedFlag) == nil {
			t.Fatalf("RegisterFlags() did not register %s flag", expectedFlag)
		}

		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if !strings.HasPrefix(f.Name, expectedFlagPrefix+".") {
				t.Errorf("flag %s is not prefixed with %s.", f.Name, expectedFlagPrefix)
			}
		})

		before := p.DefaultOutputDir()
		t.Cleanup(func() { _ = cmd.Flags().Set(expectedFlag, "") })
		if err := cmd.Flags().Set(expectedFlag, "themes/out"); err != nil {
			t.Fatalf("Set(%s) error = %v", expectedFlag, err)
		}
		if got := p.DefaultOutputDir(); got != "themes/out" {
			t.Errorf("DefaultOutputDir() = %s after setting %s, want themes/out (was %s)", got, expectedFlag, before)
		}
	})
}

// TestPalettes returns palettes covering every harmony rule plus a simulated
// palette.
func TestPalettes() []*colour.Palette {
	palettes := []*colour.Palette{
		colour.NewPalette("#4f46e5", colour.HarmonyComplementary),
		colour.NewPalette("#0ea5e9", colour.HarmonyAnalogous),
		colour.NewPalette("#e11d48", colour.HarmonyTriadic),
		colour.NewPalette("#808080", colour.HarmonySplitComplementary),
	}
	return append(palettes, palettes[0].Simulate(colour.SimulationDeuteranopia))
}
