// Package cli_test provides tests for the CLI package.
package cli_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmylchreest/shadecraft/internal/cli"
	"github.com/jmylchreest/shadecraft/internal/colour"
	"github.com/jmylchreest/shadecraft/internal/research"
)

// run executes a fresh root command with args and returns what it wrote to
// stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return runWithPlugins(t, "", args...)
}

// runWithPlugins is run with SHADECRAFT_PLUGINS set to plugins.
func runWithPlugins(t *testing.T, plugins string, args ...string) (string, string, error) {
	t.Helper()

	t.Setenv("SHADECRAFT_PLUGINS", plugins)
	t.Setenv("SHADECRAFT_DISABLED_PLUGINS", "")

	var outBuf, errBuf bytes.Buffer
	rootCmd := cli.NewRootCmd()
	rootCmd.SetOut(&outBuf)
	rootCmd.SetErr(&errBuf)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func TestPaletteCommand(t *testing.T) {
	t.Run("DefaultPrimary", func(t *testing.T) {
		out, _, err := run(t, "palette", "--preview", "never")
		if err != nil {
			t.Fatalf("palette failed: %v", err)
		}

		for _, want := range []string{
			"Harmony: Complementary",
			"Primary:   #4f46e5",
			"Secondary: #dce546",
			"    50  #dbd9fa",
			"   900  #070524",
			"Contrast (Primary on Secondary): 4.59:1",
			"Normal text: AA",
			"Large text:  AAA",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
		if strings.Contains(out, "\x1b[") {
			t.Error("--preview never should not emit escape sequences")
		}
	})

	t.Run("Swap", func(t *testing.T) {
		out, _, err := run(t, "palette", "4f46e5", "--swap", "--preview", "never")
		if err != nil {
			t.Fatalf("palette failed: %v", err)
		}
		if !strings.Contains(out, "Contrast (Secondary on Primary): 4.59:1") {
			t.Errorf("swapped contrast line missing:\n%s", out)
		}
	})

	t.Run("JSON", func(t *testing.T) {
		out, _, err := run(t, "palette", "#4f46e5", "--harmony", "triadic", "--format", "json")
		if err != nil {
			t.Fatalf("palette failed: %v", err)
		}

		var doc colour.PaletteJSON
		if err := json.Unmarshal([]byte(out), &doc); err != nil {
			t.Fatalf("output is not palette JSON: %v\n%s", err, out)
		}
		if doc.Secondary.Hex != "#e54f46" {
			t.Errorf("secondary = %s, want #e54f46", doc.Secondary.Hex)
		}
		if doc.Harmony != colour.HarmonyTriadic {
			t.Errorf("harmony = %s, want triadic", doc.Harmony)
		}
		if len(doc.Primary.Shades) != 10 {
			t.Errorf("got %d primary shades, want 10", len(doc.Primary.Shades))
		}
	})

	t.Run("SimulationKeepsRealContrast", func(t *testing.T) {
		out, _, err := run(t, "palette", "4f46e5", "--simulate", "achromatopsia", "--format", "json")
		if err != nil {
			t.Fatalf("palette failed: %v", err)
		}

		var doc colour.PaletteJSON
		if err := json.Unmarshal([]byte(out), &doc); err != nil {
			t.Fatalf("output is not palette JSON: %v", err)
		}
		if doc.Primary.Hex != "#5b5b5b" {
			t.Errorf("simulated primary = %s, want #5b5b5b", doc.Primary.Hex)
		}
		if doc.Simulation != colour.SimulationAchromatopsia {
			t.Errorf("simulation = %q, want achromatopsia", doc.Simulation)
		}
		want := colour.Contrast("#4f46e5", "#dce546")
		if doc.Contrast != want {
			t.Errorf("contrast = %+v, want %+v", doc.Contrast, want)
		}
	})

	t.Run("InvalidHarmony", func(t *testing.T) {
		_, _, err := run(t, "palette", "--harmony", "tetradic")
		if err == nil {
			t.Fatal("expected an error for an unknown harmony rule")
		}
	})

	t.Run("InvalidColour", func(t *testing.T) {
		_, _, err := run(t, "palette", "not-a-colour")
		if !errors.Is(err, colour.ErrInvalidHex) {
			t.Fatalf("error = %v, want ErrInvalidHex", err)
		}
	})
}

func TestShadesCommand(t *testing.T) {
	out, _, err := run(t, "shades", "808080", "--preview", "never")
	if err != nil {
		t.Fatalf("shades failed: %v", err)
	}

	want := strings.Join([]string{
		"  50  #e6e6e6",
		" 100  #d1d1d1",
		" 200  #bdbdbd",
		" 300  #a9a9a9",
		" 400  #949494",
		" 500  #808080",
		" 600  #656565",
		" 700  #4a4a4a",
		" 800  #2f2f2f",
		" 900  #141414",
	}, "\n") + "\n"
	if out != want {
		t.Errorf("shades output =\n%s\nwant\n%s", out, want)
	}
}

func TestShadesCommandJSON(t *testing.T) {
	out, _, err := run(t, "shades", "#808080", "--format", "json")
	if err != nil {
		t.Fatalf("shades failed: %v", err)
	}
	if !strings.HasPrefix(out, "{\n  \"50\": \"#e6e6e6\",\n  \"100\": \"#d1d1d1\",") {
		t.Errorf("JSON ramp not in label order:\n%s", out)
	}
}

func TestContrastCommand(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		want   []string
		errMsg string
	}{
		{
			name: "GreyOnWhite",
			args: []string{"contrast", "767676", "ffffff"},
			want: []string{"Contrast ratio: 4.54:1", "Normal text: AA", "Large text:  AAA"},
		},
		{
			name: "BlackOnWhite",
			args: []string{"contrast", "#000", "#fff"},
			want: []string{"Contrast ratio: 21.00:1", "Normal text: AAA"},
		},
		{
			name:   "BadBackground",
			args:   []string{"contrast", "000000", "zzzzzz"},
			errMsg: "invalid colour",
		},
		{
			name:   "MissingArgument",
			args:   []string{"contrast", "000000"},
			errMsg: "accepts 2 arg(s)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, tt.args...)
			if tt.errMsg != "" {
				if err == nil || !strings.Contains(err.Error(), tt.errMsg) {
					t.Fatalf("error = %v, want it to contain %q", err, tt.errMsg)
				}
				return
			}
			if err != nil {
				t.Fatalf("contrast failed: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestContrastCommandJSON(t *testing.T) {
	out, _, err := run(t, "contrast", "767676", "ffffff", "--format", "json")
	if err != nil {
		t.Fatalf("contrast failed: %v", err)
	}

	var report colour.ContrastReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("output is not a contrast report: %v", err)
	}
	if report.Normal != colour.WCAGAA || report.Large != colour.WCAGAAA {
		t.Errorf("report = %+v, want AA normal and AAA large", report)
	}
}

func TestSimulateCommand(t *testing.T) {
	t.Run("SingleMode", func(t *testing.T) {
		out, _, err := run(t, "simulate", "ff0000", "--mode", "protanopia")
		if err != nil {
			t.Fatalf("simulate failed: %v", err)
		}
		want := "Colour   Protanopia\n" +
			"-------  ----------\n" +
			"#ff0000  #918e00   \n"
		if out != want {
			t.Errorf("simulate output =\n%q\nwant\n%q", out, want)
		}
	})

	t.Run("AllModes", func(t *testing.T) {
		out, _, err := run(t, "simulate", "ff0000", "00ff00")
		if err != nil {
			t.Fatalf("simulate failed: %v", err)
		}
		for _, want := range []string{"Protanopia", "Deuteranopia", "Tritanopia", "Achromatopsia", "#9fb300", "#f20000", "#4c4c4c"} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
		if strings.Count(out, "\n") != 4 {
			t.Errorf("expected header, separator and 2 rows, got:\n%s", out)
		}
	})

	t.Run("InvalidMode", func(t *testing.T) {
		_, _, err := run(t, "simulate", "ff0000", "--mode", "blurry")
		if err == nil || !strings.Contains(err.Error(), "invalid simulation mode") {
			t.Fatalf("error = %v, want invalid simulation mode", err)
		}
	})
}

func TestRandomCommand(t *testing.T) {
	out, _, err := run(t, "random", "--count", "5", "--preview", "never")
	if err != nil {
		t.Fatalf("random failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5:\n%s", len(lines), out)
	}
	for _, line := range lines {
		if _, err := colour.ParseHex(line); err != nil || len(line) != 7 {
			t.Errorf("line %q is not a #rrggbb colour", line)
		}
	}

	if _, _, err := run(t, "random", "--count", "0"); err == nil {
		t.Error("expected an error for --count 0")
	}
}

func TestExportCommand(t *testing.T) {
	t.Run("WritesFiles", func(t *testing.T) {
		dir := t.TempDir()

		out, _, err := run(t, "export", "4f46e5", "--format", "css,json,tailwind,image", "--output-dir", dir)
		if err != nil {
			t.Fatalf("export failed: %v", err)
		}

		for _, name := range []string{"palette.css", "palette.json", "tailwind.config.js", "palette.png"} {
			path := filepath.Join(dir, name)
			info, err := os.Stat(path)
			if err != nil {
				t.Errorf("expected %s to be written: %v", name, err)
				continue
			}
			if info.Size() == 0 {
				t.Errorf("%s is empty", name)
			}
			if !strings.Contains(out, path) {
				t.Errorf("output does not mention %s:\n%s", path, out)
			}
		}

		css, err := os.ReadFile(filepath.Join(dir, "palette.css"))
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(css), "--primary-50: #dbd9fa;") {
			t.Errorf("palette.css missing primary-50:\n%s", css)
		}
	})

	t.Run("NormalisesShorthandHex", func(t *testing.T) {
		dir := t.TempDir()

		_, _, err := run(t, "export", "ABC", "--format", "css,json", "--output-dir", dir)
		if err != nil {
			t.Fatalf("export failed: %v", err)
		}

		css, err := os.ReadFile(filepath.Join(dir, "palette.css"))
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(css), "--primary-500: #aabbcc;") {
			t.Errorf("palette.css missing normalised primary-500:\n%s", css)
		}

		data, err := os.ReadFile(filepath.Join(dir, "palette.json"))
		if err != nil {
			t.Fatal(err)
		}
		var ramps map[string]map[string]string
		if err := json.Unmarshal(data, &ramps); err != nil {
			t.Fatalf("palette.json is invalid: %v", err)
		}
		if got := ramps["primary"]["500"]; got != "#aabbcc" {
			t.Errorf("primary 500 = %q, want #aabbcc", got)
		}
	})

	t.Run("SimulatedContrast", func(t *testing.T) {
		dir := t.TempDir()

		_, _, err := run(t, "export", "4f46e5", "--harmony", "complementary", "--simulate", "achromatopsia",
			"--format", "json", "--json.detailed", "--output-dir", dir)
		if err != nil {
			t.Fatalf("export failed: %v", err)
		}

		data, err := os.ReadFile(filepath.Join(dir, "palette.json"))
		if err != nil {
			t.Fatal(err)
		}
		var doc colour.PaletteJSON
		if err := json.Unmarshal(data, &doc); err != nil {
			t.Fatalf("palette.json is invalid: %v", err)
		}
		if doc.Primary.Hex != "#5b5b5b" {
			t.Errorf("primary.hex = %s, want #5b5b5b", doc.Primary.Hex)
		}
		if want := colour.Contrast("#4f46e5", "#dce546"); doc.Contrast != want {
			t.Errorf("contrast = %+v, want %+v", doc.Contrast, want)
		}
	})

	t.Run("DryRun", func(t *testing.T) {
		dir := t.TempDir()

		out, _, err := run(t, "export", "--format", "css", "--output-dir", dir, "--dry-run")
		if err != nil {
			t.Fatalf("export failed: %v", err)
		}
		if !strings.Contains(out, "Would write: "+filepath.Join(dir, "palette.css")) {
			t.Errorf("dry run output unexpected:\n%s", out)
		}
		if _, err := os.Stat(filepath.Join(dir, "palette.css")); !os.IsNotExist(err) {
			t.Errorf("dry run should not write files, stat err = %v", err)
		}
	})

	t.Run("PerPluginFlag", func(t *testing.T) {
		dir := t.TempDir()

		_, _, err := run(t, "export", "--format", "tailwind", "--tailwind.format", "css", "--output-dir", dir)
		if err != nil {
			t.Fatalf("export failed: %v", err)
		}
		if _, err := os.Stat(filepath.Join(dir, "theme.css")); err != nil {
			t.Errorf("expected theme.css: %v", err)
		}
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		_, _, err := run(t, "export", "--format", "pdf", "--output-dir", t.TempDir())
		if err == nil || !strings.Contains(err.Error(), "unknown export format") {
			t.Fatalf("error = %v, want unknown export format", err)
		}
	})

	t.Run("PluginArgsForBuiltin", func(t *testing.T) {
		_, _, err := run(t, "export", "--format", "css", "--plugin-args", `css={"x":1}`, "--dry-run")
		if err == nil || !strings.Contains(err.Error(), "only supported by external plugins") {
			t.Fatalf("error = %v, want external plugin error", err)
		}
	})
}

func TestPluginsListCommand(t *testing.T) {
	out, _, err := run(t, "plugins", "list")
	if err != nil {
		t.Fatalf("plugins list failed: %v", err)
	}

	for _, name := range []string{"css", "image", "json", "tailwind"} {
		if !strings.Contains(out, name) {
			t.Errorf("plugins list missing %q:\n%s", name, out)
		}
	}
	if !strings.Contains(out, "builtin") {
		t.Errorf("plugins list should mark built-in plugins:\n%s", out)
	}
}

func TestExternalPluginsLoadOnlyWhenNeeded(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "queried")
	path := filepath.Join(t.TempDir(), "scss.sh")
	script := `#!/bin/sh
if [ "$1" = "--plugin-info" ]; then
  echo queried >> "` + marker + `"
  printf '{"name":"scss","version":"1.0.0","description":"SCSS variables","plugin_protocol":"json-stdio"}\n'
  exit 0
fi
cat > /dev/null
printf '{}\n'
`
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	plugins := "scss=" + path

	for _, args := range [][]string{{"version"}, {"random"}, {"palette", "4f46e5"}} {
		t.Run(args[0], func(t *testing.T) {
			if _, _, err := runWithPlugins(t, plugins, args...); err != nil {
				t.Fatalf("%s failed: %v", args[0], err)
			}
			if _, err := os.Stat(marker); !os.IsNotExist(err) {
				t.Errorf("%s queried the external plugin, stat err = %v", args[0], err)
			}
		})
	}

	t.Run("plugins list", func(t *testing.T) {
		out, _, err := runWithPlugins(t, plugins, "plugins", "list")
		if err != nil {
			t.Fatalf("plugins list failed: %v", err)
		}
		if _, err := os.Stat(marker); err != nil {
			t.Errorf("plugins list did not load the external plugin: %v", err)
		}
		for _, want := range []string{"scss", "external", "SCSS variables", path} {
			if !strings.Contains(out, want) {
				t.Errorf("plugins list missing %q:\n%s", want, out)
			}
		}
	})
}

func TestPreviewDefaultsToAuto(t *testing.T) {
	root := cli.NewRootCmd()

	for _, name := range []string{"palette", "shades", "simulate", "random", "research"} {
		t.Run(name, func(t *testing.T) {
			cmd, _, err := root.Find([]string{name})
			if err != nil {
				t.Fatalf("Find(%q) error = %v", name, err)
			}
			flag := cmd.Flags().Lookup("preview")
			if flag == nil {
				t.Fatalf("%s has no --preview flag", name)
			}
			if flag.DefValue != "auto" {
				t.Errorf("%s --preview default = %q, want auto", name, flag.DefValue)
			}
		})
	}
}

func TestResearchCommandRequiresAPIKey(t *testing.T) {
	t.Setenv(research.EnvAPIKey, "")
	t.Setenv(research.EnvBackend, "")

	_, _, err := run(t, "research", "4f46e5")
	if !errors.Is(err, research.ErrMissingAPIKey) {
		t.Fatalf("error = %v, want ErrMissingAPIKey", err)
	}
}

func TestVerboseAndQuietConflict(t *testing.T) {
	_, _, err := run(t, "--verbose", "--quiet", "random")
	if err == nil || !strings.Contains(err.Error(), "cannot be used together") {
		t.Fatalf("error = %v, want conflict error", err)
	}
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(out, "shadecraft version ") {
		t.Errorf("version output = %q, want shadecraft version prefix", out)
	}
}
