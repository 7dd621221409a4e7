package cli

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/shadecraft/internal/colour"
	"github.com/jmylchreest/shadecraft/internal/plugin/manager"
	"github.com/jmylchreest/shadecraft/internal/plugin/output"
	"github.com/jmylchreest/shadecraft/internal/security"
)

// defaultExportFormats are the built-in formats written when --format is not given.
var defaultExportFormats = []string{"css", "json", "tailwind", "image"}

func newExportCmd(a *app) *cobra.Command {
	var (
		harmony    colour.HarmonyRule
		simulation colour.SimulationMode
		formats    []string
		outputDir  string
		dryRun     bool
		pluginArgs map[string]string
	)

	cmd := &cobra.Command{
		Use:   "export [primary]",
		Short: "Write the palette in one or more export formats",
		Long: `Build a palette and write it with the selected export plugins.

Built-in formats:
  css       CSS custom properties (palette.css)
  json      shade ramps keyed by label (palette.json)
  tailwind  Tailwind CSS theme colours (tailwind.config.js)
  image     PNG swatch sheet (palette.png)

External plugins configured with SHADECRAFT_PLUGINS are selected by the
name they were given there.

Examples:
  # Every built-in format into ./theme
  shadecraft export 4f46e5 --output-dir theme

  # Tailwind v4 theme only
  shadecraft export "#0ea5e9" --format tailwind --tailwind.format css

  # Pass arguments to an external plugin
  shadecraft export --format myplugin --plugin-args myplugin='{"prefix":"brand"}'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			primary, err := primaryArg(args)
			if err != nil {
				return err
			}

			a.plugins.LoadExternalPlugins(cmd.Context())
			plugins, err := a.plugins.Resolve(formats)
			if err != nil {
				return err
			}
			if err := configureExternalPlugins(plugins, pluginArgs, dryRun); err != nil {
				return err
			}

			palette := colour.NewPalette(primary, harmony).Simulate(simulation)
			out := cmd.OutOrStdout()

			succeeded := 0
			for _, plugin := range plugins {
				if err := plugin.Validate(); err != nil {
					a.logger.Warn("skipping export plugin", "plugin", plugin.Name(), "error", err)
					continue
				}
				a.logger.Debug("running export plugin", "plugin", plugin.Name(), "description", plugin.Description())

				files, err := plugin.Generate(palette)
				if err != nil {
					a.logger.Error("export plugin failed", "plugin", plugin.Name(), "error", err)
					continue
				}

				dir := plugin.DefaultOutputDir()
				if outputDir != "" {
					dir = outputDir
				}
				for _, name := range slices.Sorted(maps.Keys(files)) {
					if err := security.ValidateFilePath(name, dir); err != nil {
						return fmt.Errorf("%s returned an unsafe file name: %w", plugin.Name(), err)
					}
					path := filepath.Join(dir, name)
					content := files[name]
					if dryRun {
						fmt.Fprintf(out, "Would write: %s (%d bytes)\n", path, len(content))
						continue
					}
					if err := writeFile(path, content); err != nil {
						return fmt.Errorf("failed to write %s: %w", path, err)
					}
					fmt.Fprintf(out, "Wrote %s (%d bytes)\n", path, len(content))
				}
				succeeded++
			}

			if succeeded == 0 {
				return fmt.Errorf("no export plugins succeeded")
			}
			return nil
		},
	}

	cmd.Flags().Var(newHarmonyValue(&harmony, colour.HarmonyComplementary), "harmony", "harmony rule (complementary, analogous, triadic, split-complementary)")
	cmd.Flags().Var(newSimulationValue(&simulation, colour.SimulationNone), "simulate", "export the palette as seen with a colour vision deficiency")
	cmd.Flags().StringSliceVarP(&formats, "format", "f", defaultExportFormats, "export formats to write")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "directory for every format (overrides per-format output dirs)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list the files that would be written without writing them")
	cmd.Flags().StringToStringVar(&pluginArgs, "plugin-args", nil, "JSON arguments for an external plugin (name='{...}', repeatable)")

	// External plugins register no flags, so the built-ins are enough here.
	for _, name := range a.plugins.Registry().List() {
		plugin, _ := a.plugins.GetPlugin(name)
		plugin.RegisterFlags(cmd)
	}

	return cmd
}

// configureExternalPlugins passes --plugin-args and --dry-run through to any
// external plugins among the selected ones.
func configureExternalPlugins(plugins []output.Plugin, pluginArgs map[string]string, dryRun bool) error {
	for name := range pluginArgs {
		if !slices.ContainsFunc(plugins, func(p output.Plugin) bool { return p.Name() == name }) {
			return fmt.Errorf("--plugin-args given for %q, which is not a selected format", name)
		}
	}

	for _, plugin := range plugins {
		ext, ok := plugin.(*manager.ExternalPlugin)
		if !ok {
			if _, hasArgs := pluginArgs[plugin.Name()]; hasArgs {
				return fmt.Errorf("--plugin-args is only supported by external plugins, not %q", plugin.Name())
			}
			continue
		}

		ext.SetDryRun(dryRun)
		if raw, ok := pluginArgs[plugin.Name()]; ok {
			var args map[string]any
			if err := json.Unmarshal([]byte(raw), &args); err != nil {
				return fmt.Errorf("invalid --plugin-args for %s: %w", plugin.Name(), err)
			}
			ext.SetArgs(args)
		}
	}
	return nil
}

// writeFile writes content to path, creating parent directories as needed.
// A leading ~/ is expanded to the home directory.
func writeFile(path string, content []byte) error {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
