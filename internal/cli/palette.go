package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/shadecraft/internal/colour"
)

func newPaletteCmd(a *app) *cobra.Command {
	var (
		harmony    colour.HarmonyRule
		simulation colour.SimulationMode
		format     string
		preview    string
		swap       bool
	)

	cmd := &cobra.Command{
		Use:   "palette [primary]",
		Short: "Build a palette from a primary colour",
		Long: `Derive a secondary colour from the primary using a harmony rule, generate
a shade ramp for each and report the contrast between them.

The contrast report always uses the real colours, even when a colour vision
deficiency is being simulated.

Examples:
  # Complementary palette from the default primary
  shadecraft palette

  # Triadic palette, as JSON
  shadecraft palette 3b82f6 --harmony triadic --format json

  # See the palette as someone with deuteranopia would
  shadecraft palette "#e11d48" --simulate deuteranopia`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			primary, err := primaryArg(args)
			if err != nil {
				return err
			}

			palette := colour.NewPalette(primary, harmony)
			report := palette.Contrast(swap)
			shown := palette.Simulate(simulation)
			a.logger.Debug("palette built", "primary", palette.Primary, "secondary", palette.Secondary,
				"harmony", harmony, "simulation", simulation, "ratio", report.Ratio)

			out := cmd.OutOrStdout()
			if format == formatJSON {
				return writeJSON(out, shown.Document(report))
			}

			fmt.Fprint(out, shown.StringWithPreview(showPreview(preview, out)))
			fmt.Fprintln(out)
			writeContrast(out, report, swap)
			return nil
		},
	}

	cmd.Flags().Var(newHarmonyValue(&harmony, colour.HarmonyComplementary), "harmony", "harmony rule (complementary, analogous, triadic, split-complementary)")
	cmd.Flags().Var(newSimulationValue(&simulation, colour.SimulationNone), "simulate", "colour vision deficiency to simulate (none, protanopia, deuteranopia, tritanopia, achromatopsia)")
	cmd.Flags().VarP(newChoiceValue(&format, formatText, formatText, formatJSON), "format", "f", "output format (text, json)")
	cmd.Flags().Var(newChoiceValue(&preview, previewAuto, previewAuto, previewAlways, previewNever), "preview", "show ANSI colour previews (auto, always, never)")
	cmd.Flags().BoolVar(&swap, "swap", false, "check the secondary colour on the primary instead")

	return cmd
}

func writeContrast(w io.Writer, report colour.ContrastReport, swap bool) {
	pair := "Primary on Secondary"
	if swap {
		pair = "Secondary on Primary"
	}
	fmt.Fprintf(w, "Contrast (%s): %.2f:1\n", pair, report.Ratio)
	fmt.Fprintf(w, "  Normal text: %s\n", report.Normal)
	fmt.Fprintf(w, "  Large text:  %s\n", report.Large)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
