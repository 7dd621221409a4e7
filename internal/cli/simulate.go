package cli

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/shadecraft/internal/colour"
)

func newSimulateCmd(a *app) *cobra.Command {
	var (
		mode    colour.SimulationMode
		preview string
	)

	cmd := &cobra.Command{
		Use:   "simulate <hex>...",
		Short: "Show how colours appear with a colour vision deficiency",
		Long: `Simulate protanopia, deuteranopia, tritanopia or achromatopsia for one or
more colours. Without --mode every deficiency is shown.

Examples:
  shadecraft simulate 4f46e5
  shadecraft simulate ff0000 00ff00 --mode protanopia`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			modes := colour.SimulationModes[1:]
			if cmd.Flags().Changed("mode") {
				modes = []colour.SimulationMode{mode}
			}

			headers := []string{"Colour"}
			for _, m := range modes {
				headers = append(headers, m.Label())
			}
			table := NewTable(headers)

			out := cmd.OutOrStdout()
			withPreview := showPreview(preview, out)
			for _, arg := range args {
				hex, err := parseHexArg(arg)
				if err != nil {
					return err
				}
				row := []string{swatchCell(hex, withPreview)}
				for _, m := range modes {
					row = append(row, swatchCell(colour.SimulateColor(hex, m), withPreview))
				}
				table.AddRow(row)
			}

			a.logger.Debug("simulated colours", "count", len(args), "modes", len(modes))
			_, err := out.Write([]byte(table.Render()))
			return err
		},
	}

	cmd.Flags().Var(newSimulationValue(&mode, colour.SimulationNone), "mode", "deficiency to simulate (none, protanopia, deuteranopia, tritanopia, achromatopsia)")
	cmd.Flags().Var(newChoiceValue(&preview, previewAuto, previewAuto, previewAlways, previewNever), "preview", "show ANSI colour previews (auto, always, never)")

	return cmd
}

// swatchCell renders a hex value, prefixed by a small colour block when
// previews are on.
func swatchCell(hex string, withPreview bool) string {
	if !withPreview {
		return hex
	}
	return colour.ColourPreview(colour.HexToRGB(hex), 2) + " " + hex
}
