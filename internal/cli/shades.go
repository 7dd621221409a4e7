package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/shadecraft/internal/colour"
	"github.com/jmylchreest/shadecraft/internal/plugin/output/jsonout"
)

func newShadesCmd(a *app) *cobra.Command {
	var (
		format  string
		preview string
	)

	cmd := &cobra.Command{
		Use:   "shades <hex>",
		Short: "Generate the ten step shade ramp for a colour",
		Long: `Generate a ramp of ten shades, labelled 50 to 900, holding the colour's hue
and saturation. The 500 shade is the colour itself.

Examples:
  shadecraft shades 4f46e5
  shadecraft shades "#0ea5e9" --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hex, err := parseHexArg(args[0])
			if err != nil {
				return err
			}

			ramp := colour.GenerateColorShades(hex)
			a.logger.Debug("shades generated", "base", hex)

			out := cmd.OutOrStdout()
			if format == formatJSON {
				return writeJSON(out, jsonout.Ramp(ramp))
			}

			withPreview := showPreview(preview, out)
			for i, shade := range ramp {
				if withPreview {
					fmt.Fprintf(out, "%4s  %s\n", ramp.Label(i), colour.ColourPreviewWithText(colour.HexToRGB(shade), shade, 10))
				} else {
					fmt.Fprintf(out, "%4s  %s\n", ramp.Label(i), shade)
				}
			}
			return nil
		},
	}

	cmd.Flags().VarP(newChoiceValue(&format, formatText, formatText, formatJSON), "format", "f", "output format (text, json)")
	cmd.Flags().Var(newChoiceValue(&preview, previewAuto, previewAuto, previewAlways, previewNever), "preview", "show ANSI colour previews (auto, always, never)")

	return cmd
}
