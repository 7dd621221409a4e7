package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/shadecraft/internal/colour"
)

func newRandomCmd(a *app) *cobra.Command {
	var (
		count   int
		preview string
	)

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Print random colours",
		Long: `Print colours drawn uniformly from the full 24-bit RGB range, one per line.

Examples:
  shadecraft random
  shadecraft random --count 5 | xargs -n1 shadecraft palette`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be at least 1, got %d", count)
			}

			out := cmd.OutOrStdout()
			withPreview := showPreview(preview, out)
			for range count {
				hex := colour.RandomHex()
				if withPreview {
					fmt.Fprintf(out, "%s %s\n", colour.ColourPreview(colour.HexToRGB(hex), 4), hex)
				} else {
					fmt.Fprintln(out, hex)
				}
			}
			a.logger.Debug("random colours generated", "count", count)
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of colours to print")
	cmd.Flags().Var(newChoiceValue(&preview, previewAuto, previewAuto, previewAlways, previewNever), "preview", "show ANSI colour previews (auto, always, never)")

	return cmd
}
