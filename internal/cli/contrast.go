package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/shadecraft/internal/colour"
)

func newContrastCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "contrast <foreground> <background>",
		Short: "Check the WCAG contrast ratio between two colours",
		Long: `Compute the WCAG 2.x contrast ratio between two colours and grade it for
normal and large text.

  AA  needs 4.5:1 for normal text and 3:1 for large text.
  AAA needs 7:1 for normal text and 4.5:1 for large text.

Examples:
  shadecraft contrast 767676 ffffff`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fg, err := parseHexArg(args[0])
			if err != nil {
				return err
			}
			bg, err := parseHexArg(args[1])
			if err != nil {
				return err
			}

			report := colour.Contrast(fg, bg)
			a.logger.Debug("contrast computed", "foreground", fg, "background", bg, "ratio", report.Ratio)

			out := cmd.OutOrStdout()
			if format == formatJSON {
				return writeJSON(out, report)
			}

			fmt.Fprintf(out, "Contrast ratio: %.2f:1\n", report.Ratio)
			fmt.Fprintf(out, "  Normal text: %s\n", report.Normal)
			fmt.Fprintf(out, "  Large text:  %s\n", report.Large)
			return nil
		},
	}

	cmd.Flags().VarP(newChoiceValue(&format, formatText, formatText, formatJSON), "format", "f", "output format (text, json)")

	return cmd
}
