package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/shadecraft/internal/colour"
	"github.com/jmylchreest/shadecraft/internal/research"
)

func newResearchCmd(a *app) *cobra.Command {
	var (
		format  string
		preview string
	)

	cmd := &cobra.Command{
		Use:   "research [hex]",
		Short: "Ask Gemini for a design analysis of a colour",
		Long: `Ask a Gemini model about a colour: its psychological impact, the industries
and brands that use it, and accent colours that pair with it.

Configuration is read from the environment (or a .env file):
  ` + research.EnvAPIKey + `            API key for the Gemini API backend
  ` + research.EnvBackend + `  gemini-api (default) or vertex-ai
  ` + research.EnvModel + `    model name (default ` + research.DefaultModel + `)

Examples:
  shadecraft research 4f46e5`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hex, err := primaryArg(args)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			client, err := research.New(ctx, research.ConfigFromEnv(), a.logger)
			if err != nil {
				return err
			}

			result, err := client.Research(ctx, hex)
			if err != nil {
				return fmt.Errorf("research failed for %s: %w", hex, err)
			}

			out := cmd.OutOrStdout()
			if format == formatJSON {
				return writeJSON(out, result)
			}
			writeResearch(out, hex, result, showPreview(preview, out))
			return nil
		},
	}

	cmd.Flags().VarP(newChoiceValue(&format, formatText, formatText, formatJSON), "format", "f", "output format (text, json)")
	cmd.Flags().Var(newChoiceValue(&preview, previewAuto, previewAuto, previewAlways, previewNever), "preview", "show ANSI colour previews (auto, always, never)")

	return cmd
}

func writeResearch(w io.Writer, hex string, r *research.Result, withPreview bool) {
	fmt.Fprintf(w, "Colour: %s\n\n", hex)
	fmt.Fprintf(w, "Psychology:\n  %s\n\n", r.Psychology)
	fmt.Fprintf(w, "Industries: %s\n", strings.Join(r.Industries, ", "))
	fmt.Fprintf(w, "Brands:     %s\n\n", strings.Join(r.BrandExamples, ", "))

	fmt.Fprintln(w, "Accent colours:")
	for _, accent := range r.AccentColorSuggestions {
		if withPreview {
			if rgb, err := colour.ParseHex(accent.Hex); err == nil {
				fmt.Fprintf(w, "  %s %s  %s\n", colour.ColourPreview(rgb, 4), accent.Hex, accent.Name)
				continue
			}
		}
		fmt.Fprintf(w, "  %s  %s\n", accent.Hex, accent.Name)
	}

	if r.AccentUsageNotes != "" {
		fmt.Fprintf(w, "\nUsage:\n  %s\n", r.AccentUsageNotes)
	}
}
