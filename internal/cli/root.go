// Package cli provides the command-line interface for shadecraft.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/shadecraft/internal/plugin/manager"
	"github.com/jmylchreest/shadecraft/internal/version"
)

// app holds the state shared by every command of one root command tree.
type app struct {
	logger  hclog.Logger
	plugins *manager.Manager
	verbose bool
	quiet   bool
}

// stderrWriter forwards to the command's current error writer, so output
// redirected with SetErr after construction is honoured.
type stderrWriter struct {
	cmd *cobra.Command
}

func (w stderrWriter) Write(p []byte) (int, error) {
	return w.cmd.ErrOrStderr().Write(p)
}

// NewRootCmd builds the shadecraft command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "shadecraft",
		Short: "A colour palette and accessibility toolkit",
		Long: `Shadecraft builds colour palettes from a single primary colour.

It derives a secondary colour from a harmony rule, generates a ten step
shade ramp for each, checks WCAG contrast, simulates colour vision
deficiencies and exports the result as CSS, JSON, Tailwind or a PNG
swatch sheet.`,
		Version:      version.Short(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if a.verbose && a.quiet {
				return fmt.Errorf("--verbose and --quiet cannot be used together")
			}
			a.logger.SetLevel(logLevel(a.verbose, a.quiet))
			return nil
		},
	}

	a.logger = newLogger(stderrWriter{cmd: rootCmd})
	a.plugins = manager.NewBuilder().
		WithEnvConfig().
		WithLogger(a.logger).
		Build()

	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "only log errors")
	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(
		newPaletteCmd(a),
		newShadesCmd(a),
		newContrastCmd(a),
		newSimulateCmd(a),
		newRandomCmd(a),
		newExportCmd(a),
		newResearchCmd(a),
		newPluginsCmd(a),
		newVersionCmd(),
	)

	return rootCmd
}

// Execute loads .env, runs the root command and exits non-zero on failure.
// This is called by main.main().
func Execute() {
	// Variables already set in the environment win over the file.
	_ = godotenv.Load()

	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(w io.Writer) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   "shadecraft",
		Output: w,
		Level:  hclog.Info,
	})
}

func logLevel(verbose, quiet bool) hclog.Level {
	switch {
	case verbose:
		return hclog.Debug
	case quiet:
		return hclog.Error
	default:
		return hclog.Info
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
