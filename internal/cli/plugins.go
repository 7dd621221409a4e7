package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/shadecraft/internal/plugin/manager"
)

func newPluginsCmd(a *app) *cobra.Command {
	pluginsCmd := &cobra.Command{
		Use:   "plugins",
		Short: "Inspect export plugins",
		Long: `Inspect the export plugins available to the export command.

Plugins can be disabled with ` + manager.EnvDisabledPlugins + ` (a comma separated
list of names, or "all"). External plugin binaries are added with
` + manager.EnvPlugins + ` as name=/path/to/binary pairs.`,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List export plugins",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.plugins.LoadExternalPlugins(cmd.Context())
			entries := a.plugins.List()
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No export plugins registered.")
				return nil
			}

			table := NewTable([]string{"Name", "Type", "Enabled", "Description", "Path"})
			table.SetColumnMaxWidth(3, 60)
			for _, entry := range entries {
				kind := "builtin"
				if entry.External {
					kind = "external"
				}
				enabled := "yes"
				if !entry.Enabled {
					enabled = "no"
				}
				table.AddRow([]string{entry.Name, kind, enabled, entry.Description, entry.Path})
			}

			_, err := fmt.Fprint(cmd.OutOrStdout(), table.Render())
			return err
		},
	}

	pluginsCmd.AddCommand(listCmd)
	return pluginsCmd
}
