package cmd

import (
	"fmt"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/snova-cli/snova/internal/defs"
	"github.com/snova-cli/snova/internal/registry"
	"github.com/snova-cli/snova/internal/template"
)

var listProvenance bool

var listCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "List the loaded command templates",
	Long: `List every loaded command template, builtin set first, then your
definitions file in its own order. Placeholders print as their bare
names and *bold* markers as styling, the same way the picker shows
them.

An optional query narrows the list the way the picker's filter does:
case-insensitive, matching template text and descriptions.

Examples:
  # Everything that is loaded
  snova list

  # Only templates mentioning tar
  snova list tar

  # Show where each template came from
  snova list --provenance

  # List a definitions file without touching your config
  snova list --defs ./team-commands.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := registry.New()
		result := defs.Load(reg, cfg.DefsPath)

		query := ""
		if len(args) == 1 {
			query = args[0]
		}

		out := cmd.OutOrStdout()
		styled := termenv.NewOutput(out)
		for _, e := range reg.Filter(query) {
			line := template.Display(e.Template.Raw)
			if listProvenance {
				line += "  " + styled.String("("+e.Provenance+")").Faint().String()
			}
			fmt.Fprintln(out, line)
		}

		if n := len(result.Problems); n > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(),
				"%d definitions could not be loaded, run 'snova check' for details\n", n)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listProvenance, "provenance", false,
		"Show where each template was loaded from")
	rootCmd.AddCommand(listCmd)
}
