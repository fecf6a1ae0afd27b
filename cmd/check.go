package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/snova-cli/snova/internal/defs"
	"github.com/snova-cli/snova/internal/paths"
	"github.com/snova-cli/snova/internal/registry"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the command definition files",
	Long: `Load the builtin templates and your definitions file, and report
every entry that cannot be used. Each problem names the file it came
from and why the entry was rejected; duplicates show where the
template was first defined and how the two spellings differ.

A broken entry never blocks the rest of the file, so the picker may
look fine while some of your templates are silently missing. Run this
after editing your definitions to be sure everything made it in.

Exits nonzero when any definition is invalid, so it can gate a commit:

Examples:
  # Check the configured definitions file
  snova check

  # Check a file before adopting it
  snova check --defs ./team-commands.yaml`,
	Args: cobra.NoArgs,
	// A failed check is a report, not a usage mistake
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()

		reg := registry.New()
		result := defs.Load(reg, cfg.DefsPath)

		if cfg.DefsPath != "" {
			fmt.Fprintf(out, "Definitions file: %s\n", paths.Display(cfg.DefsPath))
		}
		fmt.Fprintf(out, "Loaded %d templates\n", result.Loaded)

		if len(result.Problems) == 0 {
			fmt.Fprintln(out, "No problems found")
			return nil
		}

		fmt.Fprintf(out, "\n%d problems:\n", len(result.Problems))
		for i, p := range result.Problems {
			fmt.Fprintf(out, "%3d. %s\n", i+1, p.Error())
		}
		return fmt.Errorf("%d invalid definitions", len(result.Problems))
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
