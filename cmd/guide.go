package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/snova-cli/snova/internal/ui/help"
	"github.com/snova-cli/snova/internal/ui/markdown"
)

var guideWidth int

var guideCmd = &cobra.Command{
	Use:   "guide",
	Short: "Show the template syntax guide",
	Long: `Print the template syntax guide, the same document the picker shows
on '?'. It covers placeholders, optional segments, flags, value types
and escaping, with examples to copy into your definitions file.

Examples:
  # Read the guide
  snova guide

  # Through a pager
  snova guide | less -R

  # Wrapped wider
  snova guide --width 100`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		r, err := markdown.New(guideWidth, cfg.UI.MarkdownStyle)
		if err != nil {
			return fmt.Errorf("creating markdown renderer: %w", err)
		}
		rendered, err := r.Render(help.GuideMarkdown())
		if err != nil {
			return fmt.Errorf("rendering guide: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), rendered)
		return nil
	},
}

func init() {
	guideCmd.Flags().IntVar(&guideWidth, "width", 80, "Wrap width for the rendered guide")
	rootCmd.AddCommand(guideCmd)
}
