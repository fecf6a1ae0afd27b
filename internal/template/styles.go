package template

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/snova-cli/snova/internal/ui/styles"
)

// Token highlight styles for template syntax highlighting.
// Uses centralized color constants from the styles package.
var (
	// PlaceholderStyle for _NAME_ group references
	PlaceholderStyle = lipgloss.NewStyle().
				Foreground(styles.TmplPlaceholderColor)

	// BracketStyle for optional segment brackets
	BracketStyle = lipgloss.NewStyle().
			Foreground(styles.TmplBracketColor).
			Bold(true)

	// BoldStyle for *emphasized* literal spans
	BoldStyle = lipgloss.NewStyle().
			Bold(true)

	// UnderlineStyle for argument slot names in plain display text
	UnderlineStyle = lipgloss.NewStyle().
			Underline(true)

	// DefaultStyle for plain literal text
	DefaultStyle = lipgloss.NewStyle()
)

func init() {
	styles.RegisterStyleRebuilder(RebuildStyles)
}

// RebuildStyles recreates the highlight styles after a theme change.
func RebuildStyles() {
	PlaceholderStyle = lipgloss.NewStyle().Foreground(styles.TmplPlaceholderColor)
	BracketStyle = lipgloss.NewStyle().Foreground(styles.TmplBracketColor).Bold(true)
}
