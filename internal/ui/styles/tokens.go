// Package styles contains Lip Gloss style definitions.
package styles

// ColorToken represents a named, themeable color.
type ColorToken string

// Color tokens organized by category.
// These are the keys users can override in their config.
const (
	// Text hierarchy
	TokenTextPrimary     ColorToken = "text.primary"
	TokenTextSecondary   ColorToken = "text.secondary"
	TokenTextMuted       ColorToken = "text.muted"
	TokenTextDescription ColorToken = "text.description"
	TokenTextPlaceholder ColorToken = "text.placeholder"

	// Borders
	TokenBorderDefault   ColorToken = "border.default"
	TokenBorderFocus     ColorToken = "border.focus"
	TokenBorderHighlight ColorToken = "border.highlight"

	// Status indicators
	TokenStatusSuccess ColorToken = "status.success"
	TokenStatusWarning ColorToken = "status.warning"
	TokenStatusError   ColorToken = "status.error"

	// Selection
	TokenSelectionIndicator ColorToken = "selection.indicator"

	// Inputs
	TokenInputBorder      ColorToken = "input.border"
	TokenInputBorderFocus ColorToken = "input.border.focus" //nolint:gosec // UI color token, not credentials
	TokenInputLabel       ColorToken = "input.label"
	TokenInputLabelFocus  ColorToken = "input.label.focus"

	// Overlays
	TokenOverlayTitle  ColorToken = "overlay.title"
	TokenOverlayBorder ColorToken = "overlay.border"

	// Toast notifications
	TokenToastSuccess ColorToken = "toast.success"
	TokenToastError   ColorToken = "toast.error"
	TokenToastInfo    ColorToken = "toast.info"
	TokenToastWarn    ColorToken = "toast.warn"

	// Template syntax highlighting
	TokenTmplPlaceholder ColorToken = "tmpl.placeholder"
	TokenTmplBracket     ColorToken = "tmpl.bracket"
	TokenTmplValue       ColorToken = "tmpl.value"

	// Misc
	TokenSpinner ColorToken = "spinner"
)

// AllTokens returns all valid color tokens for validation.
func AllTokens() []ColorToken {
	return []ColorToken{
		// Text hierarchy
		TokenTextPrimary,
		TokenTextSecondary,
		TokenTextMuted,
		TokenTextDescription,
		TokenTextPlaceholder,

		// Borders
		TokenBorderDefault,
		TokenBorderFocus,
		TokenBorderHighlight,

		// Status indicators
		TokenStatusSuccess,
		TokenStatusWarning,
		TokenStatusError,

		// Selection
		TokenSelectionIndicator,

		// Inputs
		TokenInputBorder,
		TokenInputBorderFocus,
		TokenInputLabel,
		TokenInputLabelFocus,

		// Overlays
		TokenOverlayTitle,
		TokenOverlayBorder,

		// Toast notifications
		TokenToastSuccess,
		TokenToastError,
		TokenToastInfo,
		TokenToastWarn,

		// Template syntax highlighting
		TokenTmplPlaceholder,
		TokenTmplBracket,
		TokenTmplValue,

		// Misc
		TokenSpinner,
	}
}
