// Package styles contains Lip Gloss style definitions.
package styles

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styleRebuilders holds callbacks to rebuild styles in other packages.
// This avoids import cycles (styles can't import template, but template
// can register).
var styleRebuilders []func()

// RegisterStyleRebuilder adds a callback that will be called after ApplyTheme
// updates colors. Use this to rebuild styles in packages that depend on styles.
func RegisterStyleRebuilder(fn func()) {
	styleRebuilders = append(styleRebuilders, fn)
}

// ThemeConfig mirrors config.ThemeConfig to avoid circular imports.
type ThemeConfig struct {
	Preset string
	Mode   string
	Colors map[string]string
}

// ApplyTheme applies a complete theme configuration.
// Order of application:
// 1. Start with default colors
// 2. Apply preset (if specified)
// 3. Apply individual color overrides
// 4. Rebuild all Style objects
func ApplyTheme(cfg ThemeConfig) error {
	colors := maps.Clone(DefaultPreset.Colors)

	if cfg.Preset != "" && cfg.Preset != "default" {
		preset, ok := Presets[cfg.Preset]
		if !ok {
			return fmt.Errorf("unknown theme preset: %s", cfg.Preset)
		}
		maps.Copy(colors, preset.Colors)
	}

	for key, value := range cfg.Colors {
		token := ColorToken(key)
		if !isValidToken(token) {
			return fmt.Errorf("unknown color token: %s", key)
		}
		if !isValidHexColor(value) {
			return fmt.Errorf("invalid hex color for %s: %s", key, value)
		}
		colors[token] = value
	}

	applyColors(colors)
	rebuildStyles()

	return nil
}

func applyColors(colors map[ColorToken]string) {
	// Same color for both terminal modes; presets already pick per-mode
	// palettes.
	makeColor := func(hex string) lipgloss.AdaptiveColor {
		return lipgloss.AdaptiveColor{Light: hex, Dark: hex}
	}

	// Text hierarchy
	if c, ok := colors[TokenTextPrimary]; ok {
		TextPrimaryColor = makeColor(c)
	}
	if c, ok := colors[TokenTextSecondary]; ok {
		TextSecondaryColor = makeColor(c)
	}
	if c, ok := colors[TokenTextMuted]; ok {
		TextMutedColor = makeColor(c)
	}
	if c, ok := colors[TokenTextDescription]; ok {
		TextDescriptionColor = makeColor(c)
	}
	if c, ok := colors[TokenTextPlaceholder]; ok {
		TextPlaceholderColor = makeColor(c)
	}

	// Borders
	if c, ok := colors[TokenBorderDefault]; ok {
		BorderDefaultColor = makeColor(c)
	}
	if c, ok := colors[TokenBorderFocus]; ok {
		BorderFocusColor = makeColor(c)
	}
	if c, ok := colors[TokenBorderHighlight]; ok {
		BorderHighlightFocusColor = makeColor(c)
	}

	// Status
	if c, ok := colors[TokenStatusSuccess]; ok {
		StatusSuccessColor = makeColor(c)
	}
	if c, ok := colors[TokenStatusWarning]; ok {
		StatusWarningColor = makeColor(c)
	}
	if c, ok := colors[TokenStatusError]; ok {
		StatusErrorColor = makeColor(c)
	}

	// Selection
	if c, ok := colors[TokenSelectionIndicator]; ok {
		SelectionIndicatorColor = makeColor(c)
	}

	// Inputs
	if c, ok := colors[TokenInputBorder]; ok {
		InputBorderColor = makeColor(c)
	}
	if c, ok := colors[TokenInputBorderFocus]; ok {
		InputFocusBorderColor = makeColor(c)
	}
	if c, ok := colors[TokenInputLabel]; ok {
		InputLabelColor = makeColor(c)
	}
	if c, ok := colors[TokenInputLabelFocus]; ok {
		InputFocusedLabelColor = makeColor(c)
	}

	// Overlays
	if c, ok := colors[TokenOverlayTitle]; ok {
		OverlayTitleColor = makeColor(c)
	}
	if c, ok := colors[TokenOverlayBorder]; ok {
		OverlayBorderColor = makeColor(c)
	}

	// Toast
	if c, ok := colors[TokenToastSuccess]; ok {
		ToastBorderSuccessColor = makeColor(c)
	}
	if c, ok := colors[TokenToastError]; ok {
		ToastBorderErrorColor = makeColor(c)
	}
	if c, ok := colors[TokenToastInfo]; ok {
		ToastBorderInfoColor = makeColor(c)
	}
	if c, ok := colors[TokenToastWarn]; ok {
		ToastBorderWarnColor = makeColor(c)
	}

	// Template syntax
	if c, ok := colors[TokenTmplPlaceholder]; ok {
		TmplPlaceholderColor = makeColor(c)
	}
	if c, ok := colors[TokenTmplBracket]; ok {
		TmplBracketColor = makeColor(c)
	}
	if c, ok := colors[TokenTmplValue]; ok {
		TmplValueColor = makeColor(c)
	}

	// Misc
	if c, ok := colors[TokenSpinner]; ok {
		SpinnerColor = makeColor(c)
	}
}

// rebuildStyles recreates all Style objects with updated colors.
// This is necessary because lipgloss.Style objects capture colors at creation time.
func rebuildStyles() {
	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(TextSecondaryColor).
		Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(StatusErrorColor).
		Bold(true).
		Padding(1, 2)

	// Call registered rebuilders (e.g., template.RebuildStyles)
	for _, fn := range styleRebuilders {
		fn()
	}
}

func isValidToken(token ColorToken) bool {
	return slices.Contains(AllTokens(), token)
}

func isValidHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	hex := s[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 64)
	return err == nil
}
