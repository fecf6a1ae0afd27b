// Package styles contains Lip Gloss style definitions.
package styles

// Preset represents a complete color theme.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// Presets contains all built-in theme presets.
var Presets = map[string]Preset{
	"default":          DefaultPreset,
	"catppuccin-mocha": CatppuccinMochaPreset,
	"nord":             NordPreset,
	"high-contrast":    HighContrastPreset,
}

// DefaultPreset is the stock snova color scheme.
// Color values match the styles.go AdaptiveColor definitions (Dark values).
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Default snova theme",
	Colors: map[ColorToken]string{
		// Text hierarchy
		TokenTextPrimary:     "#CCCCCC",
		TokenTextSecondary:   "#BBBBBB",
		TokenTextMuted:       "#696969",
		TokenTextDescription: "#999999",
		TokenTextPlaceholder: "#777777",

		// Borders
		TokenBorderDefault:   "#696969",
		TokenBorderFocus:     "#FFFFFF",
		TokenBorderHighlight: "#54A0FF",

		// Status indicators
		TokenStatusSuccess: "#73F59F",
		TokenStatusWarning: "#FECA57",
		TokenStatusError:   "#FF8787",

		// Selection
		TokenSelectionIndicator: "#FFFFFF",

		// Inputs
		TokenInputBorder:      "#8C8C8C",
		TokenInputBorderFocus: "#FFFFFF",
		TokenInputLabel:       "#8C8C8C",
		TokenInputLabelFocus:  "#FFFFFF",

		// Overlays
		TokenOverlayTitle:  "#C9C9C9",
		TokenOverlayBorder: "#8C8C8C",

		// Toast notifications
		TokenToastSuccess: "#73F59F",
		TokenToastError:   "#FF8787",
		TokenToastInfo:    "#54A0FF",
		TokenToastWarn:    "#FECA57",

		// Template syntax highlighting (Catppuccin Mocha inspired)
		TokenTmplPlaceholder: "#94E2D5",
		TokenTmplBracket:     "#CBA6F7",
		TokenTmplValue:       "#F9E2AF",

		// Misc
		TokenSpinner: "#FFFFFF",
	},
}

// CatppuccinMochaPreset is the Catppuccin Mocha (dark) theme.
// Colors from: https://catppuccin.com/palette
var CatppuccinMochaPreset = Preset{
	Name:        "catppuccin-mocha",
	Description: "Catppuccin Mocha - warm, cozy dark theme",
	Colors: map[ColorToken]string{
		// Text hierarchy
		TokenTextPrimary:     "#CDD6F4", // text
		TokenTextSecondary:   "#BAC2DE", // subtext1
		TokenTextMuted:       "#6C7086", // overlay0
		TokenTextDescription: "#A6ADC8", // subtext0
		TokenTextPlaceholder: "#585B70", // surface2

		// Borders
		TokenBorderDefault:   "#6C7086", // overlay0
		TokenBorderFocus:     "#CDD6F4", // text
		TokenBorderHighlight: "#89B4FA", // blue

		// Status indicators
		TokenStatusSuccess: "#A6E3A1", // green
		TokenStatusWarning: "#F9E2AF", // yellow
		TokenStatusError:   "#F38BA8", // red

		// Selection
		TokenSelectionIndicator: "#CDD6F4", // text

		// Inputs
		TokenInputBorder:      "#6C7086", // overlay0
		TokenInputBorderFocus: "#CDD6F4", // text
		TokenInputLabel:       "#6C7086", // overlay0
		TokenInputLabelFocus:  "#CDD6F4", // text

		// Overlays
		TokenOverlayTitle:  "#CDD6F4", // text
		TokenOverlayBorder: "#6C7086", // overlay0

		// Toast notifications
		TokenToastSuccess: "#A6E3A1", // green
		TokenToastError:   "#F38BA8", // red
		TokenToastInfo:    "#89B4FA", // blue
		TokenToastWarn:    "#F9E2AF", // yellow

		// Template syntax highlighting
		TokenTmplPlaceholder: "#94E2D5", // teal
		TokenTmplBracket:     "#CBA6F7", // mauve
		TokenTmplValue:       "#F9E2AF", // yellow

		// Misc
		TokenSpinner: "#CDD6F4", // text
	},
}

// NordPreset is the Nord theme.
// Colors from: https://www.nordtheme.com
var NordPreset = Preset{
	Name:        "nord",
	Description: "Nord - arctic, north-bluish palette",
	Colors: map[ColorToken]string{
		// Text hierarchy
		TokenTextPrimary:     "#ECEFF4", // snow storm 2
		TokenTextSecondary:   "#E5E9F0", // snow storm 1
		TokenTextMuted:       "#4C566A", // polar night 3
		TokenTextDescription: "#D8DEE9", // snow storm 0
		TokenTextPlaceholder: "#4C566A", // polar night 3

		// Borders
		TokenBorderDefault:   "#4C566A", // polar night 3
		TokenBorderFocus:     "#ECEFF4", // snow storm 2
		TokenBorderHighlight: "#88C0D0", // frost 1

		// Status indicators
		TokenStatusSuccess: "#A3BE8C", // aurora green
		TokenStatusWarning: "#EBCB8B", // aurora yellow
		TokenStatusError:   "#BF616A", // aurora red

		// Selection
		TokenSelectionIndicator: "#ECEFF4", // snow storm 2

		// Inputs
		TokenInputBorder:      "#4C566A", // polar night 3
		TokenInputBorderFocus: "#ECEFF4", // snow storm 2
		TokenInputLabel:       "#4C566A", // polar night 3
		TokenInputLabelFocus:  "#ECEFF4", // snow storm 2

		// Overlays
		TokenOverlayTitle:  "#ECEFF4", // snow storm 2
		TokenOverlayBorder: "#4C566A", // polar night 3

		// Toast notifications
		TokenToastSuccess: "#A3BE8C", // aurora green
		TokenToastError:   "#BF616A", // aurora red
		TokenToastInfo:    "#88C0D0", // frost 1
		TokenToastWarn:    "#EBCB8B", // aurora yellow

		// Template syntax highlighting
		TokenTmplPlaceholder: "#8FBCBB", // frost 0
		TokenTmplBracket:     "#B48EAD", // aurora purple
		TokenTmplValue:       "#EBCB8B", // aurora yellow

		// Misc
		TokenSpinner: "#ECEFF4", // snow storm 2
	},
}

// HighContrastPreset maximizes contrast for accessibility.
var HighContrastPreset = Preset{
	Name:        "high-contrast",
	Description: "High contrast for accessibility",
	Colors: map[ColorToken]string{
		// Text hierarchy
		TokenTextPrimary:     "#FFFFFF",
		TokenTextSecondary:   "#FFFFFF",
		TokenTextMuted:       "#AAAAAA",
		TokenTextDescription: "#EEEEEE",
		TokenTextPlaceholder: "#AAAAAA",

		// Borders
		TokenBorderDefault:   "#FFFFFF",
		TokenBorderFocus:     "#FFFF00",
		TokenBorderHighlight: "#00FFFF",

		// Status indicators
		TokenStatusSuccess: "#00FF00",
		TokenStatusWarning: "#FFFF00",
		TokenStatusError:   "#FF0000",

		// Selection
		TokenSelectionIndicator: "#FFFF00",

		// Inputs
		TokenInputBorder:      "#FFFFFF",
		TokenInputBorderFocus: "#FFFF00",
		TokenInputLabel:       "#FFFFFF",
		TokenInputLabelFocus:  "#FFFF00",

		// Overlays
		TokenOverlayTitle:  "#FFFFFF",
		TokenOverlayBorder: "#FFFFFF",

		// Toast notifications
		TokenToastSuccess: "#00FF00",
		TokenToastError:   "#FF0000",
		TokenToastInfo:    "#00FFFF",
		TokenToastWarn:    "#FFFF00",

		// Template syntax highlighting
		TokenTmplPlaceholder: "#00FFFF",
		TokenTmplBracket:     "#FF00FF",
		TokenTmplValue:       "#FFFF00",

		// Misc
		TokenSpinner: "#FFFFFF",
	},
}
