// Package help contains the help overlay component.
package help

import (
	"strings"

	"github.com/snova-cli/snova/internal/keys"
	"github.com/snova-cli/snova/internal/ui/overlay"
	"github.com/snova-cli/snova/internal/ui/styles"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// SyntaxRule describes one template marker and what it means.
type SyntaxRule struct {
	Marker string
	Desc   string
}

// SyntaxRules returns the template grammar markers for help text.
func SyntaxRules() []SyntaxRule {
	return []SyntaxRule{
		{Marker: "_NAME_", Desc: "placeholder to fill in"},
		{Marker: "[ ... ]", Desc: "optional part, may nest"},
		{Marker: "*word*", Desc: "emphasized word"},
		{Marker: `\_`, Desc: "literal underscore"},
	}
}

// ValueTypeHint describes one placeholder value type for help text.
type ValueTypeHint struct {
	Name string
	Desc string
}

// ValueTypeHints returns the placeholder value types for help text.
func ValueTypeHints() []ValueTypeHint {
	return []ValueTypeHint{
		{Name: "string", Desc: "any text"},
		{Name: "number", Desc: "whole number, such as 3 or -1"},
		{Name: "path", Desc: "file or directory path"},
	}
}

// TemplateExamples returns example command templates for help text.
func TemplateExamples() []string {
	return []string{
		"grep [_OPTIONS_] _PATTERN_ _PATH_",
		"find _PATH_ [-name _GLOB_]",
		"git log [--author _NAME_] [--oneline]",
		"tar [_MODE_] _ARCHIVE_ [_FILES_]",
	}
}

// GuideMarkdown returns the template guide document. Browse mode shows it
// as an overlay and the guide command prints it to the terminal.
func GuideMarkdown() string {
	return `# Template Guide

Templates describe the shape of a shell command with blanks punched into
it. Pick one, fill the blanks one decision at a time, and the finished
command is printed for your shell.

## Syntax

- ` + "`_NAME_`" + ` marks a blank to fill in
- ` + "`[ ... ]`" + ` wraps an optional part, brackets may nest
- ` + "`*word*`" + ` emphasizes a word in menus
- ` + "`\\_`" + ` is a literal underscore

Skipping an optional blank drops the whole bracketed part, surrounding
text included:

    tar [_MODE_] _ARCHIVE_ [_FILES_]

## Value types

A blank accepts one of three value types: ` + "`string`" + ` for any text,
` + "`number`" + ` for a whole number such as 3 or -1, and ` + "`path`" + ` for a
file or directory path.

## Flag groups

A blank may offer a menu of flags instead of free text. Each flag is its
own small template; at most one blank inside it becomes the argument
prompt shown right after you choose the flag. Flags marked ` + "`multiple`" + `
can be picked more than once.

## Your own definitions

Definitions load from ` + "`~/.config/snova/commands.yaml`" + ` on top of the
built-in set:

    commands:
      - template: "grep [_OPTIONS_] _PATTERN_ _PATH_"
        description: "search file contents"
        groups:
          OPTIONS:
            flags:
              - template: "-i"
                description: "ignore case"
              - template: "--include _GLOB_"
                description: "only search matching files"
                multiple: true
          PATTERN:
            expect: string
          PATH:
            expect: path
            suggest: [".", "/var/log"]

A definition that repeats the wording of one already loaded is skipped
and reported under load problems, the first definition wins. Broken
entries never block the rest of the file.
`
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.OverlayTitleColor).
			PaddingLeft(2)

	dividerStyle = lipgloss.NewStyle().
			Foreground(styles.OverlayBorderColor)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.OverlayTitleColor).
			MarginTop(1)

	keyStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondaryColor).
			Width(11)

	descStyle = lipgloss.NewStyle().
			Foreground(styles.TextDescriptionColor)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.OverlayBorderColor)

	contentStyle = lipgloss.NewStyle().
			Padding(0, 2)

	footerStyle = lipgloss.NewStyle().
			Foreground(styles.TextMutedColor).
			MarginTop(1)
)

// HelpMode indicates which mode's help to display.
type HelpMode int

const (
	ModeBrowse HelpMode = iota
	ModeBuild
)

// Model holds the help view state.
type Model struct {
	browseKeys keys.BrowseKeyMap
	buildKeys  keys.BuildKeyMap
	mode       HelpMode
	width      int
	height     int
}

// New creates a new help view for browse mode.
func New() Model {
	return Model{
		browseKeys: keys.DefaultBrowseKeyMap(),
		mode:       ModeBrowse,
	}
}

// NewBuild creates a new help view for build mode.
func NewBuild() Model {
	return Model{
		buildKeys: keys.DefaultBuildKeyMap(),
		mode:      ModeBuild,
	}
}

// SetSize updates dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// View renders the help overlay (standalone, no background).
func (m Model) View() string {
	return m.Overlay("")
}

// Overlay renders the help box on top of a background view.
func (m Model) Overlay(background string) string {
	helpBox := m.renderContent()

	if background == "" {
		return lipgloss.Place(
			m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			helpBox,
		)
	}

	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, helpBox, background)
}

// renderContent builds the help box content.
func (m Model) renderContent() string {
	if m.mode == ModeBuild {
		return m.renderBuildContent()
	}
	return m.renderBrowseContent()
}

// renderBrowseContent renders the browse mode help.
func (m Model) renderBrowseContent() string {
	columnStyle := lipgloss.NewStyle().MarginRight(4)

	var navCol strings.Builder
	navCol.WriteString(sectionStyle.Render("Navigation"))
	navCol.WriteString("\n")
	navCol.WriteString(renderBinding(m.browseKeys.Up))
	navCol.WriteString(renderBinding(m.browseKeys.Down))
	navCol.WriteString(renderBinding(m.browseKeys.Start))

	var actionsCol strings.Builder
	actionsCol.WriteString(sectionStyle.Render("Actions"))
	actionsCol.WriteString("\n")
	actionsCol.WriteString(renderBinding(m.browseKeys.FocusFilter))
	actionsCol.WriteString(renderBinding(m.browseKeys.Reload))
	actionsCol.WriteString(renderBinding(m.browseKeys.Guide))
	actionsCol.WriteString(renderBinding(m.browseKeys.Problems))

	var togglesCol strings.Builder
	togglesCol.WriteString(sectionStyle.Render("Toggles"))
	togglesCol.WriteString("\n")
	togglesCol.WriteString(renderBinding(m.browseKeys.ToggleProvenance))
	togglesCol.WriteString(renderBinding(m.browseKeys.ToggleStatus))

	var generalCol strings.Builder
	generalCol.WriteString(sectionStyle.Render("General"))
	generalCol.WriteString("\n")
	generalCol.WriteString(renderBinding(m.browseKeys.Help))
	generalCol.WriteString(renderBinding(m.browseKeys.Escape))
	generalCol.WriteString(renderBinding(m.browseKeys.Quit))

	columns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		columnStyle.Render(navCol.String()),
		columnStyle.Render(actionsCol.String()),
		columnStyle.Render(togglesCol.String()),
		generalCol.String(), // Last column doesn't need right margin
	)

	columnsWidth := lipgloss.Width(columns)
	boxWidth := columnsWidth + 4 // Add horizontal padding (2 each side)

	body := contentStyle.Render(columns + "\n" + footerStyle.Render("Press ? or Esc to close"))

	divider := dividerStyle.Render(strings.Repeat("─", boxWidth))

	var content strings.Builder
	content.WriteString(titleStyle.Render("Keybindings"))
	content.WriteString("\n")
	content.WriteString(divider)
	content.WriteString("\n")
	content.WriteString(body)

	return boxStyle.Width(boxWidth).Render(content.String())
}

// renderBuildContent renders the build mode help: keybindings plus a
// compact template syntax reference.
func (m Model) renderBuildContent() string {
	columnStyle := lipgloss.NewStyle().MarginRight(4)

	var navCol strings.Builder
	navCol.WriteString(sectionStyle.Render("Navigation"))
	navCol.WriteString("\n")
	navCol.WriteString(renderBinding(m.buildKeys.Up))
	navCol.WriteString(renderBinding(m.buildKeys.Down))
	navCol.WriteString(renderBinding(m.buildKeys.Choose))

	var decisionsCol strings.Builder
	decisionsCol.WriteString(sectionStyle.Render("Decisions"))
	decisionsCol.WriteString("\n")
	decisionsCol.WriteString(renderBinding(m.buildKeys.Skip))
	decisionsCol.WriteString(renderBinding(m.buildKeys.Done))
	decisionsCol.WriteString(renderBinding(m.buildKeys.Deselect))

	var generalCol strings.Builder
	generalCol.WriteString(sectionStyle.Render("General"))
	generalCol.WriteString("\n")
	generalCol.WriteString(renderBinding(m.buildKeys.Yank))
	generalCol.WriteString(renderBinding(m.buildKeys.Back))
	generalCol.WriteString(renderBinding(m.buildKeys.Help))
	generalCol.WriteString(renderBinding(m.buildKeys.Quit))

	keybindingColumns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		columnStyle.Render(navCol.String()),
		columnStyle.Render(decisionsCol.String()),
		generalCol.String(),
	)

	exampleStyle := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	markerStyle := lipgloss.NewStyle().Foreground(styles.TextSecondaryColor).Width(10)
	markerDescStyle := lipgloss.NewStyle().Foreground(styles.TextMutedColor)

	var syntaxCol strings.Builder
	syntaxCol.WriteString(sectionStyle.Render("Template Syntax"))
	syntaxCol.WriteString("\n")
	for _, r := range SyntaxRules() {
		syntaxCol.WriteString(markerStyle.Render(r.Marker) + markerDescStyle.Render(r.Desc) + "\n")
	}

	var typesCol strings.Builder
	typesCol.WriteString(sectionStyle.Render("Value Types"))
	typesCol.WriteString("\n")
	for _, v := range ValueTypeHints() {
		typesCol.WriteString(markerStyle.Render(v.Name) + markerDescStyle.Render(v.Desc) + "\n")
	}

	syntaxColumns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		columnStyle.Render(syntaxCol.String()),
		typesCol.String(),
	)

	var examplesCol strings.Builder
	examplesCol.WriteString(sectionStyle.Render("Examples"))
	examplesCol.WriteString("\n")
	for _, ex := range TemplateExamples() {
		examplesCol.WriteString(exampleStyle.Render(ex) + "\n")
	}

	// Box width follows the widest section
	columnsWidth := lipgloss.Width(keybindingColumns)
	if w := lipgloss.Width(syntaxColumns); w > columnsWidth {
		columnsWidth = w
	}
	if w := lipgloss.Width(examplesCol.String()); w > columnsWidth {
		columnsWidth = w
	}
	boxWidth := columnsWidth + 4 // Add horizontal padding (2 each side)

	allContent := keybindingColumns + "\n" + syntaxColumns + "\n" + examplesCol.String() + "\n" + footerStyle.Render("Press ? or Esc to close")
	body := contentStyle.Render(allContent)

	divider := dividerStyle.Render(strings.Repeat("─", boxWidth))

	var content strings.Builder
	content.WriteString(titleStyle.Render("Build Mode Help"))
	content.WriteString("\n")
	content.WriteString(divider)
	content.WriteString("\n")
	content.WriteString(body)

	return boxStyle.Width(boxWidth).Render(content.String())
}

func renderBinding(b key.Binding) string {
	help := b.Help()
	return renderKeyDesc(help.Key, help.Desc)
}

func renderKeyDesc(key, desc string) string {
	return keyStyle.Render(key) + descStyle.Render(desc) + "\n"
}
