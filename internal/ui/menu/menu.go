// Package menu provides the option menu used while building a command:
// flag groups, value suggestions, and the skip/done controls all render
// through it. Rows carry descriptions, pick counts, and mouse zones.
package menu

import (
	"fmt"
	"strings"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/snova-cli/snova/internal/ui/overlay"
	"github.com/snova-cli/snova/internal/ui/styles"
)

// Option is one selectable row of a menu.
type Option struct {
	Label       string // primary text, already display-formatted
	Description string // dim detail shown after the label
	Value       string // stable identifier handed back on choose
	Count       int    // times already picked, rendered as ×N
	Disabled    bool   // navigable but not choosable
}

// ChooseMsg is sent when a row is chosen with the mouse. Keyboard
// selection stays with the caller, which reads Selected on enter.
type ChooseMsg struct {
	Index  int
	Option Option
}

// menuSeq hands every menu a distinct mouse-zone namespace.
var menuSeq atomic.Int64

// Model holds the menu state.
type Model struct {
	title    string
	hint     string
	options  []Option
	selected int
	boxWidth int

	viewportWidth  int
	viewportHeight int

	zonePrefix string
}

// New creates a menu with the given title and options.
func New(title string, options []Option) Model {
	return Model{
		title:      title,
		options:    options,
		zonePrefix: fmt.Sprintf("menu-%d", menuSeq.Add(1)),
	}
}

// SetSize sets the viewport dimensions for overlay rendering.
func (m Model) SetSize(width, height int) Model {
	m.viewportWidth = width
	m.viewportHeight = height
	return m
}

// SetBoxWidth sets the width of the menu box itself.
func (m Model) SetBoxWidth(width int) Model {
	m.boxWidth = width
	return m
}

// SetHint sets the dim control hint rendered under the options.
func (m Model) SetHint(hint string) Model {
	m.hint = hint
	return m
}

// SetSelected moves the selection to index when it is in range.
func (m Model) SetSelected(index int) Model {
	if index >= 0 && index < len(m.options) {
		m.selected = index
	}
	return m
}

// SetOptions replaces the rows, clamping the selection. The menu keeps
// its zone namespace so stale mouse zones from the old rows cannot
// match.
func (m Model) SetOptions(options []Option) Model {
	m.options = options
	if m.selected >= len(options) {
		m.selected = max(len(options)-1, 0)
	}
	return m
}

// Selected returns the currently selected option.
func (m Model) Selected() Option {
	if m.selected >= 0 && m.selected < len(m.options) {
		return m.options[m.selected]
	}
	return Option{}
}

// SelectedIndex returns the index of the current selection.
func (m Model) SelectedIndex() int {
	return m.selected
}

// Len returns the number of rows.
func (m Model) Len() int {
	return len(m.options)
}

// Update handles navigation keys and mouse clicks.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down", "ctrl+n":
			if m.selected < len(m.options)-1 {
				m.selected++
			}
		case "k", "up", "ctrl+p":
			if m.selected > 0 {
				m.selected--
			}
		}

	case tea.MouseMsg:
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease {
			for i, opt := range m.options {
				z := zone.Get(m.zoneID(i))
				if z == nil || !z.InBounds(msg) {
					continue
				}
				m.selected = i
				if opt.Disabled {
					return m, nil
				}
				choice := opt
				return m, func() tea.Msg {
					return ChooseMsg{Index: i, Option: choice}
				}
			}
		}
	}

	return m, nil
}

// zoneID names the mouse zone for row i.
func (m Model) zoneID(i int) string {
	return fmt.Sprintf("%s:%d", m.zonePrefix, i)
}

// View renders the menu box without positioning it.
func (m Model) View() string {
	width := m.boxWidth
	if width == 0 {
		width = 44
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.OverlayTitleColor).
		PaddingLeft(1)
	dividerStyle := lipgloss.NewStyle().Foreground(styles.OverlayBorderColor)

	labelWidth := min(m.labelColumnWidth(), width-3)

	var rows strings.Builder
	for i := range m.options {
		rows.WriteString(zone.Mark(m.zoneID(i), m.renderRow(i, labelWidth, width)))
		if i < len(m.options)-1 {
			rows.WriteString("\n")
		}
	}

	content := titleStyle.Render(m.title) + "\n" +
		dividerStyle.Render(strings.Repeat("─", width)) + "\n" +
		rows.String()

	if m.hint != "" {
		hintStyle := lipgloss.NewStyle().Foreground(styles.TextMutedColor).PaddingLeft(1)
		content += "\n" + dividerStyle.Render(strings.Repeat("─", width)) + "\n" +
			hintStyle.Render(styles.TruncateString(m.hint, width-1))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(width).
		Render(content)
}

// renderRow renders one option line. Text is truncated before styling
// so escape codes never get cut mid-sequence.
func (m Model) renderRow(i, labelWidth, width int) string {
	opt := m.options[i]
	selected := i == m.selected

	prefix := " "
	if selected {
		prefix = styles.SelectionIndicatorStyle.Render(">")
	}

	label := opt.Label
	if badge := styles.FormatPickIndicator(opt.Count); badge != "" {
		label += " " + badge
	}
	label = styles.TruncateString(label, width-1)

	labelStyle := lipgloss.NewStyle()
	switch {
	case opt.Disabled:
		labelStyle = labelStyle.Foreground(styles.TextMutedColor)
	case selected:
		labelStyle = labelStyle.Bold(true)
	}
	line := prefix + labelStyle.Render(label)

	if opt.Description == "" {
		return line
	}

	gap := max(labelWidth-lipgloss.Width(label), 0)
	remaining := width - 1 - lipgloss.Width(label) - gap - 2
	if remaining < 1 {
		return line
	}
	descStyle := lipgloss.NewStyle().Foreground(styles.TextDescriptionColor)
	return line + strings.Repeat(" ", gap) + "  " +
		descStyle.Render(styles.TruncateString(opt.Description, remaining))
}

// labelColumnWidth measures the widest label plus badge so descriptions
// line up in a column.
func (m Model) labelColumnWidth() int {
	widest := 0
	for _, opt := range m.options {
		w := lipgloss.Width(opt.Label)
		if badge := styles.FormatPickIndicator(opt.Count); badge != "" {
			w += lipgloss.Width(badge) + 1
		}
		if w > widest {
			widest = w
		}
	}
	return widest
}

// Overlay renders the menu centered on top of a background view.
func (m Model) Overlay(background string) string {
	box := m.View()

	if background == "" {
		return lipgloss.Place(
			m.viewportWidth, m.viewportHeight,
			lipgloss.Center, lipgloss.Center,
			box,
		)
	}

	return overlay.Place(overlay.Config{
		Width:    m.viewportWidth,
		Height:   m.viewportHeight,
		Position: overlay.Center,
	}, box, background)
}

// FindIndexByValue returns the index of the option with the given
// value, or 0 when absent.
func FindIndexByValue(options []Option, value string) int {
	for i, opt := range options {
		if opt.Value == value {
			return i
		}
	}
	return 0
}
