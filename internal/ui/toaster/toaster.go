// Package toaster provides a transient notification overlay.
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/snova-cli/snova/internal/ui/overlay"
	"github.com/snova-cli/snova/internal/ui/styles"
)

// Style determines the visual appearance of the toast.
type Style int

const (
	// StyleSuccess shows ✅ with a green border.
	StyleSuccess Style = iota
	// StyleError shows ❌ with a red border.
	StyleError
	// StyleInfo shows ℹ️ with a blue border.
	StyleInfo
	// StyleWarn shows ⚠️ with a yellow border.
	StyleWarn
)

// look returns the icon and border color for a style.
func (s Style) look() (icon string, border lipgloss.TerminalColor) {
	switch s {
	case StyleError:
		return "❌", styles.ToastBorderErrorColor
	case StyleInfo:
		return "ℹ️", styles.ToastBorderInfoColor
	case StyleWarn:
		return "⚠️", styles.ToastBorderWarnColor
	default:
		return "✅", styles.ToastBorderSuccessColor
	}
}

// Model holds the toaster state.
type Model struct {
	message string
	style   Style
	visible bool
	width   int
	height  int
}

// New creates a hidden toaster.
func New() Model {
	return Model{}
}

// Show displays a toast with the given message and style. The icon
// matching the style is prepended automatically.
func (m Model) Show(message string, style Style) Model {
	m.message = message
	m.style = style
	m.visible = true
	return m
}

// Hide dismisses the toast.
func (m Model) Hide() Model {
	m.visible = false
	m.message = ""
	return m
}

// Visible reports whether the toast is currently showing.
func (m Model) Visible() bool {
	return m.visible
}

// SetSize updates the viewport dimensions used for overlay placement.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// View renders the toast box without positioning it.
func (m Model) View() string {
	if !m.visible || m.message == "" {
		return ""
	}

	icon, border := m.style.look()

	message := m.message
	// Keep the box inside the viewport: icon, padding and borders eat
	// about eight columns.
	if m.width > 8 {
		message = styles.TruncateString(message, m.width-8)
	}

	return lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Render(icon + " " + message)
}

// Overlay renders the toast bottom-center on top of a background view.
func (m Model) Overlay(bg string, width, height int) string {
	if !m.visible || m.message == "" {
		return bg
	}

	return overlay.Place(overlay.Config{
		Width:    width,
		Height:   height,
		Position: overlay.Bottom,
		PadY:     1,
	}, m.View(), bg)
}

// DismissMsg signals that the toast should be dismissed.
type DismissMsg struct{}

// ScheduleDismiss returns a command that dismisses the toast after d.
func ScheduleDismiss(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return DismissMsg{}
	})
}
