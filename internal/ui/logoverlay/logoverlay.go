// Package logoverlay provides an in-app log tail overlay that shows
// entries as they are logged, without leaving the TUI. It subscribes to
// the log broker and keeps its own bounded history.
package logoverlay

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/snova-cli/snova/internal/log"
	"github.com/snova-cli/snova/internal/ui/overlay"
	"github.com/snova-cli/snova/internal/ui/styles"
)

const (
	viewportMaxHeight = 25  // Fixed viewport height in lines
	viewportMinHeight = 5   // Minimum viewport height for very small screens
	boxMaxWidth       = 160 // Maximum box width in characters
	boxMinWidth       = 40  // Minimum box width in characters

	// maxEntries bounds the kept history; older lines fall off.
	maxEntries = 1000
)

// CloseMsg is sent when the overlay should be closed.
type CloseMsg struct{}

// Model is the log overlay component state.
type Model struct {
	visible  bool
	ready    bool
	minLevel log.Level
	width    int
	height   int
	viewport viewport.Model
	entries  []string

	listener *log.LogListener
	cancel   context.CancelFunc
}

// New creates a log overlay. It shows nothing until StartListening arms
// the subscription and log lines arrive.
func New() Model {
	return Model{
		minLevel: log.LevelDebug,
	}
}

// StartListening subscribes to the log broker and returns the command
// that waits for the first line. Returns nil when logging was never
// initialized; the overlay then just reports that logging is off.
func (m *Model) StartListening() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	listener := log.NewListener(ctx)
	if listener == nil {
		cancel()
		return nil
	}
	m.listener = listener
	m.cancel = cancel
	return listener.Listen()
}

// StopListening cancels the log subscription.
func (m *Model) StopListening() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.listener = nil
}

// Available reports whether a log subscription is armed. The toggle key
// is a no-op when it is not.
func (m Model) Available() bool {
	return m.listener != nil
}

// Update handles messages for the log overlay. Log events are recorded
// even while the overlay is hidden, so opening it shows what already
// happened.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case log.LogEvent:
		m.append(msg.Payload)
		if m.visible {
			m.refreshViewport()
		}
		return m, m.listenCmd()

	case tea.KeyMsg:
		if !m.visible {
			return m, nil
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		if !m.visible {
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "c":
		m.entries = nil
		m.refreshViewport()
		return m, nil

	case "d":
		m.minLevel = log.LevelDebug
		m.refreshViewport()
		return m, nil

	case "i":
		m.minLevel = log.LevelInfo
		m.refreshViewport()
		return m, nil

	case "w":
		m.minLevel = log.LevelWarn
		m.refreshViewport()
		return m, nil

	case "e":
		m.minLevel = log.LevelError
		m.refreshViewport()
		return m, nil

	case "j", "down":
		m.viewport.ScrollDown(1)
		return m, nil

	case "k", "up":
		m.viewport.ScrollUp(1)
		return m, nil

	case "g":
		m.viewport.GotoTop()
		return m, nil

	case "G":
		m.viewport.GotoBottom()
		return m, nil

	case "ctrl+c":
		return m, tea.Quit

	case "ctrl+x", "esc":
		m.visible = false
		return m, func() tea.Msg { return CloseMsg{} }
	}

	return m, nil
}

// append records one log line, dropping the oldest past the cap.
func (m *Model) append(entry string) {
	m.entries = append(m.entries, strings.TrimRight(entry, "\n"))
	if len(m.entries) > maxEntries {
		m.entries = m.entries[len(m.entries)-maxEntries:]
	}
}

// listenCmd re-arms the subscription after an event was handled.
func (m Model) listenCmd() tea.Cmd {
	if m.listener == nil {
		return nil
	}
	return m.listener.Listen()
}

// View renders the log overlay content.
func (m Model) View() string {
	if !m.visible {
		return ""
	}

	boxWidth := m.boxWidth()

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.OverlayTitleColor).
		PaddingLeft(1)

	dividerStyle := lipgloss.NewStyle().
		Foreground(styles.OverlayBorderColor)
	divider := dividerStyle.Render(strings.Repeat("─", boxWidth))

	var result strings.Builder
	result.WriteString(titleStyle.Render("Logs"))
	result.WriteString("\n")
	result.WriteString(divider)
	result.WriteString("\n")
	result.WriteString(m.viewport.View())
	result.WriteString("\n")
	result.WriteString(divider)
	result.WriteString("\n")
	result.WriteString(m.buildFilterHint())

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(boxWidth)

	return boxStyle.Render(result.String())
}

// Overlay renders the log overlay centered on the given background.
func (m Model) Overlay(bg string) string {
	if !m.visible {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), bg)
}

// Visible returns whether the overlay is currently visible.
func (m Model) Visible() bool {
	return m.visible
}

// Toggle flips the overlay visibility.
func (m *Model) Toggle() {
	m.visible = !m.visible
	if m.visible {
		m.refreshViewport()
	}
}

// Show makes the overlay visible.
func (m *Model) Show() {
	m.visible = true
	m.refreshViewport()
}

// Hide makes the overlay invisible.
func (m *Model) Hide() {
	m.visible = false
}

// SetSize updates the overlay's knowledge of the terminal size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	if m.visible {
		m.refreshViewport()
	}
}

// refreshViewport sizes the viewport and rebuilds its content from the
// kept entries. A reader at the bottom stays pinned to the newest line.
func (m *Model) refreshViewport() {
	if m.width == 0 || m.height == 0 {
		return
	}

	contentWidth := m.contentWidth()
	if !m.ready {
		m.viewport = viewport.New(contentWidth, m.viewportHeight())
		m.ready = true
	} else {
		m.viewport.Width = contentWidth
		m.viewport.Height = m.viewportHeight()
	}

	follow := m.viewport.AtBottom()
	m.viewport.SetContent(m.buildContent(contentWidth))
	if follow {
		m.viewport.GotoBottom()
	}
}

// boxWidth returns the box width for the current terminal size.
func (m Model) boxWidth() int {
	return max(min(m.width-4, boxMaxWidth), boxMinWidth)
}

// contentWidth returns the box width minus the borders.
func (m Model) contentWidth() int {
	return m.boxWidth() - 2
}

// viewportHeight returns the log pane height. The header, footer and
// borders take six rows around it.
func (m Model) viewportHeight() int {
	h := min(viewportMaxHeight, m.height-6)
	return max(h, viewportMinHeight)
}

// buildContent renders the filtered entries, or an explanatory line
// when there is nothing to show.
func (m Model) buildContent(contentWidth int) string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(styles.TextMutedColor).
		Italic(true)

	if m.listener == nil {
		return emptyStyle.Render("Logging is off. Start snova with --debug to tail logs here.")
	}

	var lines []string
	for _, entry := range m.entries {
		if m.matchesLevel(entry) {
			lines = append(lines, m.colorizeEntry(entry, contentWidth))
		}
	}

	if len(lines) == 0 {
		if len(m.entries) == 0 {
			return emptyStyle.Render("No log entries yet")
		}
		return emptyStyle.Render("No entries at this level")
	}
	return strings.Join(lines, "\n")
}

// entryLevel reads the severity out of a formatted log line. The second
// return is false for lines without a recognizable level marker.
func entryLevel(entry string) (log.Level, bool) {
	switch {
	case strings.Contains(entry, "[ERROR]"):
		return log.LevelError, true
	case strings.Contains(entry, "[WARN]"):
		return log.LevelWarn, true
	case strings.Contains(entry, "[INFO]"):
		return log.LevelInfo, true
	case strings.Contains(entry, "[DEBUG]"):
		return log.LevelDebug, true
	default:
		return log.LevelDebug, false
	}
}

// matchesLevel reports whether an entry passes the level filter.
// Entries without a level marker are always shown.
func (m Model) matchesLevel(entry string) bool {
	level, ok := entryLevel(entry)
	if !ok {
		return true
	}
	return level >= m.minLevel
}

// colorizeEntry styles a log entry by its level, truncating long lines
// ANSI-aware so wide characters keep their alignment.
func (m Model) colorizeEntry(entry string, maxWidth int) string {
	if ansi.StringWidth(entry) > maxWidth {
		entry = ansi.Truncate(entry, maxWidth-3, "...")
	}

	color := styles.TextPrimaryColor
	if level, ok := entryLevel(entry); ok {
		switch level {
		case log.LevelError:
			color = styles.StatusErrorColor
		case log.LevelWarn:
			color = styles.StatusWarningColor
		case log.LevelInfo:
			color = styles.ToastBorderInfoColor
		case log.LevelDebug:
			color = styles.TextMutedColor
		}
	}

	return lipgloss.NewStyle().Foreground(color).Render(entry)
}

// buildFilterHint creates the footer hint line. The active level filter
// is highlighted.
func (m Model) buildFilterHint() string {
	hintStyle := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	activeStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimaryColor).
		Bold(true)

	filters := []struct {
		label string
		level log.Level
	}{
		{"[d] Debug", log.LevelDebug},
		{"[i] Info", log.LevelInfo},
		{"[w] Warn", log.LevelWarn},
		{"[e] Error", log.LevelError},
	}

	hints := []string{hintStyle.Render("[c] Clear")}
	for _, f := range filters {
		if m.minLevel == f.level {
			hints = append(hints, activeStyle.Render(f.label))
		} else {
			hints = append(hints, hintStyle.Render(f.label))
		}
	}

	return strings.Join(hints, "  ")
}
