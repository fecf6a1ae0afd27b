// Package input provides the single-line text input used to answer
// value prompts. It wraps long values, tracks a cursor with word
// navigation, and renders a placeholder when empty.
package input

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/snova-cli/snova/internal/ui/styles"
)

// Model is a single-line text input.
type Model struct {
	value       string
	cursor      int // cursor position (0 = before first char)
	focused     bool
	width       int
	placeholder string

	placeholderStyle lipgloss.Style
}

// New creates an empty, unfocused input.
func New() Model {
	return Model{
		width:            40,
		placeholderStyle: lipgloss.NewStyle().Foreground(styles.TextPlaceholderColor),
	}
}

// Value returns the current text value.
func (m Model) Value() string {
	return m.value
}

// SetValue sets the text value and clamps the cursor.
func (m *Model) SetValue(v string) {
	m.value = v
	if m.cursor > len(v) {
		m.cursor = len(v)
	}
}

// Reset clears the value and moves the cursor home.
func (m *Model) Reset() {
	m.value = ""
	m.cursor = 0
}

// Cursor returns the current cursor position.
func (m Model) Cursor() int {
	return m.cursor
}

// SetCursor sets the cursor position, clamped to the value.
func (m *Model) SetCursor(pos int) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(m.value) {
		pos = len(m.value)
	}
	m.cursor = pos
}

// Focused returns whether the input is focused.
func (m Model) Focused() bool {
	return m.focused
}

// Focus focuses the input.
func (m *Model) Focus() {
	m.focused = true
}

// Blur removes focus from the input.
func (m *Model) Blur() {
	m.focused = false
}

// SetWidth sets the display width.
func (m *Model) SetWidth(w int) {
	if w < 1 {
		w = 1
	}
	m.width = w
}

// Width returns the display width.
func (m Model) Width() int {
	return m.width
}

// Height returns the number of display lines the current content
// wraps to.
func (m Model) Height() int {
	if m.value == "" {
		return 1
	}
	lines := m.wrapLines()
	if len(lines) == 0 {
		return 1
	}
	return len(lines)
}

// SetPlaceholder sets the placeholder text.
func (m *Model) SetPlaceholder(p string) {
	m.placeholder = p
}

// Update handles key messages. An unfocused input ignores everything.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyLeft:
			if msg.Alt {
				m.cursor = prevWordStart(m.value, m.cursor)
			} else if m.cursor > 0 {
				m.cursor--
			}
		case tea.KeyRight:
			if msg.Alt {
				m.cursor = nextWordEnd(m.value, m.cursor)
			} else if m.cursor < len(m.value) {
				m.cursor++
			}
		case tea.KeyCtrlF:
			m.cursor = nextWordEnd(m.value, m.cursor)
		case tea.KeyCtrlB:
			m.cursor = prevWordStart(m.value, m.cursor)
		case tea.KeyHome, tea.KeyCtrlA:
			m.cursor = 0
		case tea.KeyEnd, tea.KeyCtrlE:
			m.cursor = len(m.value)
		case tea.KeyBackspace:
			if m.cursor > 0 {
				m.value = m.value[:m.cursor-1] + m.value[m.cursor:]
				m.cursor--
			}
		case tea.KeyDelete:
			if m.cursor < len(m.value) {
				m.value = m.value[:m.cursor] + m.value[m.cursor+1:]
			}
		case tea.KeyCtrlK:
			m.value = m.value[:m.cursor]
		case tea.KeyCtrlU:
			m.value = m.value[m.cursor:]
			m.cursor = 0
		case tea.KeyRunes:
			// macOS option+arrow arrives as Alt+f / Alt+b.
			if msg.Alt && len(msg.Runes) == 1 {
				switch msg.Runes[0] {
				case 'f':
					m.cursor = nextWordEnd(m.value, m.cursor)
					return m, nil
				case 'b':
					m.cursor = prevWordStart(m.value, m.cursor)
					return m, nil
				}
			}
			for _, r := range msg.Runes {
				m.value = m.value[:m.cursor] + string(r) + m.value[m.cursor:]
				m.cursor++
			}
		case tea.KeySpace:
			m.value = m.value[:m.cursor] + " " + m.value[m.cursor:]
			m.cursor++
		}
	}

	return m, nil
}

// Cursor rendering toggles reverse video only, leaving surrounding
// styles intact.
const (
	cursorOn  = "\x1b[7m"
	cursorOff = "\x1b[27m"
)

// View renders the value with the cursor, wrapped to the width.
func (m Model) View() string {
	return strings.Join(m.wrapLines(), "\n")
}

// wrapLines returns the rendered content wrapped to the display width.
func (m Model) wrapLines() []string {
	if m.value == "" {
		if m.focused {
			return []string{cursorOn + " " + cursorOff}
		}
		if m.placeholder != "" {
			return []string{m.placeholderStyle.Render(m.placeholder)}
		}
		return []string{""}
	}

	text := m.value
	if m.focused {
		text = insertCursor(text, m.cursor)
	}

	if lipgloss.Width(text) <= m.width {
		return []string{text}
	}
	return wrapText(text, m.width)
}

// insertCursor marks the character at the cursor with reverse video. A
// cursor past the end renders as a reversed space.
func insertCursor(value string, cursor int) string {
	if cursor >= len(value) {
		return value + cursorOn + " " + cursorOff
	}
	return value[:cursor] + cursorOn + string(value[cursor]) + cursorOff + value[cursor+1:]
}

// wrapText wraps at word boundaries, preserving every character. ANSI
// sequences are carried along without counting toward the width.
func wrapText(text string, maxWidth int) []string {
	if maxWidth <= 0 {
		maxWidth = 40
	}

	var lines []string
	var current strings.Builder
	width := 0
	lastSpaceIdx := -1  // byte index in current where the last space landed
	lastSpaceWidth := 0 // visual width up to that space

	i := 0
	for i < len(text) {
		if text[i] == '\x1b' {
			start := i
			for i < len(text) && text[i] != 'm' {
				i++
			}
			if i < len(text) {
				i++
			}
			current.WriteString(text[start:i])
			continue
		}

		if width >= maxWidth {
			if lastSpaceIdx > 0 {
				// Break after the last space; the remainder opens the
				// next line.
				line := current.String()[:lastSpaceIdx+1]
				remainder := current.String()[lastSpaceIdx+1:]
				lines = append(lines, line)
				current.Reset()
				current.WriteString(remainder)
				width = width - lastSpaceWidth - 1
			} else {
				lines = append(lines, current.String())
				current.Reset()
				width = 0
			}
			lastSpaceIdx = -1
			lastSpaceWidth = 0
		}

		if text[i] == ' ' {
			lastSpaceIdx = current.Len()
			lastSpaceWidth = width
		}

		current.WriteByte(text[i])
		width++
		i++
	}

	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	if len(lines) == 0 {
		return []string{text}
	}
	return lines
}

// nextWordEnd finds the position after the next word from pos.
func nextWordEnd(s string, pos int) int {
	n := len(s)
	for pos < n && !isWordChar(rune(s[pos])) {
		pos++
	}
	for pos < n && isWordChar(rune(s[pos])) {
		pos++
	}
	return pos
}

// prevWordStart finds the start of the previous word from pos.
func prevWordStart(s string, pos int) int {
	for pos > 0 && !isWordChar(rune(s[pos-1])) {
		pos--
	}
	for pos > 0 && isWordChar(rune(s[pos-1])) {
		pos--
	}
	return pos
}

func isWordChar(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_'
}
