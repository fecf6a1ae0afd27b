// Package styles contains Lip Gloss style definitions.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Border characters (rounded)
const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// RenderWithTitleBorder renders content with a title embedded in the top
// border, lazygit style: ╭─ Title ─────╮
// titleColor is used for the title text, focusedBorderColor for the border
// when focused.
func RenderWithTitleBorder(content, title string, width, height int, focused bool, titleColor, focusedBorderColor lipgloss.TerminalColor) string {
	var borderColor lipgloss.TerminalColor = BorderDefaultColor
	if focused {
		borderColor = focusedBorderColor
	}

	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	titleStyle := lipgloss.NewStyle().Foreground(titleColor)

	innerWidth := max(width-2, 1) // -2 for left and right border

	topBorder := titledTopBorder(title, innerWidth, borderStyle, titleStyle)
	bottomBorder := borderStyle.Render(borderBottomLeft + strings.Repeat(borderHorizontal, innerWidth) + borderBottomRight)

	contentHeight := max(height-2, 1)

	// Lipgloss handles wrapping and truncation when constraining.
	constrained := lipgloss.NewStyle().Width(innerWidth).Height(contentHeight).Render(content)
	contentLines := strings.Split(constrained, "\n")

	paddedLines := make([]string, contentHeight)
	for i := range contentHeight {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		if lineWidth := lipgloss.Width(line); lineWidth < innerWidth {
			line += strings.Repeat(" ", innerWidth-lineWidth)
		}
		paddedLines[i] = borderStyle.Render(borderVertical) + line + borderStyle.Render(borderVertical)
	}

	var result strings.Builder
	result.WriteString(topBorder)
	result.WriteString("\n")
	result.WriteString(strings.Join(paddedLines, "\n"))
	result.WriteString("\n")
	result.WriteString(bottomBorder)
	return result.String()
}

// titledTopBorder creates the top border with an embedded title.
func titledTopBorder(title string, innerWidth int, borderStyle, titleStyle lipgloss.Style) string {
	if innerWidth < 1 {
		return borderStyle.Render(borderTopLeft + borderTopRight)
	}

	// Need at least room for "─ " and " ─" around the title.
	if title == "" || innerWidth < 4 {
		return borderStyle.Render(borderTopLeft + strings.Repeat(borderHorizontal, innerWidth) + borderTopRight)
	}

	displayTitle := TruncateString(title, innerWidth-4)

	// Inner: "─ " (2) + title + " " (1) + dashes = innerWidth
	remainingWidth := max(innerWidth-3-lipgloss.Width(displayTitle), 0)

	return borderStyle.Render(borderTopLeft+borderHorizontal+" ") +
		titleStyle.Render(displayTitle) +
		borderStyle.Render(" "+strings.Repeat(borderHorizontal, remainingWidth)+borderTopRight)
}
