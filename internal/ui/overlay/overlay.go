// Package overlay composites a foreground box onto a background view
// without clearing the screen underneath.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Position specifies where the foreground lands in the viewport.
type Position int

const (
	// Center places the overlay in the middle of the viewport.
	Center Position = iota
	// Top places the overlay at the top, horizontally centered.
	Top
	// Bottom places the overlay at the bottom, horizontally centered.
	Bottom
)

// Config controls overlay placement.
type Config struct {
	// Width is the total viewport width.
	Width int
	// Height is the total viewport height.
	Height int
	// Position picks the anchor edge.
	Position Position
	// PadY keeps the overlay this many rows off the anchored edge. Only
	// Top and Bottom use it.
	PadY int
}

// Place renders fg on top of bg. Both strings may carry ANSI styling;
// the background rows are carved around the foreground with ANSI-aware
// truncation so colors survive on both sides of the box.
func Place(cfg Config, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")

	for len(bgLines) < cfg.Height {
		bgLines = append(bgLines, strings.Repeat(" ", cfg.Width))
	}

	x, y := anchor(cfg, lipgloss.Width(fg), len(fgLines))

	for i, fgLine := range fgLines {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		bgLines[row] = spliceRow(bgLines[row], fgLine, x)
	}

	return strings.Join(bgLines, "\n")
}

// spliceRow lays fgLine into bgLine starting at display column x,
// keeping whatever background shows past the foreground's right edge.
func spliceRow(bgLine, fgLine string, x int) string {
	left := ansi.Truncate(bgLine, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}

	end := x + ansi.StringWidth(fgLine)
	var right string
	if end < ansi.StringWidth(bgLine) {
		right = ansi.TruncateLeft(bgLine, end, "")
	}

	return left + fgLine + right
}

// anchor resolves the top-left display coordinate for the foreground.
func anchor(cfg Config, fgWidth, fgHeight int) (x, y int) {
	x = (cfg.Width - fgWidth) / 2
	switch cfg.Position {
	case Top:
		y = cfg.PadY
	case Bottom:
		y = cfg.Height - fgHeight - cfg.PadY
	default:
		y = (cfg.Height - fgHeight) / 2
	}

	return max(x, 0), max(y, 0)
}
