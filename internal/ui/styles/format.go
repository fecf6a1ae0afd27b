// Package styles contains Lip Gloss style definitions.
package styles

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// TruncateString truncates a plain string to fit within maxWidth display
// columns, adding an ellipsis when anything was cut. Truncation walks
// grapheme clusters so combining marks and emoji are never split. Styled
// text must be truncated before styling, not after.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}

	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}

	if maxWidth <= 3 {
		return strings.Repeat(".", maxWidth)
	}

	var b strings.Builder
	width := 0
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.StepString(s, state)
		w := runewidth.StringWidth(cluster)
		if width+w > maxWidth-3 {
			break
		}
		b.WriteString(cluster)
		width += w
		s = rest
		state = newState
	}

	return b.String() + "..."
}

// FormatPickIndicator returns the chosen-count marker shown next to flags
// picked more than zero times. Returns empty string when count is 0.
func FormatPickIndicator(count int) string {
	if count <= 0 {
		return ""
	}
	return fmt.Sprintf("×%d", count)
}
