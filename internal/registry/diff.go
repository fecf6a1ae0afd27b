package registry

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DuplicateDiff renders a character-level diff between two template
// spellings that normalize to the same command, for duplicate
// diagnostics. Identical inputs yield an empty string.
func DuplicateDiff(a, b string) string {
	if a == b {
		return ""
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var sb strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			sb.WriteString(d.Text)
		case diffmatchpatch.DiffDelete:
			sb.WriteString("[-")
			sb.WriteString(visibleWhitespace(d.Text))
			sb.WriteString("-]")
		case diffmatchpatch.DiffInsert:
			sb.WriteString("[+")
			sb.WriteString(visibleWhitespace(d.Text))
			sb.WriteString("+]")
		}
	}
	return sb.String()
}

// visibleWhitespace makes whitespace-only differences readable in
// diagnostics, where the usual culprit is an extra space or a tab.
func visibleWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\t", `\t`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	if strings.TrimSpace(s) == "" && s != "" {
		return strings.ReplaceAll(s, " ", "·")
	}
	return s
}
