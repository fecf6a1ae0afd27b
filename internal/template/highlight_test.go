package template

import (
	"regexp"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

// ansiRegex matches ANSI escape sequences
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// stripANSI removes all ANSI escape codes from a string
func stripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// hasANSI returns true if the string contains ANSI escape codes
func hasANSI(s string) bool {
	return ansiRegex.MatchString(s)
}

func init() {
	// Force ANSI color output in tests (lipgloss disables colors when no TTY)
	lipgloss.SetColorProfile(termenv.ANSI256)
}

func TestHighlight(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantText string
	}{
		{
			"placeholders keep their underscores",
			"grep _PATTERN_ _PATH_",
			"grep _PATTERN_ _PATH_",
		},
		{
			"brackets survive",
			"find _PATH_ [_EXPRESSION_]",
			"find _PATH_ [_EXPRESSION_]",
		},
		{
			"bold markers are stripped",
			"*tar* -xzf _ARCHIVE_",
			"tar -xzf _ARCHIVE_",
		},
		{
			"whitespace runs collapse",
			"grep   _PATTERN_",
			"grep _PATTERN_",
		},
		{
			"glued placeholder stays glued",
			"curl http://x?one=_VALUE_",
			"curl http://x?one=_VALUE_",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Highlight(tt.input)
			assert.True(t, hasANSI(out), "expected styling in %q", out)
			assert.Equal(t, tt.wantText, stripANSI(out))
		})
	}

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, Highlight(""))
	})

	t.Run("invalid template highlights the valid prefix", func(t *testing.T) {
		out := Highlight("grep _PATTERN")
		assert.Contains(t, stripANSI(out), "grep")
	})
}

func TestDisplay(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantText string
	}{
		{
			"slot names lose their underscores",
			"*-A* _NUM_",
			"-A NUM",
		},
		{
			"bare flag",
			"*-i*",
			"-i",
		},
		{
			"escaped underscore renders literally",
			`my\_var`,
			"my_var",
		},
		{
			"glued slot",
			"--max-count=_N_",
			"--max-count=N",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Display(tt.input)
			assert.Equal(t, tt.wantText, stripANSI(out))
		})
	}

	t.Run("bold span carries ANSI", func(t *testing.T) {
		assert.True(t, hasANSI(Display("*-i*")))
	})

	t.Run("plain text passes through", func(t *testing.T) {
		assert.Equal(t, "plain words", Display("plain words"))
	})
}
