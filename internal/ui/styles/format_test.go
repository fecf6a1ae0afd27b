package styles

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatPickIndicator(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		expected string
	}{
		{"zero picks", 0, ""},
		{"negative count", -1, ""},
		{"one pick", 1, "×1"},
		{"few picks", 3, "×3"},
		{"many picks", 99, "×99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatPickIndicator(tt.count)
			require.Equal(t, tt.expected, got, "FormatPickIndicator(%d)", tt.count)
		})
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"fits", "Hello", 10, "Hello"},
		{"exact", "Hello", 5, "Hello"},
		{"truncate", "Hello World", 8, "Hello..."},
		{"very short", "Hello", 3, "..."},
		{"minimal", "Hello", 1, "."},
		{"zero", "Hello", 0, ""},
		{"wide runes", "日本語のテキスト", 8, "日本..."},
		{"emoji kept whole", "🎉 party time", 6, "🎉 ..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateString(tt.input, tt.maxWidth)
			require.Equal(t, tt.want, got, "TruncateString(%q, %d)", tt.input, tt.maxWidth)
		})
	}
}
