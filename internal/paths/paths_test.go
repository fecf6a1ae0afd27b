package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare tilde", "~", home},
		{"tilde slash", "~/commands.yaml", filepath.Join(home, "commands.yaml")},
		{"nested", "~/.config/snova/commands.yaml", filepath.Join(home, ".config", "snova", "commands.yaml")},
		{"absolute untouched", "/etc/snova/commands.yaml", "/etc/snova/commands.yaml"},
		{"relative untouched", "commands.yaml", "commands.yaml"},
		{"other user untouched", "~alice/commands.yaml", "~alice/commands.yaml"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ExpandHome(tt.in))
		})
	}
}

func TestDisplay(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"home itself", home, "~"},
		{"under home", filepath.Join(home, "commands.yaml"), filepath.Join("~", "commands.yaml")},
		{"outside home", "/etc/snova/commands.yaml", "/etc/snova/commands.yaml"},
		{"sibling prefix not shortened", home + "extra/commands.yaml", home + "extra/commands.yaml"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Display(tt.in))
		})
	}
}

func TestExpandHome_RoundTripsDisplay(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	p := filepath.Join(home, ".config", "snova", "commands.yaml")
	require.Equal(t, p, ExpandHome(Display(p)))
}
