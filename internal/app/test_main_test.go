package app

import (
	"os"
	"testing"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/termenv"
)

func TestMain(m *testing.M) {
	// View resolves mouse zones, which needs the global manager.
	zone.NewGlobal()
	lipgloss.SetColorProfile(termenv.ANSI256)
	os.Exit(m.Run())
}
