package help

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelp_New(t *testing.T) {
	m := New()

	// Verify model is created with keys populated
	assert.NotEmpty(t, m.browseKeys.Up.Keys(), "expected Up keys to be set")
	assert.NotEmpty(t, m.browseKeys.Down.Keys(), "expected Down keys to be set")
	assert.NotEmpty(t, m.browseKeys.Start.Keys(), "expected Start keys to be set")
	assert.NotEmpty(t, m.browseKeys.Help.Keys(), "expected Help keys to be set")
	assert.NotEmpty(t, m.browseKeys.Quit.Keys(), "expected Quit keys to be set")
	assert.Equal(t, ModeBrowse, m.mode, "expected mode to be ModeBrowse")
}

func TestHelp_SetSize(t *testing.T) {
	m := New()

	m = m.SetSize(120, 40)

	assert.Equal(t, 120, m.width, "expected width to be 120")
	assert.Equal(t, 40, m.height, "expected height to be 40")

	// Verify SetSize returns new model (immutability)
	m2 := m.SetSize(80, 24)
	assert.Equal(t, 80, m2.width, "expected new model width to be 80")
	assert.Equal(t, 24, m2.height, "expected new model height to be 24")
	assert.Equal(t, 120, m.width, "expected original model width unchanged")
}

func TestHelp_View_ContainsSections(t *testing.T) {
	m := New().SetSize(80, 24)
	view := m.View()

	assert.Contains(t, view, "Navigation", "expected view to contain Navigation section")
	assert.Contains(t, view, "Actions", "expected view to contain Actions section")
	assert.Contains(t, view, "Toggles", "expected view to contain Toggles section")
	assert.Contains(t, view, "General", "expected view to contain General section")
}

func TestHelp_View_ContainsKeybindings(t *testing.T) {
	m := New().SetSize(80, 24)
	view := m.View()

	// Navigation
	assert.Contains(t, view, "k/↑", "expected view to contain up keys")
	assert.Contains(t, view, "j/↓", "expected view to contain down keys")
	assert.Contains(t, view, "build command", "expected view to contain start description")

	// Actions
	assert.Contains(t, view, "filter templates", "expected view to contain filter description")
	assert.Contains(t, view, "reload definitions", "expected view to contain reload description")
	assert.Contains(t, view, "template guide", "expected view to contain guide description")
	assert.Contains(t, view, "show problems", "expected view to contain problems description")

	// Toggles
	assert.Contains(t, view, "toggle provenance", "expected view to contain provenance description")
	assert.Contains(t, view, "toggle status bar", "expected view to contain status bar description")

	// General
	assert.Contains(t, view, "?", "expected view to contain help key")
	assert.Contains(t, view, "esc", "expected view to contain escape key")
	assert.Contains(t, view, "quit", "expected view to contain quit description")
}

func TestHelp_View_ContainsFooter(t *testing.T) {
	m := New().SetSize(80, 24)
	view := m.View()

	assert.Contains(t, view, "Press ? or Esc to close", "expected view to contain footer")
}

func TestHelp_View_ContainsTitle(t *testing.T) {
	m := New().SetSize(80, 24)
	view := m.View()

	assert.Contains(t, view, "Keybindings", "expected view to contain title")
}

func TestHelp_Overlay(t *testing.T) {
	m := New().SetSize(80, 24)

	background := strings.Repeat(strings.Repeat(".", 80)+"\n", 24)

	result := m.Overlay(background)

	// Should contain help content
	assert.Contains(t, result, "Navigation", "expected overlay to contain Navigation")
	assert.Contains(t, result, "Keybindings", "expected overlay to contain title")

	// The overlay is centered, so edges should have background content
	lines := strings.Split(result, "\n")
	require.NotEmpty(t, lines, "expected result to have lines")

	assert.Contains(t, lines[0], ".", "expected first line to contain background")
}

func TestHelp_Overlay_EmptyBackground(t *testing.T) {
	m := New().SetSize(80, 24)

	// Empty background should render like View()
	result := m.Overlay("")
	view := m.View()

	assert.Contains(t, result, "Navigation")
	assert.Contains(t, view, "Navigation")
}

func TestHelp_View_VariousSizes(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
	}{
		{"standard 80x24", 80, 24},
		{"large 120x40", 120, 40},
		{"narrow 60x20", 60, 20},
		{"wide 200x30", 200, 30},
		{"tall 80x50", 80, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New().SetSize(tt.width, tt.height)
			view := m.View()

			// All sizes should render the core content
			assert.Contains(t, view, "Navigation", "expected Navigation section")
			assert.Contains(t, view, "Actions", "expected Actions section")
			assert.Contains(t, view, "General", "expected General section")
			assert.Contains(t, view, "Keybindings", "expected title")
			assert.Contains(t, view, "Press ? or Esc to close", "expected footer")
		})
	}
}

func TestHelp_Overlay_Centering(t *testing.T) {
	m := New().SetSize(80, 24)

	bg := strings.Repeat(strings.Repeat(".", 80)+"\n", 24)
	bg = strings.TrimSuffix(bg, "\n")

	result := m.Overlay(bg)
	lines := strings.Split(result, "\n")

	require.GreaterOrEqual(t, len(lines), 10, "expected at least 10 lines")

	foundOverlay := false
	for _, line := range lines {
		if strings.Contains(line, "Keybindings") {
			foundOverlay = true
			break
		}
	}
	assert.True(t, foundOverlay, "expected to find overlay content in result")
}

func TestHelp_Overlay_BackgroundPreservation(t *testing.T) {
	m := New().SetSize(80, 24)

	bg := strings.Repeat(strings.Repeat(".", 80)+"\n", 24)
	bg = strings.TrimSuffix(bg, "\n")

	result := m.Overlay(bg)

	// Background dots should be preserved around the help content
	dotCount := strings.Count(result, ".")
	assert.Greater(t, dotCount, 100, "expected background dots to be preserved around help")
}

func TestHelp_renderBinding(t *testing.T) {
	m := New()

	output := renderBinding(m.browseKeys.Quit)

	assert.Contains(t, output, "q", "expected binding to contain key")
	assert.Contains(t, output, "quit", "expected binding to contain description")
}

func TestHelp_View_Stability(t *testing.T) {
	m := New().SetSize(80, 24)
	view1 := m.View()
	view2 := m.View()

	// Same model should produce identical output
	assert.Equal(t, view1, view2, "expected stable output from same model")

	assert.NotEmpty(t, view1, "expected non-empty view")
	assert.Greater(t, len(view1), 100, "expected substantial output")
}

// Build mode tests

func TestHelp_NewBuild(t *testing.T) {
	m := NewBuild()

	assert.NotEmpty(t, m.buildKeys.Up.Keys(), "expected Up keys to be set")
	assert.NotEmpty(t, m.buildKeys.Down.Keys(), "expected Down keys to be set")
	assert.NotEmpty(t, m.buildKeys.Choose.Keys(), "expected Choose keys to be set")
	assert.NotEmpty(t, m.buildKeys.Skip.Keys(), "expected Skip keys to be set")
	assert.NotEmpty(t, m.buildKeys.Quit.Keys(), "expected Quit keys to be set")
	assert.Equal(t, ModeBuild, m.mode, "expected mode to be ModeBuild")
}

func TestHelp_BuildView_ContainsSections(t *testing.T) {
	m := NewBuild().SetSize(100, 40)
	view := m.View()

	assert.Contains(t, view, "Navigation", "expected view to contain Navigation section")
	assert.Contains(t, view, "Decisions", "expected view to contain Decisions section")
	assert.Contains(t, view, "General", "expected view to contain General section")
}

func TestHelp_BuildView_ContainsSyntaxRules(t *testing.T) {
	m := NewBuild().SetSize(100, 40)
	view := m.View()

	assert.Contains(t, view, "Template Syntax", "expected view to contain syntax section")
	assert.Contains(t, view, "_NAME_", "expected view to contain placeholder marker")
	assert.Contains(t, view, "[ ... ]", "expected view to contain optional marker")
	assert.Contains(t, view, "*word*", "expected view to contain emphasis marker")
	assert.Contains(t, view, `\_`, "expected view to contain escape marker")
	assert.Contains(t, view, "placeholder to fill in", "expected placeholder description")
	assert.Contains(t, view, "optional part", "expected optional description")
}

func TestHelp_BuildView_ContainsValueTypes(t *testing.T) {
	m := NewBuild().SetSize(100, 40)
	view := m.View()

	assert.Contains(t, view, "Value Types", "expected view to contain value types section")
	assert.Contains(t, view, "string", "expected view to contain string type")
	assert.Contains(t, view, "number", "expected view to contain number type")
	assert.Contains(t, view, "path", "expected view to contain path type")
	assert.Contains(t, view, "whole number", "expected number description")
}

func TestHelp_BuildView_ContainsKeybindings(t *testing.T) {
	m := NewBuild().SetSize(100, 40)
	view := m.View()

	assert.Contains(t, view, "skip group", "expected s for skip")
	assert.Contains(t, view, "done with flags", "expected d for done")
	assert.Contains(t, view, "undo last pick", "expected u for deselect")
	assert.Contains(t, view, "copy command", "expected y for yank")
	assert.Contains(t, view, "ctrl+c", "expected ctrl+c for quit")
}

func TestHelp_BuildView_ContainsExamples(t *testing.T) {
	m := NewBuild().SetSize(100, 40)
	view := m.View()

	assert.Contains(t, view, "Examples", "expected view to contain Examples section")
	assert.Contains(t, view, "grep [_OPTIONS_] _PATTERN_ _PATH_", "expected grep example")
	assert.Contains(t, view, "find _PATH_ [-name _GLOB_]", "expected find example")
	assert.Contains(t, view, "git log [--author _NAME_] [--oneline]", "expected git example")
}

func TestHelp_BuildView_ContainsTitle(t *testing.T) {
	m := NewBuild().SetSize(100, 40)
	view := m.View()

	assert.Contains(t, view, "Build Mode Help", "expected view to contain title")
}

func TestHelp_BuildView_ContainsFooter(t *testing.T) {
	m := NewBuild().SetSize(100, 40)
	view := m.View()

	assert.Contains(t, view, "Press ? or Esc to close", "expected view to contain footer")
}
