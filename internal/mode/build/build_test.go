package build

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/snova-cli/snova/internal/config"
	"github.com/snova-cli/snova/internal/defs"
	"github.com/snova-cli/snova/internal/engine"
	"github.com/snova-cli/snova/internal/mode"
	"github.com/snova-cli/snova/internal/mode/shared"
	"github.com/snova-cli/snova/internal/registry"
	"github.com/snova-cli/snova/internal/ui/menu"
	"github.com/snova-cli/snova/internal/ui/toaster"
)

func init() {
	lipgloss.SetColorProfile(termenv.ANSI256)
}

const testDefs = `commands:
  - template: "grep [_OPTIONS_] _PATTERN_ _PATH_"
    description: "search file contents"
    groups:
      OPTIONS:
        flags:
          - template: "-i"
            description: "ignore case"
          - template: "--include _GLOB_"
            description: "only search matching files"
            expect: string
            multiple: true
      PATTERN:
        expect: string
      PATH:
        expect: path
  - template: "sleep _SECONDS_"
    description: "pause for a while"
    groups:
      SECONDS:
        expect: number
  - template: "head [-n _COUNT_] _FILE_"
    description: "show the first lines of a file"
    groups:
      COUNT:
        expect: number
      FILE:
        expect: path
        suggest:
          - "./README.md"
          - "./main.go"
  - template: "ps _LISTING_"
    description: "report process status"
    groups:
      LISTING:
        flags:
          - template: "-e"
            description: "every process"
          - template: "-f"
            description: "full format"
  - template: "git status"
    description: "show the working tree status"
`

// testServices builds Services around a registry loaded from testDefs.
func testServices(t *testing.T) mode.Services {
	t.Helper()

	reg := registry.New()
	result := defs.LoadBytes(reg, []byte(testDefs), "test")
	require.Empty(t, result.Problems, "test definitions should load cleanly")

	cfg := config.Defaults()
	return mode.Services{
		Registry:  reg,
		Config:    &cfg,
		Clipboard: &shared.MockClipboard{},
	}
}

// createTestModel starts a sized build session for the given template.
func createTestModel(t *testing.T, raw string) Model {
	t.Helper()

	svc := testServices(t)
	entry, ok := svc.Registry.Lookup(raw)
	require.True(t, ok, "template %q should be registered", raw)
	return New(svc, entry).SetSize(100, 40)
}

// typeString feeds s into the model one key at a time.
func typeString(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestBuild_New_FlagMenuFirst(t *testing.T) {
	m := createTestModel(t, "grep [_OPTIONS_] _PATTERN_ _PATH_")

	require.Equal(t, engine.StateAwaitingGroup, m.eng.State())
	require.NotNil(t, m.prompt, "expected an initial prompt")
	require.Equal(t, engine.PromptFlagMenu, m.prompt.Kind, "first group should ask for flags")
	require.Equal(t, "OPTIONS", m.prompt.Group.Name)
	require.True(t, m.prompt.AllowSkip, "optional group should be skippable")
	require.Equal(t, 2, m.flagMenu.Len(), "menu should list both flags")
}

func TestBuild_New_ValueFirst(t *testing.T) {
	m := createTestModel(t, "sleep _SECONDS_")

	require.Equal(t, engine.PromptValue, m.prompt.Kind)
	require.Equal(t, "SECONDS", m.prompt.Group.Name)
	require.True(t, m.input.Focused(), "input should be ready for typing")
}

func TestBuild_New_LiteralOnlyCompletesImmediately(t *testing.T) {
	m := createTestModel(t, "git status")

	require.Equal(t, engine.StateComplete, m.eng.State())
	require.Equal(t, "git status", m.final)
}

func TestBuild_SetSize(t *testing.T) {
	m := createTestModel(t, "sleep _SECONDS_")

	m = m.SetSize(120, 50)

	require.Equal(t, 120, m.width, "width should be updated")
	require.Equal(t, 50, m.height, "height should be updated")
}

func TestBuild_ValueSubmit_Completes(t *testing.T) {
	m := createTestModel(t, "sleep _SECONDS_")

	m = typeString(m, "3")
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, engine.StateComplete, m.eng.State())
	require.Equal(t, "sleep 3", m.final)
}

func TestBuild_ValueSubmit_RejectsWrongType(t *testing.T) {
	m := createTestModel(t, "sleep _SECONDS_")

	m = typeString(m, "soon")
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, engine.StateAwaitingGroup, m.eng.State(), "invalid value should not advance")
	require.Contains(t, m.promptErr, "not a valid number")
	require.Equal(t, "soon", m.input.Value(), "typed text should survive a rejection")
}

func TestBuild_ValueSubmit_EmptyRequiredRejected(t *testing.T) {
	m := createTestModel(t, "sleep _SECONDS_")

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, engine.StateAwaitingGroup, m.eng.State())
	require.Contains(t, m.promptErr, "a value is required")
}

func TestBuild_ValueTyping_ClearsError(t *testing.T) {
	m := createTestModel(t, "sleep _SECONDS_")
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotEmpty(t, m.promptErr)

	m = typeString(m, "3")

	require.Empty(t, m.promptErr, "typing should clear the complaint")
}

func TestBuild_OptionalValue_EmptyEnterSkips(t *testing.T) {
	m := createTestModel(t, "head [-n _COUNT_] _FILE_")
	require.Equal(t, "COUNT", m.prompt.Group.Name)
	require.True(t, m.prompt.AllowSkip)

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, "FILE", m.prompt.Group.Name, "empty enter should skip the optional group")

	m = typeString(m, "notes.txt")
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, "head notes.txt", m.final, "skipped group should leave no framing text")
}

func TestBuild_OptionalValue_Provided(t *testing.T) {
	m := createTestModel(t, "head [-n _COUNT_] _FILE_")

	m = typeString(m, "20")
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	m = typeString(m, "app.log")
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, "head -n 20 app.log", m.final)
}

func TestBuild_Suggestions_TabCycles(t *testing.T) {
	m := createTestModel(t, "head [-n _COUNT_] _FILE_")
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEnter}) // skip COUNT
	require.Equal(t, "FILE", m.prompt.Group.Name)

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, "./README.md", m.input.Value())

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, "./main.go", m.input.Value())

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, "./README.md", m.input.Value(), "tab should wrap around")
}

func TestBuild_FlagMenu_ChoosePlainFlag(t *testing.T) {
	m := createTestModel(t, "grep [_OPTIONS_] _PATTERN_ _PATH_")

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, engine.PromptFlagMenu, m.prompt.Kind, "menu should stay open for more flags")
	require.Equal(t, 1, m.prompt.Choices[0].Chosen)
	require.False(t, m.prompt.AllowSkip, "skip should disappear once a flag is picked")
	require.Contains(t, m.eng.Preview(), "-i")
}

func TestBuild_FlagMenu_RepeatPlainFlagRefused(t *testing.T) {
	m := createTestModel(t, "grep [_OPTIONS_] _PATTERN_ _PATH_")
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})

	require.Contains(t, m.promptErr, "already chosen")
	require.Equal(t, 1, m.prompt.Choices[0].Chosen, "count should not change")
}

func TestBuild_FlagMenu_ArgFlagPromptsForArgument(t *testing.T) {
	m := createTestModel(t, "grep [_OPTIONS_] _PATTERN_ _PATH_")

	m = typeString(m, "j") // move to --include
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, engine.PromptFlagArgument, m.prompt.Kind)
	require.Equal(t, "--include _GLOB_", m.prompt.Flag.Template)

	m = typeString(m, "*.go")
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, engine.PromptFlagMenu, m.prompt.Kind, "argument should return to the menu")
	require.Contains(t, m.eng.Preview(), "--include *.go")
	require.Equal(t, 1, m.flagMenu.SelectedIndex(), "menu cursor should survive the argument round trip")
}

func TestBuild_FlagArgument_EscReturnsToMenu(t *testing.T) {
	m := createTestModel(t, "grep [_OPTIONS_] _PATTERN_ _PATH_")
	m = typeString(m, "j")
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, engine.PromptFlagArgument, m.prompt.Kind)

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEscape})

	require.Equal(t, engine.PromptFlagMenu, m.prompt.Kind)
	require.NotContains(t, m.eng.Preview(), "--include", "abandoned flag should leave no trace")
	require.Equal(t, engine.StateAwaitingGroup, m.eng.State(), "no pick yet, so skip stays available")
}

func TestBuild_FlagArgument_EmptyRejected(t *testing.T) {
	m := createTestModel(t, "grep [_OPTIONS_] _PATTERN_ _PATH_")
	m = typeString(m, "j")
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, engine.PromptFlagArgument, m.prompt.Kind, "empty argument should not advance")
	require.Contains(t, m.promptErr, "a value is required")
}

func TestBuild_FlagMenu_MultipleAllowsRepeat(t *testing.T) {
	m := createTestModel(t, "grep [_OPTIONS_] _PATTERN_ _PATH_")

	m = typeString(m, "j")
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	m = typeString(m, "*.go")
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	m = typeString(m, "*.md")
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, 2, m.prompt.Choices[1].Chosen)
	require.Contains(t, m.eng.Preview(), "--include *.go")
	require.Contains(t, m.eng.Preview(), "--include *.md")
}

func TestBuild_FlagMenu_SkipMovesOn(t *testing.T) {
	m := createTestModel(t, "grep [_OPTIONS_] _PATTERN_ _PATH_")

	m = typeString(m, "s")

	require.Equal(t, engine.PromptValue, m.prompt.Kind)
	require.Equal(t, "PATTERN", m.prompt.Group.Name)

	m = typeString(m, "TODO")
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	m = typeString(m, ".")
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, "grep TODO .", m.final, "skipped flag group should vanish entirely")
}

func TestBuild_FlagMenu_SkipAfterPickRefused(t *testing.T) {
	m := createTestModel(t, "grep [_OPTIONS_] _PATTERN_ _PATH_")
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})

	m = typeString(m, "s")

	require.Contains(t, m.promptErr, "press d to finish")
	require.Equal(t, engine.PromptFlagMenu, m.prompt.Kind)
}

func TestBuild_FlagMenu_RequiredSkipRefused(t *testing.T) {
	m := createTestModel(t, "ps _LISTING_")
	require.False(t, m.prompt.AllowSkip)

	m = typeString(m, "s")

	require.Contains(t, m.promptErr, "required")
	require.Equal(t, engine.PromptFlagMenu, m.prompt.Kind)
}

func TestBuild_FlagMenu_DoneAdvances(t *testing.T) {
	m := createTestModel(t, "grep [_OPTIONS_] _PATTERN_ _PATH_")

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	m = typeString(m, "d")

	require.Equal(t, engine.PromptValue, m.prompt.Kind)
	require.Equal(t, "PATTERN", m.prompt.Group.Name)

	m = typeString(m, "err")
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	m = typeString(m, "/var/log")
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, "grep -i err /var/log", m.final)
}

func TestBuild_FlagMenu_DoneWithNothingPicked(t *testing.T) {
	m := createTestModel(t, "grep [_OPTIONS_] _PATTERN_ _PATH_")

	m = typeString(m, "d")

	require.Equal(t, engine.PromptValue, m.prompt.Kind, "done on an untouched menu should move on")
	require.Equal(t, "PATTERN", m.prompt.Group.Name)
}

func TestBuild_FlagMenu_DeselectRemovesPick(t *testing.T) {
	m := createTestModel(t, "grep [_OPTIONS_] _PATTERN_ _PATH_")
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, 1, m.prompt.Choices[0].Chosen)

	m = typeString(m, "u")

	require.Equal(t, 0, m.prompt.Choices[0].Chosen)
	require.NotContains(t, m.eng.Preview(), "-i")
}

func TestBuild_FlagMenu_DeselectUnpickedRefused(t *testing.T) {
	m := createTestModel(t, "grep [_OPTIONS_] _PATTERN_ _PATH_")

	m = typeString(m, "u")

	require.Contains(t, m.promptErr, "not chosen")
}

func TestBuild_FlagMenu_MouseChoose(t *testing.T) {
	m := createTestModel(t, "grep [_OPTIONS_] _PATTERN_ _PATH_")

	m, _ = m.Update(menu.ChooseMsg{Index: 0})

	require.Equal(t, 1, m.prompt.Choices[0].Chosen, "mouse choice should pick the flag")
}

func TestBuild_Cancel_Esc(t *testing.T) {
	m := createTestModel(t, "sleep _SECONDS_")

	m, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyEscape})

	require.NotNil(t, cmd)
	_, ok := cmd().(CancelledMsg)
	require.True(t, ok, "expected CancelledMsg")
	require.Equal(t, engine.StateCancelled, m.eng.State())
}

func TestBuild_CtrlC_CancelsAndQuits(t *testing.T) {
	m := createTestModel(t, "sleep _SECONDS_")

	m, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	require.True(t, ok, "expected quit")
	require.Equal(t, engine.StateCancelled, m.eng.State())
}

func TestBuild_Complete_EnterAccepts(t *testing.T) {
	m := createTestModel(t, "sleep _SECONDS_")
	m = typeString(m, "3")
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, engine.StateComplete, m.eng.State())

	_, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	acc, ok := cmd().(AcceptedMsg)
	require.True(t, ok, "expected AcceptedMsg")
	require.Equal(t, "sleep 3", acc.Command)
}

func TestBuild_Complete_YankCopies(t *testing.T) {
	m := createTestModel(t, "sleep _SECONDS_")
	m = typeString(m, "3")
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})

	m, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})

	clip := m.services.Clipboard.(*shared.MockClipboard)
	require.Equal(t, []string{"sleep 3"}, clip.Copied)

	require.NotNil(t, cmd)
	toast, ok := cmd().(mode.ShowToastMsg)
	require.True(t, ok, "expected a toast")
	require.Equal(t, toaster.StyleSuccess, toast.Style)
	require.Contains(t, toast.Message, "Copied")
}

func TestBuild_Complete_EscGoesBack(t *testing.T) {
	m := createTestModel(t, "sleep _SECONDS_")
	m = typeString(m, "3")
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})

	m, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyEscape})

	require.NotNil(t, cmd)
	_, ok := cmd().(CancelledMsg)
	require.True(t, ok, "expected CancelledMsg")
	require.Equal(t, engine.StateComplete, m.eng.State(), "a finished session keeps its result")
}

func TestBuild_Yank_PreviewDuringSession(t *testing.T) {
	m := createTestModel(t, "grep [_OPTIONS_] _PATTERN_ _PATH_")
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEnter}) // pick -i

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})

	clip := m.services.Clipboard.(*shared.MockClipboard)
	require.Len(t, clip.Copied, 1)
	require.Contains(t, clip.Copied[0], "grep -i")
}

func TestBuild_HelpOverlay(t *testing.T) {
	m := createTestModel(t, "grep [_OPTIONS_] _PATTERN_ _PATH_")

	m = typeString(m, "?")
	require.Equal(t, ViewHelp, m.view, "? should open help on a menu")

	m = typeString(m, "?")
	require.Equal(t, ViewPrompt, m.view, "? should close help")

	m = typeString(m, "?")
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEscape})
	require.Equal(t, ViewPrompt, m.view, "esc should close help")
}

func TestBuild_Help_QuestionMarkTypesInValuePrompt(t *testing.T) {
	m := createTestModel(t, "sleep _SECONDS_")

	m = typeString(m, "?")

	require.Equal(t, ViewPrompt, m.view, "text prompts own every printable key")
	require.Equal(t, "?", m.input.Value())
}

func TestBuild_StepLabel_Advances(t *testing.T) {
	m := createTestModel(t, "grep [_OPTIONS_] _PATTERN_ _PATH_")
	require.Equal(t, "Step 1 of 3", m.stepLabel())

	m = typeString(m, "s")

	require.Equal(t, "Step 2 of 3", m.stepLabel())
}

func TestBuild_View_ValuePrompt(t *testing.T) {
	m := createTestModel(t, "sleep _SECONDS_")

	view := m.View()

	require.Contains(t, view, "Step 1 of 1")
	require.Contains(t, view, "SECONDS")
	require.Contains(t, view, "number")
	require.Contains(t, view, "from template")
}

func TestBuild_View_FlagMenu(t *testing.T) {
	m := createTestModel(t, "grep [_OPTIONS_] _PATTERN_ _PATH_")

	view := m.View()

	require.Contains(t, view, "OPTIONS")
	require.Contains(t, view, "-i")
	require.Contains(t, view, "--include")
	require.Contains(t, view, "Step 1 of 3")
}

func TestBuild_View_Suggestions(t *testing.T) {
	m := createTestModel(t, "head [-n _COUNT_] _FILE_")
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEnter}) // skip COUNT

	view := m.View()

	require.Contains(t, view, "./README.md")
	require.Contains(t, view, "tab:")
}

func TestBuild_View_Complete(t *testing.T) {
	m := createTestModel(t, "git status")

	view := m.View()

	require.Contains(t, view, "Command Ready")
	require.Contains(t, view, "git status")
}

func TestBuild_View_Error(t *testing.T) {
	m := createTestModel(t, "sleep _SECONDS_")
	m = typeString(m, "soon")
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})

	view := m.View()

	require.Contains(t, view, "not a valid number")
}

func TestBuild_View_ZeroSizeEmpty(t *testing.T) {
	svc := testServices(t)
	entry, ok := svc.Registry.Lookup("sleep _SECONDS_")
	require.True(t, ok)

	m := New(svc, entry)

	require.Empty(t, m.View(), "zero size should render nothing")
}

func TestBuild_View_NotPanics(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) Model
	}{
		{
			name: "value_prompt",
			setup: func(t *testing.T) Model {
				return createTestModel(t, "sleep _SECONDS_")
			},
		},
		{
			name: "flag_menu",
			setup: func(t *testing.T) Model {
				return createTestModel(t, "grep [_OPTIONS_] _PATTERN_ _PATH_")
			},
		},
		{
			name: "flag_argument",
			setup: func(t *testing.T) Model {
				m := createTestModel(t, "grep [_OPTIONS_] _PATTERN_ _PATH_")
				m = typeString(m, "j")
				m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
				return m
			},
		},
		{
			name: "complete",
			setup: func(t *testing.T) Model {
				return createTestModel(t, "git status")
			},
		},
		{
			name: "help_overlay",
			setup: func(t *testing.T) Model {
				m := createTestModel(t, "grep [_OPTIONS_] _PATTERN_ _PATH_")
				return typeString(m, "?")
			},
		},
		{
			name: "narrow_terminal",
			setup: func(t *testing.T) Model {
				m := createTestModel(t, "grep [_OPTIONS_] _PATTERN_ _PATH_")
				return m.SetSize(30, 10)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tt.setup(t)
			require.NotPanics(t, func() { _ = m.View() })
		})
	}
}
