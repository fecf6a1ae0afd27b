// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// LogOverlay toggles the debug log tail from any mode. It only works
// when snova started with logging enabled.
var LogOverlay = key.NewBinding(
	key.WithKeys("ctrl+x"),
	key.WithHelp("ctrl+x", "debug logs"),
)

// BrowseKeyMap defines the keybindings for browsing templates.
type BrowseKeyMap struct {
	// Navigation
	Up   key.Binding
	Down key.Binding

	// Actions
	Start       key.Binding
	FocusFilter key.Binding
	Reload      key.Binding
	Guide       key.Binding
	Problems    key.Binding

	// Toggles
	ToggleProvenance key.Binding
	ToggleStatus     key.Binding

	// General
	Help   key.Binding
	Escape key.Binding
	Quit   key.Binding
}

// DefaultBrowseKeyMap returns the default browse keybindings.
func DefaultBrowseKeyMap() BrowseKeyMap {
	return BrowseKeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "move down"),
		),

		// Actions
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "build command"),
		),
		FocusFilter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter templates"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload definitions"),
		),
		Guide: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "template guide"),
		),
		Problems: key.NewBinding(
			key.WithKeys("!"),
			key.WithHelp("!", "show problems"),
		),

		// Toggles
		ToggleProvenance: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "toggle provenance"),
		),
		ToggleStatus: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "toggle status bar"),
		),

		// General
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "go back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k BrowseKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.FocusFilter, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k BrowseKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Start},                     // Navigation
		{k.FocusFilter, k.Reload, k.Guide, k.Problems}, // Actions
		{k.ToggleProvenance, k.ToggleStatus},        // Toggles
		{k.Help, k.Escape, k.Quit},                  // General
	}
}

// BuildKeyMap defines the keybindings for a build session.
type BuildKeyMap struct {
	// Navigation
	Up   key.Binding
	Down key.Binding

	// Decisions
	Choose   key.Binding
	Skip     key.Binding
	Done     key.Binding
	Deselect key.Binding

	// Result
	Yank key.Binding

	// General
	Back key.Binding
	Help key.Binding
	Quit key.Binding
}

// DefaultBuildKeyMap returns the default build keybindings.
func DefaultBuildKeyMap() BuildKeyMap {
	return BuildKeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "move down"),
		),

		// Decisions
		Choose: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "choose"),
		),
		Skip: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "skip group"),
		),
		Done: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "done with flags"),
		),
		Deselect: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "undo last pick"),
		),

		// Result
		Yank: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy command"),
		),

		// General
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k BuildKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Choose, k.Skip, k.Done, k.Help}
}

// FullHelp returns keybindings for the full help view.
func (k BuildKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Choose},      // Navigation
		{k.Skip, k.Done, k.Deselect},  // Decisions
		{k.Yank, k.Back},              // Result
		{k.Help, k.Quit},              // General
	}
}
