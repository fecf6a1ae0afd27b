package engine

import (
	"fmt"

	"github.com/snova-cli/snova/internal/template"
)

// PromptKind identifies what the UI should ask for next.
type PromptKind int

const (
	// PromptValue asks for free text answering a value group.
	PromptValue PromptKind = iota
	// PromptFlagMenu offers the current flag group's options.
	PromptFlagMenu
	// PromptFlagArgument asks for the pending flag's argument.
	PromptFlagArgument
)

// FlagChoice is one row of a flag menu.
type FlagChoice struct {
	Flag     *template.FlagOption
	Index    int
	Chosen   int  // times already picked this session
	Disabled bool // non-repeatable flag that is already picked
}

// Prompt describes the next question of the walkthrough. The engine
// produces it; the build view renders it.
type Prompt struct {
	Kind    PromptKind
	Group   *template.Group
	Flag    *template.FlagOption // pending flag for PromptFlagArgument
	Expect  template.ValueType   // value type being collected
	Suggest []string             // quick picks offered alongside free input

	AllowSkip bool // the group may end with nothing via skip
	AllowDone bool // the flag menu may be confirmed as-is
	Choices   []FlagChoice
}

// Prompt returns the current question, or an error once the session has
// ended.
func (e *Engine) Prompt() (*Prompt, error) {
	if e.Done() {
		return nil, fmt.Errorf("session is %s", e.state)
	}

	g, err := e.currentGroup()
	if err != nil {
		return nil, err
	}

	switch e.state {
	case StateAwaitingFlagArgument:
		if e.flag == nil || e.flag.Expect == nil {
			return nil, &template.SelectionStateError{Template: e.tmpl.Raw, Group: g.Name,
				Reason: "awaiting an argument with no pending flag"}
		}
		return &Prompt{
			Kind:    PromptFlagArgument,
			Group:   g,
			Flag:    e.flag,
			Expect:  *e.flag.Expect,
			Suggest: e.flag.Suggest,
		}, nil

	case StateAwaitingGroup, StateAwaitingMoreFlags:
		if g.Kind == template.GroupValue {
			return &Prompt{
				Kind:      PromptValue,
				Group:     g,
				Expect:    g.Expect,
				Suggest:   g.Suggest,
				AllowSkip: g.Optional,
			}, nil
		}

		_, decided := e.sel.Decision(g.Name)
		choices := make([]FlagChoice, 0, len(g.Flags))
		for i, flag := range g.Flags {
			chosen := e.sel.PickCount(g.Name, flag)
			choices = append(choices, FlagChoice{
				Flag:     flag,
				Index:    i,
				Chosen:   chosen,
				Disabled: !flag.Multiple && chosen > 0,
			})
		}
		return &Prompt{
			Kind:      PromptFlagMenu,
			Group:     g,
			Choices:   choices,
			AllowSkip: g.Optional && !decided,
			AllowDone: true,
		}, nil

	default:
		return nil, &template.SelectionStateError{Template: e.tmpl.Raw,
			Reason: fmt.Sprintf("no prompt for state %s", e.state)}
	}
}
