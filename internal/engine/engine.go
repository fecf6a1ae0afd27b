// Package engine drives a command-building session. An engine walks a
// template's groups in order of appearance, asks for values or flag
// picks, validates every answer, and keeps the selection consistent until
// the command is complete or the session is cancelled.
package engine

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/snova-cli/snova/internal/log"
	"github.com/snova-cli/snova/internal/template"
)

// State is the engine's position in the walkthrough.
type State int

const (
	// StateAwaitingGroup means the engine is prompting for the current
	// group, which has no picks yet.
	StateAwaitingGroup State = iota
	// StateAwaitingFlagArgument means a chosen flag needs its argument
	// before it joins the selection.
	StateAwaitingFlagArgument
	// StateAwaitingMoreFlags means the current flag group has at least
	// one pick and is open for more.
	StateAwaitingMoreFlags
	// StateComplete means every group is decided and the final command
	// can be rendered.
	StateComplete
	// StateCancelled means the session was aborted and produces no
	// output.
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateAwaitingGroup:
		return "awaiting-group"
	case StateAwaitingFlagArgument:
		return "awaiting-flag-argument"
	case StateAwaitingMoreFlags:
		return "awaiting-more-flags"
	case StateComplete:
		return "complete"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Engine owns one selection and one template for the lifetime of a
// session. Navigation never mutates the selection; only answers do.
type Engine struct {
	id    string
	tmpl  *template.CommandTemplate
	sel   *template.Selection
	state State
	group int                  // index into tmpl.GroupOrder()
	flag  *template.FlagOption // flag waiting for its argument
}

// New starts a session for the template. A template without groups is
// complete immediately.
func New(tmpl *template.CommandTemplate) *Engine {
	e := &Engine{
		id:   uuid.NewString(),
		tmpl: tmpl,
		sel:  template.NewSelection(),
	}
	if len(tmpl.GroupOrder()) == 0 {
		e.state = StateComplete
	}
	log.Debug(log.CatEngine, "session started", "session", e.id, "template", tmpl.Raw)
	return e
}

// ID returns the session identifier.
func (e *Engine) ID() string {
	return e.id
}

// Template returns the template this session builds.
func (e *Engine) Template() *template.CommandTemplate {
	return e.tmpl
}

// State returns the current walkthrough state.
func (e *Engine) State() State {
	return e.state
}

// Done reports whether the session has ended, by completion or
// cancellation.
func (e *Engine) Done() bool {
	return e.state == StateComplete || e.state == StateCancelled
}

// currentGroup returns the group the engine is positioned on.
func (e *Engine) currentGroup() (*template.Group, error) {
	order := e.tmpl.GroupOrder()
	if e.group >= len(order) {
		return nil, &template.SelectionStateError{Template: e.tmpl.Raw,
			Reason: fmt.Sprintf("group index %d out of range in state %s", e.group, e.state)}
	}
	g, ok := e.tmpl.Group(order[e.group])
	if !ok {
		return nil, &template.SelectionStateError{Template: e.tmpl.Raw, Group: order[e.group],
			Reason: "group order names a group the template does not have"}
	}
	return g, nil
}

// advance moves to the next group, or completes the session when the
// walk is over.
func (e *Engine) advance() {
	e.group++
	e.flag = nil
	if e.group >= len(e.tmpl.GroupOrder()) {
		e.state = StateComplete
		log.Debug(log.CatEngine, "session complete", "session", e.id)
		return
	}
	e.state = StateAwaitingGroup
}

// ProvideValue answers the current value group. Input that fails the
// group's value type comes back as an InputValidationError and the
// engine stays put.
func (e *Engine) ProvideValue(text string) error {
	if e.state != StateAwaitingGroup {
		return &template.SelectionStateError{Template: e.tmpl.Raw,
			Reason: fmt.Sprintf("ProvideValue called in state %s", e.state)}
	}
	g, err := e.currentGroup()
	if err != nil {
		return err
	}
	if g.Kind != template.GroupValue {
		return &template.SelectionStateError{Template: e.tmpl.Raw, Group: g.Name,
			Reason: "ProvideValue called on a flag group"}
	}
	if text == "" {
		return &template.InputValidationError{Type: g.Expect, Input: text, Hint: "a value is required"}
	}
	if err := g.Expect.Validate(text); err != nil {
		return err
	}
	e.sel.SetValue(g.Name, text)
	log.Debug(log.CatEngine, "value recorded", "session", e.id, "group", g.Name)
	e.advance()
	return nil
}

// SkipGroup skips the current optional group. Required value groups
// cannot be skipped; flag groups end with nothing via ConfirmGroup.
func (e *Engine) SkipGroup() error {
	if e.state != StateAwaitingGroup {
		return &template.SelectionStateError{Template: e.tmpl.Raw,
			Reason: fmt.Sprintf("SkipGroup called in state %s", e.state)}
	}
	g, err := e.currentGroup()
	if err != nil {
		return err
	}
	if !g.Optional {
		return fmt.Errorf("group %s is required and cannot be skipped", g.Name)
	}
	e.sel.Skip(g.Name)
	log.Debug(log.CatEngine, "group skipped", "session", e.id, "group", g.Name)
	e.advance()
	return nil
}

// ChooseFlag picks a flag from the current flag group by menu index. A
// flag that takes an argument moves the engine to
// StateAwaitingFlagArgument; one that does not joins the selection
// immediately.
func (e *Engine) ChooseFlag(i int) error {
	g, err := e.flagGroup("ChooseFlag")
	if err != nil {
		return err
	}
	if i < 0 || i >= len(g.Flags) {
		return &template.SelectionStateError{Template: e.tmpl.Raw, Group: g.Name,
			Reason: fmt.Sprintf("flag index %d out of range", i)}
	}
	flag := g.Flags[i]
	if !flag.Multiple && e.sel.PickCount(g.Name, flag) > 0 {
		return fmt.Errorf("flag %s is already chosen", template.Display(flag.Template))
	}

	if flag.TakesValue() {
		e.flag = flag
		e.state = StateAwaitingFlagArgument
		return nil
	}

	e.sel.AppendPick(g.Name, template.FlagPick{Flag: flag})
	e.state = StateAwaitingMoreFlags
	log.Debug(log.CatEngine, "flag picked", "session", e.id, "group", g.Name, "flag", flag.Template)
	return nil
}

// ProvideFlagArgument answers the pending flag's argument and returns to
// the flag menu.
func (e *Engine) ProvideFlagArgument(text string) error {
	if e.state != StateAwaitingFlagArgument || e.flag == nil {
		return &template.SelectionStateError{Template: e.tmpl.Raw,
			Reason: fmt.Sprintf("ProvideFlagArgument called in state %s", e.state)}
	}
	g, err := e.currentGroup()
	if err != nil {
		return err
	}
	if text == "" {
		return &template.InputValidationError{Type: *e.flag.Expect, Input: text, Hint: "a value is required"}
	}
	if err := (*e.flag.Expect).Validate(text); err != nil {
		return err
	}
	e.sel.AppendPick(g.Name, template.FlagPick{Flag: e.flag, Value: text, HasValue: true})
	log.Debug(log.CatEngine, "flag argument recorded", "session", e.id, "group", g.Name, "flag", e.flag.Template)
	e.flag = nil
	e.state = StateAwaitingMoreFlags
	return nil
}

// CancelFlagArgument abandons the pending flag without recording a pick
// and returns to the flag menu.
func (e *Engine) CancelFlagArgument() error {
	if e.state != StateAwaitingFlagArgument {
		return &template.SelectionStateError{Template: e.tmpl.Raw,
			Reason: fmt.Sprintf("CancelFlagArgument called in state %s", e.state)}
	}
	g, err := e.currentGroup()
	if err != nil {
		return err
	}
	e.flag = nil
	e.state = e.menuState(g)
	return nil
}

// DeselectFlag removes the most recent pick of the given flag from the
// current group.
func (e *Engine) DeselectFlag(i int) error {
	g, err := e.flagGroup("DeselectFlag")
	if err != nil {
		return err
	}
	if i < 0 || i >= len(g.Flags) {
		return &template.SelectionStateError{Template: e.tmpl.Raw, Group: g.Name,
			Reason: fmt.Sprintf("flag index %d out of range", i)}
	}
	flag := g.Flags[i]
	if !e.sel.RemoveLastPick(g.Name, flag) {
		return fmt.Errorf("flag %s is not chosen", template.Display(flag.Template))
	}
	e.state = e.menuState(g)
	log.Debug(log.CatEngine, "flag deselected", "session", e.id, "group", g.Name, "flag", flag.Template)
	return nil
}

// ConfirmGroup finishes the current flag group with whatever is picked.
// Confirming with no picks records the group as contributing nothing.
func (e *Engine) ConfirmGroup() error {
	g, err := e.flagGroup("ConfirmGroup")
	if err != nil {
		return err
	}
	if _, decided := e.sel.Decision(g.Name); !decided {
		e.sel.Skip(g.Name)
	}
	log.Debug(log.CatEngine, "group confirmed", "session", e.id, "group", g.Name)
	e.advance()
	return nil
}

// Cancel aborts the session. The selection is discarded and no command
// is ever produced from it.
func (e *Engine) Cancel() {
	if e.Done() {
		return
	}
	e.state = StateCancelled
	log.Debug(log.CatEngine, "session cancelled", "session", e.id)
}

// Preview renders the partial command for the current selection.
func (e *Engine) Preview() string {
	return template.Preview(e.tmpl, e.sel)
}

// Final renders the finished command. It is only available in
// StateComplete.
func (e *Engine) Final() (string, error) {
	if e.state != StateComplete {
		return "", &template.SelectionStateError{Template: e.tmpl.Raw,
			Reason: fmt.Sprintf("Final called in state %s", e.state)}
	}
	return template.Final(e.tmpl, e.sel)
}

// flagGroup returns the current group when flag operations are legal in
// the present state.
func (e *Engine) flagGroup(op string) (*template.Group, error) {
	if e.state != StateAwaitingGroup && e.state != StateAwaitingMoreFlags {
		return nil, &template.SelectionStateError{Template: e.tmpl.Raw,
			Reason: fmt.Sprintf("%s called in state %s", op, e.state)}
	}
	g, err := e.currentGroup()
	if err != nil {
		return nil, err
	}
	if g.Kind != template.GroupFlags {
		return nil, &template.SelectionStateError{Template: e.tmpl.Raw, Group: g.Name,
			Reason: fmt.Sprintf("%s called on a value group", op)}
	}
	return g, nil
}

// menuState returns the flag-menu state matching the group's pick count.
func (e *Engine) menuState(g *template.Group) State {
	if _, decided := e.sel.Decision(g.Name); decided {
		return StateAwaitingMoreFlags
	}
	return StateAwaitingGroup
}
