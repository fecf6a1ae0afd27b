package template

// DecisionKind distinguishes the ways a group can be resolved.
type DecisionKind int

const (
	DecisionSkipped DecisionKind = iota // group contributes nothing
	DecisionValue                       // value group answered with text
	DecisionFlags                       // flag group with at least one pick
)

// FlagPick is one chosen flag together with its argument, when the flag
// takes one.
type FlagPick struct {
	Flag     *FlagOption
	Value    string
	HasValue bool
}

// Decision records how one group was resolved.
type Decision struct {
	Kind  DecisionKind
	Value string     // valid when Kind == DecisionValue
	Picks []FlagPick // valid when Kind == DecisionFlags, in choice order
}

// Selection is the per-session record of decisions, one per group name.
// A selection belongs to exactly one engine and is discarded when the
// session completes or is cancelled. Groups without an entry are still
// undecided.
type Selection struct {
	decisions map[string]*Decision
}

// NewSelection creates an empty selection.
func NewSelection() *Selection {
	return &Selection{decisions: make(map[string]*Decision)}
}

// Decision returns the decision for the named group, or false while the
// group is undecided.
func (s *Selection) Decision(name string) (*Decision, bool) {
	d, ok := s.decisions[name]
	return d, ok
}

// Skip records that the named group contributes nothing.
func (s *Selection) Skip(name string) {
	s.decisions[name] = &Decision{Kind: DecisionSkipped}
}

// SetValue records the answer for a value group.
func (s *Selection) SetValue(name, value string) {
	s.decisions[name] = &Decision{Kind: DecisionValue, Value: value}
}

// AppendPick adds a flag pick to the named group, creating the flags
// decision on the first pick. Pick order is preserved; it is the render
// order.
func (s *Selection) AppendPick(name string, pick FlagPick) {
	d, ok := s.decisions[name]
	if !ok || d.Kind != DecisionFlags {
		d = &Decision{Kind: DecisionFlags}
		s.decisions[name] = d
	}
	d.Picks = append(d.Picks, pick)
}

// RemoveLastPick removes the most recent pick of the given flag from the
// named group and reports whether one was removed. Removing the last
// remaining pick leaves the group undecided again.
func (s *Selection) RemoveLastPick(name string, flag *FlagOption) bool {
	d, ok := s.decisions[name]
	if !ok || d.Kind != DecisionFlags {
		return false
	}
	for i := len(d.Picks) - 1; i >= 0; i-- {
		if d.Picks[i].Flag == flag {
			d.Picks = append(d.Picks[:i], d.Picks[i+1:]...)
			if len(d.Picks) == 0 {
				delete(s.decisions, name)
			}
			return true
		}
	}
	return false
}

// PickCount returns how many times the given flag has been picked in the
// named group.
func (s *Selection) PickCount(name string, flag *FlagOption) int {
	d, ok := s.decisions[name]
	if !ok || d.Kind != DecisionFlags {
		return 0
	}
	n := 0
	for _, p := range d.Picks {
		if p.Flag == flag {
			n++
		}
	}
	return n
}
