package template

import "strings"

// Rendering is a pure function of (template, selection): the build view
// calls Preview after every transition and Final exactly once, and both
// see the same text for the same state.

// piece is one rendered fragment plus its spacing relative to the
// previous fragment.
type piece struct {
	text   string
	spaced bool
}

// joinPieces assembles fragments, inserting a single space before each
// spaced fragment. Empty fragments are dropped, so omitted groups never
// leave doubled spaces behind.
func joinPieces(pieces []piece) string {
	var b strings.Builder
	for _, p := range pieces {
		if p.text == "" {
			continue
		}
		if b.Len() > 0 && p.spaced {
			b.WriteByte(' ')
		}
		b.WriteString(p.text)
	}
	return b.String()
}

// Preview renders the partial command for the current selection. Decided
// groups show their values, undecided ones their _NAME_ placeholder form,
// and skipped ones nothing. Bold markers never appear in the output.
func Preview(t *CommandTemplate, sel *Selection) string {
	// Undecided groups fall back to their placeholder form, so preview
	// rendering has no failure paths.
	pieces, _ := renderSegments(t, t.Segments, sel, true)
	return joinPieces(pieces)
}

// Final renders the finished command. Every group must carry a decision;
// an undecided group is a SelectionStateError, which the engine makes
// unreachable by construction.
func Final(t *CommandTemplate, sel *Selection) (string, error) {
	pieces, err := renderSegments(t, t.Segments, sel, false)
	if err != nil {
		return "", err
	}
	return joinPieces(pieces), nil
}

// renderSegments renders a segment run. In preview mode undecided groups
// render as placeholders; in final mode they are an error.
func renderSegments(t *CommandTemplate, segs []Segment, sel *Selection, preview bool) ([]piece, error) {
	var pieces []piece
	for _, s := range segs {
		switch s := s.(type) {
		case *Literal:
			pieces = append(pieces, piece{text: s.Text, spaced: s.Spaced})
		case *Placeholder:
			ps, _, err := renderGroup(t, s.Name, sel, s.Spaced, preview)
			if err != nil {
				return nil, err
			}
			pieces = append(pieces, ps...)
		case *Optional:
			ps, _, err := renderOptional(t, s, sel, preview)
			if err != nil {
				return nil, err
			}
			if len(ps) > 0 {
				ps[0].spaced = s.Spaced
			}
			pieces = append(pieces, ps...)
		}
	}
	return pieces, nil
}

// renderOptional renders a bracketed run. The bracket is omitted
// entirely, framing literals included, when every group referenced inside
// it resolved to nothing. Literals ahead of a group stand or fall with
// that group; trailing literals follow the bracket's overall outcome.
func renderOptional(t *CommandTemplate, o *Optional, sel *Selection, preview bool) ([]piece, bool, error) {
	var out []piece
	var buffered []piece
	retained := false

	flush := func(ps []piece) {
		out = append(out, buffered...)
		out = append(out, ps...)
		buffered = buffered[:0]
		retained = true
	}

	for _, s := range o.Segments {
		switch s := s.(type) {
		case *Literal:
			buffered = append(buffered, piece{text: s.Text, spaced: s.Spaced})
		case *Placeholder:
			ps, present, err := renderGroup(t, s.Name, sel, s.Spaced, preview)
			if err != nil {
				return nil, false, err
			}
			if present {
				flush(ps)
			} else {
				buffered = buffered[:0]
			}
		case *Optional:
			ps, present, err := renderOptional(t, s, sel, preview)
			if err != nil {
				return nil, false, err
			}
			if present {
				if len(ps) > 0 {
					ps[0].spaced = s.Spaced
				}
				flush(ps)
			} else {
				buffered = buffered[:0]
			}
		}
	}

	if retained {
		out = append(out, buffered...)
	}
	return out, retained, nil
}

// renderGroup resolves one placeholder against the selection. The caller
// learns whether the group produced anything, which drives the omission
// of optional framing around it.
func renderGroup(t *CommandTemplate, name string, sel *Selection, spaced, preview bool) ([]piece, bool, error) {
	d, decided := sel.Decision(name)
	if !decided {
		if preview {
			return []piece{{text: "_" + name + "_", spaced: spaced}}, true, nil
		}
		return nil, false, &SelectionStateError{Template: t.Raw, Group: name, Reason: "group is undecided"}
	}

	switch d.Kind {
	case DecisionSkipped:
		return nil, false, nil
	case DecisionValue:
		if d.Value == "" {
			return nil, false, nil
		}
		return []piece{{text: d.Value, spaced: spaced}}, true, nil
	case DecisionFlags:
		var pieces []piece
		for i, pick := range d.Picks {
			ps := renderPick(pick)
			if len(ps) > 0 {
				if i == 0 {
					ps[0].spaced = spaced
				} else {
					ps[0].spaced = true
				}
			}
			pieces = append(pieces, ps...)
		}
		return pieces, len(pieces) > 0, nil
	default:
		return nil, false, &SelectionStateError{Template: t.Raw, Group: name, Reason: "unknown decision kind"}
	}
}

// renderPick expands one chosen flag: its literal prefix with the argument
// substituted into the embedded slot, or appended after the prefix when
// the flag declares an expect type without a slot.
func renderPick(pick FlagPick) []piece {
	var pieces []piece
	for _, s := range pick.Flag.Segments {
		switch s := s.(type) {
		case *Literal:
			pieces = append(pieces, piece{text: s.Text, spaced: s.Spaced})
		case *Placeholder:
			if pick.HasValue {
				pieces = append(pieces, piece{text: pick.Value, spaced: s.Spaced})
			}
		}
	}
	if pick.Flag.TakesValue() && pick.Flag.ArgName == "" && pick.HasValue {
		pieces = append(pieces, piece{text: pick.Value, spaced: true})
	}
	return pieces
}
