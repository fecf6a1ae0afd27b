package template

import (
	"fmt"
	"strings"
)

// DefinitionError reports an invalid command definition. Definition errors
// are fatal for the entry that carries them but never for the load as a
// whole: the loader reports each one with its provenance and keeps going.
type DefinitionError struct {
	Provenance string // "builtin" or the defining file, set by the loader
	Template   string // raw template text of the entry
	Group      string // offending group name, when known
	Reason     string
	Err        error // underlying parse error, when any
}

// Error formats the definition error with as much context as is known.
func (e *DefinitionError) Error() string {
	var b strings.Builder
	b.WriteString("invalid command definition")
	if e.Template != "" {
		fmt.Fprintf(&b, " %q", e.Template)
	}
	if e.Group != "" {
		fmt.Fprintf(&b, " (group %s)", e.Group)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	if e.Provenance != "" {
		fmt.Fprintf(&b, " [%s]", e.Provenance)
	}
	return b.String()
}

func (e *DefinitionError) Unwrap() error {
	return e.Err
}

// InputValidationError reports user input that does not satisfy a value
// type. It is never fatal: the engine stays in place and the caller
// re-prompts with the hint.
type InputValidationError struct {
	Type  ValueType
	Input string
	Hint  string
}

func (e *InputValidationError) Error() string {
	return fmt.Sprintf("%q is not a valid %s: %s", e.Input, e.Type, e.Hint)
}

// SelectionStateError reports an internal invariant violation, such as a
// required group left undecided at render time. These are unreachable
// through the engine API and indicate a bug.
type SelectionStateError struct {
	Template string
	Group    string
	Reason   string
}

func (e *SelectionStateError) Error() string {
	if e.Group != "" {
		return fmt.Sprintf("selection state for %q broken at group %s: %s", e.Template, e.Group, e.Reason)
	}
	return fmt.Sprintf("selection state for %q broken: %s", e.Template, e.Reason)
}
