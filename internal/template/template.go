package template

import "fmt"

// ValueType constrains the free-text values a group or flag argument
// accepts.
type ValueType int

const (
	ValueString ValueType = iota // any text
	ValueNumber                  // decimal integer, optional leading minus
	ValuePath                    // any non-empty text
)

// String returns the definition-file spelling of the value type.
func (v ValueType) String() string {
	switch v {
	case ValueString:
		return "string"
	case ValueNumber:
		return "number"
	case ValuePath:
		return "path"
	default:
		return "unknown"
	}
}

// ParseValueType converts a definition-file spelling to a ValueType.
func ParseValueType(s string) (ValueType, error) {
	switch s {
	case "string", "String", "STRING":
		return ValueString, nil
	case "number", "Number", "NUMBER":
		return ValueNumber, nil
	case "path", "Path", "PATH":
		return ValuePath, nil
	default:
		return ValueString, fmt.Errorf("unknown value type %q (valid: string, number, path)", s)
	}
}

// Validate checks input against the value type. A failure is returned as
// an InputValidationError so callers can re-prompt instead of aborting.
func (v ValueType) Validate(input string) error {
	switch v {
	case ValueString:
		return nil
	case ValueNumber:
		if !isNumeric(input) {
			return &InputValidationError{Type: v, Input: input, Hint: "enter a whole number, such as 3 or -1"}
		}
		return nil
	case ValuePath:
		if input == "" {
			return &InputValidationError{Type: v, Input: input, Hint: "enter a file or directory path"}
		}
		return nil
	default:
		return fmt.Errorf("unhandled value type %d", int(v))
	}
}

// isNumeric reports whether s is a decimal integer literal, allowing one
// leading minus sign.
func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '-' {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// FlagDef is the definition-file shape of a single flag option.
type FlagDef struct {
	Template    string   `yaml:"template"`
	Description string   `yaml:"description"`
	Expect      string   `yaml:"expect,omitempty"`
	Suggest     []string `yaml:"suggest,omitempty"`
	Multiple    bool     `yaml:"multiple,omitempty"`
}

// GroupDef is the definition-file shape of a group: exactly one of Expect
// (value group) or Flags (flag group) must be set.
type GroupDef struct {
	Expect   string    `yaml:"expect,omitempty"`
	Suggest  []string  `yaml:"suggest,omitempty"`
	Multiple bool      `yaml:"multiple,omitempty"`
	Flags    []FlagDef `yaml:"flags,omitempty"`
}

// FlagOption is one selectable flag in a flag group.
type FlagOption struct {
	Template    string    // raw, may carry *bold* markers and one _ARG_ slot
	Description string
	Expect      *ValueType // nil when the flag takes no argument
	Suggest     []string   // quick picks offered alongside free input
	Multiple    bool       // may be chosen more than once

	Segments []Segment // parsed template, at most one Placeholder
	ArgName  string    // placeholder name, "" for an implicit trailing slot
}

// TakesValue reports whether choosing this flag prompts for an argument.
func (f *FlagOption) TakesValue() bool {
	return f.Expect != nil
}

// GroupKind distinguishes value groups from flag groups.
type GroupKind int

const (
	GroupValue GroupKind = iota
	GroupFlags
)

// Group is a named decision point in a command template.
type Group struct {
	Name     string
	Kind     GroupKind
	Expect   ValueType     // valid when Kind == GroupValue
	Suggest  []string      // value-group quick picks
	Flags    []*FlagOption // valid when Kind == GroupFlags, declared order
	Optional bool          // the group's placeholder sits inside [ ]
}

// CommandTemplate is a parsed, validated command definition. Templates are
// immutable after construction and safe for concurrent reads.
type CommandTemplate struct {
	Raw         string
	Description string
	Segments    []Segment
	Groups      map[string]*Group

	order []string // group names in order of appearance
}

// GroupOrder returns the group names in order of first appearance in the
// template, which is the order the selection engine walks them.
func (t *CommandTemplate) GroupOrder() []string {
	return t.order
}

// Group returns the named group, or false if the template has no such
// group.
func (t *CommandTemplate) Group(name string) (*Group, bool) {
	g, ok := t.Groups[name]
	return g, ok
}
