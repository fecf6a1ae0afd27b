package template

import "fmt"

// New parses and validates a command definition, binding template
// placeholders against the group definitions. Every failure is returned
// as a *DefinitionError; the first problem found wins.
func New(raw, description string, defs map[string]GroupDef) (*CommandTemplate, error) {
	segs, err := ParseTemplate(raw)
	if err != nil {
		return nil, &DefinitionError{Template: raw, Reason: err.Error(), Err: err}
	}

	refs := placeholderNames(segs)
	seen := make(map[string]bool, len(refs))
	for _, name := range refs {
		if seen[name] {
			return nil, &DefinitionError{Template: raw, Group: name,
				Reason: fmt.Sprintf("placeholder _%s_ appears more than once", name)}
		}
		seen[name] = true
		if _, ok := defs[name]; !ok {
			return nil, &DefinitionError{Template: raw, Group: name,
				Reason: fmt.Sprintf("placeholder _%s_ has no group definition", name)}
		}
	}
	for name := range defs {
		if !seen[name] {
			return nil, &DefinitionError{Template: raw, Group: name,
				Reason: fmt.Sprintf("group %s is never referenced in the template", name)}
		}
	}

	t := &CommandTemplate{
		Raw:         raw,
		Description: description,
		Segments:    segs,
		Groups:      make(map[string]*Group, len(refs)),
		order:       refs,
	}

	optional := optionalNames(segs)
	for _, name := range refs {
		g, derr := buildGroup(name, defs[name])
		if derr != nil {
			derr.Template = raw
			return nil, derr
		}
		g.Optional = optional[name]
		t.Groups[name] = g
	}

	return t, nil
}

// buildGroup validates a single group definition and produces its typed
// form.
func buildGroup(name string, def GroupDef) (*Group, *DefinitionError) {
	hasExpect := def.Expect != ""
	hasFlags := len(def.Flags) > 0

	switch {
	case hasExpect && hasFlags:
		return nil, &DefinitionError{Group: name, Reason: "group defines both expect and flags; pick one"}
	case !hasExpect && !hasFlags:
		return nil, &DefinitionError{Group: name, Reason: "group defines neither expect nor flags"}
	}

	if hasExpect {
		if def.Multiple {
			return nil, &DefinitionError{Group: name,
				Reason: "multiple applies to flags, not to value groups"}
		}
		vt, err := ParseValueType(def.Expect)
		if err != nil {
			return nil, &DefinitionError{Group: name, Reason: err.Error(), Err: err}
		}
		return &Group{Name: name, Kind: GroupValue, Expect: vt, Suggest: def.Suggest}, nil
	}

	g := &Group{Name: name, Kind: GroupFlags, Flags: make([]*FlagOption, 0, len(def.Flags))}
	for _, fd := range def.Flags {
		flag, derr := buildFlag(name, fd)
		if derr != nil {
			return nil, derr
		}
		g.Flags = append(g.Flags, flag)
	}
	return g, nil
}

// buildFlag validates a single flag definition.
func buildFlag(group string, def FlagDef) (*FlagOption, *DefinitionError) {
	segs, argName, err := ParseFlagTemplate(def.Template)
	if err != nil {
		return nil, &DefinitionError{Group: group,
			Reason: fmt.Sprintf("flag %q: %v", def.Template, err), Err: err}
	}

	flag := &FlagOption{
		Template:    def.Template,
		Description: def.Description,
		Suggest:     def.Suggest,
		Multiple:    def.Multiple,
		Segments:    segs,
		ArgName:     argName,
	}

	hasSlot := argName != ""
	if def.Expect == "" {
		if hasSlot {
			return nil, &DefinitionError{Group: group,
				Reason: fmt.Sprintf("flag %q embeds argument slot _%s_ but declares no expect type", def.Template, argName)}
		}
		return flag, nil
	}

	vt, err := ParseValueType(def.Expect)
	if err != nil {
		return nil, &DefinitionError{Group: group,
			Reason: fmt.Sprintf("flag %q: %v", def.Template, err), Err: err}
	}
	flag.Expect = &vt
	return flag, nil
}

// optionalNames reports, per placeholder name, whether the placeholder
// sits inside an optional segment at any depth.
func optionalNames(segs []Segment) map[string]bool {
	opt := make(map[string]bool)
	walkSegments(segs, func(s Segment, inOptional bool) {
		if p, ok := s.(*Placeholder); ok {
			opt[p.Name] = inOptional
		}
	})
	return opt
}
