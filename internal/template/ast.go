package template

// Segment is the interface for parsed template segments.
type Segment interface {
	seg()
}

// Literal is a verbatim text run.
type Literal struct {
	Text   string
	Bold   bool // inside a *bold* display span
	Spaced bool // whitespace preceded this segment in the source
}

func (l *Literal) seg() {}

// Placeholder references a group by name, written _NAME_ in the source.
type Placeholder struct {
	Name   string
	Spaced bool
}

func (p *Placeholder) seg() {}

// Optional is a bracketed segment run that may be omitted from the final
// command. Optionals nest.
type Optional struct {
	Segments []Segment
	Spaced   bool
}

func (o *Optional) seg() {}

// placeholderNames returns the names of all placeholders in the segment
// tree, in order of appearance, descending into optionals. Duplicates are
// kept so the validator can reject them.
func placeholderNames(segs []Segment) []string {
	var names []string
	walkSegments(segs, func(s Segment, _ bool) {
		if p, ok := s.(*Placeholder); ok {
			names = append(names, p.Name)
		}
	})
	return names
}

// walkSegments visits every segment in the tree in source order. The
// visitor receives each segment and whether it sits inside an optional.
func walkSegments(segs []Segment, visit func(s Segment, inOptional bool)) {
	var walk func(segs []Segment, inOptional bool)
	walk = func(segs []Segment, inOptional bool) {
		for _, s := range segs {
			visit(s, inOptional)
			if o, ok := s.(*Optional); ok {
				walk(o.Segments, true)
			}
		}
	}
	walk(segs, false)
}
