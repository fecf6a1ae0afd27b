package template

import "fmt"

// Parser parses template tokens into a segment tree.
type Parser struct {
	lexer   *Lexer
	current Token
	peek    Token
}

// NewParser creates a parser for the input.
func NewParser(input string) *Parser {
	p := &Parser{lexer: NewLexer(input)}
	// Prime the parser with two tokens
	p.nextToken()
	p.nextToken()
	return p
}

// Parse parses the input and returns the segment tree.
func (p *Parser) Parse() ([]Segment, error) {
	segs, err := p.parseSegments(false)
	if err != nil {
		return nil, err
	}
	if len(segs) == 0 {
		return nil, fmt.Errorf("empty template")
	}
	return segs, nil
}

// nextToken advances to the next token.
func (p *Parser) nextToken() {
	p.current = p.peek
	p.peek = p.lexer.NextToken()
}

// parseSegments parses segments until end of input, or until the closing
// bracket when inside an optional.
func (p *Parser) parseSegments(inOptional bool) ([]Segment, error) {
	var segs []Segment

	for {
		switch p.current.Type {
		case TokenWord:
			segs = append(segs, &Literal{
				Text:   p.current.Literal,
				Bold:   p.current.Bold,
				Spaced: p.current.Spaced,
			})
			p.nextToken()

		case TokenPlaceholder:
			if p.current.Literal == "" {
				return nil, fmt.Errorf("empty placeholder name at position %d", p.current.Pos)
			}
			segs = append(segs, &Placeholder{
				Name:   p.current.Literal,
				Spaced: p.current.Spaced,
			})
			p.nextToken()

		case TokenLBracket:
			opt, err := p.parseOptional()
			if err != nil {
				return nil, err
			}
			segs = append(segs, opt)

		case TokenRBracket:
			if !inOptional {
				return nil, fmt.Errorf("unmatched ']' at position %d", p.current.Pos)
			}
			return segs, nil

		case TokenIllegal:
			return nil, fmt.Errorf("unterminated placeholder _%s at position %d", p.current.Literal, p.current.Pos)

		case TokenEOF:
			// An unclosed optional is reported by parseOptional, which
			// knows the opening bracket's position.
			return segs, nil

		default:
			return nil, fmt.Errorf("unexpected token %q at position %d", p.current.Literal, p.current.Pos)
		}
	}
}

// parseOptional parses a bracketed segment run. The current token is the
// opening bracket.
func (p *Parser) parseOptional() (*Optional, error) {
	open := p.current
	p.nextToken() // consume [

	segs, err := p.parseSegments(true)
	if err != nil {
		return nil, err
	}
	if p.current.Type != TokenRBracket {
		return nil, fmt.Errorf("unclosed '[' at position %d", open.Pos)
	}
	if len(segs) == 0 {
		return nil, fmt.Errorf("empty optional segment at position %d", open.Pos)
	}
	p.nextToken() // consume ]

	return &Optional{Segments: segs, Spaced: open.Spaced}, nil
}

// ParseTemplate parses a command template string into its segment tree.
// Group references are not resolved here; New binds them against the
// group definitions.
func ParseTemplate(input string) ([]Segment, error) {
	return NewParser(input).Parse()
}

// ParseFlagTemplate parses a flag template. Flag templates use the same
// grammar restricted to a flat run of literals with at most one
// placeholder, the flag's own argument slot.
func ParseFlagTemplate(input string) (segs []Segment, argName string, err error) {
	segs, err = NewParser(input).Parse()
	if err != nil {
		return nil, "", err
	}

	slots := 0
	for _, s := range segs {
		switch s := s.(type) {
		case *Optional:
			return nil, "", fmt.Errorf("optional segments are not allowed in flag templates")
		case *Placeholder:
			slots++
			if slots > 1 {
				return nil, "", fmt.Errorf("flag template has more than one argument slot")
			}
			argName = s.Name
		}
	}
	return segs, argName, nil
}
