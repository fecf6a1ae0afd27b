package template

import "strings"

// Lexer tokenizes a command template string.
//
// The grammar is whitespace-sensitive only at token boundaries: a token
// that directly abuts its predecessor (no whitespace between them, as in
// "?one=_VALUE_") is marked unspaced so the renderer can glue the parts
// back together. Asterisks toggle a bold display span and never appear in
// token literals; "\_" escapes a literal underscore inside a word.
type Lexer struct {
	input string
	pos   int  // current position in input
	ch    byte // current character under examination
	bold  bool // inside a *bold* span
	start bool // before the first token
}

// NewLexer creates a new lexer for the input string.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, start: true}
	l.readChar()
	return l
}

// NextToken returns the next token from the input.
func (l *Lexer) NextToken() Token {
	spaced := l.skipWhitespace() || l.start
	l.start = false

	for l.ch == '*' {
		l.bold = !l.bold
		l.readChar()
		spaced = l.skipWhitespace() || spaced
	}

	tok := Token{Pos: l.pos, Spaced: spaced, Bold: l.bold}

	switch l.ch {
	case '[':
		tok.Type = TokenLBracket
		tok.Literal = "["
	case ']':
		tok.Type = TokenRBracket
		tok.Literal = "]"
	case '_':
		return l.readPlaceholder(tok)
	case 0:
		tok.Type = TokenEOF
		tok.Literal = ""
		return tok
	default:
		tok.Type = TokenWord
		tok.Literal = l.readWord()
		return tok
	}

	l.readChar()
	return tok
}

// readChar reads the next character and advances position.
func (l *Lexer) readChar() {
	if l.pos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.pos]
	}
	l.pos++
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

// skipWhitespace advances past whitespace and reports whether any was seen.
func (l *Lexer) skipWhitespace() bool {
	seen := false
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		seen = true
		l.readChar()
	}
	return seen
}

// readWord reads a literal text run. It stops at whitespace, brackets, an
// unescaped underscore (the start of a placeholder), a bold marker, or end
// of input. Escapes are resolved: "\_" yields a literal underscore, "\\" a
// backslash; a backslash before anything else is kept verbatim.
func (l *Lexer) readWord() string {
	var b strings.Builder
	for {
		switch l.ch {
		case 0, ' ', '\t', '\n', '\r', '[', ']', '_', '*':
			return b.String()
		case '\\':
			switch l.peekChar() {
			case '_', '\\':
				l.readChar()
				b.WriteByte(l.ch)
			default:
				b.WriteByte('\\')
			}
		default:
			b.WriteByte(l.ch)
		}
		l.readChar()
	}
}

// readPlaceholder reads a _NAME_ group reference. The opening underscore
// has already been seen. A placeholder must close before whitespace, a
// bracket, or end of input; otherwise an illegal token is returned and the
// parser reports it as an unterminated placeholder.
func (l *Lexer) readPlaceholder(tok Token) Token {
	l.readChar() // skip opening underscore
	start := l.pos - 1
	for {
		switch l.ch {
		case '_':
			tok.Type = TokenPlaceholder
			tok.Literal = l.input[start : l.pos-1]
			l.readChar() // skip closing underscore
			return tok
		case 0, ' ', '\t', '\n', '\r', '[', ']':
			tok.Type = TokenIllegal
			tok.Literal = l.input[start : l.pos-1]
			return tok
		default:
			l.readChar()
		}
	}
}
