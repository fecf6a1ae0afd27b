// Package template implements parsing, validation, selection state, and
// rendering for declarative command templates.
package template

// TokenType represents the type of lexical token.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIllegal

	TokenWord        // literal text run, escapes resolved, bold markers stripped
	TokenPlaceholder // _NAME_ group reference, underscores stripped

	// Delimiters
	TokenLBracket // [
	TokenRBracket // ]
)

// String returns the string representation of the token type.
func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenIllegal:
		return "ILLEGAL"
	case TokenWord:
		return "WORD"
	case TokenPlaceholder:
		return "PLACEHOLDER"
	case TokenLBracket:
		return "["
	case TokenRBracket:
		return "]"
	default:
		return "UNKNOWN"
	}
}

// Token represents a lexical token.
type Token struct {
	Type    TokenType
	Literal string
	Pos     int  // Position in input for error reporting
	Spaced  bool // Whitespace preceded this token in the source
	Bold    bool // Token sits inside a *bold* display span
}
