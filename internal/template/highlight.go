package template

import "strings"

// Highlight applies syntax highlighting to a raw template string for the
// browse list and the build header: placeholders keep their _NAME_ form
// in the placeholder color, optional brackets are emphasized, and *bold*
// spans render bold with the markers stripped. Whitespace runs collapse
// to single spaces. Invalid templates are highlighted for their valid
// portions.
func Highlight(raw string) string {
	if raw == "" {
		return ""
	}

	lexer := NewLexer(raw)
	var result strings.Builder
	first := true

	for {
		tok := lexer.NextToken()
		if tok.Type == TokenEOF {
			break
		}
		if tok.Spaced && !first {
			result.WriteByte(' ')
		}
		first = false

		switch tok.Type {
		case TokenPlaceholder, TokenIllegal:
			result.WriteString(PlaceholderStyle.Render("_" + tok.Literal + "_"))
		case TokenLBracket, TokenRBracket:
			result.WriteString(BracketStyle.Render(tok.Literal))
		case TokenWord:
			if tok.Bold {
				result.WriteString(BoldStyle.Render(tok.Literal))
			} else {
				result.WriteString(DefaultStyle.Render(tok.Literal))
			}
		}

		if tok.Type == TokenIllegal {
			break
		}
	}

	return result.String()
}

// Display formats marker text for human-facing labels: *spans* render
// bold, _NAME_ slots render as the underlined name, and escapes resolve.
// Flag templates and list rows use this so the markup never leaks into
// what the user reads.
func Display(text string) string {
	if text == "" {
		return ""
	}

	lexer := NewLexer(text)
	var result strings.Builder
	first := true

	for {
		tok := lexer.NextToken()
		if tok.Type == TokenEOF {
			break
		}
		if tok.Spaced && !first {
			result.WriteByte(' ')
		}
		first = false

		switch tok.Type {
		case TokenPlaceholder, TokenIllegal:
			result.WriteString(UnderlineStyle.Render(tok.Literal))
		case TokenLBracket, TokenRBracket:
			result.WriteString(tok.Literal)
		case TokenWord:
			if tok.Bold {
				result.WriteString(BoldStyle.Render(tok.Literal))
			} else {
				result.WriteString(tok.Literal)
			}
		}

		if tok.Type == TokenIllegal {
			break
		}
	}

	return result.String()
}
