package token

import (
	"strings"

	"docnorm/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsKeyword reports whether the token is a hard keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwDef && t.Kind <= KwOther
}

// Is reports whether the token is an operator with the given text.
func (t Token) Is(op string) bool {
	return t.Kind >= LParen && t.Text == op
}

// StringParts splits a string literal token into its prefix, quote and body.
// The body is the raw text between the quotes. ok is false for tokens that
// are not well-formed string literals.
func StringParts(text string) (prefix, quote, body string, ok bool) {
	i := 0
	for i < len(text) && text[i] != '"' && text[i] != '\'' {
		i++
	}
	if i >= len(text) {
		return "", "", "", false
	}
	prefix = text[:i]
	rest := text[i:]
	switch {
	case strings.HasPrefix(rest, `"""`), strings.HasPrefix(rest, `'''`):
		quote = rest[:3]
	default:
		quote = rest[:1]
	}
	if len(rest) < 2*len(quote) || !strings.HasSuffix(rest, quote) {
		return "", "", "", false
	}
	body = rest[len(quote) : len(rest)-len(quote)]
	return prefix, quote, body, true
}

// IsDocstringPrefix reports whether a string prefix yields a plain str
// literal (no bytes, no f-string), i.e. one that can act as a docstring.
func IsDocstringPrefix(prefix string) bool {
	switch strings.ToLower(prefix) {
	case "", "r", "u":
		return true
	}
	return false
}
