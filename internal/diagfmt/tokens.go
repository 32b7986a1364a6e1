package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"docnorm/internal/source"
	"docnorm/internal/token"
)

// StringInfo splits a string literal for the token dump.
type StringInfo struct {
	Prefix    string `json:"prefix,omitempty"`
	Quote     string `json:"quote"`
	Lines     int    `json:"lines"`
	Docstring bool   `json:"docstring_prefix"`
}

// TokenOutput is one token of `docnorm tokenize --format json`.
type TokenOutput struct {
	Kind    string      `json:"kind"`
	Text    string      `json:"text,omitempty"`
	Span    source.Span `json:"span"`
	Depth   int         `json:"depth"`
	String  *StringInfo `json:"string,omitempty"`
	Leading []string    `json:"leading,omitempty"`
}

// tokenWalker tracks block depth across INDENT/DEDENT while dumping.
type tokenWalker struct {
	depth int
}

func (tw *tokenWalker) describe(tok token.Token) TokenOutput {
	switch tok.Kind {
	case token.Indent:
		tw.depth++
	case token.Dedent:
		tw.depth = max(tw.depth-1, 0)
	}
	out := TokenOutput{
		Kind:  tok.Kind.String(),
		Text:  tok.Text,
		Span:  tok.Span,
		Depth: tw.depth,
	}
	if tok.Kind == token.String {
		if prefix, quote, body, ok := token.StringParts(tok.Text); ok {
			out.String = &StringInfo{
				Prefix:    prefix,
				Quote:     quote,
				Lines:     strings.Count(body, "\n") + 1,
				Docstring: token.IsDocstringPrefix(prefix),
			}
		}
	}
	for _, trivia := range tok.Leading {
		out.Leading = append(out.Leading, trivia.Kind.String())
	}
	return out
}

// FormatTokensPretty prints one token per line, indented by block depth.
// Layout tokens (NEWLINE, INDENT, DEDENT) carry no text; string literals
// show their prefix, quote and line count instead of the raw body.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	var tw tokenWalker
	for i, tok := range tokens {
		out := tw.describe(tok)
		start, end := fs.Resolve(tok.Span)

		pad := strings.Repeat("  ", out.Depth)
		if tok.Kind == token.Indent {
			// INDENT печатаем на уровне блока, который он открывает
			pad = strings.Repeat("  ", out.Depth-1)
		}
		line := fmt.Sprintf("%4d %s%-10s", i+1, pad, out.Kind)
		switch {
		case out.String != nil:
			s := out.String
			line += fmt.Sprintf(" %s%s x%d", s.Prefix, s.Quote, s.Lines)
			if s.Docstring {
				line += " doc"
			}
		case tok.Kind == token.Indent || tok.Kind == token.Dedent:
			line += fmt.Sprintf(" depth=%d", out.Depth)
		case tok.Text != "" && tok.Kind != token.Newline:
			line += fmt.Sprintf(" %q", tok.Text)
		}
		line += fmt.Sprintf("  %d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
		if len(out.Leading) > 0 {
			line += "  [" + strings.Join(out.Leading, " ") + "]"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON writes the tokens up to EOF as an indented JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	var tw tokenWalker
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		output = append(output, tw.describe(tok))
		if tok.Kind == token.EOF {
			break
		}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
