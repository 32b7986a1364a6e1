package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"docnorm/internal/source"
	"docnorm/internal/token"
)

// def f():
//     r'''x
// y'''
const tokenSample = "def f():\n    r'''x\ny'''\n"

func sampleTokens() (*source.FileSet, []token.Token) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.py", []byte(tokenSample))
	sp := func(start, end uint32) source.Span { return source.Span{File: id, Start: start, End: end} }
	return fs, []token.Token{
		{Kind: token.KwDef, Span: sp(0, 3), Text: "def"},
		{Kind: token.Name, Span: sp(4, 5), Text: "f", Leading: []token.Trivia{{Kind: token.TriviaSpace, Span: sp(3, 4), Text: " "}}},
		{Kind: token.LParen, Span: sp(5, 6), Text: "("},
		{Kind: token.RParen, Span: sp(6, 7), Text: ")"},
		{Kind: token.Colon, Span: sp(7, 8), Text: ":"},
		{Kind: token.Newline, Span: sp(8, 9), Text: "\n"},
		{Kind: token.Indent, Span: sp(9, 13)},
		{Kind: token.String, Span: sp(13, 23), Text: "r'''x\ny'''"},
		{Kind: token.Newline, Span: sp(23, 24), Text: "\n"},
		{Kind: token.Dedent, Span: sp(24, 24)},
		{Kind: token.EOF, Span: sp(24, 24)},
	}
}

func TestFormatTokensPrettyShowsBlocksAndStrings(t *testing.T) {
	fs, toks := sampleTokens()
	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks, fs); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != len(toks) {
		t.Fatalf("expected %d lines, got %d:\n%s", len(toks), len(lines), buf.String())
	}
	for i, want := range map[int]string{
		1:  `   2 NAME       "f"  1:5-1:6  [space]`,
		5:  `   6 NEWLINE     1:9-2:1`,
		6:  `   7 INDENT     depth=1  2:1-2:5`,
		7:  `   8   STRING     r''' x2 doc  2:5-3:5`,
		9:  `  10 DEDENT     depth=0  4:1-4:1`,
		10: `  11 EOF         4:1-4:1`,
	} {
		if lines[i] != want {
			t.Errorf("line %d = %q, want %q", i+1, lines[i], want)
		}
	}
}

func TestFormatTokensJSONDepthAndStringParts(t *testing.T) {
	_, toks := sampleTokens()
	var buf bytes.Buffer
	if err := FormatTokensJSON(&buf, toks); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if len(out) != len(toks) {
		t.Fatalf("expected %d tokens, got %d", len(toks), len(out))
	}
	str := out[7]
	if str.Depth != 1 || str.String == nil {
		t.Fatalf("string token = %+v", str)
	}
	if got := *str.String; got != (StringInfo{Prefix: "r", Quote: "'''", Lines: 2, Docstring: true}) {
		t.Fatalf("string info = %+v", got)
	}
	if out[9].Depth != 0 || out[1].Leading[0] != "space" {
		t.Fatalf("dedent depth %d, leading %v", out[9].Depth, out[1].Leading)
	}
}
