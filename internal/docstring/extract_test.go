package docstring_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"docnorm/internal/docstring"
	"docnorm/internal/parser"
	"docnorm/internal/source"
)

func extract(t *testing.T, src string) []docstring.DocComment {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("mod.py", []byte(src))
	docs, err := docstring.Extract(fs, id)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	for _, d := range docs {
		if got := src[d.Span.Start:d.Span.End]; got != d.Text {
			t.Fatalf("span %v covers %q, want %q", d.Span, got, d.Text)
		}
	}
	return docs
}

type docSummary struct {
	Text   string
	Owner  string
	Name   string
	Prefix string
	Quote  string
}

func summarize(docs []docstring.DocComment) []docSummary {
	out := make([]docSummary, 0, len(docs))
	for _, d := range docs {
		out = append(out, docSummary{Text: d.Text, Owner: d.Owner.String(), Name: d.OwnerName, Prefix: d.Prefix, Quote: d.Quote})
	}
	return out
}

const extractSource = `"""Module doc."""

def documented():
    """Function doc."""
    return 1

def undocumented():
    return 2

class K:
    r'''Raw class doc.'''

    async def method(self):
        u"async doc"
        async for x in y:
            """loop doc"""

def one_liner(): "inline"

def bytes_doc():
    b"not a docstring"

def fstring_doc():
    f"not {a} docstring"

def empty():
    ""

def concatenated():
    "a" "b"

def not_first():
    x = 1
    "not a docstring"

if True:
    def nested():
        'nested doc'; pass
`

func TestExtractOwnersAndOrder(t *testing.T) {
	got := summarize(extract(t, extractSource))
	want := []docSummary{
		{Text: "Module doc.", Owner: "module", Quote: `"""`},
		{Text: "Function doc.", Owner: "function", Name: "documented", Quote: `"""`},
		{Text: "Raw class doc.", Owner: "class", Name: "K", Prefix: "r", Quote: "'''"},
		{Text: "async doc", Owner: "async function", Name: "method", Prefix: "u", Quote: `"`},
		{Text: "loop doc", Owner: "async for", Quote: `"""`},
		{Text: "inline", Owner: "function", Name: "one_liner", Quote: `"`},
		{Text: "nested doc", Owner: "function", Name: "nested", Quote: "'"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("extracted docstrings mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractionScope(t *testing.T) {
	withoutModuleDoc := "def a():\n    \"\"\"Doc.\"\"\"\n\ndef b():\n    pass\n"
	if docs := extract(t, withoutModuleDoc); len(docs) != 1 || docs[0].OwnerName != "a" {
		t.Fatalf("expected only a's docstring, got %+v", docs)
	}

	withModuleDoc := "\"\"\"Module.\"\"\"\n\ndef a():\n    \"\"\"Doc.\"\"\"\n"
	if docs := extract(t, withModuleDoc); len(docs) != 2 {
		t.Fatalf("expected module and function docstrings, got %+v", docs)
	}
}

func TestExtractKeepsRawBody(t *testing.T) {
	src := "def f():\n    \"\"\"\n    Escapes \\n stay raw.\n\n    \"\"\"\n"
	docs := extract(t, src)
	want := "\n    Escapes \\n stay raw.\n\n    "
	if len(docs) != 1 || docs[0].Text != want {
		t.Fatalf("raw body = %+v, want %q", docs, want)
	}
}

func TestExtractModuleDocAfterComments(t *testing.T) {
	docs := extract(t, "#!/usr/bin/env python\n# comment\n\n'''Module.'''\nimport os\n")
	if len(docs) != 1 || docs[0].Owner != docstring.OwnerModule {
		t.Fatalf("expected module docstring, got %+v", docs)
	}
}

func TestExtractParseError(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("bad.py", []byte("\"\"\"Doc.\"\"\"\ndef f(\n"))
	docs, err := docstring.Extract(fs, id)
	var perr *parser.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *parser.ParseError, got %v", err)
	}
	if docs != nil {
		t.Fatalf("no partial extraction expected, got %+v", docs)
	}
	if perr.Path != "bad.py" {
		t.Fatalf("ParseError path = %q", perr.Path)
	}
}
