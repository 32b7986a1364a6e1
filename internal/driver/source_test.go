package driver

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"docnorm/internal/docstring"
	"docnorm/internal/parser"
	"docnorm/internal/rewrite"
	"docnorm/internal/source"
)

const needsSpacing = `"""Module docs."""


def f():
    """Summary.
    >>> f()
    """
    return 1


def g():
    """Already fine.

    >>> g()
    """
`

const needsSpacingWant = `"""Module docs."""


def f():
    """Summary.

    >>> f()
    """
    return 1


def g():
    """Already fine.

    >>> g()
    """
`

func TestFormatTextUnchanged(t *testing.T) {
	src := "\"\"\"Module.\"\"\"\n\n\ndef f():\n    \"\"\"Nothing to do.\"\"\"\n"
	got, changed, err := FormatText("clean.py", src)
	if err != nil {
		t.Fatalf("FormatText: %v", err)
	}
	if changed || got != src {
		t.Fatalf("clean file reported as changed (%v):\n%s", changed, got)
	}
}

func TestFormatTextReplacesOnlyTriggeringDocstring(t *testing.T) {
	got, changed, err := FormatText("a.py", needsSpacing)
	if err != nil {
		t.Fatalf("FormatText: %v", err)
	}
	if !changed {
		t.Fatalf("expected changed=true")
	}
	if diff := cmp.Diff(needsSpacingWant, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatTextHeaderRewrite(t *testing.T) {
	src := "class C:\n" +
		"    \"\"\"Docs.\n" +
		"    Functional Examples\n" +
		"    ---\n" +
		"    >>> C()\n" +
		"    \"\"\"\n"
	want := "class C:\n" +
		"    \"\"\"Docs.\n" +
		"\n" +
		"    Examples\n" +
		"    --------\n" +
		"\n" +
		"    >>> C()\n" +
		"    \"\"\"\n"
	got, changed, err := FormatText("c.py", src)
	if err != nil {
		t.Fatalf("FormatText: %v", err)
	}
	if !changed {
		t.Fatalf("expected changed=true")
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatTextKeepsCRLFAndBOM(t *testing.T) {
	src := "\ufeffdef f():\r\n    \"\"\"Text.\r\n    >>> f()\r\n    \"\"\"\r\n"
	want := "\ufeffdef f():\r\n    \"\"\"Text.\r\n\r\n    >>> f()\r\n    \"\"\"\r\n"
	got, changed, err := FormatText("crlf.py", src)
	if err != nil {
		t.Fatalf("FormatText: %v", err)
	}
	if !changed || got != want {
		t.Fatalf("FormatText = %q, %v; want %q", got, changed, want)
	}
}

func TestFormatTextMixedLineEndingsTouchOnlyTheDocstring(t *testing.T) {
	src := "def f():\n    \"\"\"A.\r\n>>> a\"\"\"\r\nx = 1\n"
	want := "def f():\n    \"\"\"A.\r\n\r\n>>> a\"\"\"\r\nx = 1\n"
	got, changed, err := FormatText("mixed.py", src)
	if err != nil {
		t.Fatalf("FormatText: %v", err)
	}
	if !changed {
		t.Fatalf("expected changed=true")
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatTextParenthesizedDocstring(t *testing.T) {
	src := "def f():\n    (\"\"\"Doc.\n    >>> f()\n    \"\"\")\n"
	want := "def f():\n    (\"\"\"Doc.\n\n    >>> f()\n    \"\"\")\n"
	got, changed, err := FormatText("paren.py", src)
	if err != nil {
		t.Fatalf("FormatText: %v", err)
	}
	if !changed || got != want {
		t.Fatalf("FormatText = %q, %v; want %q", got, changed, want)
	}
}

func TestFormatTextParseError(t *testing.T) {
	_, changed, err := FormatText("bad.py", "def f(:\n    pass\n")
	if err == nil {
		t.Fatalf("expected a parse error")
	}
	var perr *parser.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error %T is not *parser.ParseError: %v", err, err)
	}
	if changed {
		t.Fatalf("failed parse must not report changes")
	}
}

// identical docstrings and a look-alike string literal pin the difference
// between positional and first-occurrence substitution
const duplicateDocs = `NOTE = """Text.
>>> run()
"""


def a():
    """Text.
>>> run()
"""


def b():
    """Text.
>>> run()
"""
`

func formatWith(t *testing.T, src string, strategy rewrite.Strategy) (*SourceResult, string) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("dup.py", []byte(src))
	res, err := FormatSource(fs, id, SourceOptions{Strategy: strategy})
	if err != nil {
		t.Fatalf("FormatSource: %v", err)
	}
	return res, string(res.Content)
}

func TestFormatSourceSpanStrategyRewritesEveryDocstring(t *testing.T) {
	res, got := formatWith(t, duplicateDocs, rewrite.StrategySpan)
	if len(res.Edits) != 2 {
		t.Fatalf("edits = %d, want 2", len(res.Edits))
	}
	fixed := "\"\"\"Text.\n\n>>> run()\n\"\"\""
	if n := strings.Count(got, fixed); n != 2 {
		t.Fatalf("normalized docstrings = %d, want 2:\n%s", n, got)
	}
	if !strings.HasPrefix(got, "NOTE = \"\"\"Text.\n>>> run()\n\"\"\"") {
		t.Fatalf("plain string literal was rewritten:\n%s", got)
	}
}

func TestFormatSourceFirstStrategyKeepsTextIdentityHazard(t *testing.T) {
	res, got := formatWith(t, duplicateDocs, rewrite.StrategyFirst)
	if !res.Changed {
		t.Fatalf("expected changed=true")
	}
	// одна пара в ReplacementSet, заменено первое вхождение: строка NOTE
	if !strings.HasPrefix(got, "NOTE = \"\"\"Text.\n\n>>> run()\n\"\"\"") {
		t.Fatalf("first occurrence not rewritten:\n%s", got)
	}
	fixed := "\"\"\"Text.\n\n>>> run()\n\"\"\""
	if n := strings.Count(got, fixed); n != 1 {
		t.Fatalf("normalized occurrences = %d, want 1:\n%s", n, got)
	}
}

func TestFormatSourceEditsDescribeDocstrings(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.py", []byte(needsSpacing))
	res, err := FormatSource(fs, id, SourceOptions{Normalizer: docstring.NewNormalizer(docstring.DefaultOptions())})
	if err != nil {
		t.Fatalf("FormatSource: %v", err)
	}
	if res.Docstrings != 3 {
		t.Fatalf("docstrings = %d, want 3", res.Docstrings)
	}
	want := []DocEdit{{
		Owner:  docstring.OwnerFunction,
		Name:   "f",
		Pos:    source.LineCol{Line: 5, Col: 8},
		Before: "Summary.\n    >>> f()\n    ",
		After:  "Summary.\n\n    >>> f()\n    ",
	}}
	if diff := cmp.Diff(want, res.Edits); diff != "" {
		t.Fatalf("edits mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatSourceRulesCanBeDisabled(t *testing.T) {
	opts := docstring.DefaultOptions()
	opts.BlankBeforeCode = false
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.py", []byte(needsSpacing))
	res, err := FormatSource(fs, id, SourceOptions{Normalizer: docstring.NewNormalizer(opts)})
	if err != nil {
		t.Fatalf("FormatSource: %v", err)
	}
	if res.Changed || len(res.Edits) != 0 {
		t.Fatalf("disabled rule still applied: %+v", res.Edits)
	}
}
