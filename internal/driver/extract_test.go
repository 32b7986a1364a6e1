package driver

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"docnorm/internal/parser"
	"docnorm/internal/testkit"
	"docnorm/internal/token"
)

func testdataPath(name string) string {
	return filepath.Join("..", "..", "testdata", name)
}

func TestExtractFileTestdata(t *testing.T) {
	res, err := ExtractFile(testdataPath("legacy_header.py"), 0)
	if err != nil {
		t.Fatalf("ExtractFile: %v", err)
	}
	if err := testkit.CheckSpanInvariants(res.Builder, res.ASTFile, res.File); err != nil {
		t.Fatalf("span invariants: %v", err)
	}
	if err := testkit.CheckDocstrings(res.Docstrings, res.File); err != nil {
		t.Fatalf("docstring invariants: %v", err)
	}

	var got []string
	for _, d := range res.Docstrings {
		got = append(got, d.Owner.String()+":"+d.OwnerName)
	}
	want := []string{
		"module:",
		"function:spread",
		"class:OrderBook",
		"async function:stream",
		"async for:",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("owners mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractFileSkipsNonDocstringLiterals(t *testing.T) {
	res, err := ExtractFile(testdataPath("skipped_literals.py"), 0)
	if err != nil {
		t.Fatalf("ExtractFile: %v", err)
	}
	if len(res.Docstrings) != 0 {
		t.Fatalf("expected no docstrings, got %+v", res.Docstrings)
	}
}

func TestExtractFileParseErrorKeepsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.py")
	if err := os.WriteFile(path, []byte("def f(:\n    pass\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	res, err := ExtractFile(path, 0)
	var perr *parser.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if res == nil || res.FileSet == nil || res.File == nil {
		t.Fatalf("expected partial result with file set, got %+v", res)
	}
	if perr.Bag().Len() == 0 {
		t.Fatal("expected diagnostics in bag")
	}
}

func TestTestdataFormattingIsIdempotent(t *testing.T) {
	for _, name := range []string{"legacy_header.py", "clean.py", "skipped_literals.py"} {
		t.Run(name, func(t *testing.T) {
			// #nosec G304 -- fixed testdata path
			raw, err := os.ReadFile(testdataPath(name))
			if err != nil {
				t.Fatal(err)
			}
			once, changed, err := FormatText(name, string(raw))
			if err != nil {
				t.Fatalf("first pass: %v", err)
			}
			if wantChanged := name == "legacy_header.py"; changed != wantChanged {
				t.Fatalf("changed = %v, want %v", changed, wantChanged)
			}
			twice, changed, err := FormatText(name, once)
			if err != nil {
				t.Fatalf("second pass: %v", err)
			}
			if changed {
				t.Fatalf("second pass changed the file:\n%s", cmp.Diff(once, twice))
			}
		})
	}
}

func TestTokenizeTestdata(t *testing.T) {
	res, err := Tokenize(testdataPath("clean.py"), 16)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if res.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", res.Bag.Items())
	}
	if n := len(res.Tokens); n == 0 || res.Tokens[n-1].Kind != token.EOF {
		t.Fatalf("token stream must end with EOF, got %d tokens", n)
	}
	if _, err := Tokenize(testdataPath("missing.py"), 16); err == nil {
		t.Fatal("expected error for missing file")
	}
}
