package parser_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"docnorm/internal/ast"
	"docnorm/internal/diag"
	"docnorm/internal/parser"
	"docnorm/internal/source"
)

func parseSource(t *testing.T, src string) (*ast.Builder, ast.FileID, error) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.py", []byte(src))
	return parser.Parse(fs, id, 0)
}

func mustParse(t *testing.T, src string) (*ast.Builder, ast.FileID) {
	t.Helper()
	b, file, err := parseSource(t, src)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return b, file
}

func parseCodes(t *testing.T, src string) []diag.Code {
	t.Helper()
	_, _, err := parseSource(t, src)
	var perr *parser.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError for %q, got %v", src, err)
	}
	codes := make([]diag.Code, 0, len(perr.Diagnostics))
	for _, d := range perr.Diagnostics {
		codes = append(codes, d.Code)
	}
	return codes
}

const outlineSource = `"""Module doc."""
import os

@decorator
def f(x, y=lambda: 1) -> int:
    "f doc"
    return x

class A(Base):
    def method(self): "inline"

async def g():
    async for item in it:
        """loop doc"""
    async with lock:
        pass

if a:
    pass
elif b:
    pass
else:
    x = {1: 2}

try:
    pass
except ValueError:
    pass
finally:
    pass

match cmd:
    case "go":
        pass
    case _:
        pass

x: int = 1; "not doc"
`

func TestParseOutline(t *testing.T) {
	b, file := mustParse(t, outlineSource)
	want := strings.Join([]string{
		`Simple """Module doc."""`,
		`Simple`,
		`FunctionDef f`,
		`  Simple "f doc"`,
		`  Simple`,
		`ClassDef A`,
		`  FunctionDef method`,
		`    Simple "inline"`,
		`AsyncFunctionDef g`,
		`  AsyncFor`,
		`    Simple """loop doc"""`,
		`  AsyncWith`,
		`    Simple`,
		`If`,
		`  Simple`,
		`elif`,
		`  Simple`,
		`else`,
		`  Simple`,
		`Try`,
		`  Simple`,
		`except`,
		`  Simple`,
		`finally`,
		`  Simple`,
		`Match`,
		`  Case`,
		`    Simple`,
		`  Case`,
		`    Simple`,
		`Simple`,
		`Simple "not doc"`,
	}, "\n") + "\n"
	if diff := cmp.Diff(want, parser.String(b, file)); diff != "" {
		t.Fatalf("outline mismatch (-want +got):\n%s", diff)
	}
}

func TestDecoratedDefSpanStartsAtDecorator(t *testing.T) {
	src := "@dec\ndef f():\n    pass\n"
	b, file := mustParse(t, src)
	fn := b.Stmts.Get(b.Files.Get(file).Body[0])
	if fn.Kind != ast.StmtFunctionDef || len(fn.Decorators) != 1 {
		t.Fatalf("unexpected stmt: %+v", fn)
	}
	if fn.Span.Start != 0 || src[fn.NameSpan.Start:fn.NameSpan.End] != "f" {
		t.Fatalf("unexpected spans: %v name=%v", fn.Span, fn.NameSpan)
	}
}

func TestImplicitConcatenationIsNotLiteral(t *testing.T) {
	b, file := mustParse(t, "\"a\" \"b\"\n")
	st := b.Stmts.Get(b.Files.Get(file).Body[0])
	if st.Literal != nil {
		t.Fatalf("concatenated strings must not be a single literal")
	}
}

func TestValidSimpleStatements(t *testing.T) {
	src := strings.Join([]string{
		"from m import *",
		"from . import x",
		"x, = f()",
		"y = -1 * -z ** ~w",
		"*a, b = c",
		"d = {**e, 'k': v}",
		"print(a, end='', *rest, **kw)",
		"s = t[1:-1] if u else t[::2]",
		"g = lambda k=1, *args: k",
		"h: int | None = None",
		"n += 1; m >>= 2",
		"ok = a is not b and c != d",
		"(w := 10)",
		"def f(): ...",
		"raise ValueError from None",
		"x = yield",
	}, "\n") + "\n"
	mustParse(t, src)
}

func TestParenthesizedLiteral(t *testing.T) {
	b, file := mustParse(t, "(\"\"\"doc\"\"\")\n((\"nested\"))\n(\"a\")(\"b\")\n")
	body := b.Files.Get(file).Body
	if len(body) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(body))
	}
	for i, want := range []string{`"""doc"""`, `"nested"`} {
		lit := b.Stmts.Get(body[i]).Literal
		if lit == nil || lit.Text != want {
			t.Fatalf("statement %d literal = %+v, want %s", i, lit, want)
		}
	}
	if b.Stmts.Get(body[2]).Literal != nil {
		t.Fatalf("call of a parenthesized string is not a literal")
	}
}

func TestSoftKeywordsAsNames(t *testing.T) {
	b, file := mustParse(t, "match = 1\ncase.x: int = 2\nmatch(x)\n")
	for _, id := range b.Files.Get(file).Body {
		if kind := b.Stmts.Get(id).Kind; kind != ast.StmtSimple {
			t.Fatalf("expected simple statements, got %s", kind)
		}
	}
}

func TestNonASCIIDefNameIsNormalized(t *testing.T) {
	b, file := mustParse(t, "def ﬁle():\n    pass\n")
	if name := b.Stmts.Get(b.Files.Get(file).Body[0]).Name; name != "file" {
		t.Fatalf("name = %q, want NFKC form %q", name, "file")
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		first diag.Code
		count int
	}{
		{"missing name", "def (x):\n    pass\n", diag.SynExpectIdentifier, 2},
		{"missing colon", "if x\n    pass\n", diag.SynExpectColon, 2},
		{"missing block", "def f():\nreturn 1\n", diag.SynExpectBlock, 1},
		{"dangling else", "else:\n    pass\n", diag.SynDanglingClause, 1},
		{"unexpected indent", "  x = 1\n", diag.SynUnexpectedIndent, 1},
		{"decorator target", "@dec\nx = 1\n", diag.SynDecoratorTarget, 1},
		{"bare async", "async x\n", diag.SynAsyncNotAllowed, 1},
		{"missing params", "def f:\n    pass\n", diag.SynExpectParams, 2},
		{"double assign", "x = = 1\n", diag.SynUnexpectedToken, 1},
		{"leading assign", "= 1\n", diag.SynUnexpectedToken, 1},
		{"dangling operator", "x = 1 +\n", diag.SynUnexpectedToken, 1},
		{"operator without left operand", "x = / 2\n", diag.SynUnexpectedToken, 1},
		{"keyword misuse", "return return\n", diag.SynUnexpectedToken, 1},
		{"keyword in expression", "def f():\n    x = pass\n", diag.SynUnexpectedToken, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codes := parseCodes(t, tt.src)
			if len(codes) != tt.count || codes[0] != tt.first {
				t.Fatalf("codes = %v, want first %v and %d total", codes, tt.first, tt.count)
			}
		})
	}
}

func TestLexErrorsFailParse(t *testing.T) {
	_, _, err := parseSource(t, "def f(:\n")
	var perr *parser.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected parse error, got %v", err)
	}
	if perr.Diagnostics[0].Code != diag.LexUnbalancedBracket {
		t.Fatalf("first diagnostic = %v", perr.Diagnostics[0].Code)
	}
	if !strings.Contains(err.Error(), "test.py:1:6: ERROR LEX1004") || !strings.Contains(err.Error(), "(and 1 more)") {
		t.Fatalf("unexpected error text: %q", err.Error())
	}
	if len(perr.Lines()) != len(perr.Diagnostics) {
		t.Fatalf("one rendered line per diagnostic expected")
	}
}

func TestMaxErrors(t *testing.T) {
	src := strings.Repeat("else:\n    pass\n", 5)
	fs := source.NewFileSet()
	id := fs.AddVirtual("many.py", []byte(src))
	_, _, err := parser.Parse(fs, id, 2)
	var perr *parser.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected parse error, got %v", err)
	}
	if len(perr.Diagnostics) != 2 {
		t.Fatalf("expected diagnostics capped at 2, got %d", len(perr.Diagnostics))
	}
}

func TestUnknownFileID(t *testing.T) {
	if _, _, err := parser.Parse(source.NewFileSet(), 7, 0); err == nil {
		t.Fatalf("expected error for unknown file id")
	}
}
