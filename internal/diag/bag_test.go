package diag

import (
	"strings"
	"testing"

	"docnorm/internal/source"
)

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	for i := 0; i < 3; i++ {
		b.Add(Diagnostic{Severity: SevWarning, Code: SynInfo})
	}
	if b.Len() != 2 {
		t.Fatalf("Len = %d, want 2", b.Len())
	}
	if b.HasErrors() {
		t.Fatal("warnings must not count as errors")
	}
	if b.Add(Diagnostic{Severity: SevError}) {
		t.Fatal("Add past the limit must report false")
	}
}

func TestBagSort(t *testing.T) {
	b := NewBag(10)
	b.Add(Diagnostic{Severity: SevWarning, Code: SynExpectColon, Primary: source.Span{Start: 5, End: 6}})
	b.Add(Diagnostic{Severity: SevWarning, Code: SynExpectBlock, Primary: source.Span{Start: 1, End: 2}})
	b.Add(Diagnostic{Severity: SevError, Code: SynUnexpectedToken, Primary: source.Span{Start: 5, End: 6}})
	b.Sort()

	got := make([]Code, 0, b.Len())
	for _, d := range b.Items() {
		got = append(got, d.Code)
	}
	want := []Code{SynExpectBlock, SynUnexpectedToken, SynExpectColon}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	b := NewBag(4)
	rb := ReportError(BagReporter{Bag: b}, SynExpectColon, source.Span{}, "expected ':'").
		WithNote(source.Span{Start: 1, End: 2}, "statement starts here")
	rb.Emit()
	rb.Emit()
	if b.Len() != 1 {
		t.Fatalf("Len = %d, want 1", b.Len())
	}
	if len(b.Items()[0].Notes) != 1 {
		t.Fatalf("notes were not forwarded")
	}
}

func TestFormatShort(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("pkg/a.py", []byte("x = 1\ndef f(\n"))
	d := Diagnostic{
		Severity: SevError,
		Code:     LexUnbalancedBracket,
		Message:  "'(' was never\nclosed",
		Primary:  source.Span{File: id, Start: 11, End: 12},
	}
	want := "pkg/a.py:2:6: ERROR LEX1004: '(' was never closed"
	if got := FormatShort(d, fs); got != want {
		t.Fatalf("FormatShort = %q, want %q", got, want)
	}
	if got := FormatShort(d, nil); !strings.HasPrefix(got, "ERROR LEX1004") {
		t.Fatalf("FormatShort without file set = %q", got)
	}
}

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		LexUnterminatedString: "LEX1002",
		SynExpectBlock:        "SYN2003",
		IOLoadFileError:       "IO4001",
		UnknownCode:           "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
	if SynExpectColon.Title() != "Expected ':'" {
		t.Errorf("unexpected title %q", SynExpectColon.Title())
	}
}
