package rewrite_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"docnorm/internal/rewrite"
	"docnorm/internal/source"
)

func span(start, end uint32) source.Span {
	return source.Span{Start: start, End: end}
}

func TestApply(t *testing.T) {
	content := []byte("0123456789")
	tests := []struct {
		name  string
		edits []rewrite.Edit
		want  string
	}{
		{"no edits", nil, "0123456789"},
		{"single", []rewrite.Edit{{Span: span(2, 4), OldText: "23", NewText: "ab"}}, "01ab456789"},
		{"grow and shrink", []rewrite.Edit{
			{Span: span(8, 10), NewText: "X"},
			{Span: span(0, 1), NewText: "long"},
		}, "long1234567X"},
		{"insert", []rewrite.Edit{{Span: span(5, 5), NewText: "--"}}, "01234--56789"},
		{"adjacent", []rewrite.Edit{
			{Span: span(0, 2), NewText: "a"},
			{Span: span(2, 4), NewText: "b"},
		}, "ab456789"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := rewrite.Apply(content, tt.edits)
			if err != nil {
				t.Fatalf("Apply: %v", err)
			}
			if diff := cmp.Diff(tt.want, string(got)); diff != "" {
				t.Fatalf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
	if string(content) != "0123456789" {
		t.Fatalf("input must not be modified, got %q", content)
	}
}

func TestApplyErrors(t *testing.T) {
	content := []byte("abcdef")
	tests := []struct {
		name  string
		edits []rewrite.Edit
		want  error
	}{
		{"out of range", []rewrite.Edit{{Span: span(4, 9)}}, rewrite.ErrSpanOutOfRange},
		{"reversed", []rewrite.Edit{{Span: span(4, 2)}}, rewrite.ErrSpanOutOfRange},
		{"mismatch", []rewrite.Edit{{Span: span(0, 2), OldText: "xy"}}, rewrite.ErrTextMismatch},
		{"overlap", []rewrite.Edit{{Span: span(0, 3)}, {Span: span(2, 4)}}, rewrite.ErrOverlap},
		{"nested", []rewrite.Edit{{Span: span(0, 6)}, {Span: span(2, 3)}}, rewrite.ErrOverlap},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rewrite.Apply(content, tt.edits)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestReplacementSetCollapsesDuplicates(t *testing.T) {
	set := rewrite.NewReplacementSet()
	if set.Add("same", "same") {
		t.Fatalf("unchanged pairs must be ignored")
	}
	set.Add("b", "B")
	set.Add("a", "A")
	set.Add("b", "B2")

	var keys []string
	set.Each(func(original, _ string) { keys = append(keys, original) })
	if diff := cmp.Diff([]string{"b", "a"}, keys); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if v, _ := set.Get("b"); v != "B2" || set.Len() != 2 {
		t.Fatalf("unexpected set state: b=%q len=%d", v, set.Len())
	}
}

func TestFirstEditsOnlyTouchFirstOccurrence(t *testing.T) {
	set := rewrite.NewReplacementSet()
	set.Add("doc", "DOC")
	content := []byte(`"doc" "doc"`)
	got, err := rewrite.Apply(content, rewrite.FirstEdits(content, set))
	if err != nil || string(got) != `"DOC" "doc"` {
		t.Fatalf("first-occurrence replace = %q, %v", got, err)
	}
	if edits := rewrite.FirstEdits([]byte("x"), nil); edits != nil {
		t.Fatalf("nil set must yield no edits, got %+v", edits)
	}
}

func TestParseStrategy(t *testing.T) {
	for in, want := range map[string]rewrite.Strategy{
		"":      rewrite.StrategySpan,
		"span":  rewrite.StrategySpan,
		"FIRST": rewrite.StrategyFirst,
	} {
		got, err := rewrite.ParseStrategy(in)
		if err != nil || got != want {
			t.Errorf("ParseStrategy(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := rewrite.ParseStrategy("regex"); err == nil {
		t.Fatalf("expected error for unknown strategy")
	}
}

func TestFirstEditsSkipsOverlappingOccurrences(t *testing.T) {
	set := rewrite.NewReplacementSet()
	set.Add("abc", "ABC")
	set.Add("bc", "BC")
	edits := rewrite.FirstEdits([]byte("abc bc"), set)
	if len(edits) != 2 || edits[1].Span.Start != 4 {
		t.Fatalf("FirstEdits = %+v", edits)
	}
}

func TestApplyRawKeepsPerLineEndings(t *testing.T) {
	raw := "\xEF\xBB\xBFx = 1\n\"\"\"A.\r\n>>> a\"\"\"\r\n"
	fs := source.NewFileSet()
	file := fs.Get(fs.AddNormalized("mixed.py", []byte(raw)))

	doc := "\"\"\"A.\n>>> a\"\"\""
	start := uint32(strings.Index(string(file.Content), doc)) // #nosec G115 -- tiny input
	edits := []rewrite.Edit{{
		Span:    source.Span{File: file.ID, Start: start, End: start + uint32(len(doc))},
		OldText: doc,
		NewText: "\"\"\"A.\n\n>>> a\"\"\"",
	}}
	got, err := rewrite.ApplyRaw(file, edits)
	if err != nil {
		t.Fatalf("ApplyRaw: %v", err)
	}
	want := "\xEF\xBB\xBFx = 1\n\"\"\"A.\r\n\r\n>>> a\"\"\"\r\n"
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Fatalf("ApplyRaw mismatch (-want +got):\n%s", diff)
	}
}
