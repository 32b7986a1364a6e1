package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"docnorm/internal/ast"
	"docnorm/internal/docstring"
	"docnorm/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) file.Span lies within the content bounds
// 2) every statement span is ordered, points into sf and fits the content
// 3) siblings never start before the previous sibling
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.End < f.Span.Start || f.Span.End > lenContent {
		return fmt.Errorf("file span %v outside content of %d bytes", f.Span, lenContent)
	}
	return checkBody(b, f.Body, sf, lenContent)
}

func checkBody(b *ast.Builder, body []ast.StmtID, sf *source.File, limit uint32) error {
	var prev uint32
	for i, id := range body {
		stmt := b.Stmts.Get(id)
		if stmt == nil {
			return fmt.Errorf("nil statement for id=%d", id)
		}
		sp := stmt.Span
		if sp.File != sf.ID {
			return fmt.Errorf("%s span file mismatch: got=%d want=%d", stmt.Kind, sp.File, sf.ID)
		}
		if sp.End < sp.Start || sp.End > limit {
			return fmt.Errorf("%s span %v outside content of %d bytes", stmt.Kind, sp, limit)
		}
		if i > 0 && sp.Start < prev {
			return fmt.Errorf("%s span %v starts before previous sibling at %d", stmt.Kind, sp, prev)
		}
		prev = sp.Start
		if err := checkBody(b, stmt.Body, sf, limit); err != nil {
			return err
		}
		for _, cl := range stmt.Clauses {
			if err := checkBody(b, cl.Body, sf, limit); err != nil {
				return err
			}
		}
	}
	return nil
}

// CheckDocstrings verifies that every docstring span selects exactly its
// Text inside sf and that spans come in document order without overlap.
func CheckDocstrings(docs []docstring.DocComment, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	var prevEnd uint32
	for i, d := range docs {
		if d.Span.File != sf.ID {
			return fmt.Errorf("docstring %d: span file mismatch: got=%d want=%d", i, d.Span.File, sf.ID)
		}
		if d.Span.End <= d.Span.Start || int(d.Span.End) > len(sf.Content) {
			return fmt.Errorf("docstring %d: bad span %v", i, d.Span)
		}
		if i > 0 && d.Span.Start < prevEnd {
			return fmt.Errorf("docstring %d: span %v overlaps previous ending at %d", i, d.Span, prevEnd)
		}
		if got := sf.Text(d.Span); got != d.Text {
			return fmt.Errorf("docstring %d: span selects %q, Text is %q", i, got, d.Text)
		}
		prevEnd = d.Span.End
	}
	return nil
}
