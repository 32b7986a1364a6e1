package rewrite

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"

	"fortio.org/safecast"

	"docnorm/internal/source"
)

var (
	// ErrSpanOutOfRange is returned when an edit points outside the content.
	ErrSpanOutOfRange = errors.New("edit span out of range")
	// ErrTextMismatch is returned when the bytes under an edit differ from OldText.
	ErrTextMismatch = errors.New("existing text does not match expected content")
	// ErrOverlap is returned when two edits touch the same bytes.
	ErrOverlap = errors.New("edits overlap")
)

// Edit replaces the bytes under Span with NewText. A non-empty OldText must
// match the current content exactly.
type Edit struct {
	Span    source.Span
	OldText string
	NewText string
}

// Apply returns a copy of content with every edit applied. Edits may be
// given in any order; spans always refer to the original content. content
// itself is never modified.
func Apply(content []byte, edits []Edit) ([]byte, error) {
	if len(edits) == 0 {
		return append([]byte(nil), content...), nil
	}

	limit, err := safecast.Conv[uint32](len(content))
	if err != nil {
		return nil, fmt.Errorf("rewrite: content too large: %w", err)
	}

	sorted := append([]Edit(nil), edits...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Span.Start == sorted[j].Span.Start {
			return sorted[i].Span.End > sorted[j].Span.End
		}
		return sorted[i].Span.Start > sorted[j].Span.Start
	})

	grow := 0
	for i, e := range sorted {
		if e.Span.End < e.Span.Start || e.Span.End > limit {
			return nil, fmt.Errorf("%w: %s (content length %d)", ErrSpanOutOfRange, e.Span, limit)
		}
		if e.OldText != "" && string(content[e.Span.Start:e.Span.End]) != e.OldText {
			return nil, fmt.Errorf("%w at %s", ErrTextMismatch, e.Span)
		}
		if i > 0 && spansConflict(sorted[i-1].Span, e.Span) {
			return nil, fmt.Errorf("%w: %s and %s", ErrOverlap, e.Span, sorted[i-1].Span)
		}
		grow += len(e.NewText) - int(e.Span.Len())
	}

	// sorted идёт с конца файла, поэтому собираем результат в обратном порядке
	out := make([]byte, 0, max(len(content)+grow, 0))
	pos := uint32(0)
	for i := len(sorted) - 1; i >= 0; i-- {
		e := sorted[i]
		out = append(out, content[pos:e.Span.Start]...)
		out = append(out, e.NewText...)
		pos = e.Span.End
	}
	out = append(out, content[pos:]...)
	return out, nil
}

// spansConflict reports whether two spans overlap.
// Spans are treated as half-open intervals [Start, End). Two zero-length edits
// at the same position conflict because their order would be ambiguous. A
// zero-length edit conflicts with a non-zero span if it lies strictly inside.
func spansConflict(a, b source.Span) bool {
	aStart, aEnd := a.Start, a.End
	bStart, bEnd := b.Start, b.End

	if aStart == aEnd && bStart == bEnd {
		return aStart == bStart
	}
	if aStart == aEnd {
		return bStart < aStart && aStart < bEnd
	}
	if bStart == bEnd {
		return aStart < bStart && bStart < aEnd
	}
	return aStart < bEnd && bStart < aEnd
}

// ApplyRaw applies edits whose spans refer to f.Content onto the bytes f had
// on disk. Spans are shifted past the BOM and removed '\r'; NewText takes the
// line ending of the first newline under its span.
func ApplyRaw(f *source.File, edits []Edit) ([]byte, error) {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		return nil, fmt.Errorf("rewrite: content too large: %w", err)
	}
	raw := make([]Edit, 0, len(edits))
	for _, e := range edits {
		if e.Span.End < e.Span.Start || e.Span.End > limit {
			return nil, fmt.Errorf("%w: %s (content length %d)", ErrSpanOutOfRange, e.Span, limit)
		}
		if e.OldText != "" && string(f.Content[e.Span.Start:e.Span.End]) != e.OldText {
			return nil, fmt.Errorf("%w at %s", ErrTextMismatch, e.Span)
		}
		eol := "\n"
		if nl := bytes.IndexByte(f.Content[e.Span.Start:e.Span.End], '\n'); nl >= 0 {
			eol = f.EOLAt(e.Span.Start + uint32(nl)) // #nosec G115 -- nl < span length
		}
		text := strings.ReplaceAll(e.NewText, "\n", eol)
		if eol == "\n" {
			// "\r" перед LF при загрузке снова склеится в CRLF, так что
			// такой перевод строки остаётся CRLF
			text = strings.ReplaceAll(text, "\r\n", "\r\r\n")
		}
		raw = append(raw, Edit{
			Span: source.Span{
				File:  e.Span.File,
				Start: f.RawOffset(e.Span.Start),
				End:   f.RawOffset(e.Span.End),
			},
			NewText: text,
		})
	}
	return Apply(f.Raw(), raw)
}
