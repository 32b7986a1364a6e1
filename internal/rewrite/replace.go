package rewrite

import (
	"bytes"

	"docnorm/internal/source"
)

// ReplacementSet maps original docstring text to its normalized form.
// Keys keep their first insertion order; adding a key again overwrites the
// value in place, so identical originals collapse into one entry.
type ReplacementSet struct {
	keys   []string
	values map[string]string
}

func NewReplacementSet() *ReplacementSet {
	return &ReplacementSet{values: make(map[string]string)}
}

// Add records a replacement. Unchanged pairs are ignored; the result
// reports whether the pair was stored.
func (s *ReplacementSet) Add(original, normalized string) bool {
	if original == normalized {
		return false
	}
	if _, ok := s.values[original]; !ok {
		s.keys = append(s.keys, original)
	}
	s.values[original] = normalized
	return true
}

func (s *ReplacementSet) Len() int {
	return len(s.keys)
}

// Get returns the normalized text stored for original.
func (s *ReplacementSet) Get(original string) (string, bool) {
	v, ok := s.values[original]
	return v, ok
}

// Each calls fn for every entry in insertion order.
func (s *ReplacementSet) Each(fn func(original, normalized string)) {
	for _, k := range s.keys {
		fn(k, s.values[k])
	}
}

// FirstEdits turns the set into edits against content: for every entry the
// first occurrence of the original text is replaced. When two docstrings
// share the same text only the first one in the file is rewritten. An
// occurrence overlapping an earlier entry's edit is skipped.
func FirstEdits(content []byte, set *ReplacementSet) []Edit {
	if set == nil {
		return nil
	}
	var edits []Edit
	set.Each(func(original, normalized string) {
		from := 0
		for {
			at := bytes.Index(content[from:], []byte(original))
			if at < 0 {
				return
			}
			at += from
			sp := source.Span{
				Start: uint32(at),                 // #nosec G115 -- Apply rejects oversized content
				End:   uint32(at + len(original)), // #nosec G115 -- same bound
			}
			if !overlapsAny(edits, sp) {
				edits = append(edits, Edit{Span: sp, OldText: original, NewText: normalized})
				return
			}
			from = at + 1
		}
	})
	return edits
}

func overlapsAny(edits []Edit, sp source.Span) bool {
	for _, e := range edits {
		if spansConflict(e.Span, sp) {
			return true
		}
	}
	return false
}
