package docstring

import (
	"slices"
	"strings"
)

const (
	promptMarker       = ">>>"
	continuationMarker = "..."
)

var defaultNormalizer = NewNormalizer(DefaultOptions())

// Normalize applies every rule with the default options.
func Normalize(text string) string {
	return defaultNormalizer.Normalize(text)
}

// Normalizer rewrites docstring bodies. It holds no mutable state and is
// safe for concurrent use.
type Normalizer struct {
	opts      Options
	underline string
}

func NewNormalizer(opts Options) *Normalizer {
	if opts.Canonical == "" {
		opts.Canonical = DefaultOptions().Canonical
	}
	return &Normalizer{
		opts:      opts,
		underline: strings.Repeat("-", UnderlineWidth),
	}
}

// Options returns the options the normalizer was built with.
func (n *Normalizer) Options() Options {
	return n.opts
}

// Normalize returns text with the enabled rules applied in order. When no
// rule fires the input string itself is returned.
func (n *Normalizer) Normalize(text string) string {
	lines := strings.Split(text, "\n")
	changed := false

	if n.opts.RenameHeader {
		changed = n.renameHeaders(lines) || changed
	}
	if n.opts.CollapseUnderline {
		var c bool
		lines, c = n.collapseUnderlines(lines)
		changed = c || changed
	}
	if n.opts.BlankBeforeHeader {
		var c bool
		lines, c = n.separateHeaders(lines)
		changed = c || changed
	}
	if n.opts.BlankBeforeCode {
		var c bool
		lines, c = separateCodeBlocks(lines)
		changed = c || changed
	}

	if !changed {
		return text
	}
	return strings.Join(lines, "\n")
}

// renameHeaders rewrites "<indent><alias>" followed by a dash line into the
// canonical header and underline, both with the header's indentation.
func (n *Normalizer) renameHeaders(lines []string) bool {
	changed := false
	for i := 0; i+1 < len(lines); i++ {
		if !slices.Contains(n.opts.Aliases, strings.TrimSpace(lines[i])) || !isDashLine(lines[i+1]) {
			continue
		}
		indent := leadingSpace(lines[i])
		header, underline := indent+n.opts.Canonical, indent+n.underline
		if lines[i] != header || lines[i+1] != underline {
			lines[i], lines[i+1] = header, underline
			changed = true
		}
		i++
	}
	return changed
}

// collapseUnderlines cuts an underline of at least UnderlineWidth dashes
// below the canonical header to exactly UnderlineWidth and drops the
// dash-only lines right after it.
func (n *Normalizer) collapseUnderlines(lines []string) ([]string, bool) {
	changed := false
	for i := 0; i+1 < len(lines); i++ {
		if strings.TrimSpace(lines[i]) != n.opts.Canonical {
			continue
		}
		next := lines[i+1]
		if !isDashLine(next) || len(strings.TrimSpace(next)) < UnderlineWidth {
			continue
		}
		if want := leadingSpace(next) + n.underline; next != want {
			lines[i+1] = want
			changed = true
		}
		j := i + 2
		for j < len(lines) && isDashLine(lines[j]) {
			j++
		}
		if j > i+2 {
			lines = slices.Delete(lines, i+2, j)
			changed = true
		}
		i++
	}
	return lines, changed
}

// separateHeaders inserts an empty line above a canonical header (with its
// UnderlineWidth underline at the same indentation) when the line before it
// is not blank.
func (n *Normalizer) separateHeaders(lines []string) ([]string, bool) {
	changed := false
	for i := 1; i+1 < len(lines); i++ {
		indent := leadingSpace(lines[i])
		if lines[i] != indent+n.opts.Canonical || lines[i+1] != indent+n.underline {
			continue
		}
		if isBlank(lines[i-1]) {
			continue
		}
		lines = slices.Insert(lines, i, "")
		changed = true
		i += 2
	}
	return lines, changed
}

// separateCodeBlocks tracks whether the scan is inside an interactive
// block. A block starts at a ">>>" line and ends at a blank line or at a
// line that starts with neither ">>>" nor "...". Each block start whose
// previous line is not blank gets an empty line before it.
func separateCodeBlocks(lines []string) ([]string, bool) {
	inBlock := false
	var out []string
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		start := false
		switch {
		case !inBlock && strings.HasPrefix(trimmed, promptMarker):
			inBlock, start = true, true
		case inBlock && (trimmed == "" || !(strings.HasPrefix(trimmed, promptMarker) || strings.HasPrefix(trimmed, continuationMarker))):
			inBlock = false
		}

		if start && i > 0 && !isBlank(lines[i-1]) {
			if out == nil {
				out = make([]string, 0, len(lines)+4)
				out = append(out, lines[:i]...)
			}
			out = append(out, "")
		}
		if out != nil {
			out = append(out, line)
		}
	}
	if out == nil {
		return lines, false
	}
	return out, true
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// isDashLine reports whether the line holds nothing but dashes, ignoring
// surrounding whitespace.
func isDashLine(line string) bool {
	t := strings.TrimSpace(line)
	return t != "" && strings.Trim(t, "-") == ""
}

func leadingSpace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t\f\v"))]
}
