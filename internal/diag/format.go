package diag

import (
	"fmt"
	"strings"

	"docnorm/internal/source"
)

// FormatShort renders one diagnostic as "path:line:col: SEV CODE: message".
// Multi-line messages are folded onto a single line.
func FormatShort(d Diagnostic, fs *source.FileSet) string {
	msg := strings.Join(strings.Fields(d.Message), " ")
	if fs == nil {
		return fmt.Sprintf("%s %s: %s", d.Severity, d.Code.ID(), msg)
	}
	file := fs.Get(d.Primary.File)
	if file == nil {
		return fmt.Sprintf("%s %s: %s", d.Severity, d.Code.ID(), msg)
	}
	start, _ := fs.Resolve(d.Primary)
	return fmt.Sprintf("%s:%d:%d: %s %s: %s", file.Path, start.Line, start.Col, d.Severity, d.Code.ID(), msg)
}

// FormatShortAll renders every diagnostic of the bag in sorted order, one per line.
func FormatShortAll(b *Bag, fs *source.FileSet) string {
	if b == nil || b.Len() == 0 {
		return ""
	}
	b.Sort()
	lines := make([]string, 0, b.Len())
	for _, d := range b.Items() {
		lines = append(lines, FormatShort(d, fs))
	}
	return strings.Join(lines, "\n")
}
