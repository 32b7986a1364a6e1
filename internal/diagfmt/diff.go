package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
)

// Change is one rewritten docstring for Diff.
type Change struct {
	Label  string // e.g. "function f"
	Line   uint32 // first line of the docstring body
	Before string
	After  string
}

// Diff prints a unified diff per change, headed by "path:line label".
func Diff(w io.Writer, path string, changes []Change, useColor bool) error {
	add := color.New(color.FgGreen)
	del := color.New(color.FgRed)
	hunk := color.New(color.FgCyan)
	for _, c := range []*color.Color{add, del, hunk} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	for _, ch := range changes {
		name := fmt.Sprintf("%s:%d %s", path, ch.Line, ch.Label)
		text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        splitLines(ch.Before),
			B:        splitLines(ch.After),
			FromFile: name,
			ToFile:   name + " (normalized)",
			Context:  2,
		})
		if err != nil {
			return err
		}
		for line := range strings.SplitSeq(strings.TrimSuffix(text, "\n"), "\n") {
			var c *color.Color
			switch {
			case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			case strings.HasPrefix(line, "@@"):
				c = hunk
			case strings.HasPrefix(line, "+"):
				c = add
			case strings.HasPrefix(line, "-"):
				c = del
			}
			if c != nil {
				line = c.Sprint(line)
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

// splitLines keeps the newline on every element. difflib.SplitLines would
// add a phantom empty line after a trailing "\n", and a last line without
// one would run into the next diff row.
func splitLines(s string) []string {
	lines := strings.SplitAfter(strings.TrimSuffix(s, "\n"), "\n")
	lines[len(lines)-1] += "\n"
	return lines
}
