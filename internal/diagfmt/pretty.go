package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"docnorm/internal/diag"
	"docnorm/internal/source"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes с аналогичным форматом.
// Цвет включается опцией.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil || fs == nil {
		return
	}
	p := &printer{w: w, fs: fs, opts: opts, palette: newPalette(opts.Color)}
	for _, d := range bag.Items() {
		p.diagnostic(d)
	}
}

type palette struct {
	err, warn, info, bold, gutter, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		bold:   mk(color.Bold),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgRed, color.Bold),
		note:   mk(color.FgCyan),
	}
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

type printer struct {
	w       io.Writer
	fs      *source.FileSet
	opts    PrettyOpts
	palette palette
}

func (p *printer) diagnostic(d diag.Diagnostic) {
	f := p.fs.Get(d.Primary.File)
	start, _ := p.fs.Resolve(d.Primary)
	fmt.Fprintf(p.w, "%s:%d:%d: %s %s: %s\n",
		formatPath(f, p.fs, p.opts.PathMode), start.Line, start.Col,
		p.palette.severity(d.Severity).Sprint(d.Severity.String()),
		d.Code.ID(),
		p.palette.bold.Sprint(d.Message))
	if f != nil {
		p.snippet(f, d.Primary)
	}
	if !p.opts.ShowNotes {
		return
	}
	for _, note := range d.Notes {
		nf := p.fs.Get(note.Span.File)
		pos, _ := p.fs.Resolve(note.Span)
		fmt.Fprintf(p.w, "  %s %s:%d:%d: %s\n",
			p.palette.note.Sprint("note:"),
			formatPath(nf, p.fs, p.opts.PathMode), pos.Line, pos.Col, note.Msg)
		if nf != nil {
			p.snippet(nf, note.Span)
		}
	}
}

// snippet prints the lines around span with a caret underline below the
// first line of the span.
func (p *printer) snippet(f *source.File, span source.Span) {
	start, end := p.fs.Resolve(span)
	if start.Line == 0 {
		return
	}
	ctx := uint32(max(p.opts.Context, 0))
	first := start.Line - min(ctx, start.Line-1)
	last := min(start.Line+ctx, max(lineCount(f), start.Line))
	width := len(fmt.Sprint(last))

	for line := first; line <= last; line++ {
		text := strings.ReplaceAll(lineText(f, line), "\t", "    ")
		fmt.Fprintf(p.w, " %s %s %s\n", p.palette.gutter.Sprintf("%*d", width, line), p.palette.gutter.Sprint("|"), text)
		if line != start.Line {
			continue
		}
		raw := lineText(f, line)
		col := int(start.Col) - 1
		col = min(max(col, 0), len(raw))
		pad := runewidth.StringWidth(strings.ReplaceAll(raw[:col], "\t", "    "))
		n := 1
		if end.Line == start.Line && end.Col > start.Col {
			endCol := min(int(end.Col)-1, len(raw))
			n = max(runewidth.StringWidth(raw[col:endCol]), 1)
		}
		marker := "^" + strings.Repeat("~", n-1)
		fmt.Fprintf(p.w, " %s %s %s%s\n", strings.Repeat(" ", width), p.palette.gutter.Sprint("|"), strings.Repeat(" ", pad), p.palette.caret.Sprint(marker))
	}
}
