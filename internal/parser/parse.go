package parser

import (
	"fmt"
	"strings"

	"docnorm/internal/ast"
	"docnorm/internal/diag"
	"docnorm/internal/lexer"
	"docnorm/internal/source"
)

// DefaultMaxErrors bounds the diagnostics kept for one file.
const DefaultMaxErrors = 32

// ParseError is returned when a file is not valid Python. It carries every
// lexical and syntax diagnostic collected for the file, sorted by position.
type ParseError struct {
	Path        string
	Diagnostics []diag.Diagnostic

	rendered []string
}

func (e *ParseError) Error() string {
	if len(e.rendered) == 0 {
		return fmt.Sprintf("%s: invalid syntax", e.Path)
	}
	if len(e.rendered) == 1 {
		return e.rendered[0]
	}
	return fmt.Sprintf("%s (and %d more)", e.rendered[0], len(e.rendered)-1)
}

// Lines returns one formatted line per diagnostic.
func (e *ParseError) Lines() []string {
	return e.rendered
}

// Bag returns the diagnostics in a fresh bag for diagfmt renderers.
func (e *ParseError) Bag() *diag.Bag {
	bag := diag.NewBag(len(e.Diagnostics))
	for _, d := range e.Diagnostics {
		bag.Add(d)
	}
	return bag
}

// Parse lexes and parses the file with the given id. On invalid input it
// returns the partial tree together with a *ParseError.
func Parse(fs *source.FileSet, id source.FileID, maxErrors uint) (*ast.Builder, ast.FileID, error) {
	file := fs.Get(id)
	if file == nil {
		return nil, ast.NoFileID, fmt.Errorf("parse: unknown file id %d", id)
	}
	if maxErrors == 0 {
		maxErrors = DefaultMaxErrors
	}

	bag := diag.NewBag(int(maxErrors))
	reporter := &diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{Stmts: uint(len(file.Content)/32 + 16)})

	res := ParseFile(fs, lx, builder, Options{Reporter: reporter, MaxErrors: maxErrors})
	if !bag.HasErrors() {
		return builder, res.File, nil
	}

	bag.Sort()
	items := append([]diag.Diagnostic(nil), bag.Items()...)
	rendered := make([]string, 0, len(items))
	for _, d := range items {
		rendered = append(rendered, diag.FormatShort(d, fs))
	}
	return builder, res.File, &ParseError{
		Path:        file.Path,
		Diagnostics: items,
		rendered:    rendered,
	}
}

// String renders the parse tree in an indented outline form, one statement
// per line. Used by the `extract --tree` debug output and in tests.
func String(b *ast.Builder, file ast.FileID) string {
	var sb strings.Builder
	f := b.Files.Get(file)
	if f == nil {
		return ""
	}
	var walk func(ids []ast.StmtID, depth int)
	walk = func(ids []ast.StmtID, depth int) {
		for _, id := range ids {
			st := b.Stmts.Get(id)
			sb.WriteString(strings.Repeat("  ", depth))
			sb.WriteString(st.Kind.String())
			if st.Name != "" {
				sb.WriteString(" " + st.Name)
			}
			if st.Literal != nil {
				sb.WriteString(" " + st.Literal.Text)
			}
			sb.WriteByte('\n')
			walk(st.Body, depth+1)
			for _, cl := range st.Clauses {
				sb.WriteString(strings.Repeat("  ", depth) + cl.Keyword + "\n")
				walk(cl.Body, depth+1)
			}
		}
	}
	walk(f.Body, 0)
	return sb.String()
}
