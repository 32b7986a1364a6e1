package docstring

import (
	"fmt"

	"docnorm/internal/ast"
	"docnorm/internal/parser"
	"docnorm/internal/source"
	"docnorm/internal/token"
)

// Extract parses the file and returns its docstrings in document order,
// module docstring first. Invalid Python yields a *parser.ParseError and no
// docstrings.
func Extract(fs *source.FileSet, id source.FileID) ([]DocComment, error) {
	b, file, err := parser.Parse(fs, id, 0)
	if err != nil {
		return nil, err
	}
	src := fs.Get(id)
	if src == nil {
		return nil, fmt.Errorf("extract: unknown file id %d", id)
	}
	return ExtractTree(b, file, src), nil
}

// ExtractTree collects docstrings from an already parsed tree.
func ExtractTree(b *ast.Builder, file ast.FileID, src *source.File) []DocComment {
	f := b.Files.Get(file)
	if f == nil {
		return nil
	}
	e := &extractor{b: b, src: src}
	e.collect(OwnerModule, "", f.Body)
	ast.Walk(b, e, f.Body)
	return e.out
}

type extractor struct {
	b   *ast.Builder
	src *source.File
	out []DocComment
}

func (e *extractor) Visit(_ ast.StmtID, stmt *ast.Stmt) ast.Visitor {
	if owner, ok := ownerOf(stmt.Kind); ok {
		e.collect(owner, stmt.Name, stmt.Body)
	}
	return e
}

// collect проверяет первый оператор тела: это должна быть одиночная
// строка str (без b/f префиксов) с непустым телом.
func (e *extractor) collect(owner Owner, name string, body []ast.StmtID) {
	if len(body) == 0 {
		return
	}
	first := e.b.Stmts.Get(body[0])
	if first == nil || first.Kind != ast.StmtSimple || first.Literal == nil {
		return
	}
	lit := first.Literal
	prefix, quote, text, ok := token.StringParts(lit.Text)
	if !ok || !token.IsDocstringPrefix(prefix) || text == "" {
		return
	}
	start := lit.Span.Start + uint32(len(prefix)+len(quote))
	e.out = append(e.out, DocComment{
		Text:      text,
		Span:      source.Span{File: e.src.ID, Start: start, End: start + uint32(len(text))},
		Owner:     owner,
		OwnerName: name,
		Prefix:    prefix,
		Quote:     quote,
	})
}
