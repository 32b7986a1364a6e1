package parser

import (
	"slices"

	"docnorm/internal/ast"
	"docnorm/internal/diag"
	"docnorm/internal/lexer"
	"docnorm/internal/source"
	"docnorm/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File ast.FileID
	Bag  *diag.Bag
}

// Parser — состояние парсера на один файл.
// Python-грамматика нужна нам только на уровне операторов: выражения не
// разбираются, строка операторов хранится как диапазон токенов.
type Parser struct {
	toks     []token.Token
	pos      int
	arenas   *ast.Builder
	file     ast.FileID
	fs       *source.FileSet
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
}

// ParseFile — входная точка для разбора одного файла.
// Лексер вычитывается целиком до EOF.
func ParseFile(
	fs *source.FileSet,
	lx *lexer.Lexer,
	arenas *ast.Builder,
	opts Options,
) Result {
	toks := make([]token.Token, 0, 256)
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	eof := toks[len(toks)-1].Span
	p := Parser{
		toks:     toks,
		arenas:   arenas,
		file:     arenas.Files.New(source.Span{File: eof.File, Start: 0, End: eof.End}),
		fs:       fs,
		opts:     opts,
		lastSpan: source.Span{File: eof.File},
	}

	p.parseModule()

	var bag *diag.Bag
	switch r := opts.Reporter.(type) {
	case *diag.BagReporter:
		bag = r.Bag
	case diag.BagReporter:
		bag = r.Bag
	}
	return Result{
		File: p.file,
		Bag:  bag,
	}
}

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) peekAt(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

func (p *Parser) IsError() bool {
	return p.opts.CurrentErrors != 0
}

// parseModule — основной цикл верхнего уровня: пока не EOF — parseStmt.
func (p *Parser) parseModule() {
	body := p.parseStmts(false)
	f := p.arenas.Files.Get(p.file)
	f.Body = append(f.Body, body...)
}

// parseStmts читает операторы до DEDENT (в блоке) или EOF.
func (p *Parser) parseStmts(inBlock bool) []ast.StmtID {
	var out []ast.StmtID
	for !p.at(token.EOF) {
		switch p.peek().Kind {
		case token.Dedent:
			if inBlock {
				p.advance()
				return out
			}
			p.advance()
		case token.Newline:
			p.advance()
		case token.Indent:
			p.report(diag.SynUnexpectedIndent, diag.SevError, p.peek().Span, "unexpected indent")
			p.advance()
			p.parseStmts(true)
		default:
			out = p.parseStmt(out)
		}
	}
	return out
}
