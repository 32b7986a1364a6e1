package parser

import (
	"strings"

	"docnorm/internal/ast"
	"docnorm/internal/diag"
	"docnorm/internal/source"
	"docnorm/internal/token"
)

// clauseKeywords перечисляет продолжения, допустимые для составного оператора.
var clauseKeywords = map[ast.StmtKind][]token.Kind{
	ast.StmtIf:       {token.KwElif, token.KwElse},
	ast.StmtWhile:    {token.KwElse},
	ast.StmtFor:      {token.KwElse},
	ast.StmtAsyncFor: {token.KwElse},
	ast.StmtTry:      {token.KwExcept, token.KwElse, token.KwFinally},
}

// parseStmt разбирает один оператор (или несколько простых через ';')
// и дописывает их в out.
func (p *Parser) parseStmt(out []ast.StmtID) []ast.StmtID {
	start := p.peek().Span

	var (
		id ast.StmtID
		ok bool
	)
	switch p.peek().Kind {
	case token.At:
		id, ok = p.parseDecorated()
	case token.KwDef:
		id, ok = p.parseDef(start, nil)
	case token.KwClass:
		id, ok = p.parseClass(start, nil)
	case token.KwAsync:
		id, ok = p.parseAsync(start, nil)
	case token.KwIf:
		id, ok = p.parseCompound(ast.StmtIf, start)
	case token.KwWhile:
		id, ok = p.parseCompound(ast.StmtWhile, start)
	case token.KwFor:
		id, ok = p.parseCompound(ast.StmtFor, start)
	case token.KwWith:
		id, ok = p.parseCompound(ast.StmtWith, start)
	case token.KwTry:
		id, ok = p.parseCompound(ast.StmtTry, start)
	case token.KwElif, token.KwElse, token.KwExcept, token.KwFinally:
		p.report(diag.SynDanglingClause, diag.SevError, start,
			"'"+p.peek().Text+"' without a matching statement")
		// разбираем клаузу, чтобы не споткнуться о её тело
		p.parseCompound(ast.StmtCompound, start)
		return out
	default:
		kind, compound := p.softCompound()
		if !compound {
			return p.parseSimpleLine(out)
		}
		id, ok = p.parseCompound(kind, start)
	}
	return p.appendOK(out, id, ok)
}

func (p *Parser) appendOK(out []ast.StmtID, id ast.StmtID, ok bool) []ast.StmtID {
	if !ok {
		return out
	}
	return append(out, id)
}

// softCompound распознаёт блоки, которые не начинаются с жёсткого ключевого
// слова: match/case и любую строку, заканчивающуюся двоеточием.
func (p *Parser) softCompound() (ast.StmtKind, bool) {
	colon := p.findHeaderColon()
	if colon < 0 {
		return 0, false
	}
	first := p.peek()
	if first.Kind == token.Name && (first.Text == "match" || first.Text == "case") && colon > p.pos+1 && startsSubject(p.peekAt(1)) {
		if first.Text == "match" {
			return ast.StmtMatch, true
		}
		return ast.StmtCase, true
	}
	if p.toks[colon+1].Kind == token.Newline {
		return ast.StmtCompound, true
	}
	return 0, false
}

// startsSubject отсекает случаи, когда match/case — обычное имя:
// match.x, match = 1, match += 1, match: int.
func startsSubject(tok token.Token) bool {
	switch tok.Kind {
	case token.Dot, token.Assign, token.Colon, token.ColonAssign, token.Comma, token.Semicolon,
		token.RParen, token.RBracket, token.RBrace, token.Newline:
		return false
	case token.Operator:
		return !strings.HasSuffix(tok.Text, "=")
	}
	return true
}

// parseDecorated собирает строки '@expr' и разбирает следующий def/class.
func (p *Parser) parseDecorated() (ast.StmtID, bool) {
	start := p.peek().Span
	var decorators []source.Span
	for p.at(token.At) {
		first := p.peek().Span
		for !p.atOr(token.Newline, token.EOF) {
			p.advance()
		}
		decorators = append(decorators, first.Cover(p.lastSpan))
		if p.at(token.Newline) {
			p.advance()
		}
	}

	switch p.peek().Kind {
	case token.KwDef:
		return p.parseDef(start, decorators)
	case token.KwClass:
		return p.parseClass(start, decorators)
	case token.KwAsync:
		if p.peekAt(1).Kind == token.KwDef {
			return p.parseAsync(start, decorators)
		}
	}
	p.err(diag.SynDecoratorTarget, "decorator must be followed by def or class")
	return ast.NoStmtID, false
}

func (p *Parser) parseAsync(start source.Span, decorators []source.Span) (ast.StmtID, bool) {
	switch p.peekAt(1).Kind {
	case token.KwDef:
		p.advance()
		id, ok := p.parseDef(start, decorators)
		if ok {
			p.arenas.Stmts.Get(id).Kind = ast.StmtAsyncFunctionDef
		}
		return id, ok
	case token.KwFor:
		p.advance()
		return p.parseCompound(ast.StmtAsyncFor, start)
	case token.KwWith:
		p.advance()
		return p.parseCompound(ast.StmtAsyncWith, start)
	}
	p.advance()
	p.err(diag.SynAsyncNotAllowed, "expected 'def', 'for' or 'with' after 'async'")
	p.skipLine()
	return ast.NoStmtID, false
}

// parseDef: 'def' NAME '(' ... ')' ['->' expr] ':' suite
func (p *Parser) parseDef(start source.Span, decorators []source.Span) (ast.StmtID, bool) {
	p.advance() // def
	name, ok := p.expect(token.Name, diag.SynExpectIdentifier, "expected function name after 'def'")
	if !ok {
		p.skipLine()
		return ast.NoStmtID, false
	}
	// PEP 695: def f[T](...)
	if p.at(token.LBracket) {
		p.skipBrackets()
	}
	if !p.at(token.LParen) {
		p.err(diag.SynExpectParams, "expected '(' after function name")
		p.skipLine()
		return ast.NoStmtID, false
	}

	id := p.arenas.NewStmt(ast.StmtFunctionDef, start)
	stmt := p.arenas.Stmts.Get(id)
	stmt.Name = token.NormalizeName(name.Text)
	stmt.NameSpan = name.Span
	stmt.Decorators = decorators

	body, ok := p.parseHeaderAndSuite()
	if !ok {
		return ast.NoStmtID, false
	}
	p.arenas.Stmts.Get(id).Body = body
	p.finish(id, start)
	return id, true
}

// parseClass: 'class' NAME ['[' ... ']'] ['(' ... ')'] ':' suite
func (p *Parser) parseClass(start source.Span, decorators []source.Span) (ast.StmtID, bool) {
	p.advance() // class
	name, ok := p.expect(token.Name, diag.SynExpectIdentifier, "expected class name after 'class'")
	if !ok {
		p.skipLine()
		return ast.NoStmtID, false
	}

	id := p.arenas.NewStmt(ast.StmtClassDef, start)
	stmt := p.arenas.Stmts.Get(id)
	stmt.Name = token.NormalizeName(name.Text)
	stmt.NameSpan = name.Span
	stmt.Decorators = decorators

	body, ok := p.parseHeaderAndSuite()
	if !ok {
		return ast.NoStmtID, false
	}
	p.arenas.Stmts.Get(id).Body = body
	p.finish(id, start)
	return id, true
}

// parseCompound разбирает заголовок, тело и допустимые продолжения
// (elif/else/except/finally).
func (p *Parser) parseCompound(kind ast.StmtKind, start source.Span) (ast.StmtID, bool) {
	id := p.arenas.NewStmt(kind, start)
	body, ok := p.parseHeaderAndSuite()
	if !ok {
		return ast.NoStmtID, false
	}
	p.arenas.Stmts.Get(id).Body = body

	allowed := clauseKeywords[kind]
	for len(allowed) > 0 && p.atOr(allowed...) {
		kw := p.peek()
		clauseBody, ok := p.parseHeaderAndSuite()
		if !ok {
			break
		}
		stmt := p.arenas.Stmts.Get(id)
		stmt.Clauses = append(stmt.Clauses, ast.Clause{
			Keyword: kw.Text,
			Span:    kw.Span.Cover(p.lastSpan),
			Body:    clauseBody,
		})
	}
	p.finish(id, start)
	return id, true
}

// parseHeaderAndSuite пропускает заголовок до двоеточия и разбирает тело.
func (p *Parser) parseHeaderAndSuite() ([]ast.StmtID, bool) {
	colon := p.findHeaderColon()
	if colon < 0 {
		for !p.atOr(token.Newline, token.EOF) {
			p.advance()
		}
		p.err(diag.SynExpectColon, "expected ':'")
		p.skipLine()
		return nil, false
	}
	for p.pos <= colon {
		p.advance()
	}
	return p.parseSuite(), true
}

// parseSuite: NEWLINE INDENT stmts DEDENT | simple_stmts NEWLINE
func (p *Parser) parseSuite() []ast.StmtID {
	if !p.at(token.Newline) {
		return p.parseSimpleLine(nil)
	}
	p.advance()
	if !p.at(token.Indent) {
		p.err(diag.SynExpectBlock, "expected an indented block")
		return nil
	}
	p.advance()
	return p.parseStmts(true)
}

// parseSimpleLine разбивает логическую строку на простые операторы по ';'
// верхнего уровня. Оператор из единственного строкового литерала
// запоминает его в Literal.
func (p *Parser) parseSimpleLine(out []ast.StmtID) []ast.StmtID {
	for {
		first := p.pos
		depth := 0
		for !p.atOr(token.Newline, token.EOF) {
			tok := p.peek()
			if depth == 0 && tok.Kind == token.Semicolon {
				break
			}
			switch {
			case tok.Kind.IsOpenBracket():
				depth++
			case tok.Kind.IsCloseBracket() && depth > 0:
				depth--
			}
			p.advance()
		}

		if p.pos > first {
			start := p.toks[first].Span
			id := p.arenas.NewStmt(ast.StmtSimple, start)
			if p.checkSimple(first, p.pos) {
				if lit, ok := p.soleString(first, p.pos); ok {
					p.arenas.Stmts.Get(id).Literal = &lit
				}
			}
			p.finish(id, start)
			out = append(out, id)
		}

		if !p.at(token.Semicolon) {
			break
		}
		p.advance()
	}
	if p.at(token.Newline) {
		p.advance()
	}
	return out
}

// soleString reports the string token when toks[first:end] is exactly one
// string literal, possibly wrapped in parentheses: "doc" or ("doc").
func (p *Parser) soleString(first, end int) (token.Token, bool) {
	for end-first >= 3 && p.toks[first].Kind == token.LParen && p.toks[end-1].Kind == token.RParen {
		first++
		end--
	}
	if end-first != 1 || p.toks[first].Kind != token.String {
		return token.Token{}, false
	}
	return p.toks[first], true
}

// skipBrackets съедает сбалансированную группу скобок, начиная с открывающей.
func (p *Parser) skipBrackets() {
	depth := 0
	for !p.atOr(token.Newline, token.EOF) {
		tok := p.advance()
		switch {
		case tok.Kind.IsOpenBracket():
			depth++
		case tok.Kind.IsCloseBracket():
			depth--
		}
		if depth <= 0 {
			return
		}
	}
}
