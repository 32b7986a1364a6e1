package parser

import (
	"docnorm/internal/ast"
	"docnorm/internal/diag"
	"docnorm/internal/source"
	"docnorm/internal/token"
)

// advance — съедает следующий токен и обновляет lastSpan.
// INDENT/DEDENT/EOF имеют пустой span и lastSpan не трогают.
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind != token.EOF {
		p.pos++
	}
	if !tok.Span.Empty() {
		p.lastSpan = tok.Span
	}
	return tok
}

// getDiagnosticSpan — возвращает лучший span для диагностики.
// Для пустых токенов (NEWLINE на EOF, DEDENT) используем позицию после lastSpan.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.peek()
	if peek.Span.Empty() || peek.Kind == token.Newline {
		if p.lastSpan.End > 0 {
			return source.Span{
				File:  p.lastSpan.File,
				Start: p.lastSpan.End,
				End:   p.lastSpan.End,
			}
		}
	}
	return peek.Span
}

// expect — ожидаем конкретный токен. Если нет — репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	diagSpan := p.getDiagnosticSpan()
	p.report(code, diag.SevError, diagSpan, msg)
	return token.Token{Kind: token.Invalid, Span: diagSpan, Text: p.peek().Text}, false
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if p.opts.Reporter == nil {
		return false
	}
	if sev == diag.SevError {
		if p.opts.Enough() {
			return false
		}
		p.opts.CurrentErrors++
	}
	p.opts.Reporter.Report(code, sev, sp, msg, nil)
	return true
}

// skipLine прокручивает до конца логической строки включительно.
func (p *Parser) skipLine() {
	for !p.atOr(token.Newline, token.EOF) {
		p.advance()
	}
	if p.at(token.Newline) {
		p.advance()
	}
}

// findHeaderColon returns the index of the colon that ends a block header
// on the current logical line, or -1. Colons inside brackets and the ones
// that belong to a lambda do not count.
func (p *Parser) findHeaderColon() int {
	depth, lambdas := 0, 0
	for i := p.pos; i < len(p.toks); i++ {
		tok := p.toks[i]
		switch {
		case tok.Kind == token.Newline || tok.Kind == token.EOF:
			return -1
		case tok.Kind.IsOpenBracket():
			depth++
		case tok.Kind.IsCloseBracket():
			if depth > 0 {
				depth--
			}
		case depth == 0 && tok.Kind == token.KwLambda:
			lambdas++
		case depth == 0 && tok.Kind == token.Colon:
			if lambdas > 0 {
				lambdas--
				continue
			}
			return i
		}
	}
	return -1
}

// finish закрывает span оператора по последнему съеденному токену.
func (p *Parser) finish(id ast.StmtID, start source.Span) {
	stmt := p.arenas.Stmts.Get(id)
	stmt.Span = start.Cover(p.lastSpan)
}
