package parser

import (
	"docnorm/internal/diag"
	"docnorm/internal/token"
)

// binaryOnly lists operators that need a left operand. '+', '-', '*', '**'
// and '~' are left out: they also start unary and star expressions.
var binaryOnly = map[string]bool{
	"/": true, "//": true, "%": true, "<<": true, ">>": true,
	"&": true, "|": true, "^": true,
	"<": true, ">": true, "<=": true, ">=": true, "==": true, "!=": true,
	"+=": true, "-=": true, "*=": true, "/=": true, "//=": true, "%=": true,
	"**=": true, "@=": true, "&=": true, "|=": true, "^=": true,
	"<<=": true, ">>=": true,
}

// statementKeywords may only open a simple statement.
var statementKeywords = map[string]bool{
	"return":   true,
	"pass":     true,
	"break":    true,
	"continue": true,
	"global":   true,
	"nonlocal": true,
	"del":      true,
	"assert":   true,
	"raise":    true,
}

// checkSimple проверяет токены простого оператора toks[first:end] на грубые
// ошибки: '=' без левой части, бинарный оператор без левого операнда,
// оператор в конце строки, служебное слово не в начале. Возвращает false,
// если ошибка найдена (одна на оператор).
func (p *Parser) checkSimple(first, end int) bool {
	for i := first; i < end; i++ {
		tok := p.toks[i]
		var prev token.Token
		if i > first {
			prev = p.toks[i-1]
		}
		switch {
		case tok.Kind == token.Assign && (i == first || !endsOperand(prev)):
			return p.unexpected(tok)
		case tok.Kind == token.Operator && binaryOnly[tok.Text] && (i == first || needsOperand(prev)):
			return p.unexpected(tok)
		case tok.Kind == token.KwOther && statementKeywords[tok.Text] && i > first:
			return p.unexpected(tok)
		}
	}

	last := p.toks[end-1]
	switch {
	case last.Kind == token.Assign:
		return p.unexpected(last)
	case last.Kind == token.Operator && last.Text != "...":
		// from m import *
		if last.Text == "*" && end-1 > first && p.toks[end-2].Text == "import" {
			return true
		}
		return p.unexpected(last)
	}
	return true
}

func (p *Parser) unexpected(tok token.Token) bool {
	p.report(diag.SynUnexpectedToken, diag.SevError, tok.Span, "invalid syntax: unexpected '"+tok.Text+"'")
	return false
}

// endsOperand reports whether tok can close the target of an assignment or
// keyword argument. A trailing comma covers "x, = f()".
func endsOperand(tok token.Token) bool {
	switch tok.Kind {
	case token.Name, token.Number, token.String, token.KwOther, token.Comma:
		return true
	}
	return tok.Kind.IsCloseBracket()
}

func needsOperand(tok token.Token) bool {
	switch tok.Kind {
	case token.Operator:
		return tok.Text != "..."
	case token.Assign, token.ColonAssign, token.Comma, token.Colon:
		return true
	}
	return tok.Kind.IsOpenBracket()
}
