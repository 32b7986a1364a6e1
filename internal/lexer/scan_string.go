package lexer

import (
	"strings"

	"docnorm/internal/diag"
	"docnorm/internal/token"
)

// scanString сканирует строковый литерал; курсор стоит на открывающей
// кавычке, префикс (если есть) уже прочитан начиная со start.
//
// Обратный слеш всегда экранирует следующий байт, в том числе в raw-строках:
// r"\"" — корректный литерал. В f/t-строках кавычки внутри {...} открывают
// вложенную строку.
func (lx *Lexer) scanString(start Mark, prefix string) token.Token {
	q := lx.cursor.Peek()
	triple := lx.cursor.PeekAt(1) == q && lx.cursor.PeekAt(2) == q
	if triple {
		lx.cursor.BumpN(3)
	} else {
		lx.cursor.Bump()
	}
	interpolated := strings.ContainsAny(strings.ToLower(prefix), "ft")
	depth := 0

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '\\':
			lx.cursor.BumpN(2)

		case interpolated && b == '{':
			if depth == 0 && lx.cursor.PeekAt(1) == '{' {
				lx.cursor.BumpN(2)
				continue
			}
			depth++
			lx.cursor.Bump()

		case interpolated && b == '}' && depth > 0:
			depth--
			lx.cursor.Bump()

		case interpolated && depth > 0 && (b == '"' || b == '\''):
			lx.scanString(lx.cursor.Mark(), "")

		case b == q:
			if !triple {
				lx.cursor.Bump()
				return lx.stringToken(start)
			}
			if lx.cursor.PeekAt(1) == q && lx.cursor.PeekAt(2) == q {
				lx.cursor.BumpN(3)
				return lx.stringToken(start)
			}
			lx.cursor.Bump()

		case b == '\n' && !triple && depth == 0:
			return lx.unterminated(start, triple)

		default:
			lx.cursor.Bump()
		}
	}
	return lx.unterminated(start, triple)
}

func (lx *Lexer) stringToken(start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.String, Span: sp, Text: lx.file.Text(sp)}
}

func (lx *Lexer) unterminated(start Mark, triple bool) token.Token {
	sp := lx.cursor.SpanFrom(start)
	msg := "unterminated string literal"
	if triple {
		msg = "unterminated triple-quoted string literal"
	}
	lx.errLex(diag.LexUnterminatedString, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.file.Text(sp)}
}
