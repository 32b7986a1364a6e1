package lexer

import "docnorm/internal/token"

// scanNumber сканирует целые, вещественные и мнимые литералы.
// Подчёркивания между цифрами допускаются без проверки расположения.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) | 0x20 {
		case 'x':
			lx.cursor.BumpN(2)
			lx.eatWhile(func(b byte) bool { return isHex(b) || b == '_' })
			return lx.numberToken(start)
		case 'o', 'b':
			lx.cursor.BumpN(2)
			lx.eatWhile(func(b byte) bool { return isDec(b) || b == '_' })
			return lx.numberToken(start)
		}
	}

	lx.eatDigits()
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		lx.eatDigits()
	}
	if lx.cursor.Peek()|0x20 == 'e' {
		next := lx.cursor.PeekAt(1)
		switch {
		case isDec(next):
			lx.cursor.Bump()
			lx.eatDigits()
		case (next == '+' || next == '-') && isDec(lx.cursor.PeekAt(2)):
			lx.cursor.BumpN(2)
			lx.eatDigits()
		}
	}
	if lx.cursor.Peek()|0x20 == 'j' {
		lx.cursor.Bump()
	}
	return lx.numberToken(start)
}

func (lx *Lexer) eatDigits() {
	lx.eatWhile(func(b byte) bool { return isDec(b) || b == '_' })
}

func (lx *Lexer) eatWhile(pred func(byte) bool) {
	for !lx.cursor.EOF() && pred(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) numberToken(start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Number, Span: sp, Text: lx.file.Text(sp)}
}
