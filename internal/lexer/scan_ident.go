package lexer

import (
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"docnorm/internal/diag"
	"docnorm/internal/token"
)

// scanIdentOrString сканирует идентификатор или ключевое слово.
// Если сразу за идентификатором стоит кавычка и он является допустимым
// строковым префиксом (r, b, f, rb, ...), сканирует строку целиком.
func (lx *Lexer) scanIdentOrString() token.Token {
	start := lx.cursor.Mark()
	ascii := true

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b < utf8.RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r, size := utf8.DecodeRune(lx.file.Content[lx.cursor.Off:])
		first := lx.cursor.Off == uint32(start)
		if (first && !isIdentStartRune(r)) || (!first && !isIdentContinueRune(r)) || r == utf8.RuneError {
			break
		}
		ascii = false
		lx.cursor.BumpN(size)
	}

	sp := lx.cursor.SpanFrom(start)
	if sp.Empty() {
		// не-ASCII байт, который не может начинать идентификатор
		_, size := utf8.DecodeRune(lx.file.Content[lx.cursor.Off:])
		lx.cursor.BumpN(size)
		sp = lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "invalid character '"+lx.file.Text(sp)+"'")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.file.Text(sp)}
	}

	text := lx.file.Text(sp)
	if ascii && isStringPrefix(text) {
		if q := lx.cursor.Peek(); q == '"' || q == '\'' {
			return lx.scanString(start, text)
		}
	}

	name := text
	if !ascii {
		name = norm.NFKC.String(text)
	}
	if k, ok := token.LookupKeyword(name); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Name, Span: sp, Text: text}
}

// isStringPrefix reports whether s is one of Python's string prefixes,
// compared case-insensitively.
func isStringPrefix(s string) bool {
	if len(s) == 0 || len(s) > 2 {
		return false
	}
	var r, b, u, f, t int
	for i := 0; i < len(s); i++ {
		switch s[i] | 0x20 {
		case 'r':
			r++
		case 'b':
			b++
		case 'u':
			u++
		case 'f':
			f++
		case 't':
			t++
		default:
			return false
		}
	}
	switch {
	case r > 1 || b > 1 || u > 1 || f > 1 || t > 1:
		return false
	case u == 1:
		return len(s) == 1
	case b+f+t > 1:
		return false
	}
	return true
}
