package lexer

import (
	"unicode"
	"unicode/utf8"
)

const utf8RuneSelf = utf8.RuneSelf

func isDec(b byte) bool    { return b >= '0' && b <= '9' }
func isHex(b byte) bool    { return isDec(b) || (b|0x20 >= 'a' && b|0x20 <= 'f') }
func isLetter(b byte) bool { return b|0x20 >= 'a' && b|0x20 <= 'z' }

func isIdentStartByte(b byte) bool { return isLetter(b) || b == '_' }
func isIdentContinueByte(b byte) bool {
	return isLetter(b) || isDec(b) || b == '_'
}

// Python допускает в идентификаторах XID_Start / XID_Continue; Go не даёт
// этих классов напрямую, поэтому берём приближение через letter/mark/digit.
func isIdentStartRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.Is(unicode.Nl, r)
}

func isIdentContinueRune(r rune) bool {
	return isIdentStartRune(r) || unicode.IsDigit(r) ||
		unicode.In(r, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc)
}
