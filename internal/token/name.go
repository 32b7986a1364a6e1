package token

import (
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// NormalizeName returns the NFKC form of an identifier, which is how Python
// compares names. ASCII identifiers are returned unchanged.
func NormalizeName(ident string) string {
	for i := 0; i < len(ident); i++ {
		if ident[i] >= utf8.RuneSelf {
			return norm.NFKC.String(ident)
		}
	}
	return ident
}
