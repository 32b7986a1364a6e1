package token

var keywords = map[string]Kind{
	"def":      KwDef,
	"class":    KwClass,
	"async":    KwAsync,
	"await":    KwAwait,
	"if":       KwIf,
	"elif":     KwElif,
	"else":     KwElse,
	"for":      KwFor,
	"while":    KwWhile,
	"try":      KwTry,
	"except":   KwExcept,
	"finally":  KwFinally,
	"with":     KwWith,
	"lambda":   KwLambda,
	"False":    KwOther,
	"None":     KwOther,
	"True":     KwOther,
	"and":      KwOther,
	"as":       KwOther,
	"assert":   KwOther,
	"break":    KwOther,
	"continue": KwOther,
	"del":      KwOther,
	"from":     KwOther,
	"global":   KwOther,
	"import":   KwOther,
	"in":       KwOther,
	"is":       KwOther,
	"nonlocal": KwOther,
	"not":      KwOther,
	"or":       KwOther,
	"pass":     KwOther,
	"raise":    KwOther,
	"return":   KwOther,
	"yield":    KwOther,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые; soft keywords (match, case, type, _)
// остаются Name. The caller passes the NFKC-normalized identifier.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
