package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Newline ends a logical line.
	Newline
	// Indent opens a block.
	Indent
	// Dedent closes a block.
	Dedent

	// Name represents an identifier or soft keyword (match, case, type, _).
	Name
	// Number represents an integer, float or imaginary literal.
	Number
	// String represents a string or bytes literal including prefix and quotes.
	String

	// KwDef represents the 'def' keyword.
	KwDef
	// KwClass represents the 'class' keyword.
	KwClass
	// KwAsync represents the 'async' keyword.
	KwAsync
	// KwAwait represents the 'await' keyword.
	KwAwait
	// KwIf represents the 'if' keyword.
	KwIf
	// KwElif represents the 'elif' keyword.
	KwElif
	// KwElse represents the 'else' keyword.
	KwElse
	// KwFor represents the 'for' keyword.
	KwFor
	// KwWhile represents the 'while' keyword.
	KwWhile
	// KwTry represents the 'try' keyword.
	KwTry
	// KwExcept represents the 'except' keyword.
	KwExcept
	// KwFinally represents the 'finally' keyword.
	KwFinally
	// KwWith represents the 'with' keyword.
	KwWith
	// KwLambda represents the 'lambda' keyword.
	KwLambda
	// KwOther represents every keyword the parser does not branch on
	// (return, pass, import, and, not, None, ...).
	KwOther

	// LParen represents the left parenthesis token.
	LParen // (
	// RParen represents the right parenthesis token.
	RParen // )
	// LBracket represents the left bracket token.
	LBracket // [
	// RBracket represents the right bracket token.
	RBracket // ]
	// LBrace represents the left brace token.
	LBrace // {
	// RBrace represents the right brace token.
	RBrace // }
	// Colon represents the colon token.
	Colon // :
	// Semicolon represents the semicolon token.
	Semicolon // ;
	// Comma represents the comma token.
	Comma // ,
	// Dot represents the dot token.
	Dot // .
	// At represents the at token (decorators and matrix multiplication).
	At // @
	// Arrow represents the return annotation arrow.
	Arrow // ->
	// ColonAssign represents the walrus operator.
	ColonAssign // :=
	// Assign represents the plain assignment operator.
	Assign // =
	// Operator represents every other operator or delimiter.
	Operator
)

var kindNames = [...]string{
	Invalid:     "INVALID",
	EOF:         "EOF",
	Newline:     "NEWLINE",
	Indent:      "INDENT",
	Dedent:      "DEDENT",
	Name:        "NAME",
	Number:      "NUMBER",
	String:      "STRING",
	KwDef:       "def",
	KwClass:     "class",
	KwAsync:     "async",
	KwAwait:     "await",
	KwIf:        "if",
	KwElif:      "elif",
	KwElse:      "else",
	KwFor:       "for",
	KwWhile:     "while",
	KwTry:       "try",
	KwExcept:    "except",
	KwFinally:   "finally",
	KwWith:      "with",
	KwLambda:    "lambda",
	KwOther:     "KEYWORD",
	LParen:      "(",
	RParen:      ")",
	LBracket:    "[",
	RBracket:    "]",
	LBrace:      "{",
	RBrace:      "}",
	Colon:       ":",
	Semicolon:   ";",
	Comma:       ",",
	Dot:         ".",
	At:          "@",
	Arrow:       "->",
	ColonAssign: ":=",
	Assign:      "=",
	Operator:    "OP",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// IsOpenBracket reports whether k opens a bracket pair.
func (k Kind) IsOpenBracket() bool {
	return k == LParen || k == LBracket || k == LBrace
}

// IsCloseBracket reports whether k closes a bracket pair.
func (k Kind) IsCloseBracket() bool {
	return k == RParen || k == RBracket || k == RBrace
}

// Closer returns the closing bracket kind for an opening one, or Invalid.
func (k Kind) Closer() Kind {
	switch k {
	case LParen:
		return RParen
	case LBracket:
		return RBracket
	case LBrace:
		return RBrace
	}
	return Invalid
}
