package lexer

import (
	"fmt"

	"docnorm/internal/diag"
	"docnorm/internal/token"
)

var threeByteOps = []string{"**=", "//=", ">>=", "<<=", "..."}

var twoByteOps = map[string]token.Kind{
	"->": token.Arrow,
	":=": token.ColonAssign,
	"==": token.Operator,
	"!=": token.Operator,
	"<=": token.Operator,
	">=": token.Operator,
	"**": token.Operator,
	"//": token.Operator,
	"<<": token.Operator,
	">>": token.Operator,
	"+=": token.Operator,
	"-=": token.Operator,
	"*=": token.Operator,
	"/=": token.Operator,
	"%=": token.Operator,
	"&=": token.Operator,
	"|=": token.Operator,
	"^=": token.Operator,
	"@=": token.Operator,
}

var oneByteOps = map[byte]token.Kind{
	'(': token.LParen,
	')': token.RParen,
	'[': token.LBracket,
	']': token.RBracket,
	'{': token.LBrace,
	'}': token.RBrace,
	':': token.Colon,
	';': token.Semicolon,
	',': token.Comma,
	'.': token.Dot,
	'@': token.At,
	'=': token.Assign,
	'+': token.Operator,
	'-': token.Operator,
	'*': token.Operator,
	'/': token.Operator,
	'%': token.Operator,
	'&': token.Operator,
	'|': token.Operator,
	'^': token.Operator,
	'~': token.Operator,
	'<': token.Operator,
	'>': token.Operator,
}

// scanOperatorOrPunct выбирает самый длинный оператор и ведёт стек скобок.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	rest := lx.file.Content[lx.cursor.Off:]

	if len(rest) >= 3 {
		for _, op := range threeByteOps {
			if string(rest[:3]) == op {
				lx.cursor.BumpN(3)
				return lx.opToken(start, token.Operator)
			}
		}
	}
	if len(rest) >= 2 {
		if k, ok := twoByteOps[string(rest[:2])]; ok {
			lx.cursor.BumpN(2)
			return lx.opToken(start, k)
		}
	}

	k, ok := oneByteOps[rest[0]]
	lx.cursor.Bump()
	if !ok {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, fmt.Sprintf("invalid character %q", rest[0]))
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.file.Text(sp)}
	}

	tok := lx.opToken(start, k)
	switch {
	case k.IsOpenBracket():
		lx.brackets = append(lx.brackets, tok)
	case k.IsCloseBracket():
		lx.closeBracket(tok)
	}
	return tok
}

func (lx *Lexer) closeBracket(tok token.Token) {
	if len(lx.brackets) == 0 {
		lx.errLex(diag.LexUnbalancedBracket, tok.Span, "unmatched '"+tok.Text+"'")
		return
	}
	open := lx.brackets[len(lx.brackets)-1]
	lx.brackets = lx.brackets[:len(lx.brackets)-1]
	if open.Kind.Closer() != tok.Kind {
		diag.ReportError(lx.opts.Reporter, diag.LexUnbalancedBracket, tok.Span,
			fmt.Sprintf("closing parenthesis '%s' does not match opening parenthesis '%s'", tok.Text, open.Text)).
			WithNote(open.Span, "opening bracket is here").
			Emit()
	}
}

func (lx *Lexer) opToken(start Mark, k token.Kind) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: k, Span: sp, Text: lx.file.Text(sp)}
}
