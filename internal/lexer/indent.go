package lexer

import (
	"docnorm/internal/diag"
	"docnorm/internal/token"
)

// adjustIndent compares the indentation of a new logical line with the
// stack and queues INDENT/DEDENT tokens.
func (lx *Lexer) adjustIndent(col, alt int) {
	top := lx.indents[len(lx.indents)-1]
	here := lx.emptySpan()

	switch {
	case col == top.col:
		if alt != top.alt {
			lx.errLex(diag.LexTabSpaceMix, here, "inconsistent use of tabs and spaces in indentation")
		}

	case col > top.col:
		if alt <= top.alt {
			lx.errLex(diag.LexTabSpaceMix, here, "inconsistent use of tabs and spaces in indentation")
		}
		lx.indents = append(lx.indents, indentLevel{col: col, alt: alt})
		lx.push(token.Token{Kind: token.Indent, Span: here})

	default:
		for len(lx.indents) > 1 && col < lx.indents[len(lx.indents)-1].col {
			lx.indents = lx.indents[:len(lx.indents)-1]
			lx.push(token.Token{Kind: token.Dedent, Span: here})
		}
		top = lx.indents[len(lx.indents)-1]
		switch {
		case col != top.col:
			lx.errLex(diag.LexBadIndent, here, "unindent does not match any outer indentation level")
		case alt != top.alt:
			lx.errLex(diag.LexTabSpaceMix, here, "inconsistent use of tabs and spaces in indentation")
		}
	}
}
