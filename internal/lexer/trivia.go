package lexer

import (
	"docnorm/internal/diag"
	"docnorm/internal/token"
)

// collectTrivia накапливает пробелы, комментарии и продолжения строк в lx.hold.
// Внутри скобок переводы строк тоже trivia.
func (lx *Lexer) collectTrivia() {
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		switch ch := lx.cursor.Peek(); {
		case ch == ' ' || ch == '\t' || ch == '\f':
			for {
				b := lx.cursor.Peek()
				if b != ' ' && b != '\t' && b != '\f' {
					break
				}
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaSpace, Span: sp, Text: lx.file.Text(sp)})

		case ch == '#':
			lx.scanComment()

		case ch == '\\':
			if lx.cursor.PeekAt(1) != '\n' {
				lx.cursor.Bump()
				sp := lx.cursor.SpanFrom(start)
				if lx.cursor.EOF() {
					lx.errLex(diag.LexBadContinuation, sp, "unexpected EOF after line continuation character")
				} else {
					lx.errLex(diag.LexBadContinuation, sp, "unexpected character after line continuation character")
				}
				continue
			}
			lx.cursor.BumpN(2)
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaContinuation, Span: sp, Text: "\\\n"})

		case ch == '\n' && len(lx.brackets) > 0:
			lx.cursor.Bump()
			lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaNewline, Span: lx.cursor.SpanFrom(start), Text: "\n"})

		default:
			return
		}
	}
}

// scanComment consumes '#' up to, but not including, the line break.
func (lx *Lexer) scanComment() {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaComment, Span: sp, Text: lx.file.Text(sp)})
}
