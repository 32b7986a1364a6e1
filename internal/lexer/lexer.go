package lexer

import (
	"docnorm/internal/diag"
	"docnorm/internal/source"
	"docnorm/internal/token"
)

// indentLevel records one entry of the indentation stack. col expands tabs
// to multiples of 8, alt counts every tab as one column; Python rejects
// indentation whose ordering differs between the two.
type indentLevel struct {
	col int
	alt int
}

// Lexer turns Python source into a token stream with NEWLINE, INDENT and
// DEDENT tokens. Errors go to Options.Reporter; lexing always reaches EOF.
type Lexer struct {
	file     *source.File
	cursor   Cursor
	opts     Options
	queue    []token.Token  // готовые токены (NEWLINE/INDENT/DEDENT идут пачками)
	hold     []token.Trivia // накопленные leading trivia
	indents  []indentLevel
	brackets []token.Token // открытые скобки

	atLineStart   bool
	lineHasTokens bool
	finished      bool
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:        file,
		cursor:      NewCursor(file),
		opts:        opts,
		indents:     []indentLevel{{}},
		atLineStart: true,
	}
}

// Next возвращает следующий значимый токен с уже собранным Leading.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	for len(lx.queue) == 0 {
		lx.advance()
	}
	tok := lx.queue[0]
	lx.queue = lx.queue[1:]
	return tok
}

// Tokenize runs the lexer to completion and returns every token including EOF.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	tokens := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}

func (lx *Lexer) advance() {
	if lx.finished {
		lx.push(token.Token{Kind: token.EOF, Span: lx.emptySpan()})
		return
	}

	if lx.atLineStart && !lx.startLine() {
		return
	}

	lx.collectTrivia()

	if lx.cursor.EOF() {
		lx.finish()
		return
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case ch == '\n':
		// внутри скобок перевод строки уже съеден как trivia
		start := lx.cursor.Mark()
		lx.cursor.Bump()
		sp := lx.cursor.SpanFrom(start)
		lx.atLineStart = true
		if !lx.lineHasTokens {
			lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaNewline, Span: sp, Text: "\n"})
			return
		}
		lx.lineHasTokens = false
		lx.push(token.Token{Kind: token.Newline, Span: sp, Text: "\n"})
		return

	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		tok = lx.scanIdentOrString()

	case isDec(ch) || (ch == '.' && isDec(lx.cursor.PeekAt(1))):
		tok = lx.scanNumber()

	case ch == '"' || ch == '\'':
		tok = lx.scanString(lx.cursor.Mark(), "")

	default:
		tok = lx.scanOperatorOrPunct()
	}

	tok.Leading = lx.hold
	lx.hold = nil
	lx.lineHasTokens = true
	lx.push(tok)
}

// startLine measures the indentation of a new logical line. Blank and
// comment-only lines are folded into trivia and false is returned so the
// caller retries on the next physical line.
func (lx *Lexer) startLine() bool {
	start := lx.cursor.Mark()
	col, alt := 0, 0
scan:
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case ' ':
			col++
			alt++
		case '\t':
			col = (col/8 + 1) * 8
			alt++
		case '\f':
			col, alt = 0, 0
		default:
			break scan
		}
		lx.cursor.Bump()
	}
	if sp := lx.cursor.SpanFrom(start); !sp.Empty() {
		lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaSpace, Span: sp, Text: lx.file.Text(sp)})
	}

	if lx.cursor.EOF() {
		lx.atLineStart = false
		return true
	}

	switch lx.cursor.Peek() {
	case '#':
		lx.scanComment()
		lx.eatBlankNewline()
		return false
	case '\n':
		lx.eatBlankNewline()
		return false
	}

	lx.atLineStart = false
	lx.adjustIndent(col, alt)
	return true
}

func (lx *Lexer) eatBlankNewline() {
	start := lx.cursor.Mark()
	if lx.cursor.Eat('\n') {
		lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaNewline, Span: lx.cursor.SpanFrom(start), Text: "\n"})
	}
}

func (lx *Lexer) finish() {
	for i := len(lx.brackets) - 1; i >= 0; i-- {
		open := lx.brackets[i]
		lx.errLex(diag.LexUnbalancedBracket, open.Span, "'"+open.Text+"' was never closed")
	}
	lx.brackets = nil

	if lx.lineHasTokens {
		lx.lineHasTokens = false
		lx.push(token.Token{Kind: token.Newline, Span: lx.emptySpan()})
	}
	for len(lx.indents) > 1 {
		lx.indents = lx.indents[:len(lx.indents)-1]
		lx.push(token.Token{Kind: token.Dedent, Span: lx.emptySpan()})
	}
	lx.push(token.Token{Kind: token.EOF, Span: lx.emptySpan(), Leading: lx.hold})
	lx.hold = nil
	lx.finished = true
}

func (lx *Lexer) push(tok token.Token) {
	lx.queue = append(lx.queue, tok)
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
