// Package token defines lexical token kinds and trivia for Python source.
// Invariants:
//   - Token.Text is a slice of the original source (no copies, no unescaping).
//   - Token.Span matches Text exactly (Start..End).
//   - Whitespace, comments, blank lines and backslash continuations are
//     Leading trivia and never appear in the main token stream.
//   - NEWLINE ends a logical line; INDENT and DEDENT are zero-width tokens
//     placed at the first significant byte of the line that changes the
//     indentation level.
package token
