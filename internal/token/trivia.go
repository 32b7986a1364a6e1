package token

import "docnorm/internal/source"

type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaComment
	TriviaContinuation
)

// Trivia is insignificant source text attached to the next token.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "space"
	case TriviaNewline:
		return "newline"
	case TriviaComment:
		return "comment"
	case TriviaContinuation:
		return "continuation"
	default:
		return "unknown"
	}
}
