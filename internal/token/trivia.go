package token

import "typedlint/internal/source"

type TriviaKind uint8

const (
	TriviaLineComment TriviaKind = iota
	TriviaBlockComment
)

// Trivia is a comment. Whitespace is not recorded.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

// Body returns the comment text without delimiters.
func (t Trivia) Body() string {
	switch t.Kind {
	case TriviaLineComment:
		if len(t.Text) >= 2 {
			return t.Text[2:]
		}
	case TriviaBlockComment:
		if len(t.Text) >= 4 {
			return t.Text[2 : len(t.Text)-2]
		}
	}
	return ""
}

func (k TriviaKind) String() string {
	if k == TriviaBlockComment {
		return "Block"
	}
	return "Line"
}
