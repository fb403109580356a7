package parser

import (
	"fmt"

	"typedlint/internal/source"
	"typedlint/internal/token"
)

// SyntaxError is the first error found in a file. Parsing stops there.
type SyntaxError struct {
	Path string
	Msg  string
	Span source.Span
	Pos  source.LineCol // 1-based
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s (%s)", e.Msg, e.Pos)
}

// bailout unwinds the parser after the error has been recorded.
type bailout struct{}

func (s *state) fail(sp source.Span, format string, args ...any) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	s.err = &SyntaxError{
		Path: s.file.Path,
		Msg:  msg,
		Span: sp,
		Pos:  s.file.Position(sp.Start),
	}
	panic(bailout{})
}

// unexpected fails at the current token.
func (s *state) unexpected() {
	tok := s.peek()
	if tok.Kind == token.Invalid {
		s.fail(tok.Span, "%s", tok.Value)
	}
	s.fail(tok.Span, "Unexpected token")
}
