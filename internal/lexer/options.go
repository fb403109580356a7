package lexer

import (
	"typedlint/internal/source"
)

// Reporter receives lexical errors. The lexer keeps going after reporting:
// the offending bytes become an Invalid token whose Value is the message.
type Reporter interface {
	Report(span source.Span, msg string)
}

type Options struct {
	Reporter Reporter // может быть nil
	// Hashbang allows a `#!` line at offset 0; it is recorded as a line comment.
	Hashbang bool
}

func (lx *Lexer) report(sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(sp, msg)
	}
}
