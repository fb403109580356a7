package token

import (
	"typedlint/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
	// Value holds the cooked value of string and template tokens.
	Value string
	// NewlineBefore is set when a line terminator separates this token from the previous one.
	NewlineBefore bool
}

// IsLiteral reports whether the token is a literal value.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case NumberLit, BigIntLit, StringLit, RegExpLit, TemplateNoSub, KwNull, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool {
	return t.Kind >= LBrace && t.Kind < kindCount
}

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool { return t.Kind.IsKeyword() }

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsName reports whether the token can stand where a property name is expected.
// Reserved words are valid property names (`a.default`, `{ class: 1 }`).
func (t Token) IsName() bool { return t.Kind == Ident || t.Kind.IsKeyword() }

// Is reports whether the token is the identifier with the given text.
// Contextual keywords are matched this way.
func (t Token) Is(word string) bool { return t.Kind == Ident && t.Text == word }
