package grammar

import (
	"typedlint/internal/ast"
	"typedlint/internal/source"
	"typedlint/internal/token"
)

// Spanned is implemented by every ast node through ast.Base.
type Spanned interface {
	SetSpan(source.Span)
}

// Parser is the running parser as seen by productions. Failing methods
// (Expect, Fail, Unexpected, ParseType...) do not return on error; the parse
// is aborted, or rolled back when inside Try.
type Parser interface {
	Peek() token.Token
	// PeekAt returns the token n positions ahead; PeekAt(0) == Peek().
	PeekAt(n int) token.Token
	Next() token.Token
	At(k token.Kind) bool
	// AtWord reports whether the current token is the identifier w.
	AtWord(w string) bool
	Eat(k token.Kind) bool
	EatWord(w string) bool
	Expect(k token.Kind) token.Token
	// SplitGreater turns a current `>>`, `>>>`, `>=`... into `>` followed by
	// the rest, so nested type argument lists can close. It reports whether
	// the current token now is `>`.
	SplitGreater() bool

	// Start returns the start offset of the current token.
	Start() uint32
	// Finish sets n's span from start to the end of the last consumed token.
	Finish(n Spanned, start uint32)
	// Try runs fn speculatively; on failure the token position is restored and false returned.
	Try(fn func()) bool

	Fail(sp source.Span, format string, args ...any)
	// Unexpected fails at the current token with "Unexpected token".
	Unexpected()

	ParseType() ast.Node
	ParseExpression() ast.Expr
	ParseAssignment() ast.Expr
	// ParseIdentifier parses an identifier; reserved words are accepted when allowReserved is set.
	ParseIdentifier(allowReserved bool) *ast.Identifier
	// ParsePropertyName parses an object/class member key and reports whether it was computed.
	ParsePropertyName() (ast.Expr, bool)
	// ParseParams parses `( ... )`, running ParamAnnotation productions.
	ParseParams() []ast.Pattern
	// ParseLiteral parses a string, number, bigint, boolean or null literal.
	ParseLiteral() *ast.Literal
	// ParseBlockBody parses statements until the closing brace of an already opened block.
	ParseBlockBody() []ast.Stmt
	ConsumeSemicolon()
	// Annotate runs the productions of hook against target.
	Annotate(hook Hook, target ast.Node) bool
}
