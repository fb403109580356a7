package parser

import (
	"typedlint/internal/ast"
	"typedlint/internal/grammar"
	"typedlint/internal/source"
	"typedlint/internal/token"
)

// Методы grammar.Parser: то, что видят продукции расширений.

func (s *state) Peek() token.Token               { return s.peek() }
func (s *state) PeekAt(n int) token.Token        { return s.peekAt(n) }
func (s *state) Next() token.Token               { return s.advance() }
func (s *state) At(k token.Kind) bool            { return s.at(k) }
func (s *state) AtWord(w string) bool            { return s.atWord(w) }
func (s *state) Eat(k token.Kind) bool           { return s.eat(k) }
func (s *state) EatWord(w string) bool           { return s.eatWord(w) }
func (s *state) Expect(k token.Kind) token.Token { return s.expect(k) }
func (s *state) SplitGreater() bool              { return s.splitGreater() }
func (s *state) Start() uint32                   { return s.start() }
func (s *state) Try(fn func()) bool              { return s.try(fn) }
func (s *state) Unexpected()                     { s.unexpected() }
func (s *state) ConsumeSemicolon()               { s.consumeSemicolon() }

func (s *state) Finish(n grammar.Spanned, start uint32) { s.finish(n, start) }

func (s *state) Fail(sp source.Span, format string, args ...any) {
	s.fail(sp, format, args...)
}

func (s *state) ParseExpression() ast.Expr { return s.parseExpression() }
func (s *state) ParseAssignment() ast.Expr { return s.parseMaybeAssign() }

func (s *state) ParseIdentifier(allowReserved bool) *ast.Identifier {
	return s.parseIdent(allowReserved)
}

func (s *state) ParsePropertyName() (ast.Expr, bool) { return s.parsePropertyName() }
func (s *state) ParseParams() []ast.Pattern         { return s.parseParams() }
func (s *state) ParseLiteral() *ast.Literal         { return s.parseLiteral() }

func (s *state) ParseBlockBody() []ast.Stmt {
	body := s.parseStatementList(token.RBrace, false)
	s.expect(token.RBrace)
	return body
}

// ParseType runs the Type productions in priority order; without any the input is not a type.
func (s *state) ParseType() ast.Node {
	for _, pr := range s.g.Productions(grammar.HookType) {
		var out ast.Node
		if s.runProduction(func() bool {
			n, ok := pr.Type(s)
			out = n
			return ok
		}) {
			return out
		}
	}
	s.fail(s.peek().Span, "Type expected")
	return nil
}

// Annotate runs the productions registered at an annotation hook; the first one that applies wins.
func (s *state) Annotate(hook grammar.Hook, target ast.Node) bool {
	for _, pr := range s.g.Productions(hook) {
		if s.runProduction(func() bool { return pr.Annotate(s, target) }) {
			return true
		}
	}
	return false
}

// tryStatements gives Statement productions the first chance at the current position.
func (s *state) tryStatements() (ast.Stmt, bool) {
	for _, pr := range s.g.Productions(grammar.HookStatement) {
		var out ast.Stmt
		if s.runProduction(func() bool {
			st, ok := pr.Statement(s)
			out = st
			return ok
		}) {
			return out, true
		}
	}
	return nil, false
}

// trySuffix applies the first ExpressionSuffix binding tighter than minPrec.
func (s *state) trySuffix(left ast.Expr, minPrec int) (ast.Expr, bool) {
	for _, pr := range s.g.Productions(grammar.HookExpressionSuffix) {
		if pr.Prec <= minPrec {
			continue
		}
		var out ast.Expr
		if s.runProduction(func() bool {
			e, ok := pr.Suffix(s, left)
			out = e
			return ok
		}) {
			return out, true
		}
	}
	return nil, false
}

// runProduction runs one production body. A body that declines (returns false) is
// rewound and the next production gets its turn. A body that fails with a syntax
// error past its first token has committed: the error stands.
func (s *state) runProduction(body func() bool) bool {
	from := s.peek().Span.Start
	if s.try(func() {
		if !body() {
			panic(bailout{})
		}
	}) {
		return true
	}
	if err := s.lastErr; err != nil && err.Span.Start > from {
		s.err = err
		panic(bailout{})
	}
	return false
}
