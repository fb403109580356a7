package parser

import (
	"typedlint/internal/ast"
	"typedlint/internal/grammar"
	"typedlint/internal/token"
)

// parseFunctionStatement parses `function name(...) {}` at the `function`
// keyword; async has already been consumed. optionalID is for export default.
func (s *state) parseFunctionStatement(start uint32, async, optionalID bool) *ast.FunctionDeclaration {
	s.expect(token.KwFunction)
	fn := &ast.FunctionDeclaration{}
	fn.Async = async
	fn.Generator = s.ecma(2015) && s.eat(token.Star)
	if !optionalID || s.at(token.Ident) {
		fn.ID = s.parseBindingIdent()
	}
	fn.Params, fn.Body = s.parseFunctionRest(fn, async, fn.Generator)
	s.finish(fn, start)
	return fn
}

func (s *state) parseFunctionExpression(start uint32, async bool) *ast.FunctionExpression {
	s.expect(token.KwFunction)
	fn := &ast.FunctionExpression{}
	fn.Async = async
	fn.Generator = s.ecma(2015) && s.eat(token.Star)
	if s.at(token.Ident) {
		fn.ID = s.parseBindingIdent()
	}
	fn.Params, fn.Body = s.parseFunctionRest(fn, async, fn.Generator)
	s.finish(fn, start)
	return fn
}

// parseMethod parses the `(params) {body}` of an object or class method.
// The function value starts at the opening paren.
func (s *state) parseMethod(async, generator bool) *ast.FunctionExpression {
	start := s.start()
	fn := &ast.FunctionExpression{}
	fn.Async = async
	fn.Generator = generator
	fn.Params, fn.Body = s.parseFunctionRest(fn, async, generator)
	s.finish(fn, start)
	return fn
}

// parseFunctionRest parses params, the return type hook and the body in a fresh function context.
func (s *state) parseFunctionRest(fn ast.Function, async, generator bool) ([]ast.Pattern, *ast.BlockStatement) {
	saved := s.fn
	s.fn = fnContext{inFunction: true, inAsync: async, inGenerator: generator, inClass: saved.inClass}
	noIn := s.noIn
	s.noIn = false
	params := s.parseParams()
	s.Annotate(grammar.HookReturnType, fn)
	body := s.parseFunctionBody()
	s.fn, s.noIn = saved, noIn
	return params, body
}

func (s *state) parseFunctionBody() *ast.BlockStatement {
	start := s.start()
	s.expect(token.LBrace)
	block := &ast.BlockStatement{Body: s.parseStatementList(token.RBrace, true)}
	s.expect(token.RBrace)
	s.finish(block, start)
	return block
}

// parseParams parses a parenthesized parameter list.
func (s *state) parseParams() []ast.Pattern {
	s.expect(token.LParen)
	params := make([]ast.Pattern, 0, 4)
	for !s.eat(token.RParen) {
		start := s.start()
		if s.eat(token.DotDotDot) {
			rest := &ast.RestElement{Argument: s.parseBindingTarget()}
			s.Annotate(grammar.HookParamAnnotation, rest)
			s.finish(rest, start)
			params = append(params, rest)
			if s.at(token.Comma) {
				s.fail(s.peek().Span, "Comma is not permitted after the rest element")
			}
			s.expect(token.RParen)
			break
		}
		var param ast.Pattern = s.parseBindingTarget()
		s.Annotate(grammar.HookParamAnnotation, param)
		if s.eat(token.Assign) {
			ap := &ast.AssignmentPattern{Left: param, Right: s.parseMaybeAssign()}
			s.finish(ap, start)
			param = ap
		}
		params = append(params, param)
		if !s.at(token.RParen) {
			s.expect(token.Comma)
		}
	}
	return params
}

// tryArrow parses an arrow function when one starts here. In the
// consequent of a conditional, `(a): T => b` is an arrow only if a `:`
// follows its body; otherwise `(a)` is the consequent.
func (s *state) tryArrow(consequent bool) (ast.Expr, bool) {
	if !s.ecma(2015) {
		return nil, false
	}
	tok, next := s.peek(), s.peekAt(1)
	start := tok.Span.Start
	switch {
	case tok.Kind == token.Ident && next.Kind == token.FatArrow && !next.NewlineBefore:
		arrow := &ast.ArrowFunctionExpression{}
		params := []ast.Pattern{s.parseBindingIdent()}
		return s.parseArrowBody(start, arrow, params, false), true
	case tok.Is("async") && !next.NewlineBefore && s.ecma(2017):
		if next.Kind == token.Ident && s.peekAt(2).Kind == token.FatArrow && !s.peekAt(2).NewlineBefore {
			s.advance()
			arrow := &ast.ArrowFunctionExpression{}
			params := []ast.Pattern{s.parseBindingIdent()}
			return s.parseArrowBody(start, arrow, params, true), true
		}
		if next.Kind == token.LParen {
			return s.tryArrowParams(start, true, consequent)
		}
	case tok.Kind == token.LParen:
		return s.tryArrowParams(start, false, consequent)
	}
	return nil, false
}

// tryArrowParams speculatively reads `(params) [returnType] =>`.
func (s *state) tryArrowParams(start uint32, async, consequent bool) (ast.Expr, bool) {
	arrow := &ast.ArrowFunctionExpression{}
	var params []ast.Pattern
	var out ast.Expr
	ok := s.try(func() {
		if async {
			s.advance()
		}
		saved := s.fn
		s.fn.inAsync = async
		params = s.parseParams()
		typed := s.Annotate(grammar.HookReturnType, arrow)
		s.fn = saved
		if !s.at(token.FatArrow) || s.peek().NewlineBefore {
			s.unexpected()
		}
		if typed && consequent {
			out = s.parseArrowBody(start, arrow, params, async)
			if !s.at(token.Colon) {
				s.unexpected()
			}
		}
	})
	if !ok {
		return nil, false
	}
	if out != nil {
		return out, true
	}
	return s.parseArrowBody(start, arrow, params, async), true
}

func (s *state) parseArrowBody(start uint32, arrow *ast.ArrowFunctionExpression, params []ast.Pattern, async bool) ast.Expr {
	s.expect(token.FatArrow)
	arrow.Params = params
	arrow.Async = async
	saved := s.fn
	s.fn = fnContext{inFunction: true, inAsync: async, inClass: saved.inClass}
	if s.at(token.LBrace) {
		noIn := s.noIn
		s.noIn = false
		arrow.Body = s.parseFunctionBody()
		s.noIn = noIn
	} else {
		arrow.Body = s.parseMaybeAssign()
		arrow.Expression = true
	}
	s.fn = saved
	s.finish(arrow, start)
	return arrow
}
