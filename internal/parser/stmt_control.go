package parser

import (
	"slices"

	"typedlint/internal/ast"
	"typedlint/internal/grammar"
	"typedlint/internal/token"
)

func (s *state) parseParenCondition() ast.Expr {
	s.expect(token.LParen)
	noIn := s.noIn
	s.noIn = false
	e := s.parseExpression()
	s.noIn = noIn
	s.expect(token.RParen)
	return e
}

// parseLoopBody parses a loop body with break/continue allowed.
func (s *state) parseLoopBody() ast.Stmt {
	s.fn.loops++
	body := s.parseStatement(false)
	s.fn.loops--
	return body
}

func (s *state) parseIf() *ast.IfStatement {
	start := s.start()
	s.advance()
	st := &ast.IfStatement{Test: s.parseParenCondition()}
	st.Consequent = s.parseStatement(false)
	if s.eat(token.KwElse) {
		st.Alternate = s.parseStatement(false)
	}
	s.finish(st, start)
	return st
}

func (s *state) parseWhile() *ast.WhileStatement {
	start := s.start()
	s.advance()
	st := &ast.WhileStatement{Test: s.parseParenCondition()}
	st.Body = s.parseLoopBody()
	s.finish(st, start)
	return st
}

func (s *state) parseDoWhile() *ast.DoWhileStatement {
	start := s.start()
	s.advance()
	st := &ast.DoWhileStatement{Body: s.parseLoopBody()}
	s.expect(token.KwWhile)
	st.Test = s.parseParenCondition()
	// после do-while точка с запятой необязательна
	s.eat(token.Semicolon)
	s.finish(st, start)
	return st
}

// parseFor handles for(;;), for-in, for-of and for await.
func (s *state) parseFor() ast.Stmt {
	start := s.start()
	forTok := s.advance()
	await := false
	if s.atWord("await") && s.canAwait() && s.ecma(2018) {
		s.advance()
		await = true
	}
	s.expect(token.LParen)

	var head ast.Node
	if s.at(token.Semicolon) {
		if await {
			s.unexpected()
		}
		return s.parseForRest(start, nil)
	}

	noIn := s.noIn
	s.noIn = true
	initStart := s.start()
	switch {
	case s.at(token.KwVar), s.at(token.KwConst) && s.ecma(2015), s.atWord("let") && s.isLetDeclaration():
		kind := s.advance().Text
		decl := s.parseVar(kind, true)
		s.finish(decl, initStart)
		s.noIn = noIn
		if s.at(token.KwIn) || s.atWord("of") {
			if len(decl.Declarations) != 1 {
				s.fail(decl.Span(), "Only one variable declaration is allowed in a for-%s loop", s.peek().Text)
			}
			if d := decl.Declarations[0]; d.Init != nil && (kind != "var" || s.atWord("of")) {
				s.fail(d.Span(), "for-%s loop variable declaration may not have an initializer", s.peek().Text)
			}
			return s.parseForInOf(start, decl, await)
		}
		head = decl
	default:
		expr := s.parseExpression()
		s.noIn = noIn
		if s.at(token.KwIn) || s.atWord("of") && s.ecma(2015) {
			return s.parseForInOf(start, s.toAssignable(expr), await)
		}
		head = expr
	}
	if await {
		s.fail(forTok.Span, "Unexpected token")
	}
	return s.parseForRest(start, head)
}

func (s *state) parseForRest(start uint32, init ast.Node) *ast.ForStatement {
	st := &ast.ForStatement{Init: init}
	s.expect(token.Semicolon)
	if !s.at(token.Semicolon) {
		st.Test = s.parseExpression()
	}
	s.expect(token.Semicolon)
	if !s.at(token.RParen) {
		st.Update = s.parseExpression()
	}
	s.expect(token.RParen)
	st.Body = s.parseLoopBody()
	s.finish(st, start)
	return st
}

func (s *state) parseForInOf(start uint32, left ast.Node, await bool) ast.Stmt {
	isOf := s.atWord("of")
	s.advance()
	if !isOf {
		if await {
			s.fail(s.lastSpan(), "Unexpected token")
		}
		right := s.parseExpression()
		s.expect(token.RParen)
		st := &ast.ForInStatement{Left: left, Right: right}
		st.Body = s.parseLoopBody()
		s.finish(st, start)
		return st
	}
	right := s.parseMaybeAssign()
	s.expect(token.RParen)
	st := &ast.ForOfStatement{Left: left, Right: right, Await: await}
	st.Body = s.parseLoopBody()
	s.finish(st, start)
	return st
}

func (s *state) parseReturn() *ast.ReturnStatement {
	start := s.start()
	tok := s.advance()
	if !s.fn.inFunction && !s.opts.AllowReturnOutsideFunction {
		s.fail(tok.Span, "'return' outside of function")
	}
	st := &ast.ReturnStatement{}
	if !s.at(token.Semicolon) && !s.canInsertSemicolon() {
		st.Argument = s.parseExpression()
	}
	s.consumeSemicolon()
	s.finish(st, start)
	return st
}

func (s *state) parseThrow() *ast.ThrowStatement {
	start := s.start()
	s.advance()
	if s.peek().NewlineBefore {
		s.fail(s.lastSpan(), "Illegal newline after throw")
	}
	st := &ast.ThrowStatement{Argument: s.parseExpression()}
	s.consumeSemicolon()
	s.finish(st, start)
	return st
}

func (s *state) parseBreakContinue() ast.Stmt {
	start := s.start()
	kw := s.advance()
	isBreak := kw.Kind == token.KwBreak
	var label *ast.Identifier
	if s.at(token.Ident) && !s.peek().NewlineBefore {
		label = s.parseIdent(false)
		if !slices.Contains(s.fn.labels, label.Name) {
			s.fail(label.Span(), "Undefined label '%s'", label.Name)
		}
	} else if s.fn.loops == 0 && (!isBreak || s.fn.switches == 0) {
		s.fail(kw.Span, "Unsyntactic %s", kw.Text)
	}
	s.consumeSemicolon()
	if isBreak {
		st := &ast.BreakStatement{Label: label}
		s.finish(st, start)
		return st
	}
	st := &ast.ContinueStatement{Label: label}
	s.finish(st, start)
	return st
}

func (s *state) parseLabeled() *ast.LabeledStatement {
	start := s.start()
	label := s.parseIdent(false)
	if slices.Contains(s.fn.labels, label.Name) {
		s.fail(label.Span(), "Label '%s' is already declared", label.Name)
	}
	s.expect(token.Colon)
	s.fn.labels = append(s.fn.labels, label.Name)
	body := s.parseStatement(false)
	s.fn.labels = s.fn.labels[:len(s.fn.labels)-1]
	st := &ast.LabeledStatement{Label: label, Body: body}
	s.finish(st, start)
	return st
}

func (s *state) parseSwitch() *ast.SwitchStatement {
	start := s.start()
	s.advance()
	st := &ast.SwitchStatement{Discriminant: s.parseParenCondition(), Cases: []*ast.SwitchCase{}}
	s.expect(token.LBrace)
	s.fn.switches++
	sawDefault := false
	for !s.eat(token.RBrace) {
		cstart := s.start()
		c := &ast.SwitchCase{}
		switch {
		case s.eat(token.KwCase):
			c.Test = s.parseExpression()
		case s.at(token.KwDefault):
			if sawDefault {
				s.fail(s.peek().Span, "Multiple default clauses")
			}
			s.advance()
			sawDefault = true
		default:
			s.unexpected()
		}
		s.expect(token.Colon)
		c.Consequent = make([]ast.Stmt, 0, 4)
		for !s.at(token.KwCase) && !s.at(token.KwDefault) && !s.at(token.RBrace) {
			if s.at(token.EOF) {
				s.unexpected()
			}
			c.Consequent = append(c.Consequent, s.parseStatement(false))
		}
		s.finish(c, cstart)
		st.Cases = append(st.Cases, c)
	}
	s.fn.switches--
	s.finish(st, start)
	return st
}

func (s *state) parseTry() *ast.TryStatement {
	start := s.start()
	s.advance()
	st := &ast.TryStatement{Block: s.parseBlock()}
	if s.at(token.KwCatch) {
		cstart := s.start()
		s.advance()
		c := &ast.CatchClause{}
		if s.eat(token.LParen) {
			c.Param = s.parseBindingTarget()
			s.Annotate(grammar.HookBindingAnnotation, c.Param)
			s.expect(token.RParen)
		} else if !s.ecma(2019) {
			s.unexpected()
		}
		c.Body = s.parseBlock()
		s.finish(c, cstart)
		st.Handler = c
	}
	if s.eat(token.KwFinally) {
		st.Finalizer = s.parseBlock()
	}
	if st.Handler == nil && st.Finalizer == nil {
		s.fail(s.peek().Span, "Missing catch or finally clause")
	}
	s.finish(st, start)
	return st
}

func (s *state) parseWith() *ast.WithStatement {
	start := s.start()
	tok := s.advance()
	if s.opts.isModule() {
		s.fail(tok.Span, "'with' in strict mode")
	}
	st := &ast.WithStatement{Object: s.parseParenCondition()}
	st.Body = s.parseStatement(false)
	s.finish(st, start)
	return st
}
