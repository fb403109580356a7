package parser

import (
	"typedlint/internal/ast"
	"typedlint/internal/token"
)

func (s *state) parseExpression() ast.Expr {
	start := s.start()
	expr := s.parseMaybeAssign()
	if !s.at(token.Comma) {
		return expr
	}
	seq := &ast.SequenceExpression{Expressions: []ast.Expr{expr}}
	for s.eat(token.Comma) {
		seq.Expressions = append(seq.Expressions, s.parseMaybeAssign())
	}
	s.finish(seq, start)
	return seq
}

// parseMaybeAssign parses an AssignmentExpression: arrows, yield and `=` forms.
func (s *state) parseMaybeAssign() ast.Expr {
	consequent := s.consequent
	s.consequent = false
	if s.atWord("yield") && s.fn.inGenerator {
		return s.parseYield()
	}
	if arrow, ok := s.tryArrow(consequent); ok {
		return arrow
	}
	start := s.start()
	left := s.parseMaybeConditional()
	tok := s.peek()
	if !s.isAssignOp(tok.Kind) {
		return left
	}
	var target ast.Pattern
	if tok.Kind == token.Assign {
		target = s.toAssignable(left)
	} else {
		target = s.checkSimpleTarget(left, "Assigning to rvalue")
	}
	s.advance()
	node := &ast.AssignmentExpression{Operator: tok.Text, Left: target, Right: s.parseMaybeAssign()}
	s.finish(node, start)
	return node
}

func (s *state) parseYield() ast.Expr {
	start := s.start()
	s.advance()
	node := &ast.YieldExpression{}
	tok := s.peek()
	if !tok.NewlineBefore {
		if s.eat(token.Star) {
			node.Delegate = true
			node.Argument = s.parseMaybeAssign()
		} else if startsExpression(tok) {
			node.Argument = s.parseMaybeAssign()
		}
	}
	s.finish(node, start)
	return node
}

// startsExpression reports whether tok can begin an operand of yield.
func startsExpression(tok token.Token) bool {
	switch tok.Kind {
	case token.RParen, token.RBracket, token.RBrace, token.Comma, token.Semicolon,
		token.Colon, token.EOF, token.TemplateMiddle, token.TemplateTail, token.KwIn, token.Question:
		return false
	}
	return !tok.IsPunctOrOp() || tok.Kind == token.LParen || tok.Kind == token.LBracket ||
		tok.Kind == token.LBrace || tok.Kind == token.Plus || tok.Kind == token.Minus ||
		tok.Kind == token.Bang || tok.Kind == token.Tilde || tok.Kind == token.PlusPlus ||
		tok.Kind == token.MinusMinus || tok.Kind == token.Lt
}

func (s *state) parseMaybeConditional() ast.Expr {
	start := s.start()
	expr := s.parseExprOps()
	if !s.eat(token.Question) {
		return expr
	}
	noIn := s.noIn
	s.noIn = false
	s.consequent = true
	cons := s.parseMaybeAssign()
	s.noIn = noIn
	s.expect(token.Colon)
	node := &ast.ConditionalExpression{Test: expr, Consequent: cons, Alternate: s.parseMaybeAssign()}
	s.finish(node, start)
	return node
}

func (s *state) parseExprOps() ast.Expr {
	start := s.start()
	return s.parseExprOp(s.parseMaybeUnary(), start, precNone)
}

// parseExprOp: подъём по приоритетам. Операторы с приоритетом не выше
// minPrec оставляются вызывающему.
func (s *state) parseExprOp(left ast.Expr, start uint32, minPrec int) ast.Expr {
	for {
		if e, ok := s.trySuffix(left, minPrec); ok {
			left = e
			continue
		}
		tok := s.peek()
		prec := s.getBinaryOperatorPrec(tok)
		if prec == precNone || prec <= minPrec {
			return left
		}
		if tok.Kind == token.StarStar && left.Span().Start == start {
			switch left.(type) {
			case *ast.UnaryExpression, *ast.AwaitExpression:
				s.fail(tok.Span, "Unary operator used immediately before exponentiation expression. Parenthesis must be used to disambiguate operator precedence")
			}
		}
		s.advance()
		rstart := s.start()
		next := prec
		if tok.Kind == token.StarStar {
			next = prec - 1
		}
		right := s.parseExprOp(s.parseMaybeUnary(), rstart, next)
		left = s.buildBinary(start, rstart, tok, left, right)
	}
}

func (s *state) buildBinary(start, rstart uint32, op token.Token, left, right ast.Expr) ast.Expr {
	if isLogical(op.Kind) {
		if mixesLogical(op.Text, left, start) || mixesLogical(op.Text, right, rstart) {
			s.fail(op.Span, "Logical expressions and coalesce expressions cannot be mixed. Wrap either by parentheses")
		}
		node := &ast.LogicalExpression{Operator: op.Text, Left: left, Right: right}
		s.finish(node, start)
		return node
	}
	node := &ast.BinaryExpression{Operator: op.Text, Left: left, Right: right}
	s.finish(node, start)
	return node
}

// mixesLogical reports an unparenthesized operand that mixes ?? with && or ||.
func mixesLogical(op string, e ast.Expr, start uint32) bool {
	l, ok := e.(*ast.LogicalExpression)
	if !ok || l.Span().Start != start {
		return false
	}
	return (op == "??") != (l.Operator == "??")
}

func (s *state) canAwait() bool {
	if s.fn.inAsync {
		return true
	}
	return !s.fn.inFunction && s.opts.isModule() && s.ecma(2022)
}

func (s *state) parseMaybeUnary() ast.Expr {
	start := s.start()
	tok := s.peek()
	if tok.Is("await") && s.canAwait() {
		s.advance()
		node := &ast.AwaitExpression{Argument: s.parseMaybeUnary()}
		s.finish(node, start)
		return node
	}
	switch tok.Kind {
	case token.Bang, token.Tilde, token.Plus, token.Minus, token.KwTypeof, token.KwVoid, token.KwDelete:
		s.advance()
		arg := s.parseMaybeUnary()
		if tok.Kind == token.KwDelete && s.opts.isModule() {
			if _, ok := arg.(*ast.Identifier); ok {
				s.fail(arg.Span(), "Deleting local variable in strict mode")
			}
		}
		node := &ast.UnaryExpression{Operator: tok.Text, Prefix: true, Argument: arg}
		s.finish(node, start)
		return node
	case token.PlusPlus, token.MinusMinus:
		s.advance()
		arg := s.checkSimpleTarget(s.parseMaybeUnary(), "Invalid left-hand side in prefix operation")
		node := &ast.UpdateExpression{Operator: tok.Text, Prefix: true, Argument: arg.(ast.Expr)}
		s.finish(node, start)
		return node
	}
	expr := s.parseExprSubscripts()
	for {
		tok := s.peek()
		if (tok.Kind != token.PlusPlus && tok.Kind != token.MinusMinus) || tok.NewlineBefore {
			return expr
		}
		arg := s.checkSimpleTarget(expr, "Invalid left-hand side in postfix operation")
		s.advance()
		node := &ast.UpdateExpression{Operator: tok.Text, Argument: arg.(ast.Expr)}
		s.finish(node, start)
		expr = node
	}
}

func (s *state) parseExprSubscripts() ast.Expr {
	start := s.start()
	return s.parseSubscripts(s.parseExprAtom(), start, false)
}

// parseSubscripts parses member access, calls, optional chains and tagged
// templates after base. noCalls is set for the callee of `new`.
func (s *state) parseSubscripts(base ast.Expr, start uint32, noCalls bool) ast.Expr {
	chain := false
	for {
		tok := s.peek()
		switch {
		case tok.Kind == token.QuestionDot && s.ecma(2020):
			if noCalls {
				s.fail(tok.Span, "Optional chaining cannot appear in the callee of new expressions")
			}
			s.advance()
			chain = true
			switch {
			case s.at(token.LParen):
				base = s.finishCall(base, start, true)
			case s.at(token.LBracket):
				base = s.parseComputedMember(base, start, true)
			case s.at(token.TemplateNoSub), s.at(token.TemplateHead):
				s.fail(s.peek().Span, "Optional chaining cannot appear in the tag of tagged template expressions")
			default:
				base = s.parseDotMember(base, start, true)
			}
		case tok.Kind == token.Dot:
			s.advance()
			base = s.parseDotMember(base, start, false)
		case tok.Kind == token.LBracket:
			base = s.parseComputedMember(base, start, false)
		case tok.Kind == token.LParen && !noCalls:
			base = s.finishCall(base, start, false)
		case tok.Kind == token.TemplateNoSub || tok.Kind == token.TemplateHead:
			if chain {
				s.fail(tok.Span, "Optional chaining cannot appear in the tag of tagged template expressions")
			}
			node := &ast.TaggedTemplateExpression{Tag: base, Quasi: s.parseTemplate()}
			s.finish(node, start)
			base = node
		default:
			if chain {
				node := &ast.ChainExpression{Expression: base}
				node.SetSpan(base.Span())
				return node
			}
			return base
		}
	}
}

func (s *state) parseDotMember(object ast.Expr, start uint32, optional bool) ast.Expr {
	var prop ast.Expr
	if tok := s.peek(); tok.Kind == token.PrivateName {
		s.advance()
		id := &ast.PrivateIdentifier{Name: tok.Value}
		id.SetSpan(tok.Span)
		prop = id
	} else {
		prop = s.parseIdent(true)
	}
	node := &ast.MemberExpression{Object: object, Property: prop, Optional: optional}
	s.finish(node, start)
	return node
}

func (s *state) parseComputedMember(object ast.Expr, start uint32, optional bool) ast.Expr {
	s.expect(token.LBracket)
	noIn := s.noIn
	s.noIn = false
	prop := s.parseExpression()
	s.noIn = noIn
	s.expect(token.RBracket)
	node := &ast.MemberExpression{Object: object, Property: prop, Computed: true, Optional: optional}
	s.finish(node, start)
	return node
}

func (s *state) finishCall(callee ast.Expr, start uint32, optional bool) ast.Expr {
	s.expect(token.LParen)
	node := &ast.CallExpression{Callee: callee, Arguments: s.parseExprList(token.RParen), Optional: optional}
	s.finish(node, start)
	return node
}

// parseExprList parses comma separated elements after the opening token, with spread.
func (s *state) parseExprList(close token.Kind) []ast.Expr {
	noIn := s.noIn
	s.noIn = false
	list := make([]ast.Expr, 0, 4)
	for !s.eat(close) {
		if start := s.start(); s.eat(token.DotDotDot) {
			spread := &ast.SpreadElement{Argument: s.parseMaybeAssign()}
			s.finish(spread, start)
			list = append(list, spread)
		} else {
			list = append(list, s.parseMaybeAssign())
		}
		if !s.at(close) {
			s.expect(token.Comma)
		}
	}
	s.noIn = noIn
	return list
}

// checkSimpleTarget accepts identifiers and member expressions, the only
// targets of compound assignment and update.
func (s *state) checkSimpleTarget(e ast.Expr, msg string) ast.Pattern {
	switch e := e.(type) {
	case *ast.Identifier:
		return e
	case *ast.MemberExpression:
		return e
	}
	s.fail(e.Span(), "%s", msg)
	return nil
}
