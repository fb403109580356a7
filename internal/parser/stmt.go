package parser

import (
	"typedlint/internal/ast"
	"typedlint/internal/grammar"
	"typedlint/internal/token"
)

// parseStatementList parses statements up to end (not consumed). With
// directives set, a leading run of string expression statements is marked
// as the directive prologue.
func (s *state) parseStatementList(end token.Kind, directives bool) []ast.Stmt {
	body := make([]ast.Stmt, 0, 8)
	top := end == token.EOF
	for !s.at(end) {
		if s.at(token.EOF) {
			s.unexpected()
		}
		st := s.parseStatement(top)
		if directives {
			directives = s.markDirective(st)
		}
		body = append(body, st)
	}
	return body
}

func (s *state) markDirective(st ast.Stmt) bool {
	es, ok := st.(*ast.ExpressionStatement)
	if !ok {
		return false
	}
	lit, ok := es.Expression.(*ast.Literal)
	if !ok || lit.Raw == "" || (lit.Raw[0] != '"' && lit.Raw[0] != '\'') {
		return false
	}
	// ("use strict"), это уже не директива
	if lit.Span().Start != es.Span().Start {
		return false
	}
	es.Directive = lit.Raw[1 : len(lit.Raw)-1]
	return true
}

// parseStatement parses one statement or declaration. top is set for the
// program body, where import and export are allowed.
func (s *state) parseStatement(top bool) ast.Stmt {
	if st, ok := s.tryStatements(); ok {
		return st
	}
	start := s.start()
	tok := s.peek()
	switch tok.Kind {
	case token.LBrace:
		return s.parseBlock()
	case token.Semicolon:
		s.advance()
		st := &ast.EmptyStatement{}
		s.finish(st, start)
		return st
	case token.KwVar:
		return s.parseVarStatement("var")
	case token.KwConst:
		if s.ecma(2015) {
			return s.parseVarStatement("const")
		}
	case token.KwFunction:
		return s.parseFunctionStatement(start, false, false)
	case token.KwClass:
		if s.ecma(2015) {
			return s.parseClassDeclaration(start, false)
		}
	case token.KwIf:
		return s.parseIf()
	case token.KwFor:
		return s.parseFor()
	case token.KwWhile:
		return s.parseWhile()
	case token.KwDo:
		return s.parseDoWhile()
	case token.KwReturn:
		return s.parseReturn()
	case token.KwBreak, token.KwContinue:
		return s.parseBreakContinue()
	case token.KwThrow:
		return s.parseThrow()
	case token.KwTry:
		return s.parseTry()
	case token.KwSwitch:
		return s.parseSwitch()
	case token.KwWith:
		return s.parseWith()
	case token.KwDebugger:
		s.advance()
		s.consumeSemicolon()
		st := &ast.DebuggerStatement{}
		s.finish(st, start)
		return st
	case token.KwImport:
		if next := s.peekAt(1).Kind; next == token.LParen || next == token.Dot {
			break
		}
		s.checkModuleItem(tok, top)
		return s.parseImport()
	case token.KwExport:
		s.checkModuleItem(tok, top)
		return s.parseExport()
	case token.Ident:
		switch {
		case tok.Text == "let" && s.isLetDeclaration():
			return s.parseVarStatement("let")
		case tok.Text == "async" && s.isAsyncFunction():
			s.advance()
			return s.parseFunctionStatement(start, true, false)
		case s.peekAt(1).Kind == token.Colon:
			return s.parseLabeled()
		}
	}
	return s.parseExpressionStatement()
}

func (s *state) checkModuleItem(tok token.Token, top bool) {
	if !top {
		s.fail(tok.Span, "'import' and 'export' may only appear at the top level")
	}
	if !s.opts.isModule() {
		s.fail(tok.Span, "'import' and 'export' may appear only with 'sourceType: module'")
	}
}

// isLetDeclaration: `let` starts a declaration when a binding follows.
func (s *state) isLetDeclaration() bool {
	if !s.ecma(2015) {
		return false
	}
	switch next := s.peekAt(1); next.Kind {
	case token.LBracket, token.LBrace:
		return true
	case token.Ident:
		return !next.Is("in") && !next.Is("instanceof")
	default:
		return false
	}
}

// isAsyncFunction: `async function` without a line break in between.
func (s *state) isAsyncFunction() bool {
	next := s.peekAt(1)
	return s.ecma(2017) && next.Kind == token.KwFunction && !next.NewlineBefore
}

func (s *state) parseExpressionStatement() *ast.ExpressionStatement {
	start := s.start()
	expr := s.parseExpression()
	s.consumeSemicolon()
	st := &ast.ExpressionStatement{Expression: expr}
	s.finish(st, start)
	return st
}

func (s *state) parseBlock() *ast.BlockStatement {
	start := s.start()
	s.expect(token.LBrace)
	block := &ast.BlockStatement{Body: s.parseStatementList(token.RBrace, false)}
	s.expect(token.RBrace)
	s.finish(block, start)
	return block
}

func (s *state) parseVarStatement(kind string) *ast.VariableDeclaration {
	start := s.start()
	s.advance()
	decl := s.parseVar(kind, false)
	s.consumeSemicolon()
	s.finish(decl, start)
	return decl
}

// parseVar parses the declarator list after var/let/const. In a for head a
// missing initializer is allowed when `in` or `of` follows.
func (s *state) parseVar(kind string, isFor bool) *ast.VariableDeclaration {
	decl := &ast.VariableDeclaration{Kind: kind}
	for {
		start := s.start()
		d := &ast.VariableDeclarator{ID: s.parseBindingTarget()}
		s.Annotate(grammar.HookBindingAnnotation, d.ID)
		if s.eat(token.Assign) {
			d.Init = s.parseMaybeAssign()
		} else if !isFor || !(s.at(token.KwIn) || s.atWord("of")) {
			if kind == "const" {
				s.fail(s.peek().Span, "Missing initializer in const declaration")
			}
			if _, ok := d.ID.(*ast.Identifier); !ok {
				s.fail(s.peek().Span, "Complex binding patterns require an initialization value")
			}
		}
		s.finish(d, start)
		decl.Declarations = append(decl.Declarations, d)
		if !s.eat(token.Comma) {
			return decl
		}
	}
}
