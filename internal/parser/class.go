package parser

import (
	"typedlint/internal/ast"
	"typedlint/internal/grammar"
	"typedlint/internal/token"
)

func (s *state) parseClassDeclaration(start uint32, optionalID bool) *ast.ClassDeclaration {
	s.expect(token.KwClass)
	decl := &ast.ClassDeclaration{}
	if !optionalID || (s.at(token.Ident) && !s.atWord("implements")) {
		decl.ID = s.parseBindingIdent()
	}
	decl.SuperClass, decl.Body = s.parseClassTail()
	s.finish(decl, start)
	return decl
}

func (s *state) parseClassExpression() *ast.ClassExpression {
	start := s.start()
	s.expect(token.KwClass)
	expr := &ast.ClassExpression{}
	if s.at(token.Ident) && !s.atWord("implements") {
		expr.ID = s.parseBindingIdent()
	}
	expr.SuperClass, expr.Body = s.parseClassTail()
	s.finish(expr, start)
	return expr
}

func (s *state) parseClassTail() (ast.Expr, *ast.ClassBody) {
	var super ast.Expr
	if s.eat(token.KwExtends) {
		super = s.parseExprSubscripts()
	}
	return super, s.parseClassBody()
}

func (s *state) parseClassBody() *ast.ClassBody {
	start := s.start()
	s.expect(token.LBrace)
	saved := s.fn.inClass
	s.fn.inClass = true
	body := &ast.ClassBody{Body: make([]ast.Node, 0, 8)}
	hasCtor := false
	for !s.eat(token.RBrace) {
		if s.eat(token.Semicolon) {
			continue
		}
		el := s.parseClassElement()
		if m, ok := el.(*ast.MethodDefinition); ok && m.Kind == "constructor" {
			if hasCtor {
				s.fail(m.Key.Span(), "Duplicate constructor in the same class")
			}
			hasCtor = true
		}
		body.Body = append(body.Body, el)
	}
	s.fn.inClass = saved
	s.finish(body, start)
	return body
}

// isModifier reports whether the current contextual word acts as a modifier,
// that is, it is not itself the member name.
func (s *state) isModifier() bool {
	next := s.peekAt(1)
	switch next.Kind {
	case token.LParen, token.Assign, token.Semicolon, token.RBrace, token.EOF, token.Colon, token.Question:
		return false
	}
	return true
}

func (s *state) parseClassElement() ast.Node {
	start := s.start()
	static := false
	if s.atWord("static") && s.isModifier() {
		if s.peekAt(1).Kind == token.LBrace && s.ecma(2022) {
			return s.parseStaticBlock()
		}
		s.advance()
		static = true
	}
	async := false
	if s.atWord("async") && s.isModifier() && !s.peekAt(1).NewlineBefore {
		s.advance()
		async = true
	}
	generator := s.eat(token.Star)
	kind := "method"
	if !async && !generator && (s.atWord("get") || s.atWord("set")) && s.isModifier() {
		kind = s.advance().Text
	}

	keyTok := s.peek()
	key, computed := s.parseClassKey()

	if s.at(token.LParen) || kind != "method" || async || generator {
		if !static && !computed && kind == "method" && isNamed(key, "constructor") {
			if async || generator {
				s.fail(keyTok.Span, "Constructor can't be an async method or a generator")
			}
			kind = "constructor"
		}
		m := &ast.MethodDefinition{Key: key, Kind: kind, Computed: computed, Static: static}
		m.Value = s.parseMethod(async, generator)
		s.finish(m, start)
		return m
	}

	if isNamed(key, "constructor") && !computed {
		s.fail(keyTok.Span, "Classes can't have a field named 'constructor'")
	}
	prop := &ast.PropertyDefinition{Key: key, Computed: computed, Static: static}
	s.Annotate(grammar.HookBindingAnnotation, prop)
	if s.eat(token.Assign) {
		saved := s.fn
		s.fn = fnContext{inFunction: true, inClass: true}
		prop.Value = s.parseMaybeAssign()
		s.fn = saved
	}
	s.consumeSemicolon()
	s.finish(prop, start)
	return prop
}

func (s *state) parseStaticBlock() *ast.StaticBlock {
	start := s.start()
	s.advance() // static
	s.expect(token.LBrace)
	saved := s.fn
	s.fn = fnContext{inFunction: true, inClass: true}
	block := &ast.StaticBlock{Body: s.parseStatementList(token.RBrace, false)}
	s.fn = saved
	s.expect(token.RBrace)
	s.finish(block, start)
	return block
}

func (s *state) parseClassKey() (ast.Expr, bool) {
	if tok := s.peek(); tok.Kind == token.PrivateName {
		start := s.start()
		s.advance()
		id := &ast.PrivateIdentifier{Name: tok.Value}
		s.finish(id, start)
		return id, false
	}
	return s.parsePropertyName()
}

// isNamed reports whether key is the identifier or string literal name.
func isNamed(key ast.Expr, name string) bool {
	switch k := key.(type) {
	case *ast.Identifier:
		return k.Name == name
	case *ast.Literal:
		v, ok := k.Value.(string)
		return ok && v == name
	}
	return false
}
