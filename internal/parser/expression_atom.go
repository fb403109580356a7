package parser

import (
	"math/big"
	"strconv"
	"strings"

	"typedlint/internal/ast"
	"typedlint/internal/token"
)

func (s *state) parseExprAtom() ast.Expr {
	tok := s.peek()
	start := tok.Span.Start
	switch tok.Kind {
	case token.KwThis:
		s.advance()
		node := &ast.ThisExpression{}
		s.finish(node, start)
		return node
	case token.KwSuper:
		s.advance()
		if next := s.peek().Kind; next != token.LParen && next != token.Dot && next != token.LBracket {
			s.fail(tok.Span, "'super' keyword outside a method")
		}
		node := &ast.Super{}
		s.finish(node, start)
		return node
	case token.Ident:
		if tok.Text == "async" && s.isAsyncFunction() {
			s.advance()
			return s.parseFunctionExpression(start, true)
		}
		return s.parseIdent(false)
	case token.NumberLit, token.BigIntLit, token.StringLit, token.KwNull, token.KwTrue, token.KwFalse:
		return s.parseLiteral()
	case token.RegExpLit:
		return s.parseRegExp()
	case token.LParen:
		return s.parseParenExpression()
	case token.LBracket:
		return s.parseArray()
	case token.LBrace:
		return s.parseObject()
	case token.KwFunction:
		return s.parseFunctionExpression(start, false)
	case token.KwClass:
		if s.ecma(2015) {
			return s.parseClassExpression()
		}
	case token.KwNew:
		return s.parseNew()
	case token.KwImport:
		return s.parseImportMeta()
	case token.TemplateNoSub, token.TemplateHead:
		if s.ecma(2015) {
			return s.parseTemplate()
		}
	case token.PrivateName:
		// #x in obj
		if s.peekAt(1).Kind == token.KwIn && s.fn.inClass {
			s.advance()
			node := &ast.PrivateIdentifier{Name: tok.Value}
			s.finish(node, start)
			return node
		}
	}
	s.unexpected()
	return nil
}

func (s *state) parseParenExpression() ast.Expr {
	s.expect(token.LParen)
	noIn := s.noIn
	s.noIn = false
	expr := s.parseExpression()
	s.noIn = noIn
	s.expect(token.RParen)
	return expr
}

func identName(tok token.Token) string {
	if tok.Value != "" {
		return tok.Value
	}
	return tok.Text
}

// parseIdent parses an identifier reference. allowReserved admits keywords,
// as needed after `.` and in property names.
func (s *state) parseIdent(allowReserved bool) *ast.Identifier {
	tok := s.peek()
	switch {
	case tok.Kind == token.Ident:
	case tok.Kind.IsKeyword() && allowReserved:
	case tok.Kind.IsKeyword():
		s.fail(tok.Span, "Unexpected keyword '%s'", tok.Text)
	default:
		s.unexpected()
	}
	s.advance()
	id := &ast.Identifier{Name: identName(tok)}
	id.SetSpan(tok.Span)
	return id
}

func (s *state) parseBindingIdent() *ast.Identifier {
	tok := s.peek()
	if tok.Is("await") && s.fn.inAsync {
		s.fail(tok.Span, "Cannot use 'await' as identifier inside an async function")
	}
	if tok.Is("yield") && s.fn.inGenerator {
		s.fail(tok.Span, "Cannot use 'yield' as identifier inside a generator")
	}
	return s.parseIdent(false)
}

func (s *state) parseLiteral() *ast.Literal {
	tok := s.peek()
	lit := &ast.Literal{Raw: tok.Text}
	switch tok.Kind {
	case token.StringLit:
		lit.Value = tok.Value
	case token.NumberLit:
		lit.Value = numberValue(tok.Text)
	case token.BigIntLit:
		lit.Bigint = strings.ReplaceAll(strings.TrimSuffix(tok.Text, "n"), "_", "")
	case token.KwNull:
	case token.KwTrue:
		lit.Value = true
	case token.KwFalse:
		lit.Value = false
	default:
		s.unexpected()
	}
	s.advance()
	lit.SetSpan(tok.Span)
	return lit
}

// numberValue evaluates a numeric literal already validated by the lexer.
func numberValue(text string) float64 {
	text = strings.ReplaceAll(text, "_", "")
	if len(text) > 2 && text[0] == '0' {
		base := 0
		switch text[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			n, ok := new(big.Int).SetString(text[2:], base)
			if !ok {
				return 0
			}
			f, _ := new(big.Float).SetInt(n).Float64()
			return f
		}
	}
	// при переполнении ParseFloat отдаёт ±Inf, как и JS
	f, _ := strconv.ParseFloat(text, 64)
	return f
}

func (s *state) parseRegExp() *ast.Literal {
	tok := s.advance()
	flags := tok.Text[len(tok.Value)+2:]
	lit := &ast.Literal{Raw: tok.Text, Regex: &ast.RegExp{Pattern: tok.Value, Flags: flags}}
	lit.SetSpan(tok.Span)
	return lit
}

func (s *state) parseTemplate() *ast.TemplateLiteral {
	start := s.start()
	tl := &ast.TemplateLiteral{Quasis: make([]*ast.TemplateElement, 0, 2), Expressions: make([]ast.Expr, 0, 1)}
	tok := s.advance()
	tl.Quasis = append(tl.Quasis, templateElement(tok))
	for tok.Kind == token.TemplateHead || tok.Kind == token.TemplateMiddle {
		noIn := s.noIn
		s.noIn = false
		tl.Expressions = append(tl.Expressions, s.parseExpression())
		s.noIn = noIn
		tok = s.peek()
		if tok.Kind != token.TemplateMiddle && tok.Kind != token.TemplateTail {
			s.unexpected()
		}
		s.advance()
		tl.Quasis = append(tl.Quasis, templateElement(tok))
	}
	s.finish(tl, start)
	return tl
}

// templateElement strips the delimiters (` } ${) from a template token.
func templateElement(tok token.Token) *ast.TemplateElement {
	tail := tok.Kind == token.TemplateNoSub || tok.Kind == token.TemplateTail
	closeLen := uint32(2)
	if tail {
		closeLen = 1
	}
	sp := tok.Span
	sp.Start++
	sp.End -= closeLen
	if sp.End < sp.Start {
		sp.End = sp.Start
	}
	raw := tok.Text[1 : len(tok.Text)-int(closeLen)]
	el := &ast.TemplateElement{Value: ast.TemplateValue{Raw: raw, Cooked: tok.Value}, Tail: tail}
	el.SetSpan(sp)
	return el
}

func (s *state) parseArray() *ast.ArrayExpression {
	start := s.start()
	s.expect(token.LBracket)
	noIn := s.noIn
	s.noIn = false
	arr := &ast.ArrayExpression{Elements: make([]ast.Expr, 0, 4)}
	for !s.eat(token.RBracket) {
		if s.eat(token.Comma) {
			arr.Elements = append(arr.Elements, nil)
			continue
		}
		estart := s.start()
		if s.eat(token.DotDotDot) {
			spread := &ast.SpreadElement{Argument: s.parseMaybeAssign()}
			s.finish(spread, estart)
			arr.Elements = append(arr.Elements, spread)
		} else {
			arr.Elements = append(arr.Elements, s.parseMaybeAssign())
		}
		if !s.at(token.RBracket) {
			s.expect(token.Comma)
		}
	}
	s.noIn = noIn
	s.finish(arr, start)
	return arr
}

func (s *state) parseObject() *ast.ObjectExpression {
	start := s.start()
	s.expect(token.LBrace)
	noIn := s.noIn
	s.noIn = false
	obj := &ast.ObjectExpression{Properties: make([]ast.Node, 0, 4)}
	for !s.eat(token.RBrace) {
		obj.Properties = append(obj.Properties, s.parseObjectMember())
		if !s.at(token.RBrace) {
			s.expect(token.Comma)
		}
	}
	s.noIn = noIn
	s.finish(obj, start)
	return obj
}

// isObjectModifier: get/set/async are modifiers unless the member is named so.
func (s *state) isObjectModifier() bool {
	switch s.peekAt(1).Kind {
	case token.Comma, token.Colon, token.LParen, token.RBrace, token.Assign:
		return false
	}
	return true
}

func (s *state) parseObjectMember() ast.Node {
	start := s.start()
	if s.ecma(2018) && s.eat(token.DotDotDot) {
		spread := &ast.SpreadElement{Argument: s.parseMaybeAssign()}
		s.finish(spread, start)
		return spread
	}
	async := false
	if s.atWord("async") && s.ecma(2017) && s.isObjectModifier() && !s.peekAt(1).NewlineBefore {
		s.advance()
		async = true
	}
	generator := s.ecma(2015) && s.eat(token.Star)
	kind := "init"
	if !async && !generator && (s.atWord("get") || s.atWord("set")) && s.isObjectModifier() {
		kind = s.advance().Text
	}

	keyTok := s.peek()
	key, computed := s.parsePropertyName()
	prop := &ast.Property{Key: key, Kind: kind, Computed: computed}
	switch {
	case kind != "init":
		prop.Value = s.parseMethod(false, false)
	case s.at(token.LParen) && s.ecma(2015):
		prop.Method = true
		prop.Value = s.parseMethod(async, generator)
	case async || generator:
		s.unexpected()
	case s.eat(token.Colon):
		prop.Value = s.parseMaybeAssign()
	default:
		id, ok := key.(*ast.Identifier)
		if !ok || computed || keyTok.Kind != token.Ident || !s.ecma(2015) {
			s.unexpected()
		}
		prop.Shorthand = true
		if s.at(token.Assign) {
			// {a = 1} допустимо только как паттерн деструктуризации
			s.advance()
			ap := &ast.AssignmentPattern{Left: cloneIdent(id), Right: s.parseMaybeAssign()}
			s.finish(ap, start)
			prop.Value = ap
		} else {
			prop.Value = cloneIdent(id)
		}
	}
	s.finish(prop, start)
	return prop
}

// parsePropertyName parses a literal, identifier or computed key.
func (s *state) parsePropertyName() (ast.Expr, bool) {
	tok := s.peek()
	switch {
	case tok.Kind == token.LBracket && s.ecma(2015):
		s.advance()
		noIn := s.noIn
		s.noIn = false
		key := s.parseMaybeAssign()
		s.noIn = noIn
		s.expect(token.RBracket)
		return key, true
	case tok.Kind == token.StringLit, tok.Kind == token.NumberLit, tok.Kind == token.BigIntLit:
		return s.parseLiteral(), false
	case tok.IsName():
		return s.parseIdent(true), false
	}
	s.unexpected()
	return nil, false
}

func (s *state) parseNew() ast.Expr {
	start := s.start()
	newTok := s.advance()
	if s.ecma(2015) && s.at(token.Dot) {
		s.advance()
		meta := &ast.Identifier{Name: "new"}
		meta.SetSpan(newTok.Span)
		prop := s.parseIdent(true)
		if prop.Name != "target" {
			s.fail(prop.Span(), "The only valid meta property for new is 'new.target'")
		}
		if !s.fn.inFunction {
			s.fail(newTok.Span, "'new.target' can only be used in functions and class static block")
		}
		node := &ast.MetaProperty{Meta: meta, Property: prop}
		s.finish(node, start)
		return node
	}
	cstart := s.start()
	if s.at(token.KwImport) && s.peekAt(1).Kind == token.LParen {
		s.fail(s.peek().Span, "Cannot use new with import(...)")
	}
	callee := s.parseSubscripts(s.parseExprAtom(), cstart, true)
	node := &ast.NewExpression{Callee: callee, Arguments: make([]ast.Expr, 0)}
	if s.eat(token.LParen) {
		node.Arguments = s.parseExprList(token.RParen)
	}
	s.finish(node, start)
	return node
}

// parseImportMeta parses import(...) and import.meta.
func (s *state) parseImportMeta() ast.Expr {
	start := s.start()
	importTok := s.advance()
	if s.eat(token.Dot) {
		meta := &ast.Identifier{Name: "import"}
		meta.SetSpan(importTok.Span)
		prop := s.parseIdent(true)
		if prop.Name != "meta" {
			s.fail(prop.Span(), "The only valid meta property for import is 'import.meta'")
		}
		if !s.opts.isModule() {
			s.fail(importTok.Span, "Cannot use 'import.meta' outside a module")
		}
		node := &ast.MetaProperty{Meta: meta, Property: prop}
		s.finish(node, start)
		return node
	}
	if !s.ecma(2020) || !s.at(token.LParen) {
		s.fail(importTok.Span, "Unexpected token")
	}
	s.advance()
	noIn := s.noIn
	s.noIn = false
	node := &ast.ImportExpression{Source: s.parseMaybeAssign()}
	s.eat(token.Comma)
	s.noIn = noIn
	s.expect(token.RParen)
	s.finish(node, start)
	return node
}
