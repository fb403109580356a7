package typedjs

import (
	"typedlint/internal/ast"
	"typedlint/internal/grammar"
	"typedlint/internal/token"
)

// parseType: функциональный тип или объединение.
func parseType(p grammar.Parser) ast.Node {
	if p.At(token.LParen) {
		if fn, ok := tryFunctionType(p); ok {
			return fn
		}
	}
	return parseUnion(p)
}

// parseTypeAnnotation parses `: T`; the annotation span starts at the colon.
func parseTypeAnnotation(p grammar.Parser) *TSTypeAnnotation {
	start := p.Start()
	p.Expect(token.Colon)
	ann := &TSTypeAnnotation{TypeAnnotation: p.ParseType()}
	p.Finish(ann, start)
	return ann
}

func tryFunctionType(p grammar.Parser) (*TSFunctionType, bool) {
	start := p.Start()
	fn := &TSFunctionType{}
	var arrow uint32
	if !p.Try(func() {
		fn.Params = parseSignatureParams(p)
		arrow = p.Start()
		p.Expect(token.FatArrow)
	}) {
		return nil, false
	}
	ret := &TSTypeAnnotation{TypeAnnotation: p.ParseType()}
	p.Finish(ret, arrow)
	fn.ReturnType = ret
	p.Finish(fn, start)
	return fn, true
}

// parseSignatureParams parses `(a: T, b?: U, ...rest: V[])` of function types and method signatures.
func parseSignatureParams(p grammar.Parser) []ast.Pattern {
	p.Expect(token.LParen)
	params := make([]ast.Pattern, 0, 2)
	for !p.Eat(token.RParen) {
		start := p.Start()
		rest := p.Eat(token.DotDotDot)
		id := p.ParseIdentifier(false)
		if !rest && p.Eat(token.Question) {
			id.Optional = true
			p.Finish(id, start)
		}
		var param ast.Pattern = id
		if rest {
			param = &ast.RestElement{Argument: id}
		}
		if p.At(token.Colon) {
			param.(ast.Annotatable).SetTypeAnnotation(parseTypeAnnotation(p))
		}
		p.Finish(param.(grammar.Spanned), start)
		params = append(params, param)
		if !p.At(token.RParen) {
			p.Expect(token.Comma)
		}
	}
	return params
}

func parseUnion(p grammar.Parser) ast.Node {
	start := p.Start()
	leading := p.Eat(token.Pipe)
	types := []ast.Node{parseIntersection(p)}
	for p.Eat(token.Pipe) {
		types = append(types, parseIntersection(p))
	}
	if len(types) == 1 && !leading {
		return types[0]
	}
	u := &TSUnionType{Types: types}
	p.Finish(u, start)
	return u
}

func parseIntersection(p grammar.Parser) ast.Node {
	start := p.Start()
	leading := p.Eat(token.Amp)
	types := []ast.Node{parseTypeOperator(p)}
	for p.Eat(token.Amp) {
		types = append(types, parseTypeOperator(p))
	}
	if len(types) == 1 && !leading {
		return types[0]
	}
	n := &TSIntersectionType{Types: types}
	p.Finish(n, start)
	return n
}

func parseTypeOperator(p grammar.Parser) ast.Node {
	if (p.AtWord("keyof") || p.AtWord("readonly")) && startsType(p.PeekAt(1)) {
		start := p.Start()
		op := p.Next().Text
		n := &TSTypeOperator{Operator: op, TypeAnnotation: parseTypeOperator(p)}
		p.Finish(n, start)
		return n
	}
	return parsePostfixType(p)
}

// startsType reports whether tok can begin a primary type.
func startsType(tok token.Token) bool {
	switch tok.Kind {
	case token.Ident, token.KwVoid, token.KwNull, token.KwTypeof, token.StringLit, token.NumberLit,
		token.BigIntLit, token.KwTrue, token.KwFalse, token.Minus, token.LParen, token.LBracket, token.LBrace:
		return true
	}
	return false
}

// parsePostfixType handles T[] suffixes; `[` must stay on the same line.
func parsePostfixType(p grammar.Parser) ast.Node {
	start := p.Start()
	t := parsePrimaryType(p)
	for p.At(token.LBracket) && !p.Peek().NewlineBefore && p.PeekAt(1).Kind == token.RBracket {
		p.Next()
		p.Next()
		arr := &TSArrayType{ElementType: t}
		p.Finish(arr, start)
		t = arr
	}
	return t
}

func parsePrimaryType(p grammar.Parser) ast.Node {
	tok := p.Peek()
	start := tok.Span.Start
	switch tok.Kind {
	case token.Ident, token.KwVoid, token.KwNull:
		if typ, ok := keywordTypes[tok.Text]; ok && p.PeekAt(1).Kind != token.Dot {
			p.Next()
			k := &TSKeyword{Keyword: tok.Text, typ: typ}
			p.Finish(k, start)
			return k
		}
		if tok.Kind == token.Ident {
			return parseTypeReference(p)
		}
	case token.KwTypeof:
		p.Next()
		q := &TSTypeQuery{ExprName: parseEntityName(p)}
		p.Finish(q, start)
		return q
	case token.StringLit, token.NumberLit, token.BigIntLit, token.KwTrue, token.KwFalse:
		lit := &TSLiteralType{Literal: p.ParseLiteral()}
		p.Finish(lit, start)
		return lit
	case token.Minus:
		if next := p.PeekAt(1).Kind; next == token.NumberLit || next == token.BigIntLit {
			p.Next()
			neg := &ast.UnaryExpression{Operator: "-", Prefix: true, Argument: p.ParseLiteral()}
			p.Finish(neg, start)
			lit := &TSLiteralType{Literal: neg}
			p.Finish(lit, start)
			return lit
		}
	case token.LParen:
		p.Next()
		t := p.ParseType()
		p.Expect(token.RParen)
		return t
	case token.LBracket:
		p.Next()
		tuple := &TSTupleType{ElementTypes: make([]ast.Node, 0, 2)}
		for !p.Eat(token.RBracket) {
			tuple.ElementTypes = append(tuple.ElementTypes, p.ParseType())
			if !p.At(token.RBracket) {
				p.Expect(token.Comma)
			}
		}
		p.Finish(tuple, start)
		return tuple
	case token.LBrace:
		lit := &TSTypeLiteral{Members: parseMembers(p)}
		p.Finish(lit, start)
		return lit
	}
	p.Fail(tok.Span, "Type expected")
	return nil
}

// parseEntityName parses `a.b.c` into nested TSQualifiedName.
func parseEntityName(p grammar.Parser) ast.Node {
	start := p.Start()
	var name ast.Node = p.ParseIdentifier(false)
	for p.Eat(token.Dot) {
		q := &TSQualifiedName{Left: name, Right: p.ParseIdentifier(true)}
		p.Finish(q, start)
		name = q
	}
	return name
}

func parseTypeReference(p grammar.Parser) *TSTypeReference {
	start := p.Start()
	ref := &TSTypeReference{TypeName: parseEntityName(p)}
	if p.At(token.Lt) && !p.Peek().NewlineBefore {
		ref.TypeArguments = parseTypeArguments(p)
	}
	p.Finish(ref, start)
	return ref
}

// parseTypeArguments parses `<T, U>`. A closing `>>` is split so nested lists can end together.
func parseTypeArguments(p grammar.Parser) *TSTypeParameterInstantiation {
	start := p.Start()
	p.Expect(token.Lt)
	inst := &TSTypeParameterInstantiation{Params: make([]ast.Node, 0, 1)}
	for {
		inst.Params = append(inst.Params, p.ParseType())
		if !p.Eat(token.Comma) {
			break
		}
	}
	closeGreater(p)
	p.Finish(inst, start)
	return inst
}

func closeGreater(p grammar.Parser) {
	if !p.SplitGreater() {
		p.Fail(p.Peek().Span, "'>' expected")
	}
	p.Expect(token.Gt)
}

// parseTypeParameters parses an optional `<T extends C = D, ...>` list.
func parseTypeParameters(p grammar.Parser) *TSTypeParameterDeclaration {
	if !p.At(token.Lt) {
		return nil
	}
	start := p.Start()
	p.Next()
	decl := &TSTypeParameterDeclaration{Params: make([]*TSTypeParameter, 0, 1)}
	for {
		pstart := p.Start()
		tp := &TSTypeParameter{Name: p.ParseIdentifier(false)}
		if p.Eat(token.KwExtends) {
			tp.Constraint = p.ParseType()
		}
		if p.Eat(token.Assign) {
			tp.Default = p.ParseType()
		}
		p.Finish(tp, pstart)
		decl.Params = append(decl.Params, tp)
		if !p.Eat(token.Comma) || p.At(token.Gt) {
			break
		}
	}
	closeGreater(p)
	p.Finish(decl, start)
	return decl
}

// parseMembers parses the braces of a type literal or interface body.
// Members are separated by `;`, `,` or a line break.
func parseMembers(p grammar.Parser) []ast.Node {
	p.Expect(token.LBrace)
	members := make([]ast.Node, 0, 4)
	for !p.Eat(token.RBrace) {
		members = append(members, parseMember(p))
		if !p.Eat(token.Semicolon) && !p.Eat(token.Comma) && !p.At(token.RBrace) && !p.Peek().NewlineBefore {
			p.Unexpected()
		}
	}
	return members
}

func isMemberModifier(p grammar.Parser) bool {
	switch p.PeekAt(1).Kind {
	case token.Colon, token.Question, token.LParen, token.Semicolon, token.Comma, token.RBrace:
		return false
	}
	return true
}

func parseMember(p grammar.Parser) ast.Node {
	start := p.Start()
	readonly := false
	if p.AtWord("readonly") && isMemberModifier(p) {
		p.Next()
		readonly = true
	}

	if p.At(token.LBracket) && p.PeekAt(1).Kind == token.Ident && p.PeekAt(2).Kind == token.Colon {
		p.Next()
		pstart := p.Start()
		id := p.ParseIdentifier(false)
		id.SetTypeAnnotation(parseTypeAnnotation(p))
		p.Finish(id, pstart)
		p.Expect(token.RBracket)
		sig := &TSIndexSignature{Parameters: []ast.Pattern{id}, Readonly: readonly}
		sig.TypeAnnotation = parseTypeAnnotation(p)
		p.Finish(sig, start)
		return sig
	}

	key, computed := p.ParsePropertyName()
	optional := p.Eat(token.Question)
	if p.At(token.LParen) {
		m := &TSMethodSignature{Key: key, Computed: computed, Optional: optional}
		m.Params = parseSignatureParams(p)
		if p.At(token.Colon) {
			m.ReturnType = parseTypeAnnotation(p)
		}
		p.Finish(m, start)
		return m
	}
	prop := &TSPropertySignature{Key: key, Computed: computed, Optional: optional, Readonly: readonly}
	if p.At(token.Colon) {
		prop.TypeAnnotation = parseTypeAnnotation(p)
	}
	p.Finish(prop, start)
	return prop
}
