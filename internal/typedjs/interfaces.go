package typedjs

import (
	"typedlint/internal/ast"
	"typedlint/internal/grammar"
	"typedlint/internal/token"
)

// declStarts reports `word Name` on one line, the start of a type declaration.
func declStarts(p grammar.Parser, word string) bool {
	next := p.PeekAt(1)
	return p.AtWord(word) && next.Kind == token.Ident && !next.NewlineBefore
}

func parseInterface(p grammar.Parser) (ast.Stmt, bool) {
	if !declStarts(p, "interface") {
		return nil, false
	}
	start := p.Start()
	p.Next()
	decl := &TSInterfaceDeclaration{ID: p.ParseIdentifier(false), Extends: make([]*TSInterfaceHeritage, 0)}
	decl.TypeParameters = parseTypeParameters(p)
	if p.Eat(token.KwExtends) {
		for {
			hstart := p.Start()
			h := &TSInterfaceHeritage{Expression: parseHeritageName(p)}
			if p.At(token.Lt) {
				h.TypeArguments = parseTypeArguments(p)
			}
			p.Finish(h, hstart)
			decl.Extends = append(decl.Extends, h)
			if !p.Eat(token.Comma) {
				break
			}
		}
	}
	bstart := p.Start()
	body := &TSInterfaceBody{Body: parseMembers(p)}
	p.Finish(body, bstart)
	decl.Body = body
	p.Finish(decl, start)
	return decl, true
}

// parseHeritageName parses `A` or `ns.A` as a value expression.
func parseHeritageName(p grammar.Parser) ast.Expr {
	start := p.Start()
	var expr ast.Expr = p.ParseIdentifier(false)
	for p.Eat(token.Dot) {
		m := &ast.MemberExpression{Object: expr, Property: p.ParseIdentifier(true)}
		p.Finish(m, start)
		expr = m
	}
	return expr
}

func parseTypeAlias(p grammar.Parser) (ast.Stmt, bool) {
	if !declStarts(p, "type") {
		return nil, false
	}
	start := p.Start()
	p.Next()
	decl := &TSTypeAliasDeclaration{ID: p.ParseIdentifier(false)}
	decl.TypeParameters = parseTypeParameters(p)
	p.Expect(token.Assign)
	decl.TypeAnnotation = p.ParseType()
	p.ConsumeSemicolon()
	p.Finish(decl, start)
	return decl, true
}
