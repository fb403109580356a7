package parser

import (
	"typedlint/internal/ast"
	"typedlint/internal/token"
)

// parseBindingTarget parses an identifier, object pattern or array pattern.
func (s *state) parseBindingTarget() ast.Pattern {
	if s.ecma(2015) {
		switch s.peek().Kind {
		case token.LBracket:
			return s.parseArrayPattern()
		case token.LBrace:
			return s.parseObjectPattern()
		}
	}
	return s.parseBindingIdent()
}

// parseBindingElement is a target with an optional default.
func (s *state) parseBindingElement() ast.Pattern {
	start := s.start()
	target := s.parseBindingTarget()
	if !s.eat(token.Assign) {
		return target
	}
	ap := &ast.AssignmentPattern{Left: target, Right: s.parseMaybeAssign()}
	s.finish(ap, start)
	return ap
}

func (s *state) parseArrayPattern() *ast.ArrayPattern {
	start := s.start()
	s.expect(token.LBracket)
	pat := &ast.ArrayPattern{Elements: make([]ast.Pattern, 0, 4)}
	for !s.eat(token.RBracket) {
		if s.eat(token.Comma) {
			pat.Elements = append(pat.Elements, nil)
			continue
		}
		if rstart := s.start(); s.eat(token.DotDotDot) {
			rest := &ast.RestElement{Argument: s.parseBindingTarget()}
			s.finish(rest, rstart)
			pat.Elements = append(pat.Elements, rest)
			if s.at(token.Comma) {
				s.fail(s.peek().Span, "Comma is not permitted after the rest element")
			}
			s.expect(token.RBracket)
			break
		}
		pat.Elements = append(pat.Elements, s.parseBindingElement())
		if !s.at(token.RBracket) {
			s.expect(token.Comma)
		}
	}
	s.finish(pat, start)
	return pat
}

func (s *state) parseObjectPattern() *ast.ObjectPattern {
	start := s.start()
	s.expect(token.LBrace)
	pat := &ast.ObjectPattern{Properties: make([]ast.Node, 0, 4)}
	for !s.eat(token.RBrace) {
		pstart := s.start()
		if s.eat(token.DotDotDot) {
			rest := &ast.RestElement{Argument: s.parseBindingIdent()}
			s.finish(rest, pstart)
			pat.Properties = append(pat.Properties, rest)
			if s.at(token.Comma) {
				s.fail(s.peek().Span, "Comma is not permitted after the rest element")
			}
			s.expect(token.RBrace)
			break
		}
		keyTok := s.peek()
		key, computed := s.parsePropertyName()
		prop := &ast.Property{Key: key, Kind: "init", Computed: computed}
		if s.eat(token.Colon) {
			prop.Value = s.parseBindingElement()
		} else {
			id, ok := key.(*ast.Identifier)
			if !ok || computed || keyTok.Kind != token.Ident {
				s.unexpected()
			}
			prop.Shorthand = true
			var value ast.Pattern = cloneIdent(id)
			if s.eat(token.Assign) {
				ap := &ast.AssignmentPattern{Left: value, Right: s.parseMaybeAssign()}
				s.finish(ap, pstart)
				value = ap
			}
			prop.Value = value
		}
		s.finish(prop, pstart)
		pat.Properties = append(pat.Properties, prop)
		if !s.at(token.RBrace) {
			s.expect(token.Comma)
		}
	}
	s.finish(pat, start)
	return pat
}

// toAssignable converts an expression parsed before `=` (or in a for-in/of
// head) into the pattern it denotes. Spans are kept.
func (s *state) toAssignable(e ast.Expr) ast.Pattern {
	switch n := e.(type) {
	case *ast.Identifier:
		return n
	case *ast.MemberExpression:
		return n
	case *ast.ObjectExpression:
		pat := &ast.ObjectPattern{Properties: make([]ast.Node, 0, len(n.Properties))}
		pat.SetSpan(n.Span())
		for i, p := range n.Properties {
			switch p := p.(type) {
			case *ast.Property:
				if p.Kind != "init" || p.Method {
					s.fail(p.Key.Span(), "Object pattern can't contain getter or setter")
				}
				if v, ok := p.Value.(ast.Expr); ok {
					p.Value = s.toAssignable(v)
				}
				pat.Properties = append(pat.Properties, p)
			case *ast.SpreadElement:
				if i != len(n.Properties)-1 {
					s.fail(p.Span(), "Rest element must be last element")
				}
				rest := &ast.RestElement{Argument: s.toAssignable(p.Argument)}
				rest.SetSpan(p.Span())
				pat.Properties = append(pat.Properties, rest)
			}
		}
		return pat
	case *ast.ArrayExpression:
		pat := &ast.ArrayPattern{Elements: make([]ast.Pattern, 0, len(n.Elements))}
		pat.SetSpan(n.Span())
		for i, el := range n.Elements {
			switch el := el.(type) {
			case nil:
				pat.Elements = append(pat.Elements, nil)
			case *ast.SpreadElement:
				if i != len(n.Elements)-1 {
					s.fail(el.Span(), "Rest element must be last element")
				}
				rest := &ast.RestElement{Argument: s.toAssignable(el.Argument)}
				rest.SetSpan(el.Span())
				pat.Elements = append(pat.Elements, rest)
			default:
				pat.Elements = append(pat.Elements, s.toAssignable(el))
			}
		}
		return pat
	case *ast.AssignmentExpression:
		if n.Operator != "=" {
			s.fail(n.Left.Span(), "Only '=' operator can be used for specifying default value.")
		}
		ap := &ast.AssignmentPattern{Left: n.Left, Right: n.Right}
		ap.SetSpan(n.Span())
		return ap
	}
	s.fail(e.Span(), "Assigning to rvalue")
	return nil
}
