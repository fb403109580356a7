package typedjs

import (
	"typedlint/internal/ast"
	"typedlint/internal/grammar"
	"typedlint/internal/token"
)

// asPrec binds `as` like the relational operators.
const asPrec = 7

func annotateBinding(p grammar.Parser, target ast.Node) bool {
	t, ok := target.(ast.Annotatable)
	if !ok || !p.At(token.Colon) {
		return false
	}
	t.SetTypeAnnotation(parseTypeAnnotation(p))
	extend(p, target)
	return true
}

func annotateParam(p grammar.Parser, target ast.Node) bool {
	applied := false
	if p.At(token.Question) {
		o, ok := target.(ast.Optionalizable)
		if !ok {
			return false
		}
		p.Next()
		o.SetOptional(true)
		applied = true
	}
	if t, ok := target.(ast.Annotatable); ok && p.At(token.Colon) {
		t.SetTypeAnnotation(parseTypeAnnotation(p))
		applied = true
	}
	if applied {
		extend(p, target)
	}
	return applied
}

func annotateReturn(p grammar.Parser, target ast.Node) bool {
	fn, ok := target.(ast.Function)
	if !ok || !p.At(token.Colon) {
		return false
	}
	fn.SetReturnType(parseTypeAnnotation(p))
	return true
}

// extend stretches target's span over what was just consumed.
func extend(p grammar.Parser, target ast.Node) {
	if sp, ok := target.(grammar.Spanned); ok {
		p.Finish(sp, target.Span().Start)
	}
}

func parseAs(p grammar.Parser, left ast.Expr) (ast.Expr, bool) {
	if !p.AtWord("as") || p.Peek().NewlineBefore {
		return nil, false
	}
	p.Next()
	node := &TSAsExpression{Expression: left}
	if tok := p.Peek(); tok.Kind == token.KwConst {
		// `as const`: ссылка на тип с именем const
		p.Next()
		id := &ast.Identifier{Name: "const"}
		id.SetSpan(tok.Span)
		ref := &TSTypeReference{TypeName: id}
		ref.SetSpan(tok.Span)
		node.TypeAnnotation = ref
	} else {
		node.TypeAnnotation = p.ParseType()
	}
	p.Finish(node, left.Span().Start)
	return node, true
}
