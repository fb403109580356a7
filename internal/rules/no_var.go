package rules

import (
	"typedlint/internal/ast"
	"typedlint/internal/rule"
	"typedlint/internal/scope"
	"typedlint/internal/source"
)

// NoVar reports `var` declarations. The fix to `let` is offered only when
// it cannot change behaviour: the declaration sits directly in a block or
// the program, outside loops and switch cases, every name is declared once
// and no name is used before its declaration.
var NoVar = rule.Rule{
	Meta: rule.Meta{
		Type:        rule.TypeSuggestion,
		Description: "Require let or const instead of var",
		Fixable:     true,
		Messages: map[string]string{
			"unexpectedVar": "Unexpected var, use let or const instead.",
		},
	},
	Create: func(ctx *rule.Context) rule.Listeners {
		return rule.Listeners{
			"VariableDeclaration": func(n ast.Node) {
				decl := n.(*ast.VariableDeclaration)
				if decl.Kind != "var" {
					return
				}
				d := rule.Descriptor{Node: decl, MessageID: "unexpectedVar"}
				if canFixVar(ctx, decl) {
					sp := decl.Span()
					kw := source.Span{File: sp.File, Start: sp.Start, End: sp.Start + 3}
					d.Fix = rule.ReplaceRange(kw, "let")
				}
				ctx.Report(d)
			},
		}
	},
}

func canFixVar(ctx *rule.Context, decl *ast.VariableDeclaration) bool {
	switch ctx.Parent().(type) {
	case *ast.Program, *ast.BlockStatement, *ast.StaticBlock:
	default:
		return false
	}
	for _, anc := range ctx.Ancestors() {
		switch anc.(type) {
		case *ast.ForStatement, *ast.ForInStatement, *ast.ForOfStatement,
			*ast.WhileStatement, *ast.DoWhileStatement, *ast.SwitchCase:
			return false
		}
	}
	m, ok := ctx.Scope().Get()
	if !ok {
		return false
	}
	for _, d := range decl.Declarations {
		for _, v := range m.DeclaredVariables(d) {
			if !letSafe(v, decl) {
				return false
			}
		}
	}
	return true
}

func letSafe(v *scope.Variable, decl *ast.VariableDeclaration) bool {
	if len(v.Defs) != 1 || v.Scope.Kind == scope.KindGlobal {
		return false
	}
	start := decl.Span().Start
	for _, ref := range v.References {
		if ref.Identifier.Span().Start < start {
			return false
		}
	}
	return true
}
