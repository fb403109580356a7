package rules

import (
	"typedlint/internal/ast"
	"typedlint/internal/rule"
)

var NoDebugger = rule.Rule{
	Meta: rule.Meta{
		Type:        rule.TypeProblem,
		Description: "Disallow the use of debugger",
		Fixable:     true,
		Recommended: true,
		Messages: map[string]string{
			"unexpected": "Unexpected 'debugger' statement.",
		},
	},
	Create: func(ctx *rule.Context) rule.Listeners {
		return rule.Listeners{
			"DebuggerStatement": func(n ast.Node) {
				d := rule.Descriptor{Node: n, MessageID: "unexpected"}
				// only statement lists can lose a statement
				switch ctx.Parent().(type) {
				case *ast.Program, *ast.BlockStatement, *ast.StaticBlock, *ast.SwitchCase:
					d.Fix = rule.Remove(n)
				}
				ctx.Report(d)
			},
		}
	},
}
