package rules

import (
	"typedlint/internal/ast"
	"typedlint/internal/rule"
)

// NoUndef reports references that resolve to no declaration and no
// predeclared global. It needs scope analysis and stays silent without it.
// Option {typeof: true} also checks `typeof x` operands.
var NoUndef = rule.Rule{
	Meta: rule.Meta{
		Type:        rule.TypeProblem,
		Description: "Disallow the use of undeclared variables",
		Recommended: true,
		Messages: map[string]string{
			"undef": "'{{name}}' is not defined.",
		},
	},
	Create: func(ctx *rule.Context) rule.Listeners {
		checkTypeof := boolOption(objectOption(ctx.Option(0)), "typeof", false)
		typeofArgs := map[*ast.Identifier]bool{}
		return rule.Listeners{
			"UnaryExpression": func(n ast.Node) {
				u := n.(*ast.UnaryExpression)
				if id, ok := u.Argument.(*ast.Identifier); ok && u.Operator == "typeof" {
					typeofArgs[id] = true
				}
			},
			rule.ProgramExit: func(ast.Node) {
				m, ok := ctx.Scope().Get()
				if !ok {
					return
				}
				globals := ctx.Globals()
				for _, ref := range m.Global.Through {
					id := ref.Identifier
					if _, ok := globals[id.Name]; ok {
						continue
					}
					if !checkTypeof && typeofArgs[id] {
						continue
					}
					ctx.Report(rule.Descriptor{Node: id, MessageID: "undef", Data: map[string]any{"name": id.Name}})
				}
			},
		}
	},
}
