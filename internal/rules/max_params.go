package rules

import (
	"fmt"

	"typedlint/internal/ast"
	"typedlint/internal/rule"
)

const defaultMaxParams = 3

// MaxParams limits the number of parameters of a function. The option is a
// number or {max: n}; {maximum: n} is accepted as an alias.
var MaxParams = rule.Rule{
	Meta: rule.Meta{
		Type:        rule.TypeSuggestion,
		Description: "Enforce a maximum number of parameters in function definitions",
		Messages: map[string]string{
			"exceed": "{{name}} has too many parameters ({{count}}). Maximum allowed is {{max}}.",
		},
	},
	Create: func(ctx *rule.Context) rule.Listeners {
		limit := maxParamsOption(ctx.Option(0))
		check := func(n ast.Node) {
			fn := n.(ast.Function)
			count := len(fn.FunctionParams())
			if count <= limit {
				return
			}
			ctx.Report(rule.Descriptor{
				Node:      n,
				MessageID: "exceed",
				Data: map[string]any{
					"name":  functionName(n, ctx.Parent()),
					"count": count,
					"max":   limit,
				},
			})
		}
		return rule.Listeners{
			"FunctionDeclaration":     check,
			"FunctionExpression":      check,
			"ArrowFunctionExpression": check,
		}
	},
}

func maxParamsOption(v any) int {
	if n, ok := intOption(v); ok && n >= 0 {
		return n
	}
	if m := objectOption(v); m != nil {
		for _, key := range []string{"max", "maximum"} {
			if n, ok := intOption(m[key]); ok && n >= 0 {
				return n
			}
		}
	}
	return defaultMaxParams
}

// functionName describes a function the way messages refer to it.
func functionName(n, parent ast.Node) string {
	switch fn := n.(type) {
	case *ast.FunctionDeclaration:
		if fn.ID != nil {
			return fmt.Sprintf("Function '%s'", fn.ID.Name)
		}
	case *ast.FunctionExpression:
		if md, ok := parent.(*ast.MethodDefinition); ok {
			if key, ok := md.Key.(*ast.Identifier); ok && !md.Computed {
				if md.Kind == "constructor" {
					return "Constructor"
				}
				return fmt.Sprintf("Method '%s'", key.Name)
			}
			return "Method"
		}
		if fn.ID != nil {
			return fmt.Sprintf("Function '%s'", fn.ID.Name)
		}
	case *ast.ArrowFunctionExpression:
		if d, ok := parent.(*ast.VariableDeclarator); ok {
			if id, ok := d.ID.(*ast.Identifier); ok {
				return fmt.Sprintf("Arrow function '%s'", id.Name)
			}
		}
		return "Arrow function"
	}
	if d, ok := parent.(*ast.VariableDeclarator); ok {
		if id, ok := d.ID.(*ast.Identifier); ok {
			return fmt.Sprintf("Function '%s'", id.Name)
		}
	}
	return "Function"
}
