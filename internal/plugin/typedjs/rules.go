package typedjs

import (
	"typedlint/internal/ast"
	"typedlint/internal/rule"
	syntax "typedlint/internal/typedjs"
)

// NoOp listens to nothing and never reports. The recommended preset enables
// it so that the plugin is active without changing any result.
var NoOp = rule.Rule{
	Meta: rule.Meta{
		Type:        rule.TypeSuggestion,
		Description: "Placeholder rule that reports nothing",
		Recommended: true,
	},
	Create: func(*rule.Context) rule.Listeners { return rule.Listeners{} },
}

// NoExplicitAny reports the `any` type. With {fixToUnknown: true} the fix
// replaces it with `unknown`.
var NoExplicitAny = rule.Rule{
	Meta: rule.Meta{
		Type:        rule.TypeSuggestion,
		Description: "Disallow the any type",
		Fixable:     true,
		Messages: map[string]string{
			"unexpectedAny": "Unexpected any. Specify a different type.",
		},
		DefaultOptions: []any{map[string]any{"fixToUnknown": true}},
	},
	Create: func(ctx *rule.Context) rule.Listeners {
		fixToUnknown := true
		if m, ok := ctx.Option(0).(map[string]any); ok {
			if b, ok := m["fixToUnknown"].(bool); ok {
				fixToUnknown = b
			}
		}
		return rule.Listeners{
			"TSAnyKeyword": func(n ast.Node) {
				d := rule.Descriptor{Node: n, MessageID: "unexpectedAny"}
				if fixToUnknown {
					d.Fix = rule.ReplaceText(n, "unknown")
				}
				ctx.Report(d)
			},
		}
	},
}

// NoEmptyInterface reports interfaces with no members that extend at most
// one other interface.
var NoEmptyInterface = rule.Rule{
	Meta: rule.Meta{
		Type:        rule.TypeSuggestion,
		Description: "Disallow empty interfaces",
		Messages: map[string]string{
			"noEmpty":          "An empty interface is equivalent to `{}`.",
			"noEmptyWithSuper": "An interface declaring no members is equivalent to its supertype.",
		},
	},
	Create: func(ctx *rule.Context) rule.Listeners {
		return rule.Listeners{
			"TSInterfaceDeclaration": func(n ast.Node) {
				decl := n.(*syntax.TSInterfaceDeclaration)
				if decl.Body != nil && len(decl.Body.Body) > 0 {
					return
				}
				switch len(decl.Extends) {
				case 0:
					ctx.Report(rule.Descriptor{Node: decl.ID, MessageID: "noEmpty"})
				case 1:
					ctx.Report(rule.Descriptor{Node: decl.ID, MessageID: "noEmptyWithSuper"})
				}
			},
		}
	},
}
