package rules

import (
	"typedlint/internal/ast"
	"typedlint/internal/rule"
)

// NoEmpty reports empty block and switch statements. A block holding only
// a comment is not empty. Option {allowEmptyCatch: true} allows `catch {}`.
var NoEmpty = rule.Rule{
	Meta: rule.Meta{
		Type:        rule.TypeSuggestion,
		Description: "Disallow empty block statements",
		Recommended: true,
		Messages: map[string]string{
			"unexpected": "Empty {{type}} statement.",
		},
	},
	Create: func(ctx *rule.Context) rule.Listeners {
		allowCatch := boolOption(objectOption(ctx.Option(0)), "allowEmptyCatch", false)
		return rule.Listeners{
			"BlockStatement": func(n ast.Node) {
				block := n.(*ast.BlockStatement)
				if len(block.Body) > 0 {
					return
				}
				switch ctx.Parent().(type) {
				case ast.Function:
					return
				case *ast.CatchClause:
					if allowCatch {
						return
					}
				}
				if hasCommentInside(ctx, n) {
					return
				}
				ctx.Report(rule.Descriptor{Node: n, MessageID: "unexpected", Data: map[string]any{"type": "block"}})
			},
			"SwitchStatement": func(n ast.Node) {
				if len(n.(*ast.SwitchStatement).Cases) == 0 {
					ctx.Report(rule.Descriptor{Node: n, MessageID: "unexpected", Data: map[string]any{"type": "switch"}})
				}
			},
		}
	},
}

func hasCommentInside(ctx *rule.Context, n ast.Node) bool {
	sp := n.Span()
	for _, c := range ctx.Source().Comments() {
		if c.Loc.Start >= sp.Start && c.Loc.End <= sp.End {
			return true
		}
	}
	return false
}
