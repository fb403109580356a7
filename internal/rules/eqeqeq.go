package rules

import (
	"strings"

	"fortio.org/safecast"

	"typedlint/internal/ast"
	"typedlint/internal/rule"
	"typedlint/internal/source"
)

// Eqeqeq requires === and !==. Options: "always" (default) or "smart",
// which allows == when comparing two literals, a typeof result or null.
var Eqeqeq = rule.Rule{
	Meta: rule.Meta{
		Type:        rule.TypeSuggestion,
		Description: "Require the use of === and !==",
		Fixable:     true,
		Messages: map[string]string{
			"unexpected": "Expected '{{expected}}' and instead saw '{{actual}}'.",
		},
		DefaultOptions: []any{"always"},
	},
	Create: func(ctx *rule.Context) rule.Listeners {
		mode, _ := ctx.Option(0).(string)
		return rule.Listeners{
			"BinaryExpression": func(n ast.Node) {
				bin := n.(*ast.BinaryExpression)
				if bin.Operator != "==" && bin.Operator != "!=" {
					return
				}
				if mode == "smart" && (isTypeof(bin.Left) || isTypeof(bin.Right) ||
					sameLiteralKind(bin.Left, bin.Right) || isNull(bin.Left) || isNull(bin.Right)) {
					return
				}
				expected := bin.Operator + "="
				opSpan, ok := operatorSpan(ctx.Source(), bin.Left, bin.Right, bin.Operator)
				if !ok {
					opSpan = bin.Span()
				}
				d := rule.Descriptor{
					Loc:       &opSpan,
					MessageID: "unexpected",
					Data:      map[string]any{"expected": expected, "actual": bin.Operator},
				}
				if ok && (isTypeof(bin.Left) || isTypeof(bin.Right) || sameLiteralKind(bin.Left, bin.Right)) {
					d.Fix = rule.ReplaceRange(opSpan, expected)
				}
				ctx.Report(d)
			},
		}
	},
}

// operatorSpan finds the operator token between the operands.
func operatorSpan(src *rule.SourceCode, left, right ast.Node, op string) (source.Span, bool) {
	l, r := left.Span(), right.Span()
	between := src.Slice(source.Span{File: l.File, Start: l.End, End: r.Start})
	i := strings.Index(stripComments(between), op)
	if i < 0 {
		return source.Span{}, false
	}
	off, err := safecast.Conv[uint32](i)
	if err != nil {
		return source.Span{}, false
	}
	start := l.End + off
	return source.Span{File: l.File, Start: start, End: start + uint32(len(op))}, true
}

// stripComments blanks comments while keeping offsets.
func stripComments(s string) string {
	b := []byte(s)
	for i := 0; i+1 < len(b); i++ {
		switch {
		case b[i] == '/' && b[i+1] == '/':
			for i < len(b) && b[i] != '\n' {
				b[i] = ' '
				i++
			}
		case b[i] == '/' && b[i+1] == '*':
			end := strings.Index(string(b[i+2:]), "*/")
			stop := len(b)
			if end >= 0 {
				stop = i + 2 + end + 2
			}
			for ; i < stop; i++ {
				b[i] = ' '
			}
			i--
		}
	}
	return string(b)
}

func isTypeof(n ast.Node) bool {
	u, ok := n.(*ast.UnaryExpression)
	return ok && u.Operator == "typeof"
}

func isNull(n ast.Node) bool {
	lit, ok := n.(*ast.Literal)
	return ok && lit.Value == nil && lit.Raw == "null"
}

func sameLiteralKind(a, b ast.Node) bool {
	la, ok1 := a.(*ast.Literal)
	lb, ok2 := b.(*ast.Literal)
	if !ok1 || !ok2 || la.Regex != nil || lb.Regex != nil || la.Bigint != "" || lb.Bigint != "" {
		return false
	}
	switch la.Value.(type) {
	case string:
		_, ok := lb.Value.(string)
		return ok
	case float64:
		_, ok := lb.Value.(float64)
		return ok
	case bool:
		_, ok := lb.Value.(bool)
		return ok
	}
	return false
}
