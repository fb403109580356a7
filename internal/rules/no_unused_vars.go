package rules

import (
	"regexp"

	"typedlint/internal/ast"
	"typedlint/internal/rule"
	"typedlint/internal/scope"
)

type unusedOptions struct {
	vars       string // all | local
	args       string // after-used | all | none
	caught     string // all | none
	varsIgnore *regexp.Regexp
	argsIgnore *regexp.Regexp
}

func parseUnusedOptions(v any) unusedOptions {
	o := unusedOptions{vars: "all", args: "after-used", caught: "all"}
	if s, ok := v.(string); ok {
		o.vars = s
		return o
	}
	m := objectOption(v)
	if m == nil {
		return o
	}
	o.vars = stringOption(m, "vars", o.vars)
	o.args = stringOption(m, "args", o.args)
	o.caught = stringOption(m, "caughtErrors", o.caught)
	if p := stringOption(m, "varsIgnorePattern", ""); p != "" {
		o.varsIgnore, _ = regexp.Compile(p)
	}
	if p := stringOption(m, "argsIgnorePattern", ""); p != "" {
		o.argsIgnore, _ = regexp.Compile(p)
	}
	return o
}

// NoUnusedVars reports variables that are never read. Updating a variable
// (`x++`, `x += 1`) does not count as a read.
var NoUnusedVars = rule.Rule{
	Meta: rule.Meta{
		Type:        rule.TypeProblem,
		Description: "Disallow unused variables",
		Recommended: true,
		Messages: map[string]string{
			"unusedVar":   "'{{name}}' is defined but never used.",
			"assignedVar": "'{{name}}' is assigned a value but never used.",
		},
	},
	Create: func(ctx *rule.Context) rule.Listeners {
		opts := parseUnusedOptions(ctx.Option(0))
		return rule.Listeners{
			rule.ProgramExit: func(ast.Node) {
				m, ok := ctx.Scope().Get()
				if !ok {
					return
				}
				for _, s := range m.Scopes {
					reportUnused(ctx, s, opts)
				}
			},
		}
	},
}

func reportUnused(ctx *rule.Context, s *scope.Scope, opts unusedOptions) {
	if opts.vars == "local" && s.Kind == scope.KindGlobal {
		return
	}
	lastUsedParam := -1
	var params []*scope.Variable
	for _, v := range s.Variables {
		if isParam(v) {
			if used(v) {
				lastUsedParam = len(params)
			}
			params = append(params, v)
		}
	}

	paramIdx := 0
	for _, v := range s.Variables {
		if v.Implicit() || v.Exported {
			continue
		}
		if isParam(v) {
			idx := paramIdx
			paramIdx++
			switch {
			case used(v), opts.args == "none":
				continue
			case opts.args == "after-used" && idx < lastUsedParam:
				continue
			case opts.argsIgnore != nil && opts.argsIgnore.MatchString(v.Name):
				continue
			}
			report(ctx, v)
			continue
		}
		if used(v) || selfNamedExpression(v) {
			continue
		}
		if v.Defs[0].Kind == scope.DefCatchClause {
			if opts.caught == "none" {
				continue
			}
		} else if opts.varsIgnore != nil && opts.varsIgnore.MatchString(v.Name) {
			continue
		}
		report(ctx, v)
	}
}

func report(ctx *rule.Context, v *scope.Variable) {
	id := v.Defs[0].Name
	msg := "unusedVar"
	for _, ref := range v.References {
		if ref.IsWrite() {
			msg = "assignedVar"
			break
		}
	}
	ctx.Report(rule.Descriptor{Node: id, MessageID: msg, Data: map[string]any{"name": v.Name}})
}

func isParam(v *scope.Variable) bool {
	return len(v.Defs) > 0 && v.Defs[0].Kind == scope.DefParameter
}

func used(v *scope.Variable) bool {
	for _, ref := range v.References {
		if ref.IsRead() && !ref.IsWrite() {
			return true
		}
	}
	return false
}

// selfNamedExpression is the inner name of `function f() {}` or `class C {}`
// used as an expression.
func selfNamedExpression(v *scope.Variable) bool {
	for _, d := range v.Defs {
		switch d.Node.(type) {
		case *ast.FunctionExpression, *ast.ClassExpression:
			if d.Kind == scope.DefFunctionName || d.Kind == scope.DefClassName {
				return true
			}
		}
	}
	return false
}
