package grammar

import (
	"typedlint/internal/ast"
)

// Production is one grammar rule contributed at a hook. Exactly the body
// matching Hook must be set:
//
//	HookStatement                      Statement
//	HookType                           Type
//	HookBindingAnnotation, HookParamAnnotation, HookReturnType   Annotate
//	HookExpressionSuffix               Suffix (with Prec)
//
// Bodies report false when they do not apply; the parser then rewinds
// whatever they consumed and tries the next production.
type Production struct {
	Hook Hook
	Name string

	Statement func(p Parser) (ast.Stmt, bool)
	Type      func(p Parser) (ast.Node, bool)
	Annotate  func(p Parser, target ast.Node) bool
	Suffix    func(p Parser, left ast.Expr) (ast.Expr, bool)
	// Prec is the binding power of a suffix, on the scale of binary operators.
	Prec int
}

func (pr Production) hasBody() bool {
	switch pr.Hook {
	case HookStatement:
		return pr.Statement != nil
	case HookType:
		return pr.Type != nil
	case HookBindingAnnotation, HookParamAnnotation, HookReturnType:
		return pr.Annotate != nil
	case HookExpressionSuffix:
		return pr.Suffix != nil && pr.Prec > 0
	default:
		return false
	}
}
