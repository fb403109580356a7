package grammar

import "fmt"

// Hook is a point in the base grammar where productions can be attached.
type Hook uint8

const (
	hookInvalid Hook = iota
	// HookStatement runs before the base statement parser.
	HookStatement
	// HookBindingAnnotation runs after a declared binding (variable, catch
	// parameter, class field).
	HookBindingAnnotation
	// HookParamAnnotation runs after a function parameter target.
	HookParamAnnotation
	// HookReturnType runs after a parameter list's closing paren.
	HookReturnType
	// HookType parses a type. ParseType fails when nothing is registered.
	HookType
	// HookExpressionSuffix runs after an operand inside binary expression
	// parsing, for postfix forms such as `x as T`.
	HookExpressionSuffix
	hookCount
)

var hookNames = [...]string{
	hookInvalid:           "invalid",
	HookStatement:         "Statement",
	HookBindingAnnotation: "BindingAnnotation",
	HookParamAnnotation:   "ParamAnnotation",
	HookReturnType:        "ReturnType",
	HookType:              "Type",
	HookExpressionSuffix:  "ExpressionSuffix",
}

func (h Hook) String() string {
	if h.Valid() {
		return hookNames[h]
	}
	return fmt.Sprintf("Hook(%d)", uint8(h))
}

// Valid reports whether h names a known hook point.
func (h Hook) Valid() bool { return h > hookInvalid && h < hookCount }
