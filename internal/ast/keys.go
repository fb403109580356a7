package ast

import (
	"maps"
	"slices"
)

// VisitorKeys maps a node type to the ordered names of its child fields.
// Names are the json names of the struct fields.
type VisitorKeys map[string][]string

// Clone returns a deep copy.
func (vk VisitorKeys) Clone() VisitorKeys {
	out := make(VisitorKeys, len(vk))
	for t, keys := range vk {
		out[t] = slices.Clone(keys)
	}
	return out
}

// Types returns the node types in sorted order.
func (vk VisitorKeys) Types() []string {
	return slices.Sorted(maps.Keys(vk))
}

// Union merges later keys into earlier ones: later order wins and earlier
// keys missing from later are appended.
func Union(earlier, later []string) []string {
	out := slices.Clone(later)
	for _, k := range earlier {
		if !slices.Contains(out, k) {
			out = append(out, k)
		}
	}
	return out
}

var fnKeys = []string{"id", "params", "body"}

// BaseVisitorKeys returns the schema for every node type in this package.
func BaseVisitorKeys() VisitorKeys {
	vk := VisitorKeys{
		"Program":                  {"body"},
		"ExpressionStatement":      {"expression"},
		"BlockStatement":           {"body"},
		"EmptyStatement":           {},
		"DebuggerStatement":        {},
		"ReturnStatement":          {"argument"},
		"LabeledStatement":         {"label", "body"},
		"BreakStatement":           {"label"},
		"ContinueStatement":        {"label"},
		"IfStatement":              {"test", "consequent", "alternate"},
		"SwitchStatement":          {"discriminant", "cases"},
		"SwitchCase":               {"test", "consequent"},
		"ThrowStatement":           {"argument"},
		"TryStatement":             {"block", "handler", "finalizer"},
		"CatchClause":              {"param", "body"},
		"WhileStatement":           {"test", "body"},
		"DoWhileStatement":         {"body", "test"},
		"WithStatement":            {"object", "body"},
		"ForStatement":             {"init", "test", "update", "body"},
		"ForInStatement":           {"left", "right", "body"},
		"ForOfStatement":           {"left", "right", "body"},
		"VariableDeclaration":      {"declarations"},
		"VariableDeclarator":       {"id", "init"},
		"FunctionDeclaration":      fnKeys,
		"ClassDeclaration":         {"id", "superClass", "body"},
		"ClassBody":                {"body"},
		"MethodDefinition":         {"key", "value"},
		"PropertyDefinition":       {"key", "value"},
		"StaticBlock":              {"body"},
		"Identifier":               {},
		"PrivateIdentifier":        {},
		"Literal":                  {},
		"ThisExpression":           {},
		"Super":                    {},
		"ArrayExpression":          {"elements"},
		"ObjectExpression":         {"properties"},
		"Property":                 {"key", "value"},
		"FunctionExpression":       fnKeys,
		"ArrowFunctionExpression":  {"params", "body"},
		"ClassExpression":          {"id", "superClass", "body"},
		"TemplateElement":          {},
		"TemplateLiteral":          {"quasis", "expressions"},
		"TaggedTemplateExpression": {"tag", "quasi"},
		"MemberExpression":         {"object", "property"},
		"ChainExpression":          {"expression"},
		"CallExpression":           {"callee", "arguments"},
		"NewExpression":            {"callee", "arguments"},
		"ImportExpression":         {"source"},
		"MetaProperty":             {"meta", "property"},
		"SpreadElement":            {"argument"},
		"UnaryExpression":          {"argument"},
		"UpdateExpression":         {"argument"},
		"BinaryExpression":         {"left", "right"},
		"LogicalExpression":        {"left", "right"},
		"AssignmentExpression":     {"left", "right"},
		"ConditionalExpression":    {"test", "consequent", "alternate"},
		"SequenceExpression":       {"expressions"},
		"YieldExpression":          {"argument"},
		"AwaitExpression":          {"argument"},
		"ObjectPattern":            {"properties"},
		"ArrayPattern":             {"elements"},
		"RestElement":              {"argument"},
		"AssignmentPattern":        {"left", "right"},
		"ImportDeclaration":        {"specifiers", "source"},
		"ImportSpecifier":          {"imported", "local"},
		"ImportDefaultSpecifier":   {"local"},
		"ImportNamespaceSpecifier": {"local"},
		"ExportNamedDeclaration":   {"declaration", "specifiers", "source"},
		"ExportSpecifier":          {"local", "exported"},
		"ExportDefaultDeclaration": {"declaration"},
		"ExportAllDeclaration":     {"exported", "source"},
	}
	return vk.Clone()
}
