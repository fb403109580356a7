package typedjs

import (
	"typedlint/internal/ast"
	"typedlint/internal/grammar"
)

// Extension names.
const (
	TypesName       = "typedjs/types"
	AnnotationsName = "typedjs/annotations"
	InterfacesName  = "typedjs/interfaces"
)

// Types parses type expressions. It adds no syntax by itself; the other
// extensions call into it through Parser.ParseType.
func Types() *grammar.Extension {
	return &grammar.Extension{
		Name: TypesName,
		Productions: []grammar.Production{
			{Hook: grammar.HookType, Name: "type", Type: func(p grammar.Parser) (ast.Node, bool) {
				return parseType(p), true
			}},
		},
		Nodes: typeNodeKeys(),
	}
}

// Annotations adds `: T` after bindings, parameters and parameter lists,
// optional parameters (`x?`) and `expr as T`.
func Annotations() *grammar.Extension {
	return &grammar.Extension{
		Name:     AnnotationsName,
		Requires: []string{TypesName},
		Productions: []grammar.Production{
			{Hook: grammar.HookBindingAnnotation, Name: "binding-annotation", Annotate: annotateBinding},
			{Hook: grammar.HookParamAnnotation, Name: "param-annotation", Annotate: annotateParam},
			{Hook: grammar.HookReturnType, Name: "return-type", Annotate: annotateReturn},
			{Hook: grammar.HookExpressionSuffix, Name: "as-expression", Suffix: parseAs, Prec: asPrec},
		},
		Nodes: ast.VisitorKeys{
			"TSAsExpression": {"expression", "typeAnnotation"},
		},
		Augments: ast.VisitorKeys{
			"Identifier":              {"typeAnnotation"},
			"ObjectPattern":           {"typeAnnotation"},
			"ArrayPattern":            {"typeAnnotation"},
			"RestElement":             {"typeAnnotation"},
			"PropertyDefinition":      {"typeAnnotation"},
			"FunctionDeclaration":     {"returnType"},
			"FunctionExpression":      {"returnType"},
			"ArrowFunctionExpression": {"returnType"},
		},
	}
}

// Interfaces adds interface declarations and type aliases.
func Interfaces() *grammar.Extension {
	return &grammar.Extension{
		Name:     InterfacesName,
		Requires: []string{TypesName},
		Productions: []grammar.Production{
			{Hook: grammar.HookStatement, Name: "interface", Statement: parseInterface},
			{Hook: grammar.HookStatement, Name: "type-alias", Statement: parseTypeAlias},
		},
		Nodes: ast.VisitorKeys{
			"TSInterfaceDeclaration": {"id", "typeParameters", "extends", "body"},
			"TSInterfaceHeritage":    {"expression", "typeArguments"},
			"TSInterfaceBody":        {"body"},
			"TSTypeAliasDeclaration": {"id", "typeParameters", "typeAnnotation"},
		},
	}
}

// Extensions returns the whole TypedJS language in dependency order.
func Extensions() []*grammar.Extension {
	return []*grammar.Extension{Types(), Annotations(), Interfaces()}
}

// Grammar composes the base grammar with every TypedJS extension.
func Grammar() (*grammar.Grammar, error) {
	return grammar.Compose(nil, Extensions()...)
}
