package typedjs

import "typedlint/internal/ast"

// TSTypeAnnotation wraps a type written after `:`; its span starts at the colon.
type TSTypeAnnotation struct {
	ast.TypeBase
	TypeAnnotation ast.Node `json:"typeAnnotation"`
}

// TSKeyword is one of the predefined types (number, string, any ...).
type TSKeyword struct {
	ast.TypeBase
	// Keyword is the name as written, e.g. "number".
	Keyword string `json:"-"`
	typ     string
}

type TSTypeReference struct {
	ast.TypeBase
	TypeName      ast.Node                      `json:"typeName"` // *ast.Identifier | *TSQualifiedName
	TypeArguments *TSTypeParameterInstantiation `json:"typeArguments"`
}

type TSQualifiedName struct {
	ast.TypeBase
	Left  ast.Node        `json:"left"`
	Right *ast.Identifier `json:"right"`
}

type TSTypeParameterInstantiation struct {
	ast.TypeBase
	Params []ast.Node `json:"params"`
}

type TSArrayType struct {
	ast.TypeBase
	ElementType ast.Node `json:"elementType"`
}

type TSTupleType struct {
	ast.TypeBase
	ElementTypes []ast.Node `json:"elementTypes"`
}

type TSUnionType struct {
	ast.TypeBase
	Types []ast.Node `json:"types"`
}

type TSIntersectionType struct {
	ast.TypeBase
	Types []ast.Node `json:"types"`
}

// TSLiteralType.Literal is a *ast.Literal or a negated number (*ast.UnaryExpression).
type TSLiteralType struct {
	ast.TypeBase
	Literal ast.Node `json:"literal"`
}

type TSFunctionType struct {
	ast.TypeBase
	Params     []ast.Pattern     `json:"params"`
	ReturnType *TSTypeAnnotation `json:"returnType"`
}

type TSTypeLiteral struct {
	ast.TypeBase
	Members []ast.Node `json:"members"`
}

type TSPropertySignature struct {
	ast.TypeBase
	Key            ast.Expr          `json:"key"`
	TypeAnnotation *TSTypeAnnotation `json:"typeAnnotation"`
	Computed       bool              `json:"computed"`
	Optional       bool              `json:"optional"`
	Readonly       bool              `json:"readonly"`
}

type TSMethodSignature struct {
	ast.TypeBase
	Key        ast.Expr          `json:"key"`
	Params     []ast.Pattern     `json:"params"`
	ReturnType *TSTypeAnnotation `json:"returnType"`
	Computed   bool              `json:"computed"`
	Optional   bool              `json:"optional"`
}

// TSIndexSignature is `[key: K]: V`.
type TSIndexSignature struct {
	ast.TypeBase
	Parameters     []ast.Pattern     `json:"parameters"`
	TypeAnnotation *TSTypeAnnotation `json:"typeAnnotation"`
	Readonly       bool              `json:"readonly"`
}

// TSTypeOperator is `keyof T` or `readonly T[]`.
type TSTypeOperator struct {
	ast.TypeBase
	Operator       string   `json:"operator"`
	TypeAnnotation ast.Node `json:"typeAnnotation"`
}

// TSTypeQuery is `typeof x`.
type TSTypeQuery struct {
	ast.TypeBase
	ExprName ast.Node `json:"exprName"`
}

type TSTypeParameterDeclaration struct {
	ast.TypeBase
	Params []*TSTypeParameter `json:"params"`
}

type TSTypeParameter struct {
	ast.TypeBase
	Name       *ast.Identifier `json:"name"`
	Constraint ast.Node        `json:"constraint"`
	Default    ast.Node        `json:"default"`
}

type TSInterfaceDeclaration struct {
	ast.TypeDeclBase
	ID             *ast.Identifier             `json:"id"`
	TypeParameters *TSTypeParameterDeclaration `json:"typeParameters"`
	Extends        []*TSInterfaceHeritage      `json:"extends"`
	Body           *TSInterfaceBody            `json:"body"`
}

type TSInterfaceHeritage struct {
	ast.TypeBase
	Expression    ast.Expr                      `json:"expression"`
	TypeArguments *TSTypeParameterInstantiation `json:"typeArguments"`
}

type TSInterfaceBody struct {
	ast.TypeBase
	Body []ast.Node `json:"body"`
}

type TSTypeAliasDeclaration struct {
	ast.TypeDeclBase
	ID             *ast.Identifier             `json:"id"`
	TypeParameters *TSTypeParameterDeclaration `json:"typeParameters"`
	TypeAnnotation ast.Node                    `json:"typeAnnotation"`
}

// TSAsExpression is a value expression; only its type child lives in type space.
type TSAsExpression struct {
	ast.ExprBase
	Expression     ast.Expr `json:"expression"`
	TypeAnnotation ast.Node `json:"typeAnnotation"`
}

func (*TSTypeAnnotation) Type() string             { return "TSTypeAnnotation" }
func (k *TSKeyword) Type() string                  { return k.typ }
func (*TSTypeReference) Type() string              { return "TSTypeReference" }
func (*TSQualifiedName) Type() string              { return "TSQualifiedName" }
func (*TSTypeParameterInstantiation) Type() string { return "TSTypeParameterInstantiation" }
func (*TSArrayType) Type() string                  { return "TSArrayType" }
func (*TSTupleType) Type() string                  { return "TSTupleType" }
func (*TSUnionType) Type() string                  { return "TSUnionType" }
func (*TSIntersectionType) Type() string           { return "TSIntersectionType" }
func (*TSLiteralType) Type() string                { return "TSLiteralType" }
func (*TSFunctionType) Type() string               { return "TSFunctionType" }
func (*TSTypeLiteral) Type() string                { return "TSTypeLiteral" }
func (*TSPropertySignature) Type() string          { return "TSPropertySignature" }
func (*TSMethodSignature) Type() string            { return "TSMethodSignature" }
func (*TSIndexSignature) Type() string             { return "TSIndexSignature" }
func (*TSTypeOperator) Type() string               { return "TSTypeOperator" }
func (*TSTypeQuery) Type() string                  { return "TSTypeQuery" }
func (*TSTypeParameterDeclaration) Type() string   { return "TSTypeParameterDeclaration" }
func (*TSTypeParameter) Type() string              { return "TSTypeParameter" }
func (*TSInterfaceDeclaration) Type() string       { return "TSInterfaceDeclaration" }
func (*TSInterfaceHeritage) Type() string          { return "TSInterfaceHeritage" }
func (*TSInterfaceBody) Type() string              { return "TSInterfaceBody" }
func (*TSTypeAliasDeclaration) Type() string       { return "TSTypeAliasDeclaration" }
func (*TSAsExpression) Type() string               { return "TSAsExpression" }

// keywordTypes maps predefined type names to node types.
var keywordTypes = map[string]string{
	"any":       "TSAnyKeyword",
	"unknown":   "TSUnknownKeyword",
	"number":    "TSNumberKeyword",
	"string":    "TSStringKeyword",
	"boolean":   "TSBooleanKeyword",
	"bigint":    "TSBigIntKeyword",
	"symbol":    "TSSymbolKeyword",
	"object":    "TSObjectKeyword",
	"never":     "TSNeverKeyword",
	"undefined": "TSUndefinedKeyword",
	"void":      "TSVoidKeyword",
	"null":      "TSNullKeyword",
}

func typeNodeKeys() ast.VisitorKeys {
	vk := ast.VisitorKeys{
		"TSTypeAnnotation":             {"typeAnnotation"},
		"TSTypeReference":              {"typeName", "typeArguments"},
		"TSQualifiedName":              {"left", "right"},
		"TSTypeParameterInstantiation": {"params"},
		"TSArrayType":                  {"elementType"},
		"TSTupleType":                  {"elementTypes"},
		"TSUnionType":                  {"types"},
		"TSIntersectionType":           {"types"},
		"TSLiteralType":                {"literal"},
		"TSFunctionType":               {"params", "returnType"},
		"TSTypeLiteral":                {"members"},
		"TSPropertySignature":          {"key", "typeAnnotation"},
		"TSMethodSignature":            {"key", "params", "returnType"},
		"TSIndexSignature":             {"parameters", "typeAnnotation"},
		"TSTypeOperator":               {"typeAnnotation"},
		"TSTypeQuery":                  {"exprName"},
		"TSTypeParameterDeclaration":   {"params"},
		"TSTypeParameter":              {"name", "constraint", "default"},
	}
	for _, typ := range keywordTypes {
		vk[typ] = []string{}
	}
	return vk
}
