package ast

// ImportDeclaration.Specifiers holds *ImportSpecifier, *ImportDefaultSpecifier
// and *ImportNamespaceSpecifier.
type ImportDeclaration struct {
	StmtBase
	Specifiers []Node   `json:"specifiers"`
	Source     *Literal `json:"source"`
}

type ImportSpecifier struct {
	Base
	Imported Node        `json:"imported"` // *Identifier or string *Literal
	Local    *Identifier `json:"local"`
}

type ImportDefaultSpecifier struct {
	Base
	Local *Identifier `json:"local"`
}

type ImportNamespaceSpecifier struct {
	Base
	Local *Identifier `json:"local"`
}

type ExportNamedDeclaration struct {
	StmtBase
	Declaration Stmt               `json:"declaration"`
	Specifiers  []*ExportSpecifier `json:"specifiers"`
	Source      *Literal           `json:"source"`
}

type ExportSpecifier struct {
	Base
	Local    Node `json:"local"`
	Exported Node `json:"exported"`
}

// ExportDefaultDeclaration.Declaration is a declaration or an Expr.
type ExportDefaultDeclaration struct {
	StmtBase
	Declaration Node `json:"declaration"`
}

type ExportAllDeclaration struct {
	StmtBase
	Exported Node     `json:"exported"`
	Source   *Literal `json:"source"`
}

func (*ImportDeclaration) Type() string        { return "ImportDeclaration" }
func (*ImportSpecifier) Type() string          { return "ImportSpecifier" }
func (*ImportDefaultSpecifier) Type() string   { return "ImportDefaultSpecifier" }
func (*ImportNamespaceSpecifier) Type() string { return "ImportNamespaceSpecifier" }
func (*ExportNamedDeclaration) Type() string   { return "ExportNamedDeclaration" }
func (*ExportSpecifier) Type() string          { return "ExportSpecifier" }
func (*ExportDefaultDeclaration) Type() string { return "ExportDefaultDeclaration" }
func (*ExportAllDeclaration) Type() string     { return "ExportAllDeclaration" }
