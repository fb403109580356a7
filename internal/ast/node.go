// Package ast defines the ESTree-shaped syntax tree produced by the parser.
//
// Every node type implements Node. Category interfaces (Stmt, Expr, Pattern,
// TypeNode) are closed through unexported marker methods; packages that add
// node types through grammar extensions embed the exported bases (StmtBase,
// ExprBase, TypeBase, ...) to join a category.
//
// The tree is an ownership tree: a node appears under exactly one parent.
// Generic traversal is driven by VisitorKeys, never by type switches, so
// walkers keep working when extensions introduce node types.
package ast

import (
	"typedlint/internal/source"
)

// Node is implemented by every syntax tree node.
type Node interface {
	// Type returns the ESTree type tag, e.g. "VariableDeclaration".
	Type() string
	Span() source.Span
}

// Base carries the byte range shared by all nodes.
type Base struct {
	Loc source.Span `json:"-"`
}

func (b *Base) Span() source.Span { return b.Loc }

// SetSpan is used by the parser when it finishes a node.
func (b *Base) SetSpan(sp source.Span) { b.Loc = sp }

type (
	// Stmt is a statement or declaration.
	Stmt interface {
		Node
		stmtNode()
	}
	// Expr is an expression.
	Expr interface {
		Node
		exprNode()
	}
	// Pattern is a binding or assignment target.
	Pattern interface {
		Node
		patternNode()
	}
	// TypeNode is a node that lives only in type space. Value-level
	// analyses (scope, no-undef) skip these subtrees.
	TypeNode interface {
		Node
		typeNode()
	}
)

type (
	StmtBase    struct{ Base }
	ExprBase    struct{ Base }
	PatternBase struct{ Base }
	TypeBase    struct{ Base }
	// TypeDeclBase is for statements that only declare types (interfaces, aliases).
	TypeDeclBase struct{ Base }
)

func (StmtBase) stmtNode()       {}
func (ExprBase) exprNode()       {}
func (PatternBase) patternNode() {}
func (TypeBase) typeNode()       {}

func (TypeDeclBase) stmtNode() {}
func (TypeDeclBase) typeNode() {}

// Annotatable is implemented by binding targets that can carry a type annotation.
type Annotatable interface {
	Node
	SetTypeAnnotation(ann Node)
	GetTypeAnnotation() Node
}

// Optionalizable is implemented by parameters that accept a `?` marker.
type Optionalizable interface {
	Node
	SetOptional(bool)
}

// Function is implemented by every function-like node.
type Function interface {
	Node
	FunctionParams() []Pattern
	SetReturnType(ann Node)
	GetReturnType() Node
}

// annotation is embedded by nodes with a typeAnnotation slot.
type annotation struct {
	TypeAnnotation Node `json:"typeAnnotation"`
}

func (a *annotation) SetTypeAnnotation(ann Node) { a.TypeAnnotation = ann }
func (a *annotation) GetTypeAnnotation() Node    { return a.TypeAnnotation }

// Comment is a source comment attached to Program.
type Comment struct {
	Kind  string // "Line" | "Block"
	Value string
	Loc   source.Span
}

// Program is the root of every tree.
type Program struct {
	Base
	Body       []Stmt    `json:"body"`
	SourceType string    `json:"sourceType"`
	Comments   []Comment `json:"-"`
}

func (*Program) Type() string { return "Program" }
