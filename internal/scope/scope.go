// Package scope builds lexical scopes, variables and references for a
// syntax tree. Type-only subtrees (ast.TypeNode) are not part of value space
// and are skipped.
package scope

import (
	"typedlint/internal/ast"
)

// Kind enumerates supported scope categories.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindGlobal
	KindModule
	KindFunction
	KindBlock
	KindFor
	KindSwitch
	KindCatch
	KindClass
	KindWith
)

func (k Kind) String() string {
	switch k {
	case KindGlobal:
		return "global"
	case KindModule:
		return "module"
	case KindFunction:
		return "function"
	case KindBlock:
		return "block"
	case KindFor:
		return "for"
	case KindSwitch:
		return "switch"
	case KindCatch:
		return "catch"
	case KindClass:
		return "class"
	case KindWith:
		return "with"
	default:
		return "invalid"
	}
}

// DefKind classifies how a variable was introduced.
type DefKind uint8

const (
	DefInvalid DefKind = iota
	DefVariable
	DefFunctionName
	DefClassName
	DefParameter
	DefCatchClause
	DefImportBinding
)

func (k DefKind) String() string {
	switch k {
	case DefVariable:
		return "Variable"
	case DefFunctionName:
		return "FunctionName"
	case DefClassName:
		return "ClassName"
	case DefParameter:
		return "Parameter"
	case DefCatchClause:
		return "CatchClause"
	case DefImportBinding:
		return "ImportBinding"
	default:
		return "Invalid"
	}
}

// Definition records one declaration site of a variable.
type Definition struct {
	Kind DefKind
	Name *ast.Identifier
	// Node is the declaring construct: the declarator, function, class,
	// catch clause or import specifier.
	Node ast.Node
	// DeclKind is var, let or const for DefVariable.
	DeclKind string
}

// Variable is a name bound in a scope. Variables without definitions are
// implicit: predeclared globals and `arguments`.
type Variable struct {
	Name       string
	Scope      *Scope
	Defs       []Definition
	References []*Reference
	// Writable is meaningful for predeclared globals only.
	Writable bool
	Exported bool
}

// Implicit reports whether the variable has no declaration in the source.
func (v *Variable) Implicit() bool { return len(v.Defs) == 0 }

// Identifiers returns the declaring identifiers in source order.
func (v *Variable) Identifiers() []*ast.Identifier {
	out := make([]*ast.Identifier, 0, len(v.Defs))
	for _, d := range v.Defs {
		out = append(out, d.Name)
	}
	return out
}

// Access flags for a reference.
type Access uint8

const (
	Read Access = 1 << iota
	Write
)

// Reference is one use of a name in value space.
type Reference struct {
	Identifier *ast.Identifier
	From       *Scope
	Resolved   *Variable
	Access     Access
	// Init marks the write performed by a declaration initializer.
	Init bool
}

func (r *Reference) IsRead() bool  { return r.Access&Read != 0 }
func (r *Reference) IsWrite() bool { return r.Access&Write != 0 }

// Scope models a lexical scope with a parent-child hierarchy.
type Scope struct {
	Kind     Kind
	Block    ast.Node
	Parent   *Scope
	Children []*Scope
	// Variables in declaration order; Set indexes them by name.
	Variables  []*Variable
	Set        map[string]*Variable
	References []*Reference
	// Through holds references that could not be resolved in this scope
	// and are passed to the parent. For the global scope it is the list of
	// unresolved references.
	Through []*Reference

	pending []*Reference
}

func newScope(kind Kind, block ast.Node, parent *Scope) *Scope {
	s := &Scope{Kind: kind, Block: block, Parent: parent, Set: make(map[string]*Variable)}
	if parent != nil {
		parent.Children = append(parent.Children, s)
	}
	return s
}

// Lookup resolves name from s outwards.
func (s *Scope) Lookup(name string) *Variable {
	for cur := s; cur != nil; cur = cur.Parent {
		if v, ok := cur.Set[name]; ok {
			return v
		}
	}
	return nil
}

// VariableScope returns the nearest scope that receives `var` declarations.
func (s *Scope) VariableScope() *Scope {
	cur := s
	for cur.Parent != nil && cur.Kind != KindFunction && cur.Kind != KindModule {
		cur = cur.Parent
	}
	return cur
}

func (s *Scope) declare(name string) *Variable {
	if v, ok := s.Set[name]; ok {
		return v
	}
	v := &Variable{Name: name, Scope: s}
	s.Set[name] = v
	s.Variables = append(s.Variables, v)
	return v
}

// close resolves this scope's pending references; unresolved ones move to
// the parent's pending list.
func (s *Scope) close() {
	for _, ref := range s.pending {
		if v, ok := s.Set[ref.Identifier.Name]; ok {
			ref.Resolved = v
			v.References = append(v.References, ref)
			continue
		}
		s.Through = append(s.Through, ref)
		if s.Parent != nil {
			s.Parent.pending = append(s.Parent.pending, ref)
		}
	}
	s.pending = nil
}

// Manager owns every scope built for one program.
type Manager struct {
	Global *Scope
	Scopes []*Scope
	nodes  map[ast.Node][]*Scope
	decls  map[ast.Node][]*Variable
}

// Acquire returns the scope created by node. With several scopes on one
// node (a function and its name scope) inner selects the innermost.
func (m *Manager) Acquire(node ast.Node, inner bool) *Scope {
	list := m.nodes[node]
	if len(list) == 0 {
		return nil
	}
	if inner {
		return list[len(list)-1]
	}
	return list[0]
}

// DeclaredVariables returns the variables introduced by node
// (a declarator, function, class, catch clause or import specifier).
func (m *Manager) DeclaredVariables(node ast.Node) []*Variable {
	return m.decls[node]
}

// Innermost returns the deepest scope whose block contains offset.
func (m *Manager) Innermost(offset uint32) *Scope {
	cur := m.Global
	for {
		next := (*Scope)(nil)
		for _, child := range cur.Children {
			sp := child.Block.Span()
			if sp.Start <= offset && offset < sp.End {
				next = child
				break
			}
		}
		if next == nil {
			return cur
		}
		cur = next
	}
}
