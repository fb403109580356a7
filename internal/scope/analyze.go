package scope

import (
	"maps"
	"slices"

	"typedlint/internal/ast"
)

// Options control what the analysis assumes about the program.
type Options struct {
	// SourceType is module, script or commonjs; empty follows Program.SourceType.
	SourceType string
	// Globals maps predeclared names to writability.
	Globals map[string]bool
}

type analyzer struct {
	keys ast.VisitorKeys
	m    *Manager
	cur  *Scope
	err  error
}

// Analyze builds the scope tree of prog. Nodes are traversed with keys; a
// node type missing from keys fails with *ast.UnknownNodeError.
func Analyze(prog *ast.Program, keys ast.VisitorKeys, opts Options) (*Manager, error) {
	a := &analyzer{
		keys: keys,
		m: &Manager{
			nodes: make(map[ast.Node][]*Scope),
			decls: make(map[ast.Node][]*Variable),
		},
	}
	global := a.open(KindGlobal, prog)
	a.m.Global = global
	for _, name := range slices.Sorted(maps.Keys(opts.Globals)) {
		global.declare(name).Writable = opts.Globals[name]
	}

	sourceType := opts.SourceType
	if sourceType == "" {
		sourceType = prog.SourceType
	}
	if sourceType == "module" {
		a.open(KindModule, prog)
	}
	a.statements(prog.Body)
	for a.cur != nil {
		a.close()
	}
	if a.err != nil {
		return nil, a.err
	}
	return a.m, nil
}

func (a *analyzer) open(kind Kind, block ast.Node) *Scope {
	s := newScope(kind, block, a.cur)
	a.cur = s
	a.m.Scopes = append(a.m.Scopes, s)
	a.m.nodes[block] = append(a.m.nodes[block], s)
	return s
}

func (a *analyzer) close() {
	a.cur.close()
	a.cur = a.cur.Parent
}

func (a *analyzer) define(s *Scope, id *ast.Identifier, def Definition) *Variable {
	def.Name = id
	v := s.declare(id.Name)
	v.Defs = append(v.Defs, def)
	if def.Node != nil {
		a.m.decls[def.Node] = append(a.m.decls[def.Node], v)
	}
	return v
}

func (a *analyzer) reference(id *ast.Identifier, access Access, init bool) {
	ref := &Reference{Identifier: id, From: a.cur, Access: access, Init: init}
	a.cur.References = append(a.cur.References, ref)
	a.cur.pending = append(a.cur.pending, ref)
}

func (a *analyzer) statements(list []ast.Stmt) {
	for _, st := range list {
		a.visit(st)
	}
}

// children is the schema-driven fallback for nodes without scope semantics.
func (a *analyzer) children(n ast.Node) {
	keys, ok := a.keys[n.Type()]
	if !ok {
		if a.err == nil {
			a.err = &ast.UnknownNodeError{NodeType: n.Type(), Span: n.Span()}
		}
		return
	}
	for _, key := range keys {
		for _, child := range ast.Children(n, key) {
			a.visit(child)
		}
	}
}

func (a *analyzer) visit(n ast.Node) {
	if ast.IsNil(n) || a.err != nil {
		return
	}
	if _, ok := n.(ast.TypeNode); ok {
		return
	}
	switch n := n.(type) {
	case *ast.Identifier:
		a.reference(n, Read, false)
	case *ast.VariableDeclaration:
		a.variableDeclaration(n)
	case *ast.FunctionDeclaration:
		if n.ID != nil {
			a.define(a.cur, n.ID, Definition{Kind: DefFunctionName, Node: n})
		}
		a.function(n, n.ID, n.Params, n.Body, false, false)
	case *ast.FunctionExpression:
		a.function(n, n.ID, n.Params, n.Body, false, true)
	case *ast.ArrowFunctionExpression:
		a.function(n, nil, n.Params, n.Body, true, false)
	case *ast.ClassDeclaration:
		if n.ID != nil {
			a.define(a.cur, n.ID, Definition{Kind: DefClassName, Node: n})
		}
		a.class(n, nil, n.SuperClass, n.Body)
	case *ast.ClassExpression:
		a.class(n, n.ID, n.SuperClass, n.Body)
	case *ast.BlockStatement:
		a.open(KindBlock, n)
		a.statements(n.Body)
		a.close()
	case *ast.StaticBlock:
		a.open(KindFunction, n)
		a.statements(n.Body)
		a.close()
	case *ast.ForStatement:
		scoped := lexical(n.Init)
		if scoped {
			a.open(KindFor, n)
		}
		a.visit(n.Init)
		a.visit(n.Test)
		a.visit(n.Update)
		a.visit(n.Body)
		if scoped {
			a.close()
		}
	case *ast.ForInStatement:
		a.forInOf(n, n.Left, n.Right, n.Body)
	case *ast.ForOfStatement:
		a.forInOf(n, n.Left, n.Right, n.Body)
	case *ast.SwitchStatement:
		a.visit(n.Discriminant)
		a.open(KindSwitch, n)
		for _, c := range n.Cases {
			a.visit(c.Test)
			a.statements(c.Consequent)
		}
		a.close()
	case *ast.CatchClause:
		a.open(KindCatch, n)
		if n.Param != nil {
			a.bindings(n.Param, func(id *ast.Identifier) {
				a.define(a.cur, id, Definition{Kind: DefCatchClause, Node: n})
			})
		}
		a.visit(n.Body)
		a.close()
	case *ast.WithStatement:
		a.visit(n.Object)
		a.open(KindWith, n)
		a.visit(n.Body)
		a.close()
	case *ast.LabeledStatement:
		a.visit(n.Body)
	case *ast.BreakStatement, *ast.ContinueStatement, *ast.MetaProperty, *ast.ExportAllDeclaration:
	case *ast.MemberExpression:
		a.visit(n.Object)
		if n.Computed {
			a.visit(n.Property)
		}
	case *ast.Property:
		if n.Computed {
			a.visit(n.Key)
		}
		a.visit(n.Value)
	case *ast.MethodDefinition:
		if n.Computed {
			a.visit(n.Key)
		}
		a.visit(n.Value)
	case *ast.PropertyDefinition:
		if n.Computed {
			a.visit(n.Key)
		}
		a.visit(n.Value)
	case *ast.AssignmentExpression:
		access := Write
		if n.Operator != "=" {
			access |= Read
		}
		a.assignTarget(n.Left, access)
		a.visit(n.Right)
	case *ast.UpdateExpression:
		if id, ok := n.Argument.(*ast.Identifier); ok {
			a.reference(id, Read|Write, false)
			return
		}
		a.visit(n.Argument)
	case *ast.ImportDeclaration:
		for _, spec := range n.Specifiers {
			if local := importLocal(spec); local != nil {
				a.define(a.cur, local, Definition{Kind: DefImportBinding, Node: spec})
			}
		}
	case *ast.ExportNamedDeclaration:
		if n.Declaration != nil {
			a.visit(n.Declaration)
			a.markExported(n.Declaration)
		}
		if n.Source == nil {
			for _, spec := range n.Specifiers {
				if id, ok := spec.Local.(*ast.Identifier); ok {
					a.reference(id, Read, false)
				}
			}
		}
	case *ast.ExportDefaultDeclaration:
		a.visit(n.Declaration)
		a.markExported(n.Declaration)
	default:
		a.children(n)
	}
}

func lexical(n ast.Node) bool {
	decl, ok := n.(*ast.VariableDeclaration)
	return ok && decl.Kind != "var"
}

func importLocal(spec ast.Node) *ast.Identifier {
	switch s := spec.(type) {
	case *ast.ImportSpecifier:
		return s.Local
	case *ast.ImportDefaultSpecifier:
		return s.Local
	case *ast.ImportNamespaceSpecifier:
		return s.Local
	}
	return nil
}

func (a *analyzer) markExported(decl ast.Node) {
	var nodes []ast.Node
	switch d := decl.(type) {
	case *ast.VariableDeclaration:
		for _, v := range d.Declarations {
			nodes = append(nodes, v)
		}
	case *ast.FunctionDeclaration, *ast.ClassDeclaration:
		nodes = append(nodes, d)
	}
	for _, n := range nodes {
		for _, v := range a.m.decls[n] {
			v.Exported = true
		}
	}
}

func (a *analyzer) variableDeclaration(n *ast.VariableDeclaration) {
	target := a.cur
	if n.Kind == "var" {
		target = a.cur.VariableScope()
	}
	for _, d := range n.Declarations {
		def := Definition{Kind: DefVariable, Node: d, DeclKind: n.Kind}
		a.bindings(d.ID, func(id *ast.Identifier) {
			a.define(target, id, def)
			if d.Init != nil {
				a.reference(id, Write, true)
			}
		})
		a.visit(d.Init)
	}
}

func (a *analyzer) forInOf(n ast.Node, left ast.Node, right ast.Expr, body ast.Stmt) {
	scoped := lexical(left)
	if scoped {
		a.open(KindFor, n)
	}
	if decl, ok := left.(*ast.VariableDeclaration); ok {
		target := a.cur
		if decl.Kind == "var" {
			target = a.cur.VariableScope()
		}
		for _, d := range decl.Declarations {
			def := Definition{Kind: DefVariable, Node: d, DeclKind: decl.Kind}
			a.bindings(d.ID, func(id *ast.Identifier) {
				a.define(target, id, def)
				a.reference(id, Write, false)
			})
		}
	} else if p, ok := left.(ast.Pattern); ok {
		a.assignTarget(p, Write)
	}
	a.visit(right)
	a.visit(body)
	if scoped {
		a.close()
	}
}

func (a *analyzer) function(n ast.Node, id *ast.Identifier, params []ast.Pattern, body ast.Node, arrow, named bool) {
	a.open(KindFunction, n)
	if named && id != nil {
		a.define(a.cur, id, Definition{Kind: DefFunctionName, Node: n})
	}
	if !arrow {
		a.cur.declare("arguments")
	}
	for _, p := range params {
		a.bindings(p, func(id *ast.Identifier) {
			a.define(a.cur, id, Definition{Kind: DefParameter, Node: n})
		})
	}
	if block, ok := body.(*ast.BlockStatement); ok {
		a.statements(block.Body)
	} else {
		a.visit(body)
	}
	a.close()
}

func (a *analyzer) class(n ast.Node, id *ast.Identifier, super ast.Expr, body *ast.ClassBody) {
	a.visit(super)
	a.open(KindClass, n)
	if id != nil {
		a.define(a.cur, id, Definition{Kind: DefClassName, Node: n})
	}
	if body != nil {
		for _, member := range body.Body {
			a.visit(member)
		}
	}
	a.close()
}

// bindings calls bind for every identifier a binding pattern declares and
// visits default values and computed keys as expressions.
func (a *analyzer) bindings(p ast.Node, bind func(*ast.Identifier)) {
	switch p := p.(type) {
	case *ast.Identifier:
		bind(p)
	case *ast.AssignmentPattern:
		a.bindings(p.Left, bind)
		a.visit(p.Right)
	case *ast.RestElement:
		a.bindings(p.Argument, bind)
	case *ast.ArrayPattern:
		for _, el := range p.Elements {
			if !ast.IsNil(el) {
				a.bindings(el, bind)
			}
		}
	case *ast.ObjectPattern:
		for _, prop := range p.Properties {
			switch prop := prop.(type) {
			case *ast.Property:
				if prop.Computed {
					a.visit(prop.Key)
				}
				a.bindings(prop.Value, bind)
			case *ast.RestElement:
				a.bindings(prop.Argument, bind)
			}
		}
	default:
		// member expressions in assignment targets
		a.visit(p)
	}
}

func (a *analyzer) assignTarget(p ast.Pattern, access Access) {
	a.bindings(p, func(id *ast.Identifier) {
		a.reference(id, access, false)
	})
}
