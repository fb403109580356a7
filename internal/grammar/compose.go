package grammar

import (
	"fmt"
	"slices"

	"typedlint/internal/ast"
)

// Grammar is an immutable composition of the base grammar and extensions.
// It is safe for concurrent use.
type Grammar struct {
	exts  []*Extension
	keys  ast.VisitorKeys
	hooks [hookCount][]Production // in try order: latest registration first
}

// Base returns the grammar with no extensions.
func Base() *Grammar {
	return &Grammar{keys: ast.BaseVisitorKeys()}
}

// Compose layers exts onto base (nil means Base()). Conflicts resolve in
// favour of the later extension; see the package documentation. Composing
// an extension that is already present is a no-op apart from moving it to
// the end of the order.
func Compose(base *Grammar, exts ...*Extension) (*Grammar, error) {
	var list []*Extension
	if base != nil {
		list = slices.Clone(base.exts)
	}
	for _, ext := range exts {
		if ext == nil {
			return nil, &CompositionError{Reason: "nil extension"}
		}
		list = slices.DeleteFunc(list, func(e *Extension) bool { return e.Name == ext.Name })
		list = append(list, ext)
	}
	return build(list)
}

func build(exts []*Extension) (*Grammar, error) {
	baseKeys := ast.BaseVisitorKeys()
	g := &Grammar{exts: exts, keys: baseKeys.Clone()}

	names := make(map[string]bool, len(exts))
	for _, ext := range exts {
		names[ext.Name] = true
	}
	for _, ext := range exts {
		if err := ext.validate(baseKeys); err != nil {
			return nil, err
		}
		for _, req := range ext.Requires {
			if !names[req] {
				return nil, &CompositionError{Extension: ext.Name, Reason: fmt.Sprintf("requires extension %q", req)}
			}
		}
		for typ, keys := range ext.Nodes {
			g.keys[typ] = ast.Union(g.keys[typ], keys)
		}
	}
	// augments apply after every node type is known
	for _, ext := range exts {
		for typ, keys := range ext.Augments {
			existing, ok := g.keys[typ]
			if !ok {
				return nil, &CompositionError{Extension: ext.Name, Reason: fmt.Sprintf("augments unknown node type %q", typ)}
			}
			g.keys[typ] = augment(existing, keys)
		}
	}

	for _, ext := range exts {
		for _, pr := range ext.Productions {
			list := slices.DeleteFunc(g.hooks[pr.Hook], func(old Production) bool { return old.Name == pr.Name })
			g.hooks[pr.Hook] = append([]Production{pr}, list...)
		}
	}
	return g, nil
}

// VisitorKeys returns a copy of the merged schema.
func (g *Grammar) VisitorKeys() ast.VisitorKeys {
	return g.keys.Clone()
}

// HasNodeType reports whether the schema knows typ.
func (g *Grammar) HasNodeType(typ string) bool {
	_, ok := g.keys[typ]
	return ok
}

// Productions returns the productions of h in the order the parser tries them.
func (g *Grammar) Productions(h Hook) []Production {
	if !h.Valid() {
		return nil
	}
	return g.hooks[h]
}

// Extensions returns the composed extension names in order.
func (g *Grammar) Extensions() []string {
	out := make([]string, len(g.exts))
	for i, ext := range g.exts {
		out[i] = ext.Name
	}
	return out
}

// Has reports whether the named extension is part of g.
func (g *Grammar) Has(name string) bool {
	return slices.ContainsFunc(g.exts, func(e *Extension) bool { return e.Name == name })
}

// trailingKeys hold what follows a node's head in source: a function's
// body, a field's initializer.
var trailingKeys = []string{"body", "value"}

// augment inserts keys ahead of a trailing body or value, so `(a): T {}`
// is walked params, returnType, body.
func augment(existing, keys []string) []string {
	keys = slices.DeleteFunc(slices.Clone(keys), func(k string) bool { return slices.Contains(existing, k) })
	at := len(existing)
	if at > 0 && slices.Contains(trailingKeys, existing[at-1]) {
		at--
	}
	return slices.Insert(slices.Clone(existing), at, keys...)
}
