package grammar

import (
	"fmt"

	"typedlint/internal/ast"
)

// Extension bundles productions with the node types they produce.
// Extensions are plain values built by factory functions and never mutated
// after construction.
type Extension struct {
	Name string
	// Requires names extensions that must be composed alongside this one.
	Requires    []string
	Productions []Production
	// Nodes introduces node types with their child keys.
	Nodes ast.VisitorKeys
	// Augments adds child keys to node types defined elsewhere.
	Augments ast.VisitorKeys
}

// CompositionError reports a malformed extension.
type CompositionError struct {
	Extension string
	Reason    string
}

func (e *CompositionError) Error() string {
	name := e.Extension
	if name == "" {
		name = "<unnamed>"
	}
	return fmt.Sprintf("grammar extension %s: %s", name, e.Reason)
}

func (ext *Extension) validate(base ast.VisitorKeys) error {
	fail := func(format string, args ...any) error {
		return &CompositionError{Extension: ext.Name, Reason: fmt.Sprintf(format, args...)}
	}
	if ext.Name == "" {
		return fail("missing name")
	}
	for i, pr := range ext.Productions {
		if pr.Name == "" {
			return fail("production #%d has no name", i)
		}
		if !pr.Hook.Valid() {
			return fail("production %q is bound to unknown hook %s", pr.Name, pr.Hook)
		}
		if !pr.hasBody() {
			return fail("production %q has no body for hook %s", pr.Name, pr.Hook)
		}
	}
	for typ, keys := range ext.Nodes {
		if keys == nil {
			return fail("node type %q has no visitor keys", typ)
		}
		if _, exists := base[typ]; exists {
			return fail("node type %q is a base type; use Augments", typ)
		}
	}
	for typ, keys := range ext.Augments {
		if len(keys) == 0 {
			return fail("augment of %q adds no keys", typ)
		}
	}
	return nil
}
