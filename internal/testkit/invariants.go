// Package testkit holds structural checks shared by parser and fuzz tests.
package testkit

import (
	"errors"
	"fmt"

	"fortio.org/safecast"

	"typedlint/internal/ast"
	"typedlint/internal/source"
)

// CheckSpanInvariants runs the span and ownership invariants on a parsed file:
// 1) the program span lies within the file content
// 2) every node span is well-formed, points at sf and lies inside its parent
// 3) every node is reached exactly once through keys
func CheckSpanInvariants(prog *ast.Program, keys ast.VisitorKeys, sf *source.File) error {
	if prog == nil || sf == nil {
		return errors.New("nil program or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	root := prog.Span()
	if root.File != sf.ID {
		return fmt.Errorf("program span points to different file id: got=%d want=%d", root.File, sf.ID)
	}
	if root.Start > root.End || root.End > lenContent {
		return fmt.Errorf("program span %v outside content of %d bytes", root, lenContent)
	}

	seen := make(map[ast.Node]struct{})
	return ast.Walk(prog, keys, ast.VisitorFuncs{
		EnterFn: func(n, parent ast.Node) error {
			if _, dup := seen[n]; dup {
				return fmt.Errorf("%s at %v is reachable twice", n.Type(), n.Span())
			}
			seen[n] = struct{}{}
			sp := n.Span()
			if sp.Start > sp.End {
				return fmt.Errorf("inverted %s span: %v", n.Type(), sp)
			}
			if sp.File != sf.ID {
				return fmt.Errorf("%s span file mismatch: got=%d want=%d", n.Type(), sp.File, sf.ID)
			}
			if parent != nil && !parent.Span().Contains(sp) {
				return fmt.Errorf("%s span %v is outside parent %s span %v", n.Type(), sp, parent.Type(), parent.Span())
			}
			return nil
		},
	})
}
