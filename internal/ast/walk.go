package ast

import (
	"errors"
	"fmt"

	"typedlint/internal/source"
)

// SkipChildren may be returned from Visitor.Enter to skip a subtree.
// Leave is still called for the node.
var SkipChildren = errors.New("skip children")

// UnknownNodeError reports a node type missing from the visitor-key schema.
type UnknownNodeError struct {
	NodeType string
	Span     source.Span
}

func (e *UnknownNodeError) Error() string {
	return fmt.Sprintf("node type %q has no visitor keys (at %s)", e.NodeType, e.Span)
}

// Visitor receives enter and leave events during Walk.
type Visitor interface {
	Enter(n, parent Node) error
	Leave(n, parent Node) error
}

// Walk traverses root depth-first using keys only: Enter in pre-order, Leave
// in post-order. A node whose type has no schema entry stops the walk with
// *UnknownNodeError.
func Walk(root Node, keys VisitorKeys, v Visitor) error {
	if isNilNode(root) {
		return nil
	}
	return walk(root, nil, keys, v)
}

func walk(n, parent Node, keys VisitorKeys, v Visitor) error {
	childKeys, ok := keys[n.Type()]
	if !ok {
		return &UnknownNodeError{NodeType: n.Type(), Span: n.Span()}
	}
	err := v.Enter(n, parent)
	switch {
	case errors.Is(err, SkipChildren):
	case err != nil:
		return err
	default:
		for _, key := range childKeys {
			for _, child := range Children(n, key) {
				if err := walk(child, n, keys, v); err != nil {
					return err
				}
			}
		}
	}
	return v.Leave(n, parent)
}

// VisitorFuncs adapts plain functions to Visitor. Nil functions are skipped.
type VisitorFuncs struct {
	EnterFn func(n, parent Node) error
	LeaveFn func(n, parent Node) error
}

func (f VisitorFuncs) Enter(n, parent Node) error {
	if f.EnterFn == nil {
		return nil
	}
	return f.EnterFn(n, parent)
}

func (f VisitorFuncs) Leave(n, parent Node) error {
	if f.LeaveFn == nil {
		return nil
	}
	return f.LeaveFn(n, parent)
}

// Inspect calls fn for every node in pre-order; returning false skips the subtree.
func Inspect(root Node, keys VisitorKeys, fn func(n Node) bool) error {
	return Walk(root, keys, VisitorFuncs{EnterFn: func(n, _ Node) error {
		if !fn(n) {
			return SkipChildren
		}
		return nil
	}})
}
