// Package rule defines the contract every lint rule implements.
//
// A rule is a value: metadata plus a Create function. Create runs once per
// file and returns listeners keyed by event name; any per-file state lives
// in the closure. Events are node type names (pre-order), the same names
// with an ":exit" suffix (post-order), ProgramEnter and ProgramExit.
package rule

import (
	"typedlint/internal/ast"
)

// Type classifies what a rule checks.
type Type string

const (
	TypeProblem    Type = "problem"
	TypeSuggestion Type = "suggestion"
	TypeLayout     Type = "layout"
)

const (
	// ProgramEnter fires before any other event.
	ProgramEnter = "Program"
	// ProgramExit fires after every other event.
	ProgramExit = "Program:exit"
)

// Exit returns the post-order event name for a node type.
func Exit(nodeType string) string { return nodeType + ":exit" }

type Meta struct {
	Type        Type
	Description string
	// Fixable must be set for a rule to attach fixes to its reports.
	Fixable     bool
	Recommended bool
	// Messages maps message ids to templates with {{name}} placeholders.
	Messages map[string]string
	// DefaultOptions are used when the configuration gives none.
	DefaultOptions []any
	Deprecated     bool
}

// Listener is a visitor callback.
type Listener func(n ast.Node)

// Listeners maps event names to callbacks.
type Listeners map[string]Listener

type Rule struct {
	Meta   Meta
	Create func(ctx *Context) Listeners
}
