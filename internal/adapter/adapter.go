// Package adapter is the parser surface the linter talks to: it binds a
// composed grammar to the parser and optionally runs scope analysis.
package adapter

import (
	"fmt"

	"typedlint/internal/ast"
	"typedlint/internal/grammar"
	"typedlint/internal/parser"
	"typedlint/internal/scope"
	"typedlint/internal/source"
)

// Options are the per-call language options.
type Options struct {
	parser.Options
	// Globals are predeclared names for scope analysis (name -> writable).
	Globals map[string]bool
}

// LintInput is what the rule engine consumes.
type LintInput struct {
	File        *source.File
	AST         *ast.Program
	VisitorKeys ast.VisitorKeys
	Scope       scope.Handle
}

// Adapter is immutable after construction and safe for concurrent use.
type Adapter struct {
	name   string
	parser *parser.Parser
	keys   ast.VisitorKeys
	scopes bool
}

type Option func(*Adapter)

// WithScopeAnalysis makes ParseForLinting attach a scope manager.
func WithScopeAnalysis() Option {
	return func(a *Adapter) { a.scopes = true }
}

// New binds g (nil means the base grammar) under name.
func New(name string, g *grammar.Grammar, opts ...Option) *Adapter {
	if g == nil {
		g = grammar.Base()
	}
	a := &Adapter{name: name, parser: parser.New(g), keys: g.VisitorKeys()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Adapter) Name() string { return a.name }

func (a *Adapter) Grammar() *grammar.Grammar { return a.parser.Grammar() }

// ScopeAnalysis reports whether ParseForLinting produces scopes.
func (a *Adapter) ScopeAnalysis() bool { return a.scopes }

// Parse returns the tree or a *parser.SyntaxError.
func (a *Adapter) Parse(file *source.File, opts Options) (*ast.Program, error) {
	return a.parser.Parse(file, opts.Options)
}

// ParseForLinting parses file and packages the tree with its schema.
func (a *Adapter) ParseForLinting(file *source.File, opts Options) (*LintInput, error) {
	prog, err := a.Parse(file, opts)
	if err != nil {
		return nil, err
	}
	in := &LintInput{File: file, AST: prog, VisitorKeys: a.keys.Clone()}
	if a.scopes {
		m, err := scope.Analyze(prog, a.keys, scope.Options{SourceType: opts.SourceType, Globals: opts.Globals})
		if err != nil {
			return nil, fmt.Errorf("%s: scope analysis: %w", a.name, err)
		}
		in.Scope = scope.Some(m)
	}
	return in, nil
}
