// Package engine runs rules over one parsed file: a single depth-first walk
// driven by the visitor-key schema, with listeners dispatched in rule
// registration order.
package engine

import (
	"errors"
	"fmt"
	"runtime/debug"
	"slices"
	"time"

	"typedlint/internal/adapter"
	"typedlint/internal/ast"
	"typedlint/internal/diag"
	"typedlint/internal/rule"
	"typedlint/internal/source"
)

// Active is a rule enabled for a run.
type Active struct {
	ID       string
	Rule     *rule.Rule
	Severity diag.Severity
	Options  []any
}

// RuleFault is a panic raised inside a rule's Create or a listener.
type RuleFault struct {
	RuleID   string
	NodeType string
	Span     source.Span
	Cause    error
	Stack    []byte
}

func (e *RuleFault) Error() string {
	if e.NodeType == "" {
		return fmt.Sprintf("rule %s crashed while starting: %v", e.RuleID, e.Cause)
	}
	return fmt.Sprintf("rule %s crashed on %s at %s: %v", e.RuleID, e.NodeType, e.Span, e.Cause)
}

func (e *RuleFault) Unwrap() error { return e.Cause }

// UnknownNodeError is returned when the tree holds a node type the schema
// does not know.
type UnknownNodeError = ast.UnknownNodeError

// Options tune a run.
type Options struct {
	Globals map[string]bool
	// Observer, when set, is told about every dispatched event.
	Observer func(ruleID, event string)
	// RuleTime, when set, receives the time each listener call took.
	RuleTime func(ruleID string, d time.Duration)
}

type handler struct {
	ruleID string
	fn     rule.Listener
}

// Run lints input with rules in order. On a rule fault the diagnostics
// collected so far are returned together with the *RuleFault.
func Run(input *adapter.LintInput, rules []Active, opts Options) ([]diag.Diagnostic, error) {
	bag := diag.NewBag()
	src := rule.NewSourceCode(input.File, input.AST)

	var path []ast.Node
	ancestors := func() []ast.Node {
		if len(path) < 2 {
			return nil
		}
		return slices.Clone(path[:len(path)-1])
	}

	table := make(map[string][]handler)
	for _, r := range rules {
		ctx := rule.NewContext(rule.Settings{
			ID:       r.ID,
			Severity: r.Severity,
			Options:  r.Options,
			Meta:     r.Rule.Meta,
			Source:   src,
			Scope:    input.Scope,
			Globals:  opts.Globals,
			Keys:     input.VisitorKeys,
			Report:   diag.BagReporter{Bag: bag},

			Ancestors: ancestors,
		})
		var listeners rule.Listeners
		if err := guard(r.ID, nil, func() { listeners = r.Rule.Create(ctx) }); err != nil {
			return bag.Items(), err
		}
		for event, fn := range listeners {
			if fn == nil {
				continue
			}
			table[event] = append(table[event], handler{ruleID: r.ID, fn: fn})
		}
	}
	dispatch := func(event string, n ast.Node) error {
		for _, h := range table[event] {
			if opts.Observer != nil {
				opts.Observer(h.ruleID, event)
			}
			var began time.Time
			if opts.RuleTime != nil {
				began = time.Now()
			}
			err := guard(h.ruleID, n, func() { h.fn(n) })
			if opts.RuleTime != nil {
				opts.RuleTime(h.ruleID, time.Since(began))
			}
			if err != nil {
				return err
			}
		}
		return nil
	}

	err := ast.Walk(input.AST, input.VisitorKeys, ast.VisitorFuncs{
		EnterFn: func(n, _ ast.Node) error {
			path = append(path, n)
			return dispatch(n.Type(), n)
		},
		LeaveFn: func(n, _ ast.Node) error {
			err := dispatch(rule.Exit(n.Type()), n)
			path = path[:len(path)-1]
			return err
		},
	})
	bag.Sort()
	if err != nil {
		var fault *RuleFault
		if errors.As(err, &fault) {
			return bag.Items(), fault
		}
		return bag.Items(), err
	}
	return bag.Items(), nil
}

// guard runs fn and converts a panic into a *RuleFault.
func guard(ruleID string, n ast.Node, fn func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		cause, ok := r.(error)
		if !ok {
			cause = fmt.Errorf("%v", r)
		}
		fault := &RuleFault{RuleID: ruleID, Cause: cause, Stack: debug.Stack()}
		if n != nil {
			fault.NodeType = n.Type()
			fault.Span = n.Span()
		}
		err = fault
	}()
	fn()
	return nil
}
