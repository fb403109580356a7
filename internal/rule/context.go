package rule

import (
	"fmt"

	"typedlint/internal/ast"
	"typedlint/internal/diag"
	"typedlint/internal/scope"
	"typedlint/internal/source"
)

// Fix is an automatic correction attached to a report.
type Fix = diag.Fix

// Descriptor is what a rule reports. Either Node or Loc locates it; Loc
// wins when both are set. Message is used verbatim unless MessageID is set.
type Descriptor struct {
	Node      ast.Node
	Loc       *source.Span
	Message   string
	MessageID string
	Data      map[string]any
	Fix       *Fix
}

// Settings describe one rule invocation.
type Settings struct {
	ID       string
	Severity diag.Severity
	Options  []any
	Meta     Meta
	Source   *SourceCode
	Scope    scope.Handle
	Globals  map[string]bool
	Keys     ast.VisitorKeys
	// Report receives finished diagnostics.
	Report diag.Reporter
	// Ancestors returns the nodes enclosing the node being visited,
	// outermost first.
	Ancestors func() []ast.Node
}

// Context is handed to Create. It is only valid for the file it was made for.
type Context struct {
	s Settings
}

func NewContext(s Settings) *Context {
	if s.Options == nil {
		s.Options = s.Meta.DefaultOptions
	}
	return &Context{s: s}
}

// ID returns the rule id as configured, e.g. "no-var" or "typedjs/no-op".
func (c *Context) ID() string { return c.s.ID }

// Options returns the rule options from the configuration.
func (c *Context) Options() []any { return c.s.Options }

// Option returns the i-th option or nil.
func (c *Context) Option(i int) any {
	if i < 0 || i >= len(c.s.Options) {
		return nil
	}
	return c.s.Options[i]
}

func (c *Context) Source() *SourceCode { return c.s.Source }

func (c *Context) Scope() scope.Handle { return c.s.Scope }

// Globals returns predeclared global names with their writability.
func (c *Context) Globals() map[string]bool { return c.s.Globals }

// VisitorKeys returns the schema the file is walked with.
func (c *Context) VisitorKeys() ast.VisitorKeys { return c.s.Keys }

// Ancestors returns the enclosing nodes of the current node, outermost first.
func (c *Context) Ancestors() []ast.Node {
	if c.s.Ancestors == nil {
		return nil
	}
	return c.s.Ancestors()
}

// Parent returns the direct parent of the current node, or nil at the root.
func (c *Context) Parent() ast.Node {
	anc := c.Ancestors()
	if len(anc) == 0 {
		return nil
	}
	return anc[len(anc)-1]
}

// Report emits a diagnostic with the rule's id and configured severity.
// It panics on a descriptor that cannot be honoured; the engine turns the
// panic into a rule fault.
func (c *Context) Report(d Descriptor) {
	var sp source.Span
	switch {
	case d.Loc != nil:
		sp = *d.Loc
	case d.Node != nil && !ast.IsNil(d.Node):
		sp = d.Node.Span()
	default:
		panic(fmt.Errorf("rule %s: report needs a node or a location", c.s.ID))
	}

	msg := d.Message
	if d.MessageID != "" {
		tmpl, ok := c.s.Meta.Messages[d.MessageID]
		if !ok {
			panic(fmt.Errorf("rule %s: unknown messageId %q", c.s.ID, d.MessageID))
		}
		msg = tmpl
	}
	msg = Interpolate(msg, d.Data)

	b := diag.NewReportBuilder(c.s.Report, c.s.Severity, c.s.ID, sp, msg).WithMessageID(d.MessageID)
	if c.s.Source != nil {
		b.Locate(c.s.Source.File)
	}
	if d.Fix != nil && len(d.Fix.Edits) > 0 {
		if !c.s.Meta.Fixable {
			panic(fmt.Errorf("rule %s: fixable rules must set Meta.Fixable", c.s.ID))
		}
		b.WithFix(d.Fix.Title, d.Fix.Edits...)
	}
	b.Emit()
}
