package diag

import (
	"typedlint/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

// TextEdit replaces Span with NewText. OldText, when set, guards the edit:
// it is applied only if the current text under Span matches.
type TextEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

type Fix struct {
	Title string
	Edits []TextEdit
}

// Diagnostic is one finding. RuleID is empty for parse errors, which are
// also Fatal.
type Diagnostic struct {
	RuleID    string
	Severity  Severity
	Message   string
	MessageID string
	Primary   source.Span
	// Start and End are resolved 1-based positions of Primary.
	Start source.LineCol
	End   source.LineCol
	Fatal bool
	Notes []Note
	Fix   *Fix
}

// Fixable reports whether the diagnostic carries an automatic fix.
func (d *Diagnostic) Fixable() bool {
	return d.Fix != nil && len(d.Fix.Edits) > 0
}
