package diag

import "typedlint/internal/source"

// Reporter receives finished diagnostics from rules.
type Reporter interface {
	Report(d Diagnostic)
}

// ReporterFunc adapts a function to Reporter. A nil func drops everything.
type ReporterFunc func(Diagnostic)

func (f ReporterFunc) Report(d Diagnostic) {
	if f != nil {
		f(d)
	}
}

// BagReporter collects into a Bag; the engine uses one per file.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag != nil {
		r.Bag.Add(d)
	}
}

func New(sev Severity, ruleID string, primary source.Span, msg string) Diagnostic {
	return Diagnostic{RuleID: ruleID, Severity: sev, Primary: primary, Message: msg}
}

// NewFatal builds the diagnostic for a file that could not be linted: a
// parse error, an unreadable file or a crashed rule.
func NewFatal(primary source.Span, pos source.LineCol, msg string) Diagnostic {
	d := New(SevError, "", primary, msg)
	d.Fatal = true
	d.Start, d.End = pos, pos
	return d
}

// Locate fills Start and End from file.
func (d Diagnostic) Locate(file *source.File) Diagnostic {
	if file == nil {
		return d
	}
	d.Start = file.Position(d.Primary.Start)
	d.End = file.Position(d.Primary.End)
	return d
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

// ReportBuilder assembles one rule report. Emit sends it at most once.
type ReportBuilder struct {
	reporter Reporter
	diag     Diagnostic
	emitted  bool
}

func NewReportBuilder(r Reporter, sev Severity, ruleID string, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{reporter: r, diag: New(sev, ruleID, primary, msg)}
}

// WithMessageID records the message template the text came from.
func (b *ReportBuilder) WithMessageID(id string) *ReportBuilder {
	b.diag.MessageID = id
	return b
}

// WithFix attaches a fix. Edits are copied; the rule may reuse its slice.
func (b *ReportBuilder) WithFix(title string, edits ...TextEdit) *ReportBuilder {
	b.diag.Fix = &Fix{Title: title, Edits: append([]TextEdit(nil), edits...)}
	return b
}

func (b *ReportBuilder) Locate(file *source.File) *ReportBuilder {
	b.diag = b.diag.Locate(file)
	return b
}

func (b *ReportBuilder) Diagnostic() Diagnostic { return b.diag }

func (b *ReportBuilder) Emit() {
	if b.emitted || b.reporter == nil {
		return
	}
	b.emitted = true
	b.reporter.Report(b.diag)
}
