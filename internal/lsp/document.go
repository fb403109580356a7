package lsp

import (
	"context"
	"fmt"
	"time"

	"typedlint/internal/diag"
	"typedlint/internal/driver"
	"typedlint/internal/source"
	"typedlint/internal/trace"
)

// document is an open editor buffer. Guarded by Server.mu.
type document struct {
	uri     string
	path    string
	version int
	text    string

	// seq grows with every scheduled lint; only the newest run publishes.
	seq    uint64
	timer  *time.Timer
	cancel context.CancelFunc

	// результат последнего опубликованного прогона
	linted string
	result *driver.FileResult
	fixes  []quickFix
}

type quickFix struct {
	diag  lspDiagnostic
	title string
	edits []textEdit
}

func (d *document) stop() {
	if d.timer != nil {
		d.timer.Stop()
	}
	if d.cancel != nil {
		d.cancel()
	}
}

// schedule lints uri after the debounce interval, superseding any pending
// or running lint of the same document.
func (s *Server) schedule(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.docs[uri]
	if doc == nil {
		return
	}
	doc.stop()
	doc.seq++
	seq := doc.seq
	doc.timer = time.AfterFunc(s.debounce, func() { s.lintDocument(uri, seq) })
}

// flush lints uri now, skipping the debounce.
func (s *Server) flush(uri string) {
	s.mu.Lock()
	doc := s.docs[uri]
	if doc == nil {
		s.mu.Unlock()
		return
	}
	doc.stop()
	doc.seq++
	seq := doc.seq
	s.mu.Unlock()
	s.lintDocument(uri, seq)
}

func (s *Server) lintDocument(uri string, seq uint64) {
	s.mu.Lock()
	doc := s.docs[uri]
	if doc == nil || doc.seq != seq {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(s.baseCtx)
	doc.cancel = cancel
	text, path, version := doc.text, doc.path, doc.version
	s.mu.Unlock()
	defer cancel()

	ctx = trace.WithFile(trace.WithTracer(ctx, s.tracer), path)
	span, ctx := trace.Start(ctx, trace.ScopeFile, "lsp.lint")
	res, err := s.lint(ctx, path, []byte(text))
	if err != nil {
		span.Fail(err)
		s.logf("lint %s: %v", path, err)
		return
	}
	diags, fixes := convertResult(res)
	span.End(fmt.Sprintf("%d diagnostics", len(diags)))

	s.mu.Lock()
	doc = s.docs[uri]
	if doc == nil || doc.seq != seq || ctx.Err() != nil {
		s.mu.Unlock()
		return
	}
	doc.linted = text
	doc.result = res
	doc.fixes = fixes
	s.mu.Unlock()

	if err := s.sendPublish(uri, &version, diags); err != nil {
		s.logf("publish %s: %v", uri, err)
	}
}

// convertResult maps diagnostics onto LSP ranges of the linted text.
func convertResult(res *driver.FileResult) ([]lspDiagnostic, []quickFix) {
	if res == nil || res.File == nil {
		return nil, nil
	}
	file := res.File
	diags := make([]lspDiagnostic, 0, len(res.Diagnostics))
	var fixes []quickFix
	for i := range res.Diagnostics {
		d := &res.Diagnostics[i]
		ld := lspDiagnostic{
			Range:    lspRange{Start: toPosition(file, d.Start), End: toPosition(file, d.End)},
			Severity: severityWarning,
			Code:     d.RuleID,
			Source:   "typedlint",
			Message:  d.Message,
		}
		if d.End.Line == 0 {
			ld.Range.End = ld.Range.Start
		}
		if d.Severity == diag.SevError {
			ld.Severity = severityError
		}
		diags = append(diags, ld)
		if !d.Fixable() {
			continue
		}
		fixes = append(fixes, quickFix{diag: ld, title: fixTitle(d), edits: fixEdits(file, d.Fix)})
	}
	return diags, fixes
}

func fixTitle(d *diag.Diagnostic) string {
	if d.Fix.Title != "" {
		return d.Fix.Title
	}
	if d.RuleID != "" {
		return "Fix this " + d.RuleID + " problem"
	}
	return "Apply fix"
}

func fixEdits(file *source.File, f *diag.Fix) []textEdit {
	edits := make([]textEdit, 0, len(f.Edits))
	for _, e := range f.Edits {
		edits = append(edits, textEdit{Range: spanRange(file, e.Span), NewText: e.NewText})
	}
	return edits
}
