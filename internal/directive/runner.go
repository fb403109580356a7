package directive

import (
	"fmt"

	"typedlint/internal/ast"
	"typedlint/internal/diag"
	"typedlint/internal/source"
)

// FilterConfig configures directive processing for a file.
type FilterConfig struct {
	// Disabled ignores every directive (--no-inline-config).
	Disabled bool
	// ReportUnused adds a diagnostic for each directive that had no effect,
	// at this severity. Zero means do not report.
	ReportUnused diag.Severity
}

// FilterResult is the outcome of applying directives to a file's reports.
type FilterResult struct {
	Kept       []diag.Diagnostic
	Suppressed []diag.Diagnostic
}

// Filter drops the diagnostics switched off by directive comments. Unused
// and malformed directives are reported as rule-less diagnostics when
// cfg.ReportUnused is set.
func Filter(file *source.File, comments []ast.Comment, diags []diag.Diagnostic, cfg FilterConfig) FilterResult {
	if cfg.Disabled || len(comments) == 0 {
		return FilterResult{Kept: diags}
	}
	reg := NewRegistry(file, comments)
	if reg.Len() == 0 && len(reg.problems) == 0 {
		return FilterResult{Kept: diags}
	}

	res := FilterResult{Kept: make([]diag.Diagnostic, 0, len(diags))}
	for _, d := range diags {
		if reg.Suppresses(d) {
			res.Suppressed = append(res.Suppressed, d)
			continue
		}
		res.Kept = append(res.Kept, d)
	}

	if cfg.ReportUnused == 0 {
		return res
	}
	for _, p := range reg.Problems() {
		res.Kept = append(res.Kept, diag.New(cfg.ReportUnused, "", p.Span, p.Message).Locate(file))
	}
	for _, u := range reg.Unused() {
		msg := "Unused eslint-disable directive (no problems were reported)."
		if u.Rule != "" {
			msg = fmt.Sprintf("Unused eslint-disable directive (no problems were reported from '%s').", u.Rule)
		}
		res.Kept = append(res.Kept, diag.New(cfg.ReportUnused, "", u.Directive.Span, msg).Locate(file))
	}
	diag.Sort(res.Kept)
	return res
}
