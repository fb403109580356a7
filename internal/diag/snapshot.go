package diag

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"typedlint/internal/source"
)

// Snapshot renders the diagnostics of one file one per line, for test
// failure output and expectations:
//
//	2:5 error 'x' is not defined. (no-undef)
//	2:5 note while visiting Identifier (no-undef)
//
// Lines are ordered by position, then severity and rule. Notes are
// resolved against file and follow their diagnostic's position order.
func Snapshot(diags []Diagnostic, file *source.File, withNotes bool) string {
	type line struct {
		pos  source.LineCol
		sev  string
		rule string
		msg  string
	}
	var lines []line
	for _, d := range diags {
		lines = append(lines, line{d.Start, d.Severity.String(), d.RuleID, oneLine(d.Message)})
		if !withNotes || file == nil {
			continue
		}
		for _, n := range d.Notes {
			lines = append(lines, line{file.Position(n.Span.Start), "note", d.RuleID, oneLine(n.Msg)})
		}
	}
	slices.SortStableFunc(lines, func(a, b line) int {
		return cmp.Or(
			cmp.Compare(a.pos.Line, b.pos.Line),
			cmp.Compare(a.pos.Col, b.pos.Col),
			cmp.Compare(a.sev, b.sev),
			cmp.Compare(a.rule, b.rule),
		)
	})

	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s %s %s", l.pos, l.sev, l.msg)
		if l.rule != "" {
			fmt.Fprintf(&b, " (%s)", l.rule)
		}
	}
	return b.String()
}

func oneLine(msg string) string {
	return strings.TrimSpace(strings.Join(strings.Fields(msg), " "))
}
