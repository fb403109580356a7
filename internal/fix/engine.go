package fix

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	"typedlint/internal/diag"
	"typedlint/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	RuleID    string
	Title     string
	Message   string
	EditCount int
	// Range is the rewritten text in ApplyResult.Output.
	Range source.Span
}

// SkippedFix captures a skipped fix with a reason. Fixes skipped for a
// conflict are retried on the next pass.
type SkippedFix struct {
	RuleID string
	Title  string
	Reason string
}

// ApplyResult holds the rewritten text of one file.
type ApplyResult struct {
	Output  []byte
	Applied []AppliedFix
	Skipped []SkippedFix
}

type candidate struct {
	diag  *diag.Diagnostic
	lo    uint32
	hi    uint32
	order int
}

// Apply rewrites content with the fixes carried by diagnostics. Fixes are
// taken in position order; a fix whose range starts at or before the end of
// an already taken fix is skipped.
func Apply(content []byte, diagnostics []diag.Diagnostic) (*ApplyResult, error) {
	result := &ApplyResult{Output: content}

	candidates := make([]candidate, 0)
	for i := range diagnostics {
		d := &diagnostics[i]
		if !d.Fixable() {
			continue
		}
		b := Bounds(d.Fix)
		candidates = append(candidates, candidate{diag: d, lo: b.Start, hi: b.End, order: i})
	}
	if len(candidates) == 0 {
		return result, ErrNoFixes
	}
	sortCandidates(candidates)

	var (
		out     bytes.Buffer
		cursor  uint32
		lastEnd = -1
	)
	for _, cand := range candidates {
		f := cand.diag.Fix
		if int(cand.lo) <= lastEnd {
			result.Skipped = append(result.Skipped, SkippedFix{
				RuleID: cand.diag.RuleID,
				Title:  f.Title,
				Reason: "conflicts with previously applied edits",
			})
			continue
		}
		if reason := checkEdits(content, f.Edits); reason != "" {
			result.Skipped = append(result.Skipped, SkippedFix{RuleID: cand.diag.RuleID, Title: f.Title, Reason: reason})
			continue
		}
		edits := sortedEdits(f.Edits)
		outLo := uint32(out.Len()) + cand.lo - cursor // #nosec G115 -- output is bounded by the file size limit
		for _, e := range edits {
			out.Write(content[cursor:e.Span.Start])
			out.WriteString(e.NewText)
			cursor = e.Span.End
		}
		lastEnd = int(cand.hi)
		result.Applied = append(result.Applied, AppliedFix{
			RuleID:    cand.diag.RuleID,
			Title:     f.Title,
			Message:   cand.diag.Message,
			EditCount: len(edits),
			Range:     source.Span{File: cand.diag.Primary.File, Start: outLo, End: uint32(out.Len())}, // #nosec G115
		})
	}
	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}
	out.Write(content[cursor:])
	result.Output = out.Bytes()
	return result, nil
}

// sortCandidates orders by range start, then end, then report order.
func sortCandidates(candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		ci, cj := candidates[i], candidates[j]
		if ci.lo != cj.lo {
			return ci.lo < cj.lo
		}
		if ci.hi != cj.hi {
			return ci.hi < cj.hi
		}
		return ci.order < cj.order
	})
}

func sortedEdits(edits []diag.TextEdit) []diag.TextEdit {
	out := append([]diag.TextEdit(nil), edits...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Span.Start < out[j].Span.Start
	})
	return out
}

// checkEdits validates ranges and guards; edits of one fix must not overlap.
func checkEdits(content []byte, edits []diag.TextEdit) string {
	sorted := sortedEdits(edits)
	for i, e := range sorted {
		if e.Span.End < e.Span.Start || int(e.Span.End) > len(content) {
			return "edit span out of range"
		}
		if i > 0 && spansConflict(sorted[i-1], e) {
			return fmt.Sprintf("overlapping edits at offset %d", e.Span.Start)
		}
		if e.OldText != "" && string(content[e.Span.Start:e.Span.End]) != e.OldText {
			return "existing text does not match expected content"
		}
	}
	return ""
}

// spansConflict reports whether two text edits' spans overlap.
// Spans are treated as half-open intervals [Start, End). Two zero-length edits
// (Start == End) never conflict. A zero-length edit conflicts with a non-zero
// span if its position is within that span (Start <= pos < End). For two
// non-zero spans, any overlap yields a conflict.
func spansConflict(a, b diag.TextEdit) bool {
	aStart, aEnd := a.Span.Start, a.Span.End
	bStart, bEnd := b.Span.Start, b.Span.End

	if aStart == aEnd && bStart == bEnd {
		return false
	}
	if aStart == aEnd {
		return bStart <= aStart && aStart < bEnd
	}
	if bStart == bEnd {
		return aStart <= bStart && bStart < aEnd
	}
	return aStart < bEnd && bStart < aEnd
}
