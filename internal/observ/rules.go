package observ

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
)

// RuleTimes sums listener time per rule over a run. Files are linted in
// parallel, so Add is safe for concurrent use. A nil *RuleTimes ignores
// everything.
type RuleTimes struct {
	mu    sync.Mutex
	total map[string]time.Duration
}

func NewRuleTimes() *RuleTimes {
	return &RuleTimes{total: make(map[string]time.Duration)}
}

func (r *RuleTimes) Add(ruleID string, d time.Duration) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.total[ruleID] += d
	r.mu.Unlock()
}

func (r *RuleTimes) Reset() {
	if r == nil {
		return
	}
	r.mu.Lock()
	clear(r.total)
	r.mu.Unlock()
}

// RuleTime is one row of the rule timing table.
type RuleTime struct {
	Rule       string  `json:"rule"`
	DurationMS float64 `json:"duration_ms"`
	// Relative is the share of all rule time, in percent.
	Relative float64 `json:"relative"`
}

// Top returns the n slowest rules, slowest first; n <= 0 returns all.
func (r *RuleTimes) Top(n int) []RuleTime {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	var sum time.Duration
	rows := make([]RuleTime, 0, len(r.total))
	for id, d := range r.total {
		sum += d
		rows = append(rows, RuleTime{Rule: id, DurationMS: durationToMillis(d)})
	}
	r.mu.Unlock()

	slices.SortFunc(rows, func(a, b RuleTime) int {
		return cmp.Or(cmp.Compare(b.DurationMS, a.DurationMS), cmp.Compare(a.Rule, b.Rule))
	})
	if n > 0 && len(rows) > n {
		rows = rows[:n]
	}
	if total := durationToMillis(sum); total > 0 {
		for i := range rows {
			rows[i].Relative = rows[i].DurationMS * 100 / total
		}
	}
	return rows
}

// FormatRuleTimes renders rows as a table:
//
//	Rule            | Time (ms) | Relative
//	:---------------|----------:|--------:
//	no-unused-vars  |    12.031 |    48.1%
func FormatRuleTimes(rows []RuleTime) string {
	if len(rows) == 0 {
		return ""
	}
	width := len("Rule")
	for _, r := range rows {
		width = max(width, len(r.Rule))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%-*s | %9s | %8s\n", width, "Rule", "Time (ms)", "Relative")
	fmt.Fprintf(&b, ":%s|%s:|%s:\n", strings.Repeat("-", width), strings.Repeat("-", 10), strings.Repeat("-", 9))
	for _, r := range rows {
		fmt.Fprintf(&b, "%-*s | %9.3f | %7.1f%%\n", width, r.Rule, r.DurationMS, r.Relative)
	}
	return b.String()
}
