package observ

import (
	"strings"
	"testing"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	read := tm.Begin("read")
	tm.End(read, "")
	lint := tm.Begin("lint")
	tm.End(lint, "3 rules")
	tm.End(99, "ignored")

	rep := tm.Report()
	if len(rep.Phases) != 2 {
		t.Fatalf("phases = %d, want 2", len(rep.Phases))
	}
	if rep.Phases[1].Name != "lint" || rep.Phases[1].Note != "3 rules" {
		t.Errorf("unexpected phase: %+v", rep.Phases[1])
	}
	if !strings.Contains(tm.Summary(), "// 3 rules") {
		t.Errorf("summary misses note:\n%s", tm.Summary())
	}
}

func TestReportMerge(t *testing.T) {
	a := Report{TotalMS: 3, Phases: []PhaseReport{{Name: "parse", DurationMS: 1, Count: 1}, {Name: "lint", DurationMS: 2, Count: 1}}}
	b := Report{TotalMS: 5, Phases: []PhaseReport{{Name: "lint", DurationMS: 4, Count: 1}, {Name: "write", DurationMS: 1}}}

	var total Report
	total.Merge(a)
	total.Merge(b)

	if total.TotalMS != 8 {
		t.Errorf("total = %v, want 8", total.TotalMS)
	}
	want := []PhaseReport{
		{Name: "parse", DurationMS: 1, Count: 1},
		{Name: "lint", DurationMS: 6, Count: 2},
		{Name: "write", DurationMS: 1, Count: 1},
	}
	if len(total.Phases) != len(want) {
		t.Fatalf("phases = %+v", total.Phases)
	}
	for i := range want {
		if total.Phases[i] != want[i] {
			t.Errorf("phase %d = %+v, want %+v", i, total.Phases[i], want[i])
		}
	}
	if !strings.Contains(total.Summary(), "x2") {
		t.Errorf("summary misses count:\n%s", total.Summary())
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.End(tm.Begin("x"), "")
	if rep := tm.Report(); len(rep.Phases) != 0 {
		t.Errorf("nil timer reported phases")
	}
}
