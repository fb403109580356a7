package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "DEBUG"} {
		lvl, err := ParseLevel(s)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", s, err)
		}
		if lvl.String() != strings.ToLower(s) {
			t.Errorf("ParseLevel(%q) = %v", s, lvl)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Errorf("expected error for unknown level")
	}
}

func TestShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%v.ShouldEmit(%v) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestStreamSpans(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatNDJSON)

	run := Begin(tr, ScopeDriver, "lint", 0)
	file := Begin(tr, ScopeFile, "file", run.ID()).WithExtra("path", "a.ts")
	Begin(tr, ScopeNode, "node", file.ID()).End("")
	file.End("2 problems")
	run.End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d events, want 4:\n%s", len(lines), buf.String())
	}
	var ev struct {
		Kind     string            `json:"kind"`
		Scope    string            `json:"scope"`
		ParentID uint64            `json:"parent_id"`
		Detail   string            `json:"detail"`
		Extra    map[string]string `json:"extra"`
	}
	if err := json.Unmarshal([]byte(lines[2]), &ev); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ev.Kind != "end" || ev.Scope != "file" || ev.Detail != "2 problems" || ev.Extra["path"] != "a.ts" {
		t.Errorf("unexpected file end event: %+v", ev)
	}
	if ev.ParentID != run.ID() {
		t.Errorf("parent = %d, want %d", ev.ParentID, run.ID())
	}
}

func TestErrorLevelOnlyErrors(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelError, FormatText)
	Begin(tr, ScopeDriver, "lint", 0).End("")
	Point(tr, ScopeDriver, "config", "", 0)
	Error(tr, ScopeFile, "rule-fault", "no-var crashed", 0)

	out := buf.String()
	if strings.Count(out, "\n") != 1 || !strings.Contains(out, "! file:rule-fault (no-var crashed)") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestRingKeepsLast(t *testing.T) {
	ring := NewRingTracer(2, LevelPhase)
	for _, name := range []string{"a", "b", "c"} {
		Point(ring, ScopeDriver, name, "", 0)
	}
	snap := ring.Snapshot()
	if len(snap) != 2 || snap[0].Name != "b" || snap[1].Name != "c" {
		t.Fatalf("snapshot = %+v", snap)
	}
	var buf bytes.Buffer
	if err := ring.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "driver:c") {
		t.Errorf("dump missing event:\n%s", buf.String())
	}
}

func TestMultiAndContext(t *testing.T) {
	a := NewRingTracer(8, LevelPhase)
	b := NewRingTracer(8, LevelPhase)
	multi := NewMultiTracer(LevelPhase, a, b)

	ctx := WithTracer(context.Background(), multi)
	if FromContext(ctx) != Tracer(multi) {
		t.Fatalf("tracer not propagated")
	}
	if FromContext(context.Background()) != Nop {
		t.Errorf("missing tracer should be Nop")
	}
	Point(FromContext(ctx), ScopePass, "pass", "", 0)
	if len(a.Snapshot()) != 1 || len(b.Snapshot()) != 1 {
		t.Errorf("multi tracer did not fan out")
	}
	if multi.Ring() != a {
		t.Errorf("Ring should return the first ring tracer")
	}
}

func TestNewNopWhenOff(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Enabled() {
		t.Errorf("off tracer enabled")
	}
	sp := Begin(tr, ScopeDriver, "x", 0)
	if d := sp.End(""); d != 0 {
		t.Errorf("nop span measured %v", d)
	}
}

func TestHeartbeatReportsProgress(t *testing.T) {
	ring := NewRingTracer(64, LevelPhase)
	progress := NewProgress()
	progress.Reset(3)
	progress.FileStarted("a.ts")
	progress.FileDone("a.ts")
	progress.FileStarted("slow.ts")

	hb := StartHeartbeat(ring, 2*time.Millisecond, progress)
	time.Sleep(40 * time.Millisecond)
	hb.Stop()
	hb.Stop()

	var beats, stalled int
	for _, ev := range ring.Snapshot() {
		switch ev.Kind {
		case KindHeartbeat:
			beats++
			if ev.Detail != "1/3 files" || ev.Extra["oldest"] != "slow.ts" {
				t.Errorf("unexpected heartbeat: %+v", ev)
			}
		case KindError:
			stalled++
			if ev.Name != "stalled" || ev.Extra["path"] != "slow.ts" {
				t.Errorf("unexpected stall event: %+v", ev)
			}
		}
	}
	if beats == 0 {
		t.Errorf("no heartbeat recorded")
	}
	if stalled != 1 {
		t.Errorf("stall reported %d times, want 1", stalled)
	}
	StartHeartbeat(Nop, time.Millisecond, nil).Stop()
}

func TestProgressSnapshot(t *testing.T) {
	var nilProgress *Progress
	nilProgress.FileStarted("x")
	if snap := nilProgress.Snapshot(); snap != (ProgressSnapshot{}) {
		t.Errorf("nil progress snapshot = %+v", snap)
	}

	p := NewProgress()
	p.Reset(2)
	p.FileStarted("a.ts")
	p.FileStarted("b.ts")
	p.FileDone("a.ts")
	snap := p.Snapshot()
	if snap.Done != 1 || snap.Total != 2 || snap.Oldest != "b.ts" {
		t.Errorf("snapshot = %+v", snap)
	}
	p.Reset(5)
	if snap := p.Snapshot(); snap.Done != 0 || snap.Oldest != "" {
		t.Errorf("reset snapshot = %+v", snap)
	}
}

func TestStartCarriesLabels(t *testing.T) {
	ring := NewRingTracer(16, LevelDetail)
	ctx := WithRun(WithTracer(context.Background(), ring), "run-1")

	run, ctx := Start(ctx, ScopeDriver, "lint")
	file, fctx := Start(WithFile(ctx, "src/a.ts"), ScopeFile, "file")
	if got := CurrentSpan(fctx); got.SpanID != file.ID() || got.RunID != "run-1" || got.File != "src/a.ts" {
		t.Fatalf("span context = %+v", got)
	}
	if CurrentSpan(ctx).File != "" {
		t.Errorf("file label leaked into parent context")
	}

	snap := ring.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("got %d events, want 2", len(snap))
	}
	if snap[1].ParentID != run.ID() || snap[1].Extra["path"] != "src/a.ts" || snap[1].Extra["run_id"] != "run-1" {
		t.Errorf("file begin event = %+v", snap[1])
	}
	if got := ring.InFlight(); len(got) != 1 || got[0] != "src/a.ts" {
		t.Errorf("InFlight = %v", got)
	}
	file.End("")
	if got := ring.InFlight(); len(got) != 0 {
		t.Errorf("InFlight after end = %v", got)
	}
}

func TestRingErrors(t *testing.T) {
	ring := NewRingTracer(8, LevelPhase)
	Point(ring, ScopeDriver, "config", "", 0)
	Error(ring, ScopeFile, "rule-fault", "boom", 0)
	errs := ring.Errors()
	if len(errs) != 1 || errs[0].Detail != "boom" {
		t.Errorf("Errors = %+v", errs)
	}
}

func TestMultiFlattens(t *testing.T) {
	a := NewRingTracer(4, LevelPhase)
	b := NewRingTracer(4, LevelPhase)
	inner := NewMultiTracer(LevelPhase, a, Nop)
	outer := NewMultiTracer(LevelPhase, inner, nil, b)
	if len(outer.tracers) != 2 {
		t.Fatalf("got %d children, want 2", len(outer.tracers))
	}
	if RingOf(outer) != a || RingOf(b) != b || RingOf(Nop) != nil {
		t.Errorf("RingOf returned the wrong ring")
	}
}

func TestNewModes(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	if RingOf(tr) == nil {
		t.Errorf("both mode has no ring")
	}
	tr, err = New(Config{Level: LevelPhase, Mode: ModeRing})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := tr.(*RingTracer); !ok {
		t.Errorf("ring mode built %T", tr)
	}
	if _, err := ParseMode("memory"); err == nil {
		t.Errorf("expected error for unknown mode")
	}
	if m, err := ParseMode("BOTH"); err != nil || m != ModeBoth {
		t.Errorf("ParseMode(BOTH) = %v, %v", m, err)
	}
}
