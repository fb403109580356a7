package ui

import (
	"errors"
	"strings"
	"testing"

	"typedlint/internal/driver"
)

func newModel() *progressModel {
	return NewProgressModel("linting", nil, nil).(*progressModel)
}

func TestApplyEventTracksFiles(t *testing.T) {
	m := newModel()
	m.applyEvent(driver.Event{File: "a.js", Stage: driver.StageParse, Status: driver.StatusQueued})
	m.applyEvent(driver.Event{File: "b.js", Stage: driver.StageParse, Status: driver.StatusQueued})
	if len(m.items) != 2 {
		t.Fatalf("items = %d, want 2", len(m.items))
	}
	if p := m.percent(); p != 0 {
		t.Errorf("percent after queue = %v, want 0", p)
	}

	m.applyEvent(driver.Event{File: "a.js", Stage: driver.StageLint, Status: driver.StatusWorking})
	if m.items[0].status != "linting" {
		t.Errorf("status = %q, want linting", m.items[0].status)
	}
	if p := m.percent(); p != 0.25 {
		t.Errorf("percent = %v, want 0.25", p)
	}

	m.applyEvent(driver.Event{File: "a.js", Stage: driver.StageLint, Status: driver.StatusDone})
	m.applyEvent(driver.Event{File: "b.js", Stage: driver.StageParse, Status: driver.StatusError, Err: errors.New("x")})
	if m.finished != 2 || m.failed != 1 {
		t.Errorf("finished=%d failed=%d", m.finished, m.failed)
	}
	if p := m.percent(); p != 1 {
		t.Errorf("percent = %v, want 1", p)
	}

	// события после завершения файла не меняют счётчики
	m.applyEvent(driver.Event{File: "a.js", Stage: driver.StageFix, Status: driver.StatusDone})
	if m.finished != 2 {
		t.Errorf("finished = %d after duplicate done", m.finished)
	}
}

func TestViewShowsStatus(t *testing.T) {
	m := newModel()
	if m.View() != "" {
		t.Fatal("empty model should render nothing")
	}
	m.applyEvent(driver.Event{File: "src/a.js", Stage: driver.StageParse, Status: driver.StatusWorking})
	m.applyEvent(driver.Event{File: "src/b.js", Stage: driver.StageParse, Status: driver.StatusError})
	out := m.View()
	for _, want := range []string{"linting 1/2", "parsing", "src/a.js", "error", "1 file(s) with fatal errors"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}
}

func TestVisibleLimitsRows(t *testing.T) {
	m := newModel()
	for i := range maxRows + 5 {
		name := string(rune('a'+i)) + ".js"
		m.applyEvent(driver.Event{File: name, Status: driver.StatusQueued})
		if i%2 == 0 {
			m.applyEvent(driver.Event{File: name, Status: driver.StatusDone})
		}
	}
	rows := m.visible()
	if len(rows) != maxRows {
		t.Fatalf("rows = %d, want %d", len(rows), maxRows)
	}
	if rows[0].status == "done" {
		t.Errorf("active files should come first, got %+v", rows[0])
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := truncate("a/very/long/path/file.js", 10); got != "a/very/..." {
		t.Errorf("got %q", got)
	}
	if got := truncate("abcdef", 2); got != "ab" {
		t.Errorf("got %q", got)
	}
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		stage  driver.Stage
		status driver.Status
		want   string
	}{
		{driver.StageParse, driver.StatusWorking, "parsing"},
		{driver.StageLint, driver.StatusWorking, "linting"},
		{driver.StageFix, driver.StatusWorking, "fixing"},
		{driver.StageFix, driver.StatusDone, "done"},
		{driver.StageParse, driver.StatusQueued, "queued"},
	}
	for _, tt := range tests {
		if got := statusLabel(tt.stage, tt.status); got != tt.want {
			t.Errorf("statusLabel(%s, %s) = %q, want %q", tt.stage, tt.status, got, tt.want)
		}
	}
}
