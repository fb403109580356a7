package diagfmt

import (
	"bytes"
	"runtime"
	"strings"
	"testing"

	"github.com/sourcegraph/go-diff/diff"
)

func TestUnifiedDiffEqual(t *testing.T) {
	out, err := UnifiedDiff("a.js", []byte("x\n"), []byte("x\n"))
	if err != nil || out != nil {
		t.Fatalf("expected no diff, got %q, %v", out, err)
	}
}

func TestUnifiedDiffSingleChange(t *testing.T) {
	before := "var a = 1;\nfoo();\n"
	after := "let a = 1;\nfoo();\n"
	out, err := UnifiedDiff("a.js", []byte(before), []byte(after))
	if err != nil {
		t.Fatalf("UnifiedDiff: %v", err)
	}
	fd, err := diff.ParseFileDiff(out)
	if err != nil {
		t.Fatalf("output does not parse: %v\n%s", err, out)
	}
	if fd.OrigName != "a/a.js" || fd.NewName != "b/a.js" {
		t.Errorf("names: %q %q", fd.OrigName, fd.NewName)
	}
	if len(fd.Hunks) != 1 {
		t.Fatalf("expected 1 hunk, got %d", len(fd.Hunks))
	}
	h := fd.Hunks[0]
	if h.OrigStartLine != 1 || h.OrigLines != 2 || h.NewStartLine != 1 || h.NewLines != 2 {
		t.Errorf("unexpected hunk header: %+v", h)
	}
	if want := "-var a = 1;\n+let a = 1;\n foo();\n"; string(h.Body) != want {
		t.Errorf("body = %q, want %q", h.Body, want)
	}
}

func TestUnifiedDiffSeparateHunks(t *testing.T) {
	var before, after strings.Builder
	for i := range 20 {
		line := "keep();\n"
		switch i {
		case 1:
			before.WriteString("var a;\n")
			after.WriteString("let a;\n")
			continue
		case 18:
			before.WriteString("x == y;\n")
			after.WriteString("x === y;\n")
			continue
		}
		before.WriteString(line)
		after.WriteString(line)
	}
	out, err := UnifiedDiff("a.js", []byte(before.String()), []byte(after.String()))
	if err != nil {
		t.Fatalf("UnifiedDiff: %v", err)
	}
	fd, err := diff.ParseFileDiff(out)
	if err != nil {
		t.Fatalf("output does not parse: %v\n%s", err, out)
	}
	if len(fd.Hunks) != 2 {
		t.Fatalf("expected 2 hunks, got %d\n%s", len(fd.Hunks), out)
	}
	if h := fd.Hunks[0]; h.OrigStartLine != 1 || h.OrigLines != 5 {
		t.Errorf("first hunk: %+v", h)
	}
	if h := fd.Hunks[1]; h.OrigStartLine != 16 || h.OrigLines != 5 {
		t.Errorf("second hunk: %+v", h)
	}
}

func TestUnifiedDiffLargeFileStaysSmall(t *testing.T) {
	const lines = 8000
	before := []byte(strings.Repeat("var a = 1;\n", lines))
	after := bytes.Clone(before)
	copy(after[4000*11:], "let")

	var m0, m1 runtime.MemStats
	runtime.ReadMemStats(&m0)
	out, err := UnifiedDiff("big.js", before, after)
	runtime.ReadMemStats(&m1)
	if err != nil {
		t.Fatalf("UnifiedDiff: %v", err)
	}
	if alloc := m1.TotalAlloc - m0.TotalAlloc; alloc > 32<<20 {
		t.Errorf("allocated %d bytes for a one-line change", alloc)
	}
	fd, err := diff.ParseFileDiff(out)
	if err != nil {
		t.Fatalf("output does not parse: %v\n%s", err, out)
	}
	if len(fd.Hunks) != 1 {
		t.Fatalf("expected 1 hunk, got %d", len(fd.Hunks))
	}
	h := fd.Hunks[0]
	if h.OrigStartLine != 3998 || h.OrigLines != 7 || h.NewLines != 7 {
		t.Errorf("unexpected hunk header: %+v", h)
	}
	if !strings.Contains(string(h.Body), "-var a = 1;\n+let a = 1;\n") {
		t.Errorf("body = %q", h.Body)
	}
}

func TestUnifiedDiffRepeatedLines(t *testing.T) {
	before := "if (a) {\n}\nif (b) {\n  debugger;\n}\nif (c) {\n}\n"
	after := "if (a) {\n}\nif (b) {\n}\nif (c) {\n}\n"
	out, err := UnifiedDiff("a.js", []byte(before), []byte(after))
	if err != nil {
		t.Fatalf("UnifiedDiff: %v", err)
	}
	fd, err := diff.ParseFileDiff(out)
	if err != nil || len(fd.Hunks) != 1 {
		t.Fatalf("expected one hunk, got %v\n%s", err, out)
	}
	h := fd.Hunks[0]
	if h.OrigLines != h.NewLines+1 || !strings.Contains(string(h.Body), "\n-  debugger;\n") || strings.Contains(string(h.Body), "+") {
		t.Errorf("expected a single deleted line:\n%s", h.Body)
	}
}

func TestFixDiffsSkipsUnchanged(t *testing.T) {
	fixed := newResult("/proj/a.js", "var x = 1;\n")
	fixed.Output = []byte("let x = 1;\n")
	clean := newResult("/proj/b.js", "let y = 2;\n")
	var buf bytes.Buffer
	if err := FixDiffs(&buf, newRun(fixed, clean), testOpts); err != nil {
		t.Fatalf("FixDiffs: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "+++ b/a.js") || strings.Contains(out, "b.js") {
		t.Errorf("unexpected diff output:\n%s", out)
	}
	if !strings.Contains(out, "-var x = 1;\n+let x = 1;\n") {
		t.Errorf("missing change lines:\n%s", out)
	}
}
