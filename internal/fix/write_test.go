package fix

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"typedlint/internal/source"
)

func TestRestoreEndings(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		before string
		after  string
		want   string
	}{
		{
			name:   "lf only",
			raw:    "var a;\n",
			before: "var a;\n",
			after:  "let a;\n",
			want:   "let a;\n",
		},
		{
			name:   "crlf only",
			raw:    "var a;\r\nb();\r\n",
			before: "var a;\nb();\n",
			after:  "let a;\nb();\n",
			want:   "let a;\r\nb();\r\n",
		},
		{
			name:   "mixed, untouched lines keep theirs",
			raw:    "a();\r\nb();\nc();\ndebugger;\n",
			before: "a();\nb();\nc();\ndebugger;\n",
			after:  "a();\nb();\nc();\n\n",
			want:   "a();\r\nb();\nc();\n\n",
		},
		{
			name:   "mixed, rewritten line keeps its own",
			raw:    "var a;\r\nb();\nvar c;\r\n",
			before: "var a;\nb();\nvar c;\n",
			after:  "let a;\nb();\nlet c;\n",
			want:   "let a;\r\nb();\nlet c;\r\n",
		},
		{
			name:   "mixed, inserted line follows the one above",
			raw:    "a();\r\nb();\n",
			before: "a();\nb();\n",
			after:  "a();\nx();\nb();\n",
			want:   "a();\r\nx();\r\nb();\n",
		},
		{
			name:   "bom",
			raw:    "\ufeffvar a;\n",
			before: "var a;\n",
			after:  "let a;\n",
			want:   "\ufefflet a;\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RestoreEndings(source.ScanEndings([]byte(tt.raw)), []byte(tt.before), []byte(tt.after))
			if string(got) != tt.want {
				t.Fatalf("RestoreEndings = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.js")
	if err := os.WriteFile(path, []byte("var a;\r\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := Write(path, []byte("let a;\r\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "let a;\r\n" {
		t.Fatalf("content = %q", got)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("mode = %v", info.Mode().Perm())
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("temporary files left behind: %d entries", len(entries))
	}
}

func TestWriteFailureKeepsNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "a.js")
	err := Write(path, []byte("x"))
	var we *WriteError
	if !errors.As(err, &we) {
		t.Fatalf("expected *WriteError, got %v", err)
	}
	if we.Path != path {
		t.Fatalf("path = %q", we.Path)
	}
}

func TestLockerSerialisesPerPath(t *testing.T) {
	var l Locker
	var mu sync.Mutex
	active, peak := 0, 0
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.Lock("same/path.js")
			mu.Lock()
			active++
			peak = max(peak, active)
			mu.Unlock()
			mu.Lock()
			active--
			mu.Unlock()
			unlock()
		}()
	}
	wg.Wait()
	if peak != 1 {
		t.Fatalf("peak concurrent holders = %d", peak)
	}
	if len(l.locks) != 0 {
		t.Fatalf("locks not released: %d", len(l.locks))
	}
}
