package watch

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestDebouncerCoalesces(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	var calls atomic.Int32
	var last atomic.Int32
	for i := range 5 {
		d.Trigger(func() {
			calls.Add(1)
			last.Store(int32(i))
		})
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(150 * time.Millisecond)
	if calls.Load() != 1 {
		t.Fatalf("callback ran %d times, want 1", calls.Load())
	}
	if last.Load() != 4 {
		t.Errorf("last callback = %d, want 4", last.Load())
	}
}

func TestDebouncerStop(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })
	d.Stop()
	d.Trigger(func() { calls.Add(1) })
	time.Sleep(80 * time.Millisecond)
	if calls.Load() != 0 {
		t.Fatalf("callback ran after Stop")
	}
}

func TestFilters(t *testing.T) {
	w := &Watcher{
		cfg: Config{
			Extensions: []string{".js", ".ts"},
			SkipDirs:   []string{"node_modules"},
			SkipHidden: true,
		},
		pending: make(map[string]struct{}),
	}
	tests := []struct {
		path string
		want bool
	}{
		{"src/a.js", true},
		{"src/a.TS", true},
		{"src/a.css", false},
		{"src/.a.js", false},
	}
	for _, tt := range tests {
		if got := w.accept(tt.path); got != tt.want {
			t.Errorf("accept(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
	if !w.skipDir("a/node_modules") || !w.skipDir("a/.git") || w.skipDir("a/src") {
		t.Error("skipDir mismatch")
	}

	w.handle(fsnotify.Event{Name: "b.js", Op: fsnotify.Write})
	w.handle(fsnotify.Event{Name: "a.js", Op: fsnotify.Write})
	w.handle(fsnotify.Event{Name: "a.js", Op: fsnotify.Chmod})
	w.handle(fsnotify.Event{Name: "c.css", Op: fsnotify.Write})
	if got := w.drain(); !slices.Equal(got, []string{"a.js", "b.js"}) {
		t.Errorf("drain = %v", got)
	}
	if got := w.drain(); len(got) != 0 {
		t.Errorf("second drain = %v", got)
	}
}

func TestRunReportsChanges(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.js")
	if err := os.WriteFile(file, []byte("var a;\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	w, err := New(Config{Paths: []string{dir}, Debounce: 50 * time.Millisecond, Extensions: []string{".js"}}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	got := make(chan []string, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(_ context.Context, changed []string) error {
			got <- changed
			return nil
		})
	}()

	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(file, []byte("let a;\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case changed := <-got:
		if !slices.Equal(changed, []string{file}) {
			t.Errorf("changed = %v, want [%s]", changed, file)
		}
	case <-ctx.Done():
		t.Fatal("no change reported")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run: %v", err)
	}
}

func TestRunTwice(t *testing.T) {
	w, err := New(Config{Paths: []string{t.TempDir()}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	w.running = true
	if err := w.Run(context.Background(), nil); err != ErrRunning {
		t.Fatalf("err = %v, want ErrRunning", err)
	}
}
