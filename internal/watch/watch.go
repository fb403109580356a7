// Package watch re-runs the linter when source files change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"typedlint/internal/trace"
)

// DefaultDebounce is the quiet period before a batch of changes is handed out.
const DefaultDebounce = 150 * time.Millisecond

// Config describes what to watch.
type Config struct {
	// Paths are files or directories; directories are watched recursively.
	Paths    []string
	Debounce time.Duration
	// Extensions filters events by file extension; empty accepts all.
	Extensions []string
	// SkipDirs are directory names never descended into.
	SkipDirs   []string
	SkipHidden bool
}

// Watcher batches filesystem events into change sets.
type Watcher struct {
	fsw      *fsnotify.Watcher
	cfg      Config
	debounce *Debouncer
	tracer   trace.Tracer

	mu      sync.Mutex
	pending map[string]struct{}
	running bool
}

// ErrRunning is returned when Run is called twice.
var ErrRunning = errors.New("watcher already running")

// New creates the underlying fsnotify watcher and registers cfg.Paths.
func New(cfg Config, tracer trace.Tracer) (*Watcher, error) {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if tracer == nil {
		tracer = trace.Nop
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	w := &Watcher{
		fsw:      fsw,
		cfg:      cfg,
		debounce: NewDebouncer(cfg.Debounce),
		tracer:   tracer,
		pending:  make(map[string]struct{}),
	}
	for _, p := range cfg.Paths {
		if err := w.add(p); err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", p, err)
		}
	}
	return w, nil
}

// Run blocks until ctx is cancelled, calling onChange with the sorted set of
// changed files after every quiet period. onChange calls never overlap; an
// error from it is traced and watching continues.
func (w *Watcher) Run(ctx context.Context, onChange func(ctx context.Context, changed []string) error) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return ErrRunning
	}
	w.running = true
	w.mu.Unlock()

	var callMu sync.Mutex
	flush := func() {
		changed := w.drain()
		if len(changed) == 0 || ctx.Err() != nil {
			return
		}
		callMu.Lock()
		defer callMu.Unlock()
		span := trace.Begin(w.tracer, trace.ScopeDriver, "watch-rerun", 0)
		err := onChange(ctx, changed)
		if err != nil {
			trace.Error(w.tracer, trace.ScopeDriver, "watch-rerun", err.Error(), span.ID())
		}
		span.End(fmt.Sprintf("%d changed", len(changed)))
	}

	for {
		select {
		case <-ctx.Done():
			w.debounce.Stop()
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			w.handle(ev)
			if w.hasPending() {
				w.debounce.Trigger(flush)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			trace.Error(w.tracer, trace.ScopeDriver, "watch", err.Error(), 0)
		}
	}
}

// Close releases the fsnotify watcher.
func (w *Watcher) Close() error {
	w.debounce.Stop()
	if err := w.fsw.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	return nil
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if ev.Has(fsnotify.Chmod) && !ev.Has(fsnotify.Write) {
		return
	}
	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if !w.skipDir(ev.Name) {
				_ = w.add(ev.Name)
			}
			return
		}
	}
	if !w.accept(ev.Name) {
		return
	}
	trace.Point(w.tracer, trace.ScopeFile, "watch-event", ev.Op.String()+" "+ev.Name, 0)
	w.mu.Lock()
	w.pending[ev.Name] = struct{}{}
	w.mu.Unlock()
}

func (w *Watcher) hasPending() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.pending) > 0
}

func (w *Watcher) drain() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := slices.Sorted(maps.Keys(w.pending))
	clear(w.pending)
	return out
}

// add watches a file, or a directory tree.
func (w *Watcher) add(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		// файлы часто заменяются через rename, поэтому следим за каталогом
		return w.fsw.Add(filepath.Dir(root))
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.skipDir(path) {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
}

func (w *Watcher) skipDir(path string) bool {
	base := filepath.Base(path)
	if w.cfg.SkipHidden && strings.HasPrefix(base, ".") {
		return true
	}
	return slices.Contains(w.cfg.SkipDirs, base)
}

func (w *Watcher) accept(path string) bool {
	base := filepath.Base(path)
	if w.cfg.SkipHidden && strings.HasPrefix(base, ".") {
		return false
	}
	if len(w.cfg.Extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(base))
	return slices.Contains(w.cfg.Extensions, ext)
}
