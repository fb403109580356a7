package trace

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Progress counts the files of the current lint run. The driver reports
// into it and the heartbeat reads it. A nil *Progress ignores all calls.
type Progress struct {
	total atomic.Int64
	done  atomic.Int64

	mu       sync.Mutex
	inFlight map[string]time.Time
}

func NewProgress() *Progress {
	return &Progress{inFlight: make(map[string]time.Time)}
}

// Reset starts a new run of total files. Watch mode calls it once per rerun.
func (p *Progress) Reset(total int) {
	if p == nil {
		return
	}
	p.total.Store(int64(total))
	p.done.Store(0)
	p.mu.Lock()
	clear(p.inFlight)
	p.mu.Unlock()
}

func (p *Progress) FileStarted(path string) {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.inFlight[path] = time.Now()
	p.mu.Unlock()
}

func (p *Progress) FileDone(path string) {
	if p == nil {
		return
	}
	p.mu.Lock()
	delete(p.inFlight, path)
	p.mu.Unlock()
	p.done.Add(1)
}

// ProgressSnapshot is a point-in-time view of a Progress.
type ProgressSnapshot struct {
	Done, Total int
	// Oldest is the file linted for the longest time, empty when idle.
	Oldest    string
	OldestAge time.Duration
}

func (p *Progress) Snapshot() ProgressSnapshot {
	if p == nil {
		return ProgressSnapshot{}
	}
	snap := ProgressSnapshot{Done: int(p.done.Load()), Total: int(p.total.Load())}
	now := time.Now()
	p.mu.Lock()
	for path, since := range p.inFlight {
		age := now.Sub(since)
		if age > snap.OldestAge || (age == snap.OldestAge && path < snap.Oldest) {
			snap.Oldest, snap.OldestAge = path, age
		}
	}
	p.mu.Unlock()
	return snap
}

type progressKey struct{}

// WithProgress attaches p to ctx.
func WithProgress(ctx context.Context, p *Progress) context.Context {
	return context.WithValue(ctx, progressKey{}, p)
}

// ProgressFrom returns the progress of ctx or nil.
func ProgressFrom(ctx context.Context) *Progress {
	if ctx == nil {
		return nil
	}
	p, _ := ctx.Value(progressKey{}).(*Progress)
	return p
}
