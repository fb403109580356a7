package trace

import (
	"io"
	"slices"
	"sync"
)

const defaultRingSize = 4096

// RingTracer keeps the most recent events in memory. It is dumped when the
// process panics, together with the files that were still being linted.
type RingTracer struct {
	mu    sync.Mutex
	buf   []Event
	n     uint64 // events ever stored; buf[n%len(buf)] is the next slot
	level Level
}

func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = defaultRingSize
	}
	return &RingTracer{buf: make([]Event, capacity), level: level}
}

func (t *RingTracer) Emit(ev *Event) {
	if !t.level.accepts(ev) {
		return
	}
	stored := *ev
	if stored.Seq == 0 {
		stored.Seq = NextSeq()
	}
	t.mu.Lock()
	t.buf[t.n%uint64(len(t.buf))] = stored
	t.n++
	t.mu.Unlock()
}

// Snapshot returns the stored events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	size := uint64(len(t.buf))
	if t.n <= size {
		return slices.Clone(t.buf[:t.n])
	}
	head := t.n % size
	out := make([]Event, 0, size)
	out = append(out, t.buf[head:]...)
	return append(out, t.buf[:head]...)
}

// InFlight lists the paths of file spans that began but did not end within
// the retained window, sorted.
func (t *RingTracer) InFlight() []string {
	open := make(map[uint64]string)
	for _, ev := range t.Snapshot() {
		if ev.Scope != ScopeFile || ev.Name != "file" {
			continue
		}
		switch ev.Kind {
		case KindSpanBegin:
			if path := ev.Path(); path != "" {
				open[ev.SpanID] = path
			}
		case KindSpanEnd:
			delete(open, ev.SpanID)
		}
	}
	paths := make([]string, 0, len(open))
	for _, p := range open {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}

// Errors returns the retained error events, oldest first.
func (t *RingTracer) Errors() []Event {
	return slices.DeleteFunc(t.Snapshot(), func(ev Event) bool { return ev.Kind != KindError })
}

// Dump writes the retained events to w.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	for _, ev := range t.Snapshot() {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error { return nil }

func (t *RingTracer) Close() error { return nil }

func (t *RingTracer) Level() Level { return t.level }

func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
