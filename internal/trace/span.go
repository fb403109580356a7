package trace

import (
	"bytes"
	"maps"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// NextSeq returns the next event sequence number. Sequence numbers order
// events across goroutines where timestamps tie.
func NextSeq() uint64 { return seqCounter.Add(1) }

// NextSpanID returns a fresh span id; 0 is never returned.
func NextSpanID() uint64 { return spanCounter.Add(1) }

// getGoroutineID parses the id out of the "goroutine N [running]:" header
// of runtime.Stack. Files are linted on separate goroutines, so the id
// tells concurrent file spans apart in a text trace.
func getGoroutineID() uint64 {
	var buf [64]byte
	head := buf[:runtime.Stack(buf[:], false)]
	head, ok := bytes.CutPrefix(head, []byte("goroutine "))
	if !ok {
		return 0
	}
	if end := bytes.IndexByte(head, ' '); end >= 0 {
		head = head[:end]
	}
	gid, err := strconv.ParseUint(string(head), 10, 64)
	if err != nil {
		return 0
	}
	return gid
}

func newEvent(kind Kind, scope Scope, name string) *Event {
	return &Event{
		Time:  time.Now(),
		Seq:   NextSeq(),
		Kind:  kind,
		Scope: scope,
		GID:   getGoroutineID(),
		Name:  name,
	}
}

// Span is an open begin/end pair. The zero-cost span returned when tracing
// is off ignores every call.
type Span struct {
	tracer  Tracer
	begin   Event
	extra   map[string]string
	started time.Time
}

// Begin starts a span and emits its begin event. parent is 0 for a root.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	return begin(t, scope, name, parent, nil)
}

// begin emits extra on the begin event too, so a ring dump can name the
// file of a span that never ended.
func begin(t Tracer, scope Scope, name string, parent uint64, extra map[string]string) *Span {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return &Span{tracer: Nop}
	}
	ev := newEvent(KindSpanBegin, scope, name)
	ev.SpanID = NextSpanID()
	ev.ParentID = parent
	ev.Extra = extra
	t.Emit(ev)
	return &Span{tracer: t, begin: *ev, extra: maps.Clone(extra), started: ev.Time}
}

func (s *Span) live() bool {
	return s != nil && s.tracer != nil && s.tracer.Enabled()
}

// End emits the end event with detail and the labels added so far, and
// returns the span's duration.
func (s *Span) End(detail string) time.Duration {
	if !s.live() {
		return 0
	}
	ev := newEvent(KindSpanEnd, s.begin.Scope, s.begin.Name)
	ev.SpanID = s.begin.SpanID
	ev.ParentID = s.begin.ParentID
	ev.GID = s.begin.GID
	ev.Detail = detail
	ev.Extra = s.extra
	s.tracer.Emit(ev)
	return ev.Time.Sub(s.started)
}

// Fail records err as an error event inside the span and ends it.
func (s *Span) Fail(err error) time.Duration {
	if !s.live() {
		return 0
	}
	Error(s.tracer, s.begin.Scope, s.begin.Name, err.Error(), s.begin.SpanID)
	return s.End("failed")
}

// WithExtra labels the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if !s.live() {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string)
	}
	s.extra[key] = value
	return s
}

func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.begin.SpanID
}

// Point emits an instant event when the scope is enabled.
func Point(t Tracer, scope Scope, name, detail string, parent uint64) {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return
	}
	ev := newEvent(KindPoint, scope, name)
	ev.ParentID = parent
	ev.Detail = detail
	t.Emit(ev)
}

// Error emits an error event. It is recorded at every level except off.
func Error(t Tracer, scope Scope, name, detail string, parent uint64) {
	if t == nil || !t.Enabled() {
		return
	}
	ev := newEvent(KindError, scope, name)
	ev.ParentID = parent
	ev.Detail = detail
	t.Emit(ev)
}
