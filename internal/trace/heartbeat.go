package trace

import (
	"fmt"
	"sync"
	"time"
)

// stallBeats is how many heartbeats one file may stay in flight before it
// is reported as stalled.
const stallBeats = 5

// Heartbeat emits a periodic event with the run's file counts. A file that
// stays in flight for stallBeats intervals is reported once as an error
// event; in practice that is a rule looping on one file.
type Heartbeat struct {
	tracer   Tracer
	interval time.Duration
	progress *Progress

	stop chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

// StartHeartbeat starts the heartbeat goroutine. It returns nil when tracing
// is off or interval is not positive; Stop on nil is a no-op.
func StartHeartbeat(tracer Tracer, interval time.Duration, progress *Progress) *Heartbeat {
	if tracer == nil || !tracer.Enabled() || interval <= 0 {
		return nil
	}
	h := &Heartbeat{
		tracer:   tracer,
		interval: interval,
		progress: progress,
		stop:     make(chan struct{}),
	}
	h.wg.Add(1)
	go h.loop()
	return h
}

func (h *Heartbeat) loop() {
	defer h.wg.Done()
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	var reported string
	for {
		select {
		case <-h.stop:
			return
		case <-ticker.C:
		}
		snap := h.progress.Snapshot()
		h.tracer.Emit(h.beat(snap))

		if snap.Oldest == "" || snap.Oldest == reported {
			continue
		}
		if snap.OldestAge >= stallBeats*h.interval {
			reported = snap.Oldest
			ev := newEvent(KindError, ScopeFile, "stalled")
			ev.Detail = fmt.Sprintf("%s in flight for %s", snap.Oldest, snap.OldestAge.Round(time.Millisecond))
			ev.Extra = map[string]string{"path": snap.Oldest}
			h.tracer.Emit(ev)
		}
	}
}

func (h *Heartbeat) beat(snap ProgressSnapshot) *Event {
	ev := newEvent(KindHeartbeat, ScopeDriver, "heartbeat")
	if h.progress != nil {
		ev.Detail = fmt.Sprintf("%d/%d files", snap.Done, snap.Total)
	}
	if snap.Oldest != "" {
		ev.Extra = map[string]string{
			"oldest": snap.Oldest,
			"age":    snap.OldestAge.Round(time.Millisecond).String(),
		}
	}
	return ev
}

// Stop ends the heartbeat and waits for the goroutine. Safe to call twice.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.stop) })
	h.wg.Wait()
}
