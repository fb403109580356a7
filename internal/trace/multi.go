package trace

import "errors"

// MultiTracer sends every event to several tracers, e.g. a trace file and
// the crash ring.
type MultiTracer struct {
	tracers []Tracer
	level   Level
}

// NewMultiTracer flattens nested multi tracers and drops disabled ones.
func NewMultiTracer(level Level, tracers ...Tracer) *MultiTracer {
	m := &MultiTracer{level: level}
	for _, tr := range tracers {
		switch tr := tr.(type) {
		case nil:
		case *MultiTracer:
			m.tracers = append(m.tracers, tr.tracers...)
		default:
			if tr.Enabled() {
				m.tracers = append(m.tracers, tr)
			}
		}
	}
	return m
}

func (t *MultiTracer) Emit(ev *Event) {
	if ev.Seq == 0 {
		ev.Seq = NextSeq()
	}
	for _, tr := range t.tracers {
		tr.Emit(ev)
	}
}

func (t *MultiTracer) Flush() error {
	var errs []error
	for _, tr := range t.tracers {
		errs = append(errs, tr.Flush())
	}
	return errors.Join(errs...)
}

func (t *MultiTracer) Close() error {
	var errs []error
	for _, tr := range t.tracers {
		errs = append(errs, tr.Close())
	}
	return errors.Join(errs...)
}

func (t *MultiTracer) Level() Level { return t.level }

func (t *MultiTracer) Enabled() bool { return t.level > LevelOff }

// Ring returns the first ring tracer among the children, or nil.
func (t *MultiTracer) Ring() *RingTracer {
	for _, tr := range t.tracers {
		if ring, ok := tr.(*RingTracer); ok {
			return ring
		}
	}
	return nil
}

// RingOf finds the crash ring behind tr, if there is one.
func RingOf(tr Tracer) *RingTracer {
	switch tr := tr.(type) {
	case *RingTracer:
		return tr
	case *MultiTracer:
		return tr.Ring()
	}
	return nil
}
