package trace

import "time"

// Kind is what happened: a span opened or closed, a point, a heartbeat
// or a failure.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
	KindHeartbeat
	KindError // failure inside a span, e.g. a rule fault
)

var kindNames = [...]string{
	KindSpanBegin: "begin",
	KindSpanEnd:   "end",
	KindPoint:     "point",
	KindHeartbeat: "heartbeat",
	KindError:     "error",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// Scope is how fine-grained an event is; lower values are coarser and
// survive lower trace levels.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // config, path expansion, reporting
	ScopePass                    // the lint run, fix passes
	ScopeFile                    // read, parse, rules and write of one file
	ScopeNode                    // listener dispatch
)

var scopeNames = [...]string{
	ScopeDriver: "driver",
	ScopePass:   "pass",
	ScopeFile:   "file",
	ScopeNode:   "node",
}

func (s Scope) String() string {
	if int(s) < len(scopeNames) && scopeNames[s] != "" {
		return scopeNames[s]
	}
	return "unknown"
}

// Event is one record written by a Tracer.
type Event struct {
	Time     time.Time
	Seq      uint64 // monotonic across the process
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for a root span
	GID      uint64 // goroutine that emitted the event
	Name     string // "lint", "file", "parse", "rules", ...
	Detail   string
	// Extra holds labels: path and run_id from the context, plus
	// heartbeat counters.
	Extra map[string]string
}

// Path is the file the event belongs to, if it was begun under WithFile.
func (ev *Event) Path() string { return ev.Extra["path"] }
