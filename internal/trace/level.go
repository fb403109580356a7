package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // rule faults, stalled files, failed writes
	LevelPhase        // config, path expansion, the lint run
	LevelDetail       // one span per file with its parse, rules and write stages
	LevelDebug        // rule dispatch on nodes
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel reads a --trace-level value.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// ShouldEmit reports whether span and point events of scope pass at this
// level. Level and scope values line up: phase admits driver and pass
// scopes, detail adds file, debug adds node.
func (l Level) ShouldEmit(scope Scope) bool {
	if l <= LevelError {
		return false
	}
	return uint8(scope) <= uint8(l)
}

// accepts is the filter shared by the concrete tracers. Errors pass at any
// enabled level and heartbeats from phase up.
func (l Level) accepts(ev *Event) bool {
	switch ev.Kind {
	case KindError:
		return l > LevelOff
	case KindHeartbeat:
		return l > LevelError
	}
	return l.ShouldEmit(ev.Scope)
}
