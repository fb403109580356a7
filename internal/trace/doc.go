// Package trace records what the linter is doing: driver phases, per-file
// pipelines and rule dispatch. It is used to find slow files and hangs.
//
// # Usage
//
//	typedlint --trace=- --trace-level=phase src/
//
// # Tracers
//
// Nop discards events. StreamTracer writes each event to the --trace output.
// RingTracer keeps the last N events and is dumped on panic along with the
// files still in flight. MultiTracer combines the two in "both" mode.
//
// A Heartbeat reads the run's Progress and reports a file that stays in
// flight too long as a "stalled" error event.
//
// # Levels and scopes
//
// LevelPhase emits ScopeDriver and ScopePass events (config, expand, lint
// run); LevelDetail adds ScopeFile (one span per linted file and its parse,
// rules and fix stages); LevelDebug adds ScopeNode. LevelError emits only
// error points such as rule faults.
//
// # Context propagation
//
//	ctx = trace.WithFile(trace.WithTracer(ctx, tracer), path)
//	span, ctx := trace.Start(ctx, trace.ScopeFile, "file")
//	defer span.End("")
package trace
