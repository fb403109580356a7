package trace

import "context"

type tracerKey struct{}

type spanKey struct{}

// FromContext returns the tracer attached to ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
		return t
	}
	return Nop
}

// WithTracer attaches t to ctx; nil means Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// SpanContext is inherited by spans begun under a context: the parent span
// and the lint run and file the work belongs to.
type SpanContext struct {
	SpanID uint64
	RunID  string
	File   string
}

// CurrentSpan returns the span context of ctx, zero when there is none.
func CurrentSpan(ctx context.Context) SpanContext {
	if ctx == nil {
		return SpanContext{}
	}
	if sc, ok := ctx.Value(spanKey{}).(SpanContext); ok {
		return sc
	}
	return SpanContext{}
}

// WithSpanContext replaces the span context of ctx.
func WithSpanContext(ctx context.Context, sc SpanContext) context.Context {
	if ctx == nil {
		return nil
	}
	return context.WithValue(ctx, spanKey{}, sc)
}

// WithRun labels spans begun under the returned context with runID.
func WithRun(ctx context.Context, runID string) context.Context {
	sc := CurrentSpan(ctx)
	sc.RunID = runID
	return WithSpanContext(ctx, sc)
}

// WithFile labels spans begun under the returned context with path.
func WithFile(ctx context.Context, path string) context.Context {
	sc := CurrentSpan(ctx)
	sc.File = path
	return WithSpanContext(ctx, sc)
}

// Start begins a span with the tracer and parent of ctx and returns a
// context in which it is the parent. The run id and file labels of ctx are
// copied onto the span.
func Start(ctx context.Context, scope Scope, name string) (*Span, context.Context) {
	sc := CurrentSpan(ctx)
	var extra map[string]string
	if sc.RunID != "" || sc.File != "" {
		extra = make(map[string]string, 2)
		if sc.RunID != "" {
			extra["run_id"] = sc.RunID
		}
		if sc.File != "" {
			extra["path"] = sc.File
		}
	}
	sp := begin(FromContext(ctx), scope, name, sc.SpanID, extra)
	sc.SpanID = sp.ID()
	return sp, WithSpanContext(ctx, sc)
}
