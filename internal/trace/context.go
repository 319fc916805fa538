package trace

import "context"

type ctxKey struct{}

// FromContext returns the Tracer attached by WithTracer, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(ctxKey{}).(Tracer); ok {
		return t
	}
	return Nop
}

// WithTracer attaches t to ctx. The CLI does this once per command.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, t)
}

// SpanContext is what travels down the call chain: the enclosing span and,
// inside a worker, the relative path of the file being processed.
type SpanContext struct {
	SpanID uint64
	GID    uint64
	File   string
}

type spanCtxKey struct{}

// CurrentSpan returns the span context of ctx; zero if there is none.
func CurrentSpan(ctx context.Context) SpanContext {
	if ctx == nil {
		return SpanContext{}
	}
	sc, _ := ctx.Value(spanCtxKey{}).(SpanContext)
	return sc
}

// WithSpanContext replaces the span context of ctx.
func WithSpanContext(ctx context.Context, sc SpanContext) context.Context {
	if ctx == nil {
		return nil
	}
	return context.WithValue(ctx, spanCtxKey{}, sc)
}

// WithFile marks ctx as belonging to the work on one file. Point and Error
// events emitted under it carry the path in Extra["file"].
func WithFile(ctx context.Context, rel string) context.Context {
	sc := CurrentSpan(ctx)
	sc.File = rel
	return WithSpanContext(ctx, sc)
}

// FileFromContext returns the path set by WithFile, or "".
func FileFromContext(ctx context.Context) string {
	return CurrentSpan(ctx).File
}

const fileKey = "file"

// pointExtra adds the file of sc to extra; extra may be nil.
func pointExtra(sc SpanContext, extra map[string]string) map[string]string {
	if sc.File == "" {
		return extra
	}
	if extra == nil {
		extra = make(map[string]string, 1)
	}
	extra[fileKey] = sc.File
	return extra
}
