package trace

import "context"

type (
	tracerKey struct{}
	parentKey struct{}
)

// WithTracer attaches t to ctx. A nil tracer is stored as Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// FromContext returns the tracer carried by ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx != nil {
		if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
			return t
		}
	}
	return Nop
}

// WithParent records id as the span that new spans under ctx hang off.
func WithParent(ctx context.Context, id uint64) context.Context {
	return context.WithValue(ctx, parentKey{}, id)
}

// ParentFrom returns the span id recorded by WithParent, 0 at the root.
func ParentFrom(ctx context.Context) uint64 {
	if ctx == nil {
		return 0
	}
	id, _ := ctx.Value(parentKey{}).(uint64)
	return id
}

// Start opens a span with the tracer and parent found in ctx and returns a
// context in which the new span is the parent.
func Start(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	span := Begin(FromContext(ctx), scope, name, ParentFrom(ctx))
	return WithParent(ctx, span.ID()), span
}
