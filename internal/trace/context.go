package trace

import "context"

type (
	tracerKey   struct{}
	parentKey   struct{}
	inflightKey struct{}
)

// FromContext returns the tracer stored by WithTracer, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
		return t
	}
	return Nop
}

// WithTracer attaches a Tracer to context. nil is stored as Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// WithParent records the span that passes started from ctx hang under,
// normally the command's ScopeDriver span.
func WithParent(ctx context.Context, s *Span) context.Context {
	if s.ID() == 0 {
		return ctx
	}
	return context.WithValue(ctx, parentKey{}, s.ID())
}

// ParentID returns the span ID set by WithParent, 0 if none.
func ParentID(ctx context.Context) uint64 {
	if ctx == nil {
		return 0
	}
	id, _ := ctx.Value(parentKey{}).(uint64)
	return id
}

// WithInflight attaches the registry fmt workers report their files to.
func WithInflight(ctx context.Context, in *Inflight) context.Context {
	if in == nil {
		return ctx
	}
	return context.WithValue(ctx, inflightKey{}, in)
}

// InflightFrom returns the registry set by WithInflight. The nil result is
// usable: its methods do nothing.
func InflightFrom(ctx context.Context) *Inflight {
	if ctx == nil {
		return nil
	}
	in, _ := ctx.Value(inflightKey{}).(*Inflight)
	return in
}
