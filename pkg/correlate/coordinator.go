package correlate

import (
	"context"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/dmitrymomot/correlate/pkg/reqctx"
	"github.com/dmitrymomot/correlate/pkg/trustednet"
)

// Coordinator runs the per-request lifecycle: resolve the id when a request
// starts, publish it through reqctx, and restore the context when the request
// ends. One Coordinator serves all requests; per-request state travels in the
// context returned by Start.
type Coordinator struct {
	headerName string
	echo       bool
	resolver   *Resolver
	trust      *trustednet.Store
	observer   Observer
}

// New builds a Coordinator. Invalid trusted sources, an empty header name or
// nil generator/validator options make it fail with an error wrapping
// ErrInvalidConfig and the specific cause.
func New(opts ...Option) (*Coordinator, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	trust, err := trustednet.New(o.trustedSources...)
	if err != nil {
		o.fail(err)
	}
	if err := o.err(); err != nil {
		return nil, err
	}

	observer := o.observer
	if observer == nil {
		observer = ObserverFunc(func(Outcome) {})
	}

	return &Coordinator{
		headerName: o.headerName,
		echo:       o.echo,
		resolver:   NewResolver(trust, o.validator, o.generator, o.logger),
		trust:      trust,
		observer:   observer,
	}, nil
}

// MustNew is like New but panics on invalid configuration.
func MustNew(opts ...Option) *Coordinator {
	c, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// HeaderName returns the canonical header name carrying the id.
func (c *Coordinator) HeaderName() string { return c.headerName }

// EchoEnabled reports whether the id is written to responses.
func (c *Coordinator) EchoEnabled() bool { return c.echo }

// TrustedNetworks returns the parsed trusted sources.
func (c *Coordinator) TrustedNetworks() *trustednet.Store { return c.trust }

type lifecycleContextKey struct{}

// lifecycle is the per-request carrier for the resolved id and its token.
type lifecycle struct {
	id        string
	outcome   Outcome
	token     *reqctx.Token
	finalized atomic.Bool
}

// Start resolves the id for a request from the peer address and the raw
// incoming header value, stores it in a fresh reqctx scope and returns the
// derived context together with the id. Pass the returned context to End.
func (c *Coordinator) Start(ctx context.Context, peer, incoming string) (context.Context, string) {
	if ctx == nil {
		ctx = context.Background()
	}

	id, outcome := c.resolver.Resolve(ctx, incoming, peer)
	c.observer.ObserveResolution(outcome)

	ctx, token := reqctx.Set(reqctx.WithScope(ctx), reqctx.CorrelationID, id)
	ctx = context.WithValue(ctx, lifecycleContextKey{}, &lifecycle{
		id:      id,
		outcome: outcome,
		token:   token,
	})
	return ctx, id
}

// End finishes the request started with Start. When echo is enabled and
// header is non-nil the id is written to it first, while it is still live;
// then the context is restored. succeeded does not change the cleanup. End is
// a no-op for contexts that never went through Start and for repeated calls.
func (c *Coordinator) End(ctx context.Context, succeeded bool, header http.Header) {
	lc := lifecycleFrom(ctx)
	if lc == nil || !lc.finalized.CompareAndSwap(false, true) {
		return
	}

	if c.echo && header != nil {
		header.Set(c.headerName, lc.id)
	}
	reqctx.Restore(lc.token)
}

// FromContext returns the id resolved by Start for this request, even after
// End has restored the ambient value.
func FromContext(ctx context.Context) string {
	if lc := lifecycleFrom(ctx); lc != nil {
		return lc.id
	}
	return ""
}

// OutcomeFromContext returns how the request's id was obtained.
func OutcomeFromContext(ctx context.Context) Outcome {
	if lc := lifecycleFrom(ctx); lc != nil {
		return lc.outcome
	}
	return OutcomeUnresolved
}

func lifecycleFrom(ctx context.Context) *lifecycle {
	if ctx == nil {
		return nil
	}
	lc, _ := ctx.Value(lifecycleContextKey{}).(*lifecycle)
	return lc
}

// LoggerExtractor returns a logger.ContextExtractor adding the resolution
// outcome as "correlation_outcome" to records logged inside a request.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if lc := lifecycleFrom(ctx); lc != nil {
			return slog.String("correlation_outcome", lc.outcome.String()), true
		}
		return slog.Attr{}, false
	}
}
