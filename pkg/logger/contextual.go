package logger

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/correlate/pkg/reqctx"
)

const (
	// CorrelationIDKey is the record attribute holding the correlation id.
	CorrelationIDKey = "correlation_id"
	// UserIDKey is the record attribute holding the user id.
	UserIDKey = "user_id"
	// Placeholder is written when no value is set for the request.
	Placeholder = "-"
)

// ContextualEnricher stamps correlation_id and user_id from reqctx onto log
// records. Attributes already present on a record are left alone, so ids
// attached by hand (for example in background jobs) win.
type ContextualEnricher struct {
	// Placeholder replaces missing values. Empty means the package Placeholder.
	Placeholder string
}

// Enrich adds the missing attributes to rec. preset reports keys already
// attached outside the record, such as through Logger.With; it may be nil.
// Enrich always returns true: records are never dropped.
func (e ContextualEnricher) Enrich(ctx context.Context, rec *slog.Record, preset func(key string) bool) bool {
	hasCID := preset != nil && preset(CorrelationIDKey)
	hasUID := preset != nil && preset(UserIDKey)

	rec.Attrs(func(a slog.Attr) bool {
		switch a.Key {
		case CorrelationIDKey:
			hasCID = true
		case UserIDKey:
			hasUID = true
		}
		return !(hasCID && hasUID)
	})

	if !hasCID {
		rec.AddAttrs(slog.String(CorrelationIDKey, e.lookup(ctx, reqctx.CorrelationID)))
	}
	if !hasUID {
		rec.AddAttrs(slog.String(UserIDKey, e.lookup(ctx, reqctx.UserID)))
	}
	return true
}

func (e ContextualEnricher) lookup(ctx context.Context, key reqctx.Key) string {
	if v, ok := reqctx.Get(ctx, key); ok {
		return v
	}
	if e.Placeholder != "" {
		return e.Placeholder
	}
	return Placeholder
}

// NewContextualHandler wraps next so every record carries correlation_id and
// user_id. placeholder may be empty.
func NewContextualHandler(next slog.Handler, placeholder string) slog.Handler {
	return NewLogHandlerDecorator(next, &ContextualEnricher{Placeholder: placeholder})
}
