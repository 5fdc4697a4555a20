package logger

import (
	"context"
	"log/slog"
	"maps"
)

// ContextExtractor extracts a slog attribute from context.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// LogHandlerDecorator derives attributes from the context of every record:
// the correlation fields of an optional ContextualEnricher first, then any
// ContextExtractor values.
//
// Top-level keys attached through WithAttrs are remembered, so the enricher
// does not stamp a second correlation_id on a logger that already has one.
type LogHandlerDecorator struct {
	next       slog.Handler
	enricher   *ContextualEnricher
	extractors []ContextExtractor
	preset     map[string]struct{}
	grouped    bool
}

// NewLogHandlerDecorator wraps next. enricher may be nil to skip correlation
// fields; nil extractors are dropped.
func NewLogHandlerDecorator(next slog.Handler, enricher *ContextualEnricher, extractors ...ContextExtractor) *LogHandlerDecorator {
	clean := make([]ContextExtractor, 0, len(extractors))
	for _, ex := range extractors {
		if ex != nil {
			clean = append(clean, ex)
		}
	}
	return &LogHandlerDecorator{next: next, enricher: enricher, extractors: clean}
}

func (h *LogHandlerDecorator) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *LogHandlerDecorator) Handle(ctx context.Context, rec slog.Record) error {
	if h.enricher != nil {
		h.enricher.Enrich(ctx, &rec, h.isPreset)
	}
	for _, ex := range h.extractors {
		if attr, ok := ex(ctx); ok {
			rec.AddAttrs(attr)
		}
	}
	return h.next.Handle(ctx, rec)
}

func (h *LogHandlerDecorator) isPreset(key string) bool {
	_, ok := h.preset[key]
	return ok
}

func (h *LogHandlerDecorator) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	clone := *h
	clone.next = h.next.WithAttrs(attrs)
	// Attributes inside a group never collide with the top-level fields.
	if !h.grouped {
		clone.preset = maps.Clone(h.preset)
		if clone.preset == nil {
			clone.preset = make(map[string]struct{}, len(attrs))
		}
		for _, a := range attrs {
			clone.preset[a.Key] = struct{}{}
		}
	}
	return &clone
}

func (h *LogHandlerDecorator) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.next = h.next.WithGroup(name)
	clone.grouped = true
	return &clone
}
