package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/correlate/pkg/logger"
	"github.com/dmitrymomot/correlate/pkg/reqctx"
)

func recordAttrs(rec slog.Record) map[string]string {
	out := make(map[string]string)
	rec.Attrs(func(a slog.Attr) bool {
		out[a.Key] = a.Value.String()
		return true
	})
	return out
}

func TestContextualEnricher(t *testing.T) {
	t.Run("placeholder outside a request", func(t *testing.T) {
		rec := slog.NewRecord(time.Now(), slog.LevelInfo, "boot", 0)
		ok := logger.ContextualEnricher{}.Enrich(context.Background(), &rec, nil)
		require.True(t, ok)

		attrs := recordAttrs(rec)
		assert.Equal(t, "-", attrs[logger.CorrelationIDKey])
		assert.Equal(t, "-", attrs[logger.UserIDKey])
	})

	t.Run("values from request scope", func(t *testing.T) {
		ctx, _ := reqctx.Set(context.Background(), reqctx.CorrelationID, "rc-a")
		ctx, _ = reqctx.Set(ctx, reqctx.UserID, "u-7")

		rec := slog.NewRecord(time.Now(), slog.LevelInfo, "handled", 0)
		require.True(t, logger.ContextualEnricher{}.Enrich(ctx, &rec, nil))

		attrs := recordAttrs(rec)
		assert.Equal(t, "rc-a", attrs[logger.CorrelationIDKey])
		assert.Equal(t, "u-7", attrs[logger.UserIDKey])
	})

	t.Run("existing attribute wins", func(t *testing.T) {
		ctx, _ := reqctx.Set(context.Background(), reqctx.CorrelationID, "rc-a")

		rec := slog.NewRecord(time.Now(), slog.LevelInfo, "job", 0)
		rec.AddAttrs(logger.CorrelationID("job-abc-123"))
		require.True(t, logger.ContextualEnricher{}.Enrich(ctx, &rec, nil))

		assert.Equal(t, 2, rec.NumAttrs())
		assert.Equal(t, "job-abc-123", recordAttrs(rec)[logger.CorrelationIDKey])
	})

	t.Run("preset keys are skipped", func(t *testing.T) {
		ctx, _ := reqctx.Set(context.Background(), reqctx.CorrelationID, "rc-a")
		preset := func(key string) bool { return key == logger.CorrelationIDKey }

		rec := slog.NewRecord(time.Now(), slog.LevelInfo, "job", 0)
		require.True(t, logger.ContextualEnricher{}.Enrich(ctx, &rec, preset))

		attrs := recordAttrs(rec)
		assert.NotContains(t, attrs, logger.CorrelationIDKey)
		assert.Equal(t, "-", attrs[logger.UserIDKey])
	})

	t.Run("custom placeholder", func(t *testing.T) {
		rec := slog.NewRecord(time.Now(), slog.LevelInfo, "boot", 0)
		logger.ContextualEnricher{Placeholder: "n/a"}.Enrich(context.Background(), &rec, nil)
		assert.Equal(t, "n/a", recordAttrs(rec)[logger.UserIDKey])
	})
}

func TestLogHandlerDecorator(t *testing.T) {
	newLogger := func(buf *bytes.Buffer) *slog.Logger {
		base := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
		return slog.New(logger.NewContextualHandler(base, ""))
	}

	t.Run("stamps placeholder", func(t *testing.T) {
		buf := &bytes.Buffer{}
		newLogger(buf).Info("boot")
		assert.Contains(t, buf.String(), "correlation_id=- user_id=-")
	})

	t.Run("logger With value is kept", func(t *testing.T) {
		buf := &bytes.Buffer{}
		ctx, _ := reqctx.Set(context.Background(), reqctx.CorrelationID, "rc-b")

		newLogger(buf).With(logger.CorrelationID("job-abc-123")).InfoContext(ctx, "job")
		out := buf.String()
		assert.Contains(t, out, "correlation_id=job-abc-123")
		assert.NotContains(t, out, "rc-b")
		assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("correlation_id=")))
	})

	t.Run("grouped With does not suppress top-level ids", func(t *testing.T) {
		buf := &bytes.Buffer{}
		ctx, _ := reqctx.Set(context.Background(), reqctx.CorrelationID, "rc-c")

		newLogger(buf).WithGroup("job").With(logger.CorrelationID("inner")).InfoContext(ctx, "run")
		out := buf.String()
		assert.Contains(t, out, "job.correlation_id=inner")
		assert.Contains(t, out, "job.correlation_id=rc-c")
	})

	t.Run("restored scope falls back to placeholder", func(t *testing.T) {
		buf := &bytes.Buffer{}
		ctx, tok := reqctx.Set(context.Background(), reqctx.CorrelationID, "rc-d")
		reqctx.Restore(tok)

		newLogger(buf).InfoContext(ctx, "after")
		assert.Contains(t, buf.String(), "correlation_id=-")
	})

	t.Run("extractors run after correlation fields", func(t *testing.T) {
		buf := &bytes.Buffer{}
		base := slog.NewTextHandler(buf, nil)
		tenant := func(context.Context) (slog.Attr, bool) { return slog.String("tenant", "acme"), true }
		skip := func(context.Context) (slog.Attr, bool) { return slog.Attr{}, false }

		ctx, _ := reqctx.Set(context.Background(), reqctx.UserID, "u-9")
		h := logger.NewLogHandlerDecorator(base, &logger.ContextualEnricher{}, tenant, nil, skip)
		slog.New(h).InfoContext(ctx, "hit")
		assert.Contains(t, buf.String(), "correlation_id=- user_id=u-9 tenant=acme")
	})

	t.Run("without enricher only extractors run", func(t *testing.T) {
		buf := &bytes.Buffer{}
		base := slog.NewTextHandler(buf, nil)
		tenant := func(context.Context) (slog.Attr, bool) { return slog.String("tenant", "acme"), true }

		slog.New(logger.NewLogHandlerDecorator(base, nil, tenant)).Info("hit")
		out := buf.String()
		assert.Contains(t, out, "tenant=acme")
		assert.NotContains(t, out, "correlation_id")
	})

	t.Run("enabled follows next handler", func(t *testing.T) {
		base := slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})
		h := logger.NewContextualHandler(base, "")
		assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
		assert.True(t, h.Enabled(context.Background(), slog.LevelError))
	})
}
