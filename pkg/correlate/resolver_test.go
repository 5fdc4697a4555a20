package correlate_test

import (
	"bytes"
	"context"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/correlate/pkg/correlate"
	"github.com/dmitrymomot/correlate/pkg/correlationid"
	"github.com/dmitrymomot/correlate/pkg/trustednet"
)

const validUUID = "550e8400-e29b-41d4-a716-446655440000"

func fixedGenerator(id string) correlationid.Generator {
	return correlationid.GeneratorFunc(func() string { return id })
}

func TestResolverResolve(t *testing.T) {
	trust := trustednet.MustNew("10.0.0.0/8", "192.168.1.10")

	tests := []struct {
		name     string
		incoming string
		peer     string
		wantID   string
		want     correlate.Outcome
	}{
		{"trusted valid id", validUUID, "10.1.2.3", validUUID, correlate.OutcomeAcceptedIncoming},
		{"trusted single host", validUUID, "192.168.1.10", validUUID, correlate.OutcomeAcceptedIncoming},
		{"trimmed before use", "  " + validUUID + "\t", "10.1.2.3", validUUID, correlate.OutcomeAcceptedIncoming},
		{"untrusted peer", validUUID, "203.0.113.50", "gen-1", correlate.OutcomeRejectedUntrusted},
		{"unparseable peer", validUUID, "not-an-ip", "gen-1", correlate.OutcomeRejectedUntrusted},
		{"trusted invalid id", "bad-format", "10.1.2.3", "gen-1", correlate.OutcomeRejectedInvalid},
		{"no header", "", "10.1.2.3", "gen-1", correlate.OutcomeGeneratedNoHeader},
		{"whitespace header", "   ", "203.0.113.50", "gen-1", correlate.OutcomeGeneratedNoHeader},
	}

	r := correlate.NewResolver(trust, correlationid.UUIDValidator(), fixedGenerator("gen-1"), nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, outcome := r.Resolve(context.Background(), tt.incoming, tt.peer)
			assert.Equal(t, tt.wantID, id)
			assert.Equal(t, tt.want, outcome)
		})
	}
}

func TestResolverSkipsValidatorForUntrustedPeers(t *testing.T) {
	var calls atomic.Int32
	validator := correlationid.ValidatorFunc(func(string) bool {
		calls.Add(1)
		return true
	})

	r := correlate.NewResolver(trustednet.MustNew("10.0.0.0/8"), validator, fixedGenerator("gen"), nil)

	_, outcome := r.Resolve(context.Background(), validUUID, "203.0.113.50")
	assert.Equal(t, correlate.OutcomeRejectedUntrusted, outcome)
	assert.Zero(t, calls.Load())

	_, outcome = r.Resolve(context.Background(), validUUID, "10.0.0.1")
	assert.Equal(t, correlate.OutcomeAcceptedIncoming, outcome)
	assert.Equal(t, int32(1), calls.Load())
}

func TestResolverWithoutValidatorAcceptsAnyTrustedValue(t *testing.T) {
	r := correlate.NewResolver(trustednet.MustNew("127.0.0.1"), nil, nil, nil)

	id, outcome := r.Resolve(context.Background(), "upstream-trace-42", "127.0.0.1")
	assert.Equal(t, "upstream-trace-42", id)
	assert.Equal(t, correlate.OutcomeAcceptedIncoming, outcome)
}

func TestResolverNilTrustStoreTrustsNobody(t *testing.T) {
	r := correlate.NewResolver(nil, nil, nil, nil)

	id, outcome := r.Resolve(context.Background(), validUUID, "127.0.0.1")
	assert.Equal(t, correlate.OutcomeRejectedUntrusted, outcome)
	assert.NotEqual(t, validUUID, id)
	assert.Len(t, id, 32)
}

func TestResolverLogsRejectedInvalidWithoutValue(t *testing.T) {
	buf := &bytes.Buffer{}
	log := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	r := correlate.NewResolver(
		trustednet.MustNew("10.0.0.0/8"),
		correlationid.UUIDValidator(),
		fixedGenerator("gen-1"),
		log,
	)

	id, outcome := r.Resolve(context.Background(), "bad-format", "10.0.0.5")
	require.Equal(t, correlate.OutcomeRejectedInvalid, outcome)
	assert.Equal(t, "gen-1", id)

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, "outcome=rejected_invalid")
	assert.Contains(t, out, "length=10")
	assert.NotContains(t, out, "bad-format")
}

func TestResolverDoesNotLogOtherOutcomes(t *testing.T) {
	buf := &bytes.Buffer{}
	log := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	r := correlate.NewResolver(trustednet.MustNew("10.0.0.0/8"), correlationid.UUIDValidator(), nil, log)

	r.Resolve(context.Background(), validUUID, "10.0.0.5")
	r.Resolve(context.Background(), validUUID, "203.0.113.1")
	r.Resolve(context.Background(), "", "10.0.0.5")
	assert.Empty(t, buf.String())
}
