package correlate

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/correlate/pkg/correlationid"
	"github.com/dmitrymomot/correlate/pkg/logger"
	"github.com/dmitrymomot/correlate/pkg/trustednet"
)

// Resolver decides which correlation id is authoritative for a request.
// It performs no I/O and is safe for concurrent use.
type Resolver struct {
	trust     *trustednet.Store
	validator correlationid.Validator
	generator correlationid.Generator
	logger    *slog.Logger
}

// NewResolver builds a Resolver. A nil trust store trusts nobody, a nil
// validator skips validation, a nil generator falls back to UUIDv7 and a nil
// logger discards output.
func NewResolver(trust *trustednet.Store, validator correlationid.Validator, generator correlationid.Generator, log *slog.Logger) *Resolver {
	if generator == nil {
		generator = correlationid.NewUUIDv7Generator()
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Resolver{
		trust:     trust,
		validator: validator,
		generator: generator,
		logger:    log,
	}
}

// Resolve returns the id to use for the request and how it was chosen.
// incoming is the raw header value; surrounding whitespace is ignored and an
// empty value counts as absent. Trust is checked before validation, so values
// from untrusted peers never reach the validator.
func (r *Resolver) Resolve(ctx context.Context, incoming, peer string) (string, Outcome) {
	incoming = strings.TrimSpace(incoming)

	switch {
	case incoming == "":
		return r.generator.Generate(), OutcomeGeneratedNoHeader
	case !r.trust.IsTrusted(peer):
		return r.generator.Generate(), OutcomeRejectedUntrusted
	case r.validator == nil || r.validator.Valid(incoming):
		return incoming, OutcomeAcceptedIncoming
	default:
		// The rejected value stays out of the log: it is attacker-controllable.
		r.logger.DebugContext(ctx, "correlation id failed validation, generating new id",
			logger.Component("correlate"),
			logger.Outcome(OutcomeRejectedInvalid.String()),
			slog.Int("length", len(incoming)),
		)
		return r.generator.Generate(), OutcomeRejectedInvalid
	}
}
