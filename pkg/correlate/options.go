package correlate

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/correlate/pkg/correlationid"
)

// DefaultHeaderName is the header read from requests and echoed on responses.
const DefaultHeaderName = "X-Correlation-ID"

// Option configures a Coordinator.
type Option func(*options)

type options struct {
	headerName     string
	trustedSources []string
	generator      correlationid.Generator
	validator      correlationid.Validator
	echo           bool
	logger         *slog.Logger
	observer       Observer
	errs           []error
}

func defaultOptions() *options {
	return &options{
		headerName: DefaultHeaderName,
		echo:       true,
	}
}

func (o *options) fail(err error) {
	o.errs = append(o.errs, err)
}

func (o *options) err() error {
	if len(o.errs) == 0 {
		return nil
	}
	return errors.Join(append([]error{ErrInvalidConfig}, o.errs...)...)
}

// WithHeaderName sets the request and response header carrying the id.
// The name is canonicalised; empty names are rejected when the Coordinator is built.
func WithHeaderName(name string) Option {
	return func(o *options) {
		name = strings.TrimSpace(name)
		if name == "" {
			o.fail(ErrEmptyHeaderName)
			return
		}
		o.headerName = http.CanonicalHeaderKey(name)
	}
}

// WithTrustedSources lists the peers (IP addresses or canonical CIDR ranges)
// allowed to supply their own id. Repeated use appends.
func WithTrustedSources(sources ...string) Option {
	return func(o *options) {
		o.trustedSources = append(o.trustedSources, sources...)
	}
}

// WithGenerator replaces the default UUIDv7 generator.
func WithGenerator(g correlationid.Generator) Option {
	return func(o *options) {
		if isNilGenerator(g) {
			o.fail(ErrNilGenerator)
			return
		}
		o.generator = g
	}
}

// WithValidator enables validation of ids accepted from trusted peers.
// Without this option incoming ids from trusted peers are used unchecked.
func WithValidator(v correlationid.Validator) Option {
	return func(o *options) {
		if isNilValidator(v) {
			o.fail(ErrNilValidator)
			return
		}
		o.validator = v
	}
}

// WithEcho controls whether the resolved id is written to the response header.
// Enabled by default.
func WithEcho(enabled bool) Option {
	return func(o *options) { o.echo = enabled }
}

// WithLogger sets the logger for diagnostics. Nil keeps the discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithObserver registers an Observer notified of every resolution outcome.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

func isNilGenerator(g correlationid.Generator) bool {
	if g == nil {
		return true
	}
	f, ok := g.(correlationid.GeneratorFunc)
	return ok && f == nil
}

func isNilValidator(v correlationid.Validator) bool {
	if v == nil {
		return true
	}
	f, ok := v.(correlationid.ValidatorFunc)
	return ok && f == nil
}
