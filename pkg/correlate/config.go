package correlate

import "github.com/dmitrymomot/correlate/pkg/correlationid"

// Config is the environment-driven configuration of a Coordinator.
type Config struct {
	HeaderName     string   `env:"CORRELATION_HEADER_NAME" envDefault:"X-Correlation-ID"` // HeaderName is the request/response header carrying the id.
	TrustedSources []string `env:"CORRELATION_TRUSTED_SOURCES" envSeparator:","`          // TrustedSources lists IPs or canonical CIDR ranges allowed to supply ids.
	EchoHeader     bool     `env:"CORRELATION_ECHO_HEADER" envDefault:"true"`             // EchoHeader writes the id to the response.
	ValidateUUID   bool     `env:"CORRELATION_VALIDATE_UUID" envDefault:"false"`          // ValidateUUID accepts only UUID-shaped incoming ids.
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		HeaderName: DefaultHeaderName,
		EchoHeader: true,
	}
}

// NewFromConfig builds a Coordinator from cfg. An empty HeaderName keeps the
// default; EchoHeader is always applied. Extra options are applied after the
// config-derived ones and win on conflict.
func NewFromConfig(cfg Config, opts ...Option) (*Coordinator, error) {
	configOpts := make([]Option, 0, 4+len(opts))

	if cfg.HeaderName != "" {
		configOpts = append(configOpts, WithHeaderName(cfg.HeaderName))
	}
	if len(cfg.TrustedSources) > 0 {
		configOpts = append(configOpts, WithTrustedSources(cfg.TrustedSources...))
	}
	configOpts = append(configOpts, WithEcho(cfg.EchoHeader))
	if cfg.ValidateUUID {
		configOpts = append(configOpts, WithValidator(correlationid.UUIDValidator()))
	}

	configOpts = append(configOpts, opts...)
	return New(configOpts...)
}
