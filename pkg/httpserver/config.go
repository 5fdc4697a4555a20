package httpserver

import "time"

// Config mirrors the server options as HTTP_* environment variables, so the
// demo can load it through pkg/config next to correlate.Config.
type Config struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// Options converts cfg into options. Empty or non-positive fields produce no
// option, which leaves New's defaults in place instead of panicking.
func (cfg Config) Options() []Option {
	var opts []Option
	if cfg.Addr != "" {
		opts = append(opts, WithAddr(cfg.Addr))
	}
	for _, d := range []struct {
		value time.Duration
		apply func(time.Duration) Option
	}{
		{cfg.ReadTimeout, WithReadTimeout},
		{cfg.WriteTimeout, WithWriteTimeout},
		{cfg.IdleTimeout, WithIdleTimeout},
		{cfg.ShutdownTimeout, WithShutdownTimeout},
	} {
		if d.value > 0 {
			opts = append(opts, d.apply(d.value))
		}
	}
	return opts
}

// NewFromConfig is New(cfg.Options()...) followed by opts, which win on conflict.
func NewFromConfig(cfg Config, opts ...Option) *Server {
	return New(append(cfg.Options(), opts...)...)
}
