package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// cache keeps one parsed value per configuration type.
type cache struct {
	mu     sync.Mutex
	values map[string]any
}

var (
	globalCache = &cache{values: make(map[string]any)}

	dotenvMu     sync.Mutex
	dotenvLoaded bool
)

// Option adjusts how Load reads the environment.
type Option func(*loadOptions)

type loadOptions struct {
	prefix string
}

// WithPrefix prepends prefix to every variable name, so the same struct can
// be loaded for several instances (for example PUBLIC_HTTP_ADDR and
// ADMIN_HTTP_ADDR). Each prefix is cached separately.
func WithPrefix(prefix string) Option {
	return func(o *loadOptions) { o.prefix = prefix }
}

// Load parses environment variables into v according to its env struct tags.
// The first call loads ./.env when present; variables already set in the
// process environment win over the file. Each configuration type is parsed
// once and later calls receive the cached copy.
//
//	var cfg correlate.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}
	loadDefaultDotenv()

	var o loadOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	key := o.prefix + typeKey[T]()

	globalCache.mu.Lock()
	defer globalCache.mu.Unlock()

	if cached, ok := globalCache.values[key]; ok {
		*v = cached.(T)
		return nil
	}

	var parsed T
	if err := env.ParseWithOptions(&parsed, env.Options{Prefix: o.prefix}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	globalCache.values[key] = parsed
	*v = parsed
	return nil
}

// MustLoad works like Load but panics on failure. Use it for configuration
// the process cannot start without.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("config: failed to load %s: %v", typeKey[T](), err))
	}
}

// Reload drops the cached value for T and parses the environment again.
func Reload[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}
	var o loadOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	globalCache.mu.Lock()
	delete(globalCache.values, o.prefix+typeKey[T]())
	globalCache.mu.Unlock()
	return Load(v, opts...)
}

// LoadEnv loads variables from the given dotenv files, or ./.env when none
// are given. Later files override earlier ones; the process environment
// is only overwritten by files, never by the implicit ./.env of Load.
func LoadEnv(paths ...string) error {
	dotenvMu.Lock()
	defer dotenvMu.Unlock()
	dotenvLoaded = true

	if len(paths) == 0 {
		if err := godotenv.Overload(); err != nil {
			return errors.Join(ErrLoadingEnvFile, err)
		}
		return nil
	}
	for _, p := range paths {
		if err := godotenv.Overload(p); err != nil {
			return errors.Join(ErrLoadingEnvFile, fmt.Errorf("%s: %w", p, err))
		}
	}
	return nil
}

// MustLoadEnv is like LoadEnv but panics on failure.
func MustLoadEnv(paths ...string) {
	if err := LoadEnv(paths...); err != nil {
		panic(err)
	}
}

// ResetCache forgets every parsed configuration and allows ./.env to be
// loaded again. Intended for tests.
func ResetCache() {
	globalCache.mu.Lock()
	clear(globalCache.values)
	globalCache.mu.Unlock()

	dotenvMu.Lock()
	dotenvLoaded = false
	dotenvMu.Unlock()
}

func loadDefaultDotenv() {
	dotenvMu.Lock()
	defer dotenvMu.Unlock()
	if dotenvLoaded {
		return
	}
	dotenvLoaded = true
	// Missing ./.env is fine.
	_ = godotenv.Load()
}

func typeKey[T any]() string {
	t := reflect.TypeFor[T]()
	if t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}
