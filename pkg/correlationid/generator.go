package correlationid

import (
	"encoding/binary"
	"encoding/hex"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// Generator produces new correlation identifiers.
// Implementations must be safe for concurrent use and must not fail.
type Generator interface {
	Generate() string
}

// GeneratorFunc adapts a plain function to the Generator interface.
type GeneratorFunc func() string

// Generate calls f().
func (f GeneratorFunc) Generate() string { return f() }

// uuidV7Generator renders UUIDv7 values as 32 lowercase hex characters.
// When the primary source fails it switches to a ULID built from a
// process-local entropy stream, so a request never fails on id generation.
type uuidV7Generator struct {
	newV7 func() (uuid.UUID, error)
	now   func() time.Time

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewUUIDv7Generator returns the default generator: time-ordered UUIDv7
// identifiers (48-bit millisecond timestamp, version/variant bits, 74 random bits)
// rendered without separators.
func NewUUIDv7Generator() Generator {
	return newUUIDv7Generator(uuid.NewV7, time.Now)
}

func newUUIDv7Generator(newV7 func() (uuid.UUID, error), now func() time.Time) *uuidV7Generator {
	return &uuidV7Generator{newV7: newV7, now: now}
}

func (g *uuidV7Generator) Generate() string {
	id, err := g.newV7()
	if err != nil {
		return g.fallback()
	}
	return hex.EncodeToString(id[:])
}

// fallback builds a ULID (same 48-bit millisecond prefix as UUIDv7) and stamps
// the v7 version and RFC 9562 variant bits on it. When no ULID can be built
// either, a random UUIDv4 is returned.
func (g *uuidV7Generator) fallback() string {
	id, err := g.newULID(ulid.Timestamp(g.now()))
	if err != nil {
		v4 := uuid.New()
		return hex.EncodeToString(v4[:])
	}

	b := [16]byte(id)
	b[6] = (b[6] & 0x0f) | 0x70
	b[8] = (b[8] & 0x3f) | 0x80
	return hex.EncodeToString(b[:])
}

func (g *uuidV7Generator) newULID(ms uint64) (ulid.ULID, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.entropy == nil {
		g.entropy = newFallbackEntropy()
	}
	id, err := ulid.New(ms, g.entropy)
	if err == nil {
		return id, nil
	}
	// Monotonic overflow within one millisecond: start a fresh stream.
	// A timestamp past ulid.MaxTime fails again and is returned.
	g.entropy = newFallbackEntropy()
	return ulid.New(ms, g.entropy)
}

func newFallbackEntropy() *ulid.MonotonicEntropy {
	var seed [32]byte
	for i := 0; i < len(seed); i += 8 {
		binary.LittleEndian.PutUint64(seed[i:], rand.Uint64())
	}
	return ulid.Monotonic(rand.NewChaCha8(seed), 0)
}
