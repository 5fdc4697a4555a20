package reqctx

import (
	"context"
	"sync"
	"sync/atomic"
)

// Key selects one of the request-scoped values.
type Key int

const (
	// CorrelationID holds the resolved correlation identifier.
	CorrelationID Key = iota
	// UserID holds the authenticated principal, when known.
	UserID

	keyCount
)

func (k Key) String() string {
	switch k {
	case CorrelationID:
		return "correlation_id"
	case UserID:
		return "user_id"
	default:
		return "unknown"
	}
}

func (k Key) valid() bool { return k >= 0 && k < keyCount }

type scopeContextKey struct{}

// scope is the per-request cell. Each key keeps a stack of values so that
// nested Set/Restore pairs unwind in order. Every pushed entry gets an id
// unique within the scope; a token only acts on the entry it created.
type scope struct {
	mu     sync.RWMutex
	values [keyCount][]entry
	nextID uint64
}

type entry struct {
	id    uint64
	value string
}

// push appends value for key and returns its depth and id. Callers hold mu.
func (s *scope) push(key Key, value string) (int, uint64) {
	s.nextID++
	depth := len(s.values[key])
	s.values[key] = append(s.values[key], entry{id: s.nextID, value: value})
	return depth, s.nextID
}

// Token pairs a Set with its Restore. It is owned by the code that called Set
// and must not be shared between requests.
type Token struct {
	s     *scope
	key   Key
	depth int
	id    uint64
	used  atomic.Bool
}

// WithScope returns a child of ctx with a fresh, empty scope. Values set in an
// outer scope are not visible through the returned context.
func WithScope(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, scopeContextKey{}, &scope{})
}

// Set makes value the current value of key for ctx and every context derived
// from it. The returned context carries the scope and must be passed on; it is
// ctx itself when ctx already has one. The token restores the previous value.
func Set(ctx context.Context, key Key, value string) (context.Context, *Token) {
	if !key.valid() {
		if ctx == nil {
			ctx = context.Background()
		}
		return ctx, nil
	}

	s := scopeFrom(ctx)
	if s == nil {
		ctx = WithScope(ctx)
		s = scopeFrom(ctx)
	}

	s.mu.Lock()
	depth, id := s.push(key, value)
	s.mu.Unlock()

	return ctx, &Token{s: s, key: key, depth: depth, id: id}
}

// Get returns the current value of key visible through ctx.
func Get(ctx context.Context, key Key) (string, bool) {
	s := scopeFrom(ctx)
	if s == nil || !key.valid() {
		return "", false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	stack := s.values[key]
	if len(stack) == 0 {
		return "", false
	}
	return stack[len(stack)-1].value, true
}

// Restore returns the token's key to the value it had before the paired Set,
// discarding anything set after it. Nil and already used tokens are ignored,
// as are stale ones whose entry was already discarded by restoring an outer
// token, so calling Restore twice is safe.
func Restore(t *Token) {
	if t == nil || t.s == nil || !t.used.CompareAndSwap(false, true) {
		return
	}

	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	stack := t.s.values[t.key]
	if len(stack) <= t.depth || stack[t.depth].id != t.id {
		return
	}
	clear(stack[t.depth:])
	t.s.values[t.key] = stack[:t.depth]
}

// Fork returns a child of ctx with a new scope holding a snapshot of the
// current values. Use it for goroutines that may outlive the request: they
// keep their values after the request restores its own.
func Fork(ctx context.Context) context.Context {
	child := &scope{}
	if s := scopeFrom(ctx); s != nil {
		s.mu.RLock()
		for k, stack := range s.values {
			if n := len(stack); n > 0 {
				child.push(Key(k), stack[n-1].value)
			}
		}
		s.mu.RUnlock()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, scopeContextKey{}, child)
}

// CorrelationIDFromContext returns the current correlation id or "".
func CorrelationIDFromContext(ctx context.Context) string {
	id, _ := Get(ctx, CorrelationID)
	return id
}

// UserIDFromContext returns the current user id or "".
func UserIDFromContext(ctx context.Context) string {
	id, _ := Get(ctx, UserID)
	return id
}

func scopeFrom(ctx context.Context) *scope {
	if ctx == nil {
		return nil
	}
	s, _ := ctx.Value(scopeContextKey{}).(*scope)
	return s
}
