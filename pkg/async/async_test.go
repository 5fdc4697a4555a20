package async_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/correlate/pkg/async"
	"github.com/dmitrymomot/correlate/pkg/reqctx"
)

func TestAsync(t *testing.T) {
	t.Parallel()

	t.Run("returns result", func(t *testing.T) {
		f := async.Async(context.Background(), 21, func(_ context.Context, n int) (int, error) {
			return n * 2, nil
		})
		got, err := f.Await()
		require.NoError(t, err)
		assert.Equal(t, 42, got)
		assert.True(t, f.IsComplete())
	})

	t.Run("returns error", func(t *testing.T) {
		boom := errors.New("boom")
		f := async.Async(context.Background(), "x", func(context.Context, string) (bool, error) {
			return false, boom
		})
		_, err := f.Await()
		assert.ErrorIs(t, err, boom)
	})

	t.Run("pre-cancelled context skips fn", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var called atomic.Bool
		f := async.Async(ctx, 0, func(context.Context, int) (int, error) {
			called.Store(true)
			return 1, nil
		})
		_, err := f.Await()
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, called.Load())
	})

	t.Run("panic becomes error", func(t *testing.T) {
		f := async.Async(context.Background(), 0, func(context.Context, int) (int, error) {
			panic("kaboom")
		})
		_, err := f.Await()
		assert.ErrorIs(t, err, async.ErrPanic)
		assert.Contains(t, err.Error(), "kaboom")
	})
}

func TestAsyncKeepsCorrelationAfterRestore(t *testing.T) {
	t.Parallel()

	ctx, token := reqctx.Set(context.Background(), reqctx.CorrelationID, "rc-a")
	ctx, _ = reqctx.Set(ctx, reqctx.UserID, "u-1")

	release := make(chan struct{})
	f := async.Async(ctx, struct{}{}, func(ctx context.Context, _ struct{}) ([2]string, error) {
		<-release
		return [2]string{
			reqctx.CorrelationIDFromContext(ctx),
			reqctx.UserIDFromContext(ctx),
		}, nil
	})

	// The request finishes before the goroutine reads its values.
	reqctx.Restore(token)
	assert.Empty(t, reqctx.CorrelationIDFromContext(ctx))
	close(release)

	got, err := f.Await()
	require.NoError(t, err)
	assert.Equal(t, [2]string{"rc-a", "u-1"}, got)
}

func TestDetach(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	ctx, _ = reqctx.Set(ctx, reqctx.CorrelationID, "rc-b")

	seen := make(chan string, 1)
	release := make(chan struct{})
	f := async.Detach(ctx, func(ctx context.Context) {
		<-release
		if ctx.Err() == nil {
			seen <- reqctx.CorrelationIDFromContext(ctx)
		}
	})
	cancel()
	close(release)

	_, err := f.Await()
	require.NoError(t, err)
	assert.Equal(t, "rc-b", <-seen)
}

func TestAwaitBounds(t *testing.T) {
	t.Parallel()

	block := make(chan struct{})
	defer close(block)
	f := async.Async(context.Background(), 0, func(context.Context, int) (int, error) {
		<-block
		return 1, nil
	})

	_, err := f.AwaitWithTimeout(10 * time.Millisecond)
	assert.ErrorIs(t, err, async.ErrTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = f.AwaitContext(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, f.IsComplete())
}

func TestWaitAll(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	double := func(_ context.Context, n int) (int, error) { return n * 2, nil }

	got, err := async.WaitAll(
		async.Async(ctx, 1, double),
		async.Async(ctx, 2, double),
		async.Async(ctx, 3, double),
	)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4, 6}, got)

	boom := errors.New("boom")
	_, err = async.WaitAll(
		async.Async(ctx, 1, double),
		async.Async(ctx, 2, func(context.Context, int) (int, error) { return 0, boom }),
	)
	assert.ErrorIs(t, err, boom)
}

func TestWaitAny(t *testing.T) {
	t.Parallel()

	_, _, err := async.WaitAny[int]()
	assert.ErrorIs(t, err, async.ErrNoFutures)

	block := make(chan struct{})
	defer close(block)
	slow := async.Async(context.Background(), 0, func(context.Context, int) (string, error) {
		<-block
		return "slow", nil
	})
	fast := async.Async(context.Background(), 0, func(context.Context, int) (string, error) {
		return "fast", nil
	})

	idx, got, err := async.WaitAny(slow, fast)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Equal(t, "fast", got)
}
