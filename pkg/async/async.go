package async

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrymomot/correlate/pkg/reqctx"
)

// Future is the pending result of a function started with Async.
type Future[U any] struct {
	result U
	err    error
	done   chan struct{}
}

// Await blocks until the function returns.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// AwaitContext is Await bounded by ctx. It returns ctx.Err() if ctx ends first;
// the function keeps running.
func (f *Future[U]) AwaitContext(ctx context.Context) (U, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero U
		return zero, ctx.Err()
	}
}

// AwaitWithTimeout is Await bounded by timeout, returning ErrTimeout when it
// expires first.
func (f *Future[U]) AwaitWithTimeout(timeout time.Duration) (U, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-f.done:
		return f.result, f.err
	case <-timer.C:
		var zero U
		return zero, ErrTimeout
	}
}

// IsComplete reports whether the function has returned, without blocking.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Async runs fn in a new goroutine and returns its Future.
//
// fn receives a context carrying a snapshot of the caller's request values
// (correlation id, user id), so its logs keep the request's id even after the
// request has finished and restored its own scope. Cancellation still follows
// ctx. A panic in fn is returned as an error wrapping ErrPanic.
func Async[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}
	ctx = reqctx.Fork(ctx)

	go func() {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				var zero U
				f.result, f.err = zero, fmt.Errorf("%w: %v", ErrPanic, r)
			}
		}()

		// A pre-cancelled context never reaches fn.
		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}

		f.result, f.err = fn(ctx, param)
	}()

	return f
}

// Detach starts fn for work that must outlive the request: the context keeps
// the caller's request values but is not cancelled with it.
func Detach(ctx context.Context, fn func(context.Context)) *Future[struct{}] {
	return Async(context.WithoutCancel(ctx), fn, func(ctx context.Context, fn func(context.Context)) (struct{}, error) {
		fn(ctx)
		return struct{}{}, nil
	})
}

// WaitAll awaits every future in order and returns their results. It stops at
// the first error, returning the results gathered so far.
func WaitAll[U any](futures ...*Future[U]) ([]U, error) {
	results := make([]U, len(futures))
	for i, future := range futures {
		result, err := future.Await()
		results[i] = result
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

// WaitAny returns the index, result and error of the first future to finish.
func WaitAny[U any](futures ...*Future[U]) (int, U, error) {
	if len(futures) == 0 {
		var zero U
		return -1, zero, ErrNoFutures
	}

	type outcome struct {
		index  int
		result U
		err    error
	}
	// Buffered so the losing goroutines never block.
	done := make(chan outcome, len(futures))
	for i, future := range futures {
		go func() {
			result, err := future.Await()
			done <- outcome{i, result, err}
		}()
	}

	res := <-done
	return res.index, res.result, res.err
}
