// Package async runs functions in goroutines that keep the request's
// correlation context.
//
// A goroutine started with a plain `go` statement shares the request's
// reqctx scope, and once the request ends that scope is restored and its
// logs fall back to the "-" placeholder. Async and Detach hand the goroutine
// a forked snapshot instead:
//
//	f := async.Async(r.Context(), orderID, sendReceipt)
//	if _, err := f.AwaitWithTimeout(2 * time.Second); err != nil {
//		log.WarnContext(r.Context(), "receipt pending", logger.Error(err))
//	}
//
//	async.Detach(r.Context(), func(ctx context.Context) {
//		log.InfoContext(ctx, "audit written") // same correlation_id as the request
//	})
package async
