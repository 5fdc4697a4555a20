// Package reqctx stores the correlation id and user id for the request being
// handled, so loggers and deep call chains can read them from a
// context.Context without a reference to the request.
//
// Each request gets its own scope (WithScope). Set pushes a value into the
// scope and returns a Token; Restore with that token puts the previous value
// back. Because every request carries a distinct scope, a value set while
// handling one request is never visible to another, even when goroutines are
// reused between requests.
//
//	ctx = reqctx.WithScope(r.Context())
//	ctx, tok := reqctx.Set(ctx, reqctx.CorrelationID, id)
//	defer reqctx.Restore(tok)
//
//	// anywhere below
//	id := reqctx.CorrelationIDFromContext(ctx)
//
// Restore is idempotent and tolerates nil or stale tokens.
//
// Goroutines that keep running after the request returns should use Fork to
// take a snapshot; otherwise they observe the values disappearing once the
// request restores them.
package reqctx
