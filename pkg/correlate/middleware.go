package correlate

import (
	"net/http"
	"strings"

	"github.com/dmitrymomot/correlate/pkg/clientip"
	"github.com/dmitrymomot/correlate/pkg/reqctx"
)

// Middleware attaches a correlation id to every request.
//
// The incoming id is the first occurrence of the configured header. Trust is
// decided on the direct TCP peer (RemoteAddr); forwarding headers such as
// X-Forwarded-For are never consulted for this decision. The id is echoed on
// the response before the handler runs, since net/http ignores header changes
// after the first write, and the context is restored when the handler returns
// or panics.
func (c *Coordinator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, id := c.Start(r.Context(), clientip.PeerIP(r), r.Header.Get(c.headerName))
		if c.echo {
			w.Header().Set(c.headerName, id)
		}

		succeeded := false
		defer func() { c.End(ctx, succeeded, w.Header()) }()

		next.ServeHTTP(w, r.WithContext(ctx))
		succeeded = true
	})
}

// UserMiddleware stores the user id returned by lookup in the request context
// for the duration of the handler. Requests without a user pass through
// unchanged. Mount it inside Coordinator.Middleware: Start opens a fresh scope
// and would hide a user id set before it.
func UserMiddleware(lookup func(*http.Request) string) func(http.Handler) http.Handler {
	if lookup == nil {
		panic("correlate: UserMiddleware requires a lookup function")
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uid := strings.TrimSpace(lookup(r))
			if uid == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx, token := reqctx.Set(r.Context(), reqctx.UserID, uid)
			defer reqctx.Restore(token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
