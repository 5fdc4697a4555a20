package clientip

import "net/http"

// Middleware resolves the client IP with GetIP and stores it in the request
// context.
func Middleware(trust Trust) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithContext(r.Context(), GetIP(r, trust))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
