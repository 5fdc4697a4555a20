// Package clientip extracts network addresses from an *http.Request.
//
// Two addresses matter to the correlation middleware and they are kept apart:
//
//   - PeerIP is the direct TCP peer taken from RemoteAddr. It cannot be
//     spoofed by request headers and is the only input to trust decisions.
//   - GetIP is the originating client. Forwarding headers are used only when
//     the direct peer is trusted (for example a load balancer listed in
//     CORRELATION_TRUSTED_SOURCES); otherwise it equals PeerIP.
//
// When the peer is trusted the headers are examined in descending priority
// until the first valid IP address is found:
//
//  1. CF-Connecting-IP
//  2. DO-Connecting-IP
//  3. X-Forwarded-For (left-most valid entry)
//  4. X-Real-IP
//
// # Usage
//
//	trust := trustednet.MustNew("10.0.0.0/8")
//	handler := clientip.Middleware(trust)(mux)
//
//	// inside a handler
//	ip := clientip.FromContext(r.Context())
//
// # Error Handling
//
// Functions never return errors. Invalid addresses yield an empty string so
// callers can decide how to proceed; an empty peer is never trusted.
package clientip
