// Package correlate establishes a correlation id for every inbound HTTP
// request and makes it available to the code handling that request.
//
// # Overview
//
// For each request the Resolver picks the authoritative id:
//
//   - no incoming header (or only whitespace): a new id is generated;
//   - header sent by a peer outside the trusted networks: a new id is generated;
//   - header sent by a trusted peer, no validator configured: the header is used;
//   - header sent by a trusted peer and accepted by the validator: the header is used;
//   - header sent by a trusted peer and refused by the validator: a new id is
//     generated and a debug event is logged without the refused value.
//
// The Coordinator stores the id in the request's reqctx scope at Start and
// restores the scope at End, so loggers and deep call chains can read it with
// reqctx.CorrelationIDFromContext while the request runs and nothing leaks
// into the next request.
//
// # Usage
//
//	c, err := correlate.New(
//		correlate.WithTrustedSources("10.0.0.0/8"),
//		correlate.WithValidator(correlationid.UUIDValidator()),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	r := chi.NewRouter()
//	r.Use(c.Middleware)
//	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
//		id := reqctx.CorrelationIDFromContext(r.Context())
//		_, _ = w.Write([]byte(id))
//	})
//
// Frameworks with their own pre/post hooks can call Start and End directly;
// End is safe to call when Start never ran.
//
// # Configuration
//
// Defaults: header "X-Correlation-ID", no trusted sources, UUIDv7 generator,
// no validator, echo enabled. Config and NewFromConfig read the same settings
// from the environment (CORRELATION_* variables).
//
// # Error Handling
//
// Only construction fails: malformed trusted sources, an empty header name or
// nil generator/validator produce an error wrapping ErrInvalidConfig. Requests
// never fail because of id resolution.
package correlate
