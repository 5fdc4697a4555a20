// Package httpserver runs an http.Handler with graceful shutdown, configurable
// timeouts and slog lifecycle logging.
//
// Run binds the listener up front, so bind errors surface as ErrStart before
// anything is served, then blocks until the context is cancelled, SIGINT or
// SIGTERM arrives, or Shutdown is called. WithMiddleware wraps the handler;
// mounting correlate's middleware there gives every request, including the
// health probes from HealthCheckHandler, a correlation id.
//
//	c := correlate.MustNew(correlate.WithTrustedSources("10.0.0.0/8"))
//	srv := httpserver.New(
//		httpserver.WithAddr(":8080"),
//		httpserver.WithLogger(log),
//		httpserver.WithMiddleware(c.Middleware),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
package httpserver
