// Package logger builds *slog.Logger instances with functional options and
// stamps request-scoped identifiers on every record.
//
// New picks slog.NewTextHandler or slog.NewJSONHandler from the configured
// Format and wraps it in a LogHandlerDecorator, which derives attributes from
// the context of every record:
//
//   - With WithCorrelation, a ContextualEnricher adds correlation_id and
//     user_id read from pkg/reqctx, writing "-" when a value is absent.
//     Attributes already on the record or attached via Logger.With are kept.
//   - ContextExtractor callbacks registered with WithContextExtractors or
//     WithContextValue add their own attributes.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithDevelopment("billing"),
//	    logger.WithCorrelation(),
//	    logger.WithContextExtractors(clientip.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
//	log.InfoContext(r.Context(), "charged card", logger.Component("billing"))
//
// Records emitted outside a request, or from a goroutine that lost the request
// context, carry correlation_id="-". Background jobs can pin their own id:
//
//	log.With(logger.CorrelationID("job-abc-123")).Info("job started")
//
// Error returns an empty attribute for nil errors, so callers need no nil
// check before logging.
package logger
