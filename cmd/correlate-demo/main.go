// Command correlate-demo serves a small HTTP API with correlation ids wired
// through routing, logging, metrics and background work.
//
// Configuration comes from the environment (or ./.env):
//
//	CORRELATION_HEADER_NAME      header carrying the id (X-Correlation-ID)
//	CORRELATION_TRUSTED_SOURCES  comma separated IPs/CIDRs allowed to supply ids
//	CORRELATION_ECHO_HEADER      echo the id on responses (true)
//	CORRELATION_VALIDATE_UUID    accept only UUID-shaped incoming ids (false)
//	HTTP_ADDR                    listen address (:8080)
//	APP_ENV, SERVICE_NAME        logging preset and service attribute
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/correlate/pkg/async"
	"github.com/dmitrymomot/correlate/pkg/clientip"
	"github.com/dmitrymomot/correlate/pkg/config"
	"github.com/dmitrymomot/correlate/pkg/correlate"
	"github.com/dmitrymomot/correlate/pkg/httpserver"
	"github.com/dmitrymomot/correlate/pkg/logger"
	"github.com/dmitrymomot/correlate/pkg/reqctx"
)

type appConfig struct {
	Env     string `env:"APP_ENV" envDefault:"development"`
	Service string `env:"SERVICE_NAME" envDefault:"correlate-demo"`
}

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("correlate-demo failed", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var (
		appCfg  appConfig
		corrCfg correlate.Config
		httpCfg httpserver.Config
	)
	if err := config.Load(&appCfg); err != nil {
		return err
	}
	if err := config.Load(&corrCfg); err != nil {
		return err
	}
	if err := config.Load(&httpCfg); err != nil {
		return err
	}

	log := logger.New(
		logger.WithEnvironment(appCfg.Env, appCfg.Service),
		logger.WithCorrelation(),
		logger.WithContextExtractors(clientip.LoggerExtractor(), correlate.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	observer, err := correlate.NewPrometheusObserver(reg)
	if err != nil {
		return err
	}

	coord, err := correlate.NewFromConfig(corrCfg,
		correlate.WithLogger(log),
		correlate.WithObserver(observer),
	)
	if err != nil {
		return err
	}
	log.InfoContext(ctx, "correlation configured",
		logger.Component("correlate"),
		slog.String("header", coord.HeaderName()),
		slog.String("trusted", coord.TrustedNetworks().String()),
		slog.Bool("echo", coord.EchoEnabled()),
	)

	r := chi.NewRouter()
	r.Use(
		clientip.Middleware(coord.TrustedNetworks()),
		correlate.UserMiddleware(func(r *http.Request) string { return r.Header.Get("X-User-ID") }),
	)
	r.Get("/livez", httpserver.HealthCheckHandler(log))
	r.Get("/readyz", httpserver.HealthCheckHandler(log, func(context.Context) error { return nil }))
	r.Get("/hello", helloHandler(log))
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := httpserver.NewFromConfig(httpCfg,
		httpserver.WithLogger(log),
		httpserver.WithMiddleware(coord.Middleware),
	)
	return srv.Run(ctx, r)
}

type helloResponse struct {
	CorrelationID string `json:"correlation_id"`
	Outcome       string `json:"outcome"`
	UserID        string `json:"user_id,omitempty"`
	ClientIP      string `json:"client_ip,omitempty"`
}

func helloHandler(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log.InfoContext(ctx, "hello requested")

		async.Detach(ctx, func(ctx context.Context) {
			log.InfoContext(ctx, "hello audited", logger.Component("audit"))
		})

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(helloResponse{
			CorrelationID: reqctx.CorrelationIDFromContext(ctx),
			Outcome:       correlate.OutcomeFromContext(ctx).String(),
			UserID:        reqctx.UserIDFromContext(ctx),
			ClientIP:      clientip.FromContext(ctx),
		}); err != nil {
			log.ErrorContext(ctx, "encode response", logger.Error(err))
		}
	}
}
