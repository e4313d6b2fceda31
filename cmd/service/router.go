package main

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	application "carriers/internal/app"
	"carriers/internal/handlers/rest/carrier_delete_post"
	"carriers/internal/handlers/rest/carrier_get"
	"carriers/internal/handlers/rest/carrier_post"
	"carriers/internal/handlers/rest/carrier_put"
	"carriers/internal/handlers/rest/carrier_rules_get"
	"carriers/internal/handlers/rest/carriers_get"
	"carriers/internal/handlers/rest/healthcheck_head"
	"carriers/internal/handlers/rest/ping_get"
	"carriers/internal/handlers/rest/response"
	"carriers/internal/pkg/config"
	"carriers/internal/pkg/middlewares/graceful_shutdown"
	"carriers/internal/pkg/middlewares/idempotency"
	"carriers/internal/pkg/middlewares/metrics"
	"carriers/internal/pkg/middlewares/rate_limiter"
	"carriers/internal/pkg/middlewares/request_id"
	"carriers/internal/pkg/middlewares/timeout"
	"carriers/pkg/logger"
	"carriers/pkg/token_bucket"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	messageNotFound         = "Not found"
	messageMethodNotAllowed = "Method not allowed"
)

type routerConfig struct {
	server config.HTTPServer

	// nil, если Redis не настроен
	idempotencyCache idempotency.Cache
	idempotencyTTL   time.Duration
}

func initRouter(
	ongoingCtx context.Context,
	log logger.Logger,
	isShuttingDown *atomic.Bool,
	app *application.Application,
	cfg routerConfig,
) http.Handler {
	router := mux.NewRouter()

	router.Use(request_id.Middleware())
	router.Use(graceful_shutdown.Middleware(isShuttingDown, ongoingCtx))

	router.Use(timeout.Middleware(cfg.server.RequestTimeout))
	router.Use(metrics.Middleware(log))
	router.Use(rate_limiter.Middleware(log, cfg.server.RateLimiterQPS, token_bucket.NewTokenBucket(cfg.server.RateLimiterQPS, float64(cfg.server.RateLimiterBurst))))
	router.Handle("/metrics", promhttp.Handler())

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown)).Methods(http.MethodHead)
	router.Handle("/ping", ping_get.New(log, app.Storage)).Methods(http.MethodGet)

	// Одно ведро попыток на IP для PUT и delete: перебор PIN через любую из ручек
	// расходует общий лимит.
	pinAttempts := rate_limiter.PINAttempts(
		log,
		cfg.server.PINAttemptsPerMinute,
		token_bucket.NewKeyed(cfg.server.PINAttemptsPerMinute, float64(cfg.server.PINAttemptsPerMinute)/60),
	)

	var createHandler http.Handler = carrier_post.New(log, app.ServiceCarrier)
	if cfg.idempotencyCache != nil {
		createHandler = idempotency.Middleware(log, cfg.idempotencyCache, cfg.idempotencyTTL)(createHandler)
	}

	api := router.PathPrefix("/api").Subrouter()
	api.Handle("/carriers", carriers_get.New(log, app.ServiceCarrier)).Methods(http.MethodGet)
	api.Handle("/carriers", createHandler).Methods(http.MethodPost)
	api.Handle("/carriers/{id}", carrier_get.New(log, app.ServiceCarrier)).Methods(http.MethodGet)
	api.Handle("/carriers/{id}", pinAttempts(carrier_put.New(log, app.ServiceCarrier))).Methods(http.MethodPut)
	api.Handle("/carriers/{id}/delete", pinAttempts(carrier_delete_post.New(log, app.ServiceCarrier))).Methods(http.MethodPost)
	api.Handle("/validation/carriers", carrier_rules_get.New(log)).Methods(http.MethodGet)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, log, http.StatusNotFound, messageNotFound)
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, log, http.StatusMethodNotAllowed, messageMethodNotAllowed)
	})

	return router
}

func initPprofRouter(isShuttingDown *atomic.Bool) http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown)).Methods(http.MethodHead)
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}
