// Package http assembles the API server: router, middleware chain, and the
// process lifecycle around net/http.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/turtacn/Helios-Economics/internal/application/scenario"
	"github.com/turtacn/Helios-Economics/internal/config"
	"github.com/turtacn/Helios-Economics/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Helios-Economics/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/Helios-Economics/internal/interfaces/http/handlers"
	"github.com/turtacn/Helios-Economics/internal/interfaces/http/middleware"
	"github.com/turtacn/Helios-Economics/pkg/types/common"
)

// RouterDeps carries everything the router needs; the struct keeps NewRouter's
// signature stable as the surface grows.
type RouterDeps struct {
	Service *scenario.Service
	Config  *config.Config
	Log     logging.Logger
	Metrics prometheus.MetricsCollector
	Version common.VersionInfo
	Ready   func() bool
}

// NewRouter builds the chi router with the full middleware chain and all
// routes mounted.
func NewRouter(deps RouterDeps) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS)
	r.Use(middleware.AccessLog(deps.Log))
	r.Use(middleware.Metrics(deps.Metrics))
	r.Use(middleware.RateLimit(deps.Config.Server.RateLimitRPS))

	health := handlers.NewHealthHandler(deps.Version, deps.Ready, deps.Log)
	projection := handlers.NewProjectionHandler(deps.Service, deps.Log)
	sensitivity := handlers.NewSensitivityHandler(deps.Service, deps.Log)
	export := handlers.NewExportHandler(deps.Service, deps.Log)

	r.Get("/healthz", health.Livez)
	r.Get("/readyz", health.Readyz)
	r.Get("/version", health.Version)

	if deps.Config.Metrics.Enabled {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/baseline", projection.Baseline)
		r.Post("/projections", projection.Run)
		r.Post("/sensitivity", sensitivity.Run)
		r.Post("/export/cashflows", export.CashFlows)
	})

	return r
}
