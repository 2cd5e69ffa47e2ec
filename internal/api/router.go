package api

import (
	"context"
	"crew-route-service/internal/api/handlers"
	"crew-route-service/internal/platform/metrics"
	"crew-route-service/internal/ports"
	"crew-route-service/internal/services"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Deps are the collaborators the HTTP API is built from.
type Deps struct {
	Jobs            ports.JobRepository
	Crews           ports.CrewRepository
	Planner         *services.DayPlanner
	Optimizer       *services.Optimizer
	HealthCheck     func(ctx context.Context) error
	OptimizeTimeout time.Duration
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps Deps, logger zerolog.Logger) http.Handler {
	metrics.RegisterDefault()
	mux := http.NewServeMux()

	health := &handlers.HealthHandler{Check: deps.HealthCheck}
	jobs := &handlers.JobHandler{Jobs: deps.Jobs, Crews: deps.Crews}
	opt := &handlers.OptimizationHandler{
		Planner:   deps.Planner,
		Optimizer: deps.Optimizer,
		Timeout:   deps.OptimizeTimeout,
	}

	mux.HandleFunc("GET /health", health.Get)
	mux.HandleFunc("GET /jobs", jobs.ListJobs)
	mux.HandleFunc("GET /crews", jobs.ListCrews)
	mux.HandleFunc("POST /optimizations", opt.Optimize)
	mux.HandleFunc("POST /optimizations/preview", opt.Preview)
	mux.Handle("GET /metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	return loggingMiddleware(logger, mux)
}
