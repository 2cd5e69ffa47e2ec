package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry served on /metrics.
	Registry = prometheus.NewRegistry()

	// Optimizations counts engine runs by outcome ("success" or "failure").
	Optimizations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "optimizations_total", Help: "Route optimization runs by status."},
		[]string{"status"},
	)
	OptimizationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "optimization_duration_seconds", Help: "Route optimization wall time in seconds.", Buckets: prometheus.DefBuckets},
	)
	UnassignedJobs = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "optimization_unassigned_jobs_total", Help: "Jobs left unrouted across all runs, by reason."},
		[]string{"reason"},
	)

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)
)

var regOnce sync.Once

// RegisterDefault registers collectors on Registry. Safe to call repeatedly.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(Optimizations)
		Registry.MustRegister(OptimizationDuration)
		Registry.MustRegister(UnassignedJobs)
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

// ObserveOptimization records the outcome of one engine run.
func ObserveOptimization(success bool, dur time.Duration, unassigned map[string]int) {
	status := "success"
	if !success {
		status = "failure"
	}
	Optimizations.WithLabelValues(status).Inc()
	OptimizationDuration.Observe(dur.Seconds())

	for reason, n := range unassigned {
		if n > 0 {
			UnassignedJobs.WithLabelValues(reason).Add(float64(n))
		}
	}
}

// ObserveHTTP records one served request.
func ObserveHTTP(method, path string, status int, dur time.Duration) {
	code := strconv.Itoa(status)
	HTTPRequests.WithLabelValues(method, path, code).Inc()
	HTTPDuration.WithLabelValues(method, path, code).Observe(dur.Seconds())
}
