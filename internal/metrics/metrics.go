// Package metrics provides Prometheus instrumentation for the API:
// request throughput, latency, in-flight requests, and connection pool
// health. Everything registers on the default registry and is served by
// the /metrics endpoint.
package metrics

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	ActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)
)

// RecordRequest records a completed API request.
func RecordRequest(method, endpoint, statusCode string, duration time.Duration) {
	RequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		ActiveRequests.Inc()
	} else {
		ActiveRequests.Dec()
	}
}

// RegisterPoolStats registers gauges that read the connection pool counters
// on every scrape. Call it once, after the pool is opened.
func RegisterPoolStats(pool *pgxpool.Pool) {
	promauto.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "db_pool_acquired_connections",
			Help: "Connections currently checked out of the pool",
		},
		func() float64 { return float64(pool.Stat().AcquiredConns()) },
	)

	promauto.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "db_pool_idle_connections",
			Help: "Connections sitting idle in the pool",
		},
		func() float64 { return float64(pool.Stat().IdleConns()) },
	)

	promauto.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "db_pool_total_connections",
			Help: "Total connections held by the pool, in-use plus idle",
		},
		func() float64 { return float64(pool.Stat().TotalConns()) },
	)

	promauto.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "db_pool_max_connections",
			Help: "Configured upper bound on pooled connections",
		},
		func() float64 { return float64(pool.Stat().MaxConns()) },
	)
}
