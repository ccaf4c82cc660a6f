package telemetry

import "github.com/prometheus/client_golang/prometheus"

// Metrics are registered once per process by cmd/obbench — never from inside
// package book. Only PoolExhaustedTotal is updated, by cmd/obbench's replay
// path; OpLatency and OpsProcessed are registered but nothing in this
// repository observes or increments them. Grounded on
// Aidin1998-finalex/services/marketfeeds/market-maker-bot/monitoring/metrics.go's
// histogram/counter pair.
var (
	OpLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "obbench_op_latency_seconds",
		Help:    "Per-operation latency observed while replaying a workload against the book.",
		Buckets: prometheus.ExponentialBuckets(1e-7, 2, 20),
	})

	OpsProcessed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "obbench_ops_processed_total",
		Help: "Total ops (add/cancel/match) applied to the book, by op type.",
	}, []string{"op"})

	PoolExhaustedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "obbench_pool_exhausted_total",
		Help: "Total Add calls that returned PoolExhausted.",
	})
)

// InitMetrics registers the package's collectors with the default registry.
func InitMetrics() {
	prometheus.MustRegister(OpLatency, OpsProcessed, PoolExhaustedTotal)
}
