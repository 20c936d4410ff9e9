// Package prometheus exports mining query metrics.
//
// Metrics:
//   - ecm_mining_queries_total{query,outcome}: queries served
//   - ecm_mining_query_duration_seconds{query}: query latency
//   - ecm_mining_query_results{query}: result list length
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	ports "ecm-catalogue-service/internal/core/ports/output"
)

type miningRecorder struct {
	queries  *prometheus.CounterVec
	duration *prometheus.HistogramVec
	results  *prometheus.HistogramVec
}

// NewMiningRecorder registers the mining metrics with reg.
func NewMiningRecorder(reg prometheus.Registerer) ports.MiningMetrics {
	factory := promauto.With(reg)
	return &miningRecorder{
		queries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ecm_mining_queries_total",
				Help: "Total number of mining queries by query and outcome",
			},
			[]string{"query", "outcome"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "ecm_mining_query_duration_seconds",
				Help: "Duration of mining queries in seconds",
				// Snapshot load dominates; in-memory ranking is sub-millisecond.
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"query"},
		),
		results: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ecm_mining_query_results",
				Help:    "Number of entries returned by mining queries",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 500},
			},
			[]string{"query"},
		),
	}
}

func (r *miningRecorder) ObserveQuery(query string, elapsed time.Duration, results int, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	r.queries.WithLabelValues(query, outcome).Inc()
	r.duration.WithLabelValues(query).Observe(elapsed.Seconds())
	if err == nil {
		r.results.WithLabelValues(query).Observe(float64(results))
	}
}
