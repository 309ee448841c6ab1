package fetch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for fetch operations.
var (
	fetchRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "metricfeed_fetch_requests_total",
		Help: "Total fetch attempts by metric and result",
	}, []string{"metric", "result"})

	fetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "metricfeed_fetch_duration_seconds",
		Help:    "Whole-fetch duration in seconds by metric",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
	}, []string{"metric"})

	fetchFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "metricfeed_fetch_failures_total",
		Help: "Total classified failures by kind",
	}, []string{"kind"})

	fetchRetriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "metricfeed_fetch_retries_total",
		Help: "Total retry attempts by failure kind",
	}, []string{"kind"})

	fetchExhaustedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "metricfeed_fetch_exhausted_total",
		Help: "Total fetches that spent their whole attempt budget by failure kind",
	}, []string{"kind"})

	fetchFallbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "metricfeed_fetch_cache_fallbacks_total",
		Help: "Total fetches resolved from the cache after failure",
	})
)
