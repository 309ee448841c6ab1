package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks cache reads that returned a usable entry.
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "metricfeed_cache_hits_total",
			Help: "Total number of cache reads that returned an entry",
		},
	)

	// CacheMisses tracks cache reads with no usable entry.
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "metricfeed_cache_misses_total",
			Help: "Total number of cache reads with no entry",
		},
	)

	// CacheWrites tracks successful cache writes.
	CacheWrites = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "metricfeed_cache_writes_total",
			Help: "Total number of cache entries written",
		},
	)

	// CacheErrors tracks store operation errors.
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "metricfeed_cache_errors_total",
			Help: "Total number of cache store errors",
		},
		[]string{"operation"}, // "get", "put"
	)
)
