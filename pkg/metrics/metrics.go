// Package metrics documents the Prometheus metrics exported by metricfeed.
// The metric vars themselves live in the packages that record them (fetch,
// cache) to keep those packages self-contained; this package holds the
// registry reference and the catalog of what exists.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the Prometheus registerer used by all metricfeed metrics.
// Everything registers itself via promauto in its own package.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Fetch Metrics (pkg/fetch):
//   - metricfeed_fetch_requests_total{metric, result} (Counter): Fetches by metric
//     and terminal result (success, cached_fallback, failure, cancelled)
//   - metricfeed_fetch_duration_seconds{metric} (Histogram): Whole-fetch duration
//   - metricfeed_fetch_failures_total{kind} (Counter): Classified attempt failures
//   - metricfeed_fetch_retries_total{kind} (Counter): Retry attempts by failure kind
//   - metricfeed_fetch_exhausted_total{kind} (Counter): Fetches that spent the
//     whole attempt budget
//   - metricfeed_fetch_cache_fallbacks_total (Counter): Fetches resolved from cache
//
// Cache Metrics (pkg/cache):
//   - metricfeed_cache_hits_total (Counter): Reads that returned an entry
//   - metricfeed_cache_misses_total (Counter): Reads with no usable entry
//   - metricfeed_cache_writes_total (Counter): Entries written
//   - metricfeed_cache_errors_total{operation} (Counter): Store errors by operation
//
// Example Prometheus Queries:
//
//   # Fallback Rate
//   rate(metricfeed_fetch_cache_fallbacks_total[15m]) /
//   rate(metricfeed_fetch_requests_total[15m])
//
//   # Failure Breakdown
//   sum by (kind) (rate(metricfeed_fetch_failures_total[15m]))
//
//   # P95 Fetch Latency
//   histogram_quantile(0.95, rate(metricfeed_fetch_duration_seconds_bucket[15m]))
