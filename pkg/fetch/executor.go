// Package fetch acquires time-series metrics from the analytics API with
// bounded retry, failure classification and cache fallback.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/widgetworks/metricfeed/pkg/cache"
	"github.com/widgetworks/metricfeed/pkg/credentials"
	"github.com/widgetworks/metricfeed/pkg/series"
)

// Retry defaults. One retry after a short fixed pause: the consumer re-polls
// on its own schedule anyway, so a long in-call backoff buys nothing.
const (
	DefaultMaxAttempts = 2
	DefaultBackoff     = 500 * time.Millisecond
)

// Config holds executor tuning.
type Config struct {
	// MaxAttempts is the transport call budget per fetch, including the
	// first attempt.
	MaxAttempts int

	// Backoff is the fixed pause between attempts.
	Backoff time.Duration

	// Location is the timezone for the since-midnight window. Defaults to
	// time.Local.
	Location *time.Location
}

// DefaultConfig returns the standard executor configuration.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: DefaultMaxAttempts,
		Backoff:     DefaultBackoff,
		Location:    time.Local,
	}
}

// Executor orchestrates planner, transport, classifier and cache into the
// bounded-retry fetch loop. One Fetch call makes at most MaxAttempts
// transport calls, at most one cache write and at most one cache read.
type Executor struct {
	planner   *Planner
	transport Transport
	creds     credentials.Provider
	cache     *cache.Manager
	logger    zerolog.Logger
	cfg       Config

	// now and sleep are replaceable in tests so backoff timing and window
	// math run without real delays.
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewExecutor wires the executor's collaborators together.
func NewExecutor(planner *Planner, transport Transport, creds credentials.Provider, cacheManager *cache.Manager, logger zerolog.Logger, cfg Config) (*Executor, error) {
	if planner == nil {
		return nil, fmt.Errorf("planner is required")
	}
	if transport == nil {
		return nil, fmt.Errorf("transport is required")
	}
	if creds == nil {
		return nil, fmt.Errorf("credential provider is required")
	}
	if cacheManager == nil {
		return nil, fmt.Errorf("cache manager is required")
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = DefaultBackoff
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}

	return &Executor{
		planner:   planner,
		transport: transport,
		creds:     creds,
		cache:     cacheManager,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
		sleep:     sleepContext,
	}, nil
}

// Fetch pulls one metric and always resolves to a value: fresh data, cached
// data or a classified failure. An empty asset uses the planner default.
func (e *Executor) Fetch(ctx context.Context, metricID string, mode TimeRangeMode, asset string) Outcome {
	start := time.Now()
	defer func() {
		fetchDuration.WithLabelValues(metricID).Observe(time.Since(start).Seconds())
	}()

	req := e.planner.Plan(metricID, mode, asset)

	apiKey, err := e.creds.Read(ctx)
	if err != nil {
		// Anything the store cannot answer right now is transient; the
		// scheduler re-polls it quickly.
		if !errors.Is(err, credentials.ErrUnavailable) {
			e.logger.Warn().Err(err).Str("metric", metricID).Msg("Credential read failed")
		}
		fetchFailuresTotal.WithLabelValues(string(FailureTransientUnavailable)).Inc()
		return Failed(&Failure{Kind: FailureTransientUnavailable, Err: err})
	}
	if apiKey == "" {
		fetchFailuresTotal.WithLabelValues(string(FailureMissingCredential)).Inc()
		return Failed(&Failure{Kind: FailureMissingCredential})
	}

	var last *Failure
	for attempt := 1; attempt <= e.cfg.MaxAttempts; attempt++ {
		res, terr := e.transport.Get(ctx, req.URL(apiKey))
		raw, failure := Classify(res, terr)

		if failure == nil {
			shaped := e.shape(req, raw)
			if err := e.cache.Put(ctx, req.CacheKey, shaped); err != nil {
				// A broken cache costs the next fallback, not this fetch.
				e.logger.Warn().Err(err).Str("cache_key", req.CacheKey).Msg("Cache write failed")
			}
			fetchRequestsTotal.WithLabelValues(metricID, "success").Inc()
			if attempt > 1 {
				e.logger.Info().
					Str("metric", metricID).
					Int("attempt", attempt).
					Msg("Fetch succeeded after retry")
			}
			return Success(shaped)
		}

		last = failure
		fetchFailuresTotal.WithLabelValues(string(failure.Kind)).Inc()
		e.logger.Warn().
			Str("metric", metricID).
			Str("kind", string(failure.Kind)).
			Int("status", failure.Status).
			Int("attempt", attempt).
			Msg("Fetch attempt failed")

		if !failure.Retryable() {
			break
		}
		if attempt >= e.cfg.MaxAttempts {
			fetchExhaustedTotal.WithLabelValues(string(failure.Kind)).Inc()
			last = &Failure{Kind: failure.Kind, Status: failure.Status, Message: failure.Message, Err: fmt.Errorf("%w after %d attempts: %v", ErrRetryExhausted, e.cfg.MaxAttempts, failure)}
			break
		}

		fetchRetriesTotal.WithLabelValues(string(failure.Kind)).Inc()
		if err := e.sleep(ctx, e.cfg.Backoff); err != nil {
			// Cancelled mid-backoff: abandon without touching the cache so
			// no stale result leaks past the cancellation.
			fetchRequestsTotal.WithLabelValues(metricID, "cancelled").Inc()
			return Failed(last)
		}
	}

	if ctx.Err() != nil {
		fetchRequestsTotal.WithLabelValues(metricID, "cancelled").Inc()
		return Failed(last)
	}

	// Fallback step: fatal classifications and exhausted budgets both
	// consult the cache before giving up.
	if entry, ok := e.cache.Get(ctx, req.CacheKey); ok {
		fetchFallbacksTotal.Inc()
		fetchRequestsTotal.WithLabelValues(metricID, "cached_fallback").Inc()
		e.logger.Info().
			Str("metric", metricID).
			Time("stored_at", entry.StoredAt).
			Str("kind", string(last.Kind)).
			Msg("Serving cached series after failed fetch")
		return CachedFallback(entry.Series, entry.StoredAt, last)
	}

	fetchRequestsTotal.WithLabelValues(metricID, "failure").Inc()
	return Failed(last)
}

// shape applies the window filter and point budget to a decoded series.
func (e *Executor) shape(req Request, raw series.Series) series.Series {
	var cutoff time.Time
	if req.Mode == SinceMidnight {
		cutoff = series.MidnightCutoff(e.now(), e.cfg.Location)
	}
	return series.Shape(raw, cutoff, req.PointBudget)
}

// sleepContext waits for d or until ctx is done, whichever comes first.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
