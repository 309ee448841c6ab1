package cache

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/widgetworks/metricfeed/pkg/series"
)

// Manager serializes series in and out of a Store. It owns the key layout:
// the series lives under the cache key, the write time under the companion
// timestamp key.
type Manager struct {
	store  Store
	logger zerolog.Logger

	// now is replaceable in tests.
	now func() time.Time
}

// NewManager creates a cache manager on top of a store.
func NewManager(store Store, logger zerolog.Logger) *Manager {
	if store == nil {
		panic("cache store cannot be nil")
	}
	return &Manager{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Put overwrites the entry for key with s and stamps the current time.
// Called on every successful fetch; there is no "only if newer" mode.
func (m *Manager) Put(ctx context.Context, key string, s series.Series) error {
	data, err := s.Encode()
	if err != nil {
		CacheErrors.WithLabelValues("put").Inc()
		return err
	}

	if err := m.store.Put(ctx, key, data); err != nil {
		CacheErrors.WithLabelValues("put").Inc()
		return err
	}

	stamp := m.now().UTC().Format(time.RFC3339)
	if err := m.store.Put(ctx, TimestampKey(key), []byte(stamp)); err != nil {
		CacheErrors.WithLabelValues("put").Inc()
		return err
	}

	CacheWrites.Inc()
	m.logger.Debug().
		Str("cache_key", key).
		Int("points", len(s)).
		Msg("Cached series")
	return nil
}

// Get returns the entry for key. It never surfaces an error: a backend
// failure or a corrupt entry reads as a miss, because the fallback path must
// not fail harder than the fetch it is rescuing.
func (m *Manager) Get(ctx context.Context, key string) (*Entry, bool) {
	data, err := m.store.Get(ctx, key)
	if err != nil {
		if err != ErrNotFound {
			CacheErrors.WithLabelValues("get").Inc()
			m.logger.Warn().Err(err).Str("cache_key", key).Msg("Cache get error")
		}
		CacheMisses.Inc()
		return nil, false
	}

	s, err := series.Decode(data)
	if err != nil {
		CacheErrors.WithLabelValues("get").Inc()
		m.logger.Warn().Err(err).Str("cache_key", key).Msg("Corrupt cache entry")
		CacheMisses.Inc()
		return nil, false
	}

	entry := &Entry{Key: key, Series: s}

	// A missing or unreadable timestamp is tolerated: the entry is still
	// usable, it just reads as maximally stale.
	if raw, err := m.store.Get(ctx, TimestampKey(key)); err == nil {
		if stamp, err := time.Parse(time.RFC3339, string(raw)); err == nil {
			entry.StoredAt = stamp
		}
	}

	CacheHits.Inc()
	return entry, true
}
