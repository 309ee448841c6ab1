// Package cache is the durable result store consulted when a fetch exhausts
// its attempts.
//
// The store is a narrow key-value interface with three properties the rest of
// the system relies on:
//
//   - Put overwrites unconditionally and stamps the write time; last writer
//     wins per key.
//   - Get never fails from the caller's point of view: a miss, a backend
//     error, and a corrupt entry all read as "no cached data".
//   - Entries are never evicted. Staleness is surfaced through StoredAt and
//     judged by the caller, not the cache.
//
// Two processes (the application and a periodic refresher) may share the same
// key space, so backends must guarantee atomic per-key replace. Redis gives
// this by nature of SET; the SQLite backend uses WAL journaling and an upsert
// per key. No cross-key transactionality is provided or assumed.
//
// # Basic Usage
//
//	store, err := cache.NewSQLite("/var/lib/metricfeed/cache.db")
//	if err != nil {
//		return err
//	}
//	defer store.Close()
//
//	manager := cache.NewManager(store, logger)
//
//	key := cache.Key("power_output", "last24h")
//	if entry, ok := manager.Get(ctx, key); ok {
//		// entry.Series, entry.StoredAt
//	}
package cache
