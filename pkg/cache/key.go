package cache

// Key builds the deterministic cache key for a metric and time range mode.
// Format: metric_<metricID>_<mode>
//
// Example:
//
//	metric_power_output_last24h
func Key(metricID, mode string) string {
	return "metric_" + metricID + "_" + mode
}

// TimestampKey returns the companion key holding the write time for a cache
// key. The value and its timestamp live under separate keys so either store
// backend can replace them with plain per-key writes.
func TimestampKey(key string) string {
	return key + "_timestamp"
}
