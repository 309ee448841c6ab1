package cache

import (
	"time"

	"github.com/widgetworks/metricfeed/pkg/series"
)

// Entry is a cached series together with the time it was written. StoredAt
// is how staleness reaches the caller; the cache itself never judges it.
type Entry struct {
	Key      string
	Series   series.Series
	StoredAt time.Time
}

// Age returns how long ago the entry was written, relative to now.
func (e *Entry) Age(now time.Time) time.Duration {
	if e.StoredAt.IsZero() {
		return 0
	}
	return now.Sub(e.StoredAt)
}
