package fetch

import (
	"time"

	"github.com/widgetworks/metricfeed/pkg/series"
)

// OutcomeKind discriminates the three terminal results of a fetch.
type OutcomeKind string

const (
	// OutcomeSuccess means fresh data was fetched, shaped and cached.
	OutcomeSuccess OutcomeKind = "success"

	// OutcomeCachedFallback means the fetch failed but a previously cached
	// series was returned in its place.
	OutcomeCachedFallback OutcomeKind = "cached_fallback"

	// OutcomeFailure means the fetch failed and nothing was cached.
	OutcomeFailure OutcomeKind = "failure"
)

// Outcome is the single caller-visible result of one fetch. Exactly one of
// the three kinds is produced per call; no raw network error ever escapes
// past it.
type Outcome struct {
	Kind OutcomeKind

	// Series is set for OutcomeSuccess and OutcomeCachedFallback.
	Series series.Series

	// StoredAt is when the fallback series was originally cached. Set only
	// for OutcomeCachedFallback.
	StoredAt time.Time

	// Failure describes what went wrong. Set for OutcomeFailure, and for
	// OutcomeCachedFallback as the underlying cause.
	Failure *Failure
}

// Success wraps a freshly shaped series.
func Success(s series.Series) Outcome {
	return Outcome{Kind: OutcomeSuccess, Series: s}
}

// CachedFallback wraps a previously cached series returned in place of a
// failed fetch.
func CachedFallback(s series.Series, storedAt time.Time, cause *Failure) Outcome {
	return Outcome{Kind: OutcomeCachedFallback, Series: s, StoredAt: storedAt, Failure: cause}
}

// Failed wraps a terminal failure.
func Failed(f *Failure) Outcome {
	return Outcome{Kind: OutcomeFailure, Failure: f}
}

// FailureKind returns the failure kind, or "" for a plain success.
func (o Outcome) FailureKind() FailureKind {
	if o.Failure == nil {
		return ""
	}
	return o.Failure.Kind
}
