// Package schedule decides how long to wait before re-fetching a metric.
// The mapping from outcome to delay lives here and nowhere else; callers
// must not carry their own copy of this table.
package schedule

import (
	"net/http"
	"time"

	"github.com/widgetworks/metricfeed/pkg/fetch"
)

// Refresh delays by outcome category.
const (
	// SuccessDelay is the normal polling interval after fresh data.
	SuccessDelay = 15 * time.Minute

	// TransientUnavailableDelay re-polls quickly: the credential store is
	// expected to unlock soon.
	TransientUnavailableDelay = 2 * time.Minute

	// MissingCredentialDelay backs far off: nothing improves until the user
	// configures a key.
	MissingCredentialDelay = 60 * time.Minute

	// UnauthorizedDelay matches MissingCredentialDelay; a rejected key is
	// operationally the same as no key.
	UnauthorizedDelay = 60 * time.Minute

	// FailureDelay covers every other failure and cached fallback.
	FailureDelay = 5 * time.Minute
)

// Delay maps a fetch outcome to the time until the next attempt.
func Delay(o fetch.Outcome) time.Duration {
	switch o.Kind {
	case fetch.OutcomeSuccess:
		return SuccessDelay
	case fetch.OutcomeCachedFallback:
		// Stale data on screen: retry at the failure cadence regardless of
		// what knocked the fetch down.
		return FailureDelay
	}

	switch o.FailureKind() {
	case fetch.FailureMissingCredential:
		return MissingCredentialDelay
	case fetch.FailureTransientUnavailable:
		return TransientUnavailableDelay
	case fetch.FailureClient:
		if o.Failure.Status == http.StatusUnauthorized {
			return UnauthorizedDelay
		}
		return FailureDelay
	default:
		// Decode, exhausted retryables, unknown statuses.
		return FailureDelay
	}
}
