package fetch

import (
	"errors"
	"fmt"
)

// ErrRetryExhausted is wrapped into failures returned after the attempt
// budget is spent.
var ErrRetryExhausted = errors.New("retry attempts exhausted")

// FailureKind classifies why a fetch did not produce fresh data. The kind,
// not the raw error, drives retry decisions and refresh scheduling.
type FailureKind string

const (
	// FailureMissingCredential means no API key is configured. No network
	// call is made.
	FailureMissingCredential FailureKind = "missing_credential"

	// FailureTransientUnavailable means the credential store is temporarily
	// inaccessible (locked secret store). No network call is made.
	FailureTransientUnavailable FailureKind = "transient_unavailable"

	// FailureClient represents 4xx responses. Never retried.
	FailureClient FailureKind = "client"

	// FailureServer represents 5xx responses. Retryable.
	FailureServer FailureKind = "server"

	// FailureNetwork represents transport-level failures with no HTTP
	// response, including timeouts. Retryable.
	FailureNetwork FailureKind = "network"

	// FailureDecode means the server returned 200 but the body did not
	// parse as a series. Fatal: retrying would re-download the same bytes.
	FailureDecode FailureKind = "decode"

	// FailureUnknown covers statuses outside the mapped ranges. Retried as
	// a conservative default.
	FailureUnknown FailureKind = "unknown"
)

// Retryable reports whether another attempt within the budget is permitted
// for this failure kind.
func (k FailureKind) Retryable() bool {
	switch k {
	case FailureServer, FailureNetwork, FailureUnknown:
		return true
	default:
		return false
	}
}

// Failure carries the classified reason a fetch attempt (or the whole fetch)
// failed.
type Failure struct {
	Kind   FailureKind
	Status int // HTTP status when one was observed, 0 otherwise
	// Message is extracted from the error response body when available.
	Message string
	Err     error
}

// Error implements the error interface.
func (f *Failure) Error() string {
	switch {
	case f.Err != nil && f.Status > 0:
		return fmt.Sprintf("fetch %s failure (status %d): %s: %v", f.Kind, f.Status, f.Message, f.Err)
	case f.Err != nil:
		return fmt.Sprintf("fetch %s failure: %v", f.Kind, f.Err)
	case f.Status > 0 && f.Message != "":
		return fmt.Sprintf("fetch %s failure (status %d): %s", f.Kind, f.Status, f.Message)
	case f.Status > 0:
		return fmt.Sprintf("fetch %s failure (status %d)", f.Kind, f.Status)
	default:
		return fmt.Sprintf("fetch %s failure", f.Kind)
	}
}

// Unwrap implements error unwrapping for errors.Is/As.
func (f *Failure) Unwrap() error {
	return f.Err
}

// Retryable reports whether the failure permits another attempt.
func (f *Failure) Retryable() bool {
	return f.Kind.Retryable()
}
