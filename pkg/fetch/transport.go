package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Default transport timeouts. The per-attempt timeout bounds a single GET
// end to end; the resource timeout bounds how long we wait for response
// headers. Both expire as transport errors and classify as network failures.
const (
	DefaultRequestTimeout = 30 * time.Second
	DefaultHeaderTimeout  = 15 * time.Second
)

// Result is one HTTP observation: the status code and the full body.
type Result struct {
	Status int
	Body   []byte
}

// Transport performs a single GET. Implementations return a Result when any
// HTTP response arrived (whatever the status), or an error for failures
// below the HTTP layer.
type Transport interface {
	Get(ctx context.Context, url string) (*Result, error)
}

// HTTPTransport is the production Transport on net/http.
type HTTPTransport struct {
	client *http.Client
}

// NewHTTPTransport creates a transport with the default timeouts.
func NewHTTPTransport() *HTTPTransport {
	return NewHTTPTransportWithTimeouts(DefaultRequestTimeout, DefaultHeaderTimeout)
}

// NewHTTPTransportWithTimeouts creates a transport with explicit per-attempt
// and response-header timeouts.
func NewHTTPTransportWithTimeouts(requestTimeout, headerTimeout time.Duration) *HTTPTransport {
	return &HTTPTransport{
		client: &http.Client{
			Timeout: requestTimeout,
			Transport: &http.Transport{
				ResponseHeaderTimeout: headerTimeout,
			},
		},
	}
}

// Get implements Transport.
func (t *HTTPTransport) Get(ctx context.Context, url string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return &Result{Status: resp.StatusCode, Body: body}, nil
}
