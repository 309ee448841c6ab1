// Package testutil provides testing utilities for metricfeed.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"time"
)

// MockResponse defines the behavior of a mock metric endpoint.
type MockResponse struct {
	StatusCode int
	Body       string
	Delay      time.Duration
}

// MockAPI is a configurable mock analytics API server. Metric endpoints are
// registered per metric id and served at /v1/metrics/<id>; a sequence of
// responses can be queued to script retry scenarios.
type MockAPI struct {
	server *httptest.Server
	mu     sync.Mutex

	responses map[string][]MockResponse

	// Tracking, guarded by mu.
	requestCount int
	lastQuery    url.Values
}

// NewMockAPI starts a mock analytics API server.
func NewMockAPI() *MockAPI {
	mock := &MockAPI{
		responses: make(map[string][]MockResponse),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metricID := strings.TrimPrefix(r.URL.Path, "/v1/metrics/")

		mock.mu.Lock()
		mock.requestCount++
		mock.lastQuery = r.URL.Query()

		queue := mock.responses[metricID]
		if len(queue) == 0 {
			mock.mu.Unlock()
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error": "unknown metric"}`))
			return
		}
		resp := queue[0]
		if len(queue) > 1 {
			mock.responses[metricID] = queue[1:]
		}
		mock.mu.Unlock()

		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.StatusCode)
		w.Write([]byte(resp.Body))
	}))

	return mock
}

// SetResponses queues responses for a metric id. The last response repeats
// once the queue is drained.
func (m *MockAPI) SetResponses(metricID string, responses ...MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[metricID] = responses
}

// URL returns the mock server base URL.
func (m *MockAPI) URL() string {
	return m.server.URL
}

// RequestCount returns how many requests the server has seen.
func (m *MockAPI) RequestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requestCount
}

// LastQuery returns the query parameters of the most recent request.
func (m *MockAPI) LastQuery() url.Values {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastQuery
}

// Close shuts the server down.
func (m *MockAPI) Close() {
	m.server.Close()
}
