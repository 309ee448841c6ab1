package integration

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/widgetworks/metricfeed/internal/testutil"
	"github.com/widgetworks/metricfeed/pkg/cache"
	"github.com/widgetworks/metricfeed/pkg/catalog"
	"github.com/widgetworks/metricfeed/pkg/credentials"
	"github.com/widgetworks/metricfeed/pkg/fetch"
)

// setupRedis creates a Redis container for integration testing.
func setupRedis(t *testing.T) (*redis.Client, func()) {
	t.Helper()

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("Failed to start Redis container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := container.MappedPort(ctx, "6379")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	client := redis.NewClient(&redis.Options{Addr: host + ":" + port.Port()})

	cleanup := func() {
		client.Close()
		container.Terminate(ctx)
	}
	return client, cleanup
}

func newExecutor(t *testing.T, apiURL string, store cache.Store) *fetch.Executor {
	t.Helper()

	cat := catalog.NewStatic(
		catalog.Descriptor{ID: "power_output", Interval: catalog.TenMinutes},
	)
	executor, err := fetch.NewExecutor(
		fetch.NewPlanner(apiURL, "site-1", cat),
		fetch.NewHTTPTransport(),
		credentials.Static("integration-key"),
		cache.NewManager(store, zerolog.Nop()),
		zerolog.Nop(),
		fetch.DefaultConfig(),
	)
	if err != nil {
		t.Fatalf("NewExecutor failed: %v", err)
	}
	return executor
}

// TestFetchFlowWithRedisCache drives the full flow against a real Redis
// store: fetch, cache write, then cache fallback when the API goes down.
func TestFetchFlowWithRedisCache(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	redisClient, cleanup := setupRedis(t)
	defer cleanup()

	mock := testutil.NewMockAPI()
	defer mock.Close()
	mock.SetResponses("power_output",
		testutil.MockResponse{StatusCode: 200, Body: `[{"t": 1700000000, "v": 1.5}, {"t": 1700000600, "v": 2.5}]`},
		testutil.MockResponse{StatusCode: 503, Body: `{"error": "maintenance"}`},
	)

	store := cache.NewRedis(redisClient)
	executor := newExecutor(t, mock.URL(), store)
	ctx := context.Background()

	// Round 1: fresh data, written to Redis.
	first := executor.Fetch(ctx, "power_output", fetch.Last24h, "")
	if first.Kind != fetch.OutcomeSuccess {
		t.Fatalf("first fetch = %q, want success (failure: %v)", first.Kind, first.Failure)
	}
	if len(first.Series) != 2 {
		t.Errorf("first series len = %d, want 2", len(first.Series))
	}

	// The entry is visible to an independent manager, as it would be to a
	// second process sharing the key space.
	other := cache.NewManager(cache.NewRedis(redisClient), zerolog.Nop())
	entry, ok := other.Get(ctx, cache.Key("power_output", "last24h"))
	if !ok {
		t.Fatal("cache entry not visible through a second manager")
	}
	if time.Since(entry.StoredAt) > time.Minute {
		t.Errorf("StoredAt = %v, want recent", entry.StoredAt)
	}

	// Round 2: the API now fails both attempts; the cached series comes back.
	second := executor.Fetch(ctx, "power_output", fetch.Last24h, "")
	if second.Kind != fetch.OutcomeCachedFallback {
		t.Fatalf("second fetch = %q, want cached_fallback (failure: %v)", second.Kind, second.Failure)
	}
	if len(second.Series) != 2 {
		t.Errorf("fallback series len = %d, want 2", len(second.Series))
	}
	if second.FailureKind() != fetch.FailureServer {
		t.Errorf("underlying kind = %q, want server", second.FailureKind())
	}
}

// TestFetchRetryAccounting verifies the 2-attempt budget against a real
// HTTP server: one 503 then one 200 resolves to success with two requests.
func TestFetchRetryAccounting(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	mock := testutil.NewMockAPI()
	defer mock.Close()
	mock.SetResponses("power_output",
		testutil.MockResponse{StatusCode: 503, Body: `{"error": "overloaded"}`},
		testutil.MockResponse{StatusCode: 200, Body: `[{"t": 1700000000, "v": 1}]`},
	)

	executor := newExecutor(t, mock.URL(), cache.NewMemory())

	outcome := executor.Fetch(context.Background(), "power_output", fetch.Last24h, "")
	if outcome.Kind != fetch.OutcomeSuccess {
		t.Fatalf("outcome = %q, want success (failure: %v)", outcome.Kind, outcome.Failure)
	}
	if mock.RequestCount() != 2 {
		t.Errorf("requests = %d, want 2", mock.RequestCount())
	}
}
