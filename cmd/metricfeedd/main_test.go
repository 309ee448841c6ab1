package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/widgetworks/metricfeed/internal/config"
	"github.com/widgetworks/metricfeed/internal/testutil"
	"github.com/widgetworks/metricfeed/pkg/cache"
)

func TestOpenStore(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		store, closeStore, err := openStore(&config.Config{Store: "memory"}, zerolog.Nop())
		if err != nil {
			t.Fatalf("openStore failed: %v", err)
		}
		defer closeStore()
		if _, ok := store.(*cache.Memory); !ok {
			t.Errorf("store type = %T, want *cache.Memory", store)
		}
	})

	t.Run("sqlite", func(t *testing.T) {
		cfg := &config.Config{
			Store:      "sqlite",
			SQLitePath: filepath.Join(t.TempDir(), "cache.db"),
		}
		store, closeStore, err := openStore(cfg, zerolog.Nop())
		if err != nil {
			t.Fatalf("openStore failed: %v", err)
		}
		defer closeStore()
		if _, ok := store.(*cache.SQLite); !ok {
			t.Errorf("store type = %T, want *cache.SQLite", store)
		}
	})
}

func TestBuildExecutor(t *testing.T) {
	cfg := &config.Config{
		APIBaseURL: "https://api.example.com",
		Asset:      "site-1",
		APIKeyEnv:  "METRICFEED_TEST_KEY",
		Metrics: []config.Metric{
			{ID: "power_output", Mode: "last24h", Interval: "10m"},
		},
	}

	executor, err := buildExecutor(cfg, cache.NewMemory())
	if err != nil {
		t.Fatalf("buildExecutor failed: %v", err)
	}
	if executor == nil {
		t.Fatal("executor is nil")
	}
}

func TestPollMetric_StopsOnCancel(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()
	mock.SetResponses("power_output",
		testutil.MockResponse{StatusCode: 200, Body: `[{"t": 1700000000, "v": 1}]`},
	)

	t.Setenv("METRICFEED_TEST_KEY", "test-key")
	cfg := &config.Config{
		APIBaseURL: mock.URL(),
		Asset:      "site-1",
		APIKeyEnv:  "METRICFEED_TEST_KEY",
		Metrics:    []config.Metric{{ID: "power_output"}},
	}
	executor, err := buildExecutor(cfg, cache.NewMemory())
	if err != nil {
		t.Fatalf("buildExecutor failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		pollMetric(ctx, executor, cfg.Metrics[0], zerolog.Nop())
		close(done)
	}()

	// Let the first round complete, then cancel during the wait.
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("pollMetric did not stop after cancellation")
	}

	if mock.RequestCount() < 1 {
		t.Error("expected at least one fetch before cancellation")
	}
}
