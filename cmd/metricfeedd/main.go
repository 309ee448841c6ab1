// metricfeedd polls configured metrics from the analytics API and keeps the
// shared result cache warm, re-polling each metric on a schedule derived
// from its last fetch outcome.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"syscall"
	"time"

	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/widgetworks/metricfeed/internal/config"
	"github.com/widgetworks/metricfeed/pkg/cache"
	"github.com/widgetworks/metricfeed/pkg/catalog"
	"github.com/widgetworks/metricfeed/pkg/credentials"
	"github.com/widgetworks/metricfeed/pkg/fetch"
	"github.com/widgetworks/metricfeed/pkg/logging"
	"github.com/widgetworks/metricfeed/pkg/schedule"
)

func main() {
	if err := runDaemon(); err != nil {
		fmt.Fprintf(os.Stderr, "metricfeedd: %v\n", err)
		os.Exit(1)
	}
}

func runDaemon() error {
	configPath := flag.String("config", "", "Path to config file (default: /etc/metricfeed.toml, ./metricfeed.toml)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *debug {
		cfg.LogLevel = "debug"
	}

	logger := logging.Setup(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
		Output: os.Stderr,
	})

	if len(cfg.Metrics) == 0 {
		return fmt.Errorf("no metrics configured")
	}

	store, closeStore, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	executor, err := buildExecutor(cfg, store)
	if err != nil {
		return err
	}

	var g run.Group

	// Metric poll loops, one per configured metric.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	for _, m := range cfg.Metrics {
		m := m
		g.Add(func() error {
			pollMetric(ctx, executor, m, logging.NewLogger("poller"))
			return nil
		}, func(error) {
			cancel()
		})
	}

	// Observability endpoint.
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})
	server := &http.Server{Addr: cfg.ListenAddr, Handler: mux}
	g.Add(func() error {
		logger.Info().Str("addr", cfg.ListenAddr).Msg("Serving metrics endpoint")
		return server.ListenAndServe()
	}, func(error) {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		server.Shutdown(shutdownCtx)
	})

	// Signal handling.
	g.Add(run.SignalHandler(ctx, os.Interrupt, syscall.SIGTERM))

	logger.Info().Int("metrics", len(cfg.Metrics)).Str("store", cfg.Store).Msg("metricfeedd started")
	err = g.Run()
	if _, ok := err.(run.SignalError); ok {
		logger.Info().Msg("Shutting down")
		return nil
	}
	return err
}

// openStore creates the cache store backend named by the config.
func openStore(cfg *config.Config, logger zerolog.Logger) (cache.Store, func(), error) {
	switch cfg.Store {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(context.Background()).Err(); err != nil {
			return nil, nil, fmt.Errorf("connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		logger.Info().Str("addr", cfg.RedisAddr).Msg("Connected to Redis")
		return cache.NewRedis(client), func() { client.Close() }, nil

	case "sqlite":
		store, err := cache.NewSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info().Str("path", cfg.SQLitePath).Msg("Opened cache database")
		return store, func() { store.Close() }, nil

	default: // "memory", validated by config.Load
		logger.Warn().Msg("Using in-memory cache store; fallback data will not survive restarts")
		return cache.NewMemory(), func() {}, nil
	}
}

func buildExecutor(cfg *config.Config, store cache.Store) (*fetch.Executor, error) {
	descriptors := make([]catalog.Descriptor, 0, len(cfg.Metrics))
	for _, m := range cfg.Metrics {
		interval := catalog.OneHour
		if m.Interval == string(catalog.TenMinutes) {
			interval = catalog.TenMinutes
		}
		descriptors = append(descriptors, catalog.Descriptor{ID: m.ID, Interval: interval})
	}

	var creds credentials.Provider
	if cfg.APIKeyFile != "" {
		creds = credentials.File{Path: cfg.APIKeyFile}
	} else {
		creds = credentials.Env{Var: cfg.APIKeyEnv}
	}

	planner := fetch.NewPlanner(cfg.APIBaseURL, cfg.Asset, catalog.NewStatic(descriptors...))
	manager := cache.NewManager(store, logging.NewLogger("cache"))

	return fetch.NewExecutor(
		planner,
		fetch.NewHTTPTransport(),
		creds,
		manager,
		logging.NewLogger("fetch-executor"),
		fetch.DefaultConfig(),
	)
}

// pollMetric fetches one metric in a loop, waiting between rounds according
// to the outcome of the previous fetch.
func pollMetric(ctx context.Context, executor *fetch.Executor, m config.Metric, logger zerolog.Logger) {
	mode := fetch.TimeRangeMode(m.Mode)
	if mode == "" {
		mode = fetch.Last24h
	}

	for {
		outcome := executor.Fetch(ctx, m.ID, mode, "")
		delay := schedule.Delay(outcome)

		event := logger.Info()
		if outcome.Kind == fetch.OutcomeFailure {
			event = logger.Warn()
		}
		event.
			Str("metric", m.ID).
			Str("outcome", string(outcome.Kind)).
			Int("points", len(outcome.Series)).
			Dur("next_in", delay).
			Msg("Fetch round complete")

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}
}
