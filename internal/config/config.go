// Package config loads the daemon configuration from file, environment and
// defaults.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Metric is one configured metric to poll.
type Metric struct {
	ID   string `mapstructure:"id"`
	Mode string `mapstructure:"mode"` // "last24h" or "midnight"

	// Interval is the sampling interval ("10m" or "1h"). Empty means the
	// catalog default (hourly).
	Interval string `mapstructure:"interval"`
}

// Config holds the daemon configuration.
type Config struct {
	// APIBaseURL is the analytics API origin, without trailing slash.
	APIBaseURL string `mapstructure:"api_base_url"`

	// Asset is the default asset identifier sent with every request.
	Asset string `mapstructure:"asset"`

	// APIKeyEnv names the environment variable holding the API key.
	// APIKeyFile points at a key file instead; the file wins when both are
	// set.
	APIKeyEnv  string `mapstructure:"api_key_env"`
	APIKeyFile string `mapstructure:"api_key_file"`

	// Store selects the cache backend: "memory", "sqlite" or "redis".
	Store      string `mapstructure:"store"`
	RedisAddr  string `mapstructure:"redis_addr"`
	SQLitePath string `mapstructure:"sqlite_path"`

	// ListenAddr serves /metrics and /health.
	ListenAddr string `mapstructure:"listen_addr"`

	LogLevel  string `mapstructure:"log_level"`
	LogPretty bool   `mapstructure:"log_pretty"`

	Metrics []Metric `mapstructure:"metrics"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api_base_url", "https://api.example.com")
	v.SetDefault("asset", "")
	v.SetDefault("api_key_env", "METRICFEED_API_KEY")
	v.SetDefault("store", "sqlite")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("sqlite_path", "/var/lib/metricfeed/cache.db")
	v.SetDefault("listen_addr", ":9109")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_pretty", false)
}

// Load reads the configuration. path may name an explicit config file; when
// empty the default locations (/etc/metricfeed.toml, ./metricfeed.toml) are
// tried and a missing file is not an error. Environment variables prefixed
// METRICFEED_ override file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("metricfeed")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("metricfeed")
		v.SetConfigType("toml")
		v.AddConfigPath("/etc")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store {
	case "memory", "redis", "sqlite":
	default:
		return fmt.Errorf("store must be one of memory, redis, sqlite (got %q)", c.Store)
	}
	if c.Store == "sqlite" && c.SQLitePath == "" {
		return fmt.Errorf("sqlite_path is required with the sqlite store")
	}
	if c.Store == "redis" && c.RedisAddr == "" {
		return fmt.Errorf("redis_addr is required with the redis store")
	}

	for i, m := range c.Metrics {
		if m.ID == "" {
			return fmt.Errorf("metrics[%d]: id is required", i)
		}
		switch m.Mode {
		case "", "last24h", "midnight":
		default:
			return fmt.Errorf("metrics[%d]: mode must be last24h or midnight (got %q)", i, m.Mode)
		}
		switch m.Interval {
		case "", "10m", "1h":
		default:
			return fmt.Errorf("metrics[%d]: interval must be 10m or 1h (got %q)", i, m.Interval)
		}
	}
	return nil
}
