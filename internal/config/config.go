// Package config loads runner and server settings from the environment and
// optional scoring-threshold overrides from a YAML file. The scoring
// thresholds themselves travel as an explicit immutable value; nothing here
// is global mutable state.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/superdoc-dev/superdoc-visual-benchmarks/internal/scoring"
)

type Config struct {
	Host               string
	Port               string
	RequestTimeout     time.Duration
	ImageFetchTimeout  time.Duration
	MaxRequestBodySize int64

	// Workers bounds concurrent document scoring; 0 means CPU count.
	Workers int

	// ReportsDir is where score artifacts (JSON, text, diff overlays) land.
	ReportsDir string

	// HistoryPath is the SQLite run-history database file.
	HistoryPath string
}

func (c *Config) ServerAddress() string {
	return net.JoinHostPort(strings.TrimSpace(c.Host), strings.TrimSpace(c.Port))
}

func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Host:               getEnvOrDefault("HOST", "0.0.0.0"),
		Port:               getEnvOrDefault("PORT", "8080"),
		RequestTimeout:     parseDurationOrDefault("REQUEST_TIMEOUT", 120*time.Second),
		ImageFetchTimeout:  parseDurationOrDefault("IMAGE_FETCH_TIMEOUT", 15*time.Second),
		MaxRequestBodySize: parseIntOrDefault("MAX_REQUEST_BODY_SIZE", 10*1024*1024),
		Workers:            int(parseIntOrDefault("SCORE_WORKERS", 0)),
		ReportsDir:         getEnvOrDefault("REPORTS_DIR", "reports"),
		HistoryPath:        getEnvOrDefault("HISTORY_DB", "benchmark-history.db"),
	}

	p, err := strconv.Atoi(strings.TrimSpace(cfg.Port))
	if err != nil || p < 1 || p > 65535 {
		return nil, fmt.Errorf("invalid PORT: %q", cfg.Port)
	}
	if cfg.MaxRequestBodySize <= 0 {
		return nil, fmt.Errorf("MAX_REQUEST_BODY_SIZE must be > 0 (got %d)", cfg.MaxRequestBodySize)
	}
	if cfg.RequestTimeout <= 0 || cfg.ImageFetchTimeout <= 0 {
		return nil, fmt.Errorf("timeouts must be > 0 (got request=%s, fetch=%s)",
			cfg.RequestTimeout, cfg.ImageFetchTimeout)
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("SCORE_WORKERS must be >= 0 (got %d)", cfg.Workers)
	}
	return cfg, nil
}

// LoadScoreConfig returns the scoring thresholds, overlaying any fields
// present in the YAML file at path onto the calibrated defaults. An empty
// path returns the defaults unchanged.
func LoadScoreConfig(path string) (scoring.Config, error) {
	cfg := scoring.DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read score config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse score config %s: %w", path, err)
	}
	if cfg.Weights == (scoring.Weights{}) {
		return cfg, fmt.Errorf("score config %s: all weights are zero", path)
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
