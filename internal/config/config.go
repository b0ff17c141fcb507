package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Default feed URLs. Both are public datasets; no credentials involved.
const (
	defaultFireCSVURL   = "https://raw.githubusercontent.com/ehmatthes/pcc_2e/master/chapter_16/mapping_global_data_sets/data/world_fires_1_day.csv"
	defaultQuakeFeedURL = "https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_day.geojson"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	FireCSVURL   string
	QuakeFeedURL string
	FetchTimeout time.Duration
	OutputDir    string

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Dataset cache configuration.
	CacheEnabled bool
	CacheSize    int
	CacheTTL     time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	fetchTimeoutStr := sharedcfg.EnvOrDefault("FETCH_TIMEOUT", "30s")
	fetchTimeout, err2 := time.ParseDuration(fetchTimeoutStr)
	if err2 != nil || fetchTimeout <= 0 {
		return nil, errors.New("invalid FETCH_TIMEOUT")
	}

	cacheTTLStr := sharedcfg.EnvOrDefault("CACHE_TTL", "5m")
	cacheTTL, err3 := time.ParseDuration(cacheTTLStr)
	if err3 != nil || cacheTTL <= 0 {
		return nil, errors.New("invalid CACHE_TTL")
	}

	cfg := &Config{
		FireCSVURL:   sharedcfg.EnvOrDefault("FIRE_CSV_URL", defaultFireCSVURL),
		QuakeFeedURL: sharedcfg.EnvOrDefault("QUAKE_FEED_URL", defaultQuakeFeedURL),
		FetchTimeout: fetchTimeout,
		OutputDir:    sharedcfg.EnvOrDefault("OUTPUT_DIR", "."),

		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "text"),
		ShutdownTimeout: shutdownTimeout,

		CacheEnabled: os.Getenv("CACHE_ENABLED") == "true",
		CacheSize:    parseCacheSize(),
		CacheTTL:     cacheTTL,
	}

	if cfg.FireCSVURL == "" {
		return nil, errors.New("FIRE_CSV_URL is required")
	}
	if cfg.QuakeFeedURL == "" {
		return nil, errors.New("QUAKE_FEED_URL is required")
	}
	if cfg.OutputDir == "" {
		return nil, errors.New("OUTPUT_DIR is required")
	}

	return cfg, nil
}

func parseCacheSize() int {
	if s := os.Getenv("CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 16
}
