package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFeedURL = "http://localhost:9999/feed"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Contains(t, cfg.FireCSVURL, "world_fires_1_day.csv")
	assert.Contains(t, cfg.QuakeFeedURL, "earthquake.usgs.gov")
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.CacheEnabled)
	assert.Equal(t, 16, cfg.CacheSize)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("FIRE_CSV_URL", testFeedURL+"/fires.csv")
	t.Setenv("QUAKE_FEED_URL", testFeedURL+"/quakes.geojson")
	t.Setenv("FETCH_TIMEOUT", "5s")
	t.Setenv("OUTPUT_DIR", "/tmp/plots")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("CACHE_SIZE", "4")
	t.Setenv("CACHE_TTL", "90s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, testFeedURL+"/fires.csv", cfg.FireCSVURL)
	assert.Equal(t, testFeedURL+"/quakes.geojson", cfg.QuakeFeedURL)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
	assert.Equal(t, "/tmp/plots", cfg.OutputDir)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.CacheEnabled)
	assert.Equal(t, 4, cfg.CacheSize)
	assert.Equal(t, 90*time.Second, cfg.CacheTTL)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidFetchTimeout(t *testing.T) {
	t.Setenv("FETCH_TIMEOUT", "bad")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FETCH_TIMEOUT")
}

func TestLoad_NegativeFetchTimeout(t *testing.T) {
	t.Setenv("FETCH_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FETCH_TIMEOUT")
}

func TestLoad_InvalidCacheTTL(t *testing.T) {
	t.Setenv("CACHE_TTL", "forever")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CACHE_TTL")
}

func TestLoad_CacheSizeFallsBackOnGarbage(t *testing.T) {
	t.Setenv("CACHE_SIZE", "-3")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.CacheSize)
}

func TestLoad_CacheDisabledByDefault(t *testing.T) {
	t.Setenv("CACHE_ENABLED", "yes")
	cfg, err := Load()
	require.NoError(t, err)
	// Only the literal "true" enables the cache.
	assert.False(t, cfg.CacheEnabled)
}
