package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/disaster-map/internal/adapter/echarts"
	"github.com/couchcryptid/disaster-map/internal/adapter/feedcache"
	"github.com/couchcryptid/disaster-map/internal/adapter/firms"
	httpadapter "github.com/couchcryptid/disaster-map/internal/adapter/http"
	"github.com/couchcryptid/disaster-map/internal/adapter/usgs"
	"github.com/couchcryptid/disaster-map/internal/cli"
	"github.com/couchcryptid/disaster-map/internal/config"
	"github.com/couchcryptid/disaster-map/internal/domain"
	"github.com/couchcryptid/disaster-map/internal/observability"
	"github.com/couchcryptid/disaster-map/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	sources := []domain.PointSource{
		firms.NewClient(cfg.FireCSVURL, cfg.FetchTimeout, logger, metrics),
		usgs.NewClient(cfg.QuakeFeedURL, cfg.FetchTimeout, logger, metrics),
	}

	// Dataset cache (feature-flagged via CACHE_ENABLED).
	if cfg.CacheEnabled {
		store := feedcache.NewStore(cfg.CacheSize, cfg.CacheTTL, clockwork.NewRealClock())
		for i, src := range sources {
			sources[i] = feedcache.Wrap(src, store, metrics)
		}
		logger.Info("dataset cache enabled", "size", cfg.CacheSize, "ttl", cfg.CacheTTL)
	}

	renderer := echarts.NewRenderer(cfg.OutputDir, logger)
	p := pipeline.New(renderer, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Observability sidecar for the duration of the session.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	metrics.SessionActive.Set(1)

	menu := cli.NewMenu(os.Stdin, os.Stdout, p, sources, logger)
	menuDone := make(chan error, 1)
	go func() {
		menuDone <- menu.Run(ctx)
	}()

	select {
	case err := <-menuDone:
		if err != nil {
			logger.Error("menu error", "error", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down", "reason", ctx.Err())
	}

	metrics.SessionActive.Set(0)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
