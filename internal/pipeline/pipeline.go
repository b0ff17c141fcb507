package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/disaster-map/internal/domain"
	"github.com/couchcryptid/disaster-map/internal/observability"
)

// Pipeline orchestrates one fetch-validate-render cycle per menu selection.
type Pipeline struct {
	renderer domain.Renderer
	logger   *slog.Logger
	metrics  *observability.Metrics
	ready    atomic.Bool
}

// New creates a Pipeline with the given renderer and observability.
func New(renderer domain.Renderer, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		renderer: renderer,
		logger:   logger,
		metrics:  metrics,
	}
}

// CheckReadiness returns nil once at least one visualization has completed,
// or an error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no visualization has completed yet")
	}
	return nil
}

// Visualize fetches the source's dataset and renders it, returning the path
// of the written plot. Failures are never retried here; the menu reports them
// and re-prompts.
func (p *Pipeline) Visualize(ctx context.Context, source domain.PointSource) (string, error) {
	start := time.Now()

	dataset, err := source.Fetch(ctx)
	if err != nil {
		p.metrics.FetchesTotal.WithLabelValues(source.Name(), fetchOutcome(err)).Inc()
		p.logger.Error("fetch failed", "source", source.Name(), "error", err)
		return "", err
	}
	p.metrics.FetchesTotal.WithLabelValues(source.Name(), "success").Inc()
	p.metrics.FetchDuration.WithLabelValues(source.Name()).Observe(time.Since(start).Seconds())

	renderStart := time.Now()
	path, err := p.renderer.Render(dataset)
	if err != nil {
		p.logger.Error("render failed", "source", source.Name(), "error", err)
		return "", err
	}
	p.metrics.RenderDuration.Observe(time.Since(renderStart).Seconds())
	p.metrics.PlotsRendered.Inc()
	p.ready.Store(true)

	p.logger.Info("visualization complete",
		"source", source.Name(),
		"points", len(dataset.Points),
		"skipped", dataset.Skipped,
		"path", path,
	)
	return path, nil
}

// fetchOutcome maps a fetch error to its metric label.
func fetchOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrParseFailed):
		return "parse_error"
	case errors.Is(err, domain.ErrNoData):
		return "empty"
	default:
		return "fetch_error"
	}
}
