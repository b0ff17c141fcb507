package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// visualization session.
type Metrics struct {
	FetchesTotal  *prometheus.CounterVec // labels: source, outcome={success,fetch_error,parse_error,empty}
	PointsParsed  *prometheus.CounterVec // labels: source
	RowsSkipped   *prometheus.CounterVec // labels: source
	FetchDuration *prometheus.HistogramVec

	PlotsRendered  prometheus.Counter
	RenderDuration prometheus.Histogram

	// Dataset cache metrics.
	CacheLookups *prometheus.CounterVec // labels: source, result={hit,miss}

	SessionActive prometheus.Gauge
}

// NewMetrics creates and registers all session metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		FetchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "disaster_map",
			Name:      "fetches_total",
			Help:      "Feed fetch attempts by source and outcome.",
		}, []string{"source", "outcome"}),
		PointsParsed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "disaster_map",
			Name:      "points_parsed_total",
			Help:      "Valid geo points produced from source records.",
		}, []string{"source"}),
		RowsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "disaster_map",
			Name:      "rows_skipped_total",
			Help:      "Malformed source records dropped during parsing.",
		}, []string{"source"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "disaster_map",
			Name:      "fetch_duration_seconds",
			Help:      "Feed fetch-and-parse duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"source"}),
		PlotsRendered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "disaster_map",
			Name:      "plots_rendered_total",
			Help:      "Total interactive plots written to disk.",
		}),
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "disaster_map",
			Name:      "render_duration_seconds",
			Help:      "Plot rendering duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "disaster_map",
			Name:      "cache_lookups_total",
			Help:      "Dataset cache lookups by source and result.",
		}, []string{"source", "result"}),
		SessionActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "disaster_map",
			Name:      "session_active",
			Help:      "1 while the interactive session is running, 0 after shutdown.",
		}),
	}

	prometheus.MustRegister(
		m.FetchesTotal,
		m.PointsParsed,
		m.RowsSkipped,
		m.FetchDuration,
		m.PlotsRendered,
		m.RenderDuration,
		m.CacheLookups,
		m.SessionActive,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		FetchesTotal:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "disaster_map", Name: "fetches_total"}, []string{"source", "outcome"}),
		PointsParsed:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "disaster_map", Name: "points_parsed_total"}, []string{"source"}),
		RowsSkipped:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "disaster_map", Name: "rows_skipped_total"}, []string{"source"}),
		FetchDuration:  prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "disaster_map", Name: "fetch_duration_seconds"}, []string{"source"}),
		PlotsRendered:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "disaster_map", Name: "plots_rendered_total"}),
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "disaster_map", Name: "render_duration_seconds"}),
		CacheLookups:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "disaster_map", Name: "cache_lookups_total"}, []string{"source", "result"}),
		SessionActive:  prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "disaster_map", Name: "session_active"}),
	}
}
