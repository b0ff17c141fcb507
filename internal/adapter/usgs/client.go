package usgs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/disaster-map/internal/domain"
	"github.com/couchcryptid/disaster-map/internal/observability"
)

const (
	sourceName = "quake"
	plotTitle  = "Global Earthquakes (Past 24 Hours)"
)

// Client implements domain.PointSource for USGS GeoJSON summary feeds.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates an earthquake data source for the given feed URL.
func NewClient(url string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		metrics: metrics,
	}
}

func (c *Client) Name() string  { return sourceName }
func (c *Client) Title() string { return plotTitle }

// Fetch retrieves the feed and converts its features into a dataset. Features
// without a usable magnitude or coordinate pair are skipped and counted.
func (c *Client) Fetch(ctx context.Context) (domain.Dataset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("%w: create request: %v", domain.ErrFetchFailed, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("%w: quake feed request: %v", domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Dataset{}, fmt.Errorf("%w: quake feed status %d", domain.ErrFetchFailed, resp.StatusCode)
	}

	var feed feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return domain.Dataset{}, fmt.Errorf("%w: decode quake feed: %v", domain.ErrParseFailed, err)
	}
	if feed.Features == nil {
		return domain.Dataset{}, fmt.Errorf("%w: quake feed has no features collection", domain.ErrParseFailed)
	}

	points, skipped := convertFeatures(feed.Features)
	if len(points) == 0 {
		return domain.Dataset{}, fmt.Errorf("%w: quake feed contained no usable features", domain.ErrNoData)
	}

	if skipped > 0 {
		c.logger.Info("skipped unusable quake features", "count", skipped)
	}
	c.metrics.PointsParsed.WithLabelValues(sourceName).Add(float64(len(points)))
	c.metrics.RowsSkipped.WithLabelValues(sourceName).Add(float64(skipped))

	return domain.NewDataset(sourceName, plotTitle, points, skipped), nil
}

// convertFeatures validates each feature into a GeoPoint, dropping those with
// a nil or negative magnitude or a missing coordinate pair.
func convertFeatures(features []feature) ([]domain.GeoPoint, int) {
	var points []domain.GeoPoint
	var skipped int
	for _, f := range features {
		if f.Properties.Mag == nil || len(f.Geometry.Coordinates) < 2 {
			skipped++
			continue
		}

		// GeoJSON coordinate order is [lon, lat, depth].
		lon := f.Geometry.Coordinates[0]
		lat := f.Geometry.Coordinates[1]

		point, err := domain.NewGeoPoint(sourceName, lat, lon, *f.Properties.Mag, f.Properties.Title)
		if err != nil {
			skipped++
			continue
		}
		points = append(points, point)
	}
	return points, skipped
}

// USGS GeoJSON feed types.

type feedResponse struct {
	Metadata struct {
		Title string `json:"title"`
		Count int    `json:"count"`
	} `json:"metadata"`
	Features []feature `json:"features"`
}

type feature struct {
	Properties struct {
		Mag   *float64 `json:"mag"`
		Place string   `json:"place"`
		Title string   `json:"title"`
	} `json:"properties"`
	Geometry struct {
		Coordinates []float64 `json:"coordinates"` // [lon, lat, depth]
	} `json:"geometry"`
}
