package firms

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/disaster-map/internal/domain"
	"github.com/couchcryptid/disaster-map/internal/observability"
)

const (
	sourceName = "fire"
	plotTitle  = "Global Fire Activity"
)

// Column aliases accepted for each required field, matched case-insensitively.
// MODIS exports name the brightness column "brightness"; VIIRS exports use
// "bright_ti4"/"bright_ti5".
var columnAliases = map[string][]string{
	"lat":        {"latitude"},
	"lon":        {"longitude"},
	"brightness": {"brightness", "bright_ti4", "bright_ti5"},
}

// Client implements domain.PointSource for NASA FIRMS fire-detection CSVs.
// The resource may be an http(s) URL or a local file path.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a fire data source for the given CSV resource.
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

// Fetch retrieves the CSV and parses it into a dataset. Malformed rows are
// skipped and counted; structural problems (missing columns) fail the whole
// fetch.
func (c *Client) Fetch(ctx context.Context) (domain.Dataset, error) {
	body, err := c.open(ctx)
	if err != nil {
		return domain.Dataset{}, err
	}
	defer body.Close()

	points, skipped, err := c.parseCSV(body)
	if err != nil {
		return domain.Dataset{}, err
	}
	if len(points) == 0 {
		return domain.Dataset{}, fmt.Errorf("%w: fire CSV contained no valid rows", domain.ErrNoData)
	}

	if skipped > 0 {
		c.logger.Info("skipped malformed fire rows", "count", skipped)
	}
	c.metrics.PointsParsed.WithLabelValues(sourceName).Add(float64(len(points)))
	c.metrics.RowsSkipped.WithLabelValues(sourceName).Add(float64(skipped))

	return domain.NewDataset(sourceName, plotTitle, points, skipped), nil
}

// open returns the raw CSV stream, either over HTTP or from the filesystem.
func (c *Client) open(ctx context.Context) (io.ReadCloser, error) {
	if !strings.HasPrefix(c.url, "http://") && !strings.HasPrefix(c.url, "https://") {
		f, err := os.Open(c.url)
		if err != nil {
			return nil, fmt.Errorf("%w: open fire CSV: %v", domain.ErrFetchFailed, err)
		}
		return f, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", domain.ErrFetchFailed, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fire CSV request: %v", domain.ErrFetchFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: fire CSV status %d", domain.ErrFetchFailed, resp.StatusCode)
	}

	return resp.Body, nil
}

// parseCSV streams rows and converts each into a GeoPoint, dropping rows that
// fail coercion or range validation.
func (c *Client) parseCSV(r io.Reader) ([]domain.GeoPoint, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // malformed rows are a per-row concern, not fatal

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: read fire CSV header: %v", domain.ErrParseFailed, err)
	}

	cols, err := resolveColumns(header)
	if err != nil {
		return nil, 0, err
	}

	var points []domain.GeoPoint
	var skipped int
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				skipped++
				continue
			}
			return nil, 0, fmt.Errorf("%w: read fire CSV row: %v", domain.ErrParseFailed, err)
		}

		point, ok := cols.parseRow(row)
		if !ok {
			skipped++
			continue
		}
		points = append(points, point)
	}

	return points, skipped, nil
}

// columnIndexes holds resolved positions of the required and optional columns.
type columnIndexes struct {
	lat        int
	lon        int
	brightness int
	acqDate    int // -1 when absent
}

// resolveColumns locates the required fields in the header row.
func resolveColumns(header []string) (columnIndexes, error) {
	byName := make(map[string]int, len(header))
	for i, h := range header {
		byName[strings.ToLower(strings.TrimSpace(h))] = i
	}

	find := func(field string) (int, bool) {
		for _, alias := range columnAliases[field] {
			if i, ok := byName[alias]; ok {
				return i, true
			}
		}
		return 0, false
	}

	cols := columnIndexes{acqDate: -1}
	var ok bool
	if cols.lat, ok = find("lat"); !ok {
		return columnIndexes{}, fmt.Errorf("%w: fire CSV missing latitude column", domain.ErrParseFailed)
	}
	if cols.lon, ok = find("lon"); !ok {
		return columnIndexes{}, fmt.Errorf("%w: fire CSV missing longitude column", domain.ErrParseFailed)
	}
	if cols.brightness, ok = find("brightness"); !ok {
		return columnIndexes{}, fmt.Errorf("%w: fire CSV missing brightness column", domain.ErrParseFailed)
	}
	if i, found := byName["acq_date"]; found {
		cols.acqDate = i
	}
	return cols, nil
}

// parseRow coerces one CSV row into a GeoPoint. Returns false when a required
// field is missing, non-numeric, or out of range.
func (cols columnIndexes) parseRow(row []string) (domain.GeoPoint, bool) {
	lat, ok1 := parseField(row, cols.lat)
	lon, ok2 := parseField(row, cols.lon)
	brightness, ok3 := parseField(row, cols.brightness)
	if !ok1 || !ok2 || !ok3 {
		return domain.GeoPoint{}, false
	}

	var label string
	if cols.acqDate >= 0 && cols.acqDate < len(row) {
		label = strings.TrimSpace(row[cols.acqDate])
	}

	point, err := domain.NewGeoPoint(sourceName, lat, lon, brightness, label)
	if err != nil {
		return domain.GeoPoint{}, false
	}
	return point, true
}

func parseField(row []string, idx int) (float64, bool) {
	if idx >= len(row) {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(row[idx]), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
