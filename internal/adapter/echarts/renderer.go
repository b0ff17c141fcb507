package echarts

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/couchcryptid/disaster-map/internal/domain"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// Color scales keyed by source name. Fires use a yellow-to-red ramp; quakes
// use a reversed viridis so the strongest magnitudes read darkest.
var colorScales = map[string][]string{
	"fire":  {"#ffffb2", "#fecc5c", "#fd8d3c", "#f03b20", "#bd0026"},
	"quake": {"#fde725", "#5ec962", "#21918c", "#3b528b", "#440154"},
}

var defaultColorScale = []string{"#e0f3f8", "#74add1", "#4575b4"}

// Renderer implements domain.Renderer, writing each dataset as a standalone
// interactive world-map HTML file.
type Renderer struct {
	outputDir string
	logger    *slog.Logger
}

// NewRenderer creates a renderer that writes plots into outputDir.
func NewRenderer(outputDir string, logger *slog.Logger) *Renderer {
	return &Renderer{outputDir: outputDir, logger: logger}
}

// Render builds a geo scatter chart from the dataset and returns the path of
// the written HTML file.
func (r *Renderer) Render(dataset domain.Dataset) (string, error) {
	geo := charts.NewGeo()

	minI, maxI := intensityRange(dataset.Points)
	geo.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: dataset.Title}),
		charts.WithTitleOpts(opts.Title{Title: dataset.Title}),
		charts.WithGeoComponentOpts(opts.GeoComponent{Map: "world"}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: true,
			Min:        float32(minI),
			Max:        float32(maxI),
			InRange:    &opts.VisualMapInRange{Color: colorScale(dataset.Source)},
		}),
	)

	data := make([]opts.GeoData, 0, len(dataset.Points))
	for _, p := range dataset.Points {
		name := p.Label
		if name == "" {
			name = p.ID
		}
		// Geo series expect [lon, lat, value].
		data = append(data, opts.GeoData{Name: name, Value: []float64{p.Lon, p.Lat, p.Intensity}})
	}
	geo.AddSeries("intensity", types.ChartScatter, data)

	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(r.outputDir, fileName(dataset.Title))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create plot file: %w", err)
	}
	defer f.Close()

	if err := geo.Render(f); err != nil {
		return "", fmt.Errorf("render plot: %w", err)
	}

	r.logger.Info("plot written", "path", path, "points", len(dataset.Points))
	return path, nil
}

// fileName derives the output file name from the plot title, lowercased with
// spaces replaced by underscores.
func fileName(title string) string {
	return strings.ToLower(strings.ReplaceAll(title, " ", "_")) + ".html"
}

func colorScale(source string) []string {
	if scale, ok := colorScales[source]; ok {
		return scale
	}
	return defaultColorScale
}

func intensityRange(points []domain.GeoPoint) (float64, float64) {
	if len(points) == 0 {
		return 0, 0
	}
	minI, maxI := points[0].Intensity, points[0].Intensity
	for _, p := range points[1:] {
		if p.Intensity < minI {
			minI = p.Intensity
		}
		if p.Intensity > maxI {
			maxI = p.Intensity
		}
	}
	return minI, maxI
}
