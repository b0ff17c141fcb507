package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
)

// GeoPoint is a validated latitude/longitude/intensity record ready for
// mapping. Intensity is fire brightness (Kelvin) or earthquake magnitude
// depending on the source.
type GeoPoint struct {
	ID        string  `json:"id"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Intensity float64 `json:"intensity"`
	Label     string  `json:"label,omitempty"`
}

// NewGeoPoint validates the coordinate and intensity ranges and returns the
// constructed point. It is the only way a GeoPoint comes into existence:
// adapters drop the source record when this fails.
func NewGeoPoint(source string, lat, lon, intensity float64, label string) (GeoPoint, error) {
	switch {
	case math.IsNaN(lat) || lat < -90 || lat > 90:
		return GeoPoint{}, fmt.Errorf("latitude %v outside [-90, 90]", lat)
	case math.IsNaN(lon) || lon < -180 || lon > 180:
		return GeoPoint{}, fmt.Errorf("longitude %v outside [-180, 180]", lon)
	case math.IsNaN(intensity) || math.IsInf(intensity, 0) || intensity < 0:
		return GeoPoint{}, fmt.Errorf("intensity %v is not a non-negative number", intensity)
	}

	return GeoPoint{
		ID:        generateID(source, lat, lon, intensity, label),
		Lat:       lat,
		Lon:       lon,
		Intensity: intensity,
		Label:     label,
	}, nil
}

// generateID produces a deterministic ID from the point's key fields so that
// refetching the same feed data yields the same IDs.
func generateID(source string, lat, lon, intensity float64, label string) string {
	input := fmt.Sprintf("%s|%.4f|%.4f|%g|%s", source, lat, lon, intensity, label)
	hash := sha256.Sum256([]byte(input))
	short := hex.EncodeToString(hash[:8])
	if source == "" {
		return short
	}
	return source + "-" + short
}
