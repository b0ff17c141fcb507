package domain

import "time"

// Dataset is one fetched and validated payload from a point source. Points
// are held in memory only long enough to be handed to the renderer; nothing
// is persisted.
type Dataset struct {
	Source    string     `json:"source"`
	Title     string     `json:"title"`
	Points    []GeoPoint `json:"points"`
	Skipped   int        `json:"skipped"` // malformed source records dropped during parsing
	FetchedAt time.Time  `json:"fetched_at"`
}

// NewDataset stamps a fetched point collection with the current clock time.
func NewDataset(source, title string, points []GeoPoint, skipped int) Dataset {
	return Dataset{
		Source:    source,
		Title:     title,
		Points:    points,
		Skipped:   skipped,
		FetchedAt: clock.Now(),
	}
}
