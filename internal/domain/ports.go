package domain

import "context"

// PointSource fetches one dataset of validated geo points from an external
// feed. Fetch performs at most one network read and honors the context for
// cancellation and timeout.
type PointSource interface {
	// Name is the short machine identifier, e.g. "fire" or "quake".
	Name() string

	// Title is the human-facing plot title for the source.
	Title() string

	Fetch(ctx context.Context) (Dataset, error)
}

// Renderer turns a dataset into an interactive visualization artifact and
// returns the path it was written to. Marker sizing and coloring policy is
// the renderer's concern, not the domain's.
type Renderer interface {
	Render(dataset Dataset) (string, error)
}
