package domain

import "errors"

// Failure kinds reported to the user. Adapters wrap these with context via
// fmt.Errorf("%w: ...") and callers match with errors.Is.
var (
	// ErrFetchFailed covers transport failures, non-success HTTP statuses,
	// and request timeouts.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrParseFailed covers structurally malformed payloads: missing header
	// columns, invalid JSON, an unexpected top-level shape.
	ErrParseFailed = errors.New("parse failed")

	// ErrNoData means the payload was well formed but produced zero usable
	// records after validation.
	ErrNoData = errors.New("no usable records")
)
