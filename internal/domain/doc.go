// Package domain models validated geographic disaster records.
//
// # Data Sources
//
// Fire locations come from NASA FIRMS (Fire Information for Resource
// Management System) daily CSV exports. Each row carries a detection
// coordinate and a brightness temperature in Kelvin. Column naming varies by
// satellite product: MODIS files use "brightness", VIIRS files use
// "bright_ti4"/"bright_ti5". Header names are matched case-insensitively.
//
// Earthquakes come from the USGS real-time GeoJSON summary feeds
// (https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/). Each feature
// bundles a magnitude, a human-readable title, and a coordinate triple.
//
// # Coordinate Ordering
//
// GeoJSON encodes coordinates as [longitude, latitude, depth]. The USGS
// adapter maps positions 0 and 1 into the named Lon/Lat fields exactly once,
// at the decode boundary. Everything downstream works with named fields.
//
// # Validation
//
// [NewGeoPoint] is the only constructor. Latitude must lie in [-90, 90],
// longitude in [-180, 180], and intensity must be a non-negative finite
// number. Source records that fail any of these are dropped and counted by
// the adapters; a malformed GeoPoint never enters a Dataset. USGS reports
// negative magnitudes for some micro-quakes; those fall out here too.
//
// # ID Generation
//
// Point IDs are deterministic SHA-256 short hashes of
// source|lat|lon|intensity|label, prefixed with the source name
// ("fire-1a2b..."). Refetching identical data yields identical IDs, which
// keeps plots and logs diffable across runs. See [generateID].
package domain
