// Package dataset builds labeled training datasets from URL lists or
// saved HTML pages. Extraction runs across a bounded worker pool with a
// politeness rate limit, and results land in a CSV whose columns match
// the feature schema, optionally mirrored into a SQLite store for
// incremental dataset growth.
package dataset
