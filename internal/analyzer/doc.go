// Package analyzer implements the feature analyzers that inspect a page
// from different angles: lexical URL shape, content heuristics,
// document structure, urgency cues, visual signals in images, and domain
// registration age. Each analyzer returns the named feature values it
// computed, or an error the aggregator converts into schema defaults, so
// one failing analyzer never takes down an extraction.
package analyzer
