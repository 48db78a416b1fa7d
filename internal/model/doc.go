// Package model defines the core data structures shared across the
// feature-extraction engine: resolved domain information, the fixed
// FeatureRecord schema consumed by the downstream classifier, and the
// per-extraction report handed back to callers.
package model
