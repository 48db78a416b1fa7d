// Package extractor runs the analyzer set over one page and aggregates
// their results into a complete, fixed-schema feature record. Analyzer
// failures degrade to schema defaults instead of aborting the call; the
// only hard errors are an empty URL and caller cancellation.
package extractor
