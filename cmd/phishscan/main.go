// Package main provides the entry point for the phishscan CLI.
//
// Phishscan extracts machine-learning features from suspected phishing
// pages. It analyzes the URL, page content, HTML structure, urgency
// cues, and embedded images, and emits a fixed-schema feature vector
// suitable for a downstream classifier.
//
// Usage:
//
//	phishscan scan <url>
//	phishscan dataset --input urls.csv --output features.csv
//
// See --help for all available options.
package main

// main is the entry point for phishscan.
func main() {
	Execute()
}
