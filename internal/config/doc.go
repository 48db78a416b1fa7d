// Package config provides configuration structures and utilities for
// phishscan. It defines the extraction options, the immutable keyword
// corpora shared by all extraction calls, and their YAML file loaders.
package config
