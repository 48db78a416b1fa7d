package vectorizer

import "errors"

var (
	// ErrModelNotFound is returned when the model file does not exist.
	ErrModelNotFound = errors.New("vectorizer: model file not found")
	// ErrInvalidModel is returned when a model file is malformed or its
	// vocabulary and idf tables disagree.
	ErrInvalidModel = errors.New("vectorizer: invalid model")
	// ErrEmptyCorpus is returned when Fit is called with no documents.
	ErrEmptyCorpus = errors.New("vectorizer: empty corpus")
)
