package report

import (
	"io"

	"github.com/phishscan/phishscan/internal/model"
)

// Writer outputs an extraction report to a configured destination.
//
// The interface exists so the CLI can fan the same report out to a
// terminal, a file, and a pipeline format without caring which is which.
type Writer interface {
	// Write outputs the report. Returns the number of bytes written
	// and any error encountered.
	Write(report *model.ExtractionReport) (int, error)
}

// MultiWriter writes to multiple Writers in sequence, stopping on the
// first error. Useful for terminal plus file output from one scan.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers. Returns the total
// bytes written across all writers.
func (m *MultiWriter) Write(report *model.ExtractionReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides the shared output destination for report writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
