package report

import (
	"encoding/json"
	"io"

	"github.com/phishscan/phishscan/internal/model"
)

// JSONWriter outputs reports in JSON format for tool integration and
// programmatic processing.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = ""
		w.indentString = "  "
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter:   newBaseWriter(output),
		indent:       false,
		indentPrefix: "",
		indentString: "",
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// JSONReport wraps the extraction report with output-only metadata so
// version and signal information can travel with the JSON document
// without polluting the core report type.
type JSONReport struct {
	// Version is the phishscan version that generated this report.
	Version string `json:"version,omitempty"`

	// Report is the full extraction report including the feature record.
	Report *model.ExtractionReport `json:"report"`

	// Signals lists the human-readable explanations for suspicious
	// values in the feature record.
	Signals []string `json:"signals"`
}

// Write outputs the full report in JSON format.
func (w *JSONWriter) Write(report *model.ExtractionReport) (int, error) {
	wrapped := &JSONReport{
		Report:  report,
		Signals: Reasons(report),
	}
	return w.writeJSON(wrapped)
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	// Trailing newline for terminal and line-oriented consumers.
	data = append(data, '\n')

	return w.output.Write(data)
}

// FullJSONWriter outputs reports with a version field in the wrapper.
type FullJSONWriter struct {
	*JSONWriter

	// version is the phishscan version string.
	version string
}

// NewFullJSONWriter creates a writer that stamps reports with the
// given version.
func NewFullJSONWriter(output io.Writer, version string, opts ...JSONWriterOption) *FullJSONWriter {
	return &FullJSONWriter{
		JSONWriter: NewJSONWriter(output, opts...),
		version:    version,
	}
}

// Write outputs the report wrapped with version metadata.
func (w *FullJSONWriter) Write(report *model.ExtractionReport) (int, error) {
	wrapped := &JSONReport{
		Version: w.version,
		Report:  report,
		Signals: Reasons(report),
	}
	return w.writeJSON(wrapped)
}
