package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/phishscan/phishscan/internal/model"
)

// SimpleWriter outputs human-readable text reports for terminal display.
// Plain ASCII formatting keeps the output pipeable to files and other
// tools without terminal compatibility issues.
type SimpleWriter struct {
	baseWriter

	// showFeatures controls whether the full feature table is printed.
	showFeatures bool

	// verbose enables additional detail such as analyzer timings.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowFeatures configures the writer to print every feature value,
// not just the triggered signals.
func WithShowFeatures(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showFeatures = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter:   newBaseWriter(output),
		showFeatures: false,
		verbose:      false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the full report in human-readable format.
func (w *SimpleWriter) Write(report *model.ExtractionReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeSignals(&sb, report)
	if w.showFeatures {
		w.writeFeatures(&sb, report)
	}
	w.writeFailures(&sb, report)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes scan metadata.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.ExtractionReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                         PHISHSCAN REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("URL:       %s\n", report.URL))
	sb.WriteString(fmt.Sprintf("Domain:    %s\n", report.Domain.Domain))
	if report.Registrar != "" {
		sb.WriteString(fmt.Sprintf("Registrar: %s\n", report.Registrar))
	}
	sb.WriteString(fmt.Sprintf("Scanned:   %s\n", report.ExtractedAt.Format("2006-01-02 15:04:05 MST")))
	if w.verbose {
		sb.WriteString(fmt.Sprintf("Elapsed:   %s\n", report.Elapsed))
	}

	if report.DegradedFetch {
		sb.WriteString("Status:    DEGRADED (page body unavailable, URL features only)\n")
	} else if len(report.Failures) > 0 {
		sb.WriteString(fmt.Sprintf("Status:    PARTIAL (%d analyzer failures)\n", len(report.Failures)))
	} else {
		sb.WriteString("Status:    Complete\n")
	}

	sb.WriteString("\n")
}

// writeSignals writes the triggered-signal section.
func (w *SimpleWriter) writeSignals(sb *strings.Builder, report *model.ExtractionReport) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("SUSPICIOUS SIGNALS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	reasons := Reasons(report)
	if len(reasons) == 0 {
		sb.WriteString("  No suspicious signals detected\n")
	} else {
		for _, reason := range reasons {
			sb.WriteString(fmt.Sprintf("  [!] %s\n", reason))
		}
	}
	sb.WriteString("\n")
}

// writeFeatures writes the full feature table in schema order.
func (w *SimpleWriter) writeFeatures(sb *strings.Builder, report *model.ExtractionReport) {
	if report.Record == nil {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("FEATURES\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	schema := report.Record.Schema()
	for i, name := range schema.Names() {
		sb.WriteString(fmt.Sprintf("  %-40s %s\n", name, report.Record.FormatValue(i)))
	}
	sb.WriteString("\n")
}

// writeFailures lists analyzers that could not complete.
func (w *SimpleWriter) writeFailures(sb *strings.Builder, report *model.ExtractionReport) {
	if len(report.Failures) == 0 {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("ANALYZER FAILURES\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, failure := range report.Failures {
		sb.WriteString(fmt.Sprintf("  * %s: %s\n", failure.Analyzer, failure.Reason))
		sb.WriteString("    (affected features defaulted to zero)\n")
	}
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by phishscan\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
