package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/phishscan/phishscan/internal/model"
)

// MarkdownWriter outputs reports in Markdown format for documentation
// and sharing.
type MarkdownWriter struct {
	baseWriter

	// showFeatures controls whether the full feature table is included.
	showFeatures bool
}

// MarkdownWriterOption configures a MarkdownWriter.
type MarkdownWriterOption func(*MarkdownWriter)

// WithMarkdownFeatures includes the full feature table in the document.
func WithMarkdownFeatures(show bool) MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		w.showFeatures = show
	}
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, opts ...MarkdownWriterOption) *MarkdownWriter {
	w := &MarkdownWriter{
		baseWriter:   newBaseWriter(output),
		showFeatures: true,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(report *model.ExtractionReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeSignals(md, report)
	if w.showFeatures {
		w.writeFeatures(md, report)
	}
	w.writeFailures(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with scan information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.ExtractionReport) {
	md.H1("Phishscan Report")
	md.PlainText("")

	registrar := report.Registrar
	if registrar == "" {
		registrar = "-"
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"URL", "`" + report.URL + "`"},
			{"Domain", "`" + report.Domain.Domain + "`"},
			{"Registrar", registrar},
			{"Scan Date", report.ExtractedAt.Format("2006-01-02 15:04:05 MST")},
			{"Status", w.getStatusText(report)},
		},
	})
	md.PlainText("")
}

// getStatusText returns the status text based on report state.
func (w *MarkdownWriter) getStatusText(report *model.ExtractionReport) string {
	if report.DegradedFetch {
		return "⚠️ Degraded (URL features only)"
	}
	if len(report.Failures) > 0 {
		return "⚠️ Partial (" + strconv.Itoa(len(report.Failures)) + " analyzer failures)"
	}
	return "✅ Complete"
}

// writeSignals writes the triggered-signal section with an alert.
func (w *MarkdownWriter) writeSignals(md *markdown.Markdown, report *model.ExtractionReport) {
	md.H2("Suspicious Signals")
	md.PlainText("")

	reasons := Reasons(report)
	if len(reasons) == 0 {
		md.Tip("No suspicious signals detected.")
		md.PlainText("")
		return
	}

	md.BulletList(reasons...)
	md.PlainText("")

	switch {
	case len(reasons) >= 5:
		md.Cautionf("%d suspicious signals detected. This page is very likely a phishing attempt.", len(reasons))
	case len(reasons) >= 3:
		md.Warningf("%d suspicious signals detected. Treat this page with caution.", len(reasons))
	default:
		md.Importantf("%d suspicious signal(s) detected.", len(reasons))
	}
	md.PlainText("")
}

// writeFeatures writes the complete feature table in schema order.
func (w *MarkdownWriter) writeFeatures(md *markdown.Markdown, report *model.ExtractionReport) {
	if report.Record == nil {
		return
	}

	md.H2("Features")
	md.PlainText("")

	schema := report.Record.Schema()
	names := schema.Names()
	rows := make([][]string, len(names))
	for i, name := range names {
		rows[i] = []string{"`" + name + "`", report.Record.FormatValue(i)}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Feature", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFailures writes the analyzer failure section when present.
func (w *MarkdownWriter) writeFailures(md *markdown.Markdown, report *model.ExtractionReport) {
	if len(report.Failures) == 0 {
		return
	}

	md.H2("Analyzer Failures")
	md.PlainText("")

	rows := make([][]string, len(report.Failures))
	for i, f := range report.Failures {
		rows[i] = []string{f.Analyzer, truncateString(f.Reason, 80)}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Analyzer", "Reason"},
		Rows:   rows,
	})
	md.PlainText("Features owned by failed analyzers defaulted to zero.")
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by phishscan*")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
