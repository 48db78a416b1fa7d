package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/phishscan/phishscan/internal/model"
)

// WriteCSV writes labeled reports as a training CSV: one header row with
// the schema column names plus "label", then one row per report with
// values formatted by field type.
func WriteCSV(w io.Writer, schema *model.Schema, reports []*LabeledReport) error {
	cw := csv.NewWriter(w)

	header := append(schema.Names(), "label")
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	row := make([]string, schema.Len()+1)
	for _, lr := range reports {
		rec := lr.Report.Record
		for i := 0; i < schema.Len(); i++ {
			row[i] = rec.FormatValue(i)
		}
		row[schema.Len()] = strconv.Itoa(lr.Label)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row for %s: %w", lr.Report.URL, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
