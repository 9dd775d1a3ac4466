package sink

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"wc-order-export/internal/model"
)

// Sink receives the complete, ordered row set of one pipeline run. Sinks are
// only invoked after all fetching has finished, so a run that fails never
// writes partial output anywhere.
type Sink interface {
	Write(ctx context.Context, rows []model.OutputRow) error
}

// records renders the header plus one record per row, in output order.
func records(rows []model.OutputRow) [][]string {
	out := make([][]string, 0, len(rows)+1)
	out = append(out, model.RowHeader())
	for _, row := range rows {
		out = append(out, row.Record())
	}
	return out
}

// renderCSV serialises the rows as CSV bytes, header included.
func renderCSV(rows []model.OutputRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.WriteAll(records(rows)); err != nil {
		return nil, fmt.Errorf("failed to render CSV: %w", err)
	}

	return buf.Bytes(), nil
}
