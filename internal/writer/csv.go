package writer

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/insightdelivered/upi-statement-parser/internal/models"
)

// CSVWriter writes transactions to CSV format.
type CSVWriter struct {
	DateLayout string
}

// Write writes a header row followed by one row per transaction.
func (w *CSVWriter) Write(out io.Writer, res *models.StatementResult) error {
	if err := gocsv.Marshal(rows(res, w.DateLayout), out); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

func (w *CSVWriter) Extension() string { return FormatCSV }
func (w *CSVWriter) ContentType() string { return "text/csv" }
