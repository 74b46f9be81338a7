// Package writer renders a parsed statement as JSON, CSV or XLSX.
package writer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/insightdelivered/upi-statement-parser/internal/models"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Writer renders a statement result to out.
type Writer interface {
	Write(out io.Writer, res *models.StatementResult) error
	// Extension is the file extension, without the dot.
	Extension() string
	ContentType() string
}

// New returns the writer for format, rendering dates with dateLayout.
func New(format, dateLayout string) (Writer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatJSON:
		return &JSONWriter{DateLayout: dateLayout}, nil
	case FormatCSV:
		return &CSVWriter{DateLayout: dateLayout}, nil
	case FormatXLSX:
		return &XLSXWriter{DateLayout: dateLayout}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (want json, csv or xlsx)", format)
	}
}

// WriteToFile writes res to a file at the given path.
func WriteToFile(w Writer, path string, res *models.StatementResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	if err := w.Write(f, res); err != nil {
		return err
	}
	return f.Close()
}

// JSONWriter writes the same body the upload endpoint returns.
type JSONWriter struct {
	DateLayout string
}

func (w *JSONWriter) Write(out io.Writer, res *models.StatementResult) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(models.NewResponse(res, w.DateLayout)); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}

func (w *JSONWriter) Extension() string { return FormatJSON }
func (w *JSONWriter) ContentType() string { return "application/json" }

// row is the flat, all-text shape shared by the CSV and XLSX writers.
type row struct {
	Date        string `csv:"Date"`
	Description string `csv:"Description"`
	Category    string `csv:"Category"`
	Type        string `csv:"Type"`
	Amount      string `csv:"Amount"`
	UTR         string `csv:"UTR"`
}

var rowHeader = []string{"Date", "Description", "Category", "Type", "Amount", "UTR"}

func newRow(txn models.Transaction, layout string) row {
	r := row{
		Description: txn.Description,
		Category:    txn.Category,
		Type:        string(txn.Direction),
		Amount:      txn.Amount.StringFixed(2),
	}
	if d := models.FormatDate(txn.Date, layout); d != nil {
		r.Date = *d
	}
	if txn.Reference != nil {
		r.UTR = *txn.Reference
	}
	return r
}

func rows(res *models.StatementResult, layout string) []row {
	out := make([]row, 0, res.Count())
	for _, txn := range res.Transactions {
		out = append(out, newRow(txn, layout))
	}
	return out
}
