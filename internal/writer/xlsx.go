package writer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/insightdelivered/upi-statement-parser/internal/models"
)

const sheetName = "Transactions"

// XLSXWriter writes a single-sheet workbook with a totals block under the
// transactions. Amounts are stored as numbers so the sheet can be summed.
type XLSXWriter struct {
	DateLayout string
}

func (w *XLSXWriter) Write(out io.Writer, res *models.StatementResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(rowHeader))
	for i, h := range rowHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write XLSX header: %w", err)
	}

	rowIdx := 2
	for _, txn := range res.Transactions {
		r := newRow(txn, w.DateLayout)
		values := []interface{}{r.Date, r.Description, r.Category, r.Type, txn.Amount.InexactFloat64(), r.UTR}
		if err := setRow(f, rowIdx, values); err != nil {
			return err
		}
		rowIdx++
	}

	rowIdx++
	totals := [][]interface{}{
		{"Total Debit", res.TotalDebit.InexactFloat64()},
		{"Total Credit", res.TotalCredit.InexactFloat64()},
	}
	for _, t := range totals {
		if err := setRow(f, rowIdx, []interface{}{"", "", "", t[0], t[1]}); err != nil {
			return err
		}
		rowIdx++
	}

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write XLSX: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, rowIdx int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowIdx)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
		return fmt.Errorf("failed to write XLSX row %d: %w", rowIdx, err)
	}
	return nil
}

func (w *XLSXWriter) Extension() string { return FormatXLSX }
func (w *XLSXWriter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}
