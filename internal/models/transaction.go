package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction tells whether a transaction moved money into or out of the account.
type Direction string

const (
	DirectionCredit  Direction = "CREDIT"
	DirectionDebit   Direction = "DEBIT"
	DirectionUnknown Direction = "UNKNOWN"
)

// Category labels that the pipeline itself relies on. The full taxonomy
// lives in the categorizer package.
const (
	CategoryIncome  = "Income / Transfer In"
	CategoryOther   = "Other Expense"
	UnknownDesc     = "Unknown"
	DateLayoutShort = "02-Jan-2006" // 05-Jan-2024
	DateLayoutISO   = "2006-01-02"
)

// Transaction is a single statement transaction reconstructed from PDF text.
type Transaction struct {
	Date        *time.Time      // nil when the blob carries no parseable date
	Amount      decimal.Decimal // zero means the amount could not be determined
	Direction   Direction
	Description string
	Category    string
	Reference   *string // UTR / bank reference number
}

// StatementResult holds the transactions kept from one statement along with
// the counters collected while reconstructing them.
type StatementResult struct {
	Transactions []Transaction
	TotalDebit   decimal.Decimal
	TotalCredit  decimal.Decimal

	Pages   int // pages handed to the pipeline
	Lines   int // lines left after noise stripping
	Blobs   int // grouped transaction blobs
	Dropped int // blobs discarded for a zero amount
}

// Count returns the number of kept transactions.
func (r *StatementResult) Count() int {
	return len(r.Transactions)
}

// FormatDate renders t with layout, or returns nil for an absent date.
func FormatDate(t *time.Time, layout string) *string {
	if t == nil {
		return nil
	}
	s := t.Format(layout)
	return &s
}
