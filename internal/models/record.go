package models

// Record is the wire shape of a Transaction.
type Record struct {
	Date        *string `json:"date"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"` // CREDIT, DEBIT or UNKNOWN
	Description string  `json:"description"`
	Category    string  `json:"category"`
	UTR         *string `json:"utr"`
}

// Response is the JSON body returned for a successfully parsed statement.
type Response struct {
	Transactions []Record `json:"transactions"`
	Count        int      `json:"count"`
	TotalDebit   float64  `json:"totalDebit"`
	TotalCredit  float64  `json:"totalCredit"`
}

// NewRecord converts txn to its wire shape, rendering the date with layout.
func NewRecord(txn Transaction, layout string) Record {
	return Record{
		Date:        FormatDate(txn.Date, layout),
		Amount:      txn.Amount.InexactFloat64(),
		Type:        string(txn.Direction),
		Description: txn.Description,
		Category:    txn.Category,
		UTR:         txn.Reference,
	}
}

// NewResponse builds the response body for res.
func NewResponse(res *StatementResult, layout string) Response {
	// Never nil: a nil slice marshals to JSON null, not [].
	records := make([]Record, 0, res.Count())
	for _, txn := range res.Transactions {
		records = append(records, NewRecord(txn, layout))
	}
	return Response{
		Transactions: records,
		Count:        len(records),
		TotalDebit:   res.TotalDebit.InexactFloat64(),
		TotalCredit:  res.TotalCredit.InexactFloat64(),
	}
}
