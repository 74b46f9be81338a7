package parser

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/upi-statement-parser/internal/categorizer"
	"github.com/insightdelivered/upi-statement-parser/internal/logger"
	"github.com/insightdelivered/upi-statement-parser/internal/models"
)

// samplePages mimics the text of a two-page UPI statement.
var samplePages = []string{
	strings.Join([]string{
		"STATEMENT OF ACCOUNT",
		"Account Number: 000012345678",
		"Date Details Ref No Debit Credit Balance",
		"05 JAN 2024 UPI/DR/123456/JOHN DOE",
		"TRANSFER TO 9876543210 - 450.00",
		"10 FEB 2024 UPI/CR/998877/ACME CORP",
		"TRANSFER FROM 1234567890 - - 2000.00",
		"",
	}, "\n"),
	strings.Join([]string{
		"Date Details Ref No Debit Credit Balance",
		"12 FEB 2024 UPI/DR/445566/AIRTEL RECHARGE/PAYTM",
		"TRANSFER TO 5556667778 - 299.00",
		"13 FEB 2024 OPENING BALANCE NOTE",
		"14 FEB 2024 UPI/DR/778899/APOLLO PHARMACY MEDICAL STORE",
		"TRANSFER TO 4445556667 - 1,250.75",
		"Please do not share your ATM PIN",
		"15 FEB 2024 UPI/DR/000111/AFTER FOOTER",
		"TRANSFER TO 1112223334 - 99.00",
	}, "\n"),
}

func TestParse(t *testing.T) {
	p := New(nil, DefaultOptions())

	res := p.Parse(context.Background(), samplePages)

	require.Equal(t, 4, res.Count())
	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, 5, res.Blobs)
	assert.Equal(t, 1, res.Dropped)

	debit := res.Transactions[0]
	require.NotNil(t, debit.Date)
	assert.Equal(t, time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC), *debit.Date)
	assert.Equal(t, models.DirectionDebit, debit.Direction)
	assert.Equal(t, "450", debit.Amount.String())
	assert.Equal(t, "JOHN DOE", debit.Description)
	require.NotNil(t, debit.Reference)
	assert.Equal(t, "123456", *debit.Reference)
	assert.Equal(t, models.CategoryOther, debit.Category)

	credit := res.Transactions[1]
	assert.Equal(t, models.DirectionCredit, credit.Direction)
	assert.Equal(t, "2000", credit.Amount.String())
	assert.Equal(t, "ACME CORP", credit.Description)
	assert.Equal(t, models.CategoryIncome, credit.Category)

	recharge := res.Transactions[2]
	assert.Equal(t, "AIRTEL RECHARGE", recharge.Description)
	assert.Equal(t, categorizer.Recharge, recharge.Category)
	assert.Equal(t, "299", recharge.Amount.String())

	pharmacy := res.Transactions[3]
	assert.Equal(t, categorizer.Healthcare, pharmacy.Category)
	assert.Equal(t, "1250.75", pharmacy.Amount.String())

	assert.Equal(t, "1999.75", res.TotalDebit.String())
	assert.Equal(t, "2000", res.TotalCredit.String())
}

func TestParse_Invariants(t *testing.T) {
	p := New(nil, DefaultOptions())

	inputs := [][]string{
		samplePages,
		{"05 JAN 2024 UPI/DR/ ONLY 1 NUMBER"},
		{"random text", "more random text 1 2 3"},
		{"05 JAN 2024 UPI/CR/123456/SOMEONE 10.00 20.00", "06 JAN 2024 TRANSFER TO ACCOUNT"},
		{},
	}

	for _, pages := range inputs {
		res := p.Parse(context.Background(), pages)
		for _, txn := range res.Transactions {
			assert.True(t, txn.Amount.IsPositive(), "amount must be positive: %+v", txn)
			if txn.Direction == models.DirectionCredit {
				assert.Equal(t, models.CategoryIncome, txn.Category)
			}
			assert.NotEmpty(t, txn.Category)
		}
	}
}

func TestParse_Idempotent(t *testing.T) {
	p := New(nil, DefaultOptions())

	first := p.Parse(context.Background(), samplePages)
	second := p.Parse(context.Background(), samplePages)

	assert.Equal(t, first, second)
}

func TestParse_FooterTerminates(t *testing.T) {
	p := New(nil, DefaultOptions())

	res := p.Parse(context.Background(), samplePages)

	for _, txn := range res.Transactions {
		assert.NotEqual(t, "AFTER FOOTER", txn.Description)
	}
}

func TestParse_DropsBlobWithoutAmount(t *testing.T) {
	p := New(nil, DefaultOptions())

	res := p.Parse(context.Background(), []string{"UPI/DR/ PAYMENT 450"})

	assert.Zero(t, res.Count())
	assert.Equal(t, 1, res.Dropped)
	assert.NotNil(t, res.Transactions)
}

func TestParse_PreambleSkipOption(t *testing.T) {
	pages := []string{strings.Join([]string{
		"05 JAN 2024 UPI/DR/123456/BEFORE HEADER TRANSFER TO 9876543210 - 10.00",
		"Date Details Ref No",
		"06 JAN 2024 UPI/DR/654321/AFTER HEADER TRANSFER TO 9876543210 - 20.00",
	}, "\n")}

	skipping := New(nil, DefaultOptions()).Parse(context.Background(), pages)
	require.Equal(t, 1, skipping.Count())
	assert.Equal(t, "AFTER HEADER", skipping.Transactions[0].Description)

	opts := DefaultOptions()
	opts.SkipPreamble = false
	keeping := New(nil, opts).Parse(context.Background(), pages)
	require.Equal(t, 2, keeping.Count())
	assert.Equal(t, "BEFORE HEADER", keeping.Transactions[0].Description)
}

func TestParse_LogsFromContext(t *testing.T) {
	buf := &bytes.Buffer{}
	ctx := logger.WithContext(context.Background(), logger.NewWithWriter(buf))

	New(nil, DefaultOptions()).Parse(ctx, samplePages)

	assert.Contains(t, buf.String(), "statement parsed")
	assert.Contains(t, buf.String(), `"kept":4`)
}

func TestParseBlob_Scenarios(t *testing.T) {
	p := New(nil, DefaultOptions())

	debit := p.ParseBlob("05 JAN 2024 UPI/DR/123456/JOHN DOE TRANSFER TO 9876543210 - 450.00")
	assert.Equal(t, models.DirectionDebit, debit.Direction)
	assert.True(t, decimal.RequireFromString("450.00").Equal(debit.Amount))
	assert.Equal(t, "JOHN DOE", debit.Description)
	require.NotNil(t, debit.Reference)
	assert.Equal(t, "123456", *debit.Reference)

	credit := p.ParseBlob("10 FEB 2024 UPI/CR/998877/ACME CORP TRANSFER FROM 1234567890 - - 2000.00")
	assert.Equal(t, models.DirectionCredit, credit.Direction)
	assert.True(t, decimal.RequireFromString("2000.00").Equal(credit.Amount))
	assert.Equal(t, models.CategoryIncome, credit.Category)

	partial := p.ParseBlob("continuation without date")
	assert.Nil(t, partial.Date)
	assert.Equal(t, models.DirectionUnknown, partial.Direction)
	assert.True(t, partial.Amount.IsZero())
	assert.Equal(t, models.UnknownDesc, partial.Description)
	assert.Nil(t, partial.Reference)
}

func TestLines(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c", ""}, Lines([]string{"a\nb", "c\n"}))
	assert.Empty(t, Lines(nil))
}
