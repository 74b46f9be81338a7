// Package parser reconstructs UPI statement transactions from extracted PDF
// text: it strips page noise, groups physical lines into per-transaction
// blobs and derives each transaction's fields from its blob.
package parser

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/upi-statement-parser/internal/categorizer"
	"github.com/insightdelivered/upi-statement-parser/internal/logger"
	"github.com/insightdelivered/upi-statement-parser/internal/models"
)

// Options tune the statement layout heuristics.
type Options struct {
	// SkipPreamble drops everything up to and including the first column
	// header row before lines are cleaned.
	SkipPreamble bool
	// AmountFallback picks an amount when no structural pattern matches.
	AmountFallback AmountFallback
}

// DefaultOptions returns the options the service runs with unless configured otherwise.
func DefaultOptions() Options {
	return Options{
		SkipPreamble:   true,
		AmountFallback: FallbackSecond,
	}
}

// Parser turns page text into categorized transactions. It holds no
// per-statement state and is safe for concurrent use.
type Parser struct {
	categorizer *categorizer.Categorizer
	opts        Options
}

// New returns a Parser using c for categories. A nil c uses the default rules.
func New(c *categorizer.Categorizer, opts Options) *Parser {
	if c == nil {
		c = categorizer.New(nil)
	}
	if opts.AmountFallback == nil {
		opts.AmountFallback = FallbackSecond
	}
	return &Parser{categorizer: c, opts: opts}
}

// Lines flattens pages into their physical lines, in document order.
func Lines(pages []string) []string {
	var lines []string
	for _, page := range pages {
		lines = append(lines, strings.Split(page, "\n")...)
	}
	return lines
}

// Parse runs the full pipeline over pages. Transactions whose amount could
// not be determined are dropped and counted in the result.
func (p *Parser) Parse(ctx context.Context, pages []string) *models.StatementResult {
	log := logger.FromContext(ctx)

	lines := Lines(pages)
	if p.opts.SkipPreamble {
		lines = SkipPreamble(lines)
	}
	lines = CleanLines(lines)
	blobs := GroupLines(lines)

	res := &models.StatementResult{
		Transactions: make([]models.Transaction, 0, len(blobs)),
		TotalDebit:   decimal.Zero,
		TotalCredit:  decimal.Zero,
		Pages:        len(pages),
		Lines:        len(lines),
		Blobs:        len(blobs),
	}

	for _, blob := range blobs {
		txn := p.ParseBlob(blob)
		if !txn.Amount.IsPositive() {
			res.Dropped++
			log.Debug().Str("blob", string(blob)).Msg("dropping transaction without amount")
			continue
		}
		switch txn.Direction {
		case models.DirectionDebit:
			res.TotalDebit = res.TotalDebit.Add(txn.Amount)
		case models.DirectionCredit:
			res.TotalCredit = res.TotalCredit.Add(txn.Amount)
		}
		res.Transactions = append(res.Transactions, txn)
	}

	log.Info().
		Int("pages", res.Pages).
		Int("lines", res.Lines).
		Int("blobs", res.Blobs).
		Int("kept", res.Count()).
		Int("dropped", res.Dropped).
		Msg("statement parsed")

	return res
}

// ParseBlob derives every field of one transaction from its blob. It never
// fails; fields that cannot be found keep their absent value.
func (p *Parser) ParseBlob(blob Blob) models.Transaction {
	text := string(newBlob([]string{string(blob)}))

	direction := ExtractDirection(text)
	description := ExtractDescription(text)

	return models.Transaction{
		Date:        ExtractDate(text),
		Amount:      ExtractAmount(text, direction, p.opts.AmountFallback),
		Direction:   direction,
		Description: description,
		Category:    p.categorizer.Categorize(description, direction),
		Reference:   ExtractReference(text),
	}
}
