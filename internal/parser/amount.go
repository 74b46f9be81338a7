package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/upi-statement-parser/internal/models"
)

const amountExpr = `\d+(?:,\d+)*(?:\.\d+)?`

var (
	numberPattern = regexp.MustCompile(amountExpr)
	// "TRANSFER TO <account> - <amount>": the debit column follows a single dash.
	debitAmountPattern = regexp.MustCompile(`(?i)TRANSFER TO\s+\d+\s+-\s+(` + amountExpr + `)`)
	// "TRANSFER FROM <account> - - <amount>": an empty debit column, then credit.
	creditAmountPattern = regexp.MustCompile(`(?i)TRANSFER FROM\s+\d+\s+-\s+-\s+(` + amountExpr + `)`)
)

// AmountFallback picks the transaction amount from every number found in a
// blob, in order of appearance, when the structural patterns do not match.
// It returns zero when it cannot decide.
type AmountFallback func(nums []decimal.Decimal) decimal.Decimal

// FallbackSecond takes the only amount-like value from a two-number blob and
// skips the leading number otherwise. This is the calibrated default.
func FallbackSecond(nums []decimal.Decimal) decimal.Decimal {
	switch {
	case len(nums) == 2:
		return nums[0]
	case len(nums) >= 3:
		return nums[1]
	default:
		return decimal.Zero
	}
}

// FallbackPenultimate takes the number before the trailing balance column.
func FallbackPenultimate(nums []decimal.Decimal) decimal.Decimal {
	if len(nums) < 2 {
		return decimal.Zero
	}
	return nums[len(nums)-2]
}

// Fallback policy names accepted by FallbackByName.
const (
	FallbackNameSecond      = "second"
	FallbackNamePenultimate = "penultimate"
)

// FallbackByName resolves a configured policy name.
func FallbackByName(name string) (AmountFallback, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", FallbackNameSecond:
		return FallbackSecond, nil
	case FallbackNamePenultimate:
		return FallbackPenultimate, nil
	default:
		return nil, fmt.Errorf("unknown amount fallback %q (want %q or %q)", name, FallbackNameSecond, FallbackNamePenultimate)
	}
}

// parseAmount converts "1,234.56" to a decimal.
func parseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
}

// numbers returns every numeric token in text, in order.
func numbers(text string) []decimal.Decimal {
	tokens := numberPattern.FindAllString(text, -1)
	nums := make([]decimal.Decimal, 0, len(tokens))
	for _, tok := range tokens {
		if d, err := parseAmount(tok); err == nil {
			nums = append(nums, d)
		}
	}
	return nums
}

// ExtractAmount returns the amount moved by a transaction of the given
// direction, rounded to two places. UNKNOWN transactions, and blobs where
// neither the structural pattern nor fallback finds a value, yield zero.
func ExtractAmount(text string, direction models.Direction, fallback AmountFallback) decimal.Decimal {
	var structural *regexp.Regexp
	switch direction {
	case models.DirectionDebit:
		structural = debitAmountPattern
	case models.DirectionCredit:
		structural = creditAmountPattern
	default:
		return decimal.Zero
	}

	if m := structural.FindStringSubmatch(text); m != nil {
		if d, err := parseAmount(m[1]); err == nil {
			return d.Round(2)
		}
	}

	if fallback == nil {
		fallback = FallbackSecond
	}
	return fallback(numbers(text)).Round(2)
}
