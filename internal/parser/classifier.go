package parser

import (
	"regexp"
	"strings"
)

var (
	// DD MON YYYY at the very start of a line, e.g. "05 JAN 2024".
	txnStartPattern = regexp.MustCompile(`^\d{2}\s+[A-Z]{3}\s+\d{4}`)
	// Column header row repeated at the top of every statement page.
	headerPattern = regexp.MustCompile(`(?i)Date\s+Details\s+Ref\s+No`)
)

// footerPhrases mark the disclaimer block after the last transaction. They
// are compared against the lower-cased line.
var footerPhrases = []string{
	"please do not share your atm",
	"bank never ask for such information",
	"computer generated statement",
	"does not require a signature",
	"balance as on",
}

// IsTransactionStart reports whether line opens a new transaction.
func IsTransactionStart(line string) bool {
	return txnStartPattern.MatchString(line)
}

// IsHeader reports whether line is (or contains) the column header row.
func IsHeader(line string) bool {
	return headerPattern.MatchString(line)
}

// IsFooter reports whether line belongs to the closing disclaimer block.
func IsFooter(line string) bool {
	lower := strings.ToLower(line)
	for _, phrase := range footerPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// SkipPreamble drops every line up to and including the first header row.
// Lines are returned unchanged when no header is present.
func SkipPreamble(lines []string) []string {
	for i, line := range lines {
		if IsHeader(line) {
			return lines[i+1:]
		}
	}
	return lines
}

// CleanLines trims lines and removes blanks and repeated header rows. The
// stream ends at the first footer line; that line and everything after it
// are dropped.
func CleanLines(lines []string) []string {
	clean := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if IsHeader(line) {
			continue
		}
		if IsFooter(line) {
			break
		}
		clean = append(clean, line)
	}
	return clean
}
