package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/insightdelivered/upi-statement-parser/internal/models"
)

// matcher pulls one candidate value out of a blob, or "" when it does not apply.
type matcher func(text string) string

// firstMatch runs matchers in order and returns the first non-empty result.
func firstMatch(text string, matchers []matcher) string {
	for _, m := range matchers {
		if v := m(text); v != "" {
			return v
		}
	}
	return ""
}

// submatch returns a matcher yielding capture group 1 of re.
func submatch(re *regexp.Regexp) matcher {
	return func(text string) string {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1]
		}
		return ""
	}
}

// Date

var datePattern = regexp.MustCompile(`(\d{2}\s+[A-Z]{3}\s+\d{4})`)

// ExtractDate parses the first "DD MON YYYY" in text. Month abbreviations
// are English and case-insensitive. A signature that does not form a real
// date (e.g. "31 FEB 2024" or "05 ABC 2024") yields nil.
func ExtractDate(text string) *time.Time {
	m := datePattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	parts := strings.Fields(m[1])
	month := strings.ToUpper(parts[1][:1]) + strings.ToLower(parts[1][1:])
	t, err := time.Parse("02 Jan 2006", parts[0]+" "+month+" "+parts[2])
	if err != nil {
		return nil
	}
	return &t
}

// Direction

// ExtractDirection classifies text as DEBIT or CREDIT from its transfer
// markers. Debit markers are checked first.
func ExtractDirection(text string) models.Direction {
	upper := strings.ToUpper(text)
	switch {
	case strings.Contains(upper, "TRANSFER TO"), strings.Contains(upper, "/DR/"):
		return models.DirectionDebit
	case strings.Contains(upper, "TRANSFER FROM"), strings.Contains(upper, "/CR/"):
		return models.DirectionCredit
	default:
		return models.DirectionUnknown
	}
}

// Reference

var referenceMatchers = []matcher{
	submatch(regexp.MustCompile(`(?:/CR/|/DR/)(\d{6,})`)),
	submatch(regexp.MustCompile(`TRANSFER (?:FROM|TO)\s+(\d{10,})`)),
	submatch(regexp.MustCompile(`\b(\d{12,})\b`)),
	submatch(regexp.MustCompile(`Ref No[.:]*\s*(\d{6,})`)),
}

// ExtractReference returns the bank reference (UTR) number in text, or nil.
func ExtractReference(text string) *string {
	ref := firstMatch(text, referenceMatchers)
	if ref == "" {
		return nil
	}
	return &ref
}

// Description

var (
	descriptionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)/(?:CR|DR)/\d+/([^/]+)`),
		regexp.MustCompile(`(?i)UPI/(?:CR|DR)/\d+/([^/]+)`),
		regexp.MustCompile(`(?i)TRANSFER (?:FROM|TO)\s+\d+\s+(UPI/(?:CR|DR)/\d+/[^/]+)`),
	}
	// A capture that runs to the end of the blob picks up the transfer
	// columns that follow the counterparty name.
	transferTailPattern = regexp.MustCompile(`(?i)\s*\bTRANSFER\s+(?:FROM|TO)\b.*$`)
)

var descriptionMatchers = func() []matcher {
	ms := make([]matcher, 0, len(descriptionPatterns))
	for _, re := range descriptionPatterns {
		ms = append(ms, descriptionMatcher(re))
	}
	return ms
}()

func descriptionMatcher(re *regexp.Regexp) matcher {
	return func(text string) string {
		m := re.FindStringSubmatch(text)
		if m == nil {
			return ""
		}
		desc := m[1]
		// Nested UPI captures keep only their last segment.
		if strings.Contains(strings.ToUpper(desc), "UPI/") {
			if i := strings.LastIndex(desc, "/"); i >= 0 {
				desc = desc[i+1:]
			}
		}
		desc = transferTailPattern.ReplaceAllString(desc, "")
		return strings.TrimSpace(desc)
	}
}

// ExtractDescription returns the counterparty name in text, or "Unknown".
func ExtractDescription(text string) string {
	if desc := firstMatch(text, descriptionMatchers); desc != "" {
		return desc
	}
	return models.UnknownDesc
}
