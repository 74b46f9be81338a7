// Package extractor turns an uploaded, possibly password-protected PDF into
// per-page text.
package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

// ErrInvalidPDF is returned when the document cannot be opened or decrypted.
var ErrInvalidPDF = errors.New("invalid PDF or password")

// OpenFunc opens an in-memory PDF with a password and returns its page text.
// Open is the production implementation; tests substitute their own.
type OpenFunc func(data []byte, password string) ([]string, error)

// Open decrypts data with password and extracts the text of every page, one
// string per page with physical lines separated by "\n". Several extraction
// methods are tried in turn and the first readable result wins. A document
// that opens but holds no readable text yields the best effort of the last
// method, possibly empty.
func Open(data []byte, password string) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("%w: PDF library crashed: %v", ErrInvalidPDF, r)
		}
	}()

	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidPDF)
	}

	r, err := pdf.NewReaderEncrypted(bytes.NewReader(data), int64(len(data)), passwordOnce(password))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("%w: PDF has no pages", ErrInvalidPDF)
	}

	for _, m := range pageMethods {
		pages = extractPages(r, numPages, m)
		if isReadableText(pages) {
			return pages, nil
		}
	}

	if plain := documentText(r); isReadableText([]string{plain}) {
		return []string{plain}, nil
	}

	return pages, nil
}

// passwordOnce hands the reader the password on its first prompt and gives
// up afterwards, so a wrong password fails instead of looping.
func passwordOnce(password string) func() string {
	asked := false
	return func() string {
		if asked {
			return ""
		}
		asked = true
		return password
	}
}

// textQuality returns the ratio of basic ASCII readable characters to total
// characters, 0.0-1.0. unicode.IsLetter is too broad: it accepts the
// accented runes that identity-encoded fonts decode into.
func textQuality(pages []string) float64 {
	total := 0
	readable := 0
	for _, page := range pages {
		for _, r := range page {
			total++
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
				(r >= '0' && r <= '9') || unicode.IsSpace(r) ||
				strings.ContainsRune(".,-/:;()'\"₹%&@#!?+=*", r) {
				readable++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}

// commonWords appear in virtually every UPI statement.
var commonWords = []string{
	"upi", "transfer", "account", "balance", "date", "details", "ref no",
	"debit", "credit", "statement", "transaction", "amount",
}

func containsCommonWords(pages []string) bool {
	combined := strings.ToLower(strings.Join(pages, " "))
	for _, word := range commonWords {
		if strings.Contains(combined, word) {
			return true
		}
	}
	return false
}

// isReadableText requires more than 50 characters, over 60% of them
// readable, and at least one word a statement is expected to contain.
func isReadableText(pages []string) bool {
	if totalTextLen(pages) <= 50 {
		return false
	}
	if textQuality(pages) <= 0.6 {
		return false
	}
	return containsCommonWords(pages)
}

// pageMethod renders one page as text. ok is false when the method has
// nothing for the page, which is then left out of the result.
type pageMethod func(page pdf.Page) (text string, ok bool)

// pageMethods in order of preference. GetTextByRow keeps the statement's
// row layout best; the plain-text fallbacks lose it.
var pageMethods = []pageMethod{rowText, positionedText, pagePlainText}

func extractPages(r *pdf.Reader, numPages int, method pageMethod) []string {
	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		if text, ok := method(page); ok {
			pages = append(pages, text)
		}
	}
	return pages
}

func rowText(page pdf.Page) (string, bool) {
	rows, err := page.GetTextByRow()
	if err != nil {
		return "", false
	}
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		words := make([]string, len(row.Content))
		for i, w := range row.Content {
			words[i] = w.S
		}
		if line := strings.TrimSpace(strings.Join(words, " ")); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n"), true
}

type textItem struct {
	x float64
	s string
}

// positionedText groups the page's text runs into rows by rounded Y, top
// to bottom, each ordered by X.
func positionedText(page pdf.Page) (string, bool) {
	runs := page.Content().Text
	if len(runs) == 0 {
		return "", false
	}

	rows := make(map[int][]textItem)
	for _, t := range runs {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		y := int(math.Round(t.Y))
		rows[y] = append(rows[y], textItem{x: t.X, s: t.S})
	}

	ys := make([]int, 0, len(rows))
	for y := range rows {
		ys = append(ys, y)
	}
	// PDF Y grows upwards.
	sort.Sort(sort.Reverse(sort.IntSlice(ys)))

	lines := make([]string, 0, len(ys))
	for _, y := range ys {
		if line := joinRow(rows[y]); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n"), true
}

// joinRow orders items left to right and separates column gaps with spaces.
func joinRow(items []textItem) string {
	sort.Slice(items, func(a, b int) bool {
		return items[a].x < items[b].x
	})

	var sb strings.Builder
	for i, item := range items {
		if i > 0 && item.x-items[i-1].x > 15 {
			sb.WriteString("  ")
		}
		sb.WriteString(item.s)
	}
	return strings.TrimSpace(sb.String())
}

func pagePlainText(page pdf.Page) (string, bool) {
	fonts := make(map[string]*pdf.Font)
	for _, name := range page.Fonts() {
		f := page.Font(name)
		fonts[name] = &f
	}
	text, err := page.GetPlainText(fonts)
	if err != nil {
		return "", false
	}
	text = strings.TrimSpace(text)
	return text, text != ""
}

// documentText is the last resort: the reader's whole-document plain text.
func documentText(r *pdf.Reader) string {
	rd, err := r.GetPlainText()
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(rd)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func totalTextLen(pages []string) int {
	n := 0
	for _, p := range pages {
		n += len(strings.TrimSpace(p))
	}
	return n
}
