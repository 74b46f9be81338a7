package parser

import "strings"

// Blob is the raw text of one logical transaction: all of its physical
// lines joined by single spaces with runs of whitespace collapsed.
type Blob string

func newBlob(lines []string) Blob {
	return Blob(strings.Join(strings.Fields(strings.Join(lines, " ")), " "))
}

// GroupLines folds cleaned lines into one blob per transaction. A line that
// starts with a date opens a new blob; every other line continues the
// current one. Lines seen before the first date line still form a blob of
// their own and are parsed on a best-effort basis.
func GroupLines(lines []string) []Blob {
	var (
		blobs   []Blob
		current []string
	)

	for _, line := range lines {
		if IsTransactionStart(line) {
			if len(current) > 0 {
				blobs = append(blobs, newBlob(current))
			}
			current = []string{line}
			continue
		}
		current = append(current, line)
	}

	if len(current) > 0 {
		blobs = append(blobs, newBlob(current))
	}

	return blobs
}
