package resolve

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
)

// Header is the output CSV column set, in order.
var Header = []string{
	"idx", "raw_ref", "best_doi", "best_title", "best_container_title",
	"best_year", "best_volume", "best_page", "best_article_number",
	"score", "decision",
}

// LastIndex returns the highest citation index recorded in an existing
// output CSV, for resuming. A missing file, a file without an idx column,
// and rows whose idx cannot be parsed all count as nothing recorded.
func LastIndex(path string) int {
	f, err := os.Open(path)
	if err != nil {
		return 0
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return 0
	}
	idxCol := -1
	for i, name := range header {
		if name == "idx" {
			idxCol = i
			break
		}
	}
	if idxCol == -1 {
		return 0
	}

	maxIdx := 0
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Damaged rows don't invalidate the rest of the checkpoint.
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				continue
			}
			break
		}
		if idxCol >= len(row) {
			continue
		}
		idx, err := strconv.Atoi(row[idxCol])
		if err != nil {
			continue
		}
		if idx > maxIdx {
			maxIdx = idx
		}
	}
	return maxIdx
}
