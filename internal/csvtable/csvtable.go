// Package csvtable reads header-keyed tabular files whose delimiter is not
// known up front. Tables exported from spreadsheets arrive comma-, semicolon-,
// or tab-separated, often with a UTF-8 BOM.
package csvtable

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Table is a parsed tabular file. Rows are padded to the header width.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Load reads a tabular file, sniffing the delimiter from the header line.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	data = bytes.TrimPrefix(data, []byte("\ufeff"))

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = sniffDelimiter(data)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s has no header row", path)
	}

	t := &Table{Columns: records[0]}
	for i, row := range records[1:] {
		if len(row) > len(t.Columns) {
			return nil, fmt.Errorf("%s: row %d has %d fields, header has %d",
				path, i+2, len(row), len(t.Columns))
		}
		padded := make([]string, len(t.Columns))
		copy(padded, row)
		t.Rows = append(t.Rows, padded)
	}
	return t, nil
}

// Index returns the position of a column, or -1 when absent.
func (t *Table) Index(name string) int {
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// WriteCSV writes the table as comma-separated values.
func (t *Table) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// sniffDelimiter picks whichever candidate delimiter occurs most often on
// the header line. Comma wins ties.
func sniffDelimiter(data []byte) rune {
	line := string(data)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}

	best, bestCount := ',', strings.Count(line, ",")
	for _, cand := range []rune{';', '\t'} {
		if n := strings.Count(line, string(cand)); n > bestCount {
			best, bestCount = cand, n
		}
	}
	return best
}
