// Package expand joins a data table to resolved DOIs. Rows that already
// carry a DOI pass through untouched. Rows without one are duplicated once
// per accepted DOI among their cited reference numbers, each copy noting
// which reference it came from. Rows whose references resolved to nothing
// accepted are dropped.
package expand

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matsen/refsolve/internal/csvtable"
)

// Stats tallies what happened to the input rows.
type Stats struct {
	Kept     int `json:"kept"`
	Expanded int `json:"expanded"`
	Dropped  int `json:"dropped"`
}

// Expand applies the reference-to-DOI mapping to a table. refsCol names the
// column holding citation numbers. doiCol names the DOI column; when empty,
// an existing "doi" or "doi_list" column is used, otherwise a "doi" column
// is appended.
func Expand(t *csvtable.Table, mapping map[int]string, refsCol, doiCol string) (*csvtable.Table, Stats, error) {
	refsIdx := t.Index(refsCol)
	if refsIdx == -1 {
		return nil, Stats{}, fmt.Errorf("refs column %q not found; available columns: %v", refsCol, t.Columns)
	}

	columns := append([]string(nil), t.Columns...)
	doiIdx := -1
	switch {
	case doiCol != "":
		doiIdx = t.Index(doiCol)
	case t.Index("doi") != -1:
		doiIdx = t.Index("doi")
	case t.Index("doi_list") != -1:
		doiIdx = t.Index("doi_list")
	default:
		doiCol = "doi"
	}
	if doiIdx == -1 {
		columns = append(columns, doiCol)
		doiIdx = len(columns) - 1
	}

	out := &csvtable.Table{Columns: columns}
	var stats Stats
	for _, row := range t.Rows {
		padded := make([]string, len(columns))
		copy(padded, row)

		if strings.TrimSpace(padded[doiIdx]) != "" {
			out.Rows = append(out.Rows, padded)
			stats.Kept++
			continue
		}

		wrote := false
		for _, n := range ParseRefs(padded[refsIdx]) {
			doi, ok := mapping[n]
			if !ok {
				continue
			}
			dup := append([]string(nil), padded...)
			dup[doiIdx] = doi
			dup[refsIdx] = "[" + strconv.Itoa(n) + "]"
			out.Rows = append(out.Rows, dup)
			wrote = true
			stats.Expanded++
		}
		if !wrote {
			stats.Dropped++
		}
	}
	return out, stats, nil
}
