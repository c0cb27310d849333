package expand

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matsen/refsolve/internal/csvtable"
	"github.com/matsen/refsolve/internal/match"
)

// requiredMappingColumns are the columns a mapping file must carry.
var requiredMappingColumns = []string{"idx", "best_doi", "decision"}

// LoadMapping reads a resolver output CSV into an index-to-DOI map. Only
// rows with decision "accepted" and a non-empty DOI join the map;
// low-confidence and no-match rows are ignored, as are rows whose idx does
// not parse.
func LoadMapping(path string) (map[int]string, error) {
	t, err := csvtable.Load(path)
	if err != nil {
		return nil, err
	}

	for i, col := range t.Columns {
		t.Columns[i] = strings.TrimSpace(col)
	}

	cols := make(map[string]int, len(requiredMappingColumns))
	for _, name := range requiredMappingColumns {
		i := t.Index(name)
		if i == -1 {
			return nil, fmt.Errorf("%s is missing required column %q", path, name)
		}
		cols[name] = i
	}

	mapping := make(map[int]string)
	for _, row := range t.Rows {
		idx, err := strconv.Atoi(strings.TrimSpace(row[cols["idx"]]))
		if err != nil {
			continue
		}
		decision := strings.ToLower(strings.TrimSpace(row[cols["decision"]]))
		doi := strings.TrimSpace(row[cols["best_doi"]])
		if decision == string(match.DecisionAccepted) && doi != "" {
			mapping[idx] = doi
		}
	}
	return mapping, nil
}
