package expand

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matsen/refsolve/internal/csvtable"
)

func TestLoadMapping(t *testing.T) {
	content := `idx,raw_ref,best_doi,decision
1,a,10.1039/C9CC01234A,accepted
2,b,10.1063/5.0012345,low_confidence
3,c,,accepted
4,d,10.1000/ok, Accepted
bad,e,10.1000/skip,accepted
6,f,10.1000/final,no_match
`
	path := filepath.Join(t.TempDir(), "resolved.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	mapping, err := LoadMapping(path)
	if err != nil {
		t.Fatalf("LoadMapping: %v", err)
	}
	want := map[int]string{
		1: "10.1039/C9CC01234A",
		4: "10.1000/ok",
	}
	if !reflect.DeepEqual(mapping, want) {
		t.Errorf("LoadMapping = %v, want %v", mapping, want)
	}
}

func TestLoadMappingMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resolved.csv")
	if err := os.WriteFile(path, []byte("idx,decision\n1,accepted\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadMapping(path)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "best_doi") {
		t.Errorf("error = %v, should name the missing column", err)
	}
}

func testTable() *csvtable.Table {
	return &csvtable.Table{
		Columns: []string{"Material", "T [C]", "Refs."},
		Rows: [][]string{
			{"TMA + O3", "150", "[1]"},
			{"TiCl4 + H2O", "200", "[2, 4-5]"},
			{"Sc(thd)3", "300", "[9]"},
		},
	}
}

func TestExpandAppendsDOIColumn(t *testing.T) {
	mapping := map[int]string{1: "10.1000/one", 4: "10.1000/four", 5: "10.1000/five"}
	out, stats, err := Expand(testTable(), mapping, "Refs.", "")
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}

	wantCols := []string{"Material", "T [C]", "Refs.", "doi"}
	if !reflect.DeepEqual(out.Columns, wantCols) {
		t.Errorf("Columns = %v, want %v", out.Columns, wantCols)
	}

	// The first row has one accepted ref. The second cites 2, 4, and 5,
	// of which 2 never resolved. The third resolves nothing and is dropped.
	wantRows := [][]string{
		{"TMA + O3", "150", "[1]", "10.1000/one"},
		{"TiCl4 + H2O", "200", "[4]", "10.1000/four"},
		{"TiCl4 + H2O", "200", "[5]", "10.1000/five"},
	}
	if !reflect.DeepEqual(out.Rows, wantRows) {
		t.Errorf("Rows = %v, want %v", out.Rows, wantRows)
	}

	want := Stats{Kept: 0, Expanded: 3, Dropped: 1}
	if stats != want {
		t.Errorf("Stats = %+v, want %+v", stats, want)
	}
}

func TestExpandKeepsExistingDOI(t *testing.T) {
	table := &csvtable.Table{
		Columns: []string{"Material", "Refs.", "doi"},
		Rows: [][]string{
			{"TMA", "[1]", "10.1000/pre"},
			{"TiCl4", "[1]", ""},
		},
	}

	out, stats, err := Expand(table, map[int]string{1: "10.1000/one"}, "Refs.", "")
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}

	// A row arriving with a DOI passes through with its refs cell intact.
	wantRows := [][]string{
		{"TMA", "[1]", "10.1000/pre"},
		{"TiCl4", "[1]", "10.1000/one"},
	}
	if !reflect.DeepEqual(out.Rows, wantRows) {
		t.Errorf("Rows = %v, want %v", out.Rows, wantRows)
	}

	want := Stats{Kept: 1, Expanded: 1, Dropped: 0}
	if stats != want {
		t.Errorf("Stats = %+v, want %+v", stats, want)
	}
}

func TestExpandUsesDoiListColumn(t *testing.T) {
	table := &csvtable.Table{
		Columns: []string{"Material", "Refs.", "doi_list"},
		Rows:    [][]string{{"TMA", "[1]", ""}},
	}

	out, _, err := Expand(table, map[int]string{1: "10.1000/one"}, "Refs.", "")
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if !reflect.DeepEqual(out.Columns, table.Columns) {
		t.Errorf("Columns = %v, want unchanged %v", out.Columns, table.Columns)
	}
	if out.Rows[0][2] != "10.1000/one" {
		t.Errorf("doi_list = %q, want %q", out.Rows[0][2], "10.1000/one")
	}
}

func TestExpandExplicitNewColumn(t *testing.T) {
	table := &csvtable.Table{
		Columns: []string{"Material", "Refs."},
		Rows:    [][]string{{"TMA", "[1]"}},
	}

	out, _, err := Expand(table, map[int]string{1: "10.1000/one"}, "Refs.", "ref_doi")
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	wantCols := []string{"Material", "Refs.", "ref_doi"}
	if !reflect.DeepEqual(out.Columns, wantCols) {
		t.Errorf("Columns = %v, want %v", out.Columns, wantCols)
	}
	if out.Rows[0][2] != "10.1000/one" {
		t.Errorf("ref_doi = %q, want %q", out.Rows[0][2], "10.1000/one")
	}
}

func TestExpandMissingRefsColumn(t *testing.T) {
	table := &csvtable.Table{Columns: []string{"Material"}}
	_, _, err := Expand(table, nil, "Refs.", "")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Refs.") {
		t.Errorf("error = %v, should name the refs column", err)
	}
}
