package csvtable

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSniffsDelimiter(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantCol []string
		wantRow []string
	}{
		{
			name:    "comma",
			content: "Material,T [C]\nTMA,150\n",
			wantCol: []string{"Material", "T [C]"},
			wantRow: []string{"TMA", "150"},
		},
		{
			name:    "semicolon",
			content: "Material;T [C]\nTMA;150\n",
			wantCol: []string{"Material", "T [C]"},
			wantRow: []string{"TMA", "150"},
		},
		{
			name:    "tab",
			content: "Material\tT [C]\nTMA\t150\n",
			wantCol: []string{"Material", "T [C]"},
			wantRow: []string{"TMA", "150"},
		},
		{
			name:    "semicolon with commas inside values",
			content: "Material;Refs.\nTMA;\"[1, 4-6]\"\n",
			wantCol: []string{"Material", "Refs."},
			wantRow: []string{"TMA", "[1, 4-6]"},
		},
		{
			name:    "utf-8 BOM stripped",
			content: "\ufeffMaterial,T [C]\nTMA,150\n",
			wantCol: []string{"Material", "T [C]"},
			wantRow: []string{"TMA", "150"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Load(writeFile(t, "in.csv", tt.content))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if !reflect.DeepEqual(table.Columns, tt.wantCol) {
				t.Errorf("Columns = %v, want %v", table.Columns, tt.wantCol)
			}
			if len(table.Rows) != 1 || !reflect.DeepEqual(table.Rows[0], tt.wantRow) {
				t.Errorf("Rows = %v, want [%v]", table.Rows, tt.wantRow)
			}
		})
	}
}

func TestLoadPadsShortRows(t *testing.T) {
	table, err := Load(writeFile(t, "in.csv", "a,b,c\n1,2\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{"1", "2", ""}
	if !reflect.DeepEqual(table.Rows[0], want) {
		t.Errorf("Rows[0] = %v, want %v", table.Rows[0], want)
	}
}

func TestLoadRejectsWideRows(t *testing.T) {
	if _, err := Load(writeFile(t, "in.csv", "a,b\n1,2,3\n")); err == nil {
		t.Error("expected error for a row wider than the header")
	}
}

func TestLoadEmptyFile(t *testing.T) {
	if _, err := Load(writeFile(t, "in.csv", "")); err == nil {
		t.Error("expected error for an empty file")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestIndex(t *testing.T) {
	table := &Table{Columns: []string{"Material", "Refs.", "doi"}}
	if got := table.Index("Refs."); got != 1 {
		t.Errorf("Index(%q) = %d, want 1", "Refs.", got)
	}
	if got := table.Index("missing"); got != -1 {
		t.Errorf("Index(%q) = %d, want -1", "missing", got)
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	table := &Table{
		Columns: []string{"Material", "Refs."},
		Rows: [][]string{
			{"TMA + O2 plasma", "[1]"},
			{"TiCl4", "[2, 4-6]"},
		},
	}
	if err := table.WriteCSV(path); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(loaded.Columns, table.Columns) {
		t.Errorf("Columns = %v, want %v", loaded.Columns, table.Columns)
	}
	if !reflect.DeepEqual(loaded.Rows, table.Rows) {
		t.Errorf("Rows = %v, want %v", loaded.Rows, table.Rows)
	}
}
