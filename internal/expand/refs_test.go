package expand

import (
	"reflect"
	"testing"
)

func TestParseRefs(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want []int
	}{
		{"single bracketed", "[184]", []int{184}},
		{"spaces inside brackets", "[ 184 ]", []int{184}},
		{"list with range", "[1, 4-6]", []int{1, 4, 5, 6}},
		{"range mid-list", "[28,224-226]", []int{28, 224, 225, 226}},
		{"reversed range", "[226-224]", []int{224, 225, 226}},
		{"en dash range", "[5–7]", []int{5, 6, 7}},
		{"minus sign range", "[5−7]", []int{5, 6, 7}},
		{"bare number", "208", []int{208}},
		{"bare list", "207,233", []int{207, 233}},
		{"semicolon separators", "12; 15", []int{12, 15}},
		{"multiple groups", "[1][4-5]", []int{1, 4, 5}},
		{"duplicates collapse", "[2,2-3]", []int{2, 3}},
		{"digit-run fallback", "see refs 3 and 12", []int{3, 12}},
		{"fallback inside brackets", "[1a, 2b]", []int{1, 2}},
		{"empty", "", nil},
		{"empty brackets", "[]", nil},
		{"no digits", "[i, ii]", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseRefs(tt.cell); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseRefs(%q) = %v, want %v", tt.cell, got, tt.want)
			}
		})
	}
}
