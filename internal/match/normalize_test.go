package match

import "testing"

func TestNorm(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase and trim", "  Hello World ", "hello world"},
		{"collapse runs", "a \t\t b\n\nc", "a b c"},
		{"non-breaking space", "a\u00a0b", "a b"},
		{"empty", "", ""},
		{"already normal", "chem commun", "chem commun"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Norm(tt.in); got != tt.want {
				t.Errorf("Norm(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormPunct(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"abbreviation dots", "Chem. Commun.", "chem commun"},
		{"dotted multi-word", "J. Phys. Chem. C", "j phys chem c"},
		{"ampersand kept", "Laser & Photonics Rev.", "laser & photonics rev"},
		{"hyphen becomes space", "Recl. Trav. Chim. Pays-Bas", "recl trav chim pays bas"},
		{"underscore kept", "a_b", "a_b"},
		{"digits kept", "2019, 55", "2019 55"},
		{"punctuation only", "...", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormPunct(tt.in); got != tt.want {
				t.Errorf("NormPunct(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestOnlyDigits(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"prefixed article number", "e12345", "12345"},
		{"page range", "1234-1236", "12341236"},
		{"no digits", "abc", ""},
		{"empty", "", ""},
		{"mixed", "vol. 55, p. 103", "55103"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OnlyDigits(tt.in); got != tt.want {
				t.Errorf("OnlyDigits(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
