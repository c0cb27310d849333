// Package orkg rewrites expanded process tables into the column layout the
// ORKG bulk importer expects, renaming headers to property IDs and tightening
// molecule notation.
package orkg

import (
	"regexp"
	"strings"

	"github.com/matsen/refsolve/internal/csvtable"
)

// property binds an ORKG property ID to the source headers it may arrive
// under. The unit headers appear in several encodings depending on what
// exported the table, so each lists the variants seen in practice.
type property struct {
	pid        string
	candidates []string
	molecule   bool
}

var properties = []property{
	{pid: "P9071", candidates: []string{"Material"}, molecule: true},
	{pid: "P180042", candidates: []string{"Precursor 1"}, molecule: true},
	{pid: "P180043", candidates: []string{"Precursor 2"}, molecule: true},
	{pid: "P180044", candidates: []string{"Precursor 3"}, molecule: true},
	{pid: "P180045", candidates: []string{"Precursor 4"}, molecule: true},
	{pid: "P180041", candidates: []string{"GPC [Å]", "GPC [Ã…]", "GPC [A]"}},
	{pid: "P180013", candidates: []string{"T [°C]", "T [Â°C]", "T [C]"}},
	{pid: "doi", candidates: []string{"doi"}},
}

var (
	wsRe     = regexp.MustCompile(`\s+`)
	plasmaRe = regexp.MustCompile(`(?i)\bplasma\b`)
)

// NormalizeMolecule removes the spaces inside a chemical formula, keeping a
// single space before a trailing "plasma" token. Anything after that token
// is dropped.
func NormalizeMolecule(value string) string {
	s := strings.TrimSpace(value)
	if s == "" {
		return ""
	}
	s = wsRe.ReplaceAllString(s, " ")
	if loc := plasmaRe.FindStringIndex(s); loc != nil {
		base := strings.TrimSpace(s[:loc[0]])
		return wsRe.ReplaceAllString(base, "") + " plasma"
	}
	return wsRe.ReplaceAllString(s, "")
}

// Transform maps a process table onto the fixed ORKG column set. The first
// candidate header present in the input supplies each property; properties
// with no source column come out empty. Material and precursor values are
// normalized and prefixed "resource:" unless blank.
func Transform(t *csvtable.Table) *csvtable.Table {
	srcIdx := make([]int, len(properties))
	for i, p := range properties {
		srcIdx[i] = -1
		for _, name := range p.candidates {
			if j := t.Index(name); j >= 0 {
				srcIdx[i] = j
				break
			}
		}
	}

	out := &csvtable.Table{
		Columns: make([]string, len(properties)),
		Rows:    make([][]string, len(t.Rows)),
	}
	for i, p := range properties {
		out.Columns[i] = p.pid
	}
	for r, row := range t.Rows {
		outRow := make([]string, len(properties))
		for i, p := range properties {
			j := srcIdx[i]
			if j < 0 || j >= len(row) {
				continue
			}
			v := row[j]
			if p.molecule {
				if strings.TrimSpace(v) == "" {
					v = ""
				} else {
					v = "resource:" + NormalizeMolecule(v)
				}
			}
			outRow[i] = v
		}
		out.Rows[r] = outRow
	}
	return out
}
