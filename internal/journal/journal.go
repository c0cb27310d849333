// Package journal canonicalizes abbreviated journal names. Citations carry
// ISO-4 style abbreviations ("Chem. Commun."); the catalog indexes full
// titles ("Chemical Communications"). The table maps one to the other with
// case- and punctuation-insensitive lookup and can be extended from a YAML
// overlay file.
package journal

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matsen/refsolve/internal/match"
)

// builtin maps journal abbreviations to their catalog titles. Keys are
// normalized at construction, so punctuation variants share one entry.
var builtin = map[string]string{
	"Sci. Rep.":                  "Scientific Reports",
	"Chem. Commun.":              "Chemical Communications",
	"Dalton Trans.":              "Dalton Transactions",
	"Phys. Chem. Chem. Phys.":    "Physical Chemistry Chemical Physics",
	"Appl. Phys. Lett.":          "Applied Physics Letters",
	"Appl. Surf. Sci.":           "Applied Surface Science",
	"ACS Nano":                   "ACS Nano",
	"ACS Mater. Au":              "ACS Materials Au",
	"ACS Appl. Electron. Mater.": "ACS Applied Electronic Materials",
	"Chem. Rev.":                 "Chemical Reviews",
	"J. Photochem. Photobiol. C Photochem. Rev.": "Journal of Photochemistry and Photobiology C: Photochemistry Reviews",
	"J. Mater. Chem. C":                          "Journal of Materials Chemistry C",
	"J. Nanophotonics":                           "Journal of Nanophotonics",
	"J. Vac. Sci. Technol. A":                    "Journal of Vacuum Science & Technology A",
	"J. Vac. Sci. Technol. B Microelectron. Nanometer Struct. Process. Meas. Phenom.": "Journal of Vacuum Science & Technology B",
	"J. Chem. Phys.":                 "The Journal of Chemical Physics",
	"J. Appl. Phys.":                 "Journal of Applied Physics",
	"J. Phys. Chem. C":               "The Journal of Physical Chemistry C",
	"J. Phys. Chem. Lett.":           "The Journal of Physical Chemistry Letters",
	"Laser Photonics Rev.":           "Laser & Photonics Reviews",
	"RSC Adv.":                       "RSC Advances",
	"Nat. Methods":                   "Nature Methods",
	"J. Fluoresc.":                   "Journal of Fluorescence",
	"J. ClinMicrobiol":               "Journal of Clinical Microbiology",
	"Mater. Sci. Semicond. Process.": "Materials Science in Semiconductor Processing",
	"Mater. Sci. Eng. R Rep.":        "Materials Science and Engineering: R: Reports",
	"Recl. Trav. Chim. Pays-Bas":     "Recueil des Travaux Chimiques des Pays-Bas",
}

// Table resolves journal abbreviations to full titles.
type Table struct {
	entries map[string]string
}

// NewTable returns a table seeded with the builtin abbreviations.
func NewTable() *Table {
	t := &Table{entries: make(map[string]string, len(builtin))}
	for abbrev, full := range builtin {
		t.Add(abbrev, full)
	}
	return t
}

// Add registers one abbreviation. Later additions win, so overlay entries
// override builtin ones.
func (t *Table) Add(abbrev, full string) {
	t.entries[match.NormPunct(abbrev)] = full
}

// Expand returns the full title for an abbreviation, or the input unchanged
// when the table has no entry for it.
func (t *Table) Expand(name string) string {
	if full, ok := t.entries[match.NormPunct(name)]; ok {
		return full
	}
	return name
}

// Len reports how many abbreviations the table holds.
func (t *Table) Len() int {
	return len(t.entries)
}

// LoadOverlay merges abbreviations from a YAML file into the table. The
// expected shape is a single "journals" mapping:
//
//	journals:
//	  "J. Magn. Magn. Mater.": Journal of Magnetism and Magnetic Materials
func (t *Table) LoadOverlay(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var overlay overlayFile
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	if len(overlay.Journals) == 0 {
		return fmt.Errorf("%s must define at least one journal mapping", path)
	}

	for abbrev, full := range overlay.Journals {
		if match.NormPunct(abbrev) == "" {
			return fmt.Errorf("%s: journal abbreviation %q is empty once normalized", path, abbrev)
		}
		if strings.TrimSpace(full) == "" {
			return fmt.Errorf("%s: journal %q has an empty full title", path, abbrev)
		}
		t.Add(abbrev, full)
	}
	return nil
}

type overlayFile struct {
	Journals map[string]string `yaml:"journals"`
}
