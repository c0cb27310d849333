// Package pdftext extracts plain text from PDFs so their reference lists can
// feed the resolver.
package pdftext

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

var headingRe = regexp.MustCompile(`(?i)\b(references|bibliography)\b`)

// Extract pulls plain text from the first maxPages pages of a PDF.
// maxPages <= 0 reads the whole document. Pages that fail text extraction
// are skipped; only a PDF that cannot be opened at all is an error.
func Extract(path string, maxPages int) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if maxPages <= 0 || maxPages > r.NumPage() {
		maxPages = r.NumPage()
	}

	var b strings.Builder
	for i := 1; i <= maxPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// ReferencesSection returns the tail of text starting at the last
// "References" or "Bibliography" heading. The body of a paper mentions
// references freely, so only the final occurrence marks the section. The
// second return reports whether a heading was found; when none is, the
// input comes back unchanged.
func ReferencesSection(text string) (string, bool) {
	locs := headingRe.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return text, false
	}
	return text[locs[len(locs)-1][0]:], true
}
