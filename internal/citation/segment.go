package citation

import (
	"regexp"
	"strings"
)

// markerRe matches a line that opens a new reference entry.
var markerRe = regexp.MustCompile(`^\s*\[\d+\]`)

// Segment splits raw reference-list text into one string per bracketed
// marker. A new entry begins exactly when a line, after leading whitespace,
// starts with [<digits>]; every following line is appended with a single
// space until the next marker. Text before the first marker (page headers,
// section titles) is discarded. Entries come back in document order, not
// index order. Text with no markers yields nil.
func Segment(text string) []string {
	var refs []string
	var cur strings.Builder
	started := false
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if markerRe.MatchString(line) {
			if started && cur.Len() > 0 {
				refs = append(refs, strings.TrimSpace(cur.String()))
			}
			cur.Reset()
			cur.WriteString(line)
			started = true
			continue
		}
		if started {
			cur.WriteString(" ")
			cur.WriteString(line)
		}
	}
	if started && cur.Len() > 0 {
		refs = append(refs, strings.TrimSpace(cur.String()))
	}
	return refs
}
