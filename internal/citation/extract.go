package citation

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// maxAuthors bounds how many surnames are kept per citation.
const maxAuthors = 5

var (
	indexRe    = regexp.MustCompile(`^\s*\[(\d+)\]\s*(.*)`)
	yearRe     = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	volTightRe = regexp.MustCompile(`,\s*([0-9]+)\s*,`)
	volLooseRe = regexp.MustCompile(`[,;]\s*([0-9]+)\b`)
	digitRunRe = regexp.MustCompile(`[0-9]{3,}`)
	surnameRe  = regexp.MustCompile(`[A-Za-z][A-Za-z\-']+`)
)

// Parse segments reference-list text and extracts fields from every entry.
// Records are returned sorted ascending by index; wrapped-line joining can
// otherwise leave them out of order. Entries without a usable bracket value
// get their position in the parse sequence as index.
func Parse(text string) []Record {
	joined := Segment(text)
	recs := make([]Record, 0, len(joined))
	for i, line := range joined {
		recs = append(recs, ParseOne(line, i+1))
	}
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Index < recs[j].Index })
	return recs
}

// ParseOne extracts fields from a single joined citation string. Every
// heuristic is independent and optional: whatever cannot be located stays
// empty. fallbackIndex is used when the leading bracket marker is missing.
func ParseOne(line string, fallbackIndex int) Record {
	line = strings.TrimSpace(line)
	idx, body := stripIndex(line)
	if idx == 0 {
		idx = fallbackIndex
	}
	year := extractYear(body)
	return Record{
		Index:         idx,
		RawText:       line,
		Authors:       extractAuthors(body),
		Journal:       extractJournal(body, year),
		Year:          year,
		Volume:        extractVolume(body, year),
		PageOrArticle: extractPage(body),
	}
}

// stripIndex splits a leading [n] marker off a citation. It returns the
// parsed index and the remaining body, or 0 and the whole string when no
// marker is present. Extraction heuristics run on the body so the marker
// digits never masquerade as a year or volume.
func stripIndex(line string) (int, string) {
	m := indexRe.FindStringSubmatch(line)
	if m == nil {
		return 0, line
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, line
	}
	return n, m[2]
}

func extractYear(s string) string {
	return yearRe.FindString(s)
}

// extractVolume looks in the text following the year, where the common shape
// is "..., YEAR, VOLUME, PAGE". A number fully enclosed by commas wins;
// otherwise the first number preceded by a comma or semicolon is taken.
func extractVolume(s, year string) string {
	if year == "" {
		return ""
	}
	pos := strings.Index(s, year)
	if pos == -1 {
		return ""
	}
	tail := s[pos+len(year):]
	if m := volTightRe.FindStringSubmatch(tail); m != nil {
		return m[1]
	}
	if m := volLooseRe.FindStringSubmatch(tail); m != nil {
		return m[1]
	}
	return ""
}

// extractPage takes the last comma-delimited segment of the citation,
// strips trailing periods and internal spaces, non-breaking spaces, and
// hyphens, and accepts it only if a run of 3+ digits remains. The digit-run
// requirement filters out short trailing tokens such as a lone volume.
func extractPage(s string) string {
	parts := splitFields(s)
	if len(parts) < 2 {
		return ""
	}
	token := strings.TrimRight(parts[len(parts)-1], ".")
	token = strings.ReplaceAll(token, " ", "")
	token = strings.ReplaceAll(token, "\u00a0", "")
	token = strings.ReplaceAll(token, "-", "")
	if !digitRunRe.MatchString(token) {
		return ""
	}
	return token
}

// extractJournal returns the comma-delimited segment immediately before the
// year, trimmed of trailing periods. The year anchors the search; without
// one there is no reliable way to tell the journal from the title, so the
// result is empty. A comma directly before the year (", J. Name, 2019")
// does not count as the delimiter.
func extractJournal(s, year string) string {
	if year == "" {
		return ""
	}
	pos := strings.Index(s, year)
	if pos == -1 {
		return ""
	}
	left := strings.TrimRightFunc(s[:pos], func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	cpos := strings.LastIndex(left, ",")
	if cpos == -1 {
		return ""
	}
	return strings.TrimRight(strings.TrimSpace(left[cpos+1:]), ".")
}

// extractAuthors reduces the text before the journal (or before the year,
// or the whole string when neither is present) to surnames: the segment is
// split on commas and each of the first maxAuthors pieces contributes its
// last word-like token.
func extractAuthors(s string) []string {
	year := extractYear(s)
	j := extractJournal(s, year)
	stop := len(s)
	switch {
	case j != "":
		if i := strings.Index(s, j); i >= 0 {
			stop = i
		}
	case year != "":
		if i := strings.Index(s, year); i >= 0 {
			stop = i
		}
	}
	parts := splitFields(s[:stop])
	if len(parts) > maxAuthors {
		parts = parts[:maxAuthors]
	}
	var names []string
	for _, p := range parts {
		ws := surnameRe.FindAllString(p, -1)
		if len(ws) > 0 {
			names = append(names, ws[len(ws)-1])
		}
	}
	return names
}

// splitFields splits on commas and drops empty pieces.
func splitFields(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
