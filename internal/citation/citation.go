// Package citation parses loosely formatted reference-list text into
// structured records. Input is the kind of text copied out of a paper's
// bibliography: every reference starts with a bracketed index like [12],
// lines wrap arbitrarily, and fields follow no fixed grammar. All parsing is
// best-effort; a field that cannot be located is left empty.
package citation

// Record is one parsed reference entry.
type Record struct {
	// Index is the bracketed marker value, unique within a document.
	// When the marker is absent the position in the parse sequence is used.
	Index int `json:"idx"`

	// RawText is the reassembled citation string, marker included, with
	// wrapped lines joined by single spaces.
	RawText string `json:"raw_ref"`

	// Extracted fields. Empty means the heuristic found nothing.
	Authors       []string `json:"authors"`
	Journal       string   `json:"journal"`
	Year          string   `json:"year"`
	Volume        string   `json:"volume"`
	PageOrArticle string   `json:"page_or_article"`
}

// Wanted is the read-only field set a citation is matched by. It is derived
// from a Record once, before querying, and never mutated afterwards.
type Wanted struct {
	Authors []string

	// Journal is the name as extracted, possibly abbreviated. JournalFull is
	// the canonical form used for structured catalog queries and scoring;
	// free-text fallback queries use the extracted form.
	Journal     string
	JournalFull string

	Year   string
	Volume string
	Page   string
}
