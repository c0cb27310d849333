package match

import (
	"regexp"
	"strings"

	"github.com/matsen/refsolve/internal/citation"
	"github.com/matsen/refsolve/internal/crossref"
)

// Decision classifies one resolution attempt.
type Decision string

const (
	DecisionAccepted      Decision = "accepted"
	DecisionLowConfidence Decision = "low_confidence"
	DecisionNoMatch       Decision = "no_match"
)

// DefaultMinScore is the default acceptance threshold.
const DefaultMinScore = 35

// Signal weights. Page and article-number are independent signals and may
// both fire for the same candidate.
const (
	yearWeight       = 15
	journalWeight    = 20
	volumeWeight     = 10
	pageWeight       = 15
	articleWeight    = 15
	authorWeight     = 5
	authorCap        = 10
	maxWantedAuthors = 3
)

// MaxScore is the highest score any candidate can reach.
const MaxScore = yearWeight + journalWeight + volumeWeight + pageWeight + articleWeight + authorCap

// Score computes the weighted match score between a catalog candidate and
// the wanted fields. The result is deterministic and bounded by [0, MaxScore].
func Score(work crossref.Work, w citation.Wanted) int {
	score := 0

	if w.Year != "" && work.IssuedYear() == w.Year {
		score += yearWeight
	}

	cj := NormPunct(work.FirstContainer())
	wj := NormPunct(w.JournalFull)
	if cj != "" && wj != "" && (strings.Contains(cj, wj) || strings.Contains(wj, cj)) {
		score += journalWeight
	}

	cv := strings.TrimSpace(work.Volume.String())
	if cv != "" && w.Volume != "" && cv == w.Volume {
		score += volumeWeight
	}

	if w.Page != "" {
		if page := strings.ReplaceAll(work.Page.String(), " ", ""); page != "" {
			token := regexp.MustCompile(`\b` + regexp.QuoteMeta(w.Page) + `\b`)
			if token.MatchString(page) {
				score += pageWeight
			}
		}
		if art := work.ArticleNumber.String(); art != "" && OnlyDigits(art) == OnlyDigits(w.Page) {
			score += articleWeight
		}
	}

	score += authorOverlap(w.Authors, work.Authors)

	return score
}

// authorOverlap awards authorWeight per wanted surname found among the
// candidate's family names, over the first maxWantedAuthors surnames only,
// capped at authorCap.
func authorOverlap(wanted []string, authors []crossref.Author) int {
	var want []string
	for _, a := range wanted {
		if a != "" {
			want = append(want, NormPunct(a))
		}
	}
	if len(want) > maxWantedAuthors {
		want = want[:maxWantedAuthors]
	}

	var families []string
	for _, a := range authors {
		if a.Family != "" {
			families = append(families, NormPunct(a.Family))
		}
	}

	matches := 0
	for _, w := range want {
		if w == "" {
			continue
		}
		for _, f := range families {
			if w == f {
				matches++
				break
			}
		}
	}

	overlap := matches * authorWeight
	if overlap > authorCap {
		overlap = authorCap
	}
	return overlap
}

// Best scans candidates in catalog order and returns the first one with the
// strictly highest score. Ties deliberately favor earlier candidates so a
// rerun against the same catalog response reproduces the same choice. found
// is false only when the pool is empty.
func Best(works []crossref.Work, w citation.Wanted) (best crossref.Work, score int, found bool) {
	for _, work := range works {
		sc := Score(work, w)
		if !found || sc > score {
			best, score, found = work, sc, true
		}
	}
	return best, score, found
}

// Decide classifies a scored resolution attempt against the acceptance
// threshold. No candidate at all means no_match regardless of threshold.
func Decide(found bool, score, minScore int) Decision {
	if !found {
		return DecisionNoMatch
	}
	if score >= minScore {
		return DecisionAccepted
	}
	return DecisionLowConfidence
}
