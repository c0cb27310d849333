// Package match scores catalog candidates against the field set extracted
// from a citation and classifies the outcome. Scoring is a sum of fixed,
// independent signals; all comparisons run on aggressively normalized text
// so that abbreviation dots, case, and stray punctuation never break a
// match.
package match

import (
	"regexp"
	"strings"
)

var (
	spaceRe    = regexp.MustCompile(`[\s\p{Zs}]+`)
	punctRe    = regexp.MustCompile(`[^\p{L}\p{N}_ &]`)
	nonDigitRe = regexp.MustCompile(`[^0-9]+`)
)

// Norm lowercases, trims, and collapses runs of whitespace to single spaces.
func Norm(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return spaceRe.ReplaceAllString(s, " ")
}

// NormPunct is Norm plus punctuation removal: every character that is not a
// letter, digit, underscore, space, or ampersand becomes a space, and the
// result is re-collapsed and trimmed. "J. Phys. Chem. C" and "j phys chem c"
// normalize identically.
func NormPunct(s string) string {
	s = Norm(s)
	s = punctRe.ReplaceAllString(s, " ")
	s = spaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// OnlyDigits strips everything but ASCII digits.
func OnlyDigits(s string) string {
	return nonDigitRe.ReplaceAllString(s, "")
}
