package expand

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	bracketRe  = regexp.MustCompile(`\[(.*?)\]`)
	tokenSepRe = regexp.MustCompile(`[;,]`)
	digitRunRe = regexp.MustCompile(`\d+`)

	// Unicode dashes that show up in ranges copied out of PDFs.
	dashReplacer = strings.NewReplacer("–", "-", "—", "-", "‒", "-", "−", "-")
)

// ParseRefs reads a references cell into its citation numbers:
// "[28,224-226]" yields 28, 224, 225, 226. Bracketed groups are preferred;
// without them the whole cell splits on commas and semicolons; as a last
// resort any digit runs in the cell are taken. Duplicates collapse, first
// occurrence order kept.
func ParseRefs(cell string) []int {
	s := strings.TrimSpace(cell)
	if s == "" {
		return nil
	}

	var tokens []string
	groups := bracketRe.FindAllStringSubmatch(s, -1)
	if len(groups) > 0 {
		for _, g := range groups {
			tokens = append(tokens, splitTokens(g[1])...)
		}
	} else {
		tokens = splitTokens(s)
	}

	var nums []int
	for _, tok := range tokens {
		nums = append(nums, expandToken(tok)...)
	}
	if len(nums) == 0 {
		for _, run := range digitRunRe.FindAllString(s, -1) {
			if n, err := strconv.Atoi(run); err == nil {
				nums = append(nums, n)
			}
		}
	}

	seen := make(map[int]bool, len(nums))
	var out []int
	for _, n := range nums {
		if !seen[n] {
			out = append(out, n)
			seen[n] = true
		}
	}
	return out
}

func splitTokens(s string) []string {
	var tokens []string
	for _, tok := range tokenSepRe.Split(s, -1) {
		if tok = strings.TrimSpace(tok); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// expandToken reads one token: "28" is itself, "224-226" is the inclusive
// range. Reversed bounds still count as a range.
func expandToken(tok string) []int {
	tok = strings.TrimSpace(dashReplacer.Replace(tok))
	if strings.Contains(tok, "-") {
		var bounds []int
		for _, part := range strings.Split(tok, "-") {
			part = strings.TrimSpace(part)
			if !isDigits(part) {
				continue
			}
			n, err := strconv.Atoi(part)
			if err != nil {
				return nil
			}
			bounds = append(bounds, n)
		}
		if len(bounds) != 2 {
			return nil
		}
		a, b := bounds[0], bounds[1]
		if a > b {
			a, b = b, a
		}
		out := make([]int, 0, b-a+1)
		for n := a; n <= b; n++ {
			out = append(out, n)
		}
		return out
	}

	if !isDigits(tok) {
		return nil
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return nil
	}
	return []int{n}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
