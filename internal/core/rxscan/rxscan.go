// Package rxscan wraps regexp submatch-index iteration for the detector
// batteries: every pattern captures its span body as group 1 and detectors
// slice typed fields out of the numbered groups
package rxscan

import (
	"regexp"
	"strconv"
)

// Match is one occurrence with access to its capture groups
type Match struct {
	idx  []int
	text string
}

// All returns every non-overlapping occurrence of re in text
func All(re *regexp.Regexp, text string) []Match {
	var out []Match
	for _, idx := range re.FindAllStringSubmatchIndex(text, -1) {
		out = append(out, Match{idx: idx, text: text})
	}
	return out
}

// Group returns the text of capture group g, empty when unmatched
func (m Match) Group(g int) string {
	if 2*g+1 >= len(m.idx) || m.idx[2*g] < 0 {
		return ""
	}
	return m.text[m.idx[2*g]:m.idx[2*g+1]]
}

// Has reports whether group g participated in the match
func (m Match) Has(g int) bool {
	return 2*g+1 < len(m.idx) && m.idx[2*g] >= 0
}

// Int parses group g as an integer, zero when absent or malformed
func (m Match) Int(g int) int {
	n, _ := strconv.Atoi(m.Group(g))
	return n
}

// FirstInt parses the first present group of the given alternatives; used by
// patterns that capture the same field once per written form
func (m Match) FirstInt(gs ...int) int {
	for _, g := range gs {
		if m.Has(g) {
			return m.Int(g)
		}
	}
	return 0
}
