package lexicon

import (
	"sort"
	"unicode"
	"unicode/utf8"

	"github.com/coregx/ahocorasick"
)

// literalIndex is an Aho-Corasick automaton over every date-literal variant,
// used by the broad word-candidate detectors to scan a whole message in one
// pass instead of trying each table key individually
type literalIndex struct {
	ac       *ahocorasick.Automaton
	patterns []string
}

// Hit is one literal occurrence found in scanned text
type Hit struct {
	Start int // byte offset, inclusive
	End   int // byte offset, exclusive
	Text  string
	Lit   *Literal
}

func buildLiteralIndex(t *Table) (*literalIndex, error) {
	patterns := make([]string, 0, len(t.variants))
	for v := range t.variants {
		patterns = append(patterns, v)
	}
	sort.Strings(patterns) // deterministic pattern ids

	ac, err := ahocorasick.NewBuilder().
		AddStrings(patterns).
		SetMatchKind(ahocorasick.LeftmostLongest).
		SetPrefilter(true).
		Build()
	if err != nil {
		return nil, err
	}
	return &literalIndex{ac: ac, patterns: patterns}, nil
}

// FindLiterals scans text for every known literal variant and returns
// word-bounded hits sorted by start offset, longer matches first on ties.
// text is expected to be lowercased already (the engines scan buffer text)
func (t *Table) FindLiterals(text string) []Hit {
	if t.idx == nil || text == "" {
		return nil
	}
	matches := t.idx.ac.FindAllOverlapping([]byte(text))
	out := make([]Hit, 0, len(matches))
	for _, m := range matches {
		start, end := m.Start, m.End
		if start < 0 || end > len(text) || start >= end {
			continue
		}
		if !wordBounded(text, start, end) {
			continue
		}
		lit, ok := t.variants[text[start:end]]
		if !ok {
			continue
		}
		out = append(out, Hit{Start: start, End: end, Text: text[start:end], Lit: lit})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].End > out[j].End
	})
	return out
}

// wordBounded reports whether text[start:end] sits on word boundaries
func wordBounded(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
