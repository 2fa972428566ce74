package lexicon

import (
	"regexp"
	"sort"
	"strings"
)

// VariantsOf returns every variant of the given kinds ordered by descending
// word count, then descending length, then lexicographically. The ordering is
// what keeps multi-word phrases from being pre-empted by their own prefixes
// when the list is compiled into an alternation
func (t *Table) VariantsOf(kinds ...Kind) []string {
	want := make(map[Kind]bool, len(kinds))
	for _, k := range kinds {
		want[k] = true
	}
	var out []string
	for v, l := range t.variants {
		if want[l.Kind] {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		wi, wj := wordCount(out[i]), wordCount(out[j])
		if wi != wj {
			return wi > wj
		}
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}

// Alternation compiles the variants of the given kinds into a non-capturing
// regex alternation fragment, e.g. `(?:day after tomorrow|tomorrow|today)`
func (t *Table) Alternation(kinds ...Kind) string {
	vs := t.VariantsOf(kinds...)
	quoted := make([]string, len(vs))
	for i, v := range vs {
		quoted[i] = regexp.QuoteMeta(v)
	}
	return "(?:" + strings.Join(quoted, "|") + ")"
}

// NumeralAlternation compiles all numeral words, longest phrases first
func (t *Table) NumeralAlternation() string {
	words := make([]string, 0, len(t.numerals))
	for w := range t.numerals {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		wi, wj := wordCount(words[i]), wordCount(words[j])
		if wi != wj {
			return wi > wj
		}
		if len(words[i]) != len(words[j]) {
			return len(words[i]) > len(words[j])
		}
		return words[i] < words[j]
	})
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return "(?:" + strings.Join(quoted, "|") + ")"
}

// RefPhrases returns the reference qualifier phrases carrying the given
// offset, longest first
func (t *Table) RefPhrases(offset int) []string {
	var out []string
	for _, d := range t.diffs {
		if d.Kind == DiffRef && d.Offset == offset {
			out = append(out, d.Phrase)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		wi, wj := wordCount(out[i]), wordCount(out[j])
		if wi != wj {
			return wi > wj
		}
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}
