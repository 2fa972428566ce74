package clock

import (
	"regexp"
	"strings"
)

// Boundary classes mirror the date engine: RE2's \b is ASCII-only, so word
// edges are expressed as explicit non-letter/non-digit groups around the
// captured body. Group 1 is always the span body
const (
	bL = `(?:^|[^\pL\pN])`
	bR = `(?:[^\pL\pN]|$)`

	mer      = `(a\.?m\.?|p\.?m\.?)`
	rangeSep = `(?:to|till|until|-|–)`
	hourUnit = `(?:hours?|hrs?)`
	minUnit  = `(?:minutes?|mins?)`
)

type patterns struct {
	// group layout documented per field; group 1 is always the span body
	rangeTwoSided12 *regexp.Regexp // 2:h1 3:m1? 4:mer1? 5:h2 6:m2? 7:mer2
	rangeOneSided   *regexp.Regexp // 2:qualifier 3:h 4:m? 5:mer?
	rangeTwoSided24 *regexp.Regexp // 2:h1c 3:m1c 4:h1d 5:m1d 6:h2c 7:m2c 8:h2d 9:m2d (colon vs digit-pair forms)
	abs12           *regexp.Regexp // 2:h 3:m? 4:mer
	relDiffPre      *regexp.Regexp // 2:count 3:unit
	relDiffPost     *regexp.Regexp // 2:count 3:unit
	recurEvery      *regexp.Regexp // 2:count? 3:unit
	recurPerPeriod  *regexp.Regexp // 2:times-word 3:period
	bare24          *regexp.Regexp // 2:h 3:m
	restricted24    *regexp.Regexp // 2:h 3:m?
	wordQualified12 *regexp.Regexp // 2:h 3:m? 4:day-part word
	prefixedHour    *regexp.Regexp // 2:h 3:m?
	oclock          *regexp.Regexp // 2:h
	dayPart         *regexp.Regexp // 2:day-part word
}

func compilePatterns() *patterns {
	p := &patterns{}

	p.rangeTwoSided12 = regexp.MustCompile(
		bL + `((\d{1,2})(?::([0-5]\d))?\s*` + mer + `?\s*` + rangeSep + `\s*` +
			`(\d{1,2})(?::([0-5]\d))?\s*` + mer + `)` + bR)

	p.rangeOneSided = regexp.MustCompile(
		bL + `((after|post|beyond|before|by|until|till)\s+` +
			`(\d{1,2})(?::([0-5]\d))?\s*` + mer + `?)` + bR)

	// colon form or four-digit form on each side; bare "10 - 15" must not match
	h24c := `(?:([01]?\d|2[0-3]):([0-5]\d))`
	h24d := `(?:([01]\d|2[0-3])([0-5]\d))`
	p.rangeTwoSided24 = regexp.MustCompile(
		bL + `((?:` + h24c + `|` + h24d + `)\s*` + hourUnit + `?\s*` + rangeSep + `\s*` +
			`(?:` + h24c + `|` + h24d + `)\s*` + hourUnit + `?)` + bR)

	p.abs12 = regexp.MustCompile(
		bL + `((\d{1,2})(?::([0-5]\d))?\s*` + mer + `)` + bR)

	p.relDiffPre = regexp.MustCompile(
		bL + `((?:in|after)\s+(\d{1,3}|half)\s*(?:an?\s+)?(` + minUnit + `|` + hourUnit + `))` + bR)
	p.relDiffPost = regexp.MustCompile(
		bL + `((\d{1,3}|half)\s+(?:an?\s+)?(` + minUnit + `|` + hourUnit + `)\s+(?:later|after|hence|from\s+now))` + bR)

	p.recurEvery = regexp.MustCompile(
		bL + `(every\s+(\d{1,2})?\s*(` + minUnit + `|` + hourUnit + `))` + bR)
	p.recurPerPeriod = regexp.MustCompile(
		bL + `((once|twice|thrice)\s+(?:an?|per|every)\s+(day|night|hour))` + bR)

	p.bare24 = regexp.MustCompile(
		bL + `(([01]?\d|2[0-3]):([0-5]\d))` + bR)

	p.restricted24 = regexp.MustCompile(
		bL + `((1[3-9]|2[0-3])(?::?([0-5]\d))?\s*` + hourUnit + `?)` + bR)

	p.wordQualified12 = regexp.MustCompile(
		bL + `((\d{1,2})(?::([0-5]\d))?\s*(?:in\s+the\s+)?(morning|afternoon|evening|night|noon))` + bR)

	p.prefixedHour = regexp.MustCompile(
		bL + `((?:at|by)\s+(\d{1,2})(?::([0-5]\d))?)` + bR)

	p.oclock = regexp.MustCompile(
		bL + `((\d{1,2})\s*o'?\s?clock)` + bR)

	p.dayPart = regexp.MustCompile(
		bL + `(morning|afternoon|evening|tonight|night|any\s?time|no\s+preference)` + bR)

	return p
}

// normalizeMeridiem collapses a.m./p.m. spellings to am/pm
func normalizeMeridiem(s string) Meridiem {
	s = strings.ReplaceAll(strings.TrimSpace(s), ".", "")
	if strings.HasPrefix(s, "p") {
		return PM
	}
	return AM
}

// isHourUnit distinguishes hour from minute duration words
func isHourUnit(unit string) bool {
	return strings.HasPrefix(strings.TrimSpace(unit), "h")
}
