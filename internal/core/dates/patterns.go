package dates

import (
	"regexp"
	"strconv"
	"strings"

	"chatner/internal/core/lexicon"
)

// Word boundaries. RE2's \b is ASCII-only, which never matches at the edge of
// Devanagari (or any non-Latin) table variants, so boundaries are expressed
// as explicit non-letter/non-digit classes outside the captured body. Every
// pattern follows the shape bL(body)bR and detectors slice spans from the
// body group, group 1
const (
	bL = `(?:^|[^\pL\pN])`
	bR = `(?:[^\pL\pN]|$)`

	ordSuffix = `(?:st|nd|rd|th)?`
	rangeSep  = `(?:to|till|until|-|–)`
)

// patterns holds every compiled regex the battery runs. Alternations are
// built from the locale table once at engine construction, never per call
type patterns struct {
	// group layout documented per field; group 1 is always the span body
	ymdNumeric *regexp.Regexp // 2:year 3:month 4:day
	dmyNumeric *regexp.Regexp // 2:first 3:second 4:year; first/second roles depend on locale order

	dayMonth       *regexp.Regexp // 2:day 3:month-word 4:year?
	monthDay       *regexp.Regexp // 2:month-word 3:day 4:year?
	ordinalWordMon *regexp.Regexp // 2:numeral-word 3:month-word
	dayRange       *regexp.Regexp // 2:first-day-span 3:second-day-span 4:second-day digits
	afterNDays     *regexp.Regexp // 2:count
	nDaysLater     *regexp.Regexp // 2:count
	dayOrdinalOnly *regexp.Regexp // 2:day
	dayOnPrefix    *regexp.Regexp // 2:day
	nthWeekOfMonth *regexp.Regexp // 2:ordinal-or-last 3:month-or-ref
	recurExcept    *regexp.Regexp // 2:excepted group (weekends/weekdays)
	recurWeekdays  *regexp.Regexp
	recurWeekends  *regexp.Regexp
	recurEveryday  *regexp.Regexp

	repeatQualifier *regexp.Regexp // every/daily/always, probed against the original text
}

func compilePatterns(tab *lexicon.Table) *patterns {
	month := tab.Alternation(lexicon.KindMonth)
	monthRef := tab.Alternation(lexicon.KindMonthDateRef)
	numeral := tab.NumeralAlternation()

	p := &patterns{}

	p.ymdNumeric = regexp.MustCompile(bL + `((\d{4})[/.-](\d{1,2})[/.-](\d{1,2}))` + bR)
	p.dmyNumeric = regexp.MustCompile(bL + `((\d{1,2})[/.-](\d{1,2})[/.-](\d{2,4}))` + bR)

	p.dayMonth = regexp.MustCompile(
		bL + `((\d{1,2})\s*` + ordSuffix + `\s+(?:of\s+)?(` + month + `)(?:\s+(\d{2,4}))?)` + bR)
	p.monthDay = regexp.MustCompile(
		bL + `((` + month + `)\s+(\d{1,2})\s*` + ordSuffix + `(?:\s*,?\s+(\d{2,4}))?)` + bR)
	p.ordinalWordMon = regexp.MustCompile(
		bL + `((` + numeral + `)\s+(?:of\s+)?(` + month + `))` + bR)

	p.dayRange = regexp.MustCompile(
		bL + `((\d{1,2}\s*` + ordSuffix + `)\s*` + rangeSep + `\s*` +
			`((\d{1,2})\s*` + ordSuffix + `\s+(?:of\s+)?(?:` + month + `|` + monthRef + `)))` + bR)

	p.afterNDays = regexp.MustCompile(
		bL + `((?:after|in)\s+(\d{1,3}|` + numeral + `)\s+days?)` + bR)
	p.nDaysLater = regexp.MustCompile(
		bL + `((\d{1,3}|` + numeral + `)\s+days?\s+(?:later|after|hence|from\s+now))` + bR)

	p.dayOrdinalOnly = regexp.MustCompile(bL + `((\d{1,2})\s*(?:st|nd|rd|th))` + bR)
	p.dayOnPrefix = regexp.MustCompile(bL + `(on\s+(\d{1,2}))` + bR)

	p.nthWeekOfMonth = regexp.MustCompile(
		bL + `((` + numeral + `|last)\s+week\s+of\s+(` + month + `|` + monthRef + `))` + bR)

	p.recurExcept = regexp.MustCompile(
		bL + `((?:every\s*day|daily|every\s+week\s*days?)\s+except\s+(?:on\s+)?(week\s*ends?|week\s*days?))` + bR)
	p.recurWeekdays = regexp.MustCompile(bL + `((?:every\s+)?week\s*days?(?:\s+only)?)` + bR)
	p.recurWeekends = regexp.MustCompile(bL + `((?:every\s+)?week\s*ends?(?:\s+only)?)` + bR)
	p.recurEveryday = regexp.MustCompile(bL + `(every\s*day|daily|every\s+night)` + bR)

	p.repeatQualifier = regexp.MustCompile(`\b(?:every|daily|always)\b`)

	return p
}

// dayRange month group: the month-or-ref text is inside group 3's tail; the
// detector re-resolves it by scanning the tail for a known literal

// parseNumberToken reads either a digit run or a numeral word from the table
func parseNumberToken(tab *lexicon.Table, s string) (int, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	return tab.Numeral(s)
}

// stripOrdinal parses the leading digits of a day token like "21st"
func stripOrdinal(s string) (int, bool) {
	s = strings.TrimSpace(s)
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, false
	}
	return n, true
}
