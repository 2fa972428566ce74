package scalar

import (
	"regexp"

	"chatner/internal/core/lexicon"
)

// Boundary classes shared with the temporal engines: RE2's \b is ASCII-only,
// so word edges are explicit non-letter/non-digit groups. Group 1 is the
// span body
const (
	bL = `(?:^|[^\pL\pN])`
	bR = `(?:[^\pL\pN]|$)`
)

type patterns struct {
	digits  *regexp.Regexp // 2:value
	numeral *regexp.Regexp // 2:numeral word

	budgetBounded *regexp.Regexp // 2:qualifier 3:currency? 4:amount 5:k?
	budgetRange   *regexp.Regexp // 2:currency? 3:lo 4:lo-k? 5:hi 6:hi-k?
	budgetPlain   *regexp.Regexp // 2:currency 3:amount 4:k?  (or trailing currency: 5:amount 6:k? 7:currency)

	phone *regexp.Regexp // 2:country-code? 3:digits
	email *regexp.Regexp // 2:address

	pnrKeyed *regexp.Regexp // 2:code
	pnrBare  *regexp.Regexp // 2:code
}

func compileScalarPatterns(tab *lexicon.Table) *patterns {
	p := &patterns{}

	amount := `(\d{1,9})\s*(k)?`
	currency := `(rs\.?|inr|₹|\$|usd|eur|€)`

	p.digits = regexp.MustCompile(bL + `((\d{1,9}))` + bR)
	p.numeral = regexp.MustCompile(bL + `((` + tab.NumeralAlternation() + `))` + bR)

	p.budgetBounded = regexp.MustCompile(
		bL + `((under|below|upto|up\s+to|max(?:imum)?|within|less\s+than|above|over|min(?:imum)?|at\s+least|more\s+than)\s+` +
			currency + `?\s*` + amount + `)` + bR)
	p.budgetRange = regexp.MustCompile(
		bL + `((?:between\s+)?` + currency + `?\s*(\d{1,9})\s*(k)?\s*(?:to|and|-|–)\s*(\d{1,9})\s*(k)?)` + bR)
	p.budgetPlain = regexp.MustCompile(
		bL + `(` + currency + `\s*` + amount + `|(\d{1,9})\s*(k)?\s*` + currency + `)` + bR)

	p.phone = regexp.MustCompile(
		bL + `((?:\+\s?(\d{1,3})[\s-]?)?(\d{10}))` + bR)
	p.email = regexp.MustCompile(
		bL + `(([a-z0-9][a-z0-9._%+-]*@[a-z0-9][a-z0-9.-]*\.[a-z]{2,}))` + bR)

	p.pnrKeyed = regexp.MustCompile(
		bL + `(?:pnr|booking(?:\s+(?:code|ref(?:erence)?|number|no))?|reservation)\s*(?:code|ref(?:erence)?|number|no)?\s*(?:is|was)?\s*[:#-]?\s*(([a-z0-9]{5,10}))` + bR)
	// bare codes need both letters and digits to avoid claiming plain words
	// or plain numbers
	p.pnrBare = regexp.MustCompile(
		bL + `(([a-z]+\d[a-z0-9]*|\d+[a-z][a-z0-9]*))` + bR)

	return p
}
