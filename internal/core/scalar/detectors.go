package scalar

import (
	"strings"

	"chatner/internal/core/rxscan"
	"chatner/internal/core/textbuf"
)

// Numbers extracts integer values from digit runs and spelled numeral words.
// Digit matches win; a numeral word inside an already claimed digit span
// cannot occur, so the two passes are independent
func (d *Detector) Numbers(text string) []NumberDetection {
	buf := textbuf.New(text)
	var out []NumberDetection

	spans := make([]string, 0, 4)
	for _, m := range rxscan.All(d.pats.digits, buf.Processed) {
		out = append(out, NumberDetection{Value: m.Int(2), Span: m.Group(1)})
		spans = append(spans, m.Group(1))
	}
	buf.Consume(spans, textbuf.Tag)

	for _, m := range rxscan.All(d.pats.numeral, buf.Processed) {
		n, ok := d.tab.Numeral(m.Group(2))
		if !ok {
			continue
		}
		out = append(out, NumberDetection{Value: n, Span: m.Group(1)})
	}
	return out
}

var budgetMaxQualifiers = map[string]bool{
	"under": true, "below": true, "upto": true, "up to": true,
	"max": true, "maximum": true, "within": true, "less than": true,
}

// Budgets extracts price constraints: bounded phrases ("under 5k"), explicit
// ranges ("2k to 5k"), and bare currency-marked amounts ("rs 3000")
func (d *Detector) Budgets(text string) []BudgetDetection {
	buf := textbuf.New(text)
	var out []BudgetDetection

	spans := make([]string, 0, 2)
	for _, m := range rxscan.All(d.pats.budgetBounded, buf.Processed) {
		amt := scaleAmount(m.Int(4), m.Has(5))
		b := BudgetDetection{Currency: canonCurrency(m.Group(3)), Span: m.Group(1)}
		q := strings.Join(strings.Fields(m.Group(2)), " ")
		if budgetMaxQualifiers[q] {
			b.Max = amt
		} else {
			b.Min = amt
		}
		out = append(out, b)
		spans = append(spans, b.Span)
	}
	buf.Consume(spans, textbuf.Tag)

	spans = spans[:0]
	for _, m := range rxscan.All(d.pats.budgetRange, buf.Processed) {
		lo := scaleAmount(m.Int(3), m.Has(4))
		hi := scaleAmount(m.Int(5), m.Has(6))
		if lo > hi {
			lo, hi = hi, lo
		}
		// a bare "10 to 15" is more likely a count or a date range; ranges
		// need a currency marker or a k suffix to read as money
		if !m.Has(2) && !m.Has(4) && !m.Has(6) {
			continue
		}
		out = append(out, BudgetDetection{
			Min: lo, Max: hi,
			Currency: canonCurrency(m.Group(2)),
			Span:     m.Group(1),
		})
		spans = append(spans, m.Group(1))
	}
	buf.Consume(spans, textbuf.Tag)

	for _, m := range rxscan.All(d.pats.budgetPlain, buf.Processed) {
		var amt int
		var cur string
		if m.Has(2) {
			cur, amt = canonCurrency(m.Group(2)), scaleAmount(m.Int(3), m.Has(4))
		} else {
			amt, cur = scaleAmount(m.Int(5), m.Has(6)), canonCurrency(m.Group(7))
		}
		out = append(out, BudgetDetection{Max: amt, Currency: cur, Span: m.Group(1)})
	}
	return out
}

// Phones extracts ten-digit numbers with an optional country code, returning
// the digits with separators stripped
func (d *Detector) Phones(text string) []PhoneDetection {
	buf := textbuf.New(text)
	var out []PhoneDetection
	for _, m := range rxscan.All(d.pats.phone, buf.Processed) {
		num := m.Group(3)
		if cc := m.Group(2); cc != "" {
			num = "+" + cc + num
		}
		out = append(out, PhoneDetection{Number: num, Span: strings.TrimSpace(m.Group(1))})
	}
	return out
}

// Emails extracts address occurrences
func (d *Detector) Emails(text string) []EmailDetection {
	buf := textbuf.New(text)
	var out []EmailDetection
	for _, m := range rxscan.All(d.pats.email, buf.Processed) {
		out = append(out, EmailDetection{Address: m.Group(2), Span: m.Group(1)})
	}
	return out
}

// PNRs extracts booking codes: keyword-anchored codes first, then bare
// letter-digit mixes of booking-code length
func (d *Detector) PNRs(text string) []PNRDetection {
	buf := textbuf.New(text)
	var out []PNRDetection

	spans := make([]string, 0, 2)
	for _, m := range rxscan.All(d.pats.pnrKeyed, buf.Processed) {
		out = append(out, PNRDetection{Code: strings.ToUpper(m.Group(2)), Span: m.Group(1)})
		spans = append(spans, m.Group(1))
	}
	buf.Consume(spans, textbuf.Tag)

	for _, m := range rxscan.All(d.pats.pnrBare, buf.Processed) {
		code := m.Group(2)
		if len(code) < 5 || len(code) > 10 {
			continue
		}
		out = append(out, PNRDetection{Code: strings.ToUpper(code), Span: code})
	}
	return out
}

// scaleAmount applies the shorthand k multiplier
func scaleAmount(n int, k bool) int {
	if k {
		return n * 1000
	}
	return n
}

// canonCurrency folds currency spellings to ISO-ish codes
func canonCurrency(s string) string {
	switch strings.TrimSuffix(strings.TrimSpace(s), ".") {
	case "rs", "inr", "₹":
		return "INR"
	case "$", "usd":
		return "USD"
	case "€", "eur":
		return "EUR"
	default:
		return ""
	}
}
