package dates

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"chatner/internal/core/lexicon"
	"chatner/internal/core/rxscan"
)

// inferYear picks the year for a month/day with no explicit year: the
// current one, or the next when that month/day has already passed
func inferYear(st *callState, mm, dd int) int {
	y := st.now.Year()
	if mm < int(st.now.Month()) || (mm == int(st.now.Month()) && dd < st.now.Day()) {
		y++
	}
	return y
}

// resolveMonthWord maps a matched month-or-ref word to month and year
func resolveMonthWord(e *Engine, st *callState, word string, dd int) (mm, yy int, ok bool) {
	lit, found := e.tab.Literal(word)
	if !found {
		return 0, 0, false
	}
	switch lit.Kind {
	case lexicon.KindMonth:
		mm, ok = e.tab.MonthNumber(lit.Canonical)
		if !ok {
			return 0, 0, false
		}
		return mm, inferYear(st, mm, dd), true
	case lexicon.KindMonthDateRef:
		switch lit.Canonical {
		case "next_month":
			mm, yy = monthOffset(st.now, 1)
		case "last_month":
			mm, yy = monthOffset(st.now, -1)
		default: // this_month
			mm, yy = int(st.now.Month()), st.now.Year()
		}
		return mm, yy, true
	}
	return 0, 0, false
}

// numeric absolute formats

func detectYMDNumeric(e *Engine, st *callState) []match {
	var out []match
	for _, m := range rxscan.All(e.pats.ymdNumeric, st.buf.Processed) {
		y, _ := strconv.Atoi(m.Group(2))
		mo, _ := strconv.Atoi(m.Group(3))
		d, _ := strconv.Atoi(m.Group(4))
		if mo < 1 || mo > 12 {
			continue
		}
		out = append(out, match{
			date: DetectedDate{Dd: d, Mm: mo, Yy: y, Type: Exact},
			span: m.Group(1),
		})
	}
	return out
}

func detectDMYNumeric(e *Engine, st *callState) []match {
	return detectNumericPair(e, st, false)
}

func detectMDYNumeric(e *Engine, st *callState) []match {
	return detectNumericPair(e, st, true)
}

// detectNumericPair handles d/m/y and m/d/y over the same pattern. A match
// whose month field is out of range is left unclaimed so the other order
// can pick it up later in the battery
func detectNumericPair(e *Engine, st *callState, monthFirst bool) []match {
	var out []match
	for _, m := range rxscan.All(e.pats.dmyNumeric, st.buf.Processed) {
		a, _ := strconv.Atoi(m.Group(2))
		b, _ := strconv.Atoi(m.Group(3))
		d, mo := a, b
		if monthFirst {
			d, mo = b, a
		}
		if mo < 1 || mo > 12 {
			continue
		}
		y := expandYear(m.Group(4), st.now, st.in.PastReferenced)
		out = append(out, match{
			date: DetectedDate{Dd: d, Mm: mo, Yy: y, Type: Exact},
			span: m.Group(1),
		})
	}
	return out
}

// cross-month day ranges: "21st to 30th of jan", "10 - 15 of next month"

func detectDayRange(e *Engine, st *callState) []match {
	var out []match
	for _, m := range rxscan.All(e.pats.dayRange, st.buf.Processed) {
		d1, ok1 := stripOrdinal(m.Group(2))
		d2, err := strconv.Atoi(m.Group(4))
		if !ok1 || err != nil {
			continue
		}
		// the shared month word is the last literal in the tail span
		tail := m.Group(3)
		var monthWord string
		for _, h := range e.tab.FindLiterals(tail) {
			if h.Lit.Kind == lexicon.KindMonth || h.Lit.Kind == lexicon.KindMonthDateRef {
				monthWord = h.Text
			}
		}
		if monthWord == "" {
			continue
		}
		mm, yy, ok := resolveMonthWord(e, st, monthWord, d2)
		if !ok {
			continue
		}
		out = append(out,
			match{date: DetectedDate{Dd: d1, Mm: mm, Yy: yy, Type: Exact}, span: m.Group(2)},
			match{date: DetectedDate{Dd: d2, Mm: mm, Yy: yy, Type: Exact}, span: m.Group(3)},
		)
	}
	return out
}

// spelled month absolutes

func detectDayMonth(e *Engine, st *callState) []match {
	var out []match
	for _, m := range rxscan.All(e.pats.dayMonth, st.buf.Processed) {
		d, _ := strconv.Atoi(m.Group(2))
		mm, yy, ok := resolveMonthWord(e, st, m.Group(3), d)
		if !ok {
			continue
		}
		if m.Has(4) {
			yy = expandYear(m.Group(4), st.now, st.in.PastReferenced)
		}
		out = append(out, match{
			date: DetectedDate{Dd: d, Mm: mm, Yy: yy, Type: Exact},
			span: m.Group(1),
		})
	}
	return out
}

func detectMonthDay(e *Engine, st *callState) []match {
	var out []match
	for _, m := range rxscan.All(e.pats.monthDay, st.buf.Processed) {
		d, _ := strconv.Atoi(m.Group(3))
		mm, yy, ok := resolveMonthWord(e, st, m.Group(2), d)
		if !ok {
			continue
		}
		if m.Has(4) {
			yy = expandYear(m.Group(4), st.now, st.in.PastReferenced)
		}
		out = append(out, match{
			date: DetectedDate{Dd: d, Mm: mm, Yy: yy, Type: Exact},
			span: m.Group(1),
		})
	}
	return out
}

func detectOrdinalWordMonth(e *Engine, st *callState) []match {
	var out []match
	for _, m := range rxscan.All(e.pats.ordinalWordMon, st.buf.Processed) {
		d, ok := e.tab.Numeral(m.Group(2))
		if !ok || d < 1 || d > 31 {
			continue
		}
		mm, yy, ok := resolveMonthWord(e, st, m.Group(3), d)
		if !ok {
			continue
		}
		out = append(out, match{
			date: DetectedDate{Dd: d, Mm: mm, Yy: yy, Type: Exact},
			span: m.Group(1),
		})
	}
	return out
}

// relative day keywords via the literal index

var relativeDayOffsets = map[string]struct {
	off int
	typ DateType
}{
	"today":      {0, Today},
	"tomorrow":   {1, Tomorrow},
	"yesterday":  {-1, Yesterday},
	"day_after":  {2, DayAfter},
	"day_before": {-2, DayBefore},
}

func detectRelativeDay(e *Engine, st *callState) []match {
	var out []match
	lastEnd := -1
	for _, h := range e.tab.FindLiterals(st.buf.Processed) {
		if h.Lit.Kind != lexicon.KindRelativeDate || h.Start < lastEnd {
			continue
		}
		ro, ok := relativeDayOffsets[h.Lit.Canonical]
		if !ok {
			continue
		}
		lastEnd = h.End
		out = append(out, match{
			date: dateOn(st.now.AddDate(0, 0, ro.off), ro.typ),
			span: h.Text,
		})
	}
	return out
}

// after-N-days arithmetic

func detectAfterNDays(e *Engine, st *callState) []match {
	var out []match
	for _, re := range []*regexp.Regexp{e.pats.afterNDays, e.pats.nDaysLater} {
		for _, m := range rxscan.All(re, st.buf.Processed) {
			n, ok := parseNumberToken(e.tab, m.Group(2))
			if !ok || n <= 0 {
				continue
			}
			out = append(out, match{
				date: dateOn(st.now.AddDate(0, 0, n), NDaysAfter),
				span: m.Group(1),
			})
		}
	}
	return out
}

// weekday-relative phrases via the literal index

func detectWeekdayRelative(e *Engine, st *callState) []match {
	var out []match
	text := st.buf.Processed
	lastEnd := -1
	for _, h := range e.tab.FindLiterals(text) {
		if h.Lit.Kind != lexicon.KindWeekday || h.Start < lastEnd {
			continue
		}
		wd, ok := e.tab.Weekday(h.Lit.Canonical)
		if !ok {
			continue
		}
		lastEnd = h.End

		span := h.Text
		typ := ThisDay
		days := daysUntilWeekday(st.now, wd)

		word, wstart := precedingWord(text, h.Start)
		if word == "on" {
			span = strings.TrimSpace(text[wstart:h.End])
		} else if d, isQual := e.tab.Diff(word); isQual && d.Kind == lexicon.DiffRef {
			span = strings.TrimSpace(text[wstart:h.End])
			switch {
			case d.Offset > 0:
				typ = NextDay
				days = daysUntilNextWeek(st.now, wd)
			case d.Offset < 0:
				// past weekdays have no representation; consume the phrase
				// so the bare weekday is not re-detected
				out = append(out, match{span: span, suppress: true})
				continue
			}
		}

		out = append(out, match{
			date: dateOn(st.now.AddDate(0, 0, days), typ),
			span: span,
		})
	}
	return out
}

// precedingWord returns the word immediately before byte offset start,
// separated by at most whitespace
func precedingWord(text string, start int) (string, int) {
	i := start
	for i > 0 && text[i-1] == ' ' {
		i--
	}
	j := i
	for j > 0 {
		r, size := utf8.DecodeLastRuneInString(text[:j])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		j -= size
	}
	if j >= i {
		return "", start
	}
	return text[j:i], j
}

// bare day numbers with inferred month/year

func detectDayOnly(e *Engine, st *callState) []match {
	var out []match
	for _, re := range []*regexp.Regexp{e.pats.dayOrdinalOnly, e.pats.dayOnPrefix} {
		for _, m := range rxscan.All(re, st.buf.Processed) {
			d, _ := strconv.Atoi(m.Group(2))
			if d < 1 || d > 31 {
				continue
			}
			out = append(out, match{
				date: rollForwardDay(st.now, d),
				span: m.Group(1),
			})
		}
	}
	return out
}

// nth-week-of-month ranges: "first week of january" yields the week's first
// and last day as two exact dates sharing the phrase span

func detectNthWeekOfMonth(e *Engine, st *callState) []match {
	var out []match
	for _, m := range rxscan.All(e.pats.nthWeekOfMonth, st.buf.Processed) {
		word := strings.TrimSpace(m.Group(2))
		n := 0
		if word == "last" {
			n = 4
		} else if v, ok := parseNumberToken(e.tab, word); ok {
			n = v
		}
		if n < 1 || n > 4 {
			continue
		}
		startDay := (n-1)*7 + 1
		endDay := n * 7
		mm, yy, ok := resolveMonthWord(e, st, m.Group(3), startDay)
		if !ok {
			continue
		}
		span := m.Group(1)
		out = append(out,
			match{date: DetectedDate{Dd: startDay, Mm: mm, Yy: yy, Type: Exact}, span: span},
			match{date: DetectedDate{Dd: endDay, Mm: mm, Yy: yy, Type: Exact}, span: span},
		)
	}
	return out
}

// recurrence detectors; expansions are bounded by the engine horizon and
// every expanded value carries the full phrase span

func detectRecurExcept(e *Engine, st *callState) []match {
	var out []match
	for _, m := range rxscan.All(e.pats.recurExcept, st.buf.Processed) {
		span := m.Group(1)
		excepted := strings.ReplaceAll(m.Group(2), " ", "")
		if strings.HasPrefix(excepted, "weekend") {
			out = append(out, e.expandRecurrence(st, span, RepeatWeekdays, isWeekday)...)
		} else {
			out = append(out, e.expandRecurrence(st, span, RepeatWeekends, isWeekend)...)
		}
	}
	return out
}

func detectRecurWeekdays(e *Engine, st *callState) []match {
	var out []match
	for _, m := range rxscan.All(e.pats.recurWeekdays, st.buf.Processed) {
		span := m.Group(1)
		typ := Weekdays
		if strings.Contains(span, "every") {
			typ = RepeatWeekdays
		}
		out = append(out, e.expandRecurrence(st, span, typ, isWeekday)...)
	}
	return out
}

func detectRecurWeekends(e *Engine, st *callState) []match {
	var out []match
	for _, m := range rxscan.All(e.pats.recurWeekends, st.buf.Processed) {
		span := m.Group(1)
		typ := Weekends
		if strings.Contains(span, "every") {
			typ = RepeatWeekends
		}
		out = append(out, e.expandRecurrence(st, span, typ, isWeekend)...)
	}
	return out
}

func detectRecurEveryday(e *Engine, st *callState) []match {
	var out []match
	for _, m := range rxscan.All(e.pats.recurEveryday, st.buf.Processed) {
		out = append(out, e.expandRecurrence(st, m.Group(1), Everyday, nil)...)
	}
	return out
}

// expandRecurrence walks the horizon from today and emits one dated entry
// per day accepted by keep (nil keeps every day)
func (e *Engine) expandRecurrence(st *callState, span string, typ DateType, keep func(weekday int) bool) []match {
	out := make([]match, 0, e.horizon)
	for i := 0; i < e.horizon; i++ {
		t := st.now.AddDate(0, 0, i)
		if keep != nil && !keep(int(t.Weekday())) {
			continue
		}
		out = append(out, match{date: dateOn(t, typ), span: span})
	}
	return out
}

func isWeekday(wd int) bool { return wd >= 1 && wd <= 5 }
func isWeekend(wd int) bool { return wd == 0 || wd == 6 }
