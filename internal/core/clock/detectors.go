package clock

import (
	"regexp"
	"strconv"
	"strings"

	"chatner/internal/core/rxscan"
)

// ranges

func detectRangeTwoSided12(e *Engine, st *callState) []match {
	var out []match
	for _, m := range rxscan.All(e.pats.rangeTwoSided12, st.buf.Processed) {
		h1, h2 := m.Int(2), m.Int(5)
		if h1 < 1 || h1 > 12 || h2 < 1 || h2 > 12 {
			continue
		}
		mer2 := normalizeMeridiem(m.Group(7))
		mer1 := mer2
		if m.Has(4) {
			mer1 = normalizeMeridiem(m.Group(4))
		}
		span := m.Group(1)
		out = append(out,
			match{time: DetectedTime{Hh: h1, Mm: m.Int(3), Nn: mer1, Range: RangeStart}, span: span},
			match{time: DetectedTime{Hh: h2, Mm: m.Int(6), Nn: mer2, Range: RangeEnd}, span: span},
		)
	}
	return out
}

var rangeStartQualifiers = map[string]bool{"after": true, "post": true, "beyond": true}

func detectRangeOneSided(e *Engine, st *callState) []match {
	var out []match
	for _, m := range rxscan.All(e.pats.rangeOneSided, st.buf.Processed) {
		// a bare "by 5" belongs to the prefixed-hour detector; one-sided
		// ranges need minutes or an explicit meridiem
		if !m.Has(4) && !m.Has(5) {
			continue
		}
		h, mm := m.Int(3), m.Int(4)
		var nn Meridiem
		switch {
		case m.Has(5):
			if h < 1 || h > 12 {
				continue
			}
			nn = normalizeMeridiem(m.Group(5))
		case h >= 13 && h <= 23:
			nn = Hours24
		default:
			nn = inferMeridiem(st.now, h, mm)
		}
		side := RangeEnd
		if rangeStartQualifiers[m.Group(2)] {
			side = RangeStart
		}
		out = append(out, match{
			time: DetectedTime{Hh: h, Mm: mm, Nn: nn, Range: side},
			span: m.Group(1),
		})
	}
	return out
}

func detectRangeTwoSided24(e *Engine, st *callState) []match {
	var out []match
	for _, m := range rxscan.All(e.pats.rangeTwoSided24, st.buf.Processed) {
		span := m.Group(1)
		out = append(out,
			match{time: DetectedTime{Hh: m.FirstInt(2, 4), Mm: m.FirstInt(3, 5), Nn: Hours24, Range: RangeStart}, span: span},
			match{time: DetectedTime{Hh: m.FirstInt(6, 8), Mm: m.FirstInt(7, 9), Nn: Hours24, Range: RangeEnd}, span: span},
		)
	}
	return out
}

// absolute clock times

func detectAbs12(e *Engine, st *callState) []match {
	var out []match
	for _, m := range rxscan.All(e.pats.abs12, st.buf.Processed) {
		h := m.Int(2)
		if h < 1 || h > 12 {
			continue
		}
		out = append(out, match{
			time: DetectedTime{Hh: h, Mm: m.Int(3), Nn: normalizeMeridiem(m.Group(4))},
			span: m.Group(1),
		})
	}
	return out
}

// relative offsets; hh/mm carry a duration, not a clock time

func detectRelDiff(e *Engine, st *callState) []match {
	var out []match
	for _, re := range []*regexp.Regexp{e.pats.relDiffPre, e.pats.relDiffPost} {
		for _, m := range rxscan.All(re, st.buf.Processed) {
			count := strings.TrimSpace(m.Group(2))
			unit := m.Group(3)
			t := DetectedTime{Nn: Diff}
			if count == "half" {
				if !isHourUnit(unit) {
					continue
				}
				t.Mm = 30
			} else {
				n, err := strconv.Atoi(count)
				if err != nil || n <= 0 {
					continue
				}
				if isHourUnit(unit) {
					t.Hh = n
				} else {
					t.Hh, t.Mm = n/60, n%60
				}
			}
			out = append(out, match{time: t, span: m.Group(1)})
		}
	}
	return out
}

// recurrence intervals

var perPeriodTimes = map[string]int{"once": 1, "twice": 2, "thrice": 3}

func detectRecurrence(e *Engine, st *callState) []match {
	var out []match
	for _, m := range rxscan.All(e.pats.recurEvery, st.buf.Processed) {
		n := 1
		if m.Has(2) {
			n = m.Int(2)
			if n < 1 {
				continue
			}
		}
		t := DetectedTime{Nn: Every}
		if isHourUnit(m.Group(3)) {
			t.Hh = n
		} else {
			t.Hh, t.Mm = n/60, n%60
		}
		out = append(out, match{time: t, span: m.Group(1)})
	}
	for _, m := range rxscan.All(e.pats.recurPerPeriod, st.buf.Processed) {
		times := perPeriodTimes[m.Group(2)]
		periodMin := 24 * 60
		if m.Group(3) == "hour" {
			periodMin = 60
		}
		interval := periodMin / times
		out = append(out, match{
			time: DetectedTime{Hh: interval / 60, Mm: interval % 60, Nn: Every},
			span: m.Group(1),
		})
	}
	return out
}

// 24-hour absolutes

func detectBare24(e *Engine, st *callState) []match {
	// bare HH:MM is too ambiguous in free chat text; only structured form
	// input opts in
	if !st.in.FormCheck {
		return nil
	}
	var out []match
	for _, m := range rxscan.All(e.pats.bare24, st.buf.Processed) {
		out = append(out, match{
			time: DetectedTime{Hh: m.Int(2), Mm: m.Int(3), Nn: Hours24},
			span: m.Group(1),
		})
	}
	return out
}

func detectRestricted24(e *Engine, st *callState) []match {
	var out []match
	for _, m := range rxscan.All(e.pats.restricted24, st.buf.Processed) {
		// a bare "15" is just a number; claim it only with minutes or an
		// explicit hour unit attached
		if !m.Has(3) && !strings.Contains(m.Group(1), "hr") && !strings.Contains(m.Group(1), "hour") {
			continue
		}
		out = append(out, match{
			time: DetectedTime{Hh: m.Int(2), Mm: m.Int(3), Nn: Hours24},
			span: m.Group(1),
		})
	}
	return out
}

// informal 12-hour phrasings

func detectWordQualified12(e *Engine, st *callState) []match {
	var out []match
	for _, m := range rxscan.All(e.pats.wordQualified12, st.buf.Processed) {
		h := m.Int(2)
		if h < 1 || h > 12 {
			continue
		}
		nn := PM
		if m.Group(4) == "morning" {
			nn = AM
		}
		if h == 12 {
			nn = Hours24
		}
		out = append(out, match{
			time: DetectedTime{Hh: h, Mm: m.Int(3), Nn: nn},
			span: m.Group(1),
		})
	}
	return out
}

func detectPrefixedHour(e *Engine, st *callState) []match {
	var out []match
	for _, m := range rxscan.All(e.pats.prefixedHour, st.buf.Processed) {
		h, mm := m.Int(2), m.Int(3)
		if h > 23 {
			continue
		}
		nn := Hours24
		if h >= 1 && h < 13 {
			nn = inferMeridiem(st.now, h, mm)
		}
		out = append(out, match{
			time: DetectedTime{Hh: h, Mm: mm, Nn: nn},
			span: m.Group(1),
		})
	}
	return out
}

func detectOClock(e *Engine, st *callState) []match {
	var out []match
	for _, m := range rxscan.All(e.pats.oclock, st.buf.Processed) {
		h := m.Int(2)
		if h < 1 || h > 12 {
			continue
		}
		out = append(out, match{
			time: DetectedTime{Hh: h, Nn: inferMeridiem(st.now, h, 0)},
			span: m.Group(1),
		})
	}
	return out
}

// day-part fallback; only consulted when nothing else fired

var dayPartRanges = map[string][2]DetectedTime{
	"morning":   {{Hh: 8, Nn: Hours24}, {Hh: 12, Nn: Hours24}},
	"afternoon": {{Hh: 12, Nn: Hours24}, {Hh: 16, Nn: Hours24}},
	"evening":   {{Hh: 16, Nn: Hours24}, {Hh: 20, Nn: Hours24}},
	"night":     {{Hh: 20, Nn: Hours24}, {Hh: 23, Mm: 59, Nn: Hours24}},
	"tonight":   {{Hh: 20, Nn: Hours24}, {Hh: 23, Mm: 59, Nn: Hours24}},
}

var dayPartAny = [2]DetectedTime{{Hh: 0, Nn: Hours24}, {Hh: 23, Mm: 59, Nn: Hours24}}

func detectDayPart(e *Engine, st *callState) []match {
	var out []match
	for _, m := range rxscan.All(e.pats.dayPart, st.buf.Processed) {
		word := m.Group(1)
		pair, ok := dayPartRanges[word]
		if !ok {
			pair = dayPartAny
		}
		start, end := pair[0], pair[1]
		start.Range, end.Range = RangeStart, RangeEnd
		out = append(out,
			match{time: start, span: word},
			match{time: end, span: word},
		)
	}
	return out
}
