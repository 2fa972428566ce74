package dates

import (
	"testing"
	"time"

	"chatner/internal/core/lexicon"
)

func mustTable(t *testing.T, locale string) *lexicon.Table {
	t.Helper()
	tab, err := lexicon.Load(locale)
	if err != nil {
		t.Fatalf("load %s tables: %v", locale, err)
	}
	return tab
}

func mustEngine(t *testing.T, locale string, now time.Time, opts ...Option) *Engine {
	t.Helper()
	opts = append(opts, WithNow(func() time.Time { return now }))
	e, err := New(mustTable(t, locale), opts...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return e
}

func mustDetect(t *testing.T, e *Engine, in Input) []Detection {
	t.Helper()
	out, err := e.Detect(in)
	if err != nil {
		t.Fatalf("detect %q: %v", in.Text, err)
	}
	return out
}

func TestDetect_EmptyText(t *testing.T) {
	e := mustEngine(t, "en", time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	out := mustDetect(t, e, Input{Text: "   "})
	if out != nil {
		t.Fatalf("want nil for empty text, got %+v", out)
	}
}

func TestDetect_SpelledMonthPair(t *testing.T) {
	e := mustEngine(t, "en", time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	out := mustDetect(t, e, Input{Text: "can i travel from 16th august to 27th august"})
	if len(out) != 2 {
		t.Fatalf("want 2 detections, got %d: %+v", len(out), out)
	}
	for i, want := range []DetectedDate{
		{Dd: 16, Mm: 8, Yy: 2024, Type: Exact},
		{Dd: 27, Mm: 8, Yy: 2024, Type: Exact},
	} {
		if out[i].Date != want {
			t.Fatalf("detection %d: want %+v, got %+v", i, want, out[i].Date)
		}
	}
	if out[0].Span == out[1].Span {
		t.Fatalf("spans must be distinct substrings, both %q", out[0].Span)
	}
}

func TestDetect_Tomorrow(t *testing.T) {
	e := mustEngine(t, "en", time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	out := mustDetect(t, e, Input{Text: "remind me tomorrow"})
	if len(out) != 1 {
		t.Fatalf("want 1 detection, got %d: %+v", len(out), out)
	}
	want := DetectedDate{Dd: 11, Mm: 3, Yy: 2024, Type: Tomorrow}
	if out[0].Date != want {
		t.Fatalf("want %+v, got %+v", want, out[0].Date)
	}
	if out[0].Span != "tomorrow" {
		t.Fatalf("want span %q, got %q", "tomorrow", out[0].Span)
	}
}

func TestDetect_DayAfterTomorrowNotDoubled(t *testing.T) {
	e := mustEngine(t, "en", time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	out := mustDetect(t, e, Input{Text: "call me day after tomorrow"})
	if len(out) != 1 {
		t.Fatalf("want 1 detection, got %d: %+v", len(out), out)
	}
	want := DetectedDate{Dd: 12, Mm: 3, Yy: 2024, Type: DayAfter}
	if out[0].Date != want {
		t.Fatalf("want %+v, got %+v", want, out[0].Date)
	}
}

func TestDetect_EveryMondayPromotesToRepeat(t *testing.T) {
	// 2024-03-10 is a Sunday
	e := mustEngine(t, "en", time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	out := mustDetect(t, e, Input{Text: "i go to the gym every monday"})
	if len(out) != 1 {
		t.Fatalf("want 1 detection, got %d: %+v", len(out), out)
	}
	want := DetectedDate{Dd: 11, Mm: 3, Yy: 2024, Type: RepeatDay}
	if out[0].Date != want {
		t.Fatalf("want %+v, got %+v", want, out[0].Date)
	}
}

func TestDetect_NextWeekdaySkipsIntoFollowingWeek(t *testing.T) {
	// 2024-03-13 is a Wednesday; next friday is the 22nd, not the 15th
	e := mustEngine(t, "en", time.Date(2024, 3, 13, 9, 0, 0, 0, time.UTC))
	out := mustDetect(t, e, Input{Text: "let us meet next friday"})
	if len(out) != 1 {
		t.Fatalf("want 1 detection, got %d: %+v", len(out), out)
	}
	want := DetectedDate{Dd: 22, Mm: 3, Yy: 2024, Type: NextDay}
	if out[0].Date != want {
		t.Fatalf("want %+v, got %+v", want, out[0].Date)
	}
	if out[0].Span != "next friday" {
		t.Fatalf("want span %q, got %q", "next friday", out[0].Span)
	}
}

func TestDetect_ThisWeekdayIncludesToday(t *testing.T) {
	// 2024-03-13 is a Wednesday
	e := mustEngine(t, "en", time.Date(2024, 3, 13, 9, 0, 0, 0, time.UTC))
	out := mustDetect(t, e, Input{Text: "is it open this wednesday"})
	if len(out) != 1 {
		t.Fatalf("want 1 detection, got %d: %+v", len(out), out)
	}
	want := DetectedDate{Dd: 13, Mm: 3, Yy: 2024, Type: ThisDay}
	if out[0].Date != want {
		t.Fatalf("want %+v, got %+v", want, out[0].Date)
	}
}

func TestDetect_PastWeekdayConsumedSilently(t *testing.T) {
	e := mustEngine(t, "en", time.Date(2024, 3, 13, 9, 0, 0, 0, time.UTC))
	out := mustDetect(t, e, Input{Text: "i missed it last monday"})
	if len(out) != 0 {
		t.Fatalf("past weekday must not emit, got %+v", out)
	}
}

func TestDetect_InvalidCalendarDateFiltered(t *testing.T) {
	e := mustEngine(t, "en", time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	out := mustDetect(t, e, Input{Text: "my booking is on 31/11/2020"})
	if len(out) != 0 {
		t.Fatalf("november 31st must be filtered, got %+v", out)
	}
}

func TestDetect_NumericOrderPerLocale(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	e := mustEngine(t, "en", now)

	out := mustDetect(t, e, Input{Text: "arriving 2/3/2020", Locale: "en-IN"})
	if len(out) != 1 || out[0].Date.Dd != 2 || out[0].Date.Mm != 3 {
		t.Fatalf("day-first locale: want 2/3, got %+v", out)
	}

	out = mustDetect(t, e, Input{Text: "arriving 2/3/2020", Locale: "en-US"})
	if len(out) != 1 || out[0].Date.Dd != 3 || out[0].Date.Mm != 2 {
		t.Fatalf("month-first locale: want 3/2, got %+v", out)
	}
}

func TestDetect_NumericMonthFieldDisambiguates(t *testing.T) {
	// 25 cannot be a month, so the m/d/y reading must win even day-first
	e := mustEngine(t, "en", time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	out := mustDetect(t, e, Input{Text: "flight on 2/25/2020"})
	if len(out) != 1 {
		t.Fatalf("want 1 detection, got %+v", out)
	}
	want := DetectedDate{Dd: 25, Mm: 2, Yy: 2020, Type: Exact}
	if out[0].Date != want {
		t.Fatalf("want %+v, got %+v", want, out[0].Date)
	}
}

func TestDetect_TwoDigitYearPastReferenced(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	e := mustEngine(t, "en", now)

	out := mustDetect(t, e, Input{Text: "born on 14/08/92", PastReferenced: true})
	if len(out) != 1 || out[0].Date.Yy != 1992 {
		t.Fatalf("past-referenced 92 must expand to 1992, got %+v", out)
	}

	out = mustDetect(t, e, Input{Text: "expires 14/08/92"})
	if len(out) != 1 || out[0].Date.Yy != 2092 {
		t.Fatalf("forward-looking 92 must expand to 2092, got %+v", out)
	}
}

func TestDetect_DayRangeWithMonthRef(t *testing.T) {
	e := mustEngine(t, "en", time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	out := mustDetect(t, e, Input{Text: "available 10 - 15 of next month"})
	if len(out) != 2 {
		t.Fatalf("want 2 detections, got %d: %+v", len(out), out)
	}
	for i, want := range []DetectedDate{
		{Dd: 10, Mm: 4, Yy: 2024, Type: Exact},
		{Dd: 15, Mm: 4, Yy: 2024, Type: Exact},
	} {
		if out[i].Date != want {
			t.Fatalf("detection %d: want %+v, got %+v", i, want, out[i].Date)
		}
	}
}

func TestDetect_DayOnlyRollsForward(t *testing.T) {
	e := mustEngine(t, "en", time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))

	out := mustDetect(t, e, Input{Text: "reschedule it to the 21st"})
	if len(out) != 1 {
		t.Fatalf("want 1 detection, got %+v", out)
	}
	if want := (DetectedDate{Dd: 21, Mm: 3, Yy: 2024, Type: PossibleDay}); out[0].Date != want {
		t.Fatalf("want %+v, got %+v", want, out[0].Date)
	}

	out = mustDetect(t, e, Input{Text: "reschedule it to the 5th"})
	if len(out) != 1 {
		t.Fatalf("want 1 detection, got %+v", out)
	}
	if want := (DetectedDate{Dd: 5, Mm: 4, Yy: 2024, Type: PossibleDay}); out[0].Date != want {
		t.Fatalf("passed day must roll a month forward: want %+v, got %+v", want, out[0].Date)
	}
}

func TestDetect_SpelledDatePastRollsToNextYear(t *testing.T) {
	e := mustEngine(t, "en", time.Date(2024, 11, 20, 12, 0, 0, 0, time.UTC))
	out := mustDetect(t, e, Input{Text: "see you on 5th january"})
	if len(out) != 1 {
		t.Fatalf("want 1 detection, got %+v", out)
	}
	want := DetectedDate{Dd: 5, Mm: 1, Yy: 2025, Type: Exact}
	if out[0].Date != want {
		t.Fatalf("want %+v, got %+v", want, out[0].Date)
	}
}

func TestDetect_AfterNDays(t *testing.T) {
	e := mustEngine(t, "en", time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	out := mustDetect(t, e, Input{Text: "delivery after 4 days"})
	if len(out) != 1 {
		t.Fatalf("want 1 detection, got %+v", out)
	}
	want := DetectedDate{Dd: 14, Mm: 3, Yy: 2024, Type: NDaysAfter}
	if out[0].Date != want {
		t.Fatalf("want %+v, got %+v", want, out[0].Date)
	}
}

func TestDetect_EverydayBoundedByHorizon(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	e := mustEngine(t, "en", now)
	out := mustDetect(t, e, Input{Text: "the shop is open everyday"})
	if len(out) != DefaultHorizonDays {
		t.Fatalf("want %d expanded dates, got %d", DefaultHorizonDays, len(out))
	}
	first := DetectedDate{Dd: 10, Mm: 3, Yy: 2024, Type: Everyday}
	last := DetectedDate{Dd: 24, Mm: 3, Yy: 2024, Type: Everyday}
	if out[0].Date != first || out[len(out)-1].Date != last {
		t.Fatalf("want %+v..%+v, got %+v..%+v", first, last, out[0].Date, out[len(out)-1].Date)
	}
}

func TestDetect_EverydayExceptWeekends(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC) // Sunday
	e := mustEngine(t, "en", now)
	out := mustDetect(t, e, Input{Text: "classes run everyday except weekends"})
	if len(out) == 0 {
		t.Fatalf("want weekday expansion, got none")
	}
	for _, d := range out {
		if d.Date.Type != RepeatWeekdays {
			t.Fatalf("want repeat_weekdays, got %v", d.Date.Type)
		}
		wd := time.Date(d.Date.Yy, time.Month(d.Date.Mm), d.Date.Dd, 0, 0, 0, 0, time.UTC).Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			t.Fatalf("weekend date leaked into weekday expansion: %+v", d.Date)
		}
	}
}

func TestDetect_NthWeekOfMonth(t *testing.T) {
	e := mustEngine(t, "en", time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	out := mustDetect(t, e, Input{Text: "visiting in the first week of january"})
	if len(out) != 2 {
		t.Fatalf("want week start and end, got %+v", out)
	}
	if out[0].Date.Dd != 1 || out[1].Date.Dd != 7 || out[0].Date.Mm != 1 {
		t.Fatalf("want days 1..7 of january, got %+v", out)
	}
}

func TestDetect_BadTimezoneFallsBackToUTC(t *testing.T) {
	e := mustEngine(t, "en", time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	out := mustDetect(t, e, Input{Text: "remind me tomorrow", Timezone: "not/a-zone"})
	if len(out) != 1 || out[0].Date.Dd != 11 {
		t.Fatalf("bad timezone must degrade to UTC, got %+v", out)
	}
}

func TestDetect_TimezoneAliasShiftsDay(t *testing.T) {
	// 2024-03-10 20:00 UTC is already the 11th in Kolkata
	e := mustEngine(t, "en", time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC))
	out := mustDetect(t, e, Input{Text: "remind me today", Timezone: "ist"})
	if len(out) != 1 {
		t.Fatalf("want 1 detection, got %+v", out)
	}
	want := DetectedDate{Dd: 11, Mm: 3, Yy: 2024, Type: Today}
	if out[0].Date != want {
		t.Fatalf("want %+v, got %+v", want, out[0].Date)
	}
}

func TestDetect_HindiRelativeDay(t *testing.T) {
	e := mustEngine(t, "hi", time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	out := mustDetect(t, e, Input{Text: "कल मिलते हैं"})
	if len(out) != 1 {
		t.Fatalf("want 1 detection, got %+v", out)
	}
	want := DetectedDate{Dd: 11, Mm: 3, Yy: 2024, Type: Tomorrow}
	if out[0].Date != want {
		t.Fatalf("want %+v, got %+v", want, out[0].Date)
	}
}

func TestDetect_SpansDoNotOverlap(t *testing.T) {
	e := mustEngine(t, "en", time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	out := mustDetect(t, e, Input{
		Text: "fly out 16th august and return tomorrow or next friday",
	})
	if len(out) < 3 {
		t.Fatalf("want 3 detections, got %+v", out)
	}
	seen := map[string]bool{}
	for _, d := range out {
		if d.Span == "" {
			t.Fatalf("empty span in %+v", d)
		}
		if seen[d.Span] {
			t.Fatalf("span %q claimed twice", d.Span)
		}
		seen[d.Span] = true
	}
}

func TestDetect_DeterministicAcrossCalls(t *testing.T) {
	e := mustEngine(t, "en", time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	in := Input{Text: "16th august to 27th august, then tomorrow"}
	a := mustDetect(t, e, in)
	b := mustDetect(t, e, in)
	if len(a) != len(b) {
		t.Fatalf("repeat call changed result count: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("repeat call changed detection %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}
