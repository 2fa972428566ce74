package clock

import (
	"testing"
	"time"

	"chatner/internal/core/lexicon"
)

func mustEngine(t *testing.T, now time.Time) *Engine {
	t.Helper()
	tab, err := lexicon.Load("en")
	if err != nil {
		t.Fatalf("load en tables: %v", err)
	}
	e, err := New(tab, WithNow(func() time.Time { return now }))
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

func TestDetect_ExplicitPM(t *testing.T) {
	e := mustEngine(t, time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	out := mustDetect(t, e, Input{Text: "pick me up at 9 pm"})
	if len(out) != 1 {
		t.Fatalf("want 1 detection, got %+v", out)
	}
	want := DetectedTime{Hh: 9, Mm: 0, Nn: PM}
	if out[0].Time != want {
		t.Fatalf("want %+v, got %+v", want, out[0].Time)
	}
	if out[0].Span != "9 pm" {
		t.Fatalf("want span %q, got %q", "9 pm", out[0].Span)
	}
}

func TestDetect_RelativeMinutes(t *testing.T) {
	e := mustEngine(t, time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	out := mustDetect(t, e, Input{Text: "call back in 15 mins"})
	if len(out) != 1 {
		t.Fatalf("want 1 detection, got %+v", out)
	}
	want := DetectedTime{Hh: 0, Mm: 15, Nn: Diff}
	if out[0].Time != want {
		t.Fatalf("want %+v, got %+v", want, out[0].Time)
	}
}

func TestDetect_RelativeHoursLater(t *testing.T) {
	e := mustEngine(t, time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	out := mustDetect(t, e, Input{Text: "ready 2 hours from now"})
	if len(out) != 1 {
		t.Fatalf("want 1 detection, got %+v", out)
	}
	want := DetectedTime{Hh: 2, Mm: 0, Nn: Diff}
	if out[0].Time != want {
		t.Fatalf("want %+v, got %+v", want, out[0].Time)
	}
}

func TestDetect_TwoSidedRangeInheritsMeridiem(t *testing.T) {
	e := mustEngine(t, time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	out := mustDetect(t, e, Input{Text: "free from 3 to 5pm", RangeEnabled: true})
	if len(out) != 2 {
		t.Fatalf("want start and end, got %+v", out)
	}
	if out[0].Time.Range != RangeStart || out[1].Time.Range != RangeEnd {
		t.Fatalf("want start/end pair, got %+v", out)
	}
	if out[0].Time.Nn != PM || out[0].Time.Hh != 3 {
		t.Fatalf("start must inherit the end meridiem: %+v", out[0].Time)
	}
	if out[1].Time.Hh != 5 || out[1].Time.Nn != PM {
		t.Fatalf("want 5pm end, got %+v", out[1].Time)
	}
}

func TestDetect_RangeSuppressedWhenDisabled(t *testing.T) {
	e := mustEngine(t, time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	out := mustDetect(t, e, Input{Text: "free from 3 to 5pm", RangeEnabled: false})
	if len(out) != 0 {
		t.Fatalf("range output must be suppressed, got %+v", out)
	}

	// the range text is still consumed: the bare 5 must not resurface as a
	// prefixed-hour match in the same call
	out = mustDetect(t, e, Input{Text: "free from 3 to 5pm, say at 7 pm"})
	if len(out) != 1 || out[0].Time.Hh != 7 {
		t.Fatalf("want only the 7 pm detection, got %+v", out)
	}
}

func TestDetect_OneSidedRange(t *testing.T) {
	e := mustEngine(t, time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	out := mustDetect(t, e, Input{Text: "any slot after 3:30 pm works", RangeEnabled: true})
	if len(out) != 1 {
		t.Fatalf("want 1 detection, got %+v", out)
	}
	want := DetectedTime{Hh: 3, Mm: 30, Nn: PM, Range: RangeStart}
	if out[0].Time != want {
		t.Fatalf("want %+v, got %+v", want, out[0].Time)
	}
}

func TestDetect_TwentyFourHourRange(t *testing.T) {
	e := mustEngine(t, time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	out := mustDetect(t, e, Input{Text: "shift runs 1400 - 1600 hrs", RangeEnabled: true})
	if len(out) != 2 {
		t.Fatalf("want start and end, got %+v", out)
	}
	if out[0].Time.Hh != 14 || out[0].Time.Nn != Hours24 || out[1].Time.Hh != 16 {
		t.Fatalf("want 14:00..16:00 hrs, got %+v", out)
	}
}

func TestDetect_DepartureTagging(t *testing.T) {
	e := mustEngine(t, time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	out := mustDetect(t, e, Input{
		Text:         "9 am to 11 am",
		BotMessage:   "when do you want to depart?",
		RangeEnabled: true,
	})
	if len(out) != 2 {
		t.Fatalf("want start and end, got %+v", out)
	}
	for _, d := range out {
		if d.Time.TimeType != Departure {
			t.Fatalf("range must carry departure tag, got %+v", d.Time)
		}
	}
}

func TestDetect_BareClockGatedByFormCheck(t *testing.T) {
	e := mustEngine(t, time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))

	out := mustDetect(t, e, Input{Text: "09:30", FormCheck: true})
	if len(out) != 1 {
		t.Fatalf("form input must parse bare clock, got %+v", out)
	}
	want := DetectedTime{Hh: 9, Mm: 30, Nn: Hours24}
	if out[0].Time != want {
		t.Fatalf("want %+v, got %+v", want, out[0].Time)
	}

	out = mustDetect(t, e, Input{Text: "09:30"})
	if len(out) != 0 {
		t.Fatalf("chat input must not parse bare clock, got %+v", out)
	}
}

func TestDetect_RestrictedTwentyFourHour(t *testing.T) {
	e := mustEngine(t, time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))

	out := mustDetect(t, e, Input{Text: "landing at 1530"})
	if len(out) != 1 {
		t.Fatalf("want 1 detection, got %+v", out)
	}
	want := DetectedTime{Hh: 15, Mm: 30, Nn: Hours24}
	if out[0].Time != want {
		t.Fatalf("want %+v, got %+v", want, out[0].Time)
	}

	out = mustDetect(t, e, Input{Text: "we are 15 people"})
	if len(out) != 0 {
		t.Fatalf("bare count must not become a time, got %+v", out)
	}
}

func TestDetect_MorningQualifier(t *testing.T) {
	e := mustEngine(t, time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	out := mustDetect(t, e, Input{Text: "pick up at 9 in the morning"})
	if len(out) != 1 {
		t.Fatalf("want 1 detection, got %+v", out)
	}
	if out[0].Time.Hh != 9 || out[0].Time.Nn != AM {
		t.Fatalf("want 9 am, got %+v", out[0].Time)
	}
}

func TestDetect_PrefixedHourInfersNextOccurrence(t *testing.T) {
	// 08:00: "at 9" is still ahead in the morning half
	e := mustEngine(t, time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC))
	out := mustDetect(t, e, Input{Text: "see you at 9"})
	if len(out) != 1 || out[0].Time.Nn != AM {
		t.Fatalf("before 9am the next 9 is am, got %+v", out)
	}

	// 10:00: 9am has passed, next occurrence is 9pm
	e = mustEngine(t, time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC))
	out = mustDetect(t, e, Input{Text: "see you at 9"})
	if len(out) != 1 || out[0].Time.Nn != PM {
		t.Fatalf("after 9am the next 9 is pm, got %+v", out)
	}
}

func TestDetect_OClock(t *testing.T) {
	e := mustEngine(t, time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC))
	out := mustDetect(t, e, Input{Text: "dinner at 9 o'clock"})
	if len(out) != 1 {
		t.Fatalf("want 1 detection, got %+v", out)
	}
	if out[0].Time.Hh != 9 || out[0].Time.Nn != AM {
		t.Fatalf("want 9 am, got %+v", out[0].Time)
	}
}

func TestDetect_EveryNHours(t *testing.T) {
	e := mustEngine(t, time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	out := mustDetect(t, e, Input{Text: "take one every 6 hours"})
	if len(out) != 1 {
		t.Fatalf("want 1 detection, got %+v", out)
	}
	want := DetectedTime{Hh: 6, Mm: 0, Nn: Every}
	if out[0].Time != want {
		t.Fatalf("want %+v, got %+v", want, out[0].Time)
	}
}

func TestDetect_TwiceADay(t *testing.T) {
	e := mustEngine(t, time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	out := mustDetect(t, e, Input{Text: "apply twice a day"})
	if len(out) != 1 {
		t.Fatalf("want 1 detection, got %+v", out)
	}
	want := DetectedTime{Hh: 12, Mm: 0, Nn: Every}
	if out[0].Time != want {
		t.Fatalf("want %+v, got %+v", want, out[0].Time)
	}
}

func TestDetect_DayPartFallback(t *testing.T) {
	e := mustEngine(t, time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))
	out := mustDetect(t, e, Input{Text: "sometime in the evening", RangeEnabled: true})
	if len(out) != 2 {
		t.Fatalf("want coarse range, got %+v", out)
	}
	if out[0].Time.Hh != 16 || out[1].Time.Hh != 20 {
		t.Fatalf("want evening 16..20, got %+v", out)
	}

	// the fallback never runs when a real detector fired
	out = mustDetect(t, e, Input{Text: "9 pm in the evening", RangeEnabled: true})
	if len(out) != 1 || out[0].Time.Nn != PM {
		t.Fatalf("explicit time must pre-empt the day-part fallback, got %+v", out)
	}
}

func TestDetect_TimezoneStamped(t *testing.T) {
	// 20:00 UTC is 01:30 in Kolkata, so "at 9" is 9 am there
	e := mustEngine(t, time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC))
	out := mustDetect(t, e, Input{Text: "call me at 9", Timezone: "ist"})
	if len(out) != 1 {
		t.Fatalf("want 1 detection, got %+v", out)
	}
	if out[0].Time.Tz != "Asia/Kolkata" {
		t.Fatalf("want resolved IANA zone, got %q", out[0].Time.Tz)
	}
	if out[0].Time.Nn != AM {
		t.Fatalf("meridiem must resolve in the supplied zone, got %+v", out[0].Time)
	}
}

func TestInferMeridiem_Pure(t *testing.T) {
	now := time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC)
	first := inferMeridiem(now, 9, 0)
	for i := 0; i < 5; i++ {
		if got := inferMeridiem(now, 9, 0); got != first {
			t.Fatalf("inference changed across calls: %v vs %v", first, got)
		}
	}
	if inferMeridiem(now, 0, 30) != Hours24 || inferMeridiem(now, 12, 0) != Hours24 {
		t.Fatalf("hour 0 and 12+ must report hrs")
	}
}
