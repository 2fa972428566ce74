package dates

import (
	"encoding/json"
	"fmt"
)

// DateType classifies how a detected date was derived
type DateType int

const (
	// Exact is a fully specified calendar date
	Exact DateType = iota
	// Today through DayBefore are relative-day keywords resolved against now
	Today
	Tomorrow
	Yesterday
	DayAfter
	DayBefore
	// NDaysAfter is "after N days" arithmetic
	NDaysAfter
	// NextDay is a weekday in the next calendar week
	NextDay
	// ThisDay is a weekday within the coming week, today included
	ThisDay
	// PossibleDay is a bare day number with month and year inferred
	PossibleDay
	// Everyday through RepeatDay are recurrence expansions
	Everyday
	Weekdays
	Weekends
	RepeatWeekdays
	RepeatWeekends
	RepeatDay
)

var dateTypeNames = [...]string{
	Exact:          "exact",
	Today:          "today",
	Tomorrow:       "tomorrow",
	Yesterday:      "yesterday",
	DayAfter:       "day_after",
	DayBefore:      "day_before",
	NDaysAfter:     "n_days_after",
	NextDay:        "next_day",
	ThisDay:        "this_day",
	PossibleDay:    "possible_day",
	Everyday:       "everyday",
	Weekdays:       "weekdays",
	Weekends:       "weekends",
	RepeatWeekdays: "repeat_weekdays",
	RepeatWeekends: "repeat_weekends",
	RepeatDay:      "repeat_day",
}

var dateTypeFromName = func() map[string]DateType {
	m := make(map[string]DateType, len(dateTypeNames))
	for i, n := range dateTypeNames {
		m[n] = DateType(i)
	}
	return m
}()

// String returns the wire name of the type
func (t DateType) String() string {
	if int(t) >= 0 && int(t) < len(dateTypeNames) {
		return dateTypeNames[t]
	}
	return fmt.Sprintf("DateType(%d)", int(t))
}

// MarshalJSON encodes the type as its wire name
func (t DateType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes a wire name into a DateType
func (t *DateType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	tt, ok := dateTypeFromName[s]
	if !ok {
		return fmt.Errorf("dates: unknown date type %q", s)
	}
	*t = tt
	return nil
}

// IsExactDerived reports whether the type must resolve to a calendar-valid
// single date (and is therefore subject to the end-stage validation filter)
func (t DateType) IsExactDerived() bool {
	switch t {
	case Exact, Today, Tomorrow, Yesterday, DayAfter, DayBefore,
		NDaysAfter, NextDay, ThisDay, PossibleDay:
		return true
	}
	return false
}

// DetectedDate is one resolved date value
type DetectedDate struct {
	Dd   int      `json:"dd"`
	Mm   int      `json:"mm"`
	Yy   int      `json:"yy"`
	Type DateType `json:"type"`
}

// Detection pairs a detected date with the exact substring that produced it
type Detection struct {
	Date DetectedDate `json:"date"`
	Span string       `json:"span"`
}

// Input carries one detection request
type Input struct {
	Text           string
	Locale         string // e.g. "en-US"; only the country part steers detector order
	Timezone       string // IANA name or informal alias; empty means UTC
	PastReferenced bool   // two-digit years may expand into the previous century
	BotMessage     string
}

// accumulator threads detections through the pipeline; each detector appends,
// never mutates earlier entries
type accumulator struct {
	out []Detection
}

func (a *accumulator) add(d DetectedDate, span string) {
	a.out = append(a.out, Detection{Date: d, Span: span})
}
