package clock

// Meridiem classifies how a detected time's hour and minute fields read
type Meridiem string

const (
	// AM and PM are explicit or inferred 12-hour halves
	AM Meridiem = "am"
	PM Meridiem = "pm"
	// Hours24 marks unambiguous 24-hour notation
	Hours24 Meridiem = "hrs"
	// Diff marks a relative offset; hh/mm are a duration from now, not a clock time
	Diff Meridiem = "df"
	// Every marks a recurrence interval; hh/mm are the period length
	Every Meridiem = "ev"
)

// Range marks one side of a detected time range
type Range string

const (
	RangeStart Range = "start"
	RangeEnd   Range = "end"
)

// TimeType tags a range with the travel direction inferred from surrounding text
type TimeType string

const (
	Departure TimeType = "departure"
	Return    TimeType = "return"
)

// DetectedTime is one resolved time value
type DetectedTime struct {
	Hh       int      `json:"hh"`
	Mm       int      `json:"mm"`
	Nn       Meridiem `json:"nn"`
	Tz       string   `json:"tz,omitempty"`
	Range    Range    `json:"range,omitempty"`
	TimeType TimeType `json:"time_type,omitempty"`
}

// Detection pairs a detected time with the exact substring that produced it
type Detection struct {
	Time DetectedTime `json:"time"`
	Span string       `json:"span"`
}

// Input is one detection request
type Input struct {
	Text     string
	Timezone string
	// BotMessage is the prior bot prompt, probed for departure/return context
	BotMessage string
	// RangeEnabled keeps range-marked detections in the output; when false the
	// range detectors still run and consume text but their results are dropped
	RangeEnabled bool
	// FormCheck enables bare HH:MM parsing, safe for structured form fields
	// but too ambiguous for free chat text
	FormCheck bool
}

type accumulator struct {
	out []Detection
}

func (a *accumulator) add(t DetectedTime, span string) {
	a.out = append(a.out, Detection{Time: t, Span: span})
}
