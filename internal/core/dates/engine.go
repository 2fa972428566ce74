// Package dates implements the date detection engine: an ordered battery of
// regex and literal-index detectors applied over a progressively shrinking
// text buffer, locale-aware ordering for numeric day/month ambiguity, and
// end-stage calendar validation
package dates

import (
	"strings"
	"time"

	"chatner/internal/core/lexicon"
	"chatner/internal/core/textbuf"
	perr "chatner/internal/platform/errors"
	"chatner/internal/platform/logger"
)

// DefaultHorizonDays bounds recurrence expansion ("everyday", "weekends")
const DefaultHorizonDays = 15

// Engine runs the date battery for one locale table. Construct once, use
// from any number of goroutines; per-call state lives in callState
type Engine struct {
	tab     *lexicon.Table
	pats    *patterns
	horizon int
	now     func() time.Time
	log     *logger.Logger

	defaultPipe []detector
	localePipes map[string][]detector
}

// Option mutates the engine during New
type Option func(*Engine)

// WithHorizon overrides the recurrence expansion horizon in days
func WithHorizon(days int) Option {
	return func(e *Engine) {
		if days > 0 {
			e.horizon = days
		}
	}
}

// WithNow injects the wall clock; tests pin it to a fixed instant
func WithNow(fn func() time.Time) Option {
	return func(e *Engine) {
		if fn != nil {
			e.now = fn
		}
	}
}

// detector is one ordered battery step
type detector struct {
	name string
	run  func(e *Engine, st *callState) []match
}

// match is one detector result; suppressed matches consume their span
// without emitting a value
type match struct {
	date     DetectedDate
	span     string
	suppress bool
}

// callState is the per-call working set
type callState struct {
	buf *textbuf.Buffer
	now time.Time
	in  Input
}

// New builds an engine over an already loaded locale table. The detector
// pipelines (default order plus per-country overrides) are assembled here
// once, not re-derived on each call
func New(tab *lexicon.Table, opts ...Option) (*Engine, error) {
	if tab == nil {
		return nil, perr.Configf("dates: nil lexicon table")
	}
	e := &Engine{
		tab:     tab,
		pats:    compilePatterns(tab),
		horizon: DefaultHorizonDays,
		now:     time.Now,
		log:     logger.Named("dates"),
	}
	for _, o := range opts {
		o(e)
	}
	e.buildPipelines()
	return e, nil
}

// registry returns every detector in the default battery order
func (e *Engine) registry() []detector {
	return []detector{
		{"ymd_numeric", detectYMDNumeric},
		{"dmy_numeric", detectDMYNumeric},
		{"mdy_numeric", detectMDYNumeric},
		{"day_range", detectDayRange},
		{"day_month_spelled", detectDayMonth},
		{"month_day_spelled", detectMonthDay},
		{"ordinal_word_month", detectOrdinalWordMonth},
		{"relative_day", detectRelativeDay},
		{"after_n_days", detectAfterNDays},
		{"weekday_relative", detectWeekdayRelative},
		{"day_only", detectDayOnly},
		{"nth_week_of_month", detectNthWeekOfMonth},
		{"recur_except", detectRecurExcept},
		{"recur_weekdays", detectRecurWeekdays},
		{"recur_weekends", detectRecurWeekends},
		{"recur_everyday", detectRecurEveryday},
	}
}

// localeOverrides maps a country code to the detectors that must run first
// there. The default order is day-first; month-first countries pull the
// m/d/y detector ahead
var localeOverrides = map[string][]string{
	"US": {"ymd_numeric", "mdy_numeric"},
	"PH": {"ymd_numeric", "mdy_numeric"},
}

func (e *Engine) buildPipelines() {
	reg := e.registry()
	e.defaultPipe = reg
	e.localePipes = make(map[string][]detector, len(localeOverrides))

	byName := make(map[string]detector, len(reg))
	for _, d := range reg {
		byName[d.name] = d
	}
	for country, names := range localeOverrides {
		pipe := make([]detector, 0, len(reg))
		inOverride := make(map[string]bool, len(names))
		for _, n := range names {
			if d, ok := byName[n]; ok {
				pipe = append(pipe, d)
				inOverride[n] = true
			}
		}
		for _, d := range reg {
			if !inOverride[d.name] {
				pipe = append(pipe, d)
			}
		}
		e.localePipes[country] = pipe
	}
}

// pipelineFor picks the battery order for a locale like "en-US". An unknown
// or empty locale falls back to the default order
func (e *Engine) pipelineFor(locale string) []detector {
	if i := strings.LastIndexByte(locale, '-'); i >= 0 {
		country := strings.ToUpper(locale[i+1:])
		if pipe, ok := e.localePipes[country]; ok {
			return pipe
		}
	}
	return e.defaultPipe
}

// Detect runs the ordered battery over in.Text and returns the calendar
// validated detections in battery order. An empty result is the normal
// outcome for text with no date content
func (e *Engine) Detect(in Input) ([]Detection, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, nil
	}

	loc := e.resolveZone(in.Timezone)
	st := &callState{
		buf: textbuf.New(in.Text),
		now: e.now().In(loc),
		in:  in,
	}

	acc := &accumulator{}
	for _, d := range e.pipelineFor(in.Locale) {
		ms := d.run(e, st)
		if len(ms) == 0 {
			continue
		}
		spans := make([]string, 0, len(ms))
		for _, m := range ms {
			spans = append(spans, m.span)
			if !m.suppress {
				acc.add(m.date, m.span)
			}
		}
		st.buf.Consume(spans, textbuf.Remove)
	}

	e.promoteRepeats(st, acc)
	return e.validate(acc.out), nil
}

// resolveZone maps a timezone input to a location: table alias first, then
// IANA lookup. Bad zones degrade to UTC with a warning, never an error
func (e *Engine) resolveZone(tz string) *time.Location {
	tz = strings.TrimSpace(tz)
	if tz == "" {
		return time.UTC
	}
	if z, ok := e.tab.ZoneAlias(tz); ok {
		tz = z.Name
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		e.log.Warn().Str("tz", tz).Msg("unparseable timezone, falling back to UTC")
		return time.UTC
	}
	return loc
}

// promoteRepeats upgrades weekday detections to repeat_day when an
// every/daily/always qualifier is present anywhere in the untouched
// original text
func (e *Engine) promoteRepeats(st *callState, acc *accumulator) {
	if !e.pats.repeatQualifier.MatchString(strings.ToLower(st.in.Text)) {
		return
	}
	for i := range acc.out {
		if acc.out[i].Date.Type == ThisDay || acc.out[i].Date.Type == NextDay {
			acc.out[i].Date.Type = RepeatDay
		}
	}
}

// validate is the end-stage calendar filter: exact-derived candidates that
// do not name a real date are dropped, not surfaced as errors. Earlier
// stages deliberately emit structurally plausible guesses
func (e *Engine) validate(in []Detection) []Detection {
	out := in[:0]
	for _, d := range in {
		if d.Date.Type.IsExactDerived() && !validDate(d.Date.Yy, d.Date.Mm, d.Date.Dd) {
			continue
		}
		out = append(out, d)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
