// Package clock implements the time-of-day detection engine: an ordered
// battery of regex detectors over a progressively tagged text buffer, with
// meridiem inference for unmarked hours, range handling, relative offsets,
// and recurrence intervals
package clock

import (
	"strings"
	"time"

	"chatner/internal/core/lexicon"
	"chatner/internal/core/textbuf"
	perr "chatner/internal/platform/errors"
	"chatner/internal/platform/logger"
)

// Engine runs the time battery. Construct once, use from any number of
// goroutines; per-call state lives in callState
type Engine struct {
	tab  *lexicon.Table
	pats *patterns
	now  func() time.Time
	log  *logger.Logger

	pipe []detector
}

// Option mutates the engine during New
type Option func(*Engine)

// WithNow injects the wall clock; tests pin it to a fixed instant
func WithNow(fn func() time.Time) Option {
	return func(e *Engine) {
		if fn != nil {
			e.now = fn
		}
	}
}

type detector struct {
	name string
	run  func(e *Engine, st *callState) []match
}

type match struct {
	time DetectedTime
	span string
}

type callState struct {
	buf *textbuf.Buffer
	now time.Time
	in  Input
}

// New builds an engine over a loaded locale table; the table supplies the
// timezone aliases, the time patterns themselves are compiled locally
func New(tab *lexicon.Table, opts ...Option) (*Engine, error) {
	if tab == nil {
		return nil, perr.Configf("clock: nil lexicon table")
	}
	e := &Engine{
		tab:  tab,
		pats: compilePatterns(),
		now:  time.Now,
		log:  logger.Named("clock"),
	}
	for _, o := range opts {
		o(e)
	}
	e.pipe = []detector{
		{"range_12h", detectRangeTwoSided12},
		{"range_one_sided", detectRangeOneSided},
		{"range_24h", detectRangeTwoSided24},
		{"abs_12h", detectAbs12},
		{"rel_diff", detectRelDiff},
		{"recurrence", detectRecurrence},
		{"bare_24h", detectBare24},
		{"restricted_24h", detectRestricted24},
		{"word_qualified_12h", detectWordQualified12},
		{"prefixed_hour", detectPrefixedHour},
		{"oclock", detectOClock},
	}
	return e, nil
}

// Detect runs the ordered battery over in.Text. When no detector fires, the
// coarse day-part fallback maps words like "morning" to fixed ranges. An
// empty result is the normal outcome for text with no time content
func (e *Engine) Detect(in Input) ([]Detection, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, nil
	}

	zone, zoneName := e.resolveZone(in.Timezone)
	st := &callState{
		buf: textbuf.New(in.Text),
		now: e.now().In(zone),
		in:  in,
	}

	acc := &accumulator{}
	for _, d := range e.pipe {
		ms := d.run(e, st)
		if len(ms) == 0 {
			continue
		}
		spans := make([]string, 0, len(ms))
		for _, m := range ms {
			spans = append(spans, m.span)
			acc.add(m.time, m.span)
		}
		// tag substitution keeps positions stable for cross-entity passes
		st.buf.Consume(spans, textbuf.Tag)
	}

	if len(acc.out) == 0 {
		for _, m := range detectDayPart(e, st) {
			acc.add(m.time, m.span)
		}
	}

	e.tagTravelDirection(in, acc)

	out := acc.out
	if !in.RangeEnabled {
		out = dropRanges(out)
	}
	if zoneName != "" {
		for i := range out {
			out[i].Time.Tz = zoneName
		}
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

// resolveZone maps a timezone input to a location plus its IANA name: table
// alias first, then direct IANA lookup. Bad zones degrade to UTC with a
// warning, never an error
func (e *Engine) resolveZone(tz string) (*time.Location, string) {
	tz = strings.TrimSpace(tz)
	if tz == "" {
		return time.UTC, ""
	}
	if z, ok := e.tab.ZoneAlias(tz); ok {
		tz = z.Name
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		e.log.Warn().Str("tz", tz).Msg("unparseable timezone, falling back to UTC")
		return time.UTC, ""
	}
	return loc, tz
}

// tagTravelDirection stamps every range detection with departure or return
// when the message or the prior bot prompt carries the keyword
func (e *Engine) tagTravelDirection(in Input, acc *accumulator) {
	ctx := strings.ToLower(in.Text + " " + in.BotMessage)
	var tt TimeType
	switch {
	case strings.Contains(ctx, "depart"):
		tt = Departure
	case strings.Contains(ctx, "return"):
		tt = Return
	default:
		return
	}
	for i := range acc.out {
		if acc.out[i].Time.Range != "" {
			acc.out[i].Time.TimeType = tt
		}
	}
}

// dropRanges filters range-marked detections; the detectors already ran and
// consumed their text, so suppression cannot cause double detection later
func dropRanges(in []Detection) []Detection {
	out := in[:0]
	for _, d := range in {
		if d.Time.Range != "" {
			continue
		}
		out = append(out, d)
	}
	return out
}
