// Package service contains the entity detection workflows. One Svc holds an
// engine set per language, constructed eagerly so a bad lexicon table fails
// the process at startup instead of the first request
package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"chatner/internal/core/clock"
	"chatner/internal/core/dates"
	"chatner/internal/core/lexicon"
	"chatner/internal/core/normalize"
	"chatner/internal/core/scalar"
	"chatner/internal/core/version"
	perr "chatner/internal/platform/errors"
	"chatner/internal/platform/logger"
	pnet "chatner/internal/platform/net"
	detdom "chatner/internal/services/detections/domain"
	"chatner/internal/services/entities/domain"
	gazdom "chatner/internal/services/gazetteer/domain"
)

// DefaultBatchWorkers bounds batch fan-out concurrency
const DefaultBatchWorkers = 8

// Service defines the entities service contract
type Service interface {
	domain.ServicePort
}

// engineSet bundles the per-language engines built over one lexicon table
type engineSet struct {
	dates  *dates.Engine
	clock  *clock.Engine
	scalar *scalar.Detector
}

// Svc implements the entities service
type Svc struct {
	log  *logger.Logger
	norm *normalize.Normalizer
	sets map[string]*engineSet
	def  string

	places  gazdom.ReaderPort
	sink    detdom.SinkPort
	workers int
	nowOpt  func() time.Time
}

// Option mutates the service during New
type Option func(*Svc)

// WithPlaces wires the gazetteer reader used by the city handler
func WithPlaces(p gazdom.ReaderPort) Option {
	return func(s *Svc) { s.places = p }
}

// WithSink wires the detection event sink
func WithSink(sink detdom.SinkPort) Option {
	return func(s *Svc) { s.sink = sink }
}

// WithBatchWorkers overrides the batch fan-out bound
func WithBatchWorkers(n int) Option {
	return func(s *Svc) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithNow pins the engine clocks; tests use a fixed instant
func WithNow(fn func() time.Time) Option {
	return func(s *Svc) { s.nowOpt = fn }
}

// New loads one lexicon table per language and builds the engines over it
// the first language is the fallback for unknown locales
func New(langs []string, opts ...Option) (*Svc, error) {
	if len(langs) == 0 {
		return nil, perr.Configf("entities: no languages configured")
	}
	s := &Svc{
		log:     logger.Named("entities"),
		norm:    normalize.New(),
		sets:    make(map[string]*engineSet, len(langs)),
		workers: DefaultBatchWorkers,
	}
	for _, o := range opts {
		o(s)
	}

	var dOpts []dates.Option
	var cOpts []clock.Option
	if s.nowOpt != nil {
		dOpts = append(dOpts, dates.WithNow(s.nowOpt))
		cOpts = append(cOpts, clock.WithNow(s.nowOpt))
	}

	for _, lang := range langs {
		lang = strings.ToLower(strings.TrimSpace(lang))
		if lang == "" {
			continue
		}
		tab, err := lexicon.Load(lang)
		if err != nil {
			return nil, err
		}
		de, err := dates.New(tab, dOpts...)
		if err != nil {
			return nil, err
		}
		ce, err := clock.New(tab, cOpts...)
		if err != nil {
			return nil, err
		}
		sd, err := scalar.New(tab)
		if err != nil {
			return nil, err
		}
		s.sets[lang] = &engineSet{dates: de, clock: ce, scalar: sd}
		if s.def == "" {
			s.def = lang
		}
	}
	if s.def == "" {
		return nil, perr.Configf("entities: no languages configured")
	}
	return s, nil
}

// setFor resolves the engine set for a locale like "hi" or "en-US"
func (s *Svc) setFor(locale string) *engineSet {
	lang := strings.ToLower(locale)
	if i := strings.IndexByte(lang, '-'); i >= 0 {
		lang = lang[:i]
	}
	if set, ok := s.sets[lang]; ok {
		return set
	}
	return s.sets[s.def]
}

// source is one input layer in precedence order
type source struct {
	text   string
	method domain.Method
	form   bool
}

// sources orders the input layers: structured value, then the message, then
// the fallback value. Structured values opt in to strict form parsing.
// Every layer passes through the unicode normalizer before detection
func (s *Svc) sources(in domain.DetectInput) []source {
	out := make([]source, 0, 3)
	if v := s.norm.Normalize(in.StructuredValue); v != "" {
		out = append(out, source{text: v, method: domain.MethodStructured, form: true})
	}
	if v := s.norm.Normalize(in.Text); v != "" {
		out = append(out, source{text: v, method: domain.MethodMessage, form: in.FormCheck})
	}
	if v := s.norm.Normalize(in.FallbackValue); v != "" {
		out = append(out, source{text: v, method: domain.MethodFallback, form: true})
	}
	return out
}

// Date implements domain.ServicePort
func (s *Svc) Date(ctx context.Context, in domain.DetectInput) ([]domain.Entity, error) {
	started := time.Now()
	set := s.setFor(in.Locale)
	for _, src := range s.sources(in) {
		det, err := set.dates.Detect(dates.Input{
			Text:           src.text,
			Locale:         in.Locale,
			Timezone:       in.Timezone,
			PastReferenced: in.PastReferenced,
			BotMessage:     in.BotMessage,
		})
		if err != nil {
			return nil, err
		}
		if len(det) == 0 {
			continue
		}
		ents := make([]domain.Entity, len(det))
		for i, d := range det {
			ents[i] = domain.Entity{Value: d.Date, OriginalText: d.Span, Method: src.method}
		}
		s.emit(ctx, domain.TypeDate, in, src, ents, started)
		return ents, nil
	}
	return []domain.Entity{}, nil
}

// Time implements domain.ServicePort
func (s *Svc) Time(ctx context.Context, in domain.DetectInput) ([]domain.Entity, error) {
	started := time.Now()
	set := s.setFor(in.Locale)
	for _, src := range s.sources(in) {
		det, err := set.clock.Detect(clock.Input{
			Text:         src.text,
			Timezone:     in.Timezone,
			BotMessage:   in.BotMessage,
			RangeEnabled: in.RangeEnabled,
			FormCheck:    src.form,
		})
		if err != nil {
			return nil, err
		}
		if len(det) == 0 {
			continue
		}
		ents := make([]domain.Entity, len(det))
		for i, d := range det {
			ents[i] = domain.Entity{Value: d.Time, OriginalText: d.Span, Method: src.method}
		}
		s.emit(ctx, domain.TypeTime, in, src, ents, started)
		return ents, nil
	}
	return []domain.Entity{}, nil
}

// Number implements domain.ServicePort
func (s *Svc) Number(ctx context.Context, in domain.DetectInput) ([]domain.Entity, error) {
	return s.scalarDetect(ctx, domain.TypeNumber, in, func(d *scalar.Detector, text string) []domain.Entity {
		var ents []domain.Entity
		for _, n := range d.Numbers(text) {
			ents = append(ents, domain.Entity{Value: n.Value, OriginalText: n.Span})
		}
		return ents
	})
}

// Budget implements domain.ServicePort
func (s *Svc) Budget(ctx context.Context, in domain.DetectInput) ([]domain.Entity, error) {
	return s.scalarDetect(ctx, domain.TypeBudget, in, func(d *scalar.Detector, text string) []domain.Entity {
		var ents []domain.Entity
		for _, b := range d.Budgets(text) {
			ents = append(ents, domain.Entity{Value: b, OriginalText: b.Span})
		}
		return ents
	})
}

// Phone implements domain.ServicePort
func (s *Svc) Phone(ctx context.Context, in domain.DetectInput) ([]domain.Entity, error) {
	return s.scalarDetect(ctx, domain.TypePhone, in, func(d *scalar.Detector, text string) []domain.Entity {
		var ents []domain.Entity
		for _, p := range d.Phones(text) {
			ents = append(ents, domain.Entity{Value: p.Number, OriginalText: p.Span})
		}
		return ents
	})
}

// Email implements domain.ServicePort
func (s *Svc) Email(ctx context.Context, in domain.DetectInput) ([]domain.Entity, error) {
	return s.scalarDetect(ctx, domain.TypeEmail, in, func(d *scalar.Detector, text string) []domain.Entity {
		var ents []domain.Entity
		for _, e := range d.Emails(text) {
			ents = append(ents, domain.Entity{Value: e.Address, OriginalText: e.Span})
		}
		return ents
	})
}

// PNR implements domain.ServicePort
func (s *Svc) PNR(ctx context.Context, in domain.DetectInput) ([]domain.Entity, error) {
	return s.scalarDetect(ctx, domain.TypePNR, in, func(d *scalar.Detector, text string) []domain.Entity {
		var ents []domain.Entity
		for _, p := range d.PNRs(text) {
			ents = append(ents, domain.Entity{Value: p.Code, OriginalText: p.Span})
		}
		return ents
	})
}

// City implements domain.ServicePort via the gazetteer; without a configured
// reader the handler degrades to no matches
func (s *Svc) City(ctx context.Context, in domain.DetectInput) ([]domain.Entity, error) {
	if s.places == nil {
		return []domain.Entity{}, nil
	}
	started := time.Now()
	for _, src := range s.sources(in) {
		terms, err := s.places.Similar(ctx, "cities", src.text, gazLimit)
		if err != nil {
			return nil, err
		}
		if len(terms) == 0 {
			continue
		}
		ents := make([]domain.Entity, len(terms))
		for i, t := range terms {
			ents[i] = domain.Entity{Value: t.Term, OriginalText: src.text, Method: src.method}
		}
		s.emit(ctx, domain.TypeCity, in, src, ents, started)
		return ents, nil
	}
	return []domain.Entity{}, nil
}

const gazLimit = 5

// scalarDetect runs one scalar extractor over the layered sources
func (s *Svc) scalarDetect(
	ctx context.Context,
	typ domain.EntityType,
	in domain.DetectInput,
	run func(d *scalar.Detector, text string) []domain.Entity,
) ([]domain.Entity, error) {
	started := time.Now()
	set := s.setFor(in.Locale)
	for _, src := range s.sources(in) {
		ents := run(set.scalar, src.text)
		if len(ents) == 0 {
			continue
		}
		for i := range ents {
			ents[i].Method = src.method
		}
		s.emit(ctx, typ, in, src, ents, started)
		return ents, nil
	}
	return []domain.Entity{}, nil
}

// Detect implements domain.ServicePort
func (s *Svc) Detect(ctx context.Context, typ domain.EntityType, in domain.DetectInput) ([]domain.Entity, error) {
	switch typ {
	case domain.TypeDate:
		return s.Date(ctx, in)
	case domain.TypeTime:
		return s.Time(ctx, in)
	case domain.TypeNumber:
		return s.Number(ctx, in)
	case domain.TypeBudget:
		return s.Budget(ctx, in)
	case domain.TypePhone:
		return s.Phone(ctx, in)
	case domain.TypeEmail:
		return s.Email(ctx, in)
	case domain.TypePNR:
		return s.PNR(ctx, in)
	case domain.TypeCity:
		return s.City(ctx, in)
	default:
		return nil, perr.InvalidArgf("unknown entity type %q", typ)
	}
}

// Batch implements domain.ServicePort with a bounded worker fan-out
// results land at the index of their request
func (s *Svc) Batch(ctx context.Context, in domain.BatchInput) ([]domain.BatchResult, error) {
	out := make([]domain.BatchResult, len(in.Requests))
	sem := make(chan struct{}, s.workers)
	var wg sync.WaitGroup

	for i := range in.Requests {
		wg.Add(1)
		go func(i int, req domain.BatchItem) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			ents, err := s.Detect(ctx, req.Type, req.DetectInput)
			out[i] = domain.BatchResult{Type: req.Type, Entities: ents}
			if err != nil {
				out[i].Entities = []domain.Entity{}
				out[i].Error = err.Error()
			}
		}(i, in.Requests[i])
	}
	wg.Wait()
	return out, nil
}

// emit records the detection outcome; a nil sink makes this a no-op
func (s *Svc) emit(
	ctx context.Context,
	typ domain.EntityType,
	in domain.DetectInput,
	src source,
	ents []domain.Entity,
	started time.Time,
) {
	if s.sink == nil {
		return
	}
	reqID := pnet.RequestID(ctx)
	convID := pnet.ConversationID(ctx)
	now := time.Now()
	lat := now.Sub(started).Milliseconds()
	ver := version.Info().Version

	evs := make([]detdom.Event, 0, len(ents))
	for _, e := range ents {
		evs = append(evs, detdom.Event{
			ID:             uuid.NewString(),
			RequestID:      reqID,
			ConversationID: convID,
			EntityType:     string(typ),
			Method:         string(e.Method),
			Span:           e.OriginalText,
			Text:           src.text,
			Locale:         in.Locale,
			Version:        ver,
			LatencyMs:      lat,
			CreatedAt:      now.UTC(),
		})
	}
	s.sink.Enqueue(evs)
}
