package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"chatner/internal/core/dates"
	pnet "chatner/internal/platform/net"
	detdom "chatner/internal/services/detections/domain"
	"chatner/internal/services/entities/domain"
)

func mustSvc(t *testing.T, opts ...Option) *Svc {
	t.Helper()
	s, err := New([]string{"en"}, opts...)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return s
}

func fixedNow() time.Time {
	// sunday morning
	return time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
}

func TestStructuredValueWins(t *testing.T) {
	s := mustSvc(t)
	out, err := s.Number(context.Background(), domain.DetectInput{
		Text:            "maybe 3 of us",
		StructuredValue: "4",
	})
	if err != nil {
		t.Fatalf("number: %v", err)
	}
	if len(out) != 1 || out[0].Method != domain.MethodStructured {
		t.Fatalf("want one structured detection, got %+v", out)
	}
	if out[0].Value != 4 {
		t.Fatalf("want structured value 4, got %v", out[0].Value)
	}
}

func TestFallbackValueWhenMessageHasNoMatch(t *testing.T) {
	s := mustSvc(t)
	out, err := s.Number(context.Background(), domain.DetectInput{
		Text:          "no numbers here",
		FallbackValue: "2 adults",
	})
	if err != nil {
		t.Fatalf("number: %v", err)
	}
	if len(out) != 1 || out[0].Method != domain.MethodFallback {
		t.Fatalf("want one fallback detection, got %+v", out)
	}
	if out[0].Value != 2 {
		t.Fatalf("want 2, got %v", out[0].Value)
	}
}

func TestMessageLayer(t *testing.T) {
	s := mustSvc(t)
	out, err := s.Email(context.Background(), domain.DetectInput{
		Text: "mail me at dev@example.com please",
	})
	if err != nil {
		t.Fatalf("email: %v", err)
	}
	if len(out) != 1 || out[0].Method != domain.MethodMessage {
		t.Fatalf("want one message detection, got %+v", out)
	}
	if out[0].Value != "dev@example.com" {
		t.Fatalf("got %v", out[0].Value)
	}
}

func TestNoMatchIsEmptyNotError(t *testing.T) {
	s := mustSvc(t)
	out, err := s.Phone(context.Background(), domain.DetectInput{Text: "hello there"})
	if err != nil {
		t.Fatalf("phone: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("want empty, got %+v", out)
	}
}

func TestDateUsesPinnedClock(t *testing.T) {
	s := mustSvc(t, WithNow(fixedNow))
	out, err := s.Date(context.Background(), domain.DetectInput{Text: "see you tomorrow"})
	if err != nil {
		t.Fatalf("date: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("want one date, got %+v", out)
	}
	d, ok := out[0].Value.(dates.DetectedDate)
	if !ok {
		t.Fatalf("want a DetectedDate value, got %T", out[0].Value)
	}
	if d.Dd != 11 || d.Mm != 3 || d.Yy != 2024 || d.Type != dates.Tomorrow {
		t.Fatalf("got %+v", d)
	}
}

func TestCityWithoutGazetteer(t *testing.T) {
	s := mustSvc(t)
	out, err := s.City(context.Background(), domain.DetectInput{Text: "bangalore"})
	if err != nil {
		t.Fatalf("city: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("want empty without a gazetteer, got %+v", out)
	}
}

func TestBatchKeepsRequestOrder(t *testing.T) {
	s := mustSvc(t, WithBatchWorkers(2))
	out, err := s.Batch(context.Background(), domain.BatchInput{
		Requests: []domain.BatchItem{
			{Type: domain.TypeNumber, DetectInput: domain.DetectInput{Text: "4 people"}},
			{Type: domain.TypeEmail, DetectInput: domain.DetectInput{Text: "a@b.co"}},
			{Type: domain.TypePhone, DetectInput: domain.DetectInput{Text: "no phone"}},
		},
	})
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("want 3 results, got %d", len(out))
	}
	if out[0].Type != domain.TypeNumber || len(out[0].Entities) != 1 {
		t.Fatalf("slot 0: %+v", out[0])
	}
	if out[1].Type != domain.TypeEmail || len(out[1].Entities) != 1 {
		t.Fatalf("slot 1: %+v", out[1])
	}
	if out[2].Type != domain.TypePhone || len(out[2].Entities) != 0 || out[2].Error != "" {
		t.Fatalf("slot 2: %+v", out[2])
	}
}

type captureSink struct {
	mu  sync.Mutex
	evs []detdom.Event
}

func (c *captureSink) Enqueue(xs []detdom.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evs = append(c.evs, xs...)
}

func TestDetectionsAreRecorded(t *testing.T) {
	sink := &captureSink{}
	s := mustSvc(t, WithSink(sink))

	ctx := pnet.WithRequest(context.Background(), "req-1", "conv-1")
	if _, err := s.Number(ctx, domain.DetectInput{Text: "table for 6"}); err != nil {
		t.Fatalf("number: %v", err)
	}

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.evs) != 1 {
		t.Fatalf("want 1 recorded event, got %+v", sink.evs)
	}
	ev := sink.evs[0]
	if ev.EntityType != "number" || ev.Method != "message" || ev.Span != "6" {
		t.Fatalf("got %+v", ev)
	}
	if ev.ID == "" || ev.Version == "" || ev.Text != "table for 6" {
		t.Fatalf("missing envelope fields: %+v", ev)
	}
	if ev.RequestID != "req-1" || ev.ConversationID != "conv-1" {
		t.Fatalf("correlation ids not carried: %+v", ev)
	}
}
