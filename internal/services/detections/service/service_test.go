package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"chatner/internal/services/detections/domain"
)

type captureWriter struct {
	mu     sync.Mutex
	events []domain.Event
	calls  int
}

func (w *captureWriter) WriteBatch(_ context.Context, xs []domain.Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.events = append(w.events, xs...)
	w.calls++
	return nil
}

func (w *captureWriter) snapshot() ([]domain.Event, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]domain.Event(nil), w.events...), w.calls
}

func ev(id string) domain.Event {
	return domain.Event{ID: id, EntityType: "date", CreatedAt: time.Now().UTC()}
}

func TestCloseDrainsPending(t *testing.T) {
	w := &captureWriter{}
	s := New(w, Config{FlushEvery: time.Hour})

	s.Enqueue([]domain.Event{ev("a"), ev("b")})
	s.Enqueue([]domain.Event{ev("c")})
	s.Close()

	got, _ := w.snapshot()
	if len(got) != 3 {
		t.Fatalf("want 3 events after close, got %d", len(got))
	}
	if got[0].ID != "a" || got[2].ID != "c" {
		t.Fatalf("want enqueue order preserved, got %+v", got)
	}
}

func TestMaxBatchSplitsWrites(t *testing.T) {
	w := &captureWriter{}
	s := New(w, Config{FlushEvery: time.Hour, MaxBatch: 2})

	s.Enqueue([]domain.Event{ev("a"), ev("b"), ev("c"), ev("d"), ev("e")})
	s.Close()

	got, calls := w.snapshot()
	if len(got) != 5 {
		t.Fatalf("want 5 events, got %d", len(got))
	}
	if calls < 3 {
		t.Fatalf("want writes capped at 2 events each, got %d calls", calls)
	}
}

func TestEnqueueEmptyIsNoop(t *testing.T) {
	w := &captureWriter{}
	s := New(w, Config{FlushEvery: time.Hour})

	s.Enqueue(nil)
	s.Close()

	got, calls := w.snapshot()
	if len(got) != 0 || calls != 0 {
		t.Fatalf("want no writes, got %d events in %d calls", len(got), calls)
	}
}

func TestSynchronousWriteBypassesQueue(t *testing.T) {
	w := &captureWriter{}
	s := New(w, Config{FlushEvery: time.Hour})
	defer s.Close()

	if err := s.WriteBatch(context.Background(), []domain.Event{ev("x")}); err != nil {
		t.Fatalf("write batch: %v", err)
	}
	got, _ := w.snapshot()
	if len(got) != 1 || got[0].ID != "x" {
		t.Fatalf("want the event written immediately, got %+v", got)
	}
}
