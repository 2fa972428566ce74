// Package service provides the detection events service implementation
package service

import (
	"context"
	"sync"
	"time"

	"chatner/internal/platform/logger"
	"chatner/internal/services/detections/domain"
)

// Config tunes the buffered writer
type Config struct {
	// QueueDepth bounds pending batches; full queue drops with a warn
	QueueDepth int
	// FlushEvery bounds how long a partial batch may sit in memory
	FlushEvery time.Duration
	// MaxBatch caps events per storage write
	MaxBatch int
	// WriteTimeout bounds one storage write
	WriteTimeout time.Duration
}

func (c *Config) defaults() {
	if c.QueueDepth <= 0 {
		c.QueueDepth = 256
	}
	if c.FlushEvery <= 0 {
		c.FlushEvery = 2 * time.Second
	}
	if c.MaxBatch <= 0 {
		c.MaxBatch = 500
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 10 * time.Second
	}
}

// Service implements domain.SinkPort over a WriterPort with a buffered
// channel so request handlers never wait on storage
type Service struct {
	cfg Config
	w   domain.WriterPort
	log *logger.Logger

	in   chan []domain.Event
	done chan struct{}
	once sync.Once
}

// New constructs the service and starts the background flusher
func New(w domain.WriterPort, cfg Config) *Service {
	if w == nil {
		panic("detections.Service requires a non nil WriterPort")
	}
	cfg.defaults()
	s := &Service{
		cfg:  cfg,
		w:    w,
		log:  logger.Named("detections"),
		in:   make(chan []domain.Event, cfg.QueueDepth),
		done: make(chan struct{}),
	}
	go s.loop()
	return s
}

// Enqueue implements domain.SinkPort; a full queue drops the batch
func (s *Service) Enqueue(xs []domain.Event) {
	if len(xs) == 0 {
		return
	}
	select {
	case s.in <- xs:
	default:
		s.log.Warn().Int("events", len(xs)).Msg("detections queue full, dropping batch")
	}
}

// WriteBatch implements domain.WriterPort synchronously, bypassing the queue
func (s *Service) WriteBatch(ctx context.Context, xs []domain.Event) error {
	return s.w.WriteBatch(ctx, xs)
}

// Close drains the queue and stops the flusher
func (s *Service) Close() {
	s.once.Do(func() {
		close(s.in)
		<-s.done
	})
}

func (s *Service) loop() {
	defer close(s.done)

	ticker := time.NewTicker(s.cfg.FlushEvery)
	defer ticker.Stop()

	var pending []domain.Event
	for {
		select {
		case xs, ok := <-s.in:
			if !ok {
				s.flush(pending)
				return
			}
			pending = append(pending, xs...)
			if len(pending) >= s.cfg.MaxBatch {
				s.flush(pending)
				pending = nil
			}
		case <-ticker.C:
			if len(pending) > 0 {
				s.flush(pending)
				pending = nil
			}
		}
	}
}

func (s *Service) flush(xs []domain.Event) {
	for len(xs) > 0 {
		n := len(xs)
		if n > s.cfg.MaxBatch {
			n = s.cfg.MaxBatch
		}
		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.WriteTimeout)
		err := s.w.WriteBatch(ctx, xs[:n])
		cancel()
		if err != nil {
			s.log.Error().Err(err).Int("events", n).Msg("detections flush failed")
		}
		xs = xs[n:]
	}
}
