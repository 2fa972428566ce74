package domain

import (
	"context"
	"time"
)

// WriterPort persists event batches
type WriterPort interface {
	WriteBatch(ctx context.Context, xs []Event) error
}

// QueryPort reads stored events back for inspection and replay
type QueryPort interface {
	ListRange(ctx context.Context, since, until time.Time, limit int) ([]Event, error)
}

// SinkPort is the fire-and-forget enqueue surface handlers use
// an enqueue never blocks the request path
type SinkPort interface {
	Enqueue(xs []Event)
}
