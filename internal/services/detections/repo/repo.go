// Package repo provides clickhouse access for detection events
package repo

import (
	"context"
	"time"

	perr "chatner/internal/platform/errors"
	"chatner/internal/platform/store"
	"chatner/internal/services/detections/domain"
)

// Storage defines the detection events repository
type Storage interface {
	WriteBatch(ctx context.Context, xs []domain.Event) error
	ListRange(ctx context.Context, since, until time.Time, limit int) ([]domain.Event, error)
}

// CH implements Storage over the clickhouse seam
type CH struct {
	ch store.Clickhouse
}

// NewCH constructs the repo; the connection must be non nil
func NewCH(ch store.Clickhouse) *CH {
	if ch == nil {
		panic("detections.CH requires a non nil clickhouse connection")
	}
	return &CH{ch: ch}
}

const insertTarget = `detection_events
(id, request_id, conversation_id, entity_type, method, span, text, locale, version, latency_ms, created_at)`

// WriteBatch implements Storage via a prepared batch insert
func (r *CH) WriteBatch(ctx context.Context, xs []domain.Event) error {
	if len(xs) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(xs))
	for _, e := range xs {
		rows = append(rows, []any{
			e.ID, e.RequestID, e.ConversationID, e.EntityType, e.Method, e.Span,
			e.Text, e.Locale, e.Version, e.LatencyMs, e.CreatedAt.UTC(),
		})
	}
	if err := r.ch.Insert(ctx, insertTarget, rows); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeDB, "detections write batch")
	}
	return nil
}

// ListRange implements Storage
func (r *CH) ListRange(ctx context.Context, since, until time.Time, limit int) ([]domain.Event, error) {
	const sql = `
SELECT id, request_id, conversation_id, entity_type, method, span, text, locale, version, latency_ms, created_at
FROM detection_events
WHERE created_at >= ? AND created_at < ?
ORDER BY created_at
LIMIT ?`

	rows, err := r.ch.Query(ctx, sql, since.UTC(), until.UTC(), limit)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeDB, "detections list range")
	}
	defer rows.Close()

	var out []domain.Event
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(
			&e.ID, &e.RequestID, &e.ConversationID, &e.EntityType, &e.Method, &e.Span,
			&e.Text, &e.Locale, &e.Version, &e.LatencyMs, &e.CreatedAt,
		); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeDB, "detections scan")
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeDB, "detections rows")
	}
	return out, nil
}
