// Package http provides http transport for detection events
package http

import (
	stdhttp "net/http"
	"time"

	"chatner/internal/modkit/httpkit"
	"chatner/internal/services/detections/domain"
)

// RecentInput selects a trailing window of stored events
type RecentInput struct {
	Hours int `json:"hours" validate:"omitempty,min=1,max=168"`
	Limit int `json:"limit" validate:"omitempty,min=1,max=500"`
}

// Register mounts detection event endpoints on the given router
func Register(r httpkit.Router, q domain.QueryPort) {
	h := &handlers{q: q}

	// trailing window of recorded detections
	httpkit.PostJSON[RecentInput](r, "/recent", h.recent)
}

type handlers struct{ q domain.QueryPort }

func (h *handlers) recent(r *stdhttp.Request, in RecentInput) (any, error) {
	if in.Hours == 0 {
		in.Hours = 24
	}
	if in.Limit == 0 {
		in.Limit = 100
	}
	until := time.Now().UTC()
	since := until.Add(-time.Duration(in.Hours) * time.Hour)
	return h.q.ListRange(r.Context(), since, until, in.Limit)
}
