// Package http provides http transport for the gazetteer
package http

import (
	stdhttp "net/http"

	"chatner/internal/modkit/httpkit"
	"chatner/internal/services/gazetteer/domain"
	svc "chatner/internal/services/gazetteer/service"
)

// Register mounts gazetteer endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// fuzzy dictionary lookup
	httpkit.PostJSON[domain.SimilarInput](r, "/similar", h.similar)
}

type handlers struct{ svc svc.Service }

func (h *handlers) similar(r *stdhttp.Request, in domain.SimilarInput) (any, error) {
	return h.svc.Similar(r.Context(), in.Dict, in.Query, in.Limit)
}
