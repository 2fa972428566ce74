// Package http provides http transport for entity detection
package http

import (
	stdhttp "net/http"

	"chatner/internal/modkit/httpkit"
	"chatner/internal/services/entities/domain"
	svc "chatner/internal/services/entities/service"
)

// Register mounts entity detection endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// temporal entities
	httpkit.PostJSON[domain.DetectInput](r, "/date", h.date)
	httpkit.PostJSON[domain.DetectInput](r, "/time", h.time)

	// scalar entities
	httpkit.PostJSON[domain.DetectInput](r, "/number", h.number)
	httpkit.PostJSON[domain.DetectInput](r, "/budget", h.budget)
	httpkit.PostJSON[domain.DetectInput](r, "/phone", h.phone)
	httpkit.PostJSON[domain.DetectInput](r, "/email", h.email)
	httpkit.PostJSON[domain.DetectInput](r, "/pnr", h.pnr)

	// gazetteer backed
	httpkit.PostJSON[domain.DetectInput](r, "/city", h.city)

	// bounded concurrent fan-out
	httpkit.PostJSON[domain.BatchInput](r, "/batch", h.batch)
}

type handlers struct{ svc svc.Service }

func (h *handlers) date(r *stdhttp.Request, in domain.DetectInput) (any, error) {
	return h.svc.Date(r.Context(), in)
}

func (h *handlers) time(r *stdhttp.Request, in domain.DetectInput) (any, error) {
	return h.svc.Time(r.Context(), in)
}

func (h *handlers) number(r *stdhttp.Request, in domain.DetectInput) (any, error) {
	return h.svc.Number(r.Context(), in)
}

func (h *handlers) budget(r *stdhttp.Request, in domain.DetectInput) (any, error) {
	return h.svc.Budget(r.Context(), in)
}

func (h *handlers) phone(r *stdhttp.Request, in domain.DetectInput) (any, error) {
	return h.svc.Phone(r.Context(), in)
}

func (h *handlers) email(r *stdhttp.Request, in domain.DetectInput) (any, error) {
	return h.svc.Email(r.Context(), in)
}

func (h *handlers) pnr(r *stdhttp.Request, in domain.DetectInput) (any, error) {
	return h.svc.PNR(r.Context(), in)
}

func (h *handlers) city(r *stdhttp.Request, in domain.DetectInput) (any, error) {
	return h.svc.City(r.Context(), in)
}

func (h *handlers) batch(r *stdhttp.Request, in domain.BatchInput) (any, error) {
	return h.svc.Batch(r.Context(), in)
}
