// Package service contains gazetteer workflows
package service

import (
	"context"
	"strings"

	"chatner/internal/modkit/repokit"
	"chatner/internal/services/gazetteer/domain"
	"chatner/internal/services/gazetteer/repo"
)

// DefaultLimit caps lookups when the caller does not ask for a count
const DefaultLimit = 5

// Service defines the gazetteer service contract
type Service interface {
	domain.ReaderPort
}

// Svc implements the gazetteer service
// a nil TxRunner is a configured-off store and degrades to empty results
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// New constructs a gazetteer service; db may be nil when postgres is disabled
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if binder == nil {
		panic("gazetteer.Service requires a non nil Repo binder")
	}
	s := &Svc{binder: binder, db: db}
	if db != nil {
		s.Repo = binder.Bind(db)
	}
	return s
}

// Similar implements domain.ReaderPort
func (s *Svc) Similar(ctx context.Context, dict, q string, limit int) ([]domain.Term, error) {
	if s.db == nil {
		return nil, nil
	}
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return nil, nil
	}
	if limit <= 0 || limit > 25 {
		limit = DefaultLimit
	}
	return s.Repo.Similar(ctx, strings.ToLower(dict), q, limit)
}
