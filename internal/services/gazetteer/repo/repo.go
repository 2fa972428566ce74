// Package repo provides postgres access for the gazetteer
package repo

import (
	"context"

	"chatner/internal/modkit/repokit"
	perr "chatner/internal/platform/errors"
	"chatner/internal/platform/store"
	"chatner/internal/services/gazetteer/domain"
)

// Repo is the minimal persistence surface for dictionary lookups
type Repo interface {
	Similar(ctx context.Context, dict, q string, limit int) ([]domain.Term, error)
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// Compile-time assertion: queries implements Repo
var _ Repo = (*queries)(nil)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// Similar ranks dictionary terms by pg_trgm similarity
// the % operator keeps the query on the trigram index before ranking
func (r *queries) Similar(ctx context.Context, dict, q string, limit int) ([]domain.Term, error) {
	const sql = `
select term, similarity(term, $2) as score
from gazetteer_terms
where dict = $1
and term % $2
order by score desc, term
limit $3`

	out, err := store.Many(ctx, r.q, func(row store.Row) (domain.Term, error) {
		var t domain.Term
		err := row.Scan(&t.Term, &t.Score)
		return t, err
	}, sql, dict, q, limit)
	if err != nil {
		if perr.IsMissingTrigram(err) {
			return nil, perr.Configf("gazetteer requires the pg_trgm extension")
		}
		return nil, perr.FromPostgres(err, "gazetteer similar")
	}
	return out, nil
}
