// Package domain declares the gazetteer types and ports
package domain

import "context"

// Term is one dictionary entry scored against a query
type Term struct {
	Term  string  `json:"term"`
	Score float64 `json:"score"`
}

// ReaderPort resolves fuzzy dictionary lookups for entity handlers
// implementations degrade to empty results when no store is configured
type ReaderPort interface {
	// Similar returns up to limit terms from dict ranked by trigram
	// similarity to q, best first
	Similar(ctx context.Context, dict, q string, limit int) ([]Term, error)
}

// SimilarInput is the lookup request DTO
type SimilarInput struct {
	Dict  string `json:"dict"  validate:"required,max=32"`
	Query string `json:"query" validate:"required,max=200"`
	Limit int    `json:"limit" validate:"omitempty,min=1,max=25"`
}
