// Package analytics computes usage aggregates over the interaction log.
package analytics

import (
	"context"

	"ai-interaction-service/internal/models"
	"ai-interaction-service/internal/store"
)

// DefaultTopN is how many queries the analytics endpoint reports.
const DefaultTopN = 5

// Aggregator is a read-only view over the interaction log. Each call
// recomputes from current store state; no caching.
type Aggregator struct {
	log *store.Store
}

// New creates an Aggregator over the given log.
func New(log *store.Store) *Aggregator {
	return &Aggregator{log: log}
}

// MostCommonQueries returns the n most frequent query texts, count
// descending, ties broken by first insertion.
func (a *Aggregator) MostCommonQueries(ctx context.Context, n int) ([]models.AggregateCount, error) {
	if n <= 0 {
		n = DefaultTopN
	}
	return a.log.TopQueries(ctx, n)
}
