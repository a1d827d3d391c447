package contract

import (
	"context"

	"trustlens-be/internal/entity"
)

// ScoredClause wraps a stored clause with its cosine similarity to the query
// vector, in [0, 1] under the normalized-embedding convention.
type ScoredClause struct {
	Clause     *entity.Clause
	Similarity float64
}

// ClauseRepository is the segment store: persistence of clause snapshots and
// their vectors plus the version-scoped nearest-neighbour query the drift
// detector runs. The store is append-only from the pipeline's perspective.
type ClauseRepository interface {
	// UpsertBulk stores each clause under a fresh surrogate id, paired with
	// its vector. clauses and vectors are index-aligned.
	UpsertBulk(ctx context.Context, clauses []entity.Clause, vectors [][]float32) error

	// QueryPrior returns up to topK candidates ordered by descending
	// similarity, restricted to the same docId and strictly older versions.
	// No candidates is an empty slice, not an error.
	QueryPrior(ctx context.Context, vector []float32, docId string, version int, topK int) ([]ScoredClause, error)

	Count(ctx context.Context) (int64, error)
}
