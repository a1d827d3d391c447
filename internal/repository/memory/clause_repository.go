package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"trustlens-be/internal/entity"
	"trustlens-be/internal/repository/contract"

	"github.com/google/uuid"
)

type record struct {
	id     uuid.UUID
	clause entity.Clause
	vector []float32
}

// ClauseRepository is an in-process segment store. It backs tests and the
// degraded mode the bootstrap falls into when the configured backend is
// unreachable.
type ClauseRepository struct {
	mu      sync.RWMutex
	records []record
}

func NewClauseRepository() *ClauseRepository {
	return &ClauseRepository{}
}

func (r *ClauseRepository) UpsertBulk(ctx context.Context, clauses []entity.Clause, vectors [][]float32) error {
	if len(clauses) != len(vectors) {
		return errors.New("clauses and vectors length mismatch")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range clauses {
		vec := make([]float32, len(vectors[i]))
		copy(vec, vectors[i])
		r.records = append(r.records, record{
			id:     uuid.New(),
			clause: clauses[i],
			vector: vec,
		})
	}
	return nil
}

func (r *ClauseRepository) QueryPrior(ctx context.Context, vector []float32, docId string, version int, topK int) ([]contract.ScoredClause, error) {
	if topK <= 0 {
		topK = 1
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var scored []contract.ScoredClause
	for i := range r.records {
		rec := &r.records[i]
		if rec.clause.DocId != docId || rec.clause.Version >= version {
			continue
		}
		c := rec.clause
		scored = append(scored, contract.ScoredClause{
			Clause:     &c,
			Similarity: cosineSimilarity(vector, rec.vector),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})
	if len(scored) > topK {
		scored = scored[:topK]
	}
	return scored, nil
}

func (r *ClauseRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.records)), nil
}

// cosineSimilarity reduces to a dot product because stored and query vectors
// are unit-normalized at embedding time.
func cosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot
}
