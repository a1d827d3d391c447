package service

import (
	"context"
	"time"

	"trustlens-be/internal/entity"
	"trustlens-be/internal/pkg/logger"
	"trustlens-be/internal/repository/contract"
)

type IDriftService interface {
	// Detect classifies one clause against its best prior-version match.
	// A nil event means the clause is unchanged (or a baseline version) and
	// is deliberately suppressed.
	Detect(ctx context.Context, clause entity.Clause, vector []float32) *entity.DriftEvent
}

type DriftThresholds struct {
	SimHigh float64
	SimLow  float64
	TopK    int
}

type driftService struct {
	clauseRepo   contract.ClauseRepository
	thresholds   DriftThresholds
	queryTimeout time.Duration
	logger       logger.ILogger
}

func NewDriftService(
	clauseRepo contract.ClauseRepository,
	thresholds DriftThresholds,
	queryTimeout time.Duration,
	log logger.ILogger,
) IDriftService {
	if thresholds.TopK <= 0 {
		thresholds.TopK = 1
	}
	if queryTimeout == 0 {
		queryTimeout = 5 * time.Second
	}
	return &driftService{
		clauseRepo:   clauseRepo,
		thresholds:   thresholds,
		queryTimeout: queryTimeout,
		logger:       log,
	}
}

func (s *driftService) Detect(ctx context.Context, clause entity.Clause, vector []float32) *entity.DriftEvent {
	// The first version of a document family has nothing committed to drift
	// against: it is persisted as the baseline and produces no events.
	if clause.Version <= 1 {
		return nil
	}

	queryCtx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	hits, err := s.clauseRepo.QueryPrior(queryCtx, vector, clause.DocId, clause.Version, s.thresholds.TopK)
	if err != nil {
		// Store trouble only ever under-reports drift, never blocks the run.
		s.logger.Warn("drift", "Prior-version query failed, degrading to new", map[string]interface{}{
			"clause_id": clause.ClauseId,
			"error":     err.Error(),
		})
		return &entity.DriftEvent{Type: entity.ChangeTypeNew, New: clause}
	}

	if len(hits) == 0 {
		return &entity.DriftEvent{Type: entity.ChangeTypeNew, New: clause}
	}

	hit := hits[0]
	switch {
	case hit.Similarity >= s.thresholds.SimHigh:
		// Unchanged. Suppressed on purpose, not an event type.
		return nil
	case hit.Similarity >= s.thresholds.SimLow:
		old := *hit.Clause
		return &entity.DriftEvent{Type: entity.ChangeTypeModified, Old: &old, New: clause}
	default:
		// A match exists but it is too dissimilar to be the same clause.
		return &entity.DriftEvent{Type: entity.ChangeTypeNew, New: clause}
	}
}
