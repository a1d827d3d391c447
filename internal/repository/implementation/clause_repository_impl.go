package implementation

import (
	"context"
	"errors"

	"trustlens-be/internal/entity"
	"trustlens-be/internal/mapper"
	"trustlens-be/internal/model"
	"trustlens-be/internal/repository/contract"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type ClauseRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ClauseMapper
}

func NewClauseRepository(db *gorm.DB) contract.ClauseRepository {
	return &ClauseRepositoryImpl{
		db:     db,
		mapper: mapper.NewClauseMapper(),
	}
}

func (r *ClauseRepositoryImpl) UpsertBulk(ctx context.Context, clauses []entity.Clause, vectors [][]float32) error {
	if len(clauses) != len(vectors) {
		return errors.New("clauses and vectors length mismatch")
	}
	if len(clauses) == 0 {
		return nil
	}

	models := make([]*model.ClauseEmbedding, len(clauses))
	for i := range clauses {
		models[i] = r.mapper.ToModel(&clauses[i], vectors[i])
	}

	return r.db.WithContext(ctx).Create(models).Error
}

func (r *ClauseRepositoryImpl) QueryPrior(ctx context.Context, vector []float32, docId string, version int, topK int) ([]contract.ScoredClause, error) {
	if topK <= 0 {
		topK = 1
	}

	// Cosine distance in pgvector is 1 - cosine_similarity, so
	// 1 - (embedding_value <=> query) recovers the similarity score.
	type row struct {
		model.ClauseEmbedding
		Similarity float64
	}
	var rows []row

	queryVector := pgvector.NewVector(vector)

	err := r.db.WithContext(ctx).
		Table("clause_embeddings").
		Select("clause_embeddings.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Where("doc_id = ?", docId).
		Where("version < ?", version).
		Order("similarity DESC").
		Limit(topK).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	scored := make([]contract.ScoredClause, len(rows))
	for i, res := range rows {
		scored[i] = contract.ScoredClause{
			Clause:     r.mapper.ToEntity(&res.ClauseEmbedding),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}

func (r *ClauseRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ClauseEmbedding{}).Count(&count).Error
	return count, err
}
