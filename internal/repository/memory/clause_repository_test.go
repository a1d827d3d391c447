package memory

import (
	"context"
	"testing"

	"trustlens-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedClause(docId string, version, index int, text string) entity.Clause {
	return entity.Clause{
		ClauseId:    entity.BuildClauseId(docId, version, index),
		Text:        text,
		SectionType: "NarrativeText",
		DocId:       docId,
		Version:     version,
		DocType:     "contract",
	}
}

func TestQueryPrior_VersionScoping(t *testing.T) {
	repo := NewClauseRepository()
	ctx := context.Background()

	require.NoError(t, repo.UpsertBulk(ctx, []entity.Clause{
		seedClause("contract_001", 1, 0, "v1 clause"),
		seedClause("contract_001", 2, 0, "v2 clause"),
		seedClause("contract_001", 3, 0, "v3 clause"),
	}, [][]float32{{1, 0}, {1, 0}, {1, 0}}))

	hits, err := repo.QueryPrior(ctx, []float32{1, 0}, "contract_001", 3, 10)
	require.NoError(t, err)

	require.Len(t, hits, 2, "only versions strictly below the query version")
	for _, hit := range hits {
		assert.Less(t, hit.Clause.Version, 3)
	}
}

func TestQueryPrior_ExcludesOtherDocuments(t *testing.T) {
	repo := NewClauseRepository()
	ctx := context.Background()

	require.NoError(t, repo.UpsertBulk(ctx, []entity.Clause{
		seedClause("contract_001", 1, 0, "same family"),
		seedClause("contract_002", 1, 0, "different family"),
	}, [][]float32{{1, 0}, {1, 0}}))

	hits, err := repo.QueryPrior(ctx, []float32{1, 0}, "contract_001", 2, 10)
	require.NoError(t, err)

	require.Len(t, hits, 1)
	assert.Equal(t, "contract_001", hits[0].Clause.DocId)
}

func TestQueryPrior_OrderedBySimilarityAndTruncated(t *testing.T) {
	repo := NewClauseRepository()
	ctx := context.Background()

	require.NoError(t, repo.UpsertBulk(ctx, []entity.Clause{
		seedClause("contract_001", 1, 0, "orthogonal"),
		seedClause("contract_001", 1, 1, "close"),
		seedClause("contract_001", 1, 2, "identical"),
	}, [][]float32{{0, 1}, {0.8, 0.6}, {1, 0}}))

	hits, err := repo.QueryPrior(ctx, []float32{1, 0}, "contract_001", 2, 2)
	require.NoError(t, err)

	require.Len(t, hits, 2)
	assert.Equal(t, "contract_001_1_2", hits[0].Clause.ClauseId)
	assert.Equal(t, "contract_001_1_1", hits[1].Clause.ClauseId)
	assert.Greater(t, hits[0].Similarity, hits[1].Similarity)
	assert.InDelta(t, 1.0, hits[0].Similarity, 1e-6)
	assert.InDelta(t, 0.8, hits[1].Similarity, 1e-6)
}

func TestQueryPrior_EmptyStore(t *testing.T) {
	repo := NewClauseRepository()

	hits, err := repo.QueryPrior(context.Background(), []float32{1, 0}, "contract_001", 2, 1)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestUpsertBulk_LengthMismatch(t *testing.T) {
	repo := NewClauseRepository()

	err := repo.UpsertBulk(context.Background(), []entity.Clause{
		seedClause("contract_001", 1, 0, "a clause"),
	}, nil)
	assert.Error(t, err)

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestQueryPrior_ReturnsCopies(t *testing.T) {
	repo := NewClauseRepository()
	ctx := context.Background()

	require.NoError(t, repo.UpsertBulk(ctx, []entity.Clause{
		seedClause("contract_001", 1, 0, "original text"),
	}, [][]float32{{1, 0}}))

	hits, err := repo.QueryPrior(ctx, []float32{1, 0}, "contract_001", 2, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)

	hits[0].Clause.Text = "mutated"

	again, err := repo.QueryPrior(ctx, []float32{1, 0}, "contract_001", 2, 1)
	require.NoError(t, err)
	assert.Equal(t, "original text", again[0].Clause.Text)
}
