package mapper

import (
	"trustlens-be/internal/entity"
	"trustlens-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type ClauseMapper struct{}

func NewClauseMapper() *ClauseMapper {
	return &ClauseMapper{}
}

func (m *ClauseMapper) ToEntity(e *model.ClauseEmbedding) *entity.Clause {
	if e == nil {
		return nil
	}

	return &entity.Clause{
		ClauseId:    e.ClauseId,
		Text:        e.Text,
		SectionType: e.SectionType,
		DocId:       e.DocId,
		Version:     e.Version,
		DocType:     e.DocType,
	}
}

func (m *ClauseMapper) ToModel(c *entity.Clause, vector []float32) *model.ClauseEmbedding {
	if c == nil {
		return nil
	}

	return &model.ClauseEmbedding{
		ClauseId:       c.ClauseId,
		Text:           c.Text,
		SectionType:    c.SectionType,
		DocId:          c.DocId,
		Version:        c.Version,
		DocType:        c.DocType,
		EmbeddingValue: pgvector.NewVector(vector),
	}
}
