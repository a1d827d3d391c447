package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// ClauseEmbedding is one stored clause snapshot plus its vector. Records are
// append-only: re-ingestion creates new rows under fresh surrogate ids.
type ClauseEmbedding struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClauseId       string          `gorm:"index"`
	Text           string          `gorm:"type:text"`
	SectionType    string
	DocId          string          `gorm:"index:idx_clause_doc_version"`
	Version        int             `gorm:"index:idx_clause_doc_version"`
	DocType        string
	EmbeddingValue pgvector.Vector `gorm:"type:vector(384)"` // all-MiniLM-L6-v2 dimension
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
}

func (ClauseEmbedding) TableName() string {
	return "clause_embeddings"
}
