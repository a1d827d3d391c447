package service

import (
	"testing"

	"trustlens-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_PositionalClauseIds(t *testing.T) {
	svc := NewExtractorService()
	blocks := []entity.Block{
		{Text: "Vendor shall deliver within 30 days.", Type: "NarrativeText"},
		{Text: "Customer may audit once per year.", Type: "NarrativeText"},
	}
	metadata := entity.DocumentMetadata{DocId: "contract_001", Version: 2, DocType: "contract"}

	clauses := svc.Extract(blocks, metadata)

	require.Len(t, clauses, 2)
	assert.Equal(t, "contract_001_2_0", clauses[0].ClauseId)
	assert.Equal(t, "contract_001_2_1", clauses[1].ClauseId)
	assert.Equal(t, "contract_001", clauses[0].DocId)
	assert.Equal(t, 2, clauses[0].Version)
	assert.Equal(t, "contract", clauses[0].DocType)
	assert.Equal(t, blocks[0].Text, clauses[0].Text)
	assert.Equal(t, "NarrativeText", clauses[0].SectionType)
}

func TestExtract_Deterministic(t *testing.T) {
	svc := NewExtractorService()
	blocks := []entity.Block{
		{Text: "Vendor shall deliver within 30 days.", Type: "NarrativeText"},
	}
	metadata := entity.DocumentMetadata{DocId: "contract_001", Version: 1}

	first := svc.Extract(blocks, metadata)
	second := svc.Extract(blocks, metadata)

	assert.Equal(t, first, second)
}

func TestExtract_EmptyInput(t *testing.T) {
	svc := NewExtractorService()

	clauses := svc.Extract(nil, entity.DocumentMetadata{DocId: "contract_001", Version: 1})

	assert.Empty(t, clauses)
}
