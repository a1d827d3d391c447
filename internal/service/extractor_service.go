package service

import (
	"trustlens-be/internal/entity"
)

type IExtractorService interface {
	Extract(blocks []entity.Block, metadata entity.DocumentMetadata) []entity.Clause
}

type extractorService struct{}

func NewExtractorService() IExtractorService {
	return &extractorService{}
}

// Extract maps parsed blocks into versioned clause records. Pure and
// deterministic: clause ids are positional within the extraction run.
func (s *extractorService) Extract(blocks []entity.Block, metadata entity.DocumentMetadata) []entity.Clause {
	clauses := make([]entity.Clause, 0, len(blocks))
	for i, block := range blocks {
		clauses = append(clauses, entity.Clause{
			ClauseId:    entity.BuildClauseId(metadata.DocId, metadata.Version, i),
			Text:        block.Text,
			SectionType: block.Type,
			DocId:       metadata.DocId,
			Version:     metadata.Version,
			DocType:     metadata.DocType,
		})
	}
	return clauses
}
