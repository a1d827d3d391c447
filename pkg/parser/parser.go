package parser

import (
	"context"
	"os"
	"strings"

	"trustlens-be/internal/constant"
	"trustlens-be/internal/entity"
	"trustlens-be/internal/pkg/logger"
)

// DocumentParser turns a document on disk into ordered text blocks. A missing
// or unreadable document yields an empty slice, logged but never raised: the
// pipeline treats empty blocks as "no clauses, no events".
type DocumentParser interface {
	Parse(ctx context.Context, path string) []entity.Block
}

// PlaintextParser splits a text document on blank lines and discards
// fragments shorter than the configured minimum.
type PlaintextParser struct {
	minLength int
	logger    logger.ILogger
}

func NewPlaintextParser(minLength int, log logger.ILogger) *PlaintextParser {
	if minLength <= 0 {
		minLength = 10
	}
	return &PlaintextParser{
		minLength: minLength,
		logger:    log,
	}
}

func (p *PlaintextParser) Parse(ctx context.Context, path string) []entity.Block {
	data, err := os.ReadFile(path)
	if err != nil {
		p.logger.Warn("parser", "Failed to read document", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return nil
	}

	var blocks []entity.Block
	paragraphs := strings.Split(string(data), "\n\n")
	for _, para := range paragraphs {
		para = strings.TrimSpace(para)
		if len(para) <= p.minLength {
			continue
		}
		blocks = append(blocks, entity.Block{
			Text: para,
			Type: constant.SectionTypeNarrative,
		})
	}

	p.logger.Info("parser", "Parsed document", map[string]interface{}{
		"path":   path,
		"blocks": len(blocks),
	})
	return blocks
}
