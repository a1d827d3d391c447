package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"trustlens-be/internal/entity"
	"trustlens-be/internal/pkg/logger"
	"trustlens-be/internal/repository/contract"
	"trustlens-be/pkg/embedding"
	"trustlens-be/pkg/events"
	"trustlens-be/pkg/parser"
)

// PipelineStage names one state of the per-document state machine. Stages
// are strictly ordered; the run loop never skips or goes backward.
type PipelineStage string

const (
	StageParse        PipelineStage = "PARSE"
	StageExtract      PipelineStage = "EXTRACT"
	StageMemorize     PipelineStage = "MEMORIZE"
	StageDetectDrift  PipelineStage = "DETECT_DRIFT"
	StageClassifyRisk PipelineStage = "CLASSIFY_RISK"
	StageExplain      PipelineStage = "EXPLAIN"
	StageDone         PipelineStage = "DONE"
)

var stageOrder = []PipelineStage{
	StageParse,
	StageExtract,
	StageMemorize,
	StageDetectDrift,
	StageClassifyRisk,
	StageExplain,
	StageDone,
}

// ErrInvalidDocument marks malformed input metadata. The document is skipped,
// the batch goes on.
var ErrInvalidDocument = errors.New("invalid document metadata")

type IPipelineService interface {
	ProcessDocument(ctx context.Context, doc entity.DocumentInput) ([]entity.DriftEvent, error)
	ProcessBatch(ctx context.Context, docs []entity.DocumentInput) []DocumentResult
}

// DocumentResult is the per-document outcome of a batch run.
type DocumentResult struct {
	Input  entity.DocumentInput
	Events []entity.DriftEvent
	Err    error
}

// pipelineState threads intermediate data between stages. Each stage consumes
// the full output of the previous one, batch-at-a-time.
type pipelineState struct {
	doc     entity.DocumentInput
	blocks  []entity.Block
	clauses []entity.Clause
	vectors [][]float32 // staged in MEMORIZE, committed after DETECT_DRIFT
	events  []*entity.DriftEvent
}

type pipelineService struct {
	docParser        parser.DocumentParser
	extractor        IExtractorService
	drift            IDriftService
	risk             IRiskService
	explain          IExplainService
	clauseRepo       contract.ClauseRepository
	embedder         embedding.EmbeddingProvider // nil when the capability never came up
	publisher        IPublisherService           // nil disables event publication
	embeddingTimeout time.Duration
	logger           logger.ILogger
}

func NewPipelineService(
	docParser parser.DocumentParser,
	extractor IExtractorService,
	drift IDriftService,
	risk IRiskService,
	explain IExplainService,
	clauseRepo contract.ClauseRepository,
	embedder embedding.EmbeddingProvider,
	publisher IPublisherService,
	embeddingTimeout time.Duration,
	log logger.ILogger,
) IPipelineService {
	if embeddingTimeout == 0 {
		embeddingTimeout = 5 * time.Second
	}
	return &pipelineService{
		docParser:        docParser,
		extractor:        extractor,
		drift:            drift,
		risk:             risk,
		explain:          explain,
		clauseRepo:       clauseRepo,
		embedder:         embedder,
		publisher:        publisher,
		embeddingTimeout: embeddingTimeout,
		logger:           log,
	}
}

func (s *pipelineService) ProcessDocument(ctx context.Context, doc entity.DocumentInput) ([]entity.DriftEvent, error) {
	if doc.Metadata.DocId == "" || doc.Metadata.Version < 1 {
		return nil, fmt.Errorf("%w: doc_id=%q version=%d", ErrInvalidDocument, doc.Metadata.DocId, doc.Metadata.Version)
	}

	state := &pipelineState{doc: doc}

	for _, stage := range stageOrder {
		if stage == StageDone {
			break
		}
		s.logger.Debug("pipeline", "Entering stage", map[string]interface{}{
			"stage":  string(stage),
			"doc_id": doc.Metadata.DocId,
		})
		s.runStage(ctx, stage, state)
	}

	// Terminal: the ordered sequence of fully enriched events, unchanged
	// clauses simply absent.
	out := make([]entity.DriftEvent, 0, len(state.events))
	for _, ev := range state.events {
		out = append(out, *ev)
	}
	s.publishEvents(ctx, out)
	return out, nil
}

func (s *pipelineService) runStage(ctx context.Context, stage PipelineStage, state *pipelineState) {
	switch stage {
	case StageParse:
		state.blocks = s.docParser.Parse(ctx, state.doc.DocPath)

	case StageExtract:
		state.clauses = s.extractor.Extract(state.blocks, state.doc.Metadata)

	case StageMemorize:
		state.vectors = s.embedClauses(ctx, state.clauses)

	case StageDetectDrift:
		for i := range state.clauses {
			clause := state.clauses[i]
			if state.vectors == nil {
				// Embedding capability is down: under-report as new rather
				// than block, except for baseline versions.
				if clause.Version > 1 {
					state.events = append(state.events, &entity.DriftEvent{
						Type: entity.ChangeTypeNew,
						New:  clause,
					})
				}
				continue
			}
			if ev := s.drift.Detect(ctx, clause, state.vectors[i]); ev != nil {
				state.events = append(state.events, ev)
			}
		}
		// The write is committed only after this run's comparisons, so a
		// document is never compared against itself.
		s.commitClauses(ctx, state)

	case StageClassifyRisk:
		for _, ev := range state.events {
			s.risk.Classify(ctx, ev)
		}

	case StageExplain:
		for _, ev := range state.events {
			s.explain.Explain(ctx, ev)
		}
	}
}

func (s *pipelineService) embedClauses(ctx context.Context, clauses []entity.Clause) [][]float32 {
	if len(clauses) == 0 || s.embedder == nil {
		return nil
	}

	texts := make([]string, len(clauses))
	for i, c := range clauses {
		texts[i] = c.Text
	}

	embedCtx, cancel := context.WithTimeout(ctx, s.embeddingTimeout*time.Duration(len(texts)))
	defer cancel()

	vectors, err := embedding.EmbedTexts(embedCtx, s.embedder, texts)
	if err != nil {
		s.logger.Warn("pipeline", "Embedding failed, continuing degraded", map[string]interface{}{
			"doc_id": clauses[0].DocId,
			"error":  err.Error(),
		})
		return nil
	}
	return vectors
}

// commitClauses upserts the staged clause vectors. Fails soft: on error the
// run proceeds under an empty-store assumption for later documents.
func (s *pipelineService) commitClauses(ctx context.Context, state *pipelineState) {
	if state.vectors == nil || len(state.clauses) == 0 {
		return
	}
	if err := s.clauseRepo.UpsertBulk(ctx, state.clauses, state.vectors); err != nil {
		s.logger.Warn("pipeline", "Store upsert failed, continuing degraded", map[string]interface{}{
			"doc_id":  state.doc.Metadata.DocId,
			"clauses": len(state.clauses),
			"error":   err.Error(),
		})
		return
	}
	s.logger.Info("pipeline", "Clauses memorized", map[string]interface{}{
		"doc_id":  state.doc.Metadata.DocId,
		"version": state.doc.Metadata.Version,
		"clauses": len(state.clauses),
	})
}

func (s *pipelineService) publishEvents(ctx context.Context, evts []entity.DriftEvent) {
	if s.publisher == nil {
		return
	}
	for _, ev := range evts {
		payload, err := json.Marshal(events.NewDriftDetectedEvent(ev).Payload())
		if err != nil {
			continue
		}
		// Publication is auxiliary; a failure never fails the run.
		if err := s.publisher.Publish(ctx, payload); err != nil {
			s.logger.Warn("pipeline", "Failed to publish drift event", map[string]interface{}{
				"clause_id": ev.New.ClauseId,
				"error":     err.Error(),
			})
		}
	}
}

func (s *pipelineService) ProcessBatch(ctx context.Context, docs []entity.DocumentInput) []DocumentResult {
	results := make([]DocumentResult, 0, len(docs))
	for _, doc := range docs {
		evts, err := s.ProcessDocument(ctx, doc)
		if err != nil {
			s.logger.Error("pipeline", "Document processing failed", map[string]interface{}{
				"doc_path": doc.DocPath,
				"error":    err.Error(),
			})
		}
		results = append(results, DocumentResult{Input: doc, Events: evts, Err: err})
	}
	return results
}
