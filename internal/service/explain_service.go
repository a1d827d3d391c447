package service

import (
	"context"
	"fmt"
	"time"

	"trustlens-be/internal/constant"
	"trustlens-be/internal/entity"
	"trustlens-be/internal/pkg/logger"
	"trustlens-be/pkg/llm"
)

type IExplainService interface {
	// Explain attaches a narrative and evidence to the event in place. Every
	// event leaves this stage with a non-empty explanation, a sentinel when
	// the capability is down.
	Explain(ctx context.Context, event *entity.DriftEvent)
}

type explainService struct {
	generator llm.LLMProvider // nil when the capability never came up
	timeout   time.Duration
	logger    logger.ILogger
}

func NewExplainService(generator llm.LLMProvider, timeout time.Duration, log logger.ILogger) IExplainService {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &explainService{
		generator: generator,
		timeout:   timeout,
		logger:    log,
	}
}

func (s *explainService) Explain(ctx context.Context, event *entity.DriftEvent) {
	event.Evidence = buildEvidence(event)

	if s.generator == nil {
		event.Explanation = constant.ExplanationUnavailable
		return
	}

	oldText := ""
	if event.Old != nil {
		oldText = event.Old.Text
	}

	prompt := constant.ExplanationPrompt + fmt.Sprintf(
		"\nChange type: %s\nRisk: %s\nOLD:\n%s\nNEW:\n%s",
		event.Type, event.Risk, oldText, event.New.Text,
	)

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	explanation, err := s.generator.Generate(callCtx, prompt)
	if err != nil {
		s.logger.Warn("explain", "Explanation generation failed", map[string]interface{}{
			"clause_id": event.New.ClauseId,
			"error":     err.Error(),
		})
		event.Explanation = fmt.Sprintf("Error: %s", err.Error())
		return
	}

	event.Explanation = explanation
}

func buildEvidence(event *entity.DriftEvent) entity.Evidence {
	evidence := entity.Evidence{NewVersion: event.New.Version}
	if event.Old != nil {
		evidence.OldVersion = event.Old.Version
	}
	return evidence
}
