package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"trustlens-be/internal/constant"
	"trustlens-be/internal/entity"
	"trustlens-be/internal/pkg/logger"
	"trustlens-be/pkg/llm"
)

type IRiskService interface {
	// Classify attaches a risk label to the event in place. Clause payloads
	// are never touched.
	Classify(ctx context.Context, event *entity.DriftEvent)
}

type riskService struct {
	judge   llm.LLMProvider // nil when the capability never came up
	timeout time.Duration
	logger  logger.ILogger
}

func NewRiskService(judge llm.LLMProvider, timeout time.Duration, log logger.ILogger) IRiskService {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &riskService{
		judge:   judge,
		timeout: timeout,
		logger:  log,
	}
}

// BaselineSignal computes the heuristic pre-signal: a modified clause that
// hardens "may" into "shall" elevates the baseline from Low to Medium. Pure,
// so classifying the same event twice yields the same signal.
func BaselineSignal(event *entity.DriftEvent) entity.RiskLevel {
	if event.Type == entity.ChangeTypeModified && event.Old != nil {
		if strings.Contains(strings.ToLower(event.New.Text), "shall") &&
			strings.Contains(strings.ToLower(event.Old.Text), "may") {
			return entity.RiskMedium
		}
	}
	return entity.RiskLow
}

func (s *riskService) Classify(ctx context.Context, event *entity.DriftEvent) {
	baseSignal := BaselineSignal(event)

	if s.judge == nil {
		event.Risk = entity.RiskUnknown
		return
	}

	oldText := ""
	if event.Old != nil {
		oldText = event.Old.Text
	}

	prompt := constant.RiskAnalysisPrompt + fmt.Sprintf(`
Base heuristic risk: %s
Old clause: %s
New clause: %s
`, baseSignal, oldText, event.New.Text)

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	label, err := s.judge.Generate(callCtx, prompt)
	if err != nil {
		s.logger.Warn("risk", "Risk analysis call failed", map[string]interface{}{
			"clause_id": event.New.ClauseId,
			"error":     err.Error(),
		})
		event.Risk = entity.RiskError
		return
	}

	event.Risk = parseRiskLabel(label, baseSignal)
}

// parseRiskLabel maps free-text model output onto the bounded label set. An
// unrecognizable answer falls back to the heuristic baseline.
func parseRiskLabel(label string, fallback entity.RiskLevel) entity.RiskLevel {
	normalized := strings.ToLower(strings.TrimSpace(label))
	switch {
	case strings.Contains(normalized, "high"):
		return entity.RiskHigh
	case strings.Contains(normalized, "medium"):
		return entity.RiskMedium
	case strings.Contains(normalized, "low"):
		return entity.RiskLow
	default:
		return fallback
	}
}
