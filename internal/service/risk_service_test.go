package service

import (
	"context"
	"errors"
	"testing"

	"trustlens-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

func modifiedEvent(oldText, newText string) *entity.DriftEvent {
	return &entity.DriftEvent{
		Type: entity.ChangeTypeModified,
		Old: &entity.Clause{
			ClauseId: "contract_001_1_0",
			Text:     oldText,
			DocId:    "contract_001",
			Version:  1,
		},
		New: entity.Clause{
			ClauseId: "contract_001_2_0",
			Text:     newText,
			DocId:    "contract_001",
			Version:  2,
		},
	}
}

func TestBaselineSignal(t *testing.T) {
	cases := []struct {
		name  string
		event *entity.DriftEvent
		want  entity.RiskLevel
	}{
		{
			name:  "may hardened into shall",
			event: modifiedEvent("Vendor may terminate.", "Vendor shall terminate."),
			want:  entity.RiskMedium,
		},
		{
			name:  "case insensitive",
			event: modifiedEvent("Vendor MAY terminate.", "Vendor SHALL terminate."),
			want:  entity.RiskMedium,
		},
		{
			name:  "shall without prior may",
			event: modifiedEvent("Vendor must terminate.", "Vendor shall terminate."),
			want:  entity.RiskLow,
		},
		{
			name:  "softened the other way",
			event: modifiedEvent("Vendor shall terminate.", "Vendor may terminate."),
			want:  entity.RiskLow,
		},
		{
			name: "new clause has no prior to compare",
			event: &entity.DriftEvent{
				Type: entity.ChangeTypeNew,
				New:  entity.Clause{Text: "Vendor shall indemnify.", Version: 2},
			},
			want: entity.RiskLow,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, BaselineSignal(tc.event))
			// Pure: a second pass over the same event gives the same answer.
			assert.Equal(t, tc.want, BaselineSignal(tc.event))
		})
	}
}

func TestRiskClassify_NoJudgeConfigured(t *testing.T) {
	svc := NewRiskService(nil, 0, newNopLogger())
	ev := modifiedEvent("Vendor may terminate.", "Vendor shall terminate.")

	svc.Classify(context.Background(), ev)

	assert.Equal(t, entity.RiskUnknown, ev.Risk)
}

func TestRiskClassify_JudgeFailure(t *testing.T) {
	judge := &stubJudge{err: errors.New("connection refused")}
	svc := NewRiskService(judge, 0, newNopLogger())
	ev := modifiedEvent("Vendor may terminate.", "Vendor shall terminate.")

	svc.Classify(context.Background(), ev)

	assert.Equal(t, entity.RiskError, ev.Risk)
}

func TestRiskClassify_JudgeLabel(t *testing.T) {
	cases := []struct {
		name  string
		reply string
		want  entity.RiskLevel
	}{
		{name: "bare label", reply: "High", want: entity.RiskHigh},
		{name: "label inside prose", reply: "The risk here is medium overall.", want: entity.RiskMedium},
		{name: "lowercase", reply: "low", want: entity.RiskLow},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewRiskService(&stubJudge{reply: tc.reply}, 0, newNopLogger())
			ev := modifiedEvent("Vendor must terminate.", "Vendor shall terminate.")

			svc.Classify(context.Background(), ev)

			assert.Equal(t, tc.want, ev.Risk)
		})
	}
}

func TestRiskClassify_UnparsableReplyFallsBackToBaseline(t *testing.T) {
	svc := NewRiskService(&stubJudge{reply: "I cannot comply with this request."}, 0, newNopLogger())
	ev := modifiedEvent("Vendor may terminate.", "Vendor shall terminate.")

	svc.Classify(context.Background(), ev)

	assert.Equal(t, entity.RiskMedium, ev.Risk)
}

func TestRiskClassify_NeverTouchesClausePayloads(t *testing.T) {
	svc := NewRiskService(&stubJudge{reply: "High"}, 0, newNopLogger())
	ev := modifiedEvent("Vendor may terminate.", "Vendor shall terminate.")
	oldText := ev.Old.Text
	newText := ev.New.Text

	svc.Classify(context.Background(), ev)

	assert.Equal(t, oldText, ev.Old.Text)
	assert.Equal(t, newText, ev.New.Text)
}
