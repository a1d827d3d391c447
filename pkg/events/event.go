package events

import (
	"time"

	"trustlens-be/internal/entity"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g. "DRIFT_DETECTED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is a plain implementation for ad-hoc events.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewDriftDetectedEvent wraps an enriched drift event for the bus.
func NewDriftDetectedEvent(ev entity.DriftEvent) BaseEvent {
	data := map[string]interface{}{
		"change_type": string(ev.Type),
		"risk":        string(ev.Risk),
		"explanation": ev.Explanation,
		"clause_id":   ev.New.ClauseId,
		"doc_id":      ev.New.DocId,
		"old_version": ev.Evidence.OldVersion,
		"new_version": ev.Evidence.NewVersion,
	}
	return BaseEvent{
		Type:       "DRIFT_DETECTED",
		Data:       data,
		OccurredAt: time.Now(),
	}
}
