package models

import "time"

// Event types written to the audit log.
const (
	EventAnalysis       = "ANALYSIS"
	EventRecordingStart = "RECORDING_START"
	EventRecordingStop  = "RECORDING_STOP"
	EventError          = "ERROR"
)

// Event is a single audit log entry. RunID and RecordingID link it to the
// run or chamber recording it concerns, when there is one.
type Event struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	RunID       string    `json:"run_id,omitempty"`
	RecordingID string    `json:"recording_id,omitempty"`
	Metadata    any       `json:"metadata,omitempty"`
}
