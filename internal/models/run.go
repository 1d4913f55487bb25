package models

import (
	"time"

	"cadr/internal/decay"
)

// Run is a persisted multi-trial CADR analysis.
type Run struct {
	ID          string              `json:"id"`
	CreatedAt   time.Time           `json:"created_at"`
	Profile     string              `json:"profile"`
	Strategy    string              `json:"strategy"`
	Channel     string              `json:"channel"`
	LowerBound  float64             `json:"lower_bound"`
	Background  float64             `json:"background"`
	RoomVolume  float64             `json:"room_volume"`
	Baseline    decay.FitResult     `json:"baseline"`
	Trials      []decay.TrialResult `json:"trials"`
	Summary     decay.TrialSummary  `json:"summary"`
	RecordingID string              `json:"recording_id,omitempty"`
}
