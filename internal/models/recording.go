package models

import "time"

// Recording statuses.
const (
	RecordingActive   = "ACTIVE"
	RecordingFinished = "FINISHED"
	RecordingStopped  = "STOPPED"
)

// Recording is a chamber run captured sample by sample.
type Recording struct {
	ID         string     `json:"id"`
	Profile    string     `json:"profile"`
	ACH        float64    `json:"ach"`
	Status     string     `json:"status"`
	Samples    int        `json:"samples"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}
