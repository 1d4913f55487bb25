package service

import (
	"errors"
	"fmt"
	"time"

	"cadr/internal/decay"
	"cadr/internal/models"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
)

// ErrInvalidParams wraps request validation failures.
var ErrInvalidParams = errors.New("invalid parameters")

var validate = validator.New()

// prepare fills default tags and validates p.
func prepare(p any) error {
	if err := defaults.Set(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return nil
}

// Selection picks the sensor profile and any per-request overrides. An
// empty Channel or a zero LowerBound keeps the profile's own value.
type Selection struct {
	Profile    string  `json:"profile,omitempty" example:"sps30"`
	Strategy   string  `json:"strategy,omitempty" validate:"omitempty,oneof=fixed_bound exhaustive" example:"exhaustive"`
	Channel    string  `json:"channel,omitempty" example:"mPM2.5"`
	LowerBound float64 `json:"lower_bound,omitempty" validate:"omitempty,gt=0" example:"100"`
	Background float64 `json:"background,omitempty" validate:"gte=0"`
}

// FitParams is a single-series fit against a scalar deposition rate.
type FitParams struct {
	Selection
	Series      decay.TimeSeries `json:"series"`
	BaselineACH float64          `json:"baseline_ach" validate:"gte=0" example:"0.4"`
	RoomVolume  float64          `json:"room_volume" validate:"gt=0" example:"1000"`
}

// FitOutcome is the result of Fit.
type FitOutcome struct {
	Profile  string             `json:"profile"`
	Strategy string             `json:"strategy"`
	Channel  string             `json:"channel"`
	Fit      decay.FitResult    `json:"fit"`
	Window   decay.Window       `json:"window"`
	CADR     decay.CADREstimate `json:"cadr"`
}

// RunParams is a baseline plus trials analysis. Baseline may be omitted in
// favour of BaselineACH.
type RunParams struct {
	Selection
	Baseline    *decay.TimeSeries  `json:"baseline,omitempty"`
	BaselineACH float64            `json:"baseline_ach" validate:"gte=0"`
	RoomVolume  float64            `json:"room_volume" validate:"gt=0" example:"1000"`
	Trials      []decay.TimeSeries `json:"trials" validate:"min=1"`
	RequireSEM  bool               `json:"require_sem"`

	recordingID string
}

// RecordingFitParams analyses a stored chamber recording as a single trial.
// An empty profile uses the recording's profile.
type RecordingFitParams struct {
	Selection
	BaselineACH float64 `json:"baseline_ach" validate:"gte=0"`
	RoomVolume  float64 `json:"room_volume" validate:"gt=0" example:"1000"`
}

// ChamberParams configures a simulated decay recording.
type ChamberParams struct {
	Profile     string  `json:"profile" default:"sps30" validate:"required" example:"sps30"`
	ACH         float64 `json:"ach" default:"4" validate:"gt=0" example:"4"`
	Peak        float64 `json:"peak" default:"800" validate:"gt=0" example:"800"`
	Background  float64 `json:"background" validate:"gte=0"`
	Noise       float64 `json:"noise" default:"0.02" validate:"gte=0,lt=1"`
	RampSamples int     `json:"ramp_samples" default:"5" validate:"gte=0"`
	Seed        uint64  `json:"seed"`
}

// ChamberStatus is a snapshot of the simulator.
type ChamberStatus struct {
	Active    bool               `json:"active"`
	Recording *models.Recording  `json:"recording,omitempty"`
	Elapsed   float64            `json:"elapsed_s"`
	Last      map[string]float64 `json:"last,omitempty"`
	UpdatedAt time.Time          `json:"updated_at"`
}
