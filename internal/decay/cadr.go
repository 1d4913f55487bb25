package decay

import "math"

const minutesPerHour = 60.0

// CADREstimate is a clean air delivery rate in room-volume units per minute.
type CADREstimate struct {
	CADR   float64 `json:"cadr" yaml:"cadr"`
	StdErr float64 `json:"cadr_stderr" yaml:"cadr_stderr"`
}

// DepositionBaseline wraps a known natural-decay ACH as an exact baseline.
func DepositionBaseline(ach float64) FitResult {
	return FitResult{Rate: ach}
}

// ComputeCADR converts the device's share of the decay rate into a volumetric
// flow. Baseline and trial errors are independent and add in quadrature.
func ComputeCADR(baseline, trial FitResult, roomVolume float64) CADREstimate {
	net := trial.Rate - baseline.Rate
	return CADREstimate{
		CADR:   roomVolume * net / minutesPerHour,
		StdErr: roomVolume * math.Hypot(baseline.StdErr, trial.StdErr) / minutesPerHour,
	}
}
