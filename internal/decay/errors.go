package decay

import "errors"

// Failure modes of the decay-fit engine. All of them come from the shape of
// the input data, so none of them is worth retrying without new data.
var (
	ErrWindowNotFound     = errors.New("window not found")
	ErrInsufficientData   = errors.New("insufficient data")
	ErrInvalidInput       = errors.New("invalid input")
	ErrFitDivergence      = errors.New("fit diverged")
	ErrInsufficientTrials = errors.New("insufficient trials")
)
