package decay

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// TrialSummary is the mean CADR across trials and its standard error.
type TrialSummary struct {
	Mean float64 `json:"mean_cadr" yaml:"mean_cadr"`
	SEM  float64 `json:"sem_cadr" yaml:"sem_cadr"`
	N    int     `json:"n" yaml:"n"`
}

// Summarize averages CADR values. The SEM uses the unbiased sample standard
// deviation. With a single value the SEM is reported as 0, unless requireSEM
// is set, in which case ErrInsufficientTrials is returned.
func Summarize(values []float64, requireSEM bool) (TrialSummary, error) {
	n := len(values)
	switch {
	case n == 0:
		return TrialSummary{}, fmt.Errorf("%w: no trials", ErrInsufficientTrials)
	case n == 1 && requireSEM:
		return TrialSummary{}, fmt.Errorf("%w: standard error needs at least 2 trials", ErrInsufficientTrials)
	case n == 1:
		return TrialSummary{Mean: values[0], N: 1}, nil
	}

	mean, std := stat.MeanStdDev(values, nil)
	return TrialSummary{
		Mean: mean,
		SEM:  stat.StdErr(std, float64(n)),
		N:    n,
	}, nil
}
