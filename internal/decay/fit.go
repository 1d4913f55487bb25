package decay

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	// MinWindowSamples is the smallest window the log-linear fit accepts.
	MinWindowSamples = 3

	secondsPerHour = 3600.0
)

// FitResult is the outcome of fitting C(t) = C_bgd + C0*exp(-rate*t/3600).
// Rate is in air changes per hour and StdErr shares its units.
type FitResult struct {
	C0     float64 `json:"c0" yaml:"c0"`
	Rate   float64 `json:"ach" yaml:"ach"`
	StdErr float64 `json:"stderr" yaml:"stderr"`
}

// Fit estimates the decay rate of channel over the whole of ts.
//
// The model is linearised as ln(C - C_bgd) = ln(C0) - rate*t/3600 with C0
// pinned to the first sample of the window, which leaves rate as the only
// free parameter. Time is measured from the first sample of ts. StdErr is
// the square root of the rate variance s²·(JᵀJ)⁻¹ with s² the residual
// variance on n-1 degrees of freedom.
func Fit(ts TimeSeries, channel string, background float64) (FitResult, error) {
	col, err := ts.Channel(channel)
	if err != nil {
		return FitResult{}, err
	}
	n := len(col)
	if n < MinWindowSamples {
		return FitResult{}, fmt.Errorf("%w: %d samples in window, need at least %d", ErrInsufficientData, n, MinWindowSamples)
	}
	if len(ts.Time) < n {
		return FitResult{}, fmt.Errorf("%w: channel %q longer than time column", ErrInvalidInput, channel)
	}
	for i, c := range col {
		if c-background <= 0 {
			return FitResult{}, fmt.Errorf("%w: %s[%d]=%g is not above background %g", ErrInvalidInput, channel, i, c, background)
		}
	}

	c0 := col[0] - background
	logC0 := math.Log(c0)

	hours := mat.NewDense(n, 1, nil)
	drop := mat.NewVecDense(n, nil)
	constant := true
	for i, c := range col {
		hours.Set(i, 0, (ts.Time[i]-ts.Time[0])/secondsPerHour)
		drop.SetVec(i, logC0-math.Log(c-background))
		if c != col[0] {
			constant = false
		}
	}
	if constant {
		return FitResult{}, fmt.Errorf("%w: %s is constant over the window", ErrFitDivergence, channel)
	}
	if mat.Dot(hours.ColView(0), hours.ColView(0)) == 0 {
		return FitResult{}, fmt.Errorf("%w: all samples share one timestamp", ErrFitDivergence)
	}

	var rate mat.VecDense
	if err := rate.SolveVec(hours, drop); err != nil {
		return FitResult{}, fmt.Errorf("%w: least squares: %v", ErrFitDivergence, err)
	}

	var resid mat.VecDense
	resid.MulVec(hours, &rate)
	resid.SubVec(drop, &resid)
	ssr := mat.Dot(&resid, &resid)

	var jtj, cov mat.Dense
	jtj.Mul(hours.T(), hours)
	if err := cov.Inverse(&jtj); err != nil {
		return FitResult{}, fmt.Errorf("%w: covariance: %v", ErrFitDivergence, err)
	}
	stderr := math.Sqrt(ssr / float64(n-1) * cov.At(0, 0))

	res := FitResult{C0: c0, Rate: rate.AtVec(0), StdErr: stderr}
	if !isFinite(res.Rate) || !isFinite(res.StdErr) {
		return FitResult{}, fmt.Errorf("%w: non-finite estimate rate=%g stderr=%g", ErrFitDivergence, res.Rate, res.StdErr)
	}
	return res, nil
}
