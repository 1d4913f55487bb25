package decay

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Experiment is one baseline plus N trial recordings of the same room.
// When Baseline is nil, BaselineACH is used as an exact deposition rate.
type Experiment struct {
	Selector    Selector
	Background  float64
	RoomVolume  float64
	Baseline    *TimeSeries
	BaselineACH float64
	Trials      []TimeSeries
	RequireSEM  bool
}

// TrialResult is the fit and CADR of one trial.
type TrialResult struct {
	Fit    FitResult    `json:"fit" yaml:"fit"`
	Window Window       `json:"window" yaml:"window"`
	CADR   CADREstimate `json:"cadr" yaml:"cadr"`
}

// Report is the outcome of Analyze.
type Report struct {
	Baseline       FitResult     `json:"baseline" yaml:"baseline"`
	BaselineWindow *Window       `json:"baseline_window,omitempty" yaml:"baseline_window,omitempty"`
	Trials         []TrialResult `json:"trials" yaml:"trials"`
	Summary        TrialSummary  `json:"summary" yaml:"summary"`
}

// Analyze fits the baseline once, fits every trial concurrently against it
// and summarises the CADR values. A failed trial fails the whole experiment:
// dropping it would bias the mean.
func Analyze(ctx context.Context, exp Experiment) (Report, error) {
	if exp.Selector == nil {
		return Report{}, fmt.Errorf("%w: no window selector", ErrInvalidInput)
	}
	if len(exp.Trials) == 0 {
		return Report{}, fmt.Errorf("%w: no trials", ErrInsufficientTrials)
	}

	rep := Report{Baseline: DepositionBaseline(exp.BaselineACH)}
	if exp.Baseline != nil {
		fit, w, err := exp.Selector.Estimate(*exp.Baseline, exp.Background)
		if err != nil {
			return Report{}, fmt.Errorf("baseline: %w", err)
		}
		rep.Baseline = fit
		rep.BaselineWindow = &w
	}

	rep.Trials = make([]TrialResult, len(exp.Trials))
	g, gctx := errgroup.WithContext(ctx)
	for i, ts := range exp.Trials {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fit, w, err := exp.Selector.Estimate(ts, exp.Background)
			if err != nil {
				return fmt.Errorf("trial %d: %w", i+1, err)
			}
			rep.Trials[i] = TrialResult{
				Fit:    fit,
				Window: w,
				CADR:   ComputeCADR(rep.Baseline, fit, exp.RoomVolume),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	cadrs := make([]float64, len(rep.Trials))
	for i, tr := range rep.Trials {
		cadrs[i] = tr.CADR.CADR
	}
	summary, err := Summarize(cadrs, exp.RequireSEM)
	if err != nil {
		return Report{}, err
	}
	rep.Summary = summary
	return rep, nil
}
