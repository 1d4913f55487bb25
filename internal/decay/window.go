package decay

import (
	"errors"
	"fmt"
)

// Window is a contiguous sub-range [Start, End) of a series, in offsets into
// the series handed to the selector.
type Window struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Len returns the number of samples in w.
func (w Window) Len() int { return w.End - w.Start }

// Saturation flags the overflow region before decay is measurable: a sample
// is saturated while Channel >= Limit. An empty Channel, or one the series
// does not carry, disables the check.
type Saturation struct {
	Channel string  `json:"channel,omitempty" yaml:"channel,omitempty"`
	Limit   float64 `json:"limit,omitempty" yaml:"limit,omitempty"`
}

// end returns the index of the first unsaturated sample.
func (s Saturation) end(ts TimeSeries) (int, error) {
	if s.Channel == "" {
		return 0, nil
	}
	col, ok := ts.Channels[s.Channel]
	if !ok {
		return 0, nil
	}
	for i, v := range col {
		if v < s.Limit {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %s never drops below saturation limit %g", ErrWindowNotFound, s.Channel, s.Limit)
}

// firstBelow returns the first index where col drops under lower. Only the
// first crossing counts, a single noisy dip ends the window.
func firstBelow(col []float64, lower float64) (int, error) {
	for i, v := range col {
		if v < lower {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: concentration never drops below lower bound %g", ErrWindowNotFound, lower)
}

// Selector chooses where the decay model is valid and fits it there.
// FixedBound and ExhaustiveSearch are the two implementations.
type Selector interface {
	Name() string
	Estimate(ts TimeSeries, background float64) (FitResult, Window, error)
}

// Strategy names accepted by NewSelector.
const (
	StrategyFixedBound = "fixed_bound"
	StrategyExhaustive = "exhaustive"
)

// NewSelector builds the selector registered under strategy.
func NewSelector(strategy, channel string, sat Saturation, lower float64) (Selector, error) {
	switch strategy {
	case StrategyFixedBound:
		return FixedBound{Channel: channel, Saturation: sat, Lower: lower}, nil
	case StrategyExhaustive:
		return ExhaustiveSearch{Channel: channel, Saturation: sat, Lower: lower}, nil
	default:
		return nil, fmt.Errorf("%w: unknown window strategy %q", ErrInvalidInput, strategy)
	}
}

// peak validates ts and returns the offset of the channel maximum.
func peak(ts TimeSeries, channel string) (int, error) {
	if err := ts.Validate(); err != nil {
		return 0, err
	}
	col, err := ts.Channel(channel)
	if err != nil {
		return 0, err
	}
	return argMax(col), nil
}

// FixedBound trims at explicit thresholds: start at the channel peak, skip
// the saturated run, stop at the first sample below Lower.
type FixedBound struct {
	Channel    string
	Saturation Saturation
	Lower      float64
}

func (f FixedBound) Name() string { return StrategyFixedBound }

// Select returns the fitting window without fitting it.
func (f FixedBound) Select(ts TimeSeries) (Window, error) {
	top, err := peak(ts, f.Channel)
	if err != nil {
		return Window{}, err
	}
	rest := ts.Tail(top)

	skip, err := f.Saturation.end(rest)
	if err != nil {
		return Window{}, err
	}
	rest = rest.Tail(skip)

	cut, err := firstBelow(rest.Channels[f.Channel], f.Lower)
	if err != nil {
		return Window{}, err
	}

	w := Window{Start: top + skip, End: top + skip + cut}
	if w.Len() < MinWindowSamples {
		return Window{}, fmt.Errorf("%w: window [%d,%d) holds %d samples", ErrInsufficientData, w.Start, w.End, w.Len())
	}
	return w, nil
}

func (f FixedBound) Estimate(ts TimeSeries, background float64) (FitResult, Window, error) {
	w, err := f.Select(ts)
	if err != nil {
		return FitResult{}, Window{}, err
	}
	fit, err := Fit(ts.Window(w), f.Channel, background)
	if err != nil {
		return FitResult{}, Window{}, err
	}
	return fit, w, nil
}

// ExhaustiveSearch fits every start offset between the channel peak and the
// end of saturation and keeps the fit with the smallest standard error.
type ExhaustiveSearch struct {
	Channel    string
	Saturation Saturation
	Lower      float64
}

func (e ExhaustiveSearch) Name() string { return StrategyExhaustive }

// Estimate tries start offsets 0..K-1 after the peak, K being the first
// unsaturated sample; without a saturated run only offset 0 is tried.
// Offsets whose window is too short or degenerate are skipped; any other
// failure aborts the search. Ties keep the lowest offset.
func (e ExhaustiveSearch) Estimate(ts TimeSeries, background float64) (FitResult, Window, error) {
	top, err := peak(ts, e.Channel)
	if err != nil {
		return FitResult{}, Window{}, err
	}
	rest := ts.Tail(top)

	candidates, err := e.Saturation.end(rest)
	if err != nil {
		return FitResult{}, Window{}, err
	}
	candidates = max(candidates, 1)

	var (
		best    FitResult
		bestWin Window
		found   bool
		skipErr error
	)
	for i := range candidates {
		sub := rest.Tail(i)
		cut, err := firstBelow(sub.Channels[e.Channel], e.Lower)
		if err != nil {
			return FitResult{}, Window{}, err
		}

		fit, err := Fit(sub.Slice(0, cut), e.Channel, background)
		if errors.Is(err, ErrInsufficientData) || errors.Is(err, ErrFitDivergence) {
			if skipErr == nil {
				skipErr = fmt.Errorf("offset %d: %w", i, err)
			}
			continue
		}
		if err != nil {
			return FitResult{}, Window{}, err
		}

		if !found || fit.StdErr < best.StdErr {
			best = fit
			bestWin = Window{Start: top + i, End: top + i + cut}
			found = true
		}
	}
	if !found {
		return FitResult{}, Window{}, skipErr
	}
	return best, bestWin, nil
}
