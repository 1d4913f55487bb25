package decay

import (
	"fmt"
	"math"
)

// TimeSeries is a columnar decay recording. Time holds seconds since the
// first sample; every channel holds one concentration per time sample.
type TimeSeries struct {
	Time     []float64            `json:"time" yaml:"time"`
	Channels map[string][]float64 `json:"channels" yaml:"channels"`
}

// Len returns the number of samples.
func (ts TimeSeries) Len() int { return len(ts.Time) }

// Validate checks column lengths, time ordering and finiteness.
func (ts TimeSeries) Validate() error {
	if len(ts.Time) == 0 {
		return fmt.Errorf("%w: empty time series", ErrInvalidInput)
	}
	for i, t := range ts.Time {
		if !isFinite(t) {
			return fmt.Errorf("%w: time[%d] is not finite", ErrInvalidInput, i)
		}
		if i > 0 && t < ts.Time[i-1] {
			return fmt.Errorf("%w: time[%d]=%g goes backwards from %g", ErrInvalidInput, i, t, ts.Time[i-1])
		}
	}
	for name, col := range ts.Channels {
		if len(col) != len(ts.Time) {
			return fmt.Errorf("%w: channel %q has %d samples, time has %d", ErrInvalidInput, name, len(col), len(ts.Time))
		}
		for i, v := range col {
			if !isFinite(v) {
				return fmt.Errorf("%w: %s[%d] is not finite", ErrInvalidInput, name, i)
			}
		}
	}
	return nil
}

// Channel returns the named concentration column.
func (ts TimeSeries) Channel(name string) ([]float64, error) {
	col, ok := ts.Channels[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown channel %q", ErrInvalidInput, name)
	}
	return col, nil
}

// Slice returns samples [start, end) as a new series whose first retained
// sample sits at t=0. Bounds are clamped to the series.
func (ts TimeSeries) Slice(start, end int) TimeSeries {
	n := ts.Len()
	end = min(max(end, 0), n)
	start = min(max(start, 0), end)

	out := TimeSeries{
		Time:     make([]float64, end-start),
		Channels: make(map[string][]float64, len(ts.Channels)),
	}
	if end > start {
		t0 := ts.Time[start]
		for i := start; i < end; i++ {
			out.Time[i-start] = ts.Time[i] - t0
		}
	}
	for name, col := range ts.Channels {
		hi := min(end, len(col))
		lo := min(start, hi)
		out.Channels[name] = append(make([]float64, 0, hi-lo), col[lo:hi]...)
	}
	return out
}

// Tail drops the first start samples and re-zeroes time.
func (ts TimeSeries) Tail(start int) TimeSeries { return ts.Slice(start, ts.Len()) }

// Rezero shifts time so the first sample is at t=0. Applying it twice is a no-op.
func (ts TimeSeries) Rezero() TimeSeries { return ts.Slice(0, ts.Len()) }

// Window returns the samples covered by w, re-zeroed at w.Start.
func (ts TimeSeries) Window(w Window) TimeSeries { return ts.Slice(w.Start, w.End) }

// argMax returns the index of the first maximum of col.
func argMax(col []float64) int {
	best := 0
	for i, v := range col {
		if v > col[best] {
			best = i
		}
	}
	return best
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
