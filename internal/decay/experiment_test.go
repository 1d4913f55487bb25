package decay

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestAnalyze_BaselineSeriesAndTrials(t *testing.T) {
	baseline := chamberRun([]float64{100}, 900, 1, 30, 400, 0)
	trials := []TimeSeries{
		chamberRun([]float64{100}, 900, 5, 10, 200, 0),
		chamberRun([]float64{200, 300}, 850, 5, 10, 200, 0),
		chamberRun(nil, 950, 5, 5, 400, 0),
	}

	rep, err := Analyze(context.Background(), Experiment{
		Selector:   FixedBound{Channel: "pm2.5", Lower: 100},
		RoomVolume: 120,
		Baseline:   &baseline,
		Trials:     trials,
		RequireSEM: true,
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !almostEqual(rep.Baseline.Rate, 1, 1e-6) || rep.BaselineWindow == nil {
		t.Fatalf("baseline=%+v window=%v", rep.Baseline, rep.BaselineWindow)
	}
	if len(rep.Trials) != 3 {
		t.Fatalf("trials=%d, want 3", len(rep.Trials))
	}
	for i, tr := range rep.Trials {
		if !almostEqual(tr.CADR.CADR, 8, 1e-4) {
			t.Fatalf("trial %d CADR=%v, want 8", i, tr.CADR.CADR)
		}
	}
	if !almostEqual(rep.Summary.Mean, 8, 1e-4) || rep.Summary.N != 3 {
		t.Fatalf("summary=%+v", rep.Summary)
	}
}

func TestAnalyze_ScalarBaseline(t *testing.T) {
	rep, err := Analyze(context.Background(), Experiment{
		Selector:    ExhaustiveSearch{Channel: "pm2.5", Lower: 25},
		RoomVolume:  1000,
		BaselineACH: 0.5,
		Trials:      []TimeSeries{chamberRun(nil, 1000, 6.5, 10, 600, 0)},
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if rep.BaselineWindow != nil {
		t.Fatalf("scalar baseline should not carry a window")
	}
	if !almostEqual(rep.Summary.Mean, 100, 1e-4) || rep.Summary.SEM != 0 {
		t.Fatalf("summary=%+v, want mean 100 sem 0", rep.Summary)
	}
}

func TestAnalyze_FailedTrialAbortsAggregation(t *testing.T) {
	good := chamberRun(nil, 900, 5, 10, 200, 0)
	flat := chamberRun(nil, 900, 0.1, 10, 50, 0)

	_, err := Analyze(context.Background(), Experiment{
		Selector:   FixedBound{Channel: "pm2.5", Lower: 100},
		RoomVolume: 120,
		Trials:     []TimeSeries{good, flat, good},
	})
	if !errors.Is(err, ErrWindowNotFound) {
		t.Fatalf("expected ErrWindowNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "trial 2") {
		t.Fatalf("error should name the failing trial: %v", err)
	}
}

func TestAnalyze_BaselineFailure(t *testing.T) {
	bad := chamberRun(nil, 900, 0.1, 10, 50, 0)
	_, err := Analyze(context.Background(), Experiment{
		Selector:   FixedBound{Channel: "pm2.5", Lower: 100},
		RoomVolume: 120,
		Baseline:   &bad,
		Trials:     []TimeSeries{chamberRun(nil, 900, 5, 10, 200, 0)},
	})
	if !errors.Is(err, ErrWindowNotFound) || !strings.HasPrefix(err.Error(), "baseline") {
		t.Fatalf("expected baseline ErrWindowNotFound, got %v", err)
	}
}

func TestAnalyze_RequiresTrialsAndSelector(t *testing.T) {
	if _, err := Analyze(context.Background(), Experiment{Selector: FixedBound{Channel: "pm2.5"}}); !errors.Is(err, ErrInsufficientTrials) {
		t.Fatalf("expected ErrInsufficientTrials, got %v", err)
	}
	if _, err := Analyze(context.Background(), Experiment{Trials: []TimeSeries{{}}}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
