package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cadr/internal/cache"
	"cadr/internal/decay"
	"cadr/internal/logger"
	"cadr/internal/metrics"
	"cadr/internal/models"
	"cadr/internal/repository"
	"cadr/internal/sensor"

	"github.com/google/uuid"
)

type AnalysisService struct {
	runs       repository.RunRepo
	recordings repository.RecordingRepo
	events     repository.EventRepo

	cache    cache.Cache
	cacheTTL time.Duration
	metrics  *metrics.Recorder
	log      *logger.Logger

	defaultProfile    string
	defaultBackground float64
}

func NewAnalysisService(runs repository.RunRepo, recordings repository.RecordingRepo, events repository.EventRepo, deps Deps) *AnalysisService {
	s := &AnalysisService{
		runs:              runs,
		recordings:        recordings,
		events:            events,
		cache:             deps.Cache,
		cacheTTL:          deps.CacheTTL,
		metrics:           deps.Metrics,
		log:               deps.Log,
		defaultProfile:    deps.DefaultProfile,
		defaultBackground: deps.DefaultBackground,
	}
	if s.cache == nil {
		s.cache = cache.Nop{}
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	return s
}

// resolve applies configured defaults to sel and builds its selector.
func (s *AnalysisService) resolve(sel *Selection) (sensor.Profile, decay.Selector, error) {
	if sel.Profile == "" {
		sel.Profile = s.defaultProfile
	}
	if sel.Background == 0 {
		sel.Background = s.defaultBackground
	}
	p, err := sensor.Lookup(sel.Profile)
	if err != nil {
		return sensor.Profile{}, nil, fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	p = p.Apply(sensor.Overrides{Channel: sel.Channel, Strategy: sel.Strategy, LowerBound: sel.LowerBound})
	selector, err := p.Selector()
	if err != nil {
		return sensor.Profile{}, nil, err
	}
	return p, selector, nil
}

func (s *AnalysisService) cached(ctx context.Context, key string, out any) bool {
	if key == "" {
		return false
	}
	b, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warnw("cache_get_failed", "key", key, "err", err)
		return false
	}
	if !ok || json.Unmarshal(b, out) != nil {
		return false
	}
	s.metrics.CacheHit()
	return true
}

func (s *AnalysisService) store(ctx context.Context, key string, v any) {
	if key == "" {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, b, s.cacheTTL); err != nil {
		s.log.Warnw("cache_set_failed", "key", key, "err", err)
	}
}

// Fit windows and fits one series and converts it to CADR against a
// scalar deposition rate.
func (s *AnalysisService) Fit(ctx context.Context, p FitParams) (FitOutcome, error) {
	if err := prepare(&p); err != nil {
		return FitOutcome{}, err
	}
	profile, selector, err := s.resolve(&p.Selection)
	if err != nil {
		return FitOutcome{}, err
	}

	key, _ := cache.Key("fit", profile, p)
	var out FitOutcome
	if s.cached(ctx, key, &out) {
		return out, nil
	}

	start := time.Now()
	fit, w, err := selector.Estimate(p.Series, p.Background)
	s.metrics.ObserveFit(selector.Name(), time.Since(start), err)
	if err != nil {
		s.log.Debugw("fit_failed", "profile", profile.Name, "strategy", selector.Name(), "err", err)
		return FitOutcome{}, err
	}

	out = FitOutcome{
		Profile:  profile.Name,
		Strategy: selector.Name(),
		Channel:  profile.Channel,
		Fit:      fit,
		Window:   w,
		CADR:     decay.ComputeCADR(decay.DepositionBaseline(p.BaselineACH), fit, p.RoomVolume),
	}
	s.store(ctx, key, out)
	return out, nil
}

// Analyze runs the multi-trial pipeline and persists the result.
func (s *AnalysisService) Analyze(ctx context.Context, p RunParams) (models.Run, error) {
	if err := prepare(&p); err != nil {
		return models.Run{}, err
	}
	profile, selector, err := s.resolve(&p.Selection)
	if err != nil {
		return models.Run{}, err
	}

	key, _ := cache.Key("run", profile, p)
	var rep decay.Report
	if !s.cached(ctx, key, &rep) {
		rep, err = decay.Analyze(ctx, decay.Experiment{
			Selector:    selector,
			Background:  p.Background,
			RoomVolume:  p.RoomVolume,
			Baseline:    p.Baseline,
			BaselineACH: p.BaselineACH,
			Trials:      p.Trials,
			RequireSEM:  p.RequireSEM,
		})
		s.metrics.ObserveRun(profile.Name, rep.Summary.Mean, err)
		if err != nil {
			s.log.Warnw("analysis_failed", "profile", profile.Name, "trials", len(p.Trials), "err", err)
			recordEvent(ctx, s.events, s.log, models.Event{
				Type:        models.EventError,
				Description: "analysis failed",
				RecordingID: p.recordingID,
				Metadata: map[string]any{
					"profile": profile.Name,
					"error":   err.Error(),
				},
			})
			return models.Run{}, err
		}
		s.store(ctx, key, rep)
	}

	run := models.Run{
		ID:          uuid.NewString(),
		CreatedAt:   time.Now().UTC(),
		Profile:     profile.Name,
		Strategy:    selector.Name(),
		Channel:     profile.Channel,
		LowerBound:  profile.LowerBound,
		Background:  p.Background,
		RoomVolume:  p.RoomVolume,
		Baseline:    rep.Baseline,
		Trials:      rep.Trials,
		Summary:     rep.Summary,
		RecordingID: p.recordingID,
	}
	if err := s.runs.Save(ctx, run); err != nil {
		s.log.Errorw("save_run_failed", "run_id", run.ID, "err", err)
		return models.Run{}, fmt.Errorf("save run: %w", err)
	}

	s.log.Infow("analysis_completed",
		"run_id", run.ID,
		"profile", run.Profile,
		"mean_cadr", run.Summary.Mean,
		"sem_cadr", run.Summary.SEM,
		"trials", run.Summary.N,
	)
	recordEvent(ctx, s.events, s.log, models.Event{
		Type:        models.EventAnalysis,
		Description: "analysis completed",
		RunID:       run.ID,
		RecordingID: run.RecordingID,
		Metadata: map[string]any{
			"profile":   run.Profile,
			"mean_cadr": run.Summary.Mean,
			"sem_cadr":  run.Summary.SEM,
			"n":         run.Summary.N,
		},
	})
	return run, nil
}

// FitRecording analyses a stored recording as a single trial.
func (s *AnalysisService) FitRecording(ctx context.Context, id string, p RecordingFitParams) (models.Run, error) {
	rec, err := s.recordings.Get(ctx, id)
	if err != nil {
		return models.Run{}, err
	}
	if rec.Status == models.RecordingActive {
		return models.Run{}, fmt.Errorf("%w: recording %s is still active", ErrInvalidParams, id)
	}
	ts, err := s.recordings.Series(ctx, id)
	if err != nil {
		return models.Run{}, err
	}
	if p.Profile == "" {
		p.Profile = rec.Profile
	}
	return s.Analyze(ctx, RunParams{
		Selection:   p.Selection,
		BaselineACH: p.BaselineACH,
		RoomVolume:  p.RoomVolume,
		Trials:      []decay.TimeSeries{ts},
		recordingID: id,
	})
}

func (s *AnalysisService) GetRun(ctx context.Context, id string) (models.Run, error) {
	return s.runs.Get(ctx, id)
}

func (s *AnalysisService) ListRuns(ctx context.Context, limit int) ([]models.Run, error) {
	return s.runs.List(ctx, limit)
}
