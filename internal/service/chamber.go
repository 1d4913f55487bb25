package service

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"cadr/internal/decay"
	"cadr/internal/logger"
	"cadr/internal/metrics"
	"cadr/internal/models"
	"cadr/internal/repository"
	"cadr/internal/sensor"

	"github.com/google/uuid"
)

var (
	ErrChamberBusy = errors.New("chamber is already recording")
	ErrChamberIdle = errors.New("chamber is not recording")
)

const (
	// countsPerMass scales a mass reading to a particle count channel.
	countsPerMass = 120.0
	// decayedFraction ends a recording once the excess concentration has
	// fallen to this fraction of the peak excess.
	decayedFraction = 0.01

	defaultSampleStep = 10 * time.Second
	defaultMaxSamples = 2000
)

// ChamberModel generates the readings of one simulated decay test: a linear
// injection ramp to Peak followed by first-order decay at ACH.
type ChamberModel struct {
	Params  ChamberParams
	Profile sensor.Profile
	Step    time.Duration

	rng *rand.Rand
}

func NewChamberModel(p ChamberParams, profile sensor.Profile, step time.Duration) *ChamberModel {
	return &ChamberModel{
		Params:  p,
		Profile: profile,
		Step:    step,
		rng:     rand.New(rand.NewPCG(p.Seed, p.Seed^0x9e3779b97f4a7c15)),
	}
}

// newChamberModel applies defaults to p, validates it and resolves its
// sensor profile.
func newChamberModel(p ChamberParams, step time.Duration) (*ChamberModel, error) {
	if err := prepare(&p); err != nil {
		return nil, err
	}
	if p.Peak <= p.Background {
		return nil, fmt.Errorf("%w: peak %.1f must exceed background %.1f", ErrInvalidParams, p.Peak, p.Background)
	}
	profile, err := sensor.Lookup(p.Profile)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	return NewChamberModel(p, profile, step), nil
}

// Simulate runs one chamber test to completion in memory and returns the
// series a recording would have stored.
func Simulate(p ChamberParams, step time.Duration, maxSamples int) (decay.TimeSeries, error) {
	if step <= 0 {
		step = defaultSampleStep
	}
	if maxSamples <= 0 {
		maxSamples = defaultMaxSamples
	}
	model, err := newChamberModel(p, step)
	if err != nil {
		return decay.TimeSeries{}, err
	}

	ts := decay.TimeSeries{Channels: map[string][]float64{}}
	for seq := range maxSamples {
		ts.Time = append(ts.Time, model.Elapsed(seq))
		for name, v := range model.Sample(seq) {
			ts.Channels[name] = append(ts.Channels[name], v)
		}
		if model.Done(seq) {
			break
		}
	}
	return ts, nil
}

// Elapsed is the simulated time of sample seq in seconds.
func (m *ChamberModel) Elapsed(seq int) float64 {
	return float64(seq) * m.Step.Seconds()
}

// Truth is the noiseless concentration at sample seq.
func (m *ChamberModel) Truth(seq int) float64 {
	p := m.Params
	if seq < p.RampSamples {
		return p.Background + (p.Peak-p.Background)*float64(seq+1)/float64(p.RampSamples)
	}
	since := m.Elapsed(seq) - m.Elapsed(max(p.RampSamples-1, 0))
	return p.Background + (p.Peak-p.Background)*math.Exp(-p.ACH*since/3600)
}

// Done reports whether the decay after sample seq has run its course.
func (m *ChamberModel) Done(seq int) bool {
	if seq < m.Params.RampSamples {
		return false
	}
	return m.Truth(seq)-m.Params.Background <= decayedFraction*(m.Params.Peak-m.Params.Background)
}

// Sample returns the channel readings at seq, with noise and the sensor's
// saturation applied.
func (m *ChamberModel) Sample(seq int) map[string]float64 {
	c := m.Truth(seq) * (1 + m.Params.Noise*m.rng.NormFloat64())
	c = math.Max(c, 0)

	out := map[string]float64{m.Profile.Channel: c}
	sat := m.Profile.Saturation
	switch {
	case sat.Channel == "":
	case sat.Channel == m.Profile.Channel:
		out[sat.Channel] = math.Min(c, sat.Limit)
	default:
		out[sat.Channel] = math.Min(math.Round(c*countsPerMass), sat.Limit)
	}
	return out
}

// ChamberService drives at most one ChamberModel at a time and records its
// samples.
type ChamberService struct {
	recordings repository.RecordingRepo
	events     repository.EventRepo
	metrics    *metrics.Recorder
	log        *logger.Logger

	step       time.Duration
	maxSamples int

	mu        sync.Mutex
	active    *models.Recording
	model     *ChamberModel
	seq       int
	last      map[string]float64
	updatedAt time.Time
}

func NewChamberService(recordings repository.RecordingRepo, events repository.EventRepo, deps Deps) *ChamberService {
	s := &ChamberService{
		recordings: recordings,
		events:     events,
		metrics:    deps.Metrics,
		log:        deps.Log,
		step:       deps.SampleStep,
		maxSamples: deps.MaxSamples,
	}
	if s.step <= 0 {
		s.step = defaultSampleStep
	}
	if s.maxSamples <= 0 {
		s.maxSamples = defaultMaxSamples
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	return s
}

// Start begins a new recording.
func (s *ChamberService) Start(ctx context.Context, p ChamberParams) (models.Recording, error) {
	model, err := newChamberModel(p, s.step)
	if err != nil {
		return models.Recording{}, err
	}
	p = model.Params

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != nil {
		return models.Recording{}, ErrChamberBusy
	}

	now := time.Now().UTC()
	rec := models.Recording{
		ID:        uuid.NewString(),
		Profile:   model.Profile.Name,
		ACH:       p.ACH,
		Status:    models.RecordingActive,
		StartedAt: now,
	}
	if err := s.recordings.Create(ctx, rec); err != nil {
		return models.Recording{}, err
	}

	s.active = &rec
	s.model = model
	s.seq = 0
	s.last = nil
	s.updatedAt = now

	s.log.Infow("recording_started", "recording_id", rec.ID, "profile", rec.Profile, "ach", p.ACH, "peak", p.Peak)
	recordEvent(ctx, s.events, s.log, models.Event{
		Type:        models.EventRecordingStart,
		Description: "recording started",
		RecordingID: rec.ID,
		Metadata: map[string]any{
			"profile": rec.Profile,
			"ach":     p.ACH,
			"peak":    p.Peak,
		},
	})
	return rec, nil
}

// Stop ends the active recording early.
func (s *ChamberService) Stop(ctx context.Context) (models.Recording, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return models.Recording{}, ErrChamberIdle
	}
	return s.finishLocked(ctx, models.RecordingStopped, time.Now().UTC())
}

func (s *ChamberService) Status(_ context.Context) (ChamberStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := ChamberStatus{Active: s.active != nil, UpdatedAt: s.updatedAt}
	if s.active != nil {
		rec := *s.active
		st.Recording = &rec
		st.Elapsed = s.model.Elapsed(max(s.seq-1, 0))
		st.Last = maps.Clone(s.last)
	}
	return st, nil
}

func (s *ChamberService) Recording(ctx context.Context, id string) (models.Recording, error) {
	return s.recordings.Get(ctx, id)
}

func (s *ChamberService) Recordings(ctx context.Context) ([]models.Recording, error) {
	return s.recordings.List(ctx)
}

// Run ticks at the given interval until ctx is canceled, recording one
// sample per tick while a recording is active.
func (s *ChamberService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			s.advance(ctx, now.UTC())
		}
	}
}

// advance records the next sample of the active recording, if any.
func (s *ChamberService) advance(ctx context.Context, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return
	}

	values := s.model.Sample(s.seq)
	t := s.model.Elapsed(s.seq)
	if err := s.recordings.AppendSample(ctx, s.active.ID, s.seq, t, values); err != nil {
		s.log.Errorw("append_sample_failed", "recording_id", s.active.ID, "seq", s.seq, "err", err)
		return
	}
	s.metrics.SampleRecorded()
	s.active.Samples++
	s.last = values
	s.updatedAt = now

	done := s.model.Done(s.seq)
	s.seq++
	if done || s.seq >= s.maxSamples {
		if _, err := s.finishLocked(ctx, models.RecordingFinished, now); err != nil {
			// The recording is complete either way; stop sampling it.
			rec := s.release(now)
			s.log.Errorw("finish_recording_failed", "recording_id", rec.ID, "samples", rec.Samples, "err", err)
			recordEvent(ctx, s.events, s.log, models.Event{
				Type:        models.EventError,
				Description: "recording finish failed",
				RecordingID: rec.ID,
				Metadata: map[string]any{
					"samples": rec.Samples,
					"error":   err.Error(),
				},
			})
		}
	}
}

// release detaches the active recording from the chamber and returns it.
func (s *ChamberService) release(at time.Time) models.Recording {
	rec := *s.active
	s.active = nil
	s.model = nil
	s.updatedAt = at
	return rec
}

func (s *ChamberService) finishLocked(ctx context.Context, status string, at time.Time) (models.Recording, error) {
	if err := s.recordings.Finish(ctx, s.active.ID, status, at); err != nil {
		return models.Recording{}, err
	}
	rec := s.release(at)
	rec.Status = status
	rec.FinishedAt = &at

	s.log.Infow("recording_finished", "recording_id", rec.ID, "status", status, "samples", rec.Samples)
	recordEvent(ctx, s.events, s.log, models.Event{
		Type:        models.EventRecordingStop,
		Description: "recording " + status,
		RecordingID: rec.ID,
		Metadata: map[string]any{
			"status":  status,
			"samples": rec.Samples,
		},
	})
	return rec, nil
}
