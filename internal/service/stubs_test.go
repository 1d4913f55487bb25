package service

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"
	"time"

	"cadr/internal/cache"
	"cadr/internal/decay"
	"cadr/internal/models"
	"cadr/internal/repository"
)

type fakeRunRepo struct {
	mu      sync.Mutex
	runs    map[string]models.Run
	saveErr error
}

func newFakeRunRepo() *fakeRunRepo { return &fakeRunRepo{runs: map[string]models.Run{}} }

func (f *fakeRunRepo) Save(_ context.Context, r models.Run) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.runs[r.ID] = r
	return nil
}

func (f *fakeRunRepo) Get(_ context.Context, id string) (models.Run, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.runs[id]
	if !ok {
		return models.Run{}, fmt.Errorf("run %s: %w", id, repository.ErrNotFound)
	}
	return r, nil
}

func (f *fakeRunRepo) List(_ context.Context, limit int) ([]models.Run, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Run
	for _, r := range f.runs {
		out = append(out, r)
	}
	return out, nil
}

type fakeSample struct {
	t      float64
	values map[string]float64
}

type fakeRecordingRepo struct {
	mu        sync.Mutex
	recs      map[string]models.Recording
	samples   map[string][]fakeSample
	appendErr error
	finishErr error
}

func newFakeRecordingRepo() *fakeRecordingRepo {
	return &fakeRecordingRepo{recs: map[string]models.Recording{}, samples: map[string][]fakeSample{}}
}

func (f *fakeRecordingRepo) Create(_ context.Context, r models.Recording) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recs[r.ID] = r
	return nil
}

func (f *fakeRecordingRepo) AppendSample(_ context.Context, id string, seq int, t float64, values map[string]float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	if seq != len(f.samples[id]) {
		return fmt.Errorf("seq %d out of order", seq)
	}
	f.samples[id] = append(f.samples[id], fakeSample{t: t, values: maps.Clone(values)})
	return nil
}

func (f *fakeRecordingRepo) Finish(_ context.Context, id, status string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.finishErr != nil {
		return f.finishErr
	}
	r, ok := f.recs[id]
	if !ok {
		return repository.ErrNotFound
	}
	r.Status = status
	r.FinishedAt = &at
	f.recs[id] = r
	return nil
}

func (f *fakeRecordingRepo) Get(_ context.Context, id string) (models.Recording, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.recs[id]
	if !ok {
		return models.Recording{}, fmt.Errorf("recording %s: %w", id, repository.ErrNotFound)
	}
	r.Samples = len(f.samples[id])
	return r, nil
}

func (f *fakeRecordingRepo) List(_ context.Context) ([]models.Recording, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Recording
	for _, r := range f.recs {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRecordingRepo) Series(_ context.Context, id string) (decay.TimeSeries, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ss := f.samples[id]
	if len(ss) == 0 {
		return decay.TimeSeries{}, repository.ErrNotFound
	}
	ts := decay.TimeSeries{Channels: map[string][]float64{}}
	for _, s := range ss {
		ts.Time = append(ts.Time, s.t)
		for k, v := range s.values {
			ts.Channels[k] = append(ts.Channels[k], v)
		}
	}
	return ts, nil
}

// countingCache records hits on top of an in-memory cache.
type countingCache struct {
	*cache.Memory
	hits int
}

func (c *countingCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, ok, err := c.Memory.Get(ctx, key)
	if ok {
		c.hits++
	}
	return b, ok, err
}

var errBoom = errors.New("boom")
