package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cadr/internal/decay"
	"cadr/internal/models"
)

type RecordingSQLite struct {
	db *sql.DB
}

func NewRecordingSQLite(db *sql.DB) *RecordingSQLite {
	return &RecordingSQLite{db: db}
}

const (
	insertRecordingSQL = `
		INSERT INTO recordings (id, profile, ach, status, started_at)
		VALUES (?, ?, ?, ?, ?)
	`

	insertSampleSQL = `
		INSERT INTO recording_samples (recording_id, seq, t, channels)
		VALUES (?, ?, ?, ?)
	`

	finishRecordingSQL = `UPDATE recordings SET status = ?, finished_at = ? WHERE id = ?`

	recordingColumns = `r.id, r.profile, r.ach, r.status, r.started_at, r.finished_at,
		(SELECT COUNT(*) FROM recording_samples s WHERE s.recording_id = r.id)`

	selectRecordingSQL = `SELECT ` + recordingColumns + ` FROM recordings r WHERE r.id = ?`

	listRecordingsSQL = `SELECT ` + recordingColumns + ` FROM recordings r ORDER BY r.started_at DESC`

	selectSamplesSQL = `SELECT t, channels FROM recording_samples WHERE recording_id = ? ORDER BY seq ASC`
)

func (r *RecordingSQLite) Create(ctx context.Context, rec models.Recording) error {
	_, err := r.db.ExecContext(ctx, insertRecordingSQL,
		rec.ID, rec.Profile, rec.ACH, rec.Status, rec.StartedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert recording %s: %w", rec.ID, err)
	}
	return nil
}

// AppendSample stores one sample; values are kept as a JSON object.
func (r *RecordingSQLite) AppendSample(ctx context.Context, id string, seq int, t float64, values map[string]float64) error {
	b, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("marshal sample: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, insertSampleSQL, id, seq, t, string(b)); err != nil {
		return fmt.Errorf("insert sample %d of %s: %w", seq, id, err)
	}
	return nil
}

func (r *RecordingSQLite) Finish(ctx context.Context, id, status string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, finishRecordingSQL, status, at.UTC(), id)
	if err != nil {
		return fmt.Errorf("finish recording %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish recording %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("recording %s: %w", id, ErrNotFound)
	}
	return nil
}

func scanRecording(s rowScanner) (models.Recording, error) {
	var (
		rec      models.Recording
		finished sql.NullTime
	)
	if err := s.Scan(&rec.ID, &rec.Profile, &rec.ACH, &rec.Status, &rec.StartedAt, &finished, &rec.Samples); err != nil {
		return models.Recording{}, err
	}
	rec.StartedAt = rec.StartedAt.UTC()
	if finished.Valid {
		at := finished.Time.UTC()
		rec.FinishedAt = &at
	}
	return rec, nil
}

func (r *RecordingSQLite) Get(ctx context.Context, id string) (models.Recording, error) {
	rec, err := scanRecording(r.db.QueryRowContext(ctx, selectRecordingSQL, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Recording{}, fmt.Errorf("recording %s: %w", id, ErrNotFound)
	}
	return rec, err
}

func (r *RecordingSQLite) List(ctx context.Context) ([]models.Recording, error) {
	rows, err := r.db.QueryContext(ctx, listRecordingsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Recording
	for rows.Next() {
		rec, err := scanRecording(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Series rebuilds the columnar time series of a recording. Every sample
// must carry the same channels.
func (r *RecordingSQLite) Series(ctx context.Context, id string) (decay.TimeSeries, error) {
	rows, err := r.db.QueryContext(ctx, selectSamplesSQL, id)
	if err != nil {
		return decay.TimeSeries{}, err
	}
	defer rows.Close()

	ts := decay.TimeSeries{Channels: map[string][]float64{}}
	for rows.Next() {
		var (
			t       float64
			payload string
			values  map[string]float64
		)
		if err := rows.Scan(&t, &payload); err != nil {
			return decay.TimeSeries{}, err
		}
		if err := json.Unmarshal([]byte(payload), &values); err != nil {
			return decay.TimeSeries{}, fmt.Errorf("decode sample %d of %s: %w", len(ts.Time), id, err)
		}
		if len(ts.Time) > 0 && len(values) != len(ts.Channels) {
			return decay.TimeSeries{}, fmt.Errorf("sample %d of %s has %d channels, want %d", len(ts.Time), id, len(values), len(ts.Channels))
		}
		for name, v := range values {
			if len(ts.Time) > 0 {
				if _, ok := ts.Channels[name]; !ok {
					return decay.TimeSeries{}, fmt.Errorf("sample %d of %s has unexpected channel %q", len(ts.Time), id, name)
				}
			}
			ts.Channels[name] = append(ts.Channels[name], v)
		}
		ts.Time = append(ts.Time, t)
	}
	if err := rows.Err(); err != nil {
		return decay.TimeSeries{}, err
	}
	if len(ts.Time) == 0 {
		return decay.TimeSeries{}, fmt.Errorf("samples of recording %s: %w", id, ErrNotFound)
	}
	return ts, nil
}
