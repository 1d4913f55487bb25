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

	"github.com/google/uuid"
)

type RunSQLite struct {
	db *sql.DB
}

func NewRunSQLite(db *sql.DB) *RunSQLite {
	return &RunSQLite{db: db}
}

const (
	defaultRunListLimit = 50

	runColumns = `id, created_at, profile, strategy, channel, lower_bound, background, room_volume,
		recording_id, baseline, trials, mean_cadr, sem_cadr, n_trials`

	insertRunSQL = `INSERT INTO runs (` + runColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	selectRunSQL = `SELECT ` + runColumns + ` FROM runs WHERE id = ?`

	listRunsSQL = `SELECT ` + runColumns + ` FROM runs ORDER BY created_at DESC LIMIT ?`
)

// Save inserts r. A missing ID or creation time is filled in.
func (r *RunSQLite) Save(ctx context.Context, run models.Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	baseline, err := json.Marshal(run.Baseline)
	if err != nil {
		return fmt.Errorf("marshal baseline: %w", err)
	}
	trials, err := json.Marshal(run.Trials)
	if err != nil {
		return fmt.Errorf("marshal trials: %w", err)
	}

	_, err = r.db.ExecContext(ctx, insertRunSQL,
		run.ID,
		run.CreatedAt.UTC(),
		run.Profile,
		run.Strategy,
		run.Channel,
		run.LowerBound,
		run.Background,
		run.RoomVolume,
		sql.NullString{String: run.RecordingID, Valid: run.RecordingID != ""},
		string(baseline),
		string(trials),
		run.Summary.Mean,
		run.Summary.SEM,
		run.Summary.N,
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(s rowScanner) (models.Run, error) {
	var (
		run                   models.Run
		recordingID           sql.NullString
		baselineStr, trialStr string
	)
	if err := s.Scan(
		&run.ID,
		&run.CreatedAt,
		&run.Profile,
		&run.Strategy,
		&run.Channel,
		&run.LowerBound,
		&run.Background,
		&run.RoomVolume,
		&recordingID,
		&baselineStr,
		&trialStr,
		&run.Summary.Mean,
		&run.Summary.SEM,
		&run.Summary.N,
	); err != nil {
		return models.Run{}, err
	}
	run.CreatedAt = run.CreatedAt.UTC()
	run.RecordingID = recordingID.String

	if err := json.Unmarshal([]byte(baselineStr), &run.Baseline); err != nil {
		return models.Run{}, fmt.Errorf("decode baseline of run %s: %w", run.ID, err)
	}
	var trials []decay.TrialResult
	if err := json.Unmarshal([]byte(trialStr), &trials); err != nil {
		return models.Run{}, fmt.Errorf("decode trials of run %s: %w", run.ID, err)
	}
	run.Trials = trials
	return run, nil
}

// Get loads one run by ID.
func (r *RunSQLite) Get(ctx context.Context, id string) (models.Run, error) {
	run, err := scanRun(r.db.QueryRowContext(ctx, selectRunSQL, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Run{}, fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	return run, err
}

// List returns the newest runs first.
func (r *RunSQLite) List(ctx context.Context, limit int) ([]models.Run, error) {
	if limit <= 0 {
		limit = defaultRunListLimit
	}
	rows, err := r.db.QueryContext(ctx, listRunsSQL, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Run, 0, limit)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
