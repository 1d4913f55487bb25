package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"cadr/internal/decay"
	"cadr/internal/models"
)

// ErrNotFound is returned when a lookup by ID matches no row.
var ErrNotFound = errors.New("not found")

type Authorization interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*models.Operator, error)
}

type RunRepo interface {
	Save(ctx context.Context, r models.Run) error
	Get(ctx context.Context, id string) (models.Run, error)
	List(ctx context.Context, limit int) ([]models.Run, error)
}

type RecordingRepo interface {
	Create(ctx context.Context, r models.Recording) error
	AppendSample(ctx context.Context, id string, seq int, t float64, values map[string]float64) error
	Finish(ctx context.Context, id, status string, at time.Time) error
	Get(ctx context.Context, id string) (models.Recording, error)
	List(ctx context.Context) ([]models.Recording, error)
	Series(ctx context.Context, id string) (decay.TimeSeries, error)
}

type EventRepo interface {
	Append(ctx context.Context, e models.Event) error
	List(ctx context.Context, q EventQuery) ([]models.Event, error)
}

// EventQuery narrows EventRepo.List. Zero fields are not filtered on.
type EventQuery struct {
	From        time.Time // inclusive
	To          time.Time // inclusive
	Type        string
	RunID       string
	RecordingID string
	Limit       int
}

type Repository struct {
	Runs       RunRepo
	Recordings RecordingRepo
	EventRepo  EventRepo
	Auth       Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Runs:       NewRunSQLite(db),
		Recordings: NewRecordingSQLite(db),
		EventRepo:  NewEventSQLite(db),
		Auth:       NewOperatorRepository(db),
	}
}
