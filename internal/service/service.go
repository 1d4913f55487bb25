package service

import (
	"context"
	"time"

	"cadr/internal/cache"
	"cadr/internal/logger"
	"cadr/internal/metrics"
	"cadr/internal/models"
	"cadr/internal/repository"
)

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Analysis fits decay recordings and keeps the resulting runs.
type Analysis interface {
	Fit(ctx context.Context, p FitParams) (FitOutcome, error)
	Analyze(ctx context.Context, p RunParams) (models.Run, error)
	FitRecording(ctx context.Context, id string, p RecordingFitParams) (models.Run, error)
	GetRun(ctx context.Context, id string) (models.Run, error)
	ListRuns(ctx context.Context, limit int) ([]models.Run, error)
}

// Chamber controls the simulated decay chamber.
type Chamber interface {
	Start(ctx context.Context, p ChamberParams) (models.Recording, error)
	Stop(ctx context.Context) (models.Recording, error)
	Status(ctx context.Context) (ChamberStatus, error)
	Recording(ctx context.Context, id string) (models.Recording, error)
	Recordings(ctx context.Context) ([]models.Recording, error)
}

// EventLog exposes append-only logs with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.Event, error)
}

// Simulator runs the background loop that advances the chamber.
// Stop via context cancellation for graceful shutdown.
type Simulator interface {
	Run(ctx context.Context, tick time.Duration)
}

type Service struct {
	Analysis
	Chamber
	EventLog
	Simulator
	Authorization
}

// Deps carries the collaborators and settings that are not repositories.
type Deps struct {
	Log     *logger.Logger
	Metrics *metrics.Recorder

	Cache    cache.Cache
	CacheTTL time.Duration

	DefaultProfile    string
	DefaultBackground float64

	SigningKey string
	TokenTTL   time.Duration

	SampleStep time.Duration
	MaxSamples int
}

func NewService(repos *repository.Repository, deps Deps) *Service {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	if deps.Cache == nil {
		deps.Cache = cache.Nop{}
	}
	chamber := NewChamberService(repos.Recordings, repos.EventRepo, deps)
	return &Service{
		Analysis:      NewAnalysisService(repos.Runs, repos.Recordings, repos.EventRepo, deps),
		Chamber:       chamber,
		EventLog:      NewEventLogService(repos.EventRepo),
		Simulator:     chamber,
		Authorization: NewAuthService(repos.Auth, deps.SigningKey, deps.TokenTTL),
	}
}
