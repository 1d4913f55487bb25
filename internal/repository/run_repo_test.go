package repository

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"cadr/internal/decay"
	"cadr/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

var runRowColumns = []string{
	"id", "created_at", "profile", "strategy", "channel", "lower_bound", "background", "room_volume",
	"recording_id", "baseline", "trials", "mean_cadr", "sem_cadr", "n_trials",
}

func TestRunSave(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	repo := NewRunSQLite(db)

	run := models.Run{
		ID:         "run-1",
		CreatedAt:  time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		Profile:    "pms5003",
		Strategy:   decay.StrategyExhaustive,
		Channel:    "pm2.5",
		LowerBound: 25,
		RoomVolume: 1000,
		Baseline:   decay.FitResult{C0: 100, Rate: 0.2, StdErr: 0.01},
		Summary:    decay.TrialSummary{Mean: 9, SEM: 0.5, N: 2},
	}

	mock.ExpectExec(regexp.QuoteMeta(insertRunSQL)).
		WithArgs("run-1", run.CreatedAt, "pms5003", decay.StrategyExhaustive, "pm2.5", 25.0, 0.0, 1000.0,
			nil, `{"c0":100,"ach":0.2,"stderr":0.01}`, "null", 9.0, 0.5, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Save(ctx(t), run); err != nil {
		t.Fatalf("Save: %v", err)
	}
}

func TestRunSave_GeneratesID(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	repo := NewRunSQLite(db)

	mock.ExpectExec("INSERT INTO runs").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "", "", "", 0.0, 0.0, 0.0,
			"rec-9", sqlmock.AnyArg(), sqlmock.AnyArg(), 0.0, 0.0, 0).
		WillReturnError(errors.New("disk full"))

	err := repo.Save(ctx(t), models.Run{RecordingID: "rec-9"})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestRunGet(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	repo := NewRunSQLite(db)

	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(runRowColumns).AddRow(
		"run-1", created, "sps30", decay.StrategyFixedBound, "mPM2.5", 100.0, 0.0, 1000.0,
		"rec-1", `{"c0":500,"ach":0.3,"stderr":0.02}`,
		`[{"fit":{"c0":400,"ach":0.8,"stderr":0.01},"window":{"start":2,"end":40},"cadr":{"cadr":8.33,"cadr_stderr":0.37}}]`,
		8.33, 0.0, 1,
	)
	mock.ExpectQuery(regexp.QuoteMeta(selectRunSQL)).WithArgs("run-1").WillReturnRows(rows)

	got, err := repo.Get(ctx(t), "run-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.RecordingID != "rec-1" || got.Baseline.Rate != 0.3 {
		t.Fatalf("unexpected run: %+v", got)
	}
	if len(got.Trials) != 1 || got.Trials[0].Window != (decay.Window{Start: 2, End: 40}) {
		t.Fatalf("unexpected trials: %+v", got.Trials)
	}
	if got.Summary.N != 1 {
		t.Fatalf("summary n = %d, want 1", got.Summary.N)
	}
}

func TestRunGet_NotFound(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	repo := NewRunSQLite(db)

	mock.ExpectQuery(regexp.QuoteMeta(selectRunSQL)).WithArgs("nope").
		WillReturnRows(sqlmock.NewRows(runRowColumns))

	_, err := repo.Get(ctx(t), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRunGet_CorruptTrials(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	repo := NewRunSQLite(db)

	rows := sqlmock.NewRows(runRowColumns).AddRow(
		"run-2", time.Now(), "sps30", decay.StrategyFixedBound, "mPM2.5", 100.0, 0.0, 1000.0,
		nil, `{}`, `{broken`, 0.0, 0.0, 0,
	)
	mock.ExpectQuery(regexp.QuoteMeta(selectRunSQL)).WithArgs("run-2").WillReturnRows(rows)

	if _, err := repo.Get(ctx(t), "run-2"); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestRunList_DefaultLimit(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)
	repo := NewRunSQLite(db)

	rows := sqlmock.NewRows(runRowColumns).
		AddRow("b", time.Now(), "pms5003", decay.StrategyExhaustive, "pm2.5", 25.0, 0.0, 1000.0, nil, `{}`, `[]`, 0.0, 0.0, 0).
		AddRow("a", time.Now(), "pms5003", decay.StrategyExhaustive, "pm2.5", 25.0, 0.0, 1000.0, nil, `{}`, `[]`, 0.0, 0.0, 0)
	mock.ExpectQuery(regexp.QuoteMeta(listRunsSQL)).WithArgs(defaultRunListLimit).WillReturnRows(rows)

	got, err := repo.List(ctx(t), 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].ID != "b" {
		t.Fatalf("unexpected runs: %+v", got)
	}
}
