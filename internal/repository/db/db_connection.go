package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// InitDB opens or creates the SQLite file at path and applies the schema.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set PRAGMA journal_mode=WAL: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set PRAGMA foreign_keys=ON: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set PRAGMA busy_timeout=5000: %w", err)
	}

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Fail fast if the DB cannot be reached
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

const sqliteDriverName = "sqlite"

const schemaRuns = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    created_at TIMESTAMP NOT NULL,
    profile TEXT NOT NULL,
    strategy TEXT NOT NULL,
    channel TEXT NOT NULL,
    lower_bound REAL NOT NULL,
    background REAL NOT NULL,
    room_volume REAL NOT NULL,
    recording_id TEXT REFERENCES recordings(id),
    baseline TEXT NOT NULL,
    trials TEXT NOT NULL,
    mean_cadr REAL NOT NULL,
    sem_cadr REAL NOT NULL,
    n_trials INTEGER NOT NULL
);
`

const schemaRecordings = `
CREATE TABLE IF NOT EXISTS recordings (
    id TEXT PRIMARY KEY,
    profile TEXT NOT NULL,
    ach REAL NOT NULL,
    status TEXT NOT NULL,
    started_at TIMESTAMP NOT NULL,
    finished_at TIMESTAMP
);
`

const schemaRecordingSamples = `
CREATE TABLE IF NOT EXISTS recording_samples (
    recording_id TEXT NOT NULL REFERENCES recordings(id) ON DELETE CASCADE,
    seq INTEGER NOT NULL,
    t REAL NOT NULL,
    channels TEXT NOT NULL,
    PRIMARY KEY (recording_id, seq)
);
`

const schemaEvents = `
CREATE TABLE IF NOT EXISTS events (
    id TEXT PRIMARY KEY,
    occurred_at TIMESTAMP NOT NULL,
    type TEXT NOT NULL,
    message TEXT NOT NULL,
    run_id TEXT,
    recording_id TEXT,
    meta TEXT
);
`

const (
	indexEventsRun       = `CREATE INDEX IF NOT EXISTS idx_events_run_id ON events (run_id);`
	indexEventsRecording = `CREATE INDEX IF NOT EXISTS idx_events_recording_id ON events (recording_id);`
)

const schemaOperators = `
CREATE TABLE IF NOT EXISTS operators (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL
);
`

func ensureSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for i, stmt := range []string{
		schemaRecordings,
		schemaRecordingSamples,
		schemaRuns,
		schemaEvents,
		indexEventsRun,
		indexEventsRecording,
		schemaOperators,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}
