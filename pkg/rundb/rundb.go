// Package rundb records pipeline executions in a local SQLite database so
// benchmark results can be compared across invocations.
package rundb

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"tsml/errors"
)

// Run states.
const (
	StatusStarted  = "started"
	StatusFinished = "finished"
	StatusError    = "error"
)

// Run is one recorded pipeline execution.
type Run struct {
	ID        string
	Pipeline  string
	Dataset   string
	Params    map[string]any
	Accuracy  float64
	Duration  time.Duration
	Status    string
	Error     string
	CreatedAt time.Time
}

// Query constants
const (
	createRunsTable = `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			pipeline TEXT NOT NULL,
			dataset TEXT NOT NULL,
			params TEXT NOT NULL,
			accuracy REAL,
			duration_ms INTEGER,
			status TEXT NOT NULL,
			error TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL
		)`

	insertRunQuery = `
		INSERT INTO runs (id, pipeline, dataset, params, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	finishRunQuery = `
		UPDATE runs SET accuracy = ?, duration_ms = ?, status = ?, error = ? WHERE id = ?`

	recentRunsQuery = `
		SELECT id, pipeline, dataset, params, accuracy, duration_ms, status, error, created_at
		FROM runs ORDER BY created_at DESC, id LIMIT ?`
)

// DB is a handle to the run database.
type DB struct {
	db  *sql.DB
	log *zap.SugaredLogger
}

// Open opens (creating if needed) the run database at path. Pass
// ":memory:" for an ephemeral database.
func Open(path string, log *zap.SugaredLogger) (*DB, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	sqlDB, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "rundb: open")
	}
	// WAL keeps readers unblocked while a run is being recorded.
	if _, err := sqlDB.Exec("PRAGMA journal_mode = WAL"); err != nil {
		sqlDB.Close()
		return nil, errors.Wrap(err, "rundb: enable WAL")
	}
	if _, err := sqlDB.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		sqlDB.Close()
		return nil, errors.Wrap(err, "rundb: set busy timeout")
	}
	if _, err := sqlDB.Exec(createRunsTable); err != nil {
		sqlDB.Close()
		return nil, errors.Wrap(err, "rundb: create schema")
	}
	log.Debugw("run database opened", "path", path)
	return &DB{db: sqlDB, log: log}, nil
}

func (d *DB) Close() error { return d.db.Close() }

// Start inserts a run in the started state and returns it.
func (d *DB) Start(pipeline, dataset string, params map[string]any) (*Run, error) {
	run := &Run{
		ID:        uuid.NewString(),
		Pipeline:  pipeline,
		Dataset:   dataset,
		Params:    params,
		Status:    StatusStarted,
		CreatedAt: time.Now().UTC(),
	}
	paramsJSON, err := json.Marshal(run.Params)
	if err != nil {
		return nil, errors.Wrap(err, "rundb: marshal params")
	}
	if _, err := d.db.Exec(insertRunQuery,
		run.ID, run.Pipeline, run.Dataset, string(paramsJSON), run.Status, run.CreatedAt); err != nil {
		return nil, errors.Wrap(err, "rundb: insert run")
	}
	d.log.Debugw("run started", "run", run.ID, "pipeline", pipeline, "dataset", dataset)
	return run, nil
}

// Finish marks the run finished and records its accuracy and duration.
func (d *DB) Finish(run *Run, accuracy float64, took time.Duration) error {
	run.Accuracy = accuracy
	run.Duration = took
	run.Status = StatusFinished
	run.Error = ""
	if _, err := d.db.Exec(finishRunQuery,
		accuracy, took.Milliseconds(), run.Status, run.Error, run.ID); err != nil {
		return errors.Wrap(err, "rundb: finish run")
	}
	d.log.Infow("run finished", "run", run.ID, "accuracy", accuracy, "took", took)
	return nil
}

// Fail marks the run errored, keeping the message for later inspection.
func (d *DB) Fail(run *Run, took time.Duration, runErr error) error {
	run.Duration = took
	run.Status = StatusError
	if runErr != nil {
		run.Error = runErr.Error()
	}
	if _, err := d.db.Exec(finishRunQuery,
		nil, took.Milliseconds(), run.Status, run.Error, run.ID); err != nil {
		return errors.Wrap(err, "rundb: fail run")
	}
	d.log.Warnw("run failed", "run", run.ID, "error", run.Error, "took", took)
	return nil
}

// Recent returns the latest n runs, newest first.
func (d *DB) Recent(n int) ([]Run, error) {
	rows, err := d.db.Query(recentRunsQuery, n)
	if err != nil {
		return nil, errors.Wrap(err, "rundb: query runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r          Run
			paramsJSON string
			accuracy   sql.NullFloat64
			durationMS sql.NullInt64
		)
		if err := rows.Scan(&r.ID, &r.Pipeline, &r.Dataset, &paramsJSON,
			&accuracy, &durationMS, &r.Status, &r.Error, &r.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "rundb: scan run")
		}
		if err := json.Unmarshal([]byte(paramsJSON), &r.Params); err != nil {
			return nil, errors.Wrap(err, "rundb: unmarshal params")
		}
		r.Accuracy = accuracy.Float64
		r.Duration = time.Duration(durationMS.Int64) * time.Millisecond
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
