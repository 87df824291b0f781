// Package ledger records dispatched jobs in a local SQLite database, one run
// per invocation of the tool, so a sweep can be audited after the fact.
package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/specialistvlad/gridsweep/internal/model"

	_ "modernc.org/sqlite" // SQLite driver (pure Go)
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
  id          TEXT PRIMARY KEY,
  started_at  TEXT NOT NULL,
  sources     TEXT
);
CREATE TABLE IF NOT EXISTS jobs (
  run_id       TEXT NOT NULL REFERENCES runs(id),
  sweep        TEXT NOT NULL,
  job_index    INTEGER NOT NULL,
  job_type     TEXT,
  command_line TEXT NOT NULL,
  combination  TEXT,
  submitted_at TEXT NOT NULL,
  PRIMARY KEY (run_id, sweep, job_index)
);`

// Entry is one recorded job.
type Entry struct {
	RunID       string
	Sweep       string
	Index       int
	JobType     string
	CommandLine string
	Combination map[string]string
	SubmittedAt time.Time
}

// Ledger is a handle on the SQLite database.
type Ledger struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the ledger database at path and ensures its schema.
func Open(path string) (*Ledger, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("ledger: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ledger: init schema: %w", err)
	}
	return &Ledger{db: db, now: time.Now}, nil
}

// Close releases the database.
func (l *Ledger) Close() error {
	if l == nil || l.db == nil {
		return nil
	}
	return l.db.Close()
}

// BeginRun registers a new run and returns its id.
func (l *Ledger) BeginRun(ctx context.Context, sources []string) (string, error) {
	id := uuid.NewString()
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, sources) VALUES (?, ?, ?)`,
		id, l.now().UTC().Format(time.RFC3339Nano), strings.Join(sources, "\n"),
	)
	if err != nil {
		return "", fmt.Errorf("ledger: begin run: %w", err)
	}
	return id, nil
}

// RecordJob stores a dispatched job under the given run.
func (l *Ledger) RecordJob(ctx context.Context, runID string, job model.JobSpec) error {
	combination, err := json.Marshal(job.Combination.Map())
	if err != nil {
		return fmt.Errorf("ledger: encode combination: %w", err)
	}

	_, err = l.db.ExecContext(ctx,
		`INSERT INTO jobs (run_id, sweep, job_index, job_type, command_line, combination, submitted_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, job.Sweep, job.Index, job.JobType, job.Line(), string(combination),
		l.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("ledger: record job %d of %s: %w", job.Index, job.Sweep, err)
	}
	return nil
}

// Jobs returns every job recorded for a run, ordered by sweep then index.
func (l *Ledger) Jobs(ctx context.Context, runID string) ([]Entry, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT run_id, sweep, job_index, job_type, command_line, combination, submitted_at
         FROM jobs WHERE run_id = ? ORDER BY sweep, job_index`, runID)
	if err != nil {
		return nil, fmt.Errorf("ledger: query jobs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e           Entry
			jobType     sql.NullString
			combination sql.NullString
			submittedAt string
		)
		if err := rows.Scan(&e.RunID, &e.Sweep, &e.Index, &jobType, &e.CommandLine, &combination, &submittedAt); err != nil {
			return nil, fmt.Errorf("ledger: scan job: %w", err)
		}
		e.JobType = jobType.String
		if combination.Valid && combination.String != "" {
			if err := json.Unmarshal([]byte(combination.String), &e.Combination); err != nil {
				return nil, fmt.Errorf("ledger: decode combination: %w", err)
			}
		}
		if e.SubmittedAt, err = time.Parse(time.RFC3339Nano, submittedAt); err != nil {
			return nil, fmt.Errorf("ledger: parse submitted_at: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Runs returns every run id, oldest first.
func (l *Ledger) Runs(ctx context.Context) ([]string, error) {
	rows, err := l.db.QueryContext(ctx, `SELECT id FROM runs ORDER BY started_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("ledger: query runs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("ledger: scan run: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
