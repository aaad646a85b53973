// Package store keeps a SQLite history of evaluation runs. Only final results are
// stored; search state never outlives a run.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a run id is unknown
var ErrNotFound = errors.New("run not found")

// Run is one invocation of the CLI over a set of blueprints
type Run struct {
	ID        string        `db:"id"`
	Mode      string        `db:"mode"` // "quality" or "product"
	Horizon   int           `db:"horizon"`
	Score     int           `db:"score"`
	StartedAt time.Time     `db:"started_at"`
	Elapsed   time.Duration `db:"elapsed_ns"`

	Results []RunResult `db:"-"`
}

// RunResult is the best output found for one blueprint within a run
type RunResult struct {
	RunID       string        `db:"run_id"`
	BlueprintID int           `db:"blueprint_id"`
	Best        int           `db:"best"`
	Expanded    int           `db:"expanded"`
	Elapsed     time.Duration `db:"elapsed_ns"`
}

// DB wraps a SQLite connection
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		mode TEXT NOT NULL,
		horizon INTEGER NOT NULL,
		score INTEGER NOT NULL,
		started_at TIMESTAMP NOT NULL,
		elapsed_ns INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS run_results (
		run_id TEXT NOT NULL REFERENCES runs(id),
		blueprint_id INTEGER NOT NULL,
		best INTEGER NOT NULL,
		expanded INTEGER NOT NULL,
		elapsed_ns INTEGER NOT NULL,
		PRIMARY KEY (run_id, blueprint_id)
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveRun writes a run and its per-blueprint results in one transaction.
// A missing ID is filled in with a fresh UUID.
func (db *DB) SaveRun(run *Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.NamedExec(`INSERT INTO runs (id, mode, horizon, score, started_at, elapsed_ns)
		VALUES (:id, :mode, :horizon, :score, :started_at, :elapsed_ns)`, run); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for i := range run.Results {
		r := &run.Results[i]
		r.RunID = run.ID
		if _, err := tx.NamedExec(`INSERT INTO run_results (run_id, blueprint_id, best, expanded, elapsed_ns)
			VALUES (:run_id, :blueprint_id, :best, :expanded, :elapsed_ns)`, r); err != nil {
			return fmt.Errorf("insert result for blueprint %d: %w", r.BlueprintID, err)
		}
	}

	return tx.Commit()
}

// Run loads one run with its results.
func (db *DB) Run(id string) (*Run, error) {
	var run Run
	err := db.conn.Get(&run, "SELECT id, mode, horizon, score, started_at, elapsed_ns FROM runs WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	if err := db.conn.Select(&run.Results,
		`SELECT run_id, blueprint_id, best, expanded, elapsed_ns FROM run_results
		WHERE run_id = ? ORDER BY blueprint_id`, id); err != nil {
		return nil, err
	}
	return &run, nil
}

// RecentRuns returns the latest runs, newest first, without their results.
func (db *DB) RecentRuns(limit int) ([]Run, error) {
	var runs []Run
	err := db.conn.Select(&runs,
		"SELECT id, mode, horizon, score, started_at, elapsed_ns FROM runs ORDER BY started_at DESC LIMIT ?", limit)
	return runs, err
}
