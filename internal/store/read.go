package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/roach88/evsim/internal/results"
)

// ErrRunNotFound is returned when a run ID does not exist in the store.
var ErrRunNotFound = errors.New("run not found")

// ReadRun loads a single run record by ID.
// Returns ErrRunNotFound (wrapped) if no such run exists.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, label, created_at, seed, config
		FROM runs
		WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("read run %s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("read run %s: %w", id, err)
	}
	return run, nil
}

// ReadResults loads a run's result table, in stored table order.
// An existing run with zero rows yields an empty table, not an error.
func (s *Store) ReadResults(ctx context.Context, runID string) (results.Table, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, bias, rmse, meas_sd
		FROM results
		WHERE run_id = ?
		ORDER BY ord ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("read results %s: %w", runID, err)
	}
	defer rows.Close()

	var table results.Table
	for rows.Next() {
		var r results.Row
		if err := rows.Scan(&r.Name, &r.Bias, &r.RMSE, &r.MeasSD); err != nil {
			return nil, fmt.Errorf("read results %s: scan: %w", runID, err)
		}
		table = append(table, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read results %s: %w", runID, err)
	}
	return table, nil
}

// ListRuns returns all run records, oldest first.
// UUIDv7 IDs are time-ordered, so ordering by ID is chronological.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, label, created_at, seed, config
		FROM runs
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// scanner abstracts sql.Row and sql.Rows for scanRun.
type scanner interface {
	Scan(dest ...any) error
}

// scanRun decodes one runs table row.
func scanRun(sc scanner) (Run, error) {
	var (
		run       Run
		createdAt string
		seed      string
		config    string
	)
	if err := sc.Scan(&run.ID, &run.Label, &createdAt, &seed, &config); err != nil {
		return Run{}, err
	}

	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Run{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	run.CreatedAt = ts

	run.Seed, err = strconv.ParseUint(seed, 10, 64)
	if err != nil {
		return Run{}, fmt.Errorf("parse seed %q: %w", seed, err)
	}

	if err := json.Unmarshal([]byte(config), &run.Config); err != nil {
		return Run{}, fmt.Errorf("unmarshal config: %w", err)
	}

	return run, nil
}
