package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/roach88/evsim/internal/experiment"
	"github.com/roach88/evsim/internal/results"
)

// Run is one stored simulation run.
type Run struct {
	// ID is the run's UUIDv7 identifier.
	ID string

	// Label is an optional, NFC-normalized human-readable name.
	Label string

	// CreatedAt is the wall-clock creation time (UTC).
	// Informational only: ordering uses the time-ordered ID.
	CreatedAt time.Time

	// Seed is the random-stream seed the run was computed with.
	Seed uint64

	// Config is the full experiment configuration, in wire form, exactly
	// as it passed the validation gate. Replay feeds it back through the
	// same gate.
	Config experiment.RawConfig
}

// NewRun builds a Run record for a validated configuration.
func NewRun(label string, cfg experiment.Config) Run {
	return Run{
		ID:        NewRunID(),
		Label:     results.NormalizeLabel(label),
		CreatedAt: time.Now().UTC(),
		Seed:      cfg.Seed,
		Config:    cfg.Raw(),
	}
}

// WriteRunAtomic stores a run and its complete result table in a single
// transaction.
//
// Either the run and every row land together or nothing does; a reader can
// never observe a run with a partial table. Result rows are stored with an
// explicit ord column preserving table order.
func (s *Store) WriteRunAtomic(ctx context.Context, run Run, table results.Table) error {
	configJSON, err := json.Marshal(run.Config)
	if err != nil {
		return fmt.Errorf("write run %s: marshal config: %w", run.ID, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write run %s: begin: %w", run.ID, err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, label, created_at, seed, config)
		VALUES (?, ?, ?, ?, ?)
	`,
		run.ID,
		run.Label,
		run.CreatedAt.UTC().Format(time.RFC3339Nano),
		strconv.FormatUint(run.Seed, 10),
		string(configJSON),
	)
	if err != nil {
		return fmt.Errorf("write run %s: insert run: %w", run.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO results (run_id, ord, name, bias, rmse, meas_sd)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("write run %s: prepare results: %w", run.ID, err)
	}
	defer stmt.Close()

	for ord, row := range table {
		if _, err := stmt.ExecContext(ctx, run.ID, ord, row.Name, row.Bias, row.RMSE, row.MeasSD); err != nil {
			return fmt.Errorf("write run %s: insert row %d: %w", run.ID, ord, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write run %s: commit: %w", run.ID, err)
	}
	return nil
}
