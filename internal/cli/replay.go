package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/evsim/internal/montecarlo"
	"github.com/roach88/evsim/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
	RunID    string // optional - specific run only
}

// ReplayRunResult holds the replay result for a single run.
type ReplayRunResult struct {
	RunID         string `json:"run_id"`
	Label         string `json:"label,omitempty"`
	Rows          int    `json:"rows"`
	Deterministic bool   `json:"deterministic"`
}

// ReplayResult holds the overall replay result.
type ReplayResult struct {
	Runs             []ReplayRunResult `json:"runs"`
	TotalRuns        int               `json:"total_runs"`
	AllDeterministic bool              `json:"all_deterministic"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Re-run stored configs and verify determinism",
		Long: `Replay stored runs and verify the reproducibility contract.

Each stored run's configuration is fed back through the engine's normal
validation gate and re-simulated from its seed; the freshly computed
table must be bit-identical to the stored one. A divergence means the
environment broke determinism (or the database was modified).

Exit codes:
  0 - all replayed runs are deterministic
  1 - at least one run diverged
  2 - command error (database not found, etc.)

Examples:
  evsim replay --db results.db
  evsim replay --db results.db --run 0190f8a2-...
  evsim replay --db results.db --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "replay a specific run only")

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	var runs []store.Run
	if opts.RunID != "" {
		run, err := st.ReadRun(ctx, opts.RunID)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to read run %s", opts.RunID), err)
		}
		runs = []store.Run{run}
	} else {
		runs, err = st.ListRuns(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list runs", err)
		}
	}

	if len(runs) == 0 {
		if opts.Format == "json" {
			return formatter.Success(ReplayResult{
				Runs:             []ReplayRunResult{},
				AllDeterministic: true,
			})
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No runs found in database.")
		return nil
	}

	result := ReplayResult{
		Runs:             make([]ReplayRunResult, 0, len(runs)),
		TotalRuns:        len(runs),
		AllDeterministic: true,
	}

	for _, run := range runs {
		runResult, err := replayAndVerifyRun(ctx, st, run, formatter)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to replay run %s", run.ID), err)
		}
		result.Runs = append(result.Runs, runResult)
		if !runResult.Deterministic {
			result.AllDeterministic = false
		}
	}

	if opts.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		for _, r := range result.Runs {
			status := "deterministic"
			if !r.Deterministic {
				status = "DIVERGED"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  rows=%d  %s\n", r.RunID, r.Rows, status)
		}
	}

	if !result.AllDeterministic {
		return NewExitError(ExitFailure, "determinism verification failed")
	}
	return nil
}

// replayAndVerifyRun re-simulates one stored run and compares tables
// bit-for-bit.
func replayAndVerifyRun(ctx context.Context, st *store.Store, run store.Run, formatter *OutputFormatter) (ReplayRunResult, error) {
	stored, err := st.ReadResults(ctx, run.ID)
	if err != nil {
		return ReplayRunResult{}, err
	}

	formatter.VerboseLog("replaying run %s (seed %d, %d rows)", run.ID, run.Seed, len(stored))

	recomputed, err := montecarlo.Run(run.Config)
	if err != nil {
		return ReplayRunResult{}, fmt.Errorf("re-simulate: %w", err)
	}

	return ReplayRunResult{
		RunID:         run.ID,
		Label:         run.Label,
		Rows:          len(stored),
		Deterministic: stored.Equal(recomputed),
	}, nil
}
