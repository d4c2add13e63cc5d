package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/evsim/internal/experiment"
	"github.com/roach88/evsim/internal/montecarlo"
	"github.com/roach88/evsim/internal/results"
	"github.com/roach88/evsim/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Database string
	CSVPath  string
	JSONPath string
	Label    string
}

// RunSummary is the success payload of the run command.
type RunSummary struct {
	RunID  string        `json:"run_id,omitempty"`
	Label  string        `json:"label,omitempty"`
	Rows   int           `json:"rows"`
	Levels int           `json:"levels"`
	Params int           `json:"params"`
	Table  results.Table `json:"table"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <config.yaml>",
		Short: "Run a simulation from a config file",
		Long: `Run the Monte Carlo simulation described by a YAML config file.

The config is checked structurally against the embedded schema, then
semantically by the engine's validation gate; any violation aborts the
run before randomness is consumed. On success the full result table is
printed, and can additionally be persisted to a SQLite database and
exported to CSV or JSON files.

Examples:
  evsim run experiment.yaml
  evsim run experiment.yaml --db results.db --label baseline
  evsim run experiment.yaml --csv bias.csv --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "persist the run to this SQLite database")
	cmd.Flags().StringVar(&opts.CSVPath, "csv", "", "write the result table to this CSV file")
	cmd.Flags().StringVar(&opts.JSONPath, "json", "", "write the result table to this JSON file")
	cmd.Flags().StringVar(&opts.Label, "label", "", "label for the persisted run")

	return cmd
}

func runSimulation(opts *RunOptions, configPath string, cmd *cobra.Command) error {
	// Configure logging based on verbose flag
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(handler))

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	raw, err := LoadConfig(configPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	cfg, err := raw.Validate()
	if err != nil {
		// Contractual validation message; surface it verbatim.
		_ = formatter.Error(string(experiment.CodeOf(err)), err.Error(), nil)
		return WrapExitError(ExitFailure, "invalid configuration", err)
	}

	slog.Info("simulation starting",
		"config", configPath,
		"levels", len(cfg.MeasSDs),
		"n_repetitions", cfg.NRepetitions,
		"seed", cfg.Seed,
	)

	table, err := montecarlo.Simulate(cfg)
	if err != nil {
		return WrapExitError(ExitFailure, "simulation failed", err)
	}
	slog.Info("simulation complete", "rows", len(table))

	summary := RunSummary{
		Label:  results.NormalizeLabel(opts.Label),
		Rows:   len(table),
		Levels: len(cfg.MeasSDs),
		Params: cfg.NParams(),
		Table:  table,
	}

	if opts.Database != "" {
		run := store.NewRun(opts.Label, cfg)
		if err := persistRun(run, table, opts.Database); err != nil {
			return WrapExitError(ExitCommandError, "failed to persist run", err)
		}
		summary.RunID = run.ID
		slog.Info("run persisted", "db", opts.Database, "run_id", run.ID)
	}

	if opts.CSVPath != "" {
		if err := writeTableFile(table, opts.CSVPath, "csv"); err != nil {
			return WrapExitError(ExitCommandError, "failed to write CSV", err)
		}
	}
	if opts.JSONPath != "" {
		if err := writeTableFile(table, opts.JSONPath, "json"); err != nil {
			return WrapExitError(ExitCommandError, "failed to write JSON", err)
		}
	}

	if opts.Format == "json" {
		return formatter.Success(summary)
	}
	printTable(cmd, table)
	if summary.RunID != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "\nRun %s persisted to %s\n", summary.RunID, opts.Database)
	}
	return nil
}

// persistRun writes the run and table to the database atomically.
func persistRun(run store.Run, table results.Table, dbPath string) error {
	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()
	return st.WriteRunAtomic(context.Background(), run, table)
}

// writeTableFile renders the table to a file in the given format.
func writeTableFile(table results.Table, path, format string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch format {
	case "csv":
		return table.WriteCSV(f)
	case "json":
		return table.WriteJSON(f)
	default:
		return fmt.Errorf("unknown export format: %s", format)
	}
}

// printTable renders the table as aligned text columns.
func printTable(cmd *cobra.Command, table results.Table) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%-8s %14s %14s %10s\n", "name", "bias", "rmse", "meas_sd")
	for _, row := range table {
		fmt.Fprintf(w, "%-8s %14.6f %14.6f %10.4f\n", row.Name, row.Bias, row.RMSE, row.MeasSD)
	}
}
