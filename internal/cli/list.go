package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/evsim/internal/store"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Database string
}

// RunListing is one run in the list command's output.
type RunListing struct {
	ID        string `json:"id"`
	Label     string `json:"label,omitempty"`
	CreatedAt string `json:"created_at"`
	Seed      uint64 `json:"seed"`
	Levels    int    `json:"levels"`
	Params    int    `json:"params"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored runs",
		Long: `List all runs stored in a results database, oldest first.

Examples:
  evsim list --db results.db
  evsim list --db results.db --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
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

	runs, err := st.ListRuns(context.Background())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}

	listings := make([]RunListing, len(runs))
	for i, run := range runs {
		listings[i] = RunListing{
			ID:        run.ID,
			Label:     run.Label,
			CreatedAt: run.CreatedAt.UTC().Format(time.RFC3339),
			Seed:      run.Seed,
			Levels:    len(run.Config.MeasSDs),
			Params:    len(run.Config.TrueParams),
		}
	}

	if opts.Format == "json" {
		return formatter.Success(listings)
	}

	if len(listings) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs found.")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%-38s %-16s %-20s %10s %7s %7s\n", "id", "label", "created", "seed", "levels", "params")
	for _, l := range listings {
		fmt.Fprintf(cmd.OutOrStdout(), "%-38s %-16s %-20s %10d %7d %7d\n", l.ID, l.Label, l.CreatedAt, l.Seed, l.Levels, l.Params)
	}
	return nil
}
