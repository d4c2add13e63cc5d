package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/evsim/internal/store"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Database string
	RunID    string
	As       string // "csv" | "json"
	Out      string // output file; stdout when empty
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a stored result table",
		Long: `Export a stored run's result table as CSV or JSON.

Rows come back in stored table order (sweep order then parameter order),
and float rendering is bit-faithful, so exporting the same run twice
produces identical bytes.

Examples:
  evsim export --db results.db --run 0190f8a2-...
  evsim export --db results.db --run 0190f8a2-... --as json --out bias.json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "run ID to export (required)")
	_ = cmd.MarkFlagRequired("run")
	cmd.Flags().StringVar(&opts.As, "as", "csv", "export format (csv|json)")
	cmd.Flags().StringVar(&opts.Out, "out", "", "output file (stdout when omitted)")

	return cmd
}

func runExport(opts *ExportOptions, cmd *cobra.Command) error {
	if opts.As != "csv" && opts.As != "json" {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid export format %q: must be csv or json", opts.As))
	}

	ctx := context.Background()

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	if _, err := st.ReadRun(ctx, opts.RunID); err != nil {
		if errors.Is(err, store.ErrRunNotFound) {
			return WrapExitError(ExitCommandError, fmt.Sprintf("run %s not found", opts.RunID), err)
		}
		return WrapExitError(ExitCommandError, "failed to read run", err)
	}

	table, err := st.ReadResults(ctx, opts.RunID)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read results", err)
	}

	w := cmd.OutOrStdout()
	if opts.Out != "" {
		f, err := os.Create(opts.Out)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to create output file", err)
		}
		defer f.Close()
		w = f
	}

	var renderErr error
	switch opts.As {
	case "csv":
		renderErr = table.WriteCSV(w)
	case "json":
		renderErr = table.WriteJSON(w)
	}
	if renderErr != nil {
		return WrapExitError(ExitCommandError, "failed to render results", renderErr)
	}
	return nil
}
