package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/evsim/internal/experiment"
)

// ValidationResult holds validation results for a config file.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <config.yaml>",
		Short: "Validate a config file without running the simulation",
		Long: `Validate an experiment config file without running any simulation.

Runs the structural schema check and the engine's semantic validation
gate, and reports the first semantic violation with its exact message.
No randomness is consumed.

Exit codes:
  0 - config is valid
  1 - config is invalid
  2 - command error (file not found, unreadable, etc.)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, configPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	raw, err := LoadConfig(configPath)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			switch loadErr.Code {
			case ErrCodeNotFound:
				_ = formatter.Error(loadErr.Code, loadErr.Message, nil)
				return WrapExitError(ExitCommandError, "failed to load config", err)
			default:
				// Structural defects are validation failures, not command errors.
				_ = formatter.Error(loadErr.Code, loadErr.Message, nil)
				return WrapExitError(ExitFailure, "invalid configuration", err)
			}
		}
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	if _, err := raw.Validate(); err != nil {
		if opts.Format == "json" {
			_ = formatter.Success(ValidationResult{Valid: false, Errors: []string{err.Error()}})
		} else {
			_ = formatter.Error(string(experiment.CodeOf(err)), err.Error(), nil)
		}
		return WrapExitError(ExitFailure, "invalid configuration", err)
	}

	if opts.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", configPath)
	return nil
}
