package montecarlo

import (
	"fmt"
	"log/slog"

	"github.com/roach88/evsim/internal/experiment"
	"github.com/roach88/evsim/internal/randstream"
	"github.com/roach88/evsim/internal/results"
)

// Run validates the raw configuration and executes the full simulation.
//
// This is the engine's single entry point for unvalidated input: the
// validation gate runs first, before any randomness is consumed, and any
// violation is terminal. On success the returned table has exactly
// len(meas_sds) × n_params rows, in sweep order then parameter order.
func Run(raw experiment.RawConfig) (results.Table, error) {
	cfg, err := raw.Validate()
	if err != nil {
		return nil, err
	}
	return Simulate(cfg)
}

// Simulate executes the simulation for an already validated configuration.
//
// The shared random stream is consumed in a fixed order — covariance
// generation, then per repetition: sampling, response noise, measurement
// noise — so identical configurations produce bit-identical tables.
// No partial table is ever returned: the result is complete or nil.
func Simulate(cfg experiment.Config) (results.Table, error) {
	rng := randstream.New(cfg.Seed)
	nParams := cfg.NParams()

	slog.Debug("simulation starting",
		"n_params", nParams,
		"levels", len(cfg.MeasSDs),
		"n_repetitions", cfg.NRepetitions,
		"n_obs", cfg.NObs,
		"seed", cfg.Seed,
	)

	table := make(results.Table, 0, len(cfg.MeasSDs)*nParams)
	for level, measSD := range cfg.MeasSDs {
		cov := covarianceMatrix(cfg.CovType, nParams, rng)

		estimates := make([][]float64, 0, cfg.NRepetitions)
		for rep := 0; rep < cfg.NRepetitions; rep++ {
			x, y, _, err := drawSample(cfg.Mean, cov, cfg.NObs, cfg.YSD, cfg.TrueParams, rng)
			if err != nil {
				return nil, fmt.Errorf("level %d repetition %d: %w", level, rep, err)
			}

			x = injectMeasurementError(x, measSD, cfg.NObs, rng)

			coefs, err := estimateOLS(x, y)
			if err != nil {
				return nil, fmt.Errorf("level %d repetition %d: %w", level, rep, err)
			}
			estimates = append(estimates, coefs)
		}

		table = append(table, aggregate(estimates, cfg.TrueParams, measSD)...)
		slog.Debug("noise level complete", "level", level, "meas_sd", measSD)
	}

	slog.Debug("simulation complete", "rows", len(table))
	return table, nil
}
