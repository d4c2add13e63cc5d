// Package experiment defines the experiment configuration and its
// validation gate.
//
// Configurations exist in two forms. RawConfig is the wire form: it is what
// the YAML loader decodes, and its field types are deliberately loose so
// that malformed inputs (a string where a number belongs, a list where a
// scalar belongs) survive decoding and reach Validate, where they fail with
// the contractual error messages. Config is the validated form: fully
// typed, immutable by convention, and the only thing the simulation engine
// accepts.
//
// Validate runs its checks in a fixed order and reports the first violation
// only. No randomness is consumed and no simulation work is performed until
// validation has passed.
package experiment

// CovType selects how the regressor covariance matrix is constructed.
type CovType string

const (
	// CovRandom draws a fresh Gram-plus-identity covariance matrix from the
	// shared random stream for every noise level.
	CovRandom CovType = "random"

	// CovDeterministic uses the fixed identity-plus-0.2 matrix; no
	// randomness is consumed.
	CovDeterministic CovType = "deterministic"
)

// Config is a validated, fully typed experiment configuration.
//
// Construct via RawConfig.Validate; a Config built any other way carries no
// guarantees. Treat as immutable: the engine never mutates it, and neither
// should callers.
type Config struct {
	// TrueParams is the ground-truth coefficient vector.
	TrueParams []float64

	// YSD is the standard deviation of the response's additive noise.
	YSD float64

	// CovType is the covariance construction mode.
	CovType CovType

	// Mean is the mean vector of the regressors.
	// Always the same length as TrueParams.
	Mean []float64

	// MeasSDs is the sweep of measurement-error standard deviations.
	MeasSDs []float64

	// NRepetitions is the number of trials per noise level.
	NRepetitions int

	// Seed initializes the shared random stream.
	Seed uint64

	// NObs is the number of observations per trial.
	NObs int
}

// NParams returns the number of model parameters.
func (c Config) NParams() int {
	return len(c.TrueParams)
}

// RawConfig is the wire form of an experiment configuration, as decoded
// from YAML or JSON.
//
// Fields that the validation contract must be able to reject on type
// grounds (true_params entries, mean, seed) are declared loose so that a
// string smuggled into a numeric slot is representable and fails in
// Validate rather than at decode time.
type RawConfig struct {
	TrueParams   []any     `yaml:"true_params" json:"true_params"`
	YSD          float64   `yaml:"y_sd" json:"y_sd"`
	CovType      string    `yaml:"cov_type" json:"cov_type"`
	Mean         any       `yaml:"mean" json:"mean"`
	MeasSDs      []float64 `yaml:"meas_sds" json:"meas_sds"`
	NRepetitions int       `yaml:"n_repetitions" json:"n_repetitions"`
	Seed         any       `yaml:"seed" json:"seed"`
	NObs         int       `yaml:"n_obs" json:"n_obs"`
}

// Raw converts a validated Config back to its wire form.
// Used when persisting the configuration alongside a run so that replay
// feeds the exact same input through the exact same gate.
func (c Config) Raw() RawConfig {
	params := make([]any, len(c.TrueParams))
	for i, p := range c.TrueParams {
		params[i] = p
	}
	mean := make([]any, len(c.Mean))
	for i, m := range c.Mean {
		mean[i] = m
	}
	return RawConfig{
		TrueParams:   params,
		YSD:          c.YSD,
		CovType:      string(c.CovType),
		Mean:         mean,
		MeasSDs:      append([]float64(nil), c.MeasSDs...),
		NRepetitions: c.NRepetitions,
		Seed:         c.Seed,
		NObs:         c.NObs,
	}
}
