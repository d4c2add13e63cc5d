package experiment

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validRaw returns a raw config that passes every check.
func validRaw() RawConfig {
	return RawConfig{
		TrueParams:   []any{1.0, 2.0, 3.0},
		YSD:          1.5,
		CovType:      "random",
		Mean:         []any{0.0, 0.0, 0.0},
		MeasSDs:      []float64{0, 0.5, 1},
		NRepetitions: 10,
		Seed:         42,
		NObs:         100,
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg, err := validRaw().Validate()
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 2, 3}, cfg.TrueParams)
	assert.Equal(t, 1.5, cfg.YSD)
	assert.Equal(t, CovRandom, cfg.CovType)
	assert.Equal(t, []float64{0, 0, 0}, cfg.Mean)
	assert.Equal(t, []float64{0, 0.5, 1}, cfg.MeasSDs)
	assert.Equal(t, 10, cfg.NRepetitions)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, 100, cfg.NObs)
	assert.Equal(t, 3, cfg.NParams())
}

func TestValidate_Deterministic(t *testing.T) {
	raw := validRaw()
	raw.CovType = "deterministic"

	cfg, err := raw.Validate()
	require.NoError(t, err)
	assert.Equal(t, CovDeterministic, cfg.CovType)
}

func TestValidate_StringParameter(t *testing.T) {
	raw := validRaw()
	raw.TrueParams = []any{1.0, "2", 3.0}

	_, err := raw.Validate()
	require.Error(t, err)
	assert.EqualError(t, err, "Parameter cannot be a string.")
	assert.Equal(t, ErrCodeInvalidParameterType, CodeOf(err))
}

func TestValidate_NegativeMeasSD(t *testing.T) {
	raw := validRaw()
	raw.MeasSDs = []float64{0, -0.1, 1}

	_, err := raw.Validate()
	require.Error(t, err)
	assert.EqualError(t, err, "Standard deviation of measurement error cannot be negative.")
	assert.Equal(t, ErrCodeInvalidMeasurementNoise, CodeOf(err))
}

func TestValidate_ZeroMeasSDAllowed(t *testing.T) {
	raw := validRaw()
	raw.MeasSDs = []float64{0}

	_, err := raw.Validate()
	assert.NoError(t, err, "zero measurement noise is a legitimate baseline level")
}

func TestValidate_NegativeYSD(t *testing.T) {
	raw := validRaw()
	raw.YSD = -1.5

	_, err := raw.Validate()
	require.Error(t, err)
	assert.EqualError(t, err, "Standard deviation of dependent variable y cannot be negative.")
	assert.Equal(t, ErrCodeInvalidResponseNoise, CodeOf(err))
}

func TestValidate_ZeroYSDAllowed(t *testing.T) {
	raw := validRaw()
	raw.YSD = 0

	_, err := raw.Validate()
	assert.NoError(t, err)
}

func TestValidate_Seed(t *testing.T) {
	tests := []struct {
		name    string
		seed    any
		want    uint64
		wantErr bool
	}{
		{name: "int", seed: 925408, want: 925408},
		{name: "int64", seed: int64(7), want: 7},
		{name: "uint64", seed: uint64(7), want: 7},
		{name: "integral float", seed: 42.0, want: 42},
		{name: "zero", seed: 0, want: 0},
		{name: "fractional float", seed: 1.5, wantErr: true},
		{name: "negative int", seed: -1, wantErr: true},
		{name: "string", seed: "42", wantErr: true},
		{name: "nil", seed: nil, wantErr: true},
		{name: "list", seed: []any{1, 2}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRaw()
			raw.Seed = tt.seed

			cfg, err := raw.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, ErrCodeInvalidSeed, CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Seed)
		})
	}
}

func TestValidate_InvalidCovType(t *testing.T) {
	raw := validRaw()
	raw.CovType = "diagonal"

	_, err := raw.Validate()
	require.Error(t, err)
	assert.EqualError(t, err, "Invalid cov_type: diagonal. Must be 'random' or 'deterministic'")
	assert.Equal(t, ErrCodeInvalidCovarianceType, CodeOf(err))
}

func TestValidate_NObs(t *testing.T) {
	for _, n := range []int{0, -5} {
		t.Run(fmt.Sprintf("n_obs=%d", n), func(t *testing.T) {
			raw := validRaw()
			raw.NObs = n

			_, err := raw.Validate()
			require.Error(t, err)
			assert.EqualError(t, err, fmt.Sprintf("Invalid n_obs: %d. Must be a positive integer.", n))
			assert.Equal(t, ErrCodeInvalidSampleSize, CodeOf(err))
		})
	}
}

func TestValidate_NRepetitions(t *testing.T) {
	raw := validRaw()
	raw.NRepetitions = 0

	_, err := raw.Validate()
	require.Error(t, err)
	assert.EqualError(t, err, "Invalid n_repetitions: 0. Must be a positive integer.")
	assert.Equal(t, ErrCodeInvalidSampleSize, CodeOf(err))
}

func TestValidate_StringMean(t *testing.T) {
	tests := []struct {
		name string
		mean any
	}{
		{name: "whole field", mean: "zeros"},
		{name: "single entry", mean: []any{0.0, "0", 0.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRaw()
			raw.Mean = tt.mean

			_, err := raw.Validate()
			require.Error(t, err)
			assert.EqualError(t, err, "Mean cannot be a string.")
			assert.Equal(t, ErrCodeInvalidParameterType, CodeOf(err))
		})
	}
}

func TestValidate_MeanFloatSlice(t *testing.T) {
	// Programmatic callers hand mean over as []float64 directly.
	raw := validRaw()
	raw.Mean = []float64{1, 2, 3}

	cfg, err := raw.Validate()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, cfg.Mean)
}

func TestValidate_DimensionMismatch(t *testing.T) {
	raw := validRaw()
	raw.Mean = []any{0.0, 0.0}

	_, err := raw.Validate()
	require.Error(t, err)
	assert.EqualError(t, err, "true_params and mean must have the same length, got 3 and 2")
	assert.Equal(t, ErrCodeDimensionMismatch, CodeOf(err))
}

// A config violating several checks at once reports only the first one,
// in the documented order.
func TestValidate_FirstViolationWins(t *testing.T) {
	raw := RawConfig{
		TrueParams:   []any{"1"},
		YSD:          -1,
		CovType:      "bogus",
		Mean:         "zeros",
		MeasSDs:      []float64{-1},
		NRepetitions: 0,
		Seed:         "nope",
		NObs:         0,
	}

	_, err := raw.Validate()
	require.Error(t, err)
	assert.EqualError(t, err, "Parameter cannot be a string.")

	// Fix the parameter list; measurement noise comes next.
	raw.TrueParams = []any{1.0}
	_, err = raw.Validate()
	assert.EqualError(t, err, "Standard deviation of measurement error cannot be negative.")

	raw.MeasSDs = []float64{1}
	_, err = raw.Validate()
	assert.EqualError(t, err, "Standard deviation of dependent variable y cannot be negative.")

	raw.YSD = 1
	_, err = raw.Validate()
	assert.Equal(t, ErrCodeInvalidSeed, CodeOf(err))

	raw.Seed = 1
	_, err = raw.Validate()
	assert.Equal(t, ErrCodeInvalidCovarianceType, CodeOf(err))

	raw.CovType = "random"
	_, err = raw.Validate()
	assert.Equal(t, ErrCodeInvalidSampleSize, CodeOf(err))

	raw.NObs = 10
	_, err = raw.Validate()
	assert.EqualError(t, err, "Invalid n_repetitions: 0. Must be a positive integer.")

	raw.NRepetitions = 1
	_, err = raw.Validate()
	assert.EqualError(t, err, "Mean cannot be a string.")

	raw.Mean = []any{0.0}
	_, err = raw.Validate()
	assert.NoError(t, err)
}

func TestValidate_DoesNotMutateInput(t *testing.T) {
	raw := validRaw()
	cfg, err := raw.Validate()
	require.NoError(t, err)

	// Mutating the validated config must not reach back into the raw input
	// or a second validation of it.
	cfg.MeasSDs[0] = 99
	cfg.TrueParams[0] = 99

	cfg2, err := raw.Validate()
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.5, 1}, cfg2.MeasSDs)
	assert.Equal(t, []float64{1, 2, 3}, cfg2.TrueParams)
}

func TestConfig_RawRoundTrip(t *testing.T) {
	cfg, err := validRaw().Validate()
	require.NoError(t, err)

	cfg2, err := cfg.Raw().Validate()
	require.NoError(t, err)
	assert.Equal(t, cfg, cfg2)
}
