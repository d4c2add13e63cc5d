package experiment

import (
	"fmt"
	"math"
)

// Contractual error texts. Tests assert on these verbatim; do not reword.
const (
	msgParamString  = "Parameter cannot be a string."
	msgMeanString   = "Mean cannot be a string."
	msgMeasNegative = "Standard deviation of measurement error cannot be negative."
	msgYSDNegative  = "Standard deviation of dependent variable y cannot be negative."
)

// Validate checks the raw configuration and returns its validated form.
//
// Checks run in a fixed order and the first violation is reported; callers
// must not assume later checks ran. The order is:
//
//  1. true_params entries must be numeric (never strings)
//  2. meas_sds entries must be non-negative
//  3. y_sd must be non-negative
//  4. seed must be usable to seed the random stream
//  5. cov_type must be "random" or "deterministic"
//  6. n_obs must be positive
//  7. n_repetitions must be positive
//  8. mean must not be a string, and its entries must be numeric
//  9. true_params and mean must have the same length
//
// Validate has no side effects: it does not mutate the raw config, consume
// randomness, or perform any simulation work.
func (rc RawConfig) Validate() (Config, error) {
	trueParams, err := parseNumericSlice(rc.TrueParams, msgParamString, "true_params", ErrCodeInvalidParameterType)
	if err != nil {
		return Config{}, err
	}

	for _, sd := range rc.MeasSDs {
		if sd < 0 {
			return Config{}, &ValidationError{
				Code:    ErrCodeInvalidMeasurementNoise,
				Message: msgMeasNegative,
				Field:   "meas_sds",
			}
		}
	}

	if rc.YSD < 0 {
		return Config{}, &ValidationError{
			Code:    ErrCodeInvalidResponseNoise,
			Message: msgYSDNegative,
			Field:   "y_sd",
		}
	}

	seed, err := parseSeed(rc.Seed)
	if err != nil {
		return Config{}, err
	}

	covType := CovType(rc.CovType)
	if covType != CovRandom && covType != CovDeterministic {
		return Config{}, &ValidationError{
			Code:    ErrCodeInvalidCovarianceType,
			Message: fmt.Sprintf("Invalid cov_type: %s. Must be 'random' or 'deterministic'", rc.CovType),
			Field:   "cov_type",
		}
	}

	if rc.NObs <= 0 {
		return Config{}, &ValidationError{
			Code:    ErrCodeInvalidSampleSize,
			Message: fmt.Sprintf("Invalid n_obs: %d. Must be a positive integer.", rc.NObs),
			Field:   "n_obs",
		}
	}
	if rc.NRepetitions <= 0 {
		return Config{}, &ValidationError{
			Code:    ErrCodeInvalidSampleSize,
			Message: fmt.Sprintf("Invalid n_repetitions: %d. Must be a positive integer.", rc.NRepetitions),
			Field:   "n_repetitions",
		}
	}

	mean, err := parseMean(rc.Mean)
	if err != nil {
		return Config{}, err
	}

	if len(trueParams) != len(mean) {
		return Config{}, &ValidationError{
			Code:    ErrCodeDimensionMismatch,
			Message: fmt.Sprintf("true_params and mean must have the same length, got %d and %d", len(trueParams), len(mean)),
			Field:   "mean",
		}
	}

	return Config{
		TrueParams:   trueParams,
		YSD:          rc.YSD,
		CovType:      covType,
		Mean:         mean,
		MeasSDs:      append([]float64(nil), rc.MeasSDs...),
		NRepetitions: rc.NRepetitions,
		Seed:         seed,
		NObs:         rc.NObs,
	}, nil
}

// parseMean converts the loosely typed mean field into a float vector.
// A string anywhere (the whole field or any entry) is a contract violation.
func parseMean(v any) ([]float64, error) {
	switch m := v.(type) {
	case string:
		return nil, &ValidationError{
			Code:    ErrCodeInvalidParameterType,
			Message: msgMeanString,
			Field:   "mean",
		}
	case []float64:
		return append([]float64(nil), m...), nil
	case []any:
		return parseNumericSlice(m, msgMeanString, "mean", ErrCodeInvalidParameterType)
	default:
		return nil, &ValidationError{
			Code:    ErrCodeInvalidParameterType,
			Message: fmt.Sprintf("mean is not a numeric vector: %v (%T)", v, v),
			Field:   "mean",
		}
	}
}

// parseNumericSlice converts a decoded []any into floats.
// String entries produce the given contractual message; other non-numeric
// entries produce a descriptive message under the same code.
func parseNumericSlice(vals []any, stringMsg, field string, code ValidationErrorCode) ([]float64, error) {
	out := make([]float64, len(vals))
	for i, v := range vals {
		if _, isString := v.(string); isString {
			return nil, &ValidationError{Code: code, Message: stringMsg, Field: field}
		}
		f, ok := toFloat(v)
		if !ok {
			return nil, &ValidationError{
				Code:    code,
				Message: fmt.Sprintf("%s entry %d is not numeric: %v (%T)", field, i, v, v),
				Field:   field,
			}
		}
		out[i] = f
	}
	return out, nil
}

// parseSeed converts the loosely typed seed field into a stream seed.
// Only integer scalars are accepted; the error message reports the
// offending value as-is rather than rewording it.
func parseSeed(v any) (uint64, error) {
	invalid := func() (uint64, error) {
		return 0, &ValidationError{
			Code:    ErrCodeInvalidSeed,
			Message: fmt.Sprintf("invalid seed: %v (%T) cannot seed the random stream", v, v),
			Field:   "seed",
		}
	}

	switch s := v.(type) {
	case int:
		if s < 0 {
			return invalid()
		}
		return uint64(s), nil
	case int64:
		if s < 0 {
			return invalid()
		}
		return uint64(s), nil
	case uint:
		return uint64(s), nil
	case uint64:
		return s, nil
	case float64:
		// YAML decoders sometimes hand back an integral float;
		// accept it iff it is exactly an integer.
		if s < 0 || s != math.Trunc(s) || math.IsInf(s, 0) || math.IsNaN(s) {
			return invalid()
		}
		return uint64(s), nil
	default:
		return invalid()
	}
}

// toFloat widens any Go numeric scalar to float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
