package experiment

import "errors"

// ValidationError represents a configuration defect detected before any
// simulation work is performed.
//
// Validation errors include:
//   - Non-numeric entries in true_params or mean
//   - Negative noise standard deviations
//   - A seed value that cannot seed the random stream
//   - An unsupported covariance type
//   - Non-positive sample sizes
//
// The Message text is part of the observable contract: callers and tests
// assert on it verbatim, so Error() returns it unchanged.
type ValidationError struct {
	// Code identifies the error category.
	Code ValidationErrorCode

	// Message is the exact, contractual error text.
	Message string

	// Field names the offending configuration field, when meaningful.
	Field string
}

// ValidationErrorCode categorizes validation errors.
type ValidationErrorCode string

const (
	// ErrCodeInvalidParameterType indicates a non-numeric entry in
	// true_params or mean.
	ErrCodeInvalidParameterType ValidationErrorCode = "INVALID_PARAMETER_TYPE"

	// ErrCodeInvalidMeasurementNoise indicates a negative meas_sds entry.
	ErrCodeInvalidMeasurementNoise ValidationErrorCode = "INVALID_MEASUREMENT_NOISE"

	// ErrCodeInvalidResponseNoise indicates a negative y_sd.
	ErrCodeInvalidResponseNoise ValidationErrorCode = "INVALID_RESPONSE_NOISE"

	// ErrCodeInvalidSeed indicates a seed value that cannot deterministically
	// seed the random stream.
	ErrCodeInvalidSeed ValidationErrorCode = "INVALID_SEED"

	// ErrCodeInvalidCovarianceType indicates an unsupported cov_type value.
	ErrCodeInvalidCovarianceType ValidationErrorCode = "INVALID_COVARIANCE_TYPE"

	// ErrCodeInvalidSampleSize indicates a non-positive n_obs or n_repetitions.
	ErrCodeInvalidSampleSize ValidationErrorCode = "INVALID_SAMPLE_SIZE"

	// ErrCodeDimensionMismatch indicates len(true_params) != len(mean).
	ErrCodeDimensionMismatch ValidationErrorCode = "DIMENSION_MISMATCH"
)

// Error implements the error interface.
// Returns the bare message: the text is contractual and must not be decorated.
func (e *ValidationError) Error() string {
	return e.Message
}

// CodeOf extracts the validation error code from an error.
// Returns the empty code if the error is not a ValidationError.
// Uses errors.As to handle wrapped errors.
func CodeOf(err error) ValidationErrorCode {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Code
	}
	return ""
}

// IsValidationError returns true if the error (or any error it wraps) is a
// ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
