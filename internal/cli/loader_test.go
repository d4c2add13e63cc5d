package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfigYAML = `true_params: [1, -0.5]
y_sd: 0.5
cov_type: deterministic
mean: [0, 0]
meas_sds: [0, 1]
n_repetitions: 10
seed: 42
n_obs: 50
`

// writeConfig drops a config file into a temp dir and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "experiment.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func loadErrCode(t *testing.T, err error) string {
	t.Helper()
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	return loadErr.Code
}

func TestLoadConfig_Valid(t *testing.T) {
	raw, err := LoadConfig(writeConfig(t, validConfigYAML))
	require.NoError(t, err)

	assert.Equal(t, "deterministic", raw.CovType)
	assert.Equal(t, 0.5, raw.YSD)
	assert.Equal(t, []float64{0, 1}, raw.MeasSDs)
	assert.Equal(t, 10, raw.NRepetitions)
	assert.Equal(t, 50, raw.NObs)

	cfg, err := raw.Validate()
	require.NoError(t, err)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, []float64{1, -0.5}, cfg.TrueParams)
}

func TestLoadConfig_NotFound(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Equal(t, ErrCodeNotFound, loadErrCode(t, err))
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "true_params: [1, 2\n"))
	require.Error(t, err)
	assert.Equal(t, ErrCodeParse, loadErrCode(t, err))
}

func TestLoadConfig_MissingRequiredField(t *testing.T) {
	// No y_sd: the schema check fails before semantic validation.
	content := `true_params: [1]
cov_type: random
mean: [0]
meas_sds: [0]
n_repetitions: 1
seed: 1
n_obs: 10
`
	_, err := LoadConfig(writeConfig(t, content))
	require.Error(t, err)
	assert.Equal(t, ErrCodeSchema, loadErrCode(t, err))
}

func TestLoadConfig_UnknownField(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, validConfigYAML+"extra_knob: 7\n"))
	require.Error(t, err)
	assert.Equal(t, ErrCodeSchema, loadErrCode(t, err))
}

func TestLoadConfig_WrongScalarKind(t *testing.T) {
	content := `true_params: [1]
y_sd: "lots"
cov_type: random
mean: [0]
meas_sds: [0]
n_repetitions: 1
seed: 1
n_obs: 10
`
	_, err := LoadConfig(writeConfig(t, content))
	require.Error(t, err)
	assert.Equal(t, ErrCodeSchema, loadErrCode(t, err))
}

// Type contamination the semantic validator owns must pass the loader
// intact: the schema is deliberately loose on these fields.
func TestLoadConfig_StringContaminationReachesValidator(t *testing.T) {
	content := `true_params: [1, "2"]
y_sd: 0.5
cov_type: deterministic
mean: [0, 0]
meas_sds: [0]
n_repetitions: 1
seed: 1
n_obs: 10
`
	raw, err := LoadConfig(writeConfig(t, content))
	require.NoError(t, err, "loader must not intercept type errors the validator owns")

	_, err = raw.Validate()
	require.Error(t, err)
	assert.EqualError(t, err, "Parameter cannot be a string.")
}

func TestLoadConfig_StringSeedReachesValidator(t *testing.T) {
	content := `true_params: [1]
y_sd: 0.5
cov_type: deterministic
mean: [0]
meas_sds: [0]
n_repetitions: 1
seed: reproducible
n_obs: 10
`
	raw, err := LoadConfig(writeConfig(t, content))
	require.NoError(t, err)

	_, err = raw.Validate()
	require.Error(t, err)
	assert.False(t, errors.As(err, new(*LoadError)))
	assert.Contains(t, err.Error(), "invalid seed")
}
