package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/attenuation_smoke.yaml")
	require.NoError(t, err)

	assert.Equal(t, "attenuation-smoke", s.Name)
	assert.NotEmpty(t, s.Description)
	assert.Equal(t, "deterministic", s.Config.CovType)
	assert.Equal(t, []float64{0, 1}, s.Config.MeasSDs)
	require.Len(t, s.Assertions, 3)
	assert.Equal(t, AssertRowCount, s.Assertions[0].Type)
	assert.Equal(t, 4, s.Assertions[0].Count)
	assert.Equal(t, AssertBiasNear, s.Assertions[1].Type)
	assert.Equal(t, "x_1", s.Assertions[1].Name)
	assert.Equal(t, AssertRMSEBounded, s.Assertions[2].Type)
	assert.Equal(t, 2.0, s.Assertions[2].Bound)
}

func TestLoadScenario_ConfigPassesValidation(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/baseline_unbiased.yaml")
	require.NoError(t, err)

	cfg, err := s.Config.Validate()
	require.NoError(t, err)
	assert.Equal(t, uint64(7), cfg.Seed)
	assert.Equal(t, []float64{1, -0.5, 2}, cfg.TrueParams)
}

func TestLoadScenario_NotFound(t *testing.T) {
	_, err := LoadScenario("testdata/scenarios/missing.yaml")
	assert.Error(t, err)
}

func TestLoadScenario_UnknownAssertionType(t *testing.T) {
	_, err := LoadScenario("testdata/scenarios/bad_assertion.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown type "bias_exact"`)
}

func TestLoadScenario_MissingName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unnamed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("description: no name here\n"), 0o644))

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

func TestLoadScenario_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: [unclosed\n"), 0o644))

	_, err := LoadScenario(path)
	assert.Error(t, err)
}
