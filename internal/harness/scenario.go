package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/evsim/internal/experiment"
)

// Scenario defines a conformance test scenario.
// Scenarios validate engine behavior by running one experiment and
// asserting on the resulting table.
type Scenario struct {
	// Name uniquely identifies this scenario.
	// Also names the golden file when golden comparison is used.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Config is the experiment configuration to run, in wire form.
	// It passes through the same validation gate as production input.
	Config experiment.RawConfig `yaml:"config"`

	// Assertions validate the produced result table.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion validates one property of a result table.
type Assertion struct {
	// Type specifies the assertion type:
	// - "row_count": table has exactly Count rows
	// - "bias_near": |bias| of parameter Name within Tolerance per level
	// - "bias_trend": bias of Name within Tolerance of Target from FromLevel on
	// - "rmse_bounded": RMSE of Name stays below Bound
	Type string `yaml:"type"`

	// Name is the parameter label (used by bias_near, bias_trend, rmse_bounded).
	Name string `yaml:"name,omitempty"`

	// Count is the expected row count (used by row_count).
	Count int `yaml:"count,omitempty"`

	// Tolerance bounds the distance from the expected value
	// (used by bias_near and bias_trend).
	Tolerance float64 `yaml:"tolerance,omitempty"`

	// Target is the expected bias value (used by bias_trend).
	Target float64 `yaml:"target,omitempty"`

	// FromLevel is the first sweep index the assertion applies to,
	// letting trend assertions skip the pre-convergence levels.
	FromLevel int `yaml:"from_level,omitempty"`

	// Bound is the exclusive RMSE upper bound (used by rmse_bounded).
	Bound float64 `yaml:"bound,omitempty"`
}

// Assertion type constants.
const (
	AssertRowCount    = "row_count"
	AssertBiasNear    = "bias_near"
	AssertBiasTrend   = "bias_trend"
	AssertRMSEBounded = "rmse_bounded"
)

// LoadScenario reads and parses a scenario YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	if scenario.Name == "" {
		return nil, fmt.Errorf("scenario %s: name is required", path)
	}
	for i, a := range scenario.Assertions {
		switch a.Type {
		case AssertRowCount, AssertBiasNear, AssertBiasTrend, AssertRMSEBounded:
		default:
			return nil, fmt.Errorf("scenario %s: assertion %d has unknown type %q", path, i, a.Type)
		}
	}

	return &scenario, nil
}
