package harness

import (
	"fmt"

	"github.com/roach88/evsim/internal/montecarlo"
	"github.com/roach88/evsim/internal/results"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall scenario success.
	// True if the run succeeded and all assertions held.
	Pass bool `json:"pass"`

	// Table is the result table the engine produced.
	Table results.Table `json:"table"`

	// Errors contains assertion failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// Run executes a scenario: the config goes through the engine's normal
// validation gate, the experiment runs, and every assertion is evaluated
// against the produced table.
//
// A config that fails validation is a scenario error (the scenario itself
// is malformed), not an assertion failure. Assertion failures are all
// collected; the first defect does not mask the rest.
func Run(scenario *Scenario) (*Result, error) {
	table, err := montecarlo.Run(scenario.Config)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	result := &Result{Pass: true, Table: table}
	for _, assertion := range scenario.Assertions {
		if err := evaluateAssertion(table, assertion); err != nil {
			result.Pass = false
			result.Errors = append(result.Errors, err.Error())
		}
	}
	return result, nil
}
