package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/evsim/internal/results"
)

// AssertGolden compares a result table against a golden file.
// The golden file is stored in testdata/golden/{name}.golden and holds the
// table's canonical CSV rendering, which is a faithful function of the
// table's exact bits.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func AssertGolden(t *testing.T, name string, table results.Table) error {
	t.Helper()

	data, err := table.MarshalCSV()
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)

	return nil
}

// RunWithGolden executes a scenario and compares the produced table
// against the scenario's golden file, in addition to evaluating the
// scenario's own assertions.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result.Table); err != nil {
		return nil, err
	}
	return result, nil
}
