package harness

import (
	"fmt"
	"math"
	"strings"

	"github.com/roach88/evsim/internal/results"
)

// AssertionError is returned when an assertion fails.
// It includes the offending rows to help debug the failure.
type AssertionError struct {
	Type     string        // Assertion type for categorization
	Expected string        // Human-readable expected outcome
	Actual   string        // Human-readable actual outcome
	Rows     results.Table // The rows the assertion examined
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Rows) > 0 {
		fmt.Fprintf(&buf, "\nExamined rows:\n")
		for _, row := range e.Rows {
			fmt.Fprintf(&buf, "  %s meas_sd=%g bias=%g rmse=%g\n", row.Name, row.MeasSD, row.Bias, row.RMSE)
		}
	}

	return buf.String()
}

// evaluateAssertion checks a single assertion against a result table.
func evaluateAssertion(table results.Table, assertion Assertion) error {
	switch assertion.Type {
	case AssertRowCount:
		return assertRowCount(table, assertion)
	case AssertBiasNear:
		return assertBiasNear(table, assertion)
	case AssertBiasTrend:
		return assertBiasTrend(table, assertion)
	case AssertRMSEBounded:
		return assertRMSEBounded(table, assertion)
	default:
		return fmt.Errorf("unknown assertion type: %s", assertion.Type)
	}
}

// assertRowCount checks the table has exactly the expected number of rows.
func assertRowCount(table results.Table, assertion Assertion) error {
	if len(table) == assertion.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertRowCount,
		Expected: fmt.Sprintf("%d rows", assertion.Count),
		Actual:   fmt.Sprintf("%d rows", len(table)),
	}
}

// assertBiasNear checks |bias| stays within tolerance for a parameter at
// every level from FromLevel on.
func assertBiasNear(table results.Table, assertion Assertion) error {
	rows, err := paramRows(table, assertion)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if math.Abs(row.Bias) > assertion.Tolerance {
			return &AssertionError{
				Type:     AssertBiasNear,
				Expected: fmt.Sprintf("|bias(%s)| <= %g at every level", assertion.Name, assertion.Tolerance),
				Actual:   fmt.Sprintf("bias = %g at meas_sd = %g", row.Bias, row.MeasSD),
				Rows:     rows,
			}
		}
	}
	return nil
}

// assertBiasTrend checks the parameter's bias lies within tolerance of the
// target at every level from FromLevel on.
func assertBiasTrend(table results.Table, assertion Assertion) error {
	rows, err := paramRows(table, assertion)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if math.Abs(row.Bias-assertion.Target) > assertion.Tolerance {
			return &AssertionError{
				Type:     AssertBiasTrend,
				Expected: fmt.Sprintf("bias(%s) within %g of %g from level %d on", assertion.Name, assertion.Tolerance, assertion.Target, assertion.FromLevel),
				Actual:   fmt.Sprintf("bias = %g at meas_sd = %g", row.Bias, row.MeasSD),
				Rows:     rows,
			}
		}
	}
	return nil
}

// assertRMSEBounded checks the parameter's RMSE stays below the bound.
func assertRMSEBounded(table results.Table, assertion Assertion) error {
	rows, err := paramRows(table, assertion)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if row.RMSE >= assertion.Bound {
			return &AssertionError{
				Type:     AssertRMSEBounded,
				Expected: fmt.Sprintf("rmse(%s) < %g at every level", assertion.Name, assertion.Bound),
				Actual:   fmt.Sprintf("rmse = %g at meas_sd = %g", row.RMSE, row.MeasSD),
				Rows:     rows,
			}
		}
	}
	return nil
}

// paramRows selects the named parameter's rows from FromLevel on.
func paramRows(table results.Table, assertion Assertion) (results.Table, error) {
	rows := table.Filter(assertion.Name)
	if len(rows) == 0 {
		return nil, &AssertionError{
			Type:     assertion.Type,
			Expected: fmt.Sprintf("rows for parameter %q", assertion.Name),
			Actual:   "no such parameter in table",
		}
	}
	if assertion.FromLevel < 0 || assertion.FromLevel >= len(rows) {
		return nil, &AssertionError{
			Type:     assertion.Type,
			Expected: fmt.Sprintf("from_level < %d levels", len(rows)),
			Actual:   fmt.Sprintf("from_level = %d", assertion.FromLevel),
		}
	}
	return rows[assertion.FromLevel:], nil
}
