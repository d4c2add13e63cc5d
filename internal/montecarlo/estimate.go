package montecarlo

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// estimateOLS fits ordinary least squares of y on the corrupted design x,
// with no intercept term and no regularization, and returns the
// coefficient vector.
//
// The solve goes through gonum's QR factorization (mat.Dense.Solve on an
// overdetermined system), which is numerically stable without forming the
// normal equations.
func estimateOLS(x *mat.Dense, y *mat.VecDense) ([]float64, error) {
	_, nParams := x.Dims()

	var beta mat.Dense
	if err := beta.Solve(x, y); err != nil {
		return nil, fmt.Errorf("solve least squares: %w", err)
	}

	coefs := make([]float64, nParams)
	for i := range coefs {
		coefs[i] = beta.At(i, 0)
	}
	return coefs, nil
}
