package montecarlo

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/roach88/evsim/internal/experiment"
)

// covarianceMatrix builds the regressor covariance matrix for one noise
// level. Called once per level, not once per repetition: all repetitions
// within a level observe the same covariance structure.
//
// Deterministic mode returns the identity with every entry offset by 0.2
// (diagonal 1.2, off-diagonal 0.2) and consumes no randomness.
//
// Random mode draws A with independent entries uniform on [-1, 1] from the
// shared stream and returns A·Aᵀ + I. The Gram term makes the result
// symmetric positive semi-definite; the identity term keeps it well
// conditioned even when A is rank-deficient.
func covarianceMatrix(covType experiment.CovType, nParams int, rng *rand.Rand) *mat.SymDense {
	if covType == experiment.CovDeterministic {
		cov := mat.NewSymDense(nParams, nil)
		for i := 0; i < nParams; i++ {
			for j := i; j < nParams; j++ {
				if i == j {
					cov.SetSym(i, j, 1.2)
				} else {
					cov.SetSym(i, j, 0.2)
				}
			}
		}
		return cov
	}

	// Entries are drawn row-major so the stream consumption order is a
	// stable part of the reproducibility contract.
	uniform := distuv.Uniform{Min: -1, Max: 1, Src: rng}
	data := make([]float64, nParams*nParams)
	for i := range data {
		data[i] = uniform.Rand()
	}
	a := mat.NewDense(nParams, nParams, data)

	var cov mat.SymDense
	cov.SymOuterK(1, a)
	for i := 0; i < nParams; i++ {
		cov.SetSym(i, i, cov.At(i, i)+1)
	}
	return &cov
}
