package montecarlo

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
	"gonum.org/v1/gonum/stat/distuv"
)

// drawSample draws one repetition's clean design matrix and response.
//
// X is nObs independent draws from MVN(mean, cov); eps is an independent
// N(0, ySD) noise vector; y = X·trueParams + eps. The response is always
// computed from the clean X, before any measurement error exists. The
// noise vector is returned so callers can reconstruct y exactly.
//
// Stream consumption order: all nObs multivariate draws first, then the
// nObs response-noise draws.
func drawSample(
	mean []float64,
	cov *mat.SymDense,
	nObs int,
	ySD float64,
	trueParams []float64,
	rng *rand.Rand,
) (x *mat.Dense, y, eps *mat.VecDense, err error) {
	normal, ok := distmv.NewNormal(mean, cov, rng)
	if !ok {
		return nil, nil, nil, fmt.Errorf("covariance matrix is not positive definite")
	}

	nParams := len(mean)
	x = mat.NewDense(nObs, nParams, nil)
	sample := make([]float64, nParams)
	for i := 0; i < nObs; i++ {
		normal.Rand(sample)
		x.SetRow(i, sample)
	}

	noise := distuv.Normal{Mu: 0, Sigma: ySD, Src: rng}
	eps = mat.NewVecDense(nObs, nil)
	for i := 0; i < nObs; i++ {
		eps.SetVec(i, noise.Rand())
	}

	y = mat.NewVecDense(nObs, nil)
	theta := mat.NewVecDense(nParams, trueParams)
	y.MulVec(x, theta)
	y.AddVec(y, eps)

	return x, y, eps, nil
}
