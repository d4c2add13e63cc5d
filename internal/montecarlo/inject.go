package montecarlo

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// injectMeasurementError corrupts column 0 of x with additive N(0, measSD)
// noise drawn from the shared stream and returns x.
//
// Exactly one regressor is mismeasured; all other columns are untouched.
// This asymmetry is the point of the experiment: it isolates the bias
// introduced by measurement error in a single variable.
//
// The corruption happens in place: the returned matrix aliases the input.
// Noise is drawn, and the stream consumed, even when measSD is zero, so
// that the consumption order is identical at every sweep point.
func injectMeasurementError(x *mat.Dense, measSD float64, nObs int, rng *rand.Rand) *mat.Dense {
	noise := distuv.Normal{Mu: 0, Sigma: measSD, Src: rng}
	for i := 0; i < nObs; i++ {
		x.Set(i, 0, x.At(i, 0)+noise.Rand())
	}
	return x
}
