package montecarlo

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/roach88/evsim/internal/results"
)

// aggregate reduces one noise level's coefficient estimates to one result
// row per parameter.
//
// For parameter i, deviation = estimate_i - trueParams_i across all
// repetitions; bias is the mean deviation and RMSE the root of the mean
// squared deviation. Rows are labeled x_0 through x_{n-1} and tagged with
// the level's measurement-noise standard deviation.
func aggregate(estimates [][]float64, trueParams []float64, measSD float64) results.Table {
	nParams := len(trueParams)
	nReps := len(estimates)

	rows := make(results.Table, nParams)
	devs := make([]float64, nReps)
	sqDevs := make([]float64, nReps)
	for i := 0; i < nParams; i++ {
		for r, est := range estimates {
			d := est[i] - trueParams[i]
			devs[r] = d
			sqDevs[r] = d * d
		}
		rows[i] = results.Row{
			Name:   fmt.Sprintf("x_%d", i),
			Bias:   stat.Mean(devs, nil),
			RMSE:   math.Sqrt(stat.Mean(sqDevs, nil)),
			MeasSD: measSD,
		}
	}
	return rows
}
