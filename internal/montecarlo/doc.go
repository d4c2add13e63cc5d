// Package montecarlo implements the errors-in-variables simulation engine.
//
// The engine quantifies, by repeated random simulation, how measurement
// error in one regressor of a multivariate linear model biases OLS
// coefficient estimates, and how that bias scales with the error's
// standard deviation (attenuation bias).
//
// ARCHITECTURE:
//
// Single Stream, Fixed Order:
// The engine runs on one logical thread and consumes one shared random
// stream in a fixed order:
//
//  1. Validation gates the run; any violation is terminal and happens
//     before any randomness is consumed.
//  2. For each noise level in the configured sweep, one covariance matrix
//     is generated (consuming the stream only in "random" mode).
//  3. For each repetition: a clean design and response are sampled, the
//     first regressor is corrupted with measurement noise, and OLS
//     coefficients are estimated on the corrupted design against the
//     clean response.
//  4. Per-level estimates are reduced to per-parameter bias and RMSE rows;
//     rows across levels are concatenated in sweep order.
//
// Because the consumption order is fixed, a fixed seed reproduces the
// entire result table bit-for-bit. Parallelizing across noise levels is
// possible only with pre-partitioned sub-streams (randstream.Partition);
// naive shared-stream parallelism would make results depend on execution
// order and is never done here.
//
// The engine performs no I/O inside the simulation loop and returns no
// partial results: a run either produces the complete table or an error.
package montecarlo
