// Package harness provides scenario-based conformance testing for the
// simulation engine.
//
// A scenario bundles an experiment configuration with assertions over the
// result table the engine produces for it. Scenarios are defined in YAML:
//
//	name: attenuation_sweep
//	description: "x_0 attenuates toward zero as measurement noise grows"
//	config:
//	  true_params: [1, 1, 1, 1, 1, 1]
//	  y_sd: 1.5
//	  cov_type: random
//	  mean: [0, 0, 0, 0, 0, 0]
//	  meas_sds: [0, 0.5, 1.0, 2.0]
//	  n_repetitions: 100
//	  seed: 925408
//	  n_obs: 500
//	assertions:
//	  - type: row_count
//	    count: 24
//	  - type: bias_trend
//	    name: x_0
//	    target: -1
//	    tolerance: 0.5
//	    from_level: 3
//	  - type: bias_near
//	    name: x_1
//	    tolerance: 0.1
//
// # Assertion Types
//
//   - row_count: the table has exactly count rows
//   - bias_near: |bias| of the named parameter stays within tolerance at
//     every level (from from_level on)
//   - bias_trend: the named parameter's bias lies within tolerance of
//     target at every level from from_level on
//   - rmse_bounded: the named parameter's RMSE stays below bound
//
// # Deterministic Testing
//
// Scenarios are deterministic by construction: the seed lives in the
// config, and the engine's fixed stream-consumption order does the rest.
// This makes golden snapshots of the rendered table meaningful; see
// AssertGolden.
package harness
