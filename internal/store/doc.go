// Package store provides SQLite-backed durable storage for simulation runs.
//
// The store holds two tables:
//   - Runs: one record per simulation run (id, label, seed, full config)
//   - Results: the run's flat result table, one row per (parameter, level)
//
// # Invariants
//
// Atomic run writes:
//   - A run and its result rows are written in a single transaction.
//   - A stored run is therefore always complete; partial tables are never
//     observable, mirroring the engine's no-partial-results contract.
//
// Deterministic reads:
//   - Result rows carry an explicit ord column recording their position in
//     the table, and reads ORDER BY ord. Row order is part of the result
//     contract (sweep order × parameter order) and must survive storage.
//
// Exact floats:
//   - bias, rmse and meas_sd are stored as SQLite REAL (IEEE 754 double),
//     which round-trips bit-exactly. The replay command relies on this to
//     compare stored and recomputed tables bit-for-bit.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
