// Package planner implements the chore planning core: occurrence
// expansion, constraint-scored greedy scheduling, fairness scoring and
// pairwise rebalancing.
//
// Every run is a single-threaded, synchronous computation over immutable
// inputs and a private Context; concurrent runs for different households
// need no coordination. Given identical inputs and an identical
// idempotency key, two runs produce identical output.
//
// The package never panics and never returns an error for over-constrained
// input: infeasible occurrences go to the backlog, degenerate households
// get a fixed neutral fairness score, and a run that exceeds its
// wall-clock budget is truncated with partial results and a flag.
package planner
