// Package executor turns the goal arbiter's chosen Goal into a single
// movement Action each tick (spec.md §4.G): pick or reuse a flow grid
// toward the goal's target, then step downhill from it while avoiding
// the short-term oscillation a strict greedy descent can fall into.
package executor
