// Package goal implements the strategic goal arbiter: a fixed,
// priority-ordered evaluation that picks the single current Goal each
// tick (spec.md §4.F). It reads precomputed situational facts off its
// Input rather than deriving them itself — the same "snapshot carries
// the answers, arbiter only orders them" split tier already uses for
// action selection.
package goal
