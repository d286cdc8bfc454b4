// Package agent assembles the danger classifier, tier handler, goal
// arbiter, and goal executor into the single per-tick decision
// function described by spec.md §2: Decide(ctx, state) returns exactly
// one Action, read-only over its Context and mutating only the
// caller-owned AgentState.
package agent
