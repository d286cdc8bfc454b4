// Package tier implements the per-tier action-selection dispatcher:
// given the danger tier classified for the current tick, it walks a
// fixed, ordered chain of candidate actions and returns the first one
// that applies. Nothing here mutates AgentState directly — the caller
// is responsible for recording progress against the returned action.
package tier
