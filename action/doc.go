// Package action defines the Action and Goal tagged unions the rest of
// the agent core produces and consumes (spec.md §3.1, §6.1).
package action
