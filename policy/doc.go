// Package policy implements the five independent consumable/spell
// action policies of spec.md §4.D: survival consumables, pre-combat
// buffs, combat buffs, utility consumables, stuck-exploration
// escalation, and the per-school spell policies. Each policy is a pure
// function of an Input snapshot to an optional action.Action.
package policy
