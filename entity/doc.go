// Package entity defines the read-only snapshot types the agent core
// consumes each tick: Character, Item/ItemTemplate, Monster/
// MonsterTemplate, status effects, and the dungeon-feature snapshots
// (ground items, altars, merchants). None of these types are mutated by
// this module — a separate resolver outside this module's scope owns
// state mutation (spec.md §1).
package entity
