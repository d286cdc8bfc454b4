// Package grid provides the flat, array-backed grid algorithms the agent
// core uses to reason about the dungeon: multi-source and single-goal
// breadth-first search, an inverted-Dijkstra safety flow for fleeing
// threats, and reachability flood fill.
//
// DangerGrid and FlowGrid are fixed-size arrays of signed 16-bit values
// indexed y*width+x; SeenGrid is a same-indexed array of single bytes.
// String-keyed maps are
// deliberately never used for per-tile state — see the package-level
// MaxCost sentinel and the BFS/Dijkstra implementations below.
//
// Dungeon generation, tile semantics, and field-of-view computation are
// out of scope; this package only ever consumes an already-built Level.
package grid
