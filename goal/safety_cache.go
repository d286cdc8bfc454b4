package goal

import "github.com/deepburrow/borgcore/grid"

// SafetyFlowCache memoizes grid.SafetyFlow's inverted-Dijkstra result
// across FLEE ticks (spec.md §3.1's caching requirement for the safety
// flow). It invalidates whenever the bot's position or the living
// monster count changes, since either is enough to shift the monster
// source set that the flow is built from.
type SafetyFlowCache struct {
	Grid         *grid.FlowGrid
	Position     grid.Point
	MonsterCount int
	Valid        bool
}

// Get returns the cached grid when it was built for the same position
// and living-monster count, rebuilding and re-caching it otherwise.
func (c *SafetyFlowCache) Get(level *grid.Level, player grid.Point, monsters []grid.Point) *grid.FlowGrid {
	if c.Valid && c.Position.Equals(player) && c.MonsterCount == len(monsters) {
		return c.Grid
	}
	g := grid.SafetyFlow(level, monsters)
	c.Grid = g
	c.Position = player
	c.MonsterCount = len(monsters)
	c.Valid = true
	return g
}
