package grid_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deepburrow/borgcore/grid"
)

// TestSafetyFlow_PlayerSafeCellIsLowerThanMonsterCell is property P4:
// the escape target, when non-null, has a strictly lower safety value
// than the player's current cell.
func TestSafetyFlow_PlayerSafeCellIsLowerThanMonsterCell(t *testing.T) {
	lvl := openRoom(10, 10)
	monsters := []grid.Point{{X: 1, Y: 1}}
	player := grid.Point{X: 2, Y: 1} // adjacent to the monster

	safety := grid.SafetyFlow(lvl, monsters)
	target, ok := grid.EscapeTarget(lvl, safety, player, monsters)
	require.True(t, ok)
	require.Less(t, safety.Get(target), safety.Get(player))
}

// Scenario 6 (§8.4): a dead-end corridor with monsters at the mouth and
// an open room beyond should make the open room the global safety
// maximum, so the escape route runs past the monsters rather than
// deeper into the dead end.
func TestSafetyFlow_FunnelPastMonstersToOpenRoom(t *testing.T) {
	// Layout (row 0 top): a 1-wide corridor at y=2, x=0..3 (dead end at
	// x=0), monsters guarding the mouth at x=4,y=2, and an open room
	// x=5..19,y=0..4 beyond them. The room reaches far enough past the
	// monster that the dead end lies outside the anchor threshold.
	lvl := grid.NewLevel(20, 5, 1)
	for y := 0; y < 5; y++ {
		for x := 0; x < 20; x++ {
			lvl.SetTile(grid.Point{X: x, Y: y}, grid.Tile{Type: grid.TileWall, Explored: true})
		}
	}
	for x := 0; x <= 4; x++ {
		lvl.SetTile(grid.Point{X: x, Y: 2}, grid.Tile{Type: grid.TileFloor, Explored: true})
	}
	for y := 0; y < 5; y++ {
		for x := 5; x < 20; x++ {
			lvl.SetTile(grid.Point{X: x, Y: y}, grid.Tile{Type: grid.TileFloor, Explored: true})
		}
	}

	monsters := []grid.Point{{X: 4, Y: 2}}
	player := grid.Point{X: 1, Y: 2} // deep in the dead end

	safety := grid.SafetyFlow(lvl, monsters)
	// The open room should be a safety maximum: lower safety value than
	// the dead end the player starts in.
	require.Less(t, safety.Get(grid.Point{X: 8, Y: 2}), safety.Get(player))

	target, ok := grid.EscapeTarget(lvl, safety, player, monsters)
	require.True(t, ok)
	// The escape walk must make progress toward x increasing (toward
	// the mouth/room), not retreat further into x=0.
	require.Greater(t, target.X, player.X)
}
