package grid_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deepburrow/borgcore/grid"
)

// openRoom builds a width x height level with every tile floor.
func openRoom(width, height int) *grid.Level {
	lvl := grid.NewLevel(width, height, 1)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			lvl.SetTile(grid.Point{X: x, Y: y}, grid.Tile{Type: grid.TileFloor, Explored: true})
		}
	}
	return lvl
}

func TestMultiSourceBFS_OriginIsZero(t *testing.T) {
	lvl := openRoom(5, 5)
	flow := grid.MultiSourceBFS(lvl, []grid.Point{{X: 2, Y: 2}})
	require.Equal(t, int16(0), flow.Get(grid.Point{X: 2, Y: 2}))
	// Diagonal neighbour is 1 step away (8-way movement).
	require.Equal(t, int16(1), flow.Get(grid.Point{X: 3, Y: 3}))
	require.Equal(t, int16(2), flow.Get(grid.Point{X: 4, Y: 0}))
}

func TestMultiSourceBFS_WallBlocksFlow(t *testing.T) {
	lvl := openRoom(5, 5)
	// Wall off column x=2 entirely.
	for y := 0; y < 5; y++ {
		lvl.SetTile(grid.Point{X: 2, Y: y}, grid.Tile{Type: grid.TileWall, Explored: true})
	}
	flow := grid.MultiSourceBFS(lvl, []grid.Point{{X: 0, Y: 0}})
	require.Equal(t, grid.MaxCost, flow.Get(grid.Point{X: 4, Y: 4}))
}

func TestMultiSourceBFS_MultipleSourcesTakeNearest(t *testing.T) {
	lvl := openRoom(10, 1)
	flow := grid.MultiSourceBFS(lvl, []grid.Point{{X: 0, Y: 0}, {X: 9, Y: 0}})
	require.Equal(t, int16(4), flow.Get(grid.Point{X: 4, Y: 0}))
	require.Equal(t, int16(4), flow.Get(grid.Point{X: 5, Y: 0}))
}

func TestDownhillStep_PrefersCardinalOnTie(t *testing.T) {
	lvl := openRoom(3, 3)
	flow := grid.NewInt16Grid(3, 3, grid.MaxCost)
	p := grid.Point{X: 1, Y: 1}
	flow.Set(p, 5)
	// North and West tie at the lowest value; Directions8 lists North
	// before West, so the tie must resolve to North.
	flow.Set(grid.Point{X: 1, Y: 0}, 3) // North
	flow.Set(grid.Point{X: 0, Y: 1}, 3) // West
	flow.Set(grid.Point{X: 1, Y: 2}, 4) // South
	flow.Set(grid.Point{X: 2, Y: 1}, 4) // East

	_, dir, ok := grid.DownhillStep(lvl, flow, p)
	require.True(t, ok)
	require.Equal(t, grid.North, dir)
}

func TestDownhillStep_NoProgressAtGoal(t *testing.T) {
	lvl := openRoom(3, 3)
	flow := grid.MultiSourceBFS(lvl, []grid.Point{{X: 1, Y: 1}})
	_, _, ok := grid.DownhillStep(lvl, flow, grid.Point{X: 1, Y: 1})
	require.False(t, ok)
}

func TestFloodFill_Connectivity(t *testing.T) {
	lvl := openRoom(4, 4)
	lvl.SetTile(grid.Point{X: 2, Y: 0}, grid.Tile{Type: grid.TileWall, Explored: true})
	lvl.SetTile(grid.Point{X: 2, Y: 1}, grid.Tile{Type: grid.TileWall, Explored: true})
	lvl.SetTile(grid.Point{X: 2, Y: 2}, grid.Tile{Type: grid.TileWall, Explored: true})
	lvl.SetTile(grid.Point{X: 2, Y: 3}, grid.Tile{Type: grid.TileWall, Explored: true})
	reachable := grid.FloodFill(lvl, grid.Point{X: 0, Y: 0})
	require.False(t, reachable[grid.Point{X: 3, Y: 0}])
	require.True(t, reachable[grid.Point{X: 1, Y: 3}])
}

func TestSeenGrid_ClearPreservesExplored(t *testing.T) {
	lvl := openRoom(3, 3)
	seen := grid.NewSeenGrid(3, 3)
	seen.Mark(grid.Point{X: 0, Y: 0})
	seen.Mark(grid.Point{X: 1, Y: 1})
	require.Equal(t, 2, seen.Count())

	seen.Clear()
	require.Equal(t, 0, seen.Count())
	// level.Explored is untouched by SeenGrid.Clear (P7).
	require.Equal(t, 9, lvl.ExploredCount)
}
