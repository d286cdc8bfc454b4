package grid

// MaxCost is the sentinel distance meaning "unreachable" in a FlowGrid,
// per spec.md §3.1. It is comfortably above MaxBFSDist*1 and above any
// Dijkstra distance this module computes (levels are capped around
// 80x40 cells), so no real distance ever collides with it.
const MaxCost int16 = 30000

// MaxBFSDist is the search horizon for multi-source BFS: a cell whose
// true distance from every source would exceed this is left at MaxCost
// rather than explored.
const MaxBFSDist = 50

// MaxEscapeLookahead bounds how many downhill steps the safety-flow
// walk takes from the player's position (spec.md §4.A step 4).
const MaxEscapeLookahead = 10

// StepHistoryLength bounds AgentState.RecentPositions (spec.md §3.1,
// §4.G step 4).
const StepHistoryLength = 25

// Int16Grid is the common flat, array-backed storage for DangerGrid and
// FlowGrid: one signed 16-bit value per cell, indexed
// y*Width+x. This is the concrete type spec.md §9 asks for in place of
// the teacher's string-keyed-map grids.
type Int16Grid struct {
	Width  int
	Height int
	Values []int16
}

// NewInt16Grid allocates a grid of the given size filled with fill.
func NewInt16Grid(width, height int, fill int16) *Int16Grid {
	g := &Int16Grid{Width: width, Height: height, Values: make([]int16, width*height)}
	if fill != 0 {
		for i := range g.Values {
			g.Values[i] = fill
		}
	}
	return g
}

// Index converts a point to a flat index.
func (g *Int16Grid) Index(p Point) int {
	return p.Y*g.Width + p.X
}

// InBounds reports whether p lies within the grid.
func (g *Int16Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Get returns the value at p, or MaxCost if p is out of bounds.
func (g *Int16Grid) Get(p Point) int16 {
	if !g.InBounds(p) {
		return MaxCost
	}
	return g.Values[g.Index(p)]
}

// Set stores a value at p. No-op if out of bounds.
func (g *Int16Grid) Set(p Point, v int16) {
	if !g.InBounds(p) {
		return
	}
	g.Values[g.Index(p)] = v
}

// Reset refills the grid with fill in place, reusing the backing array
// (no realloc per tick), per spec.md §9's "rebuilding a grid reuses the
// buffer" note.
func (g *Int16Grid) Reset(fill int16) {
	for i := range g.Values {
		g.Values[i] = fill
	}
}

// FlowGrid holds BFS distances from a goal set; MaxCost denotes
// unreachable.
type FlowGrid = Int16Grid

// DangerGrid holds per-tile threat scores; zero is safe, larger values
// are more dangerous.
type DangerGrid = Int16Grid

// SeenGrid is a single-byte-per-cell bitmap of tiles entered FOV since
// the last arrival on the level, distinct from Level.Explored which
// persists across visits (spec.md §3.1, P7). It is stored as its own
// type (not Int16Grid) because its values are boolean, not a distance.
type SeenGrid struct {
	Width  int
	Height int
	Seen   []byte
}

// NewSeenGrid allocates an empty (all-unseen) SeenGrid.
func NewSeenGrid(width, height int) *SeenGrid {
	return &SeenGrid{Width: width, Height: height, Seen: make([]byte, width*height)}
}

// Index converts a point to a flat index.
func (g *SeenGrid) Index(p Point) int {
	return p.Y*g.Width + p.X
}

// Mark records p as seen this visit.
func (g *SeenGrid) Mark(p Point) {
	if p.X < 0 || p.X >= g.Width || p.Y < 0 || p.Y >= g.Height {
		return
	}
	g.Seen[g.Index(p)] = 1
}

// IsSeen reports whether p has been seen this visit.
func (g *SeenGrid) IsSeen(p Point) bool {
	if p.X < 0 || p.X >= g.Width || p.Y < 0 || p.Y >= g.Height {
		return false
	}
	return g.Seen[g.Index(p)] == 1
}

// Count returns the number of cells marked seen this visit.
func (g *SeenGrid) Count() int {
	n := 0
	for _, v := range g.Seen {
		if v == 1 {
			n++
		}
	}
	return n
}

// Clear resets every cell to unseen. Called on level-change (spec.md
// §3.1: "Entering a new depth clears seen_this_visit but not
// level.explored").
func (g *SeenGrid) Clear() {
	for i := range g.Seen {
		g.Seen[i] = 0
	}
}
