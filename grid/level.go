package grid

// TileType enumerates the structural kind of a dungeon tile. Passability
// is an invariant of TileType: Level.Passable[i] == 1 iff
// TileAt(i).Type is one of the walkable kinds below.
type TileType int

// Tile type constants.
const (
	TileWall TileType = iota
	TileFloor
	TileDoorOpen
	TileDoorClosed
	TileStairsUp
	TileStairsDown
	TileTownFloor
	TileTownBuilding
	TileRubble
	TileWater
)

// walkableTypes is the only place passability is decided from a TileType;
// Level.SetTile uses it (through IsWalkable) to keep the Passable bitmap
// consistent with Tiles,
// per spec.md §3.1's invariant.
var walkableTypes = map[TileType]bool{
	TileFloor:      true,
	TileDoorOpen:   true,
	TileDoorClosed: true,
	TileStairsUp:   true,
	TileStairsDown: true,
	TileTownFloor:  true,
}

// IsWalkable reports whether a tile type is passable by the invariant in
// spec.md §3.1.
func IsWalkable(t TileType) bool {
	return walkableTypes[t]
}

// Tile is a single dungeon cell.
type Tile struct {
	Type     TileType
	Visible  bool
	Explored bool
}

// Level is a fixed width x height dungeon grid: the immutable per-tick
// snapshot the rest of the agent core reasons over.
type Level struct {
	Width  int
	Height int
	Depth  int // 0 = town, 1..MaxDepth = dungeon

	Tiles []Tile // flat, indexed y*Width+x

	// Passable is an invariant bitmap: Passable[i] == 1 iff
	// Tiles[i].Type is walkable. One byte per cell (0 or 1), not a
	// packed bitset, matching spec.md's "bitmap" language without
	// introducing bit-twiddling where it buys nothing at this scale
	// (levels top out around 80x40 = 3200 cells).
	Passable []byte

	// Explored is a persistent-across-visits bitmap, distinct from
	// SeenGrid which tracks only the current visit (spec.md §3.1, P7).
	Explored []byte

	StairsUp   *Point
	StairsDown *Point

	ExploredCount        int
	ExploredPassableCount int
}

// NewLevel allocates a Level of the given size with every tile a wall.
func NewLevel(width, height, depth int) *Level {
	n := width * height
	return &Level{
		Width:    width,
		Height:   height,
		Depth:    depth,
		Tiles:    make([]Tile, n),
		Passable: make([]byte, n),
		Explored: make([]byte, n),
	}
}

// Index converts a point to a flat array index. Callers must check
// InBounds first; Index does not bounds-check.
func (l *Level) Index(p Point) int {
	return p.Y*l.Width + p.X
}

// InBounds reports whether p lies within the level.
func (l *Level) InBounds(p Point) bool {
	return p.X >= 0 && p.X < l.Width && p.Y >= 0 && p.Y < l.Height
}

// TileAt returns the tile at p. Panics if out of bounds, matching the
// teacher's convention of trusting internally-validated callers (tools/
// spatial's grid accessors behave the same way); all exported entry
// points in this module check InBounds first.
func (l *Level) TileAt(p Point) Tile {
	return l.Tiles[l.Index(p)]
}

// IsPassable reports whether p is in bounds and walkable.
func (l *Level) IsPassable(p Point) bool {
	if !l.InBounds(p) {
		return false
	}
	return l.Passable[l.Index(p)] == 1
}

// SetTile sets a tile and keeps the Passable/Explored bitmaps and the
// explored counters consistent with it. This is the only mutator Level
// exposes; it exists for test fixture construction, not for the agent
// core itself (which only ever borrows a read-only Level per tick).
func (l *Level) SetTile(p Point, t Tile) {
	i := l.Index(p)
	wasExploredPassable := l.Explored[i] == 1 && l.Passable[i] == 1
	wasExplored := l.Explored[i] == 1

	l.Tiles[i] = t
	if IsWalkable(t.Type) {
		l.Passable[i] = 1
	} else {
		l.Passable[i] = 0
	}
	if t.Explored {
		l.Explored[i] = 1
	} else {
		l.Explored[i] = 0
	}

	nowExplored := l.Explored[i] == 1
	nowExploredPassable := nowExplored && l.Passable[i] == 1
	if nowExplored && !wasExplored {
		l.ExploredCount++
	} else if !nowExplored && wasExplored {
		l.ExploredCount--
	}
	if nowExploredPassable && !wasExploredPassable {
		l.ExploredPassableCount++
	} else if !nowExploredPassable && wasExploredPassable {
		l.ExploredPassableCount--
	}
}

// TotalPassableCount returns the number of passable cells on the level,
// the denominator a per-visit SeenGrid-based exploration ratio divides
// into (spec.md §3.1, P7) — unlike ExploredPassableCount this does not
// track visibility at all, just the level's fixed walkable footprint.
func (l *Level) TotalPassableCount() int {
	n := 0
	for _, v := range l.Passable {
		if v == 1 {
			n++
		}
	}
	return n
}

// Neighbors8 returns the up-to-8 in-bounds neighbours of p, in the fixed
// Directions8 order.
func (l *Level) Neighbors8(p Point) []Point {
	out := make([]Point, 0, 8)
	for _, d := range Directions8 {
		n := p.Add(d.Delta())
		if l.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// PassableNeighbors8 returns the in-bounds, walkable neighbours of p, in
// the fixed Directions8 order. Corner-cutting through solid walls is not
// forbidden at this layer, per spec.md §4.A: a diagonal move is allowed
// whenever the target tile itself is passable.
func (l *Level) PassableNeighbors8(p Point) []Point {
	out := make([]Point, 0, 8)
	for _, d := range Directions8 {
		n := p.Add(d.Delta())
		if l.IsPassable(n) {
			out = append(out, n)
		}
	}
	return out
}
