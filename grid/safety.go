package grid

import "container/heap"

// Safety-flow tuning constants, per spec.md §4.A: a step cost of 5 and
// an inversion factor of -1.2 (implemented as integer x(-6), since
// 5 * -1.2 = -6) bias the gradient toward distant safety maxima over
// nearby corners.
const (
	safetyStepCost  = 5
	safetyInvert    = -6
	anchorThreshold = 15
)

// heapEntry is one node in the pre-allocated Dijkstra heap. seq breaks
// ties by insertion order, matching spec.md's "ties broken by insertion
// order."
type heapEntry struct {
	pos  Point
	cost int
	seq  int
}

type minHeap []heapEntry

func (h minHeap) Len() int { return len(h) }
func (h minHeap) Less(i, j int) bool {
	if h[i].cost != h[j].cost {
		return h[i].cost < h[j].cost
	}
	return h[i].seq < h[j].seq
}
func (h minHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *minHeap) Push(x any)        { *h = append(*h, x.(heapEntry)) }
func (h *minHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// SafetyFlow implements spec.md §4.A's inverted-Dijkstra escape-flow
// procedure. monsters are the living monster positions; it returns the
// resulting safety_grid (lower == closer to a safety maximum).
func SafetyFlow(level *Level, monsters []Point) *FlowGrid {
	distFromMonster := MultiSourceBFS(level, monsters)

	// Step 2: invert reachable cells; find the global minimum.
	globalMin := 0
	haveAny := false
	inv := NewInt16Grid(level.Width, level.Height, 0)
	for y := 0; y < level.Height; y++ {
		for x := 0; x < level.Width; x++ {
			p := Point{X: x, Y: y}
			if !level.IsPassable(p) {
				continue
			}
			d := distFromMonster.Get(p)
			if d == MaxCost {
				continue
			}
			v := int(d) * safetyInvert
			inv.Set(p, int16(v))
			if !haveAny || v < globalMin {
				globalMin = v
				haveAny = true
			}
		}
	}

	// Step 3: seed anchors within anchorThreshold of the global min.
	safety := NewInt16Grid(level.Width, level.Height, MaxCost)
	h := &minHeap{}
	heap.Init(h)
	seq := 0
	for y := 0; y < level.Height; y++ {
		for x := 0; x < level.Width; x++ {
			p := Point{X: x, Y: y}
			if !level.IsPassable(p) {
				continue
			}
			d := distFromMonster.Get(p)
			if d == MaxCost {
				continue
			}
			if int(inv.Get(p)) <= globalMin+anchorThreshold {
				safety.Set(p, 0)
				heap.Push(h, heapEntry{pos: p, cost: 0, seq: seq})
				seq++
			}
		}
	}

	// Step 4: Dijkstra expansion with uniform step cost.
	best := make(map[Point]int)
	for h.Len() > 0 {
		entry := heap.Pop(h).(heapEntry)
		if prev, ok := best[entry.pos]; ok && prev <= entry.cost {
			continue // stale entry
		}
		best[entry.pos] = entry.cost
		safety.Set(entry.pos, int16(entry.cost))

		for _, dir := range Directions8 {
			n := entry.pos.Add(dir.Delta())
			if !level.IsPassable(n) {
				continue
			}
			nc := entry.cost + safetyStepCost
			if prev, ok := best[n]; ok && prev <= nc {
				continue
			}
			heap.Push(h, heapEntry{pos: n, cost: nc, seq: seq})
			seq++
		}
	}

	return safety
}

// EscapeTarget walks downhill on safetyGrid from player for up to
// MaxEscapeLookahead steps, avoiding monster-occupied cells and cells
// already visited on this walk, per spec.md §4.A step 4. Returns the
// final cell reached and true, or the zero Point and false if the very
// first step produced no progress.
func EscapeTarget(level *Level, safetyGrid *FlowGrid, player Point, monsters []Point) (Point, bool) {
	occupied := make(map[Point]bool, len(monsters))
	for _, m := range monsters {
		occupied[m] = true
	}

	visited := map[Point]bool{player: true}
	cur := player
	moved := false

	for step := 0; step < MaxEscapeLookahead; step++ {
		curVal := safetyGrid.Get(cur)
		bestVal := curVal
		var next Point
		found := false
		for _, dir := range Directions8 {
			n := cur.Add(dir.Delta())
			if !level.IsPassable(n) || occupied[n] || visited[n] {
				continue
			}
			v := safetyGrid.Get(n)
			if v == MaxCost {
				continue
			}
			if v < bestVal {
				bestVal = v
				next = n
				found = true
			}
		}
		if !found {
			break
		}
		cur = next
		visited[cur] = true
		moved = true
	}

	if !moved {
		return Point{}, false
	}
	return cur, true
}
