package executor

import (
	"github.com/deepburrow/borgcore/action"
	"github.com/deepburrow/borgcore/grid"
)

// recentPenalty is added to a candidate neighbour's flow value when it
// appears in the recent-position history, discouraging the short back-
// and-forth loops a strict greedy descent can fall into on a stale or
// noisy flow grid.
const recentPenalty = 50

// Execute picks the next movement Action for the current Goal (spec.md
// §4.G). It reuses in.CachedFlow when it was built for the same goal,
// otherwise rebuilds the flow with the §4.A algorithm matching the
// goal's target shape (single point, or frontier set for EXPLORE).
func Execute(in Input) Result {
	if in.Goal.Kind == action.GoalWait || (in.Goal.Kind == action.GoalFlee && !in.Goal.HasTarget) {
		return Result{Action: action.Wait(), RecentPositions: in.RecentPositions}
	}

	flow, flowGoal, flowAt := resolveFlow(in)
	if flow == nil {
		return Result{Action: action.Wait(), RecentPositions: in.RecentPositions}
	}

	pos := in.Character.Position

	if in.HasCorridorDirection && !in.InCombat {
		if next, ok := continueCorridor(in, flow); ok {
			return advance(in, flow, flowGoal, flowAt, pos, next, in.CorridorDirection, true)
		}
	}

	dest, dir, ok := downhillWithPenalty(in, flow, pos)
	if !ok {
		dest, dir, ok = grid.DownhillStep(in.Level, flow, pos)
	}
	if !ok {
		return Result{
			Action: action.Wait(), Flow: flow, FlowGoal: flowGoal, FlowAt: flowAt,
			RecentPositions: in.RecentPositions, Stuck: true,
		}
	}

	keepCorridor := !in.InCombat && isCorridor(in.Level, dest)
	return advance(in, flow, flowGoal, flowAt, pos, dest, dir, keepCorridor)
}

func advance(in Input, flow *grid.FlowGrid, flowGoal action.Goal, flowAt uint64, from, to grid.Point, dir grid.Direction, corridor bool) Result {
	return Result{
		Action:               action.Move(dir),
		Flow:                 flow,
		FlowGoal:             flowGoal,
		FlowAt:               flowAt,
		RecentPositions:      pushRecent(in.RecentPositions, from),
		CorridorDirection:    dir,
		HasCorridorDirection: corridor,
	}
}

func resolveFlow(in Input) (*grid.FlowGrid, action.Goal, uint64) {
	if in.Goal.Kind == action.GoalExplore {
		return grid.MultiGoalFlow(in.Level, in.Frontier), in.Goal, in.Turn
	}
	if !in.Goal.HasTarget {
		return nil, action.Goal{}, 0
	}
	if in.CachedFlow != nil && in.CachedGoal.Kind == in.Goal.Kind && in.CachedGoal.SameTarget(in.Goal) {
		return in.CachedFlow, in.CachedGoal, in.CachedAt
	}
	return grid.SingleGoalFlow(in.Level, in.Goal.TargetPoint), in.Goal, in.Turn
}

// continueCorridor keeps moving in the committed direction as long as
// the next tile is still passable and still a 1-wide corridor, so the
// agent doesn't re-run the full neighbour scan on every step of a
// straight hallway.
func continueCorridor(in Input, flow *grid.FlowGrid) (grid.Point, bool) {
	next := in.Character.Position.Add(in.CorridorDirection.Delta())
	if !in.Level.IsPassable(next) {
		return grid.Point{}, false
	}
	if flow.Get(next) >= flow.Get(in.Character.Position) {
		return grid.Point{}, false
	}
	if !isCorridor(in.Level, next) {
		return grid.Point{}, false
	}
	return next, true
}

// isCorridor reports whether p has exactly two passable neighbours,
// the shape spec.md §4.G's corridor-following heuristic commits to
// until it reaches a branch.
func isCorridor(level *grid.Level, p grid.Point) bool {
	return len(level.PassableNeighbors8(p)) == 2
}

// downhillWithPenalty is grid.DownhillStep's tie-break scan, adjusted
// to discourage stepping onto a recently-visited tile unless it is the
// only progress available.
func downhillWithPenalty(in Input, flow *grid.FlowGrid, p grid.Point) (grid.Point, grid.Direction, bool) {
	recent := recentSet(in.RecentPositions)
	base := int(flow.Get(p))
	var bestPoint grid.Point
	var bestDir grid.Direction
	bestScore := 0
	found := false
	for _, dir := range grid.Directions8 {
		n := p.Add(dir.Delta())
		if !in.Level.IsPassable(n) {
			continue
		}
		v := int(flow.Get(n))
		if v == int(grid.MaxCost) || v >= base {
			continue
		}
		score := v
		if recent[n] {
			score += recentPenalty
		}
		if !found || score < bestScore {
			bestPoint, bestDir, bestScore, found = n, dir, score, true
		}
	}
	return bestPoint, bestDir, found
}

func recentSet(positions []grid.Point) map[grid.Point]bool {
	set := make(map[grid.Point]bool, len(positions))
	for _, p := range positions {
		set[p] = true
	}
	return set
}

func pushRecent(positions []grid.Point, p grid.Point) []grid.Point {
	out := append(append([]grid.Point{}, positions...), p)
	if len(out) > StepHistoryLength {
		out = out[len(out)-StepHistoryLength:]
	}
	return out
}
