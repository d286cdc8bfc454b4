package executor

import (
	"github.com/deepburrow/borgcore/action"
	"github.com/deepburrow/borgcore/entity"
	"github.com/deepburrow/borgcore/grid"
)

// StepHistoryLength caps how many recent positions feed the
// anti-oscillation penalty (spec.md §4.G).
const StepHistoryLength = 25

// Input bundles the per-tick facts Execute needs: the chosen goal, the
// level to route across, and the cached flow grid / movement history
// carried over from the previous tick.
type Input struct {
	Level     *grid.Level
	Character *entity.Character
	Goal      action.Goal
	Turn      uint64

	// Frontier is the set of unexplored-but-reachable tiles Execute
	// builds a fresh multi-goal flow toward when Goal.Kind is
	// action.GoalExplore.
	Frontier []grid.Point

	// CachedFlow/CachedGoal/CachedAt are the flow grid computed on a
	// previous tick and the goal/turn it was computed for. Execute
	// reuses CachedFlow when CachedGoal names the same kind and target
	// as Goal, avoiding a full BFS every tick.
	CachedFlow *grid.FlowGrid
	CachedGoal action.Goal
	CachedAt   uint64

	// RecentPositions is the last up-to-StepHistoryLength positions
	// visited, oldest first, for the anti-oscillation penalty.
	RecentPositions []grid.Point

	// CorridorDirection/HasCorridorDirection is the direction the
	// previous tick committed to while following a 1-wide corridor.
	// Combat resets this (spec.md §9 Open Question 2).
	CorridorDirection    grid.Direction
	HasCorridorDirection bool
	InCombat             bool
}

// Result is Execute's output: the action to take, plus the
// cache/history state for the caller to persist into AgentState for
// next tick.
type Result struct {
	Action action.Action

	Flow     *grid.FlowGrid
	FlowGoal action.Goal
	FlowAt   uint64

	RecentPositions []grid.Point

	CorridorDirection    grid.Direction
	HasCorridorDirection bool

	// Stuck reports that no neighbour made progress toward the goal;
	// the caller should bump its twitch_counter (spec.md §7).
	Stuck bool
}
