package action_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/deepburrow/borgcore/action"
	"github.com/deepburrow/borgcore/grid"
)

func TestMove_CarriesDirection(t *testing.T) {
	a := action.Move(grid.North)
	assert.Equal(t, action.KindMove, a.Kind)
	assert.Equal(t, grid.North, a.Direction)
}

func TestCast_CarriesSpellAndTarget(t *testing.T) {
	a := action.Cast("fireball", "monster-7")
	assert.Equal(t, action.KindCast, a.Kind)
	assert.Equal(t, "fireball", a.SpellID)
	assert.Equal(t, "monster-7", a.TargetID)
}

func TestWait_IsZeroValueKind(t *testing.T) {
	assert.Equal(t, action.Action{Kind: action.KindWait}, action.Wait())
}

func TestGoal_SameTarget_BothAbsent(t *testing.T) {
	a := action.Goal{Kind: action.GoalExplore}
	b := action.Goal{Kind: action.GoalExplore}
	assert.True(t, a.SameTarget(b))
}

func TestGoal_SameTarget_OneAbsentOnePresent(t *testing.T) {
	a := action.Goal{Kind: action.GoalKill}
	b := action.Goal{Kind: action.GoalKill}.WithTarget(grid.Point{X: 1, Y: 1})
	assert.False(t, a.SameTarget(b))
}

func TestGoal_SameTarget_DifferentPoints(t *testing.T) {
	a := action.Goal{Kind: action.GoalKill}.WithTarget(grid.Point{X: 1, Y: 1})
	b := action.Goal{Kind: action.GoalKill}.WithTarget(grid.Point{X: 2, Y: 2})
	assert.False(t, a.SameTarget(b))
}

func TestGoalKind_String(t *testing.T) {
	assert.Equal(t, "FLEE", action.GoalFlee.String())
	assert.Equal(t, "DESCEND", action.GoalDescend.String())
}
