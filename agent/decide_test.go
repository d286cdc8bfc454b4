package agent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/deepburrow/borgcore/action"
	"github.com/deepburrow/borgcore/agent"
	"github.com/deepburrow/borgcore/entity"
	"github.com/deepburrow/borgcore/grid"
	"github.com/deepburrow/borgcore/personality"
)

func openLevel(size int) *grid.Level {
	lvl := grid.NewLevel(size, size, 1)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			lvl.SetTile(grid.Point{X: x, Y: y}, grid.Tile{Type: grid.TileFloor, Explored: true})
		}
	}
	return lvl
}

func wanderer() *entity.Character {
	return &entity.Character{
		Position: grid.Point{X: 5, Y: 5},
		HP:       100, MaxHP: 100,
		ClassID: "warrior",
		Depth:   1,
	}
}

func baseContext() agent.Context {
	return agent.Context{
		Level:       openLevel(10),
		Character:   wanderer(),
		Personality: personality.Config{Aggression: 40, Caution: 50, Greed: 30},
		Turn:        1,
	}
}

func TestDecide_WaitsWhenNothingApplies(t *testing.T) {
	ctx := baseContext()
	ctx.FOVRadius = ctx.Level.Width
	ctx.LOS = func(grid.Point) bool { return true }
	state := agent.NewAgentState()
	act := agent.Decide(ctx, state)
	assert.Equal(t, action.KindWait, act.Kind)
}

func TestDecide_FleesCriticalHP(t *testing.T) {
	ctx := baseContext()
	ctx.Character.HP = 5
	monster := &entity.Monster{ID: "orc-1", HP: 10, MaxHP: 10, Position: grid.Point{X: 6, Y: 5}, IsAwake: true, Template: &entity.MonsterTemplate{}}
	ctx.Monsters = []*entity.Monster{monster}
	state := agent.NewAgentState()

	act := agent.Decide(ctx, state)

	assert.NotEqual(t, action.KindWait, act.Kind)
}

func TestDecide_MovesTowardExplorationFrontierWhenLevelUnfinished(t *testing.T) {
	ctx := baseContext()
	// A short FOV radius leaves most of the level unseen this visit, so a
	// frontier exists at its edge.
	ctx.FOVRadius = 3
	ctx.LOS = func(grid.Point) bool { return true }
	state := agent.NewAgentState()

	act := agent.Decide(ctx, state)

	assert.Equal(t, action.GoalExplore, state.CurrentGoal.Kind)
	assert.Equal(t, action.KindMove, act.Kind)
}

func TestDecide_EnterLevelResetsPerLevelState(t *testing.T) {
	ctx := baseContext()
	state := agent.NewAgentState()
	state.CurrentDepth = 1
	state.RecentPositions = []grid.Point{{X: 1, Y: 1}}
	state.HasCorridorDirection = true

	ctx.Character.Depth = 2
	agent.Decide(ctx, state)

	assert.Equal(t, 2, state.CurrentDepth)
	assert.False(t, state.HasCorridorDirection)
}

func TestDecide_RecoversFromPanicAsWaitWhenNotDebug(t *testing.T) {
	ctx := baseContext()
	ctx.Level = nil // triggers a nil-deref somewhere in the pipeline
	ctx.Character = wanderer()
	state := agent.NewAgentState()

	act := agent.Decide(ctx, state)

	assert.Equal(t, action.KindWait, act.Kind)
}

func TestDecide_PublishesActionSelectedEvent(t *testing.T) {
	ctx := baseContext()
	ctx.FOVRadius = ctx.Level.Width
	ctx.LOS = func(grid.Point) bool { return true }
	bus := events.NewBus()
	ctx.Bus = bus

	var got *agent.ActionSelectedEvent
	_, err := bus.Subscribe(agent.ActionSelectedRef, func(evt *agent.ActionSelectedEvent) error {
		got = evt
		return nil
	})
	assert.NoError(t, err)

	state := agent.NewAgentState()
	agent.Decide(ctx, state)

	assert.NotNil(t, got)
}
