package goal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/deepburrow/borgcore/action"
	"github.com/deepburrow/borgcore/entity"
	"github.com/deepburrow/borgcore/goal"
	"github.com/deepburrow/borgcore/grid"
	"github.com/deepburrow/borgcore/personality"
	"github.com/deepburrow/borgcore/policy"
)

func wanderer() *entity.Character {
	return &entity.Character{
		Position: grid.Point{X: 5, Y: 5},
		HP:       100, MaxHP: 100,
		ClassID: "warrior",
	}
}

func openLevel(size int) *grid.Level {
	lvl := grid.NewLevel(size, size, 1)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			lvl.SetTile(grid.Point{X: x, Y: y}, grid.Tile{Type: grid.TileFloor})
		}
	}
	return lvl
}

func livingMonster(id string, pos grid.Point) *entity.Monster {
	return &entity.Monster{ID: id, HP: 10, MaxHP: 10, Position: pos, IsAwake: true, Template: &entity.MonsterTemplate{}}
}

func baseInput() goal.Input {
	return goal.Input{
		Input: policy.Input{
			Character:   wanderer(),
			Personality: personality.Config{Aggression: 40, Caution: 50, Greed: 30},
		},
	}
}

func TestEvaluate_FleeOnLowHP(t *testing.T) {
	in := baseInput()
	in.Character.HP = 20 // HPRatio 0.2 < RetreatHPRatio 0.5
	in.Level = openLevel(10)
	g := goal.Evaluate(in, action.Goal{})
	assert.Equal(t, action.GoalFlee, g.Kind)
}

func TestEvaluate_FleeUsesSafetyFlowDestinationWhenMonstersPresent(t *testing.T) {
	in := baseInput()
	in.Character.HP = 5
	in.Level = openLevel(12)
	threat := livingMonster("orc-1", grid.Point{X: 6, Y: 5})
	in.Monsters = []*entity.Monster{threat}
	g := goal.Evaluate(in, action.Goal{})
	assert.Equal(t, action.GoalFlee, g.Kind)
	assert.True(t, g.HasTarget)
}

func TestEvaluate_NoFleeWhenHealthyAndSafe(t *testing.T) {
	in := baseInput()
	in.Level = openLevel(10)
	in.ExplorationRatio = 1.0
	g := goal.Evaluate(in, action.Goal{})
	assert.NotEqual(t, action.GoalFlee, g.Kind)
}

func TestEvaluate_KillAdjacentMonster(t *testing.T) {
	in := baseInput()
	in.Adjacent = 1
	m := livingMonster("goblin-1", grid.Point{X: 6, Y: 5})
	in.Monsters = []*entity.Monster{m}
	g := goal.Evaluate(in, action.Goal{})
	assert.Equal(t, action.GoalKill, g.Kind)
	assert.Equal(t, "goblin-1", g.TargetID)
}

func TestEvaluate_TakeItemUnderfoot(t *testing.T) {
	in := baseInput()
	in.ExplorationRatio = 1.0
	item := &entity.GroundItem{Item: &entity.Item{ID: "gold-pile"}, Position: in.Character.Position}
	in.GroundItems = []*entity.GroundItem{item}
	g := goal.Evaluate(in, action.Goal{})
	assert.Equal(t, action.GoalTake, g.Kind)
	assert.Equal(t, "gold-pile", g.TargetID)
}

func TestEvaluate_TakeSkipsBlacklistedItem(t *testing.T) {
	in := baseInput()
	in.ExplorationRatio = 1.0
	item := &entity.GroundItem{Item: &entity.Item{ID: "cursed-ring"}, Position: in.Character.Position}
	in.GroundItems = []*entity.GroundItem{item}
	in.BlacklistedItemIDs = map[string]bool{"cursed-ring": true}
	g := goal.Evaluate(in, action.Goal{})
	assert.NotEqual(t, action.GoalTake, g.Kind)
}

func TestEvaluate_DescendWhenStairsKnownAndReady(t *testing.T) {
	in := baseInput()
	in.Level = openLevel(10)
	stairs := grid.Point{X: 8, Y: 8}
	in.Level.StairsDown = &stairs
	in.ExplorationRatio = 1.0
	g := goal.Evaluate(in, action.Goal{})
	assert.Equal(t, action.GoalDescend, g.Kind)
	assert.True(t, g.HasTarget)
	assert.True(t, g.TargetPoint.Equals(stairs))
}

func TestEvaluate_FarmWhenNotDepthReady(t *testing.T) {
	in := baseInput()
	in.Level = openLevel(10)
	stairs := grid.Point{X: 8, Y: 8}
	in.Level.StairsDown = &stairs
	in.ExplorationRatio = 1.0
	in.Capabilities = personality.Capabilities{Farming: true}
	in.PreparednessLevel = 3
	in.TargetDepth = 40 // requires healing potions the character doesn't have
	g := goal.Evaluate(in, action.Goal{})
	assert.Equal(t, action.GoalFarm, g.Kind)
}

func TestEvaluate_ExploreWhenLevelUnfinished(t *testing.T) {
	in := baseInput()
	in.ExplorationRatio = 0.4
	g := goal.Evaluate(in, action.Goal{})
	assert.Equal(t, action.GoalExplore, g.Kind)
}

func TestEvaluate_WaitWhenNothingApplies(t *testing.T) {
	in := baseInput()
	in.ExplorationRatio = 1.0
	g := goal.Evaluate(in, action.Goal{})
	assert.Equal(t, action.GoalWait, g.Kind)
}

func TestEvaluate_PreservesStartTurnWhenGoalUnchanged(t *testing.T) {
	in := baseInput()
	in.ExplorationRatio = 0.4
	in.Turn = 50
	current := action.Goal{Kind: action.GoalExplore, StartTurn: 10}
	g := goal.Evaluate(in, current)
	assert.Equal(t, action.GoalExplore, g.Kind)
	assert.Equal(t, uint64(10), g.StartTurn)
}

func TestEvaluate_ResetsStartTurnWhenGoalChanges(t *testing.T) {
	in := baseInput()
	in.Character.HP = 20
	in.Level = openLevel(10)
	in.Turn = 50
	current := action.Goal{Kind: action.GoalExplore, StartTurn: 10}
	g := goal.Evaluate(in, current)
	assert.Equal(t, action.GoalFlee, g.Kind)
	assert.Equal(t, uint64(50), g.StartTurn)
}

func TestEvaluate_HuntUniqueEngagesBlockingUnique(t *testing.T) {
	in := baseInput()
	unique := livingMonster("durin", grid.Point{X: 7, Y: 7})
	in.LivingUniquesInRange = []*entity.Monster{unique, livingMonster("azog", grid.Point{X: 20, Y: 20})}
	in.BlockingUnique = unique
	g := goal.Evaluate(in, action.Goal{})
	assert.Equal(t, action.GoalHuntUnique, g.Kind)
	assert.Equal(t, "durin", g.TargetID)
}

func TestEvaluate_KiteMaintainsDistanceWithinBowRange(t *testing.T) {
	in := baseInput()
	in.ClassProfile = personality.ClassProfile{PrefersRanged: true}
	in.Capabilities = personality.Capabilities{Kiting: 3}
	monster := livingMonster("archer-target", grid.Point{X: 9, Y: 5})
	in.ClosestMonster = monster
	in.ClosestDistance = 4
	in.BowRange = 6
	g := goal.Evaluate(in, action.Goal{})
	assert.Equal(t, action.GoalKite, g.Kind)
}

func TestEvaluate_KiteDurationCapFlipsToAscendToFarm(t *testing.T) {
	in := baseInput()
	in.ClassProfile = personality.ClassProfile{PrefersRanged: true}
	in.Capabilities = personality.Capabilities{Kiting: 3}
	monster := livingMonster("archer-target", grid.Point{X: 9, Y: 5})
	in.ClosestMonster = monster
	in.ClosestDistance = 4
	in.BowRange = 6
	in.KiteTargetID = "archer-target"
	in.KiteTurnsOnTarget = 100
	g := goal.Evaluate(in, action.Goal{})
	assert.Equal(t, action.GoalAscendToFarm, g.Kind)
}
