package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/deepburrow/borgcore/danger"
	"github.com/deepburrow/borgcore/entity"
	"github.com/deepburrow/borgcore/grid"
	"github.com/deepburrow/borgcore/personality"
	"github.com/deepburrow/borgcore/policy"
)

func survivorCharacter() *entity.Character {
	return &entity.Character{
		Position: grid.Point{X: 5, Y: 5},
		HP:       100,
		MaxHP:    100,
		MP:       50,
		MaxMP:    50,
		Inventory: []*entity.Item{
			{ID: "cure-paralysis", Template: &entity.ItemTemplate{Type: entity.ItemPotion, Cures: map[string]bool{"paralyzed": true}}},
			{ID: "heal-potion", Template: &entity.ItemTemplate{Type: entity.ItemPotion, HealBase: 40, Tier: 1}},
			{ID: "phase-door-scroll", Template: &entity.ItemTemplate{Type: entity.ItemScroll, ScrollKind: entity.ScrollPhaseDoor}},
			{ID: "teleport-scroll", Template: &entity.ItemTemplate{Type: entity.ItemScroll, ScrollKind: entity.ScrollTeleportation}},
		},
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

func TestSurvivalConsumable_CuresParalysisFirst(t *testing.T) {
	c := survivorCharacter()
	c.Status = []entity.StatusEffect{{Type: entity.StatusParalyzed, TurnsRemaining: 2}}
	in := policy.Input{Character: c}
	act, ok := policy.SurvivalConsumable(in)
	assert.True(t, ok)
	assert.Equal(t, "cure-paralysis", act.ItemID)
}

func TestSurvivalConsumable_CriticalOutnumberedUsesEscapeOverHeal(t *testing.T) {
	c := survivorCharacter()
	c.HP = 20
	in := policy.Input{Character: c, Tier: danger.Critical, Adjacent: 2}
	act, ok := policy.SurvivalConsumable(in)
	assert.True(t, ok)
	assert.Equal(t, "teleport-scroll", act.ItemID)
}

func TestSurvivalConsumable_HealsWhenWoundedAndSafe(t *testing.T) {
	c := survivorCharacter()
	c.HP = 40
	in := policy.Input{Character: c, Tier: danger.Caution}
	act, ok := policy.SurvivalConsumable(in)
	assert.True(t, ok)
	assert.Equal(t, "heal-potion", act.ItemID)
}

func TestSurvivalConsumable_NoActionWhenHealthyAndSafe(t *testing.T) {
	c := survivorCharacter()
	in := policy.Input{Character: c}
	_, ok := policy.SurvivalConsumable(in)
	assert.False(t, ok)
}

func TestSurvivalConsumable_HealsPriorityClassSkipsPotionWithMana(t *testing.T) {
	c := survivorCharacter()
	c.HP = 40
	c.MP = 40 // 80% of 50
	in := policy.Input{Character: c, ClassProfile: personality.ClassProfile{HealsPriority: true}}
	_, ok := policy.SurvivalConsumable(in)
	assert.False(t, ok)
}

func TestPhaseDoorSafe_TrueWhenDangerIsFarAway(t *testing.T) {
	lvl := openLevel(30)
	m := &entity.Monster{
		Template: &entity.MonsterTemplate{Attacks: []entity.Attack{{Method: entity.AttackMelee, Dice: "4d8"}}},
		HP:       20, MaxHP: 20, Position: grid.Point{X: 1, Y: 1}, IsAwake: true,
	}
	g := danger.BuildDangerGrid(lvl, []*entity.Monster{m}, 0)
	in := policy.Input{
		Character:  &entity.Character{Position: grid.Point{X: 25, Y: 25}},
		Level:      lvl,
		DangerGrid: g,
		Occupied:   map[grid.Point]bool{},
	}
	assert.True(t, policy.PhaseDoorSafe(in))
}
