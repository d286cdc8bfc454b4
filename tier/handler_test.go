package tier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/deepburrow/borgcore/action"
	"github.com/deepburrow/borgcore/danger"
	"github.com/deepburrow/borgcore/entity"
	"github.com/deepburrow/borgcore/grid"
	"github.com/deepburrow/borgcore/personality"
	"github.com/deepburrow/borgcore/policy"
	"github.com/deepburrow/borgcore/tier"
)

func fighter() *entity.Character {
	return &entity.Character{
		Position: grid.Point{X: 5, Y: 5},
		HP:       100, MaxHP: 100,
		MP: 20, MaxMP: 20,
		Stats:   entity.Stats{STR: 16},
		ClassID: "warrior",
	}
}

func adjacentGoblin() *entity.Monster {
	return &entity.Monster{
		ID:       "goblin-1",
		Template: &entity.MonsterTemplate{Attacks: []entity.Attack{{Method: entity.AttackMelee, Dice: "1d6"}}},
		HP:       10, MaxHP: 10, Position: grid.Point{X: 6, Y: 5}, IsAwake: true,
	}
}

func TestDispatch_CriticalFallsBackToMeleeAttack(t *testing.T) {
	c := fighter()
	c.HP = 15
	goblin := adjacentGoblin()
	in := tier.Input{
		Input:           policy.Input{Character: c, Monsters: []*entity.Monster{goblin}, Tier: danger.Critical, Adjacent: 1},
		AdjacentMonster: goblin,
	}
	act, ok := tier.Dispatch(in)
	assert.True(t, ok)
	assert.Equal(t, action.KindAttack, act.Kind)
	assert.Equal(t, "goblin-1", act.MonsterID)
}

func TestDispatch_CriticalPrefersSurvivalConsumableOverMelee(t *testing.T) {
	c := fighter()
	c.HP = 15
	c.Inventory = []*entity.Item{
		{ID: "heal-potion", Template: &entity.ItemTemplate{Type: entity.ItemPotion, HealBase: 50, Tier: 4}},
	}
	goblin := adjacentGoblin()
	in := tier.Input{
		Input:           policy.Input{Character: c, Monsters: []*entity.Monster{goblin}, Tier: danger.Critical, Adjacent: 1, Immediate: 3},
		AdjacentMonster: goblin,
	}
	act, ok := tier.Dispatch(in)
	assert.True(t, ok)
	assert.Equal(t, action.KindUse, act.Kind)
	assert.Equal(t, "heal-potion", act.ItemID)
}

func TestDispatch_DangerMeleeDamageBeforeHealWhenHealthy(t *testing.T) {
	c := fighter()
	c.HP = 80 // > 50%
	c.ClassID = "mage"
	c.KnownSpells = []entity.SpellID{"fireball"}
	catalog := entity.SpellCatalog{"fireball": {ID: "fireball", School: entity.SpellDamage, ManaCost: 10, DamageDice: "6d6"}}
	goblin := adjacentGoblin()
	in := tier.Input{
		Input: policy.Input{
			Character: c, Monsters: []*entity.Monster{goblin}, SpellCatalog: catalog,
			Tier: danger.Danger, Adjacent: 1,
		},
		AdjacentMonster: goblin,
	}
	act, ok := tier.Dispatch(in)
	assert.True(t, ok)
	assert.Equal(t, "fireball", act.SpellID)
}

func TestDispatch_SafeEquipsUpgrade(t *testing.T) {
	c := fighter()
	c.Equipment = map[entity.EquipSlot]*entity.Item{
		entity.SlotMainHand: {Template: &entity.ItemTemplate{Type: entity.ItemWeapon, HasSlot: true, Slot: entity.SlotMainHand, Tier: 1}},
	}
	c.Inventory = []*entity.Item{
		{ID: "better-axe", Template: &entity.ItemTemplate{Type: entity.ItemWeapon, HasSlot: true, Slot: entity.SlotMainHand, Tier: 3}},
	}
	in := tier.Input{Input: policy.Input{Character: c, Tier: danger.Safe}}
	act, ok := tier.Dispatch(in)
	assert.True(t, ok)
	assert.Equal(t, action.KindEquip, act.Kind)
	assert.Equal(t, "better-axe", act.ItemID)
}

func TestDispatch_SafePicksUpItemUnderfootBeforeEquip(t *testing.T) {
	c := fighter()
	c.Equipment = map[entity.EquipSlot]*entity.Item{
		entity.SlotMainHand: {Template: &entity.ItemTemplate{Type: entity.ItemWeapon, HasSlot: true, Slot: entity.SlotMainHand, Tier: 1}},
	}
	c.Inventory = []*entity.Item{
		{ID: "better-axe", Template: &entity.ItemTemplate{Type: entity.ItemWeapon, HasSlot: true, Slot: entity.SlotMainHand, Tier: 3}},
	}
	ground := &entity.GroundItem{Item: &entity.Item{ID: "gold-pile"}, Position: c.Position}
	in := tier.Input{
		Input:          policy.Input{Character: c, Tier: danger.Safe, Local: 5},
		GroundItemHere: ground,
	}
	act, ok := tier.Dispatch(in)
	assert.True(t, ok)
	assert.Equal(t, action.KindPickup, act.Kind)
	assert.Equal(t, "gold-pile", act.ItemID)
}

func TestDispatch_CautionUsesPreCombatBuffForVictoryBoss(t *testing.T) {
	c := fighter()
	c.Inventory = []*entity.Item{
		{ID: "speed-potion", Template: &entity.ItemTemplate{Type: entity.ItemPotion, Buff: entity.BuffDescriptor{Type: entity.BuffSpeed}}},
	}
	boss := &entity.Monster{
		ID:       "morgoth",
		Template: &entity.MonsterTemplate{Attacks: []entity.Attack{{Method: entity.AttackMelee, Dice: "8d8"}}, Flags: map[entity.MonsterFlag]bool{entity.FlagVictoryBoss: true}},
		HP:       500, MaxHP: 500, Position: grid.Point{X: 9, Y: 9}, IsAwake: true,
	}
	in := tier.Input{
		Input: policy.Input{
			Character: c, Monsters: []*entity.Monster{boss}, Tier: danger.Caution, VictoryBossVisible: true,
			Capabilities: personality.Capabilities{Tactics: 2},
		},
	}
	act, ok := tier.Dispatch(in)
	assert.True(t, ok)
	assert.Equal(t, "speed-potion", act.ItemID)
}
