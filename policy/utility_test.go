package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/deepburrow/borgcore/entity"
	"github.com/deepburrow/borgcore/personality"
	"github.com/deepburrow/borgcore/policy"
)

func TestUtilityConsumable_SkippedInCombat(t *testing.T) {
	c := &entity.Character{}
	in := policy.Input{Character: c, Adjacent: 1}
	_, ok := policy.UtilityConsumable(in)
	assert.False(t, ok)
}

func TestUtilityConsumable_EnchantsUpgradeableWeapon(t *testing.T) {
	c := &entity.Character{
		Equipment: map[entity.EquipSlot]*entity.Item{
			entity.SlotMainHand: {Template: &entity.ItemTemplate{Type: entity.ItemWeapon, HasSlot: true, Slot: entity.SlotMainHand, Tier: 1}},
		},
		Inventory: []*entity.Item{
			{ID: "better-sword", Template: &entity.ItemTemplate{Type: entity.ItemWeapon, HasSlot: true, Slot: entity.SlotMainHand, Tier: 2}},
			{ID: "enchant-weapon-scroll", Template: &entity.ItemTemplate{Type: entity.ItemScroll, ScrollKind: entity.ScrollEnchantWeapon}},
		},
	}
	in := policy.Input{Character: c, ExplorationRatio: 1.0}
	act, ok := policy.UtilityConsumable(in)
	assert.True(t, ok)
	assert.Equal(t, "enchant-weapon-scroll", act.ItemID)
}

func TestUtilityConsumable_ReadsMagicMappingWhenUnexplored(t *testing.T) {
	c := &entity.Character{
		Inventory: []*entity.Item{
			{ID: "mapping-scroll", Template: &entity.ItemTemplate{Type: entity.ItemScroll, ScrollKind: entity.ScrollMagicMapping}},
		},
	}
	in := policy.Input{Character: c, ExplorationRatio: 0.1}
	act, ok := policy.UtilityConsumable(in)
	assert.True(t, ok)
	assert.Equal(t, "mapping-scroll", act.ItemID)
}

func TestUtilityConsumable_SpeedrunnerDrinksSpeedWhenRoomy(t *testing.T) {
	c := &entity.Character{
		Inventory: []*entity.Item{
			{ID: "speed-potion", Template: &entity.ItemTemplate{Type: entity.ItemPotion, Buff: entity.BuffDescriptor{Type: entity.BuffSpeed}}},
		},
	}
	in := policy.Input{Character: c, ExplorationRatio: 1.0, Preset: personality.PresetSpeedrunner}
	act, ok := policy.UtilityConsumable(in)
	assert.True(t, ok)
	assert.Equal(t, "speed-potion", act.ItemID)
}

func TestUtilityConsumable_NoneWhenNothingApplies(t *testing.T) {
	c := &entity.Character{}
	in := policy.Input{Character: c, ExplorationRatio: 1.0}
	_, ok := policy.UtilityConsumable(in)
	assert.False(t, ok)
}
