package policy

import (
	"github.com/deepburrow/borgcore/action"
	"github.com/deepburrow/borgcore/entity"
	"github.com/deepburrow/borgcore/personality"
	"github.com/deepburrow/borgcore/query"
)

// utilityDangerCeiling is spec.md §4.D.4's "local danger ≤ 20" gate.
const utilityDangerCeiling = 20

// enchantCeiling is spec.md §4.D.4's "enchantment < 5" gate.
const enchantCeiling = 5

// explorationMappingThreshold is spec.md §4.D.4's "exploration < 30%"
// gate for Magic Mapping.
const explorationMappingThreshold = 0.30

// UtilityConsumable implements spec.md §4.D.4.
func UtilityConsumable(in Input) (action.Action, bool) {
	if in.InCombat() || in.Local > utilityDangerCeiling {
		return action.Action{}, false
	}

	if item, ok := query.EquipmentUpgrade(in.Character); ok && item.Enchantment < enchantCeiling {
		if enchantScroll, ok := enchantScrollFor(in.Character, item); ok {
			return action.Use(enchantScroll.ID), true
		}
	}

	if in.ExplorationRatio < explorationMappingThreshold {
		if item, ok := query.FindMagicMappingScroll(in.Character); ok {
			return action.Use(item.ID), true
		}
	}

	if in.Preset == personality.PresetSpeedrunner {
		if item, ok := query.FindSpeedPotion(in.Character); ok && !in.Character.HasStatus(entity.StatusHasted) {
			return action.Use(item.ID), true
		}
	}

	return action.Action{}, false
}

// enchantScrollFor picks the Enchant Weapon scroll for a weapon/bow/
// staff upgrade target, or Enchant Armor for anything else.
func enchantScrollFor(c *entity.Character, item *entity.Item) (*entity.Item, bool) {
	if item.Template == nil {
		return nil, false
	}
	switch item.Template.Type {
	case entity.ItemWeapon, entity.ItemBow, entity.ItemStaff:
		return query.FindEnchantWeaponScroll(c)
	default:
		return query.FindEnchantArmorScroll(c)
	}
}

