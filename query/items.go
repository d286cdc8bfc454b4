package query

import "github.com/deepburrow/borgcore/entity"

// ConsumableKind categorizes an item by structured template fields.
type ConsumableKind int

// Consumable kind constants.
const (
	KindNone ConsumableKind = iota
	KindHealing
	KindEscape
	KindTownPortal
	KindBuff
	KindMana
	KindUtility
)

// Classify returns the consumable category of item, derived from
// structured ItemTemplate fields (spec.md §4.C).
func Classify(item *entity.Item) ConsumableKind {
	if item == nil || item.Template == nil {
		return KindNone
	}
	t := item.Template
	if t.HealBase > 0 || t.HealPerLevel > 0 {
		return KindHealing
	}
	if t.RestoresMana {
		return KindMana
	}
	switch t.ScrollKind {
	case entity.ScrollPhaseDoor, entity.ScrollTeleportation, entity.ScrollTeleportLevel:
		return KindEscape
	case entity.ScrollTownPortal:
		return KindTownPortal
	case entity.ScrollMagicMapping, entity.ScrollDetectStairs, entity.ScrollEnchantWeapon, entity.ScrollEnchantArmor:
		return KindUtility
	}
	if t.Buff.Type != entity.BuffNone {
		return KindBuff
	}
	return KindNone
}

// findFirst returns the first inventory item satisfying pred, in
// insertion order.
func findFirst(c *entity.Character, pred func(*entity.Item) bool) (*entity.Item, bool) {
	if c == nil {
		return nil, false
	}
	for _, item := range c.Inventory {
		if pred(item) {
			return item, true
		}
	}
	return nil, false
}

// countMatching counts inventory items satisfying pred.
func countMatching(c *entity.Character, pred func(*entity.Item) bool) int {
	if c == nil {
		return 0
	}
	n := 0
	for _, item := range c.Inventory {
		if pred(item) {
			n++
		}
	}
	return n
}

// FindHealingPotion returns the first potion in inventory order whose
// template can restore HP, with tier at least minTier, or false if none
// exists.
func FindHealingPotion(c *entity.Character, minTier int) (*entity.Item, bool) {
	return findFirst(c, func(i *entity.Item) bool {
		return i.IsHealingPotion() && i.Template.Tier >= minTier
	})
}

// FindSpeedPotion returns the first potion granting a speed buff.
func FindSpeedPotion(c *entity.Character) (*entity.Item, bool) {
	return findFirst(c, func(i *entity.Item) bool {
		return i.Template != nil && i.Template.Type == entity.ItemPotion && i.Template.Buff.Type == entity.BuffSpeed
	})
}

// FindBerserkOrHeroismPotion returns the first potion granting the
// heroism/berserk buff.
func FindBerserkOrHeroismPotion(c *entity.Character) (*entity.Item, bool) {
	return findFirst(c, func(i *entity.Item) bool {
		return i.Template != nil && i.Template.Type == entity.ItemPotion && i.Template.Buff.Type == entity.BuffHeroism
	})
}

// FindManaPotion returns the first mana-restoring potion.
func FindManaPotion(c *entity.Character) (*entity.Item, bool) {
	return findFirst(c, func(i *entity.Item) bool {
		return i.Template != nil && i.Template.Type == entity.ItemPotion && i.Template.RestoresMana
	})
}

// FindResistancePotion returns the first potion granting resistance to
// element, where the resistance is not already active.
func FindResistancePotion(c *entity.Character, element string) (*entity.Item, bool) {
	if c != nil && c.Resistances[element] {
		return nil, false
	}
	return findFirst(c, func(i *entity.Item) bool {
		if i.Template == nil || i.Template.Type != entity.ItemPotion {
			return false
		}
		for _, g := range i.Template.GrantsResist {
			if g == element {
				return true
			}
		}
		return false
	})
}

// FindFullTeleportScroll returns the first scroll matching the
// "teleportation" whitelist entry (and not phase door / teleport
// level — those are distinct ScrollKinds, so a plain switch already
// excludes them; spec.md §4.C states the exclusion explicitly because
// the original matches substrings, this module matches the resolved
// enum instead).
func FindFullTeleportScroll(c *entity.Character) (*entity.Item, bool) {
	return findFirst(c, func(i *entity.Item) bool {
		return i.Template != nil && i.Template.ScrollKind == entity.ScrollTeleportation
	})
}

// FindPhaseDoorScroll returns the first Phase Door scroll.
func FindPhaseDoorScroll(c *entity.Character) (*entity.Item, bool) {
	return findFirst(c, func(i *entity.Item) bool {
		return i.Template != nil && i.Template.ScrollKind == entity.ScrollPhaseDoor
	})
}

// FindTeleportLevelScroll returns the first Teleport Level scroll.
func FindTeleportLevelScroll(c *entity.Character) (*entity.Item, bool) {
	return findFirst(c, func(i *entity.Item) bool {
		return i.Template != nil && i.Template.ScrollKind == entity.ScrollTeleportLevel
	})
}

// FindTownPortalScroll returns the first Town Portal scroll.
func FindTownPortalScroll(c *entity.Character) (*entity.Item, bool) {
	return findFirst(c, func(i *entity.Item) bool {
		return i.Template != nil && i.Template.ScrollKind == entity.ScrollTownPortal
	})
}

// FindEscapeScroll returns the first scroll classified KindEscape,
// regardless of exact kind (full teleport, phase door, or teleport
// level) — used for the "any escape scroll" fallback in spec.md §4.D.1.
func FindEscapeScroll(c *entity.Character) (*entity.Item, bool) {
	return findFirst(c, func(i *entity.Item) bool { return Classify(i) == KindEscape })
}

// FindBlessingScroll returns the first Blessing scroll.
func FindBlessingScroll(c *entity.Character) (*entity.Item, bool) {
	return findFirst(c, func(i *entity.Item) bool {
		return i.Template != nil && i.Template.ScrollKind == entity.ScrollBlessing
	})
}

// FindProtectionScroll returns the first Protection from Evil scroll.
func FindProtectionScroll(c *entity.Character) (*entity.Item, bool) {
	return findFirst(c, func(i *entity.Item) bool {
		return i.Template != nil && i.Template.ScrollKind == entity.ScrollProtectionFromEvil
	})
}

// FindDetectStairsScroll returns the first Detect Stairs scroll.
func FindDetectStairsScroll(c *entity.Character) (*entity.Item, bool) {
	return findFirst(c, func(i *entity.Item) bool {
		return i.Template != nil && i.Template.ScrollKind == entity.ScrollDetectStairs
	})
}

// FindMagicMappingScroll returns the first Magic Mapping scroll.
func FindMagicMappingScroll(c *entity.Character) (*entity.Item, bool) {
	return findFirst(c, func(i *entity.Item) bool {
		return i.Template != nil && i.Template.ScrollKind == entity.ScrollMagicMapping
	})
}

// FindEnchantWeaponScroll returns the first Enchant Weapon scroll.
func FindEnchantWeaponScroll(c *entity.Character) (*entity.Item, bool) {
	return findFirst(c, func(i *entity.Item) bool {
		return i.Template != nil && i.Template.ScrollKind == entity.ScrollEnchantWeapon
	})
}

// FindEnchantArmorScroll returns the first Enchant Armor scroll.
func FindEnchantArmorScroll(c *entity.Character) (*entity.Item, bool) {
	return findFirst(c, func(i *entity.Item) bool {
		return i.Template != nil && i.Template.ScrollKind == entity.ScrollEnchantArmor
	})
}

// FindCureItem returns the first item in inventory that cures status,
// including potions with CuresAll set, or (for poison specifically) a
// potion that grants poison resistance.
func FindCureItem(c *entity.Character, status entity.StatusType) (*entity.Item, bool) {
	return findFirst(c, func(i *entity.Item) bool {
		if i.Template == nil {
			return false
		}
		if i.Template.CuresAll {
			return true
		}
		if i.Template.Cures != nil && i.Template.Cures[statusKey(status)] {
			return true
		}
		if status == entity.StatusPoisoned {
			for _, g := range i.Template.GrantsResist {
				if g == "poison" {
					return true
				}
			}
		}
		return false
	})
}

func statusKey(s entity.StatusType) string {
	switch s {
	case entity.StatusParalyzed:
		return "paralyzed"
	case entity.StatusPoisoned:
		return "poisoned"
	case entity.StatusConfused:
		return "confused"
	case entity.StatusBlind:
		return "blind"
	case entity.StatusSlowed:
		return "slowed"
	case entity.StatusTerrified:
		return "terrified"
	case entity.StatusDrained:
		return "drained"
	default:
		return ""
	}
}

// CountHealingPotions counts inventory healing potions.
func CountHealingPotions(c *entity.Character) int {
	return countMatching(c, func(i *entity.Item) bool { return i.IsHealingPotion() })
}

// CountEscapeScrolls counts inventory escape scrolls (any kind).
func CountEscapeScrolls(c *entity.Character) int {
	return countMatching(c, func(i *entity.Item) bool { return Classify(i) == KindEscape })
}

// CountTownPortals counts inventory Town Portal scrolls.
func CountTownPortals(c *entity.Character) int {
	return countMatching(c, func(i *entity.Item) bool {
		return i.Template != nil && i.Template.ScrollKind == entity.ScrollTownPortal
	})
}

// CountBuffPotions counts inventory buff potions (excluding mana/heal).
func CountBuffPotions(c *entity.Character) int {
	return countMatching(c, func(i *entity.Item) bool { return Classify(i) == KindBuff })
}

// CountManaPotions counts inventory mana-restoring potions.
func CountManaPotions(c *entity.Character) int {
	return countMatching(c, func(i *entity.Item) bool {
		return i.Template != nil && i.Template.Type == entity.ItemPotion && i.Template.RestoresMana
	})
}

// EquipmentUpgrade returns the first inventory item that is strictly
// better than what's currently equipped in its slot (higher tier),
// or false if nothing in inventory beats the current equipment.
func EquipmentUpgrade(c *entity.Character) (*entity.Item, bool) {
	return findFirst(c, func(i *entity.Item) bool {
		if i.Template == nil || !i.Template.HasSlot {
			return false
		}
		current, equipped := c.Equipment[i.Template.Slot]
		if !equipped || current == nil || current.Template == nil {
			return true
		}
		return i.Template.Tier > current.Template.Tier
	})
}
