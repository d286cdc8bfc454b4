package tier

import (
	"github.com/deepburrow/borgcore/action"
	"github.com/deepburrow/borgcore/danger"
	"github.com/deepburrow/borgcore/entity"
	"github.com/deepburrow/borgcore/grid"
	"github.com/deepburrow/borgcore/policy"
	"github.com/deepburrow/borgcore/query"
)

// Input extends policy.Input with the situational facts the tier
// dispatcher's movement/attack/ability steps need, beyond what the
// consumable and spell policies already read.
type Input struct {
	policy.Input

	AdjacentMonster *entity.Monster // nearest living adjacent monster, nil if none
	NearestMonster  *entity.Monster // nearest living visible monster, nil if none
	NearestDistance int

	BowRange     int // host-owned equipped-weapon range (spec.md §9 OQ1 style black box)
	OptimalRange int

	GroundItemHere *entity.GroundItem // item at the character's current tile, nil if none

	ShapeshiftFormID string // non-empty: a druid beast form worth taking right now
	LightOrbSpellID  entity.SpellID
	HasteSpellID     entity.SpellID

	AOEActivationItemID string // wand/rod id, empty if none available

	FOVRadius int
	LOS       func(grid.Point) bool
}

// Dispatch routes on in.Tier and runs that tier's ordered chain,
// returning the first accepted action (spec.md §4.E).
func Dispatch(in Input) (action.Action, bool) {
	switch in.Tier {
	case danger.Critical:
		return critical(in)
	case danger.Danger:
		if in.ClassProfile.PrefersRanged {
			return dangerRanged(in)
		}
		return dangerMelee(in)
	case danger.Caution:
		return caution(in)
	default:
		return safe(in)
	}
}

func meleeAttack(in Input) (action.Action, bool) {
	if in.AdjacentMonster == nil {
		return action.Action{}, false
	}
	return action.Attack(in.AdjacentMonster.ID), true
}

func rangedAttack(in Input) (action.Action, bool) {
	if in.NearestMonster == nil || in.NearestDistance > in.BowRange {
		return action.Action{}, false
	}
	return action.RangedAttack(in.NearestMonster.ID), true
}

func shapeshift(in Input) (action.Action, bool) {
	if in.ShapeshiftFormID == "" || in.Character.ShapeshiftForm == in.ShapeshiftFormID {
		return action.Action{}, false
	}
	return action.Shapeshift(in.ShapeshiftFormID), true
}

func lightOrb(in Input) (action.Action, bool) {
	if in.LightOrbSpellID == "" || !query.HasCastableSpell(in.Character, in.LightOrbSpellID, in.Turn) {
		return action.Action{}, false
	}
	return action.Cast(string(in.LightOrbSpellID), ""), true
}

func hasteActivation(in Input) (action.Action, bool) {
	if in.HasteSpellID == "" || in.Character.HasStatus(entity.StatusHasted) {
		return action.Action{}, false
	}
	if !query.HasCastableSpell(in.Character, in.HasteSpellID, in.Turn) {
		return action.Action{}, false
	}
	return action.Cast(string(in.HasteSpellID), ""), true
}

func aoeActivation(in Input) (action.Action, bool) {
	if in.AOEActivationItemID == "" || in.Adjacent == 0 {
		return action.Action{}, false
	}
	return action.Activate(in.AOEActivationItemID, ""), true
}

func maintainSummons(in Input) (action.Action, bool) {
	return policy.SummonSpell(in.Input)
}

func equipUpgrade(in Input) (action.Action, bool) {
	item, ok := query.EquipmentUpgrade(in.Character)
	if !ok {
		return action.Action{}, false
	}
	return action.Equip(item.ID), true
}

// pickupUpkeepThreshold is the local-danger ceiling below which the
// SAFE chain will stop to pick up an item underfoot (spec.md §4.E).
const pickupUpkeepThreshold = 20

func pickupUnderfoot(in Input) (action.Action, bool) {
	if in.GroundItemHere == nil || in.Local >= pickupUpkeepThreshold {
		return action.Action{}, false
	}
	return action.Pickup(in.GroundItemHere.Item.ID), true
}

// sneakAttackCycle is the rogue chain step: a melee attack against an
// adjacent, unaware-or-freshly-engaged target carries an inherent
// sneak-attack bonus the host's combat resolution applies — this core
// only needs to keep attacking while that window is open.
func sneakAttackCycle(in Input) (action.Action, bool) {
	if in.Character.ClassID != "rogue" {
		return action.Action{}, false
	}
	return meleeAttack(in)
}

// fallbackEscape is the last-resort escape-spell attempt each tier
// chain ends on when nothing earlier in the chain applied.
func fallbackEscape(in Input) (action.Action, bool) {
	return policy.EscapeSpell(in.Input)
}

func critical(in Input) (action.Action, bool) {
	if act, ok := fallbackEscape(in); ok {
		return act, ok
	}
	if act, ok := policy.SurvivalConsumable(in.Input); ok {
		return act, ok
	}
	if act, ok := policy.HealSpell(in.Input); ok {
		return act, ok
	}
	if in.ClassProfile.PrefersRanged {
		if act, ok := rangedAttack(in); ok {
			return act, ok
		}
	}
	if act, ok := shapeshift(in); ok {
		return act, ok
	}
	return meleeAttack(in)
}

func dangerRanged(in Input) (action.Action, bool) {
	if in.NearestMonster != nil && in.NearestDistance < in.OptimalRange {
		if act, ok := policy.DimensionDoorKite(in.Input, in.FOVRadius, in.LOS); ok {
			return act, ok
		}
		if act, ok := fallbackEscape(in); ok {
			return act, ok
		}
	}
	if act, ok := policy.DebuffSpell(in.Input); ok {
		return act, ok
	}
	if act, ok := rangedAttack(in); ok {
		return act, ok
	}
	if act, ok := policy.DamageSpell(in.Input); ok {
		return act, ok
	}
	if act, ok := policy.HealSpell(in.Input); ok {
		return act, ok
	}
	if act, ok := policy.SurvivalConsumable(in.Input); ok {
		return act, ok
	}
	if act, ok := maintainSummons(in); ok {
		return act, ok
	}
	if act, ok := shapeshift(in); ok {
		return act, ok
	}
	if act, ok := meleeAttack(in); ok {
		return act, ok
	}
	return fallbackEscape(in)
}

// manaPotionThreshold is spec.md §4.E's melee-DANGER "MP < 15%" gate.
const manaPotionThreshold = 0.15

func dangerMelee(in Input) (action.Action, bool) {
	if in.Character.HPRatio() > 0.5 {
		if act, ok := policy.DamageSpell(in.Input); ok {
			return act, ok
		}
	}
	if act, ok := policy.HealSpell(in.Input); ok {
		return act, ok
	}
	if in.Character.HPRatio() <= 0.5 {
		if act, ok := policy.DamageSpell(in.Input); ok {
			return act, ok
		}
	}
	if in.Character.MPRatio() < manaPotionThreshold {
		if item, ok := query.FindManaPotion(in.Character); ok {
			return action.Use(item.ID), true
		}
	}
	if act, ok := policy.SurvivalConsumable(in.Input); ok {
		return act, ok
	}
	if act, ok := maintainSummons(in); ok {
		return act, ok
	}
	if act, ok := shapeshift(in); ok {
		return act, ok
	}
	if act, ok := sneakAttackCycle(in); ok {
		return act, ok
	}
	if act, ok := meleeAttack(in); ok {
		return act, ok
	}
	return fallbackEscape(in)
}

func caution(in Input) (action.Action, bool) {
	if act, ok := policy.PreCombatBuff(in.Input); ok {
		return act, ok
	}
	if act, ok := policy.DebuffSpell(in.Input); ok {
		return act, ok
	}
	if act, ok := policy.DamageSpell(in.Input); ok {
		return act, ok
	}
	if act, ok := shapeshift(in); ok {
		return act, ok
	}
	if in.Character.ClassID == "rogue" {
		if act, ok := sneakAttackCycle(in); ok {
			return act, ok
		}
	}
	if act, ok := meleeAttack(in); ok {
		return act, ok
	}
	if in.Character.HPRatio() < 0.7 {
		if act, ok := policy.HealSpell(in.Input); ok {
			return act, ok
		}
	}
	if act, ok := policy.DamageSpell(in.Input); ok {
		return act, ok
	}
	if act, ok := policy.DebuffSpell(in.Input); ok {
		return act, ok
	}
	return aoeActivation(in)
}

const outOfCombatHealPotionThreshold = 0.4
const outOfCombatHealThreshold = 0.6

func safe(in Input) (action.Action, bool) {
	if act, ok := maintainSummons(in); ok {
		return act, ok
	}
	if act, ok := lightOrb(in); ok {
		return act, ok
	}
	if act, ok := pickupUnderfoot(in); ok {
		return act, ok
	}
	if act, ok := equipUpgrade(in); ok {
		return act, ok
	}
	if in.Character.HPRatio() < outOfCombatHealThreshold {
		if act, ok := policy.HealSpell(in.Input); ok {
			return act, ok
		}
		if in.Character.HPRatio() < outOfCombatHealPotionThreshold {
			if item, ok := query.FindHealingPotion(in.Character, 1); ok {
				return action.Use(item.ID), true
			}
		}
	}
	if act, ok := shapeshift(in); ok {
		return act, ok
	}
	if act, ok := policy.PreCombatBuff(in.Input); ok {
		return act, ok
	}
	if act, ok := hasteActivation(in); ok {
		return act, ok
	}
	if act, ok := policy.DamageSpell(in.Input); ok {
		return act, ok
	}
	if act, ok := policy.DebuffSpell(in.Input); ok {
		return act, ok
	}
	if act, ok := rangedAttack(in); ok {
		return act, ok
	}
	return policy.UtilityConsumable(in.Input)
}
