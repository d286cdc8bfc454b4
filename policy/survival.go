package policy

import (
	"github.com/deepburrow/borgcore/action"
	"github.com/deepburrow/borgcore/danger"
	"github.com/deepburrow/borgcore/entity"
	"github.com/deepburrow/borgcore/query"
)

// cureStatusOrder is spec.md §4.D.1's fixed cure priority, with
// combat-gating applied by the caller (slowed/terrified only cured in
// combat, drained only cured out of combat).
var cureStatusOrder = []entity.StatusType{
	entity.StatusParalyzed,
	entity.StatusPoisoned,
	entity.StatusConfused,
	entity.StatusBlind,
	entity.StatusSlowed,
	entity.StatusTerrified,
	entity.StatusDrained,
}

func cureGated(status entity.StatusType, inCombat bool) bool {
	switch status {
	case entity.StatusSlowed, entity.StatusTerrified:
		return inCombat
	case entity.StatusDrained:
		return !inCombat
	default:
		return true
	}
}

// minHealTier selects the minimum adequate healing tier, per spec.md
// §4.D.1 step 4.
func minHealTier(in Input) int {
	if in.VictoryBossVisible {
		return 4
	}
	if in.Character.HPRatio() < 0.25 {
		return 2
	}
	return 1
}

// SurvivalConsumable implements spec.md §4.D.1: status cures, CRITICAL
// escape-over-heal, healing, Town Portal, general escape, twitch
// deadlock-breaking, and the out-of-combat fallback heal.
func SurvivalConsumable(in Input) (action.Action, bool) {
	inCombat := in.InCombat()
	for _, status := range cureStatusOrder {
		if !in.Character.HasStatus(status) || !cureGated(status, inCombat) {
			continue
		}
		if item, ok := query.FindCureItem(in.Character, status); ok {
			return action.Use(item.ID), true
		}
	}

	if in.Tier == danger.Critical && in.ShouldEscapeOverHeal() {
		if item, ok := query.FindFullTeleportScroll(in.Character); ok {
			return action.Use(item.ID), true
		}
		if item, ok := query.FindPhaseDoorScroll(in.Character); ok {
			return action.Use(item.ID), true
		}
		if item, ok := query.FindEscapeScroll(in.Character); ok {
			return action.Use(item.ID), true
		}
	}

	wantsHeal := in.Character.HPRatio() < 0.5 || (in.Immediate > 0 && in.Character.HPRatio() < 0.7)
	if wantsHeal && !(in.ClassProfile.HealsPriority && in.Character.MPRatio() >= 0.3) {
		if item, ok := query.FindHealingPotion(in.Character, minHealTier(in)); ok {
			return action.Use(item.ID), true
		}
	}

	if in.Adjacent == 0 && in.TownCapability() >= 1 && townPortalIndicated(in.Character) {
		if item, ok := query.FindTownPortalScroll(in.Character); ok {
			return action.Use(item.ID), true
		}
	}

	if in.ShouldEscape() {
		if item, ok := query.FindFullTeleportScroll(in.Character); ok {
			return action.Use(item.ID), true
		}
		if item, ok := query.FindPhaseDoorScroll(in.Character); ok {
			if PhaseDoorSafe(in) {
				return action.Use(item.ID), true
			}
		}
		if in.Adjacent == 0 {
			if item, ok := query.FindTownPortalScroll(in.Character); ok {
				return action.Use(item.ID), true
			}
		}
		if in.Adjacent == 0 && !in.Character.HasStatus(entity.StatusHasted) {
			if item, ok := query.FindSpeedPotion(in.Character); ok {
				return action.Use(item.ID), true
			}
		}
	}

	if in.TwitchCounter > 30 {
		if item, ok := query.FindEscapeScroll(in.Character); ok {
			return action.Use(item.ID), true
		}
	}

	if !inCombat && in.Character.HPRatio() < 0.4 {
		if item, ok := query.FindHealingPotion(in.Character, 1); ok {
			return action.Use(item.ID), true
		}
	}

	return action.Action{}, false
}

// PhaseDoorSafe runs the §4.D.1.a safety test against the current
// danger grid and level.
func PhaseDoorSafe(in Input) bool {
	return danger.PhaseDoorSafetyTest(in.Level, in.DangerGrid, in.Character.Position, in.Occupied, in.AvoidanceThreshold())
}

// townPortalIndicated reports whether the character is low enough on
// self-sufficiency supplies that a Town Portal resupply run is
// warranted right now.
func townPortalIndicated(c *entity.Character) bool {
	return query.CountHealingPotions(c) == 0 && query.CountEscapeScrolls(c) == 0
}
