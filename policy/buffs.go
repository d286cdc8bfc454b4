package policy

import (
	"github.com/deepburrow/borgcore/action"
	"github.com/deepburrow/borgcore/danger"
	"github.com/deepburrow/borgcore/entity"
	"github.com/deepburrow/borgcore/grid"
	"github.com/deepburrow/borgcore/query"
)

// elementalEffects is the set of Attack.EffectType values treated as an
// elemental attack a Resistance potion can counter.
var elementalEffects = map[string]bool{
	"fire": true, "cold": true, "lightning": true, "acid": true, "poison": true,
}

// elementalAttackElements returns the distinct elemental effect types
// among m's attacks.
func elementalAttackElements(m *entity.Monster) []string {
	if m.Template == nil {
		return nil
	}
	seen := map[string]bool{}
	var out []string
	for _, a := range m.Template.Attacks {
		if elementalEffects[a.EffectType] && !seen[a.EffectType] {
			seen[a.EffectType] = true
			out = append(out, a.EffectType)
		}
	}
	return out
}

// highThreatThreshold is spec.md §4.D.2's "a monster whose computed
// threat ≥ 100" pre-combat buff trigger.
const highThreatThreshold = 100

func anyHighThreatOrBossVisible(in Input) bool {
	if in.VictoryBossVisible {
		return true
	}
	for _, m := range in.Monsters {
		if m == nil || m.HP <= 0 {
			continue
		}
		if m.Template != nil && (m.Template.IsBoss() || m.Template.IsUnique()) {
			return true
		}
		if danger.ThreatScore(m, in.Character.ArmorReduction) >= highThreatThreshold {
			return true
		}
	}
	return false
}

// PreCombatBuff implements spec.md §4.D.2.
func PreCombatBuff(in Input) (action.Action, bool) {
	if in.Capabilities.EffectiveTactics(in.Toggles) < 2 {
		return action.Action{}, false
	}
	if len(in.Monsters) == 0 || in.Adjacent > 0 {
		return action.Action{}, false
	}
	if !anyHighThreatOrBossVisible(in) {
		return action.Action{}, false
	}

	if in.VictoryBossVisible {
		if item, ok := query.FindSpeedPotion(in.Character); ok && !in.Character.HasStatus(entity.StatusHasted) {
			return action.Use(item.ID), true
		}
		if item, ok := query.FindBerserkOrHeroismPotion(in.Character); ok {
			return action.Use(item.ID), true
		}
		if item, ok := query.FindBlessingScroll(in.Character); ok {
			return action.Use(item.ID), true
		}
		if item, ok := query.FindProtectionScroll(in.Character); ok {
			return action.Use(item.ID), true
		}
		return action.Action{}, false
	}

	if (in.ClassProfile.PrefersRanged) && !in.Character.HasStatus(entity.StatusHasted) {
		if item, ok := query.FindSpeedPotion(in.Character); ok {
			return action.Use(item.ID), true
		}
	}
	if item, ok := query.FindBlessingScroll(in.Character); ok {
		return action.Use(item.ID), true
	}
	if in.Character.Depth >= 15 {
		if item, ok := query.FindProtectionScroll(in.Character); ok {
			return action.Use(item.ID), true
		}
	}
	return action.Action{}, false
}

// CombatBuff implements spec.md §4.D.3.
func CombatBuff(in Input) (action.Action, bool) {
	if in.Capabilities.EffectiveTactics(in.Toggles) < 2 {
		return action.Action{}, false
	}

	if in.VictoryBossVisible {
		if item, ok := query.FindSpeedPotion(in.Character); ok && !in.Character.HasStatus(entity.StatusHasted) {
			return action.Use(item.ID), true
		}
		if item, ok := query.FindBerserkOrHeroismPotion(in.Character); ok {
			return action.Use(item.ID), true
		}
	}

	if in.Local > 50 {
		if item, ok := query.FindBerserkOrHeroismPotion(in.Character); ok {
			return action.Use(item.ID), true
		}
	}

	for _, m := range in.Monsters {
		if m == nil || m.HP <= 0 || !m.IsAwake {
			continue
		}
		if !isAdjacent(in, m) {
			continue
		}
		for _, element := range elementalAttackElements(m) {
			if item, ok := query.FindResistancePotion(in.Character, element); ok {
				return action.Use(item.ID), true
			}
		}
	}

	return action.Action{}, false
}

func isAdjacent(in Input, m *entity.Monster) bool {
	return grid.ChebyshevDistance(in.Character.Position, m.Position) <= 1
}
