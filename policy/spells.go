package policy

import (
	"github.com/deepburrow/borgcore/action"
	"github.com/deepburrow/borgcore/entity"
	"github.com/deepburrow/borgcore/grid"
	"github.com/deepburrow/borgcore/query"
)

// woundThreshold is spec.md §4.D.6's "wound < 30 HP" heal-sizing gate.
const woundThreshold = 30

// HealSpell implements spec.md §4.D.6's Heal policy.
func HealSpell(in Input) (action.Action, bool) {
	wound := in.Character.MaxHP - in.Character.HP
	hpThreshold := 0.5
	if in.ClassProfile.HealsPriority {
		hpThreshold = 0.65
	}
	if in.Character.HPRatio() >= hpThreshold && in.Local < 80 {
		return action.Action{}, false
	}

	preferSmallest := wound < woundThreshold
	minHeal := 0.0
	if in.Local > 150 {
		minHeal = float64(in.Local) / 3
	}
	t, ok := query.BestHealSpell(in.Character, in.SpellCatalog, in.Turn, minHeal, preferSmallest)
	if !ok {
		return action.Action{}, false
	}
	return action.Cast(string(t.ID), ""), true
}

// meleeOutdamageFactor is how much a spell must outdamage melee to be
// worth casting at an adjacent target (spec.md §4.D.6).
const meleeOutdamageFactor = 1.5

// DamageSpell implements spec.md §4.D.6's Damage policy against the
// nearest eligible monster target.
func DamageSpell(in Input) (action.Action, bool) {
	targets := livingVisibleMonsters(in)
	if len(targets) == 0 {
		return action.Action{}, false
	}

	multiTarget := countWithinAOERange(in, targets) >= 2
	hurt := (in.ClassProfile.PrefersRanged && in.Character.HPRatio() < 0.8) ||
		(!in.ClassProfile.PrefersRanged && in.Character.HPRatio() < 0.7)

	t, ok := query.BestDamageSpell(in.Character, in.SpellCatalog, in.Turn, multiTarget, hurt)
	if !ok {
		t, ok = query.BestDamageSpell(in.Character, in.SpellCatalog, in.Turn, false, false)
		if !ok {
			return action.Action{}, false
		}
	}

	target := targets[0]
	if isAdjacent(in, target) {
		meleeDice := estimateMeleeDamage(in.Character)
		spellAvg := dicePoolAveragePublic(t.DamageDice)
		if spellAvg < meleeDice*meleeOutdamageFactor {
			return action.Action{}, false
		}
	}
	return action.Cast(string(t.ID), target.ID), true
}

// estimateMeleeDamage is a conservative flat stand-in for the host-
// owned melee damage formula (spec.md §9 Open Question 1) — enough to
// compare against a spell's average for the "substantially outdamage
// melee" gate without depending on host internals.
func estimateMeleeDamage(c *entity.Character) float64 {
	return float64(c.Stats.STR) / 2
}

func dicePoolAveragePublic(notation string) float64 {
	avg, _ := query.DiceAverage(notation)
	return avg
}

func countWithinAOERange(in Input, targets []*entity.Monster) int {
	if len(targets) == 0 {
		return 0
	}
	const aoeCluster = 2
	n := 0
	for _, m := range targets {
		if grid.ChebyshevDistance(targets[0].Position, m.Position) <= aoeCluster {
			n++
		}
	}
	return n
}

func livingVisibleMonsters(in Input) []*entity.Monster {
	var out []*entity.Monster
	for _, m := range in.Monsters {
		if m != nil && m.HP > 0 && m.IsAwake {
			out = append(out, m)
		}
	}
	return out
}

// fastSpeedThreshold and slowGraceTurns are spec.md §4.D.6's Debuff
// policy constants.
const (
	fastSpeedThreshold = 110
	slowGraceTurns     = 4
	smartDebuffKillHits = 4
	smartDebuffManaReserve = 20
)

// DebuffSpell implements spec.md §4.D.6's Debuff policy, including the
// smart_debuff refinement gated by tactics ≥ 3.
func DebuffSpell(in Input) (action.Action, bool) {
	targets := livingVisibleMonsters(in)
	if len(targets) == 0 {
		return action.Action{}, false
	}

	var best *entity.Monster
	bestIsFast := false
	var tankiest *entity.Monster
	for _, m := range targets {
		if m.SlowTurnsRemaining() >= slowGraceTurns {
			continue
		}
		fast := m.EffectiveSpeed() > fastSpeedThreshold || m.IsHasted()
		if fast && (best == nil || !bestIsFast) {
			best = m
			bestIsFast = true
		}
		if tankiest == nil || m.MaxHP > tankiest.MaxHP {
			tankiest = m
		}
	}
	if best == nil {
		best = tankiest
	}
	if best == nil {
		return action.Action{}, false
	}

	smartDebuff := in.Capabilities.EffectiveTactics(in.Toggles) >= 3
	if smartDebuff {
		bestSpellDmg := 0.0
		if t, ok := query.BestDamageSpell(in.Character, in.SpellCatalog, in.Turn, false, false); ok {
			bestSpellDmg = dicePoolAveragePublic(t.DamageDice)
		}
		killHits := estimateKillHits(best, in.Character)
		if killHits > smartDebuffKillHits {
			return action.Action{}, false
		}
		if float64(best.MaxHP) <= 2*bestSpellDmg {
			return action.Action{}, false
		}
		if in.Character.MP < smartDebuffManaReserve {
			return action.Action{}, false
		}
	}

	candidates := query.CastableSpellsOfSchool(in.Character, in.SpellCatalog, entity.SpellDebuff, in.Turn)
	if len(candidates) == 0 {
		return action.Action{}, false
	}
	return action.Cast(string(candidates[0].ID), best.ID), true
}

func estimateKillHits(m *entity.Monster, c *entity.Character) int {
	dmg := estimateMeleeDamage(c)
	if dmg <= 0 {
		return 99
	}
	hits := float64(m.HP) / dmg
	return int(hits) + 1
}

// EscapeSpell implements spec.md §4.D.6's Escape spell policy.
func EscapeSpell(in Input) (action.Action, bool) {
	trigger := (in.Character.HPRatio() < 0.15 && in.Adjacent > 0) ||
		in.Adjacent >= 3 ||
		(in.Character.HPRatio() < 0.3 && in.Local > 150)
	if !trigger {
		return action.Action{}, false
	}

	preferFull := in.Adjacent >= 3 || in.Character.HPRatio() < 0.15
	candidates := query.CastableSpellsOfSchool(in.Character, in.SpellCatalog, entity.SpellEscape, in.Turn)
	var full, phase *entity.SpellTemplate
	for _, t := range candidates {
		switch t.EscapeKind {
		case entity.ScrollTeleportation:
			full = t
		case entity.ScrollPhaseDoor:
			phase = t
		}
	}
	if preferFull && full != nil {
		return action.Cast(string(full.ID), ""), true
	}
	if phase != nil {
		return action.Cast(string(phase.ID), ""), true
	}
	if full != nil {
		return action.Cast(string(full.ID), ""), true
	}
	return action.Action{}, false
}

// summonLimits is spec.md §4.D.6's per-class permanent-pet cap.
var summonLimits = map[string]map[string]int{
	"ranger":      {"wolf": 1},
	"necromancer": {"skeleton": 2},
}

// SummonSpell implements spec.md §4.D.6's Summon policy.
func SummonSpell(in Input) (action.Action, bool) {
	limits, ok := summonLimits[in.Character.ClassID]
	if !ok {
		return action.Action{}, false
	}
	candidates := query.CastableSpellsOfSchool(in.Character, in.SpellCatalog, entity.SpellSummon, in.Turn)
	for _, t := range candidates {
		limit, ok := limits[t.SummonKind]
		if !ok {
			continue
		}
		current := in.PermanentPets[t.SummonKind]
		if current < limit {
			return action.Cast(string(t.ID), ""), true
		}
	}
	return action.Action{}, false
}

// ShadowStep implements spec.md §4.D.6's rogue-only Shadow Step policy.
func ShadowStep(in Input) (action.Action, bool) {
	if in.Character.ClassID != "rogue" {
		return action.Action{}, false
	}
	if in.Character.HPRatio() < 0.4 || in.HasSneakAttackBuff {
		return action.Action{}, false
	}
	candidates := query.CastableSpellsOfSchool(in.Character, in.SpellCatalog, entity.SpellShadowStep, in.Turn)
	if len(candidates) == 0 {
		return action.Action{}, false
	}
	var best *entity.Monster
	bestThreat := -1.0
	for _, m := range livingVisibleMonsters(in) {
		if isAdjacent(in, m) {
			continue
		}
		priority := m.Template != nil && (m.Template.IsBoss() || m.Template.IsUnique())
		threat := estimateMeleeDamage(in.Character)
		if m.Template != nil {
			threat = float64(len(m.Template.Attacks))
		}
		if priority {
			threat += 1000
		}
		if threat > bestThreat {
			bestThreat = threat
			best = m
		}
	}
	if best == nil {
		return action.Action{}, false
	}
	return action.Cast(string(candidates[0].ID), best.ID), true
}

// dimensionDoorKiteRange is spec.md §4.D.6's new-FOV casting-range
// window [3,5] after a dimension-door kite.
var dimensionDoorKiteRange = [2]int{3, 5}

// DimensionDoorKite implements spec.md §4.D.6's caster kite policy.
// fovRadius bounds candidate destinations; los reports whether a
// candidate point has line of sight from the agent's current cell.
func DimensionDoorKite(in Input, fovRadius int, los func(grid.Point) bool) (action.Action, bool) {
	if in.Capabilities.EffectiveKiting(in.Toggles) < 3 {
		return action.Action{}, false
	}
	threats := livingVisibleMonsters(in)
	var nearest *entity.Monster
	nearestDist := fovRadius + 1
	for _, m := range threats {
		d := grid.ChebyshevDistance(in.Character.Position, m.Position)
		if d <= 2 && d < nearestDist {
			nearest = m
			nearestDist = d
		}
	}
	if nearest == nil {
		return action.Action{}, false
	}
	if _, ok := query.BestDamageSpell(in.Character, in.SpellCatalog, in.Turn, false, false); !ok {
		return action.Action{}, false
	}

	candidates := query.CastableSpellsOfSchool(in.Character, in.SpellCatalog, entity.SpellDimensionDoor, in.Turn)
	if len(candidates) == 0 {
		return action.Action{}, false
	}

	away := grid.Point{
		X: in.Character.Position.X - (nearest.Position.X - in.Character.Position.X),
		Y: in.Character.Position.Y - (nearest.Position.Y - in.Character.Position.Y),
	}

	var best grid.Point
	bestScore := -1.0
	found := false
	for dy := -fovRadius; dy <= fovRadius; dy++ {
		for dx := -fovRadius; dx <= fovRadius; dx++ {
			p := grid.Point{X: in.Character.Position.X + dx, Y: in.Character.Position.Y + dy}
			if grid.ChebyshevDistance(in.Character.Position, p) > fovRadius {
				continue
			}
			if grid.ChebyshevDistance(away, p) > fovRadius/2+1 {
				continue
			}
			if !in.Level.IsPassable(p) || in.Occupied[p] {
				continue
			}
			if !los(p) {
				continue
			}
			newDist := grid.ChebyshevDistance(p, nearest.Position)
			score := float64(newDist)
			if newDist >= dimensionDoorKiteRange[0] && newDist <= dimensionDoorKiteRange[1] {
				score += 10
			}
			if score > bestScore {
				bestScore = score
				best = p
				found = true
			}
		}
	}
	if !found {
		return action.Action{}, false
	}
	return action.Cast(string(candidates[0].ID), best.Key()), true
}
