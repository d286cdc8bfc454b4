package query

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/deepburrow/borgcore/entity"
)

// golemRaceID is the one race that can cast nothing, per spec.md §4.D.6
// ("Spell castability is filtered by race (golems can cast nothing)").
const golemRaceID = "golem"

// dicePoolAverage returns a dice notation string's expected value, or
// 0 if it fails to parse.
func dicePoolAverage(notation string) float64 {
	pool, err := dice.ParseNotation(notation)
	if err != nil || pool == nil {
		return 0
	}
	return pool.Average()
}

// DiceAverage is the exported form of dicePoolAverage, used by policy
// functions that compare a spell's dice average against an estimated
// melee damage.
func DiceAverage(notation string) (float64, bool) {
	pool, err := dice.ParseNotation(notation)
	if err != nil || pool == nil {
		return 0, false
	}
	return pool.Average(), true
}

// CastableSpells returns the subset of a character's known spells that
// are off cooldown at turn and not filtered out by race.
func CastableSpells(c *entity.Character, turn uint64) []entity.SpellID {
	if c == nil || c.RaceID == golemRaceID {
		return nil
	}
	out := make([]entity.SpellID, 0, len(c.KnownSpells))
	for _, id := range c.KnownSpells {
		if c.CanCastSpell(id, turn) {
			out = append(out, id)
		}
	}
	return out
}

// HasCastableSpell reports whether id is currently castable.
func HasCastableSpell(c *entity.Character, id entity.SpellID, turn uint64) bool {
	if c == nil || c.RaceID == golemRaceID {
		return false
	}
	return c.CanCastSpell(id, turn)
}

// CastableSpellsOfSchool returns the subset of c's castable spells
// belonging to school, looked up in catalog.
func CastableSpellsOfSchool(c *entity.Character, catalog entity.SpellCatalog, school entity.SpellSchool, turn uint64) []*entity.SpellTemplate {
	var out []*entity.SpellTemplate
	for _, id := range CastableSpells(c, turn) {
		t, ok := catalog[id]
		if !ok || t.School != school {
			continue
		}
		out = append(out, t)
	}
	return out
}

// BestHealSpell picks a castable heal spell by spec.md §4.D.6's
// "smallest adequate / largest available" rule: with preferSmallest it
// returns the smallest heal whose HealDice average is >= minHeal; when
// preferSmallest is false, or no heal reaches minHeal, it returns the
// largest available heal.
func BestHealSpell(c *entity.Character, catalog entity.SpellCatalog, turn uint64, minHeal float64, preferSmallest bool) (*entity.SpellTemplate, bool) {
	candidates := CastableSpellsOfSchool(c, catalog, entity.SpellHeal, turn)
	if len(candidates) == 0 {
		return nil, false
	}
	var best *entity.SpellTemplate
	var bestAvg float64
	var largest *entity.SpellTemplate
	var largestAvg float64
	for _, t := range candidates {
		avg := dicePoolAverage(t.HealDice)
		if avg > largestAvg || largest == nil {
			largest = t
			largestAvg = avg
		}
		if preferSmallest && avg >= minHeal && (best == nil || avg < bestAvg) {
			best = t
			bestAvg = avg
		}
	}
	if best != nil {
		return best, true
	}
	return largest, true
}

// BestDamageSpell returns the most mana-efficient castable damage
// spell (average damage per mana point), optionally restricted to AOE
// or lifedrain spells (spec.md §4.D.6).
func BestDamageSpell(c *entity.Character, catalog entity.SpellCatalog, turn uint64, requireAOE, requireLifedrain bool) (*entity.SpellTemplate, bool) {
	candidates := CastableSpellsOfSchool(c, catalog, entity.SpellDamage, turn)
	var best *entity.SpellTemplate
	var bestEfficiency float64
	for _, t := range candidates {
		if requireAOE && !t.IsAOE {
			continue
		}
		if requireLifedrain && !t.IsLifedrain {
			continue
		}
		avg := dicePoolAverage(t.DamageDice)
		mana := t.ManaCost
		if mana <= 0 {
			mana = 1
		}
		efficiency := avg / float64(mana)
		if best == nil || efficiency > bestEfficiency {
			best = t
			bestEfficiency = efficiency
		}
	}
	return best, best != nil
}
