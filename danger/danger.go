package danger

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/deepburrow/borgcore/entity"
	"github.com/deepburrow/borgcore/grid"
)

// FalloffRadius is the tile radius beyond which a monster's threat
// contributes nothing to the DangerGrid (spec.md §4.B: "to radius
// ~5").
const FalloffRadius = 5

// falloffBase is the per-tile decay factor applied to a monster's
// threat score as Chebyshev distance from the monster increases. A
// geometric decay keeps the gradient smooth for the safety-flow
// algorithm to walk downhill on.
const falloffBase = 0.65

// DistanceFalloff returns the fraction of a monster's full threat
// score that reaches a tile at the given Chebyshev distance: 1.0 at
// distance 1 (full score), decaying by falloffBase per additional
// tile, 0 beyond FalloffRadius.
func DistanceFalloff(distance int) float64 {
	if distance <= 0 {
		return 1.0
	}
	if distance > FalloffRadius {
		return 0.0
	}
	falloff := 1.0
	for i := 1; i < distance; i++ {
		falloff *= falloffBase
	}
	return falloff
}

// averageAttackDamage returns a monster attack's dice average, or 0 if
// the notation fails to parse (a malformed template is treated as
// doing no damage rather than panicking the decision function).
func averageAttackDamage(a entity.Attack) float64 {
	pool, err := dice.ParseNotation(a.Dice)
	if err != nil || pool == nil {
		return 0
	}
	return pool.Average()
}

// ThreatScore is a monster's full (distance-1) threat: the sum of its
// attacks' dice averages, with melee attacks reduced by the character's
// armor reduction fraction; other attack methods count at their full
// average (spec.md §4.B).
func ThreatScore(m *entity.Monster, armorReduction float64) float64 {
	if m == nil || m.Template == nil || m.HP <= 0 || !m.IsAwake {
		return 0
	}
	total := 0.0
	for _, a := range m.Template.Attacks {
		dmg := averageAttackDamage(a)
		if a.Method == entity.AttackMelee {
			dmg *= 1 - armorReduction
		}
		total += dmg
	}
	if total < 0 {
		return 0
	}
	return total
}

// ThreatAt returns the threat m projects onto a tile at the given
// Chebyshev distance from m's own position, with distance fall-off
// applied and clamped to a non-negative value.
func ThreatAt(m *entity.Monster, armorReduction float64, distance int) float64 {
	score := ThreatScore(m, armorReduction) * DistanceFalloff(distance)
	if score < 0 {
		return 0
	}
	return score
}

// BuildDangerGrid aggregates every living, awake monster's projected
// threat into a DangerGrid covering lvl's tiles (spec.md §4.B). Values
// are stored scaled x10 to preserve one decimal digit of precision in
// the int16 grid.
func BuildDangerGrid(lvl *grid.Level, monsters []*entity.Monster, armorReduction float64) *grid.DangerGrid {
	g := grid.NewInt16Grid(lvl.Width, lvl.Height, 0)
	for _, m := range monsters {
		if m == nil || m.HP <= 0 || !m.IsAwake {
			continue
		}
		for y := 0; y < lvl.Height; y++ {
			for x := 0; x < lvl.Width; x++ {
				p := grid.Point{X: x, Y: y}
				d := grid.ChebyshevDistance(m.Position, p)
				if d > FalloffRadius {
					continue
				}
				contribution := ThreatAt(m, armorReduction, d)
				if contribution <= 0 {
					continue
				}
				g.Set(p, g.Get(p)+int16(contribution*10))
			}
		}
	}
	return g
}

// LocalDanger returns the aggregated threat at a single tile (spec.md
// §4.B "Local danger"), used for flow evaluation and goal arbitration.
func LocalDanger(g *grid.DangerGrid, p grid.Point) int {
	return int(g.Get(p)) / 10
}

// ImmediateDanger sums the threat of every monster adjacent (Chebyshev
// distance 1) to pos — the character's own position — regardless of
// the grid's smoothed falloff (spec.md §4.B "Immediate danger").
func ImmediateDanger(pos grid.Point, monsters []*entity.Monster, armorReduction float64) int {
	total := 0.0
	for _, m := range monsters {
		if m == nil || m.HP <= 0 || !m.IsAwake {
			continue
		}
		if grid.ChebyshevDistance(m.Position, pos) <= 1 {
			total += ThreatScore(m, armorReduction)
		}
	}
	return int(total)
}

// AdjacentCount returns the number of living, awake monsters within
// Chebyshev distance 1 of pos.
func AdjacentCount(pos grid.Point, monsters []*entity.Monster) int {
	n := 0
	for _, m := range monsters {
		if m == nil || m.HP <= 0 || !m.IsAwake {
			continue
		}
		if grid.ChebyshevDistance(m.Position, pos) <= 1 {
			n++
		}
	}
	return n
}
