package danger

import (
	"github.com/deepburrow/borgcore/entity"
	"github.com/deepburrow/borgcore/grid"
)

// Tier is the four-level danger classification the tier handler
// dispatches on (spec.md §4.B).
type Tier int

// Tier constants, ordered from least to most severe so comparisons
// like `tier >= DANGER` read naturally.
const (
	Safe Tier = iota
	Caution
	Danger
	Critical
)

// String names the tier.
func (t Tier) String() string {
	switch t {
	case Critical:
		return "CRITICAL"
	case Danger:
		return "DANGER"
	case Caution:
		return "CAUTION"
	default:
		return "SAFE"
	}
}

// outnumberedThreshold is the adjacent-monster count spec.md §4.B's
// DANGER tier treats as "several adjacent monsters".
const outnumberedThreshold = 2

// Classify implements spec.md §4.B's tier table. Thresholds are
// evaluated most-severe-first so the result is monotone: increasing
// damage or decreasing HP can only move the classification toward
// CRITICAL, never back toward SAFE.
func Classify(c *entity.Character, monsters []*entity.Monster, localDanger, aggression int) Tier {
	hpRatio := c.HPRatio()
	immediate := ImmediateDanger(c.Position, monsters, c.ArmorReduction)
	adjacent := AdjacentCount(c.Position, monsters)
	anyVisible := len(monsters) > 0

	if hpRatio <= 0.25 || immediate > c.HP {
		return Critical
	}
	if (hpRatio <= 0.5 && float64(immediate) >= 0.7*float64(c.HP)) || adjacent >= outnumberedThreshold {
		return Danger
	}
	avoidanceThreshold := 100 + aggression
	if (hpRatio <= 0.75 && anyVisible) || localDanger > avoidanceThreshold {
		return Caution
	}
	return Safe
}

// PhaseDoorSafetyTest implements spec.md §4.D.1.a: sample every
// walkable, unoccupied tile within Chebyshev distance 10 of agent and
// report whether phase-dooring there is safe.
func PhaseDoorSafetyTest(lvl *grid.Level, dangerGrid *grid.DangerGrid, agent grid.Point, occupied map[grid.Point]bool, avoidanceThreshold int) bool {
	const sampleRadius = 10
	safeCountThresholdFraction := 0.25
	currentDanger := LocalDanger(dangerGrid, agent)

	sampled := 0
	safeCount := 0
	dangerSum := 0
	for dy := -sampleRadius; dy <= sampleRadius; dy++ {
		for dx := -sampleRadius; dx <= sampleRadius; dx++ {
			p := grid.Point{X: agent.X + dx, Y: agent.Y + dy}
			if grid.ChebyshevDistance(agent, p) > sampleRadius {
				continue
			}
			if !lvl.IsPassable(p) || occupied[p] {
				continue
			}
			sampled++
			d := LocalDanger(dangerGrid, p)
			dangerSum += d
			if float64(d) < 0.5*float64(avoidanceThreshold) {
				safeCount++
			}
		}
	}
	if sampled == 0 {
		return false
	}
	if float64(safeCount)/float64(sampled) >= safeCountThresholdFraction {
		return true
	}
	avgDanger := float64(dangerSum) / float64(sampled)
	return avgDanger < 0.5*float64(currentDanger)
}
