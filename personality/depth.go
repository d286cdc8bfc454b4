package personality

import (
	"fmt"
	"math"

	"github.com/deepburrow/borgcore/entity"
	"github.com/deepburrow/borgcore/query"
)

// VictoryBossDepth is the depth of the named unique whose defeat ends
// the run (GLOSSARY: "Victory boss").
const VictoryBossDepth = 50

// EquipmentInventoryLimit is the hard inventory cap of spec.md §6.3.
const EquipmentInventoryLimit = 20

// requirement is one depth bracket's readiness table.
type requirement struct {
	HealingPotions int
	EscapeScrolls  int
	TownPortals    int
	MinHPPercent   int
	MinHealTier    int
	BuffPotions    int
	ManaPotions    int
}

// requirementsForDepth returns the baseline (unscaled) requirement
// bracket for a target depth. The victory boss fight at
// VictoryBossDepth has its own fixed, never-scaled-down bracket
// (spec.md §6.3: "except the boss fight which never scales down").
func requirementsForDepth(depth int) requirement {
	if depth >= VictoryBossDepth {
		return requirement{
			HealingPotions: 5,
			EscapeScrolls:  3,
			TownPortals:    2,
			MinHPPercent:   90,
			MinHealTier:    4,
			BuffPotions:    3,
			ManaPotions:    3,
		}
	}
	return requirement{
		HealingPotions: 1 + depth/5,
		EscapeScrolls:  depth / 8,
		TownPortals:    1,
		MinHPPercent:   50,
		MinHealTier:    1 + clampInt(depth/15, 0, 3),
		BuffPotions:    depth / 15,
		ManaPotions:    depth / 15,
	}
}

// scaleCount scales a baseline requirement count by caution/50, except
// for the victory boss bracket which spec.md §6.3 says never scales
// down.
func scaleCount(base int, caution int, isBoss bool) int {
	if isBoss {
		return base
	}
	scale := float64(caution) / 50.0
	return int(math.Ceil(float64(base) * scale))
}

// DepthReadiness implements spec.md §6.3's gating policy. It returns a
// human-readable reason and false when not ready, or ("", true) when
// ready to descend. preparednessLevel (0..3) gates which checks are
// active; depthGateOffset ([-5,+5]) shifts the effective depth used for
// lookups.
func DepthReadiness(
	c *entity.Character,
	classID string,
	upgradeTier int,
	targetDepth int,
	caution int,
	preparednessLevel int,
	depthGateOffset int,
) (string, bool) {
	if preparednessLevel <= 0 {
		return "", true
	}

	effectiveDepth := clampInt(targetDepth+depthGateOffset, 1, VictoryBossDepth)
	isBoss := effectiveDepth >= VictoryBossDepth
	base := requirementsForDepth(effectiveDepth)

	reqHealing := scaleCount(base.HealingPotions, caution, isBoss)
	reqEscape := scaleCount(base.EscapeScrolls, caution, isBoss)
	reqPortals := scaleCount(base.TownPortals, caution, isBoss)
	reqMinHP := base.MinHPPercent // a percentage floor, not scaled as a count

	if query.CountHealingPotions(c) < reqHealing {
		return fmt.Sprintf("Need %d healing potions for depth %d (have %d)",
			reqHealing, targetDepth, query.CountHealingPotions(c)), false
	}
	if query.CountEscapeScrolls(c) < reqEscape {
		return fmt.Sprintf("Need %d escape scrolls for depth %d (have %d)",
			reqEscape, targetDepth, query.CountEscapeScrolls(c)), false
	}
	if query.CountTownPortals(c) < reqPortals {
		return fmt.Sprintf("Need %d town portal scrolls for depth %d (have %d)",
			reqPortals, targetDepth, query.CountTownPortals(c)), false
	}
	if int(c.HPRatio()*100) < reqMinHP {
		return fmt.Sprintf("Need %d%% HP for depth %d (have %d%%)",
			reqMinHP, targetDepth, int(c.HPRatio()*100)), false
	}

	if preparednessLevel >= 2 {
		minLevel := MinLevelForDepth(classID, effectiveDepth, upgradeTier)
		if c.Level < minLevel {
			return fmt.Sprintf("Need level %d for depth %d (have %d)",
				minLevel, targetDepth, c.Level), false
		}
		if _, ok := query.FindHealingPotion(c, base.MinHealTier); !ok {
			return fmt.Sprintf("Need tier %d healing potion for depth %d", base.MinHealTier, targetDepth), false
		}
	}

	if preparednessLevel >= 3 {
		reqBuff := scaleCount(base.BuffPotions, caution, isBoss)
		if query.CountBuffPotions(c) < reqBuff {
			return fmt.Sprintf("Need %d buff potions for depth %d (have %d)",
				reqBuff, targetDepth, query.CountBuffPotions(c)), false
		}
		if c.MaxMP > 0 {
			reqMana := scaleCount(base.ManaPotions, caution, isBoss)
			if query.CountManaPotions(c) < reqMana {
				return fmt.Sprintf("Need %d mana potions for depth %d (have %d)",
					reqMana, targetDepth, query.CountManaPotions(c)), false
			}
		}
	}

	return "", true
}

// TownTripReason enumerates the orthogonal triggers for a TOWN_TRIP,
// per spec.md §6.3.
type TownTripReason int

// Town trip reason constants.
const (
	TownTripNone TownTripReason = iota
	TownTripPortalUsage
	TownTripEncumbrance
	TownTripInventoryFull
)

// String names the trigger, recorded into AgentState.Town.LastTripReason
// when the goal it produced is chosen.
func (r TownTripReason) String() string {
	switch r {
	case TownTripPortalUsage:
		return "portal_usage"
	case TownTripEncumbrance:
		return "encumbrance"
	case TownTripInventoryFull:
		return "inventory_full"
	default:
		return "none"
	}
}

// EvaluateTownTrip checks the three orthogonal TOWN_TRIP triggers:
// indicated Town Portal usage, personality-scaled encumbrance, and the
// hard inventory-full cap (spec.md §6.3, B2).
func EvaluateTownTrip(c *entity.Character, preset Preset, portalIndicated bool) TownTripReason {
	if c.InventoryFull(EquipmentInventoryLimit) {
		return TownTripInventoryFull
	}
	tolerance := preset.EncumbranceTolerance()
	if float64(len(c.Inventory)) >= float64(EquipmentInventoryLimit)*tolerance {
		return TownTripEncumbrance
	}
	if portalIndicated {
		return TownTripPortalUsage
	}
	return TownTripNone
}
