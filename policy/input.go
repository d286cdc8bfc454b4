package policy

import (
	"github.com/deepburrow/borgcore/danger"
	"github.com/deepburrow/borgcore/entity"
	"github.com/deepburrow/borgcore/grid"
	"github.com/deepburrow/borgcore/personality"
)

// Input bundles everything a policy function needs, assembled by the
// agent package from its Context and AgentState each tick. Policies
// stay pure functions of Input rather than reaching into AgentState
// directly, so each can be tested in isolation.
type Input struct {
	Character *entity.Character
	Monsters  []*entity.Monster
	Level     *grid.Level

	DangerGrid *grid.DangerGrid

	Personality  personality.Config
	Preset       personality.Preset
	ClassProfile personality.ClassProfile
	Capabilities personality.Capabilities
	Toggles      personality.Toggles
	SpellCatalog entity.SpellCatalog

	Turn         uint64
	TwitchCounter int
	TurnsOnLevel  int

	// ExplorationRatio is the number of tiles marked in the agent's
	// per-visit SeenGrid as a fraction of the level's total passable
	// tile count.
	ExplorationRatio float64

	KnownStairsDown bool

	Tier      danger.Tier
	Immediate int
	Adjacent  int
	Local     int

	VictoryBossVisible bool

	// Occupied is the set of tiles currently occupied by a living
	// monster, for the phase-door safety sample to avoid.
	Occupied map[grid.Point]bool

	// PermanentPets tracks per-kind summoned-pet counts still alive,
	// for the Summon policy's upkeep cap.
	PermanentPets map[string]int

	HasSneakAttackBuff bool
}

// TownCapability is a convenience accessor for the effective (toggle-
// aware) town-commerce grade.
func (in Input) TownCapability() int {
	return in.Capabilities.EffectiveTown(in.Toggles)
}

// InCombat reports whether at least one monster is adjacent.
func (in Input) InCombat() bool {
	return in.Adjacent > 0
}

// AvoidanceThreshold is the personality-scaled danger-worth-fleeing
// threshold (GLOSSARY).
func (in Input) AvoidanceThreshold() int {
	return in.Personality.AvoidanceThreshold()
}

// ShouldEscapeOverHeal reports whether, at CRITICAL tier, the agent
// should spend an escape consumable instead of healing: outnumbered,
// or HP low enough that a heal likely won't outpace incoming damage.
func (in Input) ShouldEscapeOverHeal() bool {
	if in.Tier != danger.Critical {
		return false
	}
	if in.Adjacent >= 2 {
		return true
	}
	return in.Character.HPRatio() <= 0.15
}

// ShouldEscape reports whether immediate conditions call for an escape
// consumable/spell, independent of CRITICAL-tier heal triage.
func (in Input) ShouldEscape() bool {
	if in.Character.HPRatio() < in.Personality.RetreatHPRatio() && in.Adjacent > 0 {
		return true
	}
	return in.Adjacent >= 3
}
