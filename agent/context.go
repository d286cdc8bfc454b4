package agent

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/deepburrow/borgcore/entity"
	"github.com/deepburrow/borgcore/grid"
	"github.com/deepburrow/borgcore/personality"
)

// Context is the read-only per-tick snapshot Decide is invoked with
// (spec.md §2): the game state, personality/class/capability
// configuration, and the handful of host-owned black-box facts
// (spec.md §9 OQ1) this core has no way to compute itself.
type Context struct {
	Level     *grid.Level
	Character *entity.Character
	Monsters  []*entity.Monster
	Items     []*entity.GroundItem
	Altars    []*entity.AltarState
	Merchants []*entity.MerchantState

	SpellCatalog entity.SpellCatalog

	Personality  personality.Config
	Preset       personality.Preset
	ClassProfile personality.ClassProfile
	Capabilities personality.Capabilities
	Toggles      personality.Toggles

	Turn uint64

	// Rng is the seedable PRNG every pseudorandom value in the core
	// must come from (spec.md §5: "no hidden global state is read by
	// the core"). Nothing in the current movement/arbitration pipeline
	// consults it — every tie-break is resolved by grid.Directions8's
	// fixed order instead — but it stays part of the contract so a
	// future policy that does need a coin flip has a determinism-safe
	// source ready, rather than reaching for math/rand's global state.
	Rng dice.Roller

	Bus events.EventBus

	// Debug controls spec.md §7's invariant-violation handling: panic
	// when true (development), recover to Wait when false (a run in
	// progress should never crash on a bad tick).
	Debug bool

	// Host-owned combat facts no read-only snapshot can derive
	// (spec.md §9 OQ1).
	BowRange            int
	OptimalRange         int
	ShapeshiftFormID     string
	LightOrbSpellID      entity.SpellID
	HasteSpellID         entity.SpellID
	AOEActivationItemID  string

	FOVRadius int
	LOS       func(grid.Point) bool

	// Host-supplied facts the goal arbiter needs but can't derive from
	// a single tick's snapshot (trend data, depth-gate configuration).
	LosingFight bool

	TargetDepth       int
	UpgradeTier       int
	PreparednessLevel int
	DepthGateOffset   int

	LivingUniquesInRange []*entity.Monster
	BlockingUnique       *entity.Monster

	HasSellableLoot        bool
	WantsToBuy             bool
	EstimatedHealTurns     int
	TownPortalBetterOption bool

	// HasSneakAttackBuff reports whether the character currently has an
	// active sneak-attack window, a host-tracked combat state rather
	// than anything this core's snapshot can derive.
	HasSneakAttackBuff bool

	Occupied map[grid.Point]bool
}
