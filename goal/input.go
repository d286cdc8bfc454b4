package goal

import (
	"github.com/deepburrow/borgcore/action"
	"github.com/deepburrow/borgcore/entity"
	"github.com/deepburrow/borgcore/grid"
	"github.com/deepburrow/borgcore/policy"
)

// ReasonHighDanger is evaluateFlee's fleeTrigger cause string for a
// local-danger-above-threshold trigger — the one cause spec.md §4.F
// priority 1 gives extra behavior to (TAKE-target blacklisting,
// DESCEND bullrush override), so it is shared as a constant rather than
// repeated as a string literal at each comparison site.
const ReasonHighDanger = "high danger area"

// Input bundles everything the goal arbiter needs to evaluate spec.md
// §4.F's 13 priorities, layered on top of policy.Input's snapshot.
type Input struct {
	policy.Input

	// FLEE (priority 1)
	HPFalling   bool // true if HP has dropped since the previous tick
	LosingFight bool // true if the host's combat-trend estimate says this fight is going badly

	// CurrentGoal is the goal in effect on the previous tick, the same
	// value Evaluate receives as current — threaded into Input too so
	// individual priority checks (evaluateFlee's TAKE-blacklist and
	// DESCEND-bullrush-override behaviors) can see what was happening
	// before FLEE fired, without widening every check's signature.
	CurrentGoal action.Goal

	// FleeCooldownUntil suppresses FLEE goal generation until this turn
	// (spec.md §3.1's flee_cooldown_until), set after a FLEE goal
	// resolves to stop immediate re-trigger oscillation.
	FleeCooldownUntil uint64

	// SafetyCache memoizes evaluateFlee's SafetyFlow computation across
	// ticks. Nil is treated as "compute without caching."
	SafetyCache *SafetyFlowCache

	// DangerBlockedDescent reports that a cautious personality retreated
	// from danger instead of bullrushing past it while pursuing DESCEND
	// (spec.md §4.F priority 11); DESCEND stays suppressed until the
	// danger clears.
	DangerBlockedDescent bool

	// HUNT_UNIQUE (priority 2)
	TargetDepth           int
	LivingUniquesInRange  []*entity.Monster // native to [current_depth, TargetDepth], still alive
	BlockingUnique        *entity.Monster   // visible unique currently blocking progress, nil if none
	LevelSeenThisVisit    float64           // fraction of the level explored on this visit
	BlockingUniqueMissing bool              // the blocking unique is known but not currently visible

	// KITE (priority 3)
	ClosestMonster    *entity.Monster
	ClosestDistance   int
	BowRange          int
	OptimalRange      int
	KiteTargetID      string // the monster id currently being kited, "" if none
	KiteTurnsOnTarget int
	FOVRadius         int
	LOS               func(grid.Point) bool

	// TAKE (priority 5)
	GroundItems        []*entity.GroundItem
	BlacklistedItemIDs map[string]bool

	// BlacklistedPositions holds the still-active "x,y" -> expiry_turn
	// position blacklist (spec.md §3.1), keyed by grid.Point.Key(). TAKE
	// is the one goal that currently produces unreachable-target
	// candidates (an item the executor got Stuck trying to path to), so
	// it's the one priority that filters against it.
	BlacklistedPositions map[string]bool

	// USE_ALTAR / VISIT_MERCHANT (priority 6)
	Altars    []*entity.AltarState
	Merchants []*entity.MerchantState

	// Town flow (priority 7)
	InTown          bool
	HasSellableLoot bool
	VisitedHealer   bool
	WantsToBuy      bool

	// TownVisitedToSell/TownVisitedToBuy are the per-shop completion
	// sets (merchant id -> done this visit) spec.md §4.F priority 7's
	// "per-shop visited sets track completion" names.
	TownVisitedToSell map[string]bool
	TownVisitedToBuy  map[string]bool

	// TownNeeds is the per-visit restock shortfall (spec.md §3.1's
	// town_needs), gating BUY_FROM_MERCHANT alongside the host's general
	// in.WantsToBuy signal.
	TownNeeds TownNeeds

	// RECOVER (priority 8)
	EstimatedHealTurns    int
	TownPortalBetterOption bool

	// FARM / ASCEND_TO_FARM / DESCEND depth gating (priorities 10-11)
	UpgradeTier       int
	PreparednessLevel int
	DepthGateOffset   int
}

// TownNeeds is the count of each restockable consumable still short of
// its per-visit target (spec.md §3.1's town_needs: Town Portal scrolls,
// healing potions, escape scrolls).
type TownNeeds struct {
	Portals int
	Healing int
	Escape  int
}

// Any reports whether any consumable is still needed.
func (n TownNeeds) Any() bool {
	return n.Portals > 0 || n.Healing > 0 || n.Escape > 0
}
