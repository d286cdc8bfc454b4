package goal

import (
	"strconv"

	"github.com/deepburrow/borgcore/action"
	"github.com/deepburrow/borgcore/entity"
	"github.com/deepburrow/borgcore/grid"
	"github.com/deepburrow/borgcore/personality"
	"github.com/deepburrow/borgcore/query"
)

// priorities is spec.md §4.F's checks 1-12, evaluated top to bottom.
// The first one that fires wins; priority 13 (WAIT) is Evaluate's
// fallback when none fires.
var priorities = []func(Input) (action.Goal, bool){
	evaluateFlee,
	evaluateHuntUnique,
	evaluateKite,
	evaluateKill,
	evaluateTake,
	evaluateAltarOrMerchant,
	evaluateTownFlow,
	evaluateRecover,
	evaluateTownTrip,
	evaluateFarm,
	evaluateDescend,
	evaluateExplore,
}

// Evaluate runs the priority-ordered arbitration and returns the
// chosen goal. current is the goal in effect on the previous tick; when
// the freshly arbitrated goal names the same kind and target, its
// StartTurn is carried forward so callers can measure goal age (KITE's
// duration cap, RECOVER's elapsed-time estimate).
func Evaluate(in Input, current action.Goal) action.Goal {
	for _, check := range priorities {
		g, ok := check(in)
		if !ok {
			continue
		}
		if g.Kind == current.Kind && g.SameTarget(current) {
			g.StartTurn = current.StartTurn
		} else {
			g.StartTurn = in.Turn
		}
		return g
	}
	return action.Goal{Kind: action.GoalWait, StartTurn: in.Turn}
}

func livingMonsterPositions(monsters []*entity.Monster) []grid.Point {
	pts := make([]grid.Point, 0, len(monsters))
	for _, m := range monsters {
		if m.HP > 0 {
			pts = append(pts, m.Position)
		}
	}
	return pts
}

// evaluateFlee is priority 1. It builds the flee destination with the
// safety flow when monsters are nearby, falling back to known stairs,
// the lowest-danger adjacent tile, or standing ground.
func evaluateFlee(in Input) (action.Goal, bool) {
	reason, triggered := fleeTrigger(in)
	if !triggered {
		return action.Goal{}, false
	}
	if reason == ReasonHighDanger && in.CurrentGoal.Kind == action.GoalDescend && !in.Personality.IsCautious() {
		// Bullrush: a non-cautious personality pushes past danger to the
		// stairs instead of retreating (spec.md §4.F priority 11).
		return action.Goal{}, false
	}
	g := action.Goal{Kind: action.GoalFlee, Reason: reason}

	if in.Level != nil {
		if monsterPts := livingMonsterPositions(in.Monsters); len(monsterPts) > 0 {
			safety := safetyFlow(in, monsterPts)
			if target, ok := grid.EscapeTarget(in.Level, safety, in.Character.Position, monsterPts); ok {
				return g.WithTarget(target), true
			}
		}
		if in.Level.StairsDown != nil {
			return g.WithTarget(*in.Level.StairsDown), true
		}
		if in.Level.StairsUp != nil {
			return g.WithTarget(*in.Level.StairsUp), true
		}
		if in.DangerGrid != nil {
			if best, ok := lowestDangerNeighbor(in); ok {
				return g.WithTarget(best), true
			}
		}
	}
	return g, true // stand_ground: no target
}

// safetyFlow returns the SafetyFlow grid for the given monster
// positions, reusing in.SafetyCache when its fingerprint (bot position,
// living monster count) still matches (spec.md §3.1's explicit caching
// requirement for the safety flow).
func safetyFlow(in Input, monsterPts []grid.Point) *grid.FlowGrid {
	if in.SafetyCache == nil {
		return grid.SafetyFlow(in.Level, monsterPts)
	}
	return in.SafetyCache.Get(in.Level, in.Character.Position, monsterPts)
}

func lowestDangerNeighbor(in Input) (grid.Point, bool) {
	var best grid.Point
	bestVal := int16(0)
	found := false
	for _, p := range in.Level.PassableNeighbors8(in.Character.Position) {
		v := in.DangerGrid.Get(p)
		if !found || v < bestVal {
			best, bestVal, found = p, v, true
		}
	}
	return best, found
}

// fleeTrigger runs spec.md §4.F priority 1's cause checks, graded by the
// retreat capability (spec.md §3.4, §3.2's "retreat-level evaluation"):
// grade 0 only covers outright incapacitation and the caution HP floor;
// each grade above that unlocks a more judgment-heavy tier of causes,
// from status-effect reactions up to the danger-map-driven ones.
func fleeTrigger(in Input) (string, bool) {
	if in.Turn < in.FleeCooldownUntil {
		return "", false
	}
	c := in.Character
	if c.HasStatus(entity.StatusParalyzed) && in.Adjacent > 0 {
		return "paralyzed while adjacent to a monster", true
	}
	if c.HPRatio() < in.Personality.RetreatHPRatio() {
		return "HP below retreat threshold", true
	}

	grade := in.Capabilities.EffectiveRetreat(in.Toggles)
	if grade < 1 {
		return "", false
	}
	switch {
	case c.HasStatus(entity.StatusPoisoned) && in.HPFalling && !hasPoisonCure(c):
		return "poisoned with no cure and HP falling", true
	case c.HasStatus(entity.StatusBlind) && in.Adjacent >= 2:
		return "blind and surrounded", true
	case c.HasStatus(entity.StatusSlowed) && in.Adjacent >= 2:
		return "slowed and outnumbered", true
	}

	if grade < 2 {
		return "", false
	}
	if in.Adjacent >= 2 && !in.ClassProfile.NeverRetreats {
		return "outnumbered", true
	}

	if grade < 3 {
		return "", false
	}
	switch {
	case in.LosingFight:
		return "losing the current fight", true
	case in.Local > in.AvoidanceThreshold():
		return ReasonHighDanger, true
	}
	return "", false
}

func hasPoisonCure(c *entity.Character) bool {
	_, ok := query.FindCureItem(c, entity.StatusPoisoned)
	return ok
}

// evaluateHuntUnique is priority 2.
func evaluateHuntUnique(in Input) (action.Goal, bool) {
	if len(in.LivingUniquesInRange) < 2 {
		return action.Goal{}, false
	}
	if in.BlockingUnique != nil {
		return action.Goal{
			Kind: action.GoalHuntUnique, TargetID: in.BlockingUnique.ID,
			Reason: "engaging the unique blocking progress",
		}.WithTarget(in.BlockingUnique.Position), true
	}
	if in.BlockingUniqueMissing && in.LevelSeenThisVisit >= 0.8 {
		return action.Goal{Kind: action.GoalAscendToFarm, Reason: "blocking unique not found after 80% of level seen"}, true
	}
	return action.Goal{}, false
}

// evaluateKite is priority 3 (ranged classes only).
func evaluateKite(in Input) (action.Goal, bool) {
	if in.Capabilities.EffectiveKiting(in.Toggles) == 0 || !in.ClassProfile.PrefersRanged {
		return action.Goal{}, false
	}
	if in.ClosestMonster == nil {
		return action.Goal{}, false
	}
	if in.KiteTargetID == in.ClosestMonster.ID && in.KiteTurnsOnTarget >= 100 {
		return action.Goal{Kind: action.GoalAscendToFarm, Reason: "kite duration cap reached"}, true
	}
	d := in.ClosestDistance
	if d >= in.BowRange {
		return action.Goal{}, false
	}
	return action.Goal{
		Kind: action.GoalKite, TargetID: in.ClosestMonster.ID,
		Reason: "maintaining ranged distance",
	}.WithTarget(in.ClosestMonster.Position), true
}

// evaluateKill is priority 4.
func evaluateKill(in Input) (action.Goal, bool) {
	c := in.Character
	if in.Adjacent > 0 {
		if m, ok := nearestLivingMonster(in.Monsters, c.Position); ok {
			return action.Goal{Kind: action.GoalKill, TargetID: m.ID, Reason: "adjacent monster"}.WithTarget(m.Position), true
		}
	}
	if c.HPRatio() < 0.25 {
		return action.Goal{}, false
	}
	best, ok := selectKillTarget(in)
	if !ok {
		return action.Goal{}, false
	}
	return action.Goal{Kind: action.GoalKill, TargetID: best.ID, Reason: "engaging visible monster"}.WithTarget(best.Position), true
}

// selectKillTarget is spec.md §4.F priority 4's "full class-aware target
// selection," graded by the targeting capability (spec.md §3.4): below
// grade 2 it picks the nearest engageable monster within 4 tiles; grade
// 2 and up prefers finishing off the lowest-HP-ratio candidate instead,
// so a sufficiently capable bot clears weakened monsters before full-HP
// ones at the same distance class.
func selectKillTarget(in Input) (*entity.Monster, bool) {
	c := in.Character
	grade := in.Capabilities.EffectiveTargeting(in.Toggles)
	var best *entity.Monster
	bestDist := 1 << 30
	bestHPRatio := 2.0
	for _, m := range in.Monsters {
		if m.HP <= 0 || !m.IsAwake {
			continue
		}
		d := grid.ChebyshevDistance(c.Position, m.Position)
		if d > 4 || !shouldEngage(in, m, d) {
			continue
		}
		r := monsterHPRatio(m)
		switch {
		case best == nil:
			best, bestDist, bestHPRatio = m, d, r
		case grade >= 2 && r < bestHPRatio:
			best, bestDist, bestHPRatio = m, d, r
		case grade < 2 && d < bestDist:
			best, bestDist, bestHPRatio = m, d, r
		}
	}
	return best, best != nil
}

func monsterHPRatio(m *entity.Monster) float64 {
	if m.MaxHP <= 0 {
		return 1
	}
	return float64(m.HP) / float64(m.MaxHP)
}

func nearestLivingMonster(monsters []*entity.Monster, from grid.Point) (*entity.Monster, bool) {
	var best *entity.Monster
	bestDist := 1 << 30
	for _, m := range monsters {
		if m.HP <= 0 {
			continue
		}
		d := grid.ChebyshevDistance(from, m.Position)
		if d < bestDist {
			best, bestDist = m, d
		}
	}
	return best, best != nil
}

// shouldEngage is the class-aware willingness-to-fight predicate: a
// class that never retreats always engages; otherwise the character
// engages while the local danger at its own tile stays below the
// personality's aggression plus ten per point of the class's engage
// distance. The candidate monster's own threat, the character's HP and
// the odds of winning are not considered.
func shouldEngage(in Input, m *entity.Monster, distance int) bool {
	if in.ClassProfile.NeverRetreats {
		return true
	}
	threatBudget := in.Personality.Aggression + in.ClassProfile.EngageDistance*10
	return in.Local < threatBudget
}

// evaluateTake is priority 5.
func evaluateTake(in Input) (action.Goal, bool) {
	if in.Local > in.AvoidanceThreshold() {
		return action.Goal{}, false
	}
	for _, g := range in.GroundItems {
		if g.Position.Equals(in.Character.Position) && !in.BlacklistedItemIDs[g.Item.ID] {
			return action.Goal{Kind: action.GoalTake, TargetID: g.Item.ID, Reason: "item underfoot"}.WithTarget(g.Position), true
		}
	}
	radius := in.Personality.ItemDetourRadius()
	var best *entity.GroundItem
	bestDist := 1 << 30
	for _, g := range in.GroundItems {
		if in.BlacklistedItemIDs[g.Item.ID] || in.BlacklistedPositions[g.Position.Key()] {
			continue
		}
		d := grid.ChebyshevDistance(in.Character.Position, g.Position)
		if d > radius {
			continue
		}
		if d < bestDist {
			best, bestDist = g, d
		}
	}
	if best == nil {
		return action.Goal{}, false
	}
	return action.Goal{Kind: action.GoalTake, TargetID: best.Item.ID, Reason: "worthwhile item nearby"}.WithTarget(best.Position), true
}

// evaluateAltarOrMerchant is priority 6.
func evaluateAltarOrMerchant(in Input) (action.Goal, bool) {
	for _, a := range in.Altars {
		if !a.Used && a.Position.Equals(in.Character.Position) {
			return action.Goal{Kind: action.GoalUseAltar, Reason: "altar underfoot"}.WithTarget(a.Position), true
		}
	}
	if in.TownCapability() >= 3 {
		for _, mc := range in.Merchants {
			if mc.Position.Equals(in.Character.Position) {
				return action.Goal{Kind: action.GoalVisitMerchant, Reason: "merchant underfoot"}.WithTarget(mc.Position), true
			}
		}
	}
	return action.Goal{}, false
}

// evaluateTownFlow is priority 7: the in-town shopping sequence. Per-shop
// visited sets (spec.md §4.F) track which merchant has already been
// used for each purpose this visit, so SELL_TO_MERCHANT/
// BUY_FROM_MERCHANT keep naming the next unvisited one instead of
// re-targeting a shop already handled.
func evaluateTownFlow(in Input) (action.Goal, bool) {
	if !in.InTown {
		return action.Goal{}, false
	}
	if in.TownCapability() >= 3 && in.HasSellableLoot {
		if mc, ok := nextUnvisitedMerchant(in.Merchants, in.Character.Position, in.TownVisitedToSell); ok {
			return action.Goal{Kind: action.GoalSellToMerchant, TargetID: merchantID(mc), Reason: "selling loot before buying"}.WithTarget(mc.Position), true
		}
	}
	if in.TownCapability() >= 2 && !in.VisitedHealer && in.Character.HPRatio() < 1.0 {
		return action.Goal{Kind: action.GoalVisitHealer, Reason: "topping off HP at the healer"}, true
	}
	if in.TownCapability() >= 3 && in.WantsToBuy && in.TownNeeds.Any() {
		if mc, ok := nextUnvisitedMerchant(in.Merchants, in.Character.Position, in.TownVisitedToBuy); ok {
			return action.Goal{Kind: action.GoalBuyFromMerchant, TargetID: merchantID(mc), Reason: "restocking consumables"}.WithTarget(mc.Position), true
		}
	}
	if in.TownCapability() >= 1 {
		return action.Goal{Kind: action.GoalReturnPortal, Reason: "town errands complete"}, true
	}
	return action.Goal{Kind: action.GoalExitTown, Reason: "no town capability, heading for the exit"}, true
}

// nextUnvisitedMerchant returns the nearest merchant not yet marked done
// in visited, skipping temples/healers (evaluateTownFlow routes those
// through VISIT_HEALER instead).
func nextUnvisitedMerchant(merchants []*entity.MerchantState, from grid.Point, visited map[string]bool) (*entity.MerchantState, bool) {
	var best *entity.MerchantState
	bestDist := 1 << 30
	for _, mc := range merchants {
		if mc.Kind == entity.MerchantTemple {
			continue
		}
		if visited[merchantID(mc)] {
			continue
		}
		d := grid.ChebyshevDistance(from, mc.Position)
		if d < bestDist {
			best, bestDist = mc, d
		}
	}
	return best, best != nil
}

func merchantID(mc *entity.MerchantState) string {
	return strconv.Itoa(mc.Index)
}

// evaluateRecover is priority 8.
func evaluateRecover(in Input) (action.Goal, bool) {
	if in.Character.HPRatio() >= 0.5 || in.Local > 0 || len(in.Monsters) > 0 {
		return action.Goal{}, false
	}
	if in.TownPortalBetterOption {
		return action.Goal{}, false
	}
	if in.EstimatedHealTurns > 30 {
		return action.Goal{}, false
	}
	return action.Goal{Kind: action.GoalRecover, Reason: "resting to heal safely"}, true
}

// evaluateTownTrip is priority 9.
func evaluateTownTrip(in Input) (action.Goal, bool) {
	if in.TownCapability() == 0 {
		return action.Goal{}, false
	}
	portalIndicated := query.CountHealingPotions(in.Character) == 0 && query.CountEscapeScrolls(in.Character) == 0
	reason := personality.EvaluateTownTrip(in.Character, in.Preset, portalIndicated)
	if reason == personality.TownTripNone {
		return action.Goal{}, false
	}
	return action.Goal{Kind: action.GoalTownTrip, Reason: reason.String()}, true
}

// evaluateFarm is priority 10.
func evaluateFarm(in Input) (action.Goal, bool) {
	if !in.Capabilities.EffectiveFarming(in.Toggles) {
		return action.Goal{}, false
	}
	reason, ready := personality.DepthReadiness(
		in.Character, in.Character.ClassID, in.UpgradeTier, in.TargetDepth,
		in.Personality.Caution, in.PreparednessLevel, in.DepthGateOffset,
	)
	if ready {
		return action.Goal{}, false
	}
	return action.Goal{Kind: action.GoalFarm, Reason: reason}, true
}

// evaluateDescend is priority 11.
func evaluateDescend(in Input) (action.Goal, bool) {
	if in.Level == nil || in.Level.StairsDown == nil {
		return action.Goal{}, false
	}
	if in.DangerBlockedDescent {
		return action.Goal{}, false
	}
	if !sweepSatisfied(in) {
		return action.Goal{}, false
	}
	reason, ready := personality.DepthReadiness(
		in.Character, in.Character.ClassID, in.UpgradeTier, in.TargetDepth,
		in.Personality.Caution, in.PreparednessLevel, in.DepthGateOffset,
	)
	if !ready {
		return action.Goal{Kind: action.GoalFarm, Reason: reason}, true
	}
	return action.Goal{Kind: action.GoalDescend, Reason: "stairs down known and depth-ready"}.WithTarget(*in.Level.StairsDown), true
}

// sweepSatisfied gates DESCEND on the sweep/surf exploration-strategy
// capabilities (spec.md §2, §3.4 GLOSSARY: "sweep covers the whole
// level before descending... surf descends as soon as stairs are
// known"). Surf taking precedence when graded higher than sweep lets a
// bot with both unlocked favor the faster strategy; with no sweep grade
// at all there's nothing to gate on. Blocking DESCEND here is enough to
// implement sweep — EXPLORE (priority 12) already rolls downhill toward
// the level's frontier whenever ExplorationRatio < 1.0, so a blocked
// DESCEND simply falls through to it without a second flow algorithm.
func sweepSatisfied(in Input) bool {
	sweep := in.Capabilities.EffectiveSweep(in.Toggles)
	surf := in.Capabilities.EffectiveSurf(in.Toggles)
	if sweep == 0 || surf > sweep {
		return true
	}
	return in.ExplorationRatio >= sweepThreshold(sweep)
}

// sweepThreshold returns the fraction of the level sweep grade must see
// before DESCEND is allowed — ungraded in spec.md, so this module picks
// an escalating scale: a higher sweep grade holds out for a more
// thorough clear.
func sweepThreshold(grade int) float64 {
	switch {
	case grade <= 1:
		return 0.6
	case grade == 2:
		return 0.8
	default:
		return 0.95
	}
}

// evaluateExplore is priority 12. It names EXPLORE with no specific
// target point: the executor owns building the multi-goal frontier
// flow over the level's unexplored-but-reachable tiles.
func evaluateExplore(in Input) (action.Goal, bool) {
	if in.ExplorationRatio >= 1.0 {
		return action.Goal{}, false
	}
	return action.Goal{Kind: action.GoalExplore, Reason: "level not fully explored"}, true
}
