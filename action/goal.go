package action

import "github.com/deepburrow/borgcore/grid"

// GoalKind tags the variant of a Goal (spec.md §3.1).
type GoalKind int

// Goal kind constants, in the priority order spec.md §4.F arbitrates
// them.
const (
	GoalFlee GoalKind = iota
	GoalHuntUnique
	GoalKite
	GoalKill
	GoalTake
	GoalUseAltar
	GoalVisitMerchant
	GoalSellToMerchant
	GoalVisitHealer
	GoalBuyFromMerchant
	GoalReturnPortal
	GoalExitTown
	GoalRecover
	GoalTownTrip
	GoalFarm
	GoalAscendToFarm
	GoalDescend
	GoalExplore
	GoalWait
)

// String names the goal kind, for decision-trace events.
func (k GoalKind) String() string {
	switch k {
	case GoalFlee:
		return "FLEE"
	case GoalHuntUnique:
		return "HUNT_UNIQUE"
	case GoalKite:
		return "KITE"
	case GoalKill:
		return "KILL"
	case GoalTake:
		return "TAKE"
	case GoalUseAltar:
		return "USE_ALTAR"
	case GoalVisitMerchant:
		return "VISIT_MERCHANT"
	case GoalSellToMerchant:
		return "SELL_TO_MERCHANT"
	case GoalVisitHealer:
		return "VISIT_HEALER"
	case GoalBuyFromMerchant:
		return "BUY_FROM_MERCHANT"
	case GoalReturnPortal:
		return "RETURN_PORTAL"
	case GoalExitTown:
		return "EXIT_TOWN"
	case GoalRecover:
		return "RECOVER"
	case GoalTownTrip:
		return "TOWN_TRIP"
	case GoalFarm:
		return "FARM"
	case GoalAscendToFarm:
		return "ASCEND_TO_FARM"
	case GoalDescend:
		return "DESCEND"
	case GoalExplore:
		return "EXPLORE"
	default:
		return "WAIT"
	}
}

// Goal is the strategic destination the goal arbiter selects each tick
// (spec.md §3.1, §4.F). TargetPoint/TargetID are the nullable fields of
// the spec's tagged record; the zero grid.Point plus HasTarget=false
// stands in for "nullable" since Go has no Option<T>.
type Goal struct {
	Kind        GoalKind
	TargetPoint grid.Point
	HasTarget   bool
	TargetID    string
	Reason      string
	StartTurn   uint64
}

// WithTarget returns a copy of g with a target point set.
func (g Goal) WithTarget(p grid.Point) Goal {
	g.TargetPoint = p
	g.HasTarget = true
	return g
}

// SameTarget reports whether g and other name the same target point
// (both present and equal, or both absent) — used by §4.G's "cached
// flow grid is stale if goal target moved" check.
func (g Goal) SameTarget(other Goal) bool {
	if g.HasTarget != other.HasTarget {
		return false
	}
	if !g.HasTarget {
		return true
	}
	return g.TargetPoint.Equals(other.TargetPoint)
}
