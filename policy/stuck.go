package policy

import (
	"github.com/deepburrow/borgcore/action"
	"github.com/deepburrow/borgcore/query"
)

// Stuck-exploration escalation thresholds, per spec.md §4.D.5.
const (
	detectStairsTurns  = 300
	magicMappingTurns  = 500
	teleportLevelTurns = 700
	magicMappingExplorationCeiling = 0.60
)

// StuckEscalation implements spec.md §4.D.5.
func StuckEscalation(in Input) (action.Action, bool) {
	if in.TurnsOnLevel >= teleportLevelTurns {
		if item, ok := query.FindTeleportLevelScroll(in.Character); ok {
			return action.Use(item.ID), true
		}
	}
	if in.TurnsOnLevel >= magicMappingTurns && in.ExplorationRatio < magicMappingExplorationCeiling {
		if item, ok := query.FindMagicMappingScroll(in.Character); ok {
			return action.Use(item.ID), true
		}
	}
	if in.TurnsOnLevel >= detectStairsTurns && !in.KnownStairsDown {
		if item, ok := query.FindDetectStairsScroll(in.Character); ok {
			return action.Use(item.ID), true
		}
	}
	return action.Action{}, false
}
