package agent

import (
	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/deepburrow/borgcore/action"
	"github.com/deepburrow/borgcore/danger"
)

// refModule namespaces every ref this package publishes.
const refModule = "borgcore"

// Refs identifying each decision-trace event, exported so a host can
// subscribe to them on its own bus.
var (
	TierChangedRef    = &core.Ref{Module: refModule, Type: "decision", Value: "tier_changed"}
	GoalChangedRef    = &core.Ref{Module: refModule, Type: "decision", Value: "goal_changed"}
	ActionSelectedRef = &core.Ref{Module: refModule, Type: "decision", Value: "action_selected"}
)

// TierChangedEvent fires when the danger tier computed this tick
// differs from the previous tick's, for decision-trace observability.
type TierChangedEvent struct {
	*events.BaseEvent
	From danger.Tier
	To   danger.Tier
	Turn uint64
}

// NewTierChangedEvent builds a TierChangedEvent.
func NewTierChangedEvent(from, to danger.Tier, turn uint64) *TierChangedEvent {
	return &TierChangedEvent{BaseEvent: events.NewBaseEvent(TierChangedRef), From: from, To: to, Turn: turn}
}

// GoalChangedEvent fires when the goal arbiter's chosen goal kind
// differs from the goal in effect on the previous tick.
type GoalChangedEvent struct {
	*events.BaseEvent
	From   action.GoalKind
	To     action.GoalKind
	Reason string
	Turn   uint64
}

// NewGoalChangedEvent builds a GoalChangedEvent.
func NewGoalChangedEvent(from, to action.GoalKind, reason string, turn uint64) *GoalChangedEvent {
	return &GoalChangedEvent{BaseEvent: events.NewBaseEvent(GoalChangedRef), From: from, To: to, Reason: reason, Turn: turn}
}

// ActionSelectedEvent fires once per tick with the action Decide
// returned, the decision trace's final record.
type ActionSelectedEvent struct {
	*events.BaseEvent
	Action action.Action
	Tier   danger.Tier
	Goal   action.GoalKind
	Turn   uint64
}

// NewActionSelectedEvent builds an ActionSelectedEvent.
func NewActionSelectedEvent(act action.Action, tier danger.Tier, goalKind action.GoalKind, turn uint64) *ActionSelectedEvent {
	return &ActionSelectedEvent{BaseEvent: events.NewBaseEvent(ActionSelectedRef), Action: act, Tier: tier, Goal: goalKind, Turn: turn}
}

// publish is a nil-safe wrapper: Decide works without a bus wired in
// (e.g. in tests), since decision-trace publishing is observability,
// not control flow.
func publish(bus events.EventBus, evt events.Event) {
	if bus == nil {
		return
	}
	_ = bus.Publish(evt)
}
