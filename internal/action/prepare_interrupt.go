package action

import (
	"github.com/pfassina/grimdark/internal/domain"
	"github.com/pfassina/grimdark/internal/events"
)

// PrepareInterruptAction stores a PreparedAction on the actor's
// Interrupt component, overwriting any prior one (spec §3.3 caps a
// unit at one prepared action; §4.2's PrepareInterrupt contract).
// The trigger predicate is carried on the action value itself
// (TriggerSpec); the Target argument is ignored.
type PrepareInterruptAction struct {
	TriggerSpec     domain.TriggerPredicate
	InterruptAction domain.ActionType
	Priority        int
}

func (PrepareInterruptAction) Type() domain.ActionType { return domain.ActionPrepareInterrupt }

func (a PrepareInterruptAction) Validate(actorID domain.EntityID, _ Target, state State) ActionValidation {
	actor, ok := state.Entity(actorID)
	if !ok {
		return ActionValidation{Reason: domain.ValidationTargetInvalid}
	}
	if actor.Status.HasActed {
		return ActionValidation{Reason: domain.ValidationAlreadyActed}
	}
	return ActionValidation{Ok: true, Reason: domain.ValidationOK}
}

func (a PrepareInterruptAction) Execute(actorID domain.EntityID, _ Target, state State) ActionResult {
	actor, _ := state.Entity(actorID)
	actor.Interrupt = &domain.InterruptComponent{
		Prepared: &domain.PreparedAction{
			Trigger:         a.TriggerSpec,
			InterruptAction: a.InterruptAction,
			Priority:        a.Priority,
			UsesLeft:        1,
		},
	}
	actor.Status.HasActed = true
	weight := EffectiveWeight(domain.ActionPrepareInterrupt.BaseWeight(), actor)

	state.Bus().Publish(domain.EventInterruptPrepared, events.InterruptPrepared{
		Unit: actorID, Priority: a.Priority,
	})
	state.Bus().Publish(domain.EventActionExecuted, events.ActionExecuted{
		Unit: actorID, Action: domain.ActionPrepareInterrupt, WeightSpent: weight,
	})
	return ActionResult{WeightSpent: weight}
}
