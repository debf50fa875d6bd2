package action

import (
	"github.com/pfassina/grimdark/internal/domain"
	"github.com/pfassina/grimdark/internal/events"
)

// WaitAction has no target and always succeeds (spec §4.2).
type WaitAction struct{}

func (WaitAction) Type() domain.ActionType { return domain.ActionWait }

func (WaitAction) Validate(actorID domain.EntityID, _ Target, state State) ActionValidation {
	if _, ok := state.Entity(actorID); !ok {
		return ActionValidation{Reason: domain.ValidationTargetInvalid}
	}
	return ActionValidation{Ok: true, Reason: domain.ValidationOK}
}

func (WaitAction) Execute(actorID domain.EntityID, _ Target, state State) ActionResult {
	actor, _ := state.Entity(actorID)
	actor.Status.HasActed = true
	weight := EffectiveWeight(domain.ActionWait.BaseWeight(), actor)

	state.Bus().Publish(domain.EventActionExecuted, events.ActionExecuted{
		Unit: actorID, Action: domain.ActionWait, WeightSpent: weight,
	})
	return ActionResult{WeightSpent: weight}
}
