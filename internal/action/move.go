package action

import (
	"github.com/pfassina/grimdark/internal/domain"
	"github.com/pfassina/grimdark/internal/events"
	"github.com/pfassina/grimdark/internal/pathfind"
)

// MoveAction implements spec §4.2's Move contract. Target must carry a
// Pos (the path destination); HasEntity is ignored.
type MoveAction struct{}

func (MoveAction) Type() domain.ActionType { return domain.ActionMove }

func (MoveAction) Validate(actorID domain.EntityID, target Target, state State) ActionValidation {
	actor, ok := state.Entity(actorID)
	if !ok || !target.HasPos {
		return ActionValidation{Reason: domain.ValidationTargetInvalid}
	}
	if !state.Map().InBounds(target.Pos) {
		return ActionValidation{Reason: domain.ValidationTargetInvalid}
	}
	if state.Map().IsOccupied(target.Pos) {
		return ActionValidation{Reason: domain.ValidationTargetOccupied}
	}

	reachable := pathfind.Reachable(state.Map(), actor.Movement.Position, actor.Movement.MovementPoints, func(p domain.Vector2) bool {
		id, occupied := state.Map().OccupantAt(p)
		if !occupied {
			return false
		}
		other, ok := state.Entity(id)
		return ok && other.IsAlive()
	})
	if !reachable.Contains(target.Pos) {
		return ActionValidation{Reason: domain.ValidationInsufficientMovement}
	}
	return ActionValidation{Ok: true, Reason: domain.ValidationOK, Cost: reachable.Cost[target.Pos]}
}

func (m MoveAction) Execute(actorID domain.EntityID, target Target, state State) ActionResult {
	actor, _ := state.Entity(actorID)
	from := actor.Movement.Position

	reachable := pathfind.Reachable(state.Map(), from, actor.Movement.MovementPoints, func(p domain.Vector2) bool {
		id, occupied := state.Map().OccupantAt(p)
		if !occupied {
			return false
		}
		other, ok := state.Entity(id)
		return ok && other.IsAlive()
	})
	path := reachable.Path[target.Pos]
	cost := reachable.Cost[target.Pos]

	state.Map().Move(actorID, from, target.Pos)
	actor.Movement.Position = target.Pos
	actor.Movement.MovementPoints -= cost
	actor.Status.HasMoved = true

	state.Bus().Publish(domain.EventUnitMoved, events.UnitMoved{
		Unit: actorID, From: from, To: target.Pos, Path: path, Cost: cost,
	})
	state.Bus().Publish(domain.EventMovementCompleted, events.MovementCompleted{
		Unit: actorID, At: target.Pos,
	})

	// Move does not itself consume a timeline entry (spec §4.2); the
	// caller (engine's action manager) only reschedules on a
	// terminating action, so WeightSpent is intentionally zero here.
	return ActionResult{WeightSpent: 0}
}
