package objective

import (
	"github.com/pfassina/grimdark/internal/domain"
	"github.com/pfassina/grimdark/internal/events"
)

// StateView is the narrow read-only slice of GameState the evaluator
// needs. Kept separate from internal/engine.GameState (a structural
// interface, same pattern as internal/action.State) so this package
// has no import-cycle dependency on the engine that will construct it.
type StateView interface {
	AliveCount(team domain.Team) int
	IsAlive(id domain.EntityID) bool
	PositionOf(id domain.EntityID) (domain.Vector2, bool)
}

// Evaluator holds the battle's objective list and re-checks only the
// objectives a given incoming event kind can affect (spec §4.9:
// "evaluated on receipt of relevant events; subscribed, not polled").
type Evaluator struct {
	registry   *Registry
	view       StateView
	objectives []*Objective
}

func NewEvaluator(registry *Registry, view StateView, objectives []*Objective) *Evaluator {
	return &Evaluator{registry: registry, view: view, objectives: objectives}
}

// Subscribe wires the evaluator into bus at a priority high enough to
// run before lower-priority log/render listeners observe the same
// event, so ObjectiveCompleted/Failed is published in the same tick as
// its trigger.
func (e *Evaluator) Subscribe(bus *events.Bus) {
	bus.Subscribe(domain.EventUnitDefeated, 100, events.Typed(func(p events.UnitDefeated) {
		e.recheck(domain.EventUnitDefeated, p.AtTick, bus)
	}))
	bus.Subscribe(domain.EventTurnEnded, 100, events.Typed(func(p events.TurnEnded) {
		e.advanceCaptureClock()
		e.recheck(domain.EventTurnEnded, p.Tick, bus)
	}))
	bus.Subscribe(domain.EventUnitMoved, 100, events.Typed(func(p events.UnitMoved) {
		e.trackCapture(p)
		e.recheck(domain.EventUnitMoved, 0, bus)
	}))
}

// trackCapture updates position_captured's occupancy flag whenever a
// unit enters or leaves the target tile; advanceCaptureClock (run on
// every TurnEnded) turns "occupied through one whole turn" into the
// captured predicate.
func (e *Evaluator) trackCapture(p events.UnitMoved) {
	for _, o := range e.objectives {
		if o.Kind != KindPositionCaptured || o.resolved {
			continue
		}
		if p.To.Equals(o.TargetPosition) {
			o.occupied = true
		} else if p.From.Equals(o.TargetPosition) {
			o.occupied = false
			o.turnsOccupied = 0
		}
	}
}

func (e *Evaluator) advanceCaptureClock() {
	for _, o := range e.objectives {
		if o.Kind != KindPositionCaptured || o.resolved {
			continue
		}
		if o.occupied {
			o.turnsOccupied++
		} else {
			o.turnsOccupied = 0
		}
	}
}

func (e *Evaluator) recheck(trigger domain.EventKind, now domain.Tick, bus *events.Bus) {
	for _, o := range e.objectives {
		if o.resolved {
			continue
		}
		if !contains(o.Kind.triggerEvents(), trigger) {
			continue
		}
		ok, err := e.evaluate(o, now)
		if err != nil || !ok {
			continue
		}
		o.resolved = true
		switch o.Bucket {
		case BucketVictory:
			bus.Publish(domain.EventObjectiveCompleted, events.ObjectiveCompleted{Name: o.Name, Tick: now})
		case BucketDefeat:
			bus.Publish(domain.EventObjectiveFailed, events.ObjectiveFailed{Name: o.Name, Tick: now})
		}
	}
}

func (e *Evaluator) evaluate(o *Objective, now domain.Tick) (bool, error) {
	switch o.Kind {
	case KindDefeatAllEnemies:
		return e.registry.Eval("alive_enemies == 0", map[string]any{
			"alive_enemies": int64(e.view.AliveCount(domain.TeamEnemy)),
		})
	case KindAllUnitsDefeated:
		return e.registry.Eval("alive_players == 0", map[string]any{
			"alive_players": int64(e.view.AliveCount(domain.TeamPlayer)),
		})
	case KindSurviveTurns, KindTurnLimit:
		return e.registry.Eval("now >= target_tick", map[string]any{
			"now":         int64(now),
			"target_tick": int64(o.TargetTick),
		})
	case KindDefeatUnit:
		return e.registry.Eval("!unit_alive", map[string]any{
			"unit_alive": e.view.IsAlive(o.TargetUnit),
		})
	case KindProtectUnit:
		return e.registry.Eval("!unit_alive", map[string]any{
			"unit_alive": e.view.IsAlive(o.TargetUnit),
		})
	case KindReachPosition:
		pos, alive := e.view.PositionOf(o.TargetUnit)
		if !alive {
			return false, nil
		}
		return e.registry.Eval("unit_pos.x == target_pos.x && unit_pos.y == target_pos.y", map[string]any{
			"unit_pos":   map[string]int64{"x": int64(pos.X), "y": int64(pos.Y)},
			"target_pos": map[string]int64{"x": int64(o.TargetPosition.X), "y": int64(o.TargetPosition.Y)},
		})
	case KindPositionCaptured:
		return e.registry.Eval("captured == true", map[string]any{"captured": o.turnsOccupied >= 1})
	default:
		return false, nil
	}
}

func contains(ks []domain.EventKind, k domain.EventKind) bool {
	for _, x := range ks {
		if x == k {
			return true
		}
	}
	return false
}
