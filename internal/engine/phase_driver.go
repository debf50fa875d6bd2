package engine

import (
	"github.com/pfassina/grimdark/internal/domain"
	"github.com/pfassina/grimdark/internal/events"
	"github.com/pfassina/grimdark/internal/phase"
)

// wirePhaseDriver subscribes battlePhase's bus-driven transitions (spec
// §4.5's table rows keyed off a domain.EventKind) and the GamePhase
// Battle -> GameOver flip once the objective manager latches a
// terminal outcome. UnitSelected/TargetConfirmed are applied directly
// inline in SelectionManager.Select/CombatManager.Confirm, since those
// triggers have no bus event of their own (see phase.Trigger's doc).
func wirePhaseDriver(s *GameState) {
	bus := s.bus

	bus.Subscribe(domain.EventTurnStarted, 10, events.Typed(func(p events.TurnStarted) {
		unit, ok := s.Entity(p.Unit)
		isAI := ok && unit.AI != nil
		s.battlePhase.Apply(phase.Trigger{Event: domain.EventTurnStarted, IsAI: isAI})
	}))

	bus.Subscribe(domain.EventMovementCompleted, 10, events.Typed(func(p events.MovementCompleted) {
		s.battlePhase.Apply(phase.Trigger{Event: domain.EventMovementCompleted})
	}))

	bus.Subscribe(domain.EventActionSelected, 10, events.Typed(func(p events.ActionSelected) {
		s.battlePhase.Apply(phase.Trigger{Event: domain.EventActionSelected, Action: p.Action})
	}))

	bus.Subscribe(domain.EventActionExecuted, 10, events.Typed(func(p events.ActionExecuted) {
		s.battlePhase.Apply(phase.Trigger{Event: domain.EventActionExecuted})
	}))

	bus.Subscribe(domain.EventObjectiveCompleted, 60, events.Typed(func(p events.ObjectiveCompleted) {
		s.concludeBattle()
	}))
	bus.Subscribe(domain.EventObjectiveFailed, 60, events.Typed(func(p events.ObjectiveFailed) {
		s.concludeBattle()
	}))
}

// concludeBattle flips GamePhase to GameOver once Objectives has
// latched a terminal bucket. Runs at priority 60 — below the
// ObjectiveManager's priority-70 latch (events.Bus runs higher
// priorities first; see Subscribe's doc) so Objectives.Concluded is
// already populated by the time this handler reads it.
func (s *GameState) concludeBattle() {
	if _, _, ok := s.Objectives.Concluded(); ok {
		s.phase = domain.GamePhaseGameOver
	}
}

// CancelPhase implements the Cancel input's two table rows (spec
// §4.5), restoring the selection manager's pre-move snapshot when
// backing out of ActionSelection.
func (s *GameState) CancelPhase() {
	before := s.battlePhase.Current()
	after := s.battlePhase.Cancel()
	if before == phase.PhaseActionSelection && after == phase.PhaseUnitMoving {
		s.Selection.CancelMove()
	}
	if before == phase.PhaseActionTargeting && after == phase.PhaseActionSelection {
		s.Combat.Clear()
	}
}

// ToggleInspect passes through to the phase machine's Inspect overlay.
func (s *GameState) ToggleInspect() phase.BattlePhase { return s.battlePhase.ToggleInspect() }
