// Package phase implements the battle phase state machine: a closed
// automaton transitioned only by events, never by direct assignment
// (spec §4.5). Grounded on the teacher's habit of carrying a small
// closed state enum with a String() method next to the struct it
// describes (domain.AIComponent.State, "IDLE"/... in
// internal/domain/components.go) generalized into a dedicated
// transition-table type, since the battle phase's transition rules are
// considerably richer than a single free-form status string.
package phase

import "github.com/pfassina/grimdark/internal/domain"

// BattlePhase closes the set of sub-phases active while
// domain.GamePhase is Battle (spec §3.5).
type BattlePhase uint8

const (
	PhaseTimelineProcessing BattlePhase = iota
	PhaseUnitSelection
	PhaseUnitMoving
	PhaseActionSelection
	PhaseActionTargeting
	PhaseActionExecuting
	PhaseInspect
)

func (p BattlePhase) String() string {
	switch p {
	case PhaseTimelineProcessing:
		return "TimelineProcessing"
	case PhaseUnitSelection:
		return "UnitSelection"
	case PhaseUnitMoving:
		return "UnitMoving"
	case PhaseActionSelection:
		return "ActionSelection"
	case PhaseActionTargeting:
		return "ActionTargeting"
	case PhaseActionExecuting:
		return "ActionExecuting"
	case PhaseInspect:
		return "Inspect"
	default:
		return "Unknown"
	}
}

// Trigger closes the set of inputs the machine reacts to. Most carry a
// domain.EventKind straight off the bus; UnitSelected and
// TargetConfirmed have no bus event of their own — they are
// confirmation signals from the selection/combat managers reacting to
// the §6.1 input interface (Confirm), not simulation events, so they
// get dedicated boolean triggers instead of a synthetic EventKind.
type Trigger struct {
	Event           domain.EventKind
	Action          domain.ActionType // only meaningful for EventActionSelected
	IsAI            bool              // only meaningful for EventTurnStarted
	UnitSelected    bool
	TargetConfirmed bool
}

// Machine holds the current phase and the phase stacked beneath an
// active Inspect overlay (spec: "Inspect (previous phase stored)").
type Machine struct {
	current  BattlePhase
	preInspect BattlePhase
}

func NewMachine() *Machine {
	return &Machine{current: PhaseTimelineProcessing}
}

func (m *Machine) Current() BattlePhase { return m.current }

// Apply advances the machine given a trigger, returning the resulting
// phase. Direct assignment to Current is not exposed — Apply is the
// only mutation path, per spec §4.5.
func (m *Machine) Apply(t Trigger) BattlePhase {
	if t.Event == domain.EventObjectiveCompleted || t.Event == domain.EventObjectiveFailed {
		// "any Battle" -> GameOver is represented at the engine level
		// (domain.GamePhase), not as a BattlePhase; callers check the
		// event and switch GameState.Phase themselves. The sub-phase
		// is left as-is so a final render snapshot still reflects
		// what was happening when the battle ended.
		return m.current
	}

	switch {
	case m.current == PhaseTimelineProcessing && t.Event == domain.EventTurnStarted:
		if t.IsAI {
			m.current = PhaseActionExecuting
		} else {
			m.current = PhaseUnitSelection
		}
		return m.current

	case m.current == PhaseUnitSelection && t.UnitSelected:
		m.current = PhaseUnitMoving
		return m.current

	case m.current == PhaseUnitMoving && t.Event == domain.EventMovementCompleted:
		m.current = PhaseActionSelection
		return m.current

	case m.current == PhaseUnitMoving && t.Event == domain.EventActionSelected && t.Action == domain.ActionWait:
		m.current = PhaseActionExecuting
		return m.current

	case m.current == PhaseUnitMoving && t.Event == domain.EventActionSelected && t.Action == domain.ActionQuickStrike:
		m.current = PhaseActionTargeting
		return m.current

	case m.current == PhaseActionSelection && t.Event == domain.EventActionSelected:
		m.current = PhaseActionTargeting
		return m.current

	case m.current == PhaseActionTargeting && t.TargetConfirmed:
		m.current = PhaseActionExecuting
		return m.current

	case m.current == PhaseActionExecuting && t.Event == domain.EventActionExecuted:
		m.current = PhaseTimelineProcessing
		return m.current
	}

	return m.current
}

// Cancel implements the two Cancel rows of spec §4.5's table:
// ActionSelection -> UnitMoving (restore pre-move position, handled by
// the selection manager) and ActionTargeting -> ActionSelection.
func (m *Machine) Cancel() BattlePhase {
	switch m.current {
	case PhaseActionSelection:
		m.current = PhaseUnitMoving
	case PhaseActionTargeting:
		m.current = PhaseActionSelection
	}
	return m.current
}

// ToggleInspect enters Inspect from any Battle phase, storing the
// phase to restore; calling it again while in Inspect restores that
// phase (spec §4.5's "Inspect (previous phase stored)" / "Inspect ->
// InspectToggled -> previous").
func (m *Machine) ToggleInspect() BattlePhase {
	if m.current == PhaseInspect {
		m.current = m.preInspect
		return m.current
	}
	m.preInspect = m.current
	m.current = PhaseInspect
	return m.current
}
