package engine

import (
	"github.com/pfassina/grimdark/internal/domain"
	"github.com/pfassina/grimdark/internal/events"
)

// EscalationHook is a seam for a future battle-length escalation
// system (grounded on original_source/game/escalation_manager.py) —
// hazards/escalation are out of scope here (spec §1's Non-goals), so
// this only subscribes and does nothing, keeping the wiring point
// alive without any mechanic behind it.
type EscalationHook struct{}

func newEscalationHook(bus *events.Bus) *EscalationHook {
	h := &EscalationHook{}
	bus.Subscribe(domain.EventTurnEnded, 0, events.Typed(func(events.TurnEnded) {}))
	return h
}
