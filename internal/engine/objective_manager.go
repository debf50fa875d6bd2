package engine

import (
	"github.com/pfassina/grimdark/internal/domain"
	"github.com/pfassina/grimdark/internal/events"
	"github.com/pfassina/grimdark/internal/objective"
)

// ObjectiveManager wraps the compiled objective list for one battle
// and records the outcome once a victory/defeat predicate fires (spec
// §4.9). The actual predicate re-checking lives in
// objective.Evaluator; this type only owns the registry/evaluator
// pair and the terminal-outcome flag the engine's phase driver reads
// to flip GameState.phase to GameOver.
type ObjectiveManager struct {
	registry  *objective.Registry
	evaluator *objective.Evaluator

	concluded bool
	bucket    objective.Bucket
	name      string
}

// newObjectiveManager compiles objs against view, subscribes the
// evaluator to bus, and installs the terminal-outcome listener ahead
// of the engine's own phase-driver handler (spec §4.9: "emit
// ObjectiveCompleted/Failed... Phase SM transitions to GameOver") —
// priority 70, so this latch is populated before wirePhaseDriver's
// priority-60 concludeBattle reads Concluded().
func newObjectiveManager(objs []*objective.Objective, view objective.StateView, bus *events.Bus) (*ObjectiveManager, error) {
	registry, err := objective.NewRegistry()
	if err != nil {
		return nil, err
	}
	om := &ObjectiveManager{registry: registry, evaluator: objective.NewEvaluator(registry, view, objs)}
	om.evaluator.Subscribe(bus)

	bus.Subscribe(domain.EventObjectiveCompleted, 70, events.Typed(func(p events.ObjectiveCompleted) {
		om.conclude(objective.BucketVictory, p.Name)
	}))
	bus.Subscribe(domain.EventObjectiveFailed, 70, events.Typed(func(p events.ObjectiveFailed) {
		om.conclude(objective.BucketDefeat, p.Name)
	}))
	return om, nil
}

func (om *ObjectiveManager) conclude(bucket objective.Bucket, name string) {
	if om.concluded {
		return
	}
	om.concluded = true
	om.bucket = bucket
	om.name = name
}

// Concluded reports whether a victory/defeat predicate has fired, and
// which bucket/objective name triggered it.
func (om *ObjectiveManager) Concluded() (bucket objective.Bucket, name string, ok bool) {
	return om.bucket, om.name, om.concluded
}
