package engine

import (
	"context"
	"testing"
	"time"

	"github.com/pfassina/grimdark/internal/action"
	"github.com/pfassina/grimdark/internal/domain"
	"github.com/pfassina/grimdark/internal/scenario"
)

// soloState builds a one-unit battle: a single enemy unit alone on the
// map, so ai.Controller.Decide has no target and always falls back to
// Wait (internal/ai/controller.go's candidates with no live opponent).
func soloState(t *testing.T) *GameState {
	t.Helper()
	plan := twoUnitPlan()
	plan.UnitDefs = plan.UnitDefs[1:]     // drop "hero", keep "grunt"
	plan.Placements = plan.Placements[1:] // matching placement only
	plan.Objectives = scenario.ObjectiveSpec{
		Victory: []scenario.PredicateSpec{{Kind: "all_units_defeated"}},
		Defeat:  []scenario.PredicateSpec{{Kind: "all_units_defeated"}},
	}
	state, err := Materialize(plan, 7)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	return state
}

func soloUnit(state *GameState) *domain.Entity {
	for _, e := range state.Units() {
		return e
	}
	return nil
}

func TestRunActivationAIFallsBackToWaitWithNoTarget(t *testing.T) {
	state := soloState(t)
	inst := NewInstance(state, "solo", 1)
	unit := soloUnit(state)
	if unit == nil {
		t.Fatal("expected one unit on the map")
	}

	weight, err := inst.runActivation(context.Background(), unit, true)
	if err != nil {
		t.Fatalf("runActivation: %v", err)
	}
	if weight != domain.ActionWait.BaseWeight() {
		t.Fatalf("weight = %d, want ActionWait.BaseWeight() = %d", weight, domain.ActionWait.BaseWeight())
	}
}

func TestRunActivationHumanWaitCommand(t *testing.T) {
	state := soloState(t)
	inst := NewInstance(state, "solo", 1)
	unit := soloUnit(state)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	done := make(chan struct{})
	var weight domain.Weight
	var runErr error
	go func() {
		weight, runErr = inst.runActivation(ctx, unit, false)
		close(done)
	}()

	if err := inst.Submit(ctx, Command{Action: domain.ActionWait, Target: action.Target{}}); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	select {
	case <-done:
	case <-ctx.Done():
		t.Fatal("runActivation did not return after a Wait command was submitted")
	}

	if runErr != nil {
		t.Fatalf("runActivation: %v", runErr)
	}
	if weight != domain.ActionWait.BaseWeight() {
		t.Fatalf("weight = %d, want %d", weight, domain.ActionWait.BaseWeight())
	}
}

func TestRunActivationRecordsActionForReplay(t *testing.T) {
	state := soloState(t)
	inst := NewInstance(state, "solo", 1)
	unit := soloUnit(state)

	if _, err := inst.runActivation(context.Background(), unit, true); err != nil {
		t.Fatalf("runActivation: %v", err)
	}

	session := inst.Recorder().Session()
	if len(session.Actions) != 1 {
		t.Fatalf("recorded %d actions, want 1", len(session.Actions))
	}
	if session.Actions[0].Action != domain.ActionWait {
		t.Fatalf("recorded action = %v, want ActionWait", session.Actions[0].Action)
	}
}
