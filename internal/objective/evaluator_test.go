package objective

import (
	"testing"

	"github.com/pfassina/grimdark/internal/domain"
	"github.com/pfassina/grimdark/internal/events"
)

type fakeView struct {
	alive     map[domain.EntityID]bool
	positions map[domain.EntityID]domain.Vector2
	counts    map[domain.Team]int
}

func newFakeView() *fakeView {
	return &fakeView{
		alive:     make(map[domain.EntityID]bool),
		positions: make(map[domain.EntityID]domain.Vector2),
		counts:    make(map[domain.Team]int),
	}
}

func (v *fakeView) AliveCount(team domain.Team) int { return v.counts[team] }
func (v *fakeView) IsAlive(id domain.EntityID) bool { return v.alive[id] }
func (v *fakeView) PositionOf(id domain.EntityID) (domain.Vector2, bool) {
	p, ok := v.positions[id]
	return p, ok
}

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return r
}

func TestDefeatAllEnemiesFiresOnLastEnemyDefeated(t *testing.T) {
	view := newFakeView()
	view.counts[domain.TeamEnemy] = 0
	obj := NewDefeatAllEnemies("wipe_enemies")
	ev := NewEvaluator(newTestRegistry(t), view, []*Objective{obj})
	bus := events.NewBus()

	var completed *events.ObjectiveCompleted
	bus.Subscribe(domain.EventObjectiveCompleted, 0, events.Typed(func(p events.ObjectiveCompleted) {
		completed = &p
	}))
	ev.Subscribe(bus)

	bus.Publish(domain.EventUnitDefeated, events.UnitDefeated{Unit: 2, AtTick: 5})
	if completed == nil {
		t.Fatal("expected ObjectiveCompleted to fire")
	}
	if completed.Name != "wipe_enemies" {
		t.Fatalf("unexpected objective name %q", completed.Name)
	}
	if !obj.resolved {
		t.Fatal("expected objective marked resolved")
	}
}

func TestProtectUnitFailsOnDefenderDeath(t *testing.T) {
	view := newFakeView()
	view.alive[7] = false
	obj := NewProtectUnit("protect_vip", 7)
	ev := NewEvaluator(newTestRegistry(t), view, []*Objective{obj})
	bus := events.NewBus()

	var failed *events.ObjectiveFailed
	bus.Subscribe(domain.EventObjectiveFailed, 0, events.Typed(func(p events.ObjectiveFailed) {
		failed = &p
	}))
	ev.Subscribe(bus)

	bus.Publish(domain.EventUnitDefeated, events.UnitDefeated{Unit: 7, AtTick: 3})
	if failed == nil {
		t.Fatal("expected ObjectiveFailed to fire")
	}
}

func TestTurnLimitFiresWhenTickReached(t *testing.T) {
	view := newFakeView()
	obj := NewTurnLimit("out_of_time", 20)
	ev := NewEvaluator(newTestRegistry(t), view, []*Objective{obj})
	bus := events.NewBus()

	var failed bool
	bus.Subscribe(domain.EventObjectiveFailed, 0, events.Typed(func(p events.ObjectiveFailed) {
		failed = true
	}))
	ev.Subscribe(bus)

	bus.Publish(domain.EventTurnEnded, events.TurnEnded{Unit: 1, Tick: 19})
	if failed {
		t.Fatal("did not expect objective to fire before target tick")
	}
	bus.Publish(domain.EventTurnEnded, events.TurnEnded{Unit: 1, Tick: 20})
	if !failed {
		t.Fatal("expected objective to fire once now >= target_tick")
	}
}

func TestReachPositionRequiresExactTile(t *testing.T) {
	view := newFakeView()
	view.positions[9] = domain.Vector2{X: 3, Y: 3}
	obj := NewReachPosition("extract", 9, domain.Vector2{X: 14, Y: 0})
	ev := NewEvaluator(newTestRegistry(t), view, []*Objective{obj})
	bus := events.NewBus()

	var completed bool
	bus.Subscribe(domain.EventObjectiveCompleted, 0, events.Typed(func(p events.ObjectiveCompleted) {
		completed = true
	}))
	ev.Subscribe(bus)

	bus.Publish(domain.EventUnitMoved, events.UnitMoved{Unit: 9, From: domain.Vector2{X: 2, Y: 3}, To: domain.Vector2{X: 3, Y: 3}})
	if completed {
		t.Fatal("did not expect completion away from target")
	}

	view.positions[9] = domain.Vector2{X: 14, Y: 0}
	bus.Publish(domain.EventUnitMoved, events.UnitMoved{Unit: 9, From: domain.Vector2{X: 13, Y: 0}, To: domain.Vector2{X: 14, Y: 0}})
	if !completed {
		t.Fatal("expected completion once unit occupies target tile")
	}
}

func TestPositionCapturedRequiresFullTurnOfOccupancy(t *testing.T) {
	view := newFakeView()
	target := domain.Vector2{X: 5, Y: 5}
	obj := NewPositionCaptured("hold_point", target)
	ev := NewEvaluator(newTestRegistry(t), view, []*Objective{obj})
	bus := events.NewBus()

	var completed bool
	bus.Subscribe(domain.EventObjectiveCompleted, 0, events.Typed(func(p events.ObjectiveCompleted) {
		completed = true
	}))
	ev.Subscribe(bus)

	bus.Publish(domain.EventUnitMoved, events.UnitMoved{Unit: 1, From: domain.Vector2{X: 4, Y: 5}, To: target})
	bus.Publish(domain.EventTurnEnded, events.TurnEnded{Unit: 1, Tick: 1})
	if !completed {
		t.Fatal("expected position_captured to complete after one full turn of occupancy")
	}
}

func TestResolvedObjectiveDoesNotRefire(t *testing.T) {
	view := newFakeView()
	view.counts[domain.TeamEnemy] = 0
	obj := NewDefeatAllEnemies("wipe_enemies")
	ev := NewEvaluator(newTestRegistry(t), view, []*Objective{obj})
	bus := events.NewBus()

	fireCount := 0
	bus.Subscribe(domain.EventObjectiveCompleted, 0, events.Typed(func(p events.ObjectiveCompleted) {
		fireCount++
	}))
	ev.Subscribe(bus)

	bus.Publish(domain.EventUnitDefeated, events.UnitDefeated{Unit: 1, AtTick: 1})
	bus.Publish(domain.EventUnitDefeated, events.UnitDefeated{Unit: 2, AtTick: 2})
	if fireCount != 1 {
		t.Fatalf("expected exactly one fire, got %d", fireCount)
	}
}
