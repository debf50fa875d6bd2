package action

import (
	"testing"

	"github.com/pfassina/grimdark/internal/domain"
	"github.com/pfassina/grimdark/internal/events"
	"github.com/pfassina/grimdark/internal/grid"
)

type fakeState struct {
	entities map[domain.EntityID]*domain.Entity
	m        *grid.Map
	now      domain.Tick
	bus      *events.Bus
	seq      uint64
}

func newFakeState(w, h int) *fakeState {
	tiles := make([][]grid.Tile, h)
	for y := 0; y < h; y++ {
		tiles[y] = make([]grid.Tile, w)
		for x := 0; x < w; x++ {
			tiles[y][x] = grid.Tile{TerrainID: 1, MovementCost: 1}
		}
	}
	return &fakeState{
		entities: make(map[domain.EntityID]*domain.Entity),
		m:        grid.NewMap(tiles),
		bus:      events.NewBus(),
	}
}

func (s *fakeState) Entity(id domain.EntityID) (*domain.Entity, bool) {
	e, ok := s.entities[id]
	return e, ok
}
func (s *fakeState) Map() *grid.Map    { return s.m }
func (s *fakeState) Now() domain.Tick  { return s.now }
func (s *fakeState) Bus() *events.Bus  { return s.bus }
func (s *fakeState) NextSeq() uint64   { s.seq++; return s.seq }

func (s *fakeState) add(e *domain.Entity) {
	s.entities[e.ID] = e
	s.m.Place(e.ID, e.Movement.Position)
}

func fighter(id domain.EntityID, pos domain.Vector2) *domain.Entity {
	return &domain.Entity{
		ID:       id,
		Actor:    domain.ActorComponent{Name: "f", Team: domain.TeamPlayer},
		Health:   domain.HealthComponent{HPMax: 20, HPCurrent: 20},
		Movement: domain.MovementComponent{Position: pos, MovementPoints: 3},
		Combat:   domain.CombatComponent{Strength: 10, Defense: 5, RangeMin: 1, RangeMax: 1},
	}
}

func TestMoveValidateRejectsOutOfBudget(t *testing.T) {
	s := newFakeState(10, 10)
	unit := fighter(1, domain.Vector2{X: 0, Y: 0})
	s.add(unit)

	m := MoveAction{}
	v := m.Validate(1, PosTarget(domain.Vector2{X: 9, Y: 9}), s)
	if v.Ok {
		t.Fatal("expected move far beyond movement points to fail validation")
	}
	if v.Reason != domain.ValidationInsufficientMovement {
		t.Fatalf("expected InsufficientMovement, got %v", v.Reason)
	}
}

func TestMoveExecuteUpdatesPositionAndMapIndex(t *testing.T) {
	s := newFakeState(10, 10)
	unit := fighter(1, domain.Vector2{X: 0, Y: 0})
	s.add(unit)

	m := MoveAction{}
	dest := domain.Vector2{X: 2, Y: 0}
	v := m.Validate(1, PosTarget(dest), s)
	if !v.Ok {
		t.Fatalf("expected move within budget to validate, reason=%v", v.Reason)
	}
	m.Execute(1, PosTarget(dest), s)

	if unit.Movement.Position != dest {
		t.Fatalf("expected position updated to %v, got %v", dest, unit.Movement.Position)
	}
	if !unit.Status.HasMoved {
		t.Fatal("expected HasMoved set")
	}
	if !s.m.IsOccupied(dest) {
		t.Fatal("expected map index updated to new position")
	}
	if s.m.IsOccupied(domain.Vector2{X: 0, Y: 0}) {
		t.Fatal("expected origin vacated")
	}
}

func TestStandardAttackOutOfRangeFailsValidation(t *testing.T) {
	s := newFakeState(10, 10)
	attacker := fighter(1, domain.Vector2{X: 0, Y: 0})
	defender := fighter(2, domain.Vector2{X: 5, Y: 5})
	s.add(attacker)
	s.add(defender)

	atk := NewStandardAttack()
	v := atk.Validate(1, EntityTarget(2), s)
	if v.Ok {
		t.Fatal("expected distant target to fail range validation")
	}
	if v.Reason != domain.ValidationOutOfRange {
		t.Fatalf("expected OutOfRange, got %v", v.Reason)
	}
}

func TestStandardAttackExecuteDamagesDefender(t *testing.T) {
	s := newFakeState(10, 10)
	attacker := fighter(1, domain.Vector2{X: 0, Y: 0})
	defender := fighter(2, domain.Vector2{X: 1, Y: 0})
	s.add(attacker)
	s.add(defender)

	atk := NewStandardAttack()
	v := atk.Validate(1, EntityTarget(2), s)
	if !v.Ok {
		t.Fatalf("expected adjacent target to validate, reason=%v", v.Reason)
	}
	res := atk.Execute(1, EntityTarget(2), s)

	if defender.Health.HPCurrent >= defender.Health.HPMax {
		t.Fatalf("expected defender to take damage, hp=%d", defender.Health.HPCurrent)
	}
	if res.DamageDone <= 0 {
		t.Fatalf("expected positive DamageDone, got %d", res.DamageDone)
	}
	if !attacker.Status.HasActed {
		t.Fatal("expected attacker HasActed set")
	}
}

func TestWaitAlwaysSucceeds(t *testing.T) {
	s := newFakeState(5, 5)
	unit := fighter(1, domain.Vector2{X: 0, Y: 0})
	s.add(unit)

	w := WaitAction{}
	v := w.Validate(1, Target{}, s)
	if !v.Ok {
		t.Fatal("expected wait to always validate")
	}
	res := w.Execute(1, Target{}, s)
	if res.WeightSpent != domain.WeightWait {
		t.Fatalf("expected base wait weight, got %d", res.WeightSpent)
	}
}

func TestCatalogReturnsRegisteredActions(t *testing.T) {
	c := NewCatalog()
	if c.Get(domain.ActionMove) == nil {
		t.Fatal("expected Move registered")
	}
	if c.Get(domain.ActionWait) == nil {
		t.Fatal("expected Wait registered")
	}
	if c.Get(domain.ActionUnknown) != nil {
		t.Fatal("expected Unknown unregistered")
	}
}
