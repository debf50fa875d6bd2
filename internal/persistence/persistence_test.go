package persistence

import (
	"path/filepath"
	"testing"

	"github.com/pfassina/grimdark/internal/action"
	"github.com/pfassina/grimdark/internal/domain"
	"github.com/pfassina/grimdark/internal/events"
	"github.com/pfassina/grimdark/internal/grid"
)

type fakeState struct {
	entities map[domain.EntityID]*domain.Entity
	m        *grid.Map
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
	return &fakeState{entities: make(map[domain.EntityID]*domain.Entity), m: grid.NewMap(tiles), bus: events.NewBus()}
}

func (s *fakeState) Entity(id domain.EntityID) (*domain.Entity, bool) { e, ok := s.entities[id]; return e, ok }
func (s *fakeState) Map() *grid.Map   { return s.m }
func (s *fakeState) Now() domain.Tick { return 0 }
func (s *fakeState) Bus() *events.Bus { return s.bus }
func (s *fakeState) NextSeq() uint64  { s.seq++; return s.seq }

func (s *fakeState) add(e *domain.Entity) {
	s.entities[e.ID] = e
	s.m.Place(e.ID, e.Movement.Position)
}

func fighter(id domain.EntityID, team domain.Team, pos domain.Vector2) *domain.Entity {
	return &domain.Entity{
		ID:       id,
		Actor:    domain.ActorComponent{Name: "f", Team: team},
		Health:   domain.HealthComponent{HPMax: 20, HPCurrent: 20},
		Movement: domain.MovementComponent{Position: pos, MovementPoints: 3},
		Combat:   domain.CombatComponent{Strength: 10, Defense: 2, RangeMin: 1, RangeMax: 1},
	}
}

func TestEncodeDecodeTargetRoundTrips(t *testing.T) {
	pos := action.PosTarget(domain.Vector2{X: 3, Y: 4})
	raw, err := EncodeTarget(pos)
	if err != nil {
		t.Fatalf("EncodeTarget: %v", err)
	}
	got, err := DecodeTarget(raw)
	if err != nil {
		t.Fatalf("DecodeTarget: %v", err)
	}
	if !got.HasPos || got.HasEntity || got.Pos != (domain.Vector2{X: 3, Y: 4}) {
		t.Fatalf("unexpected round trip: %+v", got)
	}

	ent := action.EntityTarget(7)
	raw, err = EncodeTarget(ent)
	if err != nil {
		t.Fatalf("EncodeTarget: %v", err)
	}
	got, err = DecodeTarget(raw)
	if err != nil {
		t.Fatalf("DecodeTarget: %v", err)
	}
	if !got.HasEntity || got.HasPos || got.Entity != 7 {
		t.Fatalf("unexpected round trip: %+v", got)
	}
}

func TestSaveLoadReplayRoundTrips(t *testing.T) {
	movePayload, err := EncodeTarget(action.PosTarget(domain.Vector2{X: 1, Y: 0}))
	if err != nil {
		t.Fatalf("EncodeTarget: %v", err)
	}
	session := &domain.ReplaySession{
		ScenarioID: "ambush",
		Seed:       42,
		Timestamp:  1000,
		Actions: []domain.ReplayAction{
			{Tick: 0, Actor: 1, Action: domain.ActionMove, Payload: movePayload},
		},
	}

	path := filepath.Join(t.TempDir(), "session.json")
	if err := SaveReplay(path, session); err != nil {
		t.Fatalf("SaveReplay: %v", err)
	}

	loaded, err := LoadReplay(path)
	if err != nil {
		t.Fatalf("LoadReplay: %v", err)
	}
	if loaded.ScenarioID != session.ScenarioID || loaded.Seed != session.Seed {
		t.Fatalf("unexpected loaded session: %+v", loaded)
	}
	if len(loaded.Actions) != 1 || loaded.Actions[0].Action != domain.ActionMove {
		t.Fatalf("unexpected loaded actions: %+v", loaded.Actions)
	}
}

func TestRecorderSaveThenPlayerReplaysActions(t *testing.T) {
	s := newFakeState(5, 5)
	hero := fighter(1, domain.TeamPlayer, domain.Vector2{X: 0, Y: 0})
	s.add(hero)

	rec := NewRecorder("ambush", 1, 0)
	payload, err := EncodeTarget(action.PosTarget(domain.Vector2{X: 1, Y: 0}))
	if err != nil {
		t.Fatalf("EncodeTarget: %v", err)
	}
	rec.Record(domain.ReplayAction{Tick: 0, Actor: 1, Action: domain.ActionMove, Payload: payload})

	path := filepath.Join(t.TempDir(), "session.json")
	if err := rec.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := LoadReplay(path)
	if err != nil {
		t.Fatalf("LoadReplay: %v", err)
	}

	player := NewPlayer(*loaded)
	catalog := action.NewCatalog()
	if player.Done() {
		t.Fatal("expected a pending action")
	}
	rec2, result, validation, err := player.Next(catalog, s)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if !validation.Ok {
		t.Fatalf("expected the recorded move to validate, got reason %v", validation.Reason)
	}
	if rec2.Actor != 1 || rec2.Action != domain.ActionMove {
		t.Fatalf("unexpected replayed record: %+v", rec2)
	}
	if hero.Movement.Position != (domain.Vector2{X: 1, Y: 0}) {
		t.Fatalf("expected hero to have moved to (1,0), got %v", hero.Movement.Position)
	}
	_ = result
	if !player.Done() {
		t.Fatal("expected replay to be exhausted")
	}
}
