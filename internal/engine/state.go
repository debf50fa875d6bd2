// Package engine assembles every leaf package (domain, grid, timeline,
// events, action, combat, pathfind, phase, objective, ai, scenario,
// render) into one GameState root container plus the managers that
// mutate it (spec §3.5, §4.6-§4.9). Grounded on the teacher's
// internal/engine.Instance: one struct owning a World, an Entities
// table, a turn manager, and a Rng, run through a single Run loop
// (internal/engine/instance.go in the reference repo) — generalized
// here from a live-service multi-instance model to the spec's
// single-battle core, with the ad hoc turn-tick/handler-map logic
// replaced by the dedicated timeline/action/combat/phase packages
// built alongside it.
package engine

import (
	"github.com/pfassina/grimdark/internal/action"
	"github.com/pfassina/grimdark/internal/combat"
	"github.com/pfassina/grimdark/internal/domain"
	"github.com/pfassina/grimdark/internal/events"
	"github.com/pfassina/grimdark/internal/grid"
	"github.com/pfassina/grimdark/internal/phase"
	"github.com/pfassina/grimdark/internal/render"
	"github.com/pfassina/grimdark/internal/timeline"
)

// GameState is the single aggregate spec §3.5 describes: one Map, one
// entity table, one Timeline, one Bus, current tick/phase. Every
// manager in this package receives a *GameState and mutates it
// in-process — there is no cross-manager reference, only the bus
// (spec §4.4's "no back-references").
type GameState struct {
	grid *grid.Map

	entities map[domain.EntityID]*domain.Entity
	order    []domain.EntityID // insertion order — the only order iteration ever uses, so determinism never depends on map ranging

	allocator *domain.EntityAllocator
	scheduler *timeline.Scheduler
	bus       *events.Bus
	catalog   *action.Catalog
	calc      *combat.Calculator

	now         domain.Tick
	phase       domain.GamePhase
	battlePhase *phase.Machine
	seed        int64

	viewerTeam domain.Team
	camera     render.Camera

	Selection  *SelectionManager
	Combat     *CombatManager
	UI         *UIManager
	Objectives *ObjectiveManager
	Log        *LogManager

	escalation *EscalationHook
}

// NewGameState builds an empty battle container: no entities, tick
// zero, phase MainMenu. Callers materialize a scenario into it (see
// materialize.go) before transitioning Phase to Battle. tuning is
// optional (falls back to combat.DefaultTuning()) and reaches both the
// action catalog's attack factors and the forecast/resolve calculator
// so a scenario's config.CombatConfig retunes damage consistently
// everywhere it is consulted.
func NewGameState(m *grid.Map, seed int64, tuning ...combat.Tuning) *GameState {
	t := combat.DefaultTuning()
	if len(tuning) > 0 {
		t = tuning[0]
	}
	s := &GameState{
		grid:        m,
		entities:    make(map[domain.EntityID]*domain.Entity),
		allocator:   domain.NewEntityAllocator(),
		scheduler:   timeline.NewScheduler(),
		bus:         events.NewBus(),
		catalog:     action.NewCatalog(t),
		calc:        combat.NewCalculator(t),
		phase:       domain.GamePhaseMainMenu,
		battlePhase: phase.NewMachine(),
		seed:        seed,
		viewerTeam:  domain.TeamPlayer,
		camera:      render.Camera{W: m.Width, H: m.Height},
	}
	s.Selection = newSelectionManager(s)
	s.Combat = newCombatManager(s)
	s.UI = newUIManager()
	s.Log = newLogManager(s.bus)
	s.escalation = newEscalationHook(s.bus)
	// A defeated unit's pending timeline entry is tombstoned at once so
	// Run never pops a dead unit.
	s.bus.Subscribe(domain.EventUnitDefeated, 0, events.Typed(func(p events.UnitDefeated) {
		s.scheduler.Cancel(p.Unit)
	}))
	wirePhaseDriver(s)
	return s
}

// --- entity table ---

// AddEntity inserts e at its Movement.Position and indexes it both in
// the entity table and on the Map (spec §3.3: "GameState exclusively
// owns all entities").
func (s *GameState) AddEntity(e *domain.Entity) {
	s.entities[e.ID] = e
	s.order = append(s.order, e.ID)
	s.grid.Place(e.ID, e.Movement.Position)
}

// Map satisfies action.State/ai.State/render.State's shared Map() seam.
func (s *GameState) Map() *grid.Map { return s.grid }

func (s *GameState) NextEntityID(kind domain.EntityKind) domain.EntityID {
	return s.allocator.Next(kind)
}

// Entity satisfies action.State/ai.State.
func (s *GameState) Entity(id domain.EntityID) (*domain.Entity, bool) {
	e, ok := s.entities[id]
	return e, ok
}

// AllEntities satisfies ai.State: every known EntityID, alive or not —
// the controller itself filters on IsAlive/team.
func (s *GameState) AllEntities() []domain.EntityID {
	out := make([]domain.EntityID, len(s.order))
	copy(out, s.order)
	return out
}

// Units satisfies render.State: the live *domain.Entity values
// themselves, in the same deterministic insertion order.
func (s *GameState) Units() []*domain.Entity {
	out := make([]*domain.Entity, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.entities[id])
	}
	return out
}

// AliveCount satisfies objective.StateView.
func (s *GameState) AliveCount(team domain.Team) int {
	n := 0
	for _, id := range s.order {
		e := s.entities[id]
		if e.Actor.Team == team && e.IsAlive() {
			n++
		}
	}
	return n
}

// IsAlive satisfies objective.StateView.
func (s *GameState) IsAlive(id domain.EntityID) bool {
	e, ok := s.entities[id]
	return ok && e.IsAlive()
}

// PositionOf satisfies objective.StateView.
func (s *GameState) PositionOf(id domain.EntityID) (domain.Vector2, bool) {
	e, ok := s.entities[id]
	if !ok {
		return domain.Vector2{}, false
	}
	return e.Movement.Position, true
}

// --- shared accessors (action.State / render.State) ---

func (s *GameState) Bus() *events.Bus     { return s.bus }
func (s *GameState) Now() domain.Tick     { return s.now }
func (s *GameState) NextSeq() uint64      { return s.scheduler.NextSeq() }
func (s *GameState) Seed() int64          { return s.seed }
func (s *GameState) Catalog() *action.Catalog     { return s.catalog }
func (s *GameState) Calculator() *combat.Calculator { return s.calc }
func (s *GameState) Scheduler() *timeline.Scheduler { return s.scheduler }

func (s *GameState) Phase() domain.GamePhase     { return s.phase }
func (s *GameState) BattlePhase() phase.BattlePhase { return s.battlePhase.Current() }

// --- render.State ---

func (s *GameState) SelectedUnit() (domain.EntityID, bool) { return s.Selection.Selected() }
func (s *GameState) ViewerTeam() domain.Team               { return s.viewerTeam }
func (s *GameState) SetViewerTeam(t domain.Team)            { s.viewerTeam = t }
func (s *GameState) Camera() render.Camera                 { return s.camera }
func (s *GameState) SetCamera(c render.Camera)              { s.camera = c }

func (s *GameState) UpcomingTimeline(n int) []*timeline.Entry {
	return s.scheduler.PreviewUpcoming(n)
}

func (s *GameState) ActiveMenus() []render.Menu       { return s.UI.Menus() }
func (s *GameState) PendingTexts() []render.Text      { return s.UI.Texts() }
func (s *GameState) ActiveOverlays() []render.Overlay { return s.Combat.Overlays(s.Selection) }

func (s *GameState) PendingForecast() *combat.Forecast { return s.Combat.Forecast() }
func (s *GameState) ForecastParticipants() (attacker, defender domain.EntityID, ok bool) {
	return s.Combat.Participants()
}

// RenderContext pulls a fresh snapshot (spec §6.2). Exposed on
// GameState itself so callers (transport, cmd/battlecore) never need
// to know render.Build exists as a free function.
func (s *GameState) RenderContext() render.RenderContext { return render.Build(s) }
