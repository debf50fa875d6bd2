package render

import (
	"testing"

	"github.com/pfassina/grimdark/internal/combat"
	"github.com/pfassina/grimdark/internal/domain"
	"github.com/pfassina/grimdark/internal/grid"
	"github.com/pfassina/grimdark/internal/timeline"
)

type fakeState struct {
	m          *grid.Map
	units      []*domain.Entity
	selected   domain.EntityID
	hasSel     bool
	viewer     domain.Team
	cam        Camera
	sched      *timeline.Scheduler
	now        domain.Tick
	forecast   *combat.Forecast
	attacker   domain.EntityID
	defender   domain.EntityID
	hasForecast bool
}

func (s *fakeState) Map() *grid.Map                      { return s.m }
func (s *fakeState) Units() []*domain.Entity              { return s.units }
func (s *fakeState) SelectedUnit() (domain.EntityID, bool) { return s.selected, s.hasSel }
func (s *fakeState) ViewerTeam() domain.Team              { return s.viewer }
func (s *fakeState) Camera() Camera                       { return s.cam }
func (s *fakeState) Now() domain.Tick                     { return s.now }
func (s *fakeState) ActiveMenus() []Menu                  { return nil }
func (s *fakeState) PendingTexts() []Text                 { return nil }
func (s *fakeState) ActiveOverlays() []Overlay            { return nil }
func (s *fakeState) PendingForecast() *combat.Forecast    { return s.forecast }
func (s *fakeState) ForecastParticipants() (domain.EntityID, domain.EntityID, bool) {
	return s.attacker, s.defender, s.hasForecast
}
func (s *fakeState) UpcomingTimeline(n int) []*timeline.Entry { return s.sched.PreviewUpcoming(n) }

func newFakeMap(w, h int) *grid.Map {
	tiles := make([][]grid.Tile, h)
	for y := 0; y < h; y++ {
		tiles[y] = make([]grid.Tile, w)
		for x := 0; x < w; x++ {
			tiles[y][x] = grid.Tile{TerrainID: 1, MovementCost: 1}
		}
	}
	return grid.NewMap(tiles)
}

func fighter(id domain.EntityID, team domain.Team, pos domain.Vector2) *domain.Entity {
	return &domain.Entity{
		ID:       id,
		Actor:    domain.ActorComponent{Name: "unit", Team: team},
		Health:   domain.HealthComponent{HPMax: 10, HPCurrent: 10},
		Movement: domain.MovementComponent{Position: pos},
		Combat:   domain.CombatComponent{RangeMin: 1, RangeMax: 1},
	}
}

func TestBuildReportsTilesWithinCamera(t *testing.T) {
	s := &fakeState{m: newFakeMap(5, 5), viewer: domain.TeamPlayer, cam: Camera{X: 0, Y: 0, W: 3, H: 2}, sched: timeline.NewScheduler()}
	ctx := Build(s)
	if len(ctx.Tiles) != 6 {
		t.Fatalf("expected 6 tiles in a 3x2 camera, got %d", len(ctx.Tiles))
	}
}

func TestBuildMarksSelectedUnit(t *testing.T) {
	hero := fighter(1, domain.TeamPlayer, domain.Vector2{X: 0, Y: 0})
	s := &fakeState{
		m: newFakeMap(5, 5), units: []*domain.Entity{hero}, selected: 1, hasSel: true,
		viewer: domain.TeamPlayer, cam: Camera{W: 5, H: 5}, sched: timeline.NewScheduler(),
	}
	ctx := Build(s)
	if len(ctx.Units) != 1 || !ctx.Units[0].IsSelected {
		t.Fatalf("expected the hero marked selected, got %+v", ctx.Units)
	}
}

func TestBuildOmitsDeadUnits(t *testing.T) {
	corpse := fighter(1, domain.TeamEnemy, domain.Vector2{X: 0, Y: 0})
	corpse.Health.HPCurrent = 0
	s := &fakeState{m: newFakeMap(5, 5), units: []*domain.Entity{corpse}, viewer: domain.TeamPlayer, cam: Camera{W: 5, H: 5}, sched: timeline.NewScheduler()}
	ctx := Build(s)
	if len(ctx.Units) != 0 {
		t.Fatalf("expected dead units omitted, got %+v", ctx.Units)
	}
}

func TestTimelinePreviewIsFullForViewerTeam(t *testing.T) {
	hero := fighter(1, domain.TeamPlayer, domain.Vector2{X: 0, Y: 0})
	sched := timeline.NewScheduler()
	sched.Schedule(5, timeline.EntryKindUnit, 1)
	s := &fakeState{m: newFakeMap(5, 5), units: []*domain.Entity{hero}, viewer: domain.TeamPlayer, cam: Camera{W: 5, H: 5}, sched: sched, now: 2}
	ctx := Build(s)
	if len(ctx.TimelinePreview) != 1 {
		t.Fatalf("expected one preview entry, got %d", len(ctx.TimelinePreview))
	}
	entry := ctx.TimelinePreview[0]
	if entry.Visibility != VisibilityFull || entry.ReadyInTicks != 3 || entry.ActionIcon == "" {
		t.Fatalf("unexpected preview entry: %+v", entry)
	}
}

func TestTimelinePreviewIsHiddenForDistantEnemy(t *testing.T) {
	orc := fighter(1, domain.TeamEnemy, domain.Vector2{X: 20, Y: 20})
	hero := fighter(2, domain.TeamPlayer, domain.Vector2{X: 0, Y: 0})
	sched := timeline.NewScheduler()
	sched.Schedule(1, timeline.EntryKindUnit, 1)
	s := &fakeState{m: newFakeMap(25, 25), units: []*domain.Entity{orc, hero}, viewer: domain.TeamPlayer, cam: Camera{W: 5, H: 5}, sched: sched}
	ctx := Build(s)
	if len(ctx.TimelinePreview) != 1 {
		t.Fatalf("expected one preview entry, got %d", len(ctx.TimelinePreview))
	}
	entry := ctx.TimelinePreview[0]
	if entry.Visibility != VisibilityHidden || entry.ActionIcon != "" || entry.UnitName == "" {
		t.Fatalf("expected a hidden, iconless, but named entry, got %+v", entry)
	}
}

func TestTimelinePreviewIsPartialAtMidRange(t *testing.T) {
	orc := fighter(1, domain.TeamEnemy, domain.Vector2{X: 10, Y: 0})
	hero := fighter(2, domain.TeamPlayer, domain.Vector2{X: 0, Y: 0})
	sched := timeline.NewScheduler()
	sched.Schedule(1, timeline.EntryKindUnit, 1)
	s := &fakeState{m: newFakeMap(15, 15), units: []*domain.Entity{orc, hero}, viewer: domain.TeamPlayer, cam: Camera{W: 5, H: 5}, sched: sched}
	ctx := Build(s)
	if len(ctx.TimelinePreview) != 1 || ctx.TimelinePreview[0].Visibility != VisibilityPartial {
		t.Fatalf("expected a partial-visibility entry at distance 10 (radius 8), got %+v", ctx.TimelinePreview)
	}
}

func TestBuildOmitsForecastWhenNonePending(t *testing.T) {
	s := &fakeState{m: newFakeMap(5, 5), viewer: domain.TeamPlayer, cam: Camera{W: 5, H: 5}, sched: timeline.NewScheduler()}
	ctx := Build(s)
	if ctx.Forecast != nil {
		t.Fatalf("expected no forecast, got %+v", ctx.Forecast)
	}
}

func TestBuildIncludesForecastAndCounter(t *testing.T) {
	f := &combat.Forecast{
		DamageMin: 3, DamageMax: 6, CounterPossible: true,
		CounterForecast: &combat.Forecast{DamageMin: 1, DamageMax: 2},
	}
	s := &fakeState{
		m: newFakeMap(5, 5), viewer: domain.TeamPlayer, cam: Camera{W: 5, H: 5}, sched: timeline.NewScheduler(),
		forecast: f, attacker: 1, defender: 2, hasForecast: true,
	}
	ctx := Build(s)
	if ctx.Forecast == nil || ctx.Forecast.DamageMin != 3 || ctx.Forecast.Counter == nil || ctx.Forecast.Counter.DamageMax != 2 {
		t.Fatalf("unexpected forecast view: %+v", ctx.Forecast)
	}
}
