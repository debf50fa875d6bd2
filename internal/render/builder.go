package render

import (
	"github.com/pfassina/grimdark/internal/combat"
	"github.com/pfassina/grimdark/internal/domain"
	"github.com/pfassina/grimdark/internal/grid"
	"github.com/pfassina/grimdark/internal/timeline"
)

// State is the narrow read-only view Build needs. Engine's GameState
// satisfies this structurally, same seam as action.State/ai.State —
// internal/render never imports internal/engine.
type State interface {
	Map() *grid.Map
	Units() []*domain.Entity
	SelectedUnit() (domain.EntityID, bool)
	ViewerTeam() domain.Team
	Camera() Camera
	UpcomingTimeline(n int) []*timeline.Entry
	Now() domain.Tick
	ActiveMenus() []Menu
	PendingTexts() []Text
	ActiveOverlays() []Overlay
	PendingForecast() *combat.Forecast
	ForecastParticipants() (attacker, defender domain.EntityID, ok bool)
}

// Build pulls a full RenderContext snapshot from state. It never
// mutates state — only reads — so repeated calls on an unchanged
// GameState are bytewise idempotent (spec §8 property 8).
func Build(state State) RenderContext {
	units := state.Units()
	selectedID, hasSelection := state.SelectedUnit()

	ctx := RenderContext{
		Camera:   state.Camera(),
		Overlays: state.ActiveOverlays(),
		Menus:    state.ActiveMenus(),
		Texts:    state.PendingTexts(),
	}

	ctx.Tiles = buildTiles(state.Map(), ctx.Camera)
	ctx.Units = buildUnits(units, selectedID, hasSelection)
	ctx.TimelinePreview = buildTimelinePreview(state, units)
	ctx.Forecast = buildForecast(state)

	return ctx
}

func buildTiles(m *grid.Map, cam Camera) []TileView {
	out := make([]TileView, 0, cam.W*cam.H)
	for y := cam.Y; y < cam.Y+cam.H; y++ {
		for x := cam.X; x < cam.X+cam.W; x++ {
			pos := domain.Vector2{X: x, Y: y}
			if !m.InBounds(pos) {
				continue
			}
			tile := m.Tile(pos)
			out = append(out, TileView{X: x, Y: y, TerrainID: tile.TerrainID})
		}
	}
	return out
}

func buildUnits(units []*domain.Entity, selectedID domain.EntityID, hasSelection bool) []UnitView {
	out := make([]UnitView, 0, len(units))
	for _, u := range units {
		if !u.IsAlive() {
			continue
		}
		view := UnitView{
			ID:         u.ID,
			X:          u.Movement.Position.X,
			Y:          u.Movement.Position.Y,
			Team:       u.Actor.Team,
			Class:      u.Actor.Class,
			HPCurrent:  u.Health.HPCurrent,
			HPMax:      u.Health.HPMax,
			IsSelected: hasSelection && u.ID == selectedID,
		}
		if u.Morale != nil {
			state := u.Morale.State
			view.MoraleState = &state
		}
		if u.Wound != nil {
			count := len(u.Wound.Wounds)
			view.WoundCount = &count
		}
		out = append(out, view)
	}
	return out
}

func buildTimelinePreview(state State, units []*domain.Entity) []TimelinePreviewEntry {
	viewer := state.ViewerTeam()
	now := state.Now()
	entries := state.UpcomingTimeline(8)

	byID := make(map[domain.EntityID]*domain.Entity, len(units))
	for _, u := range units {
		byID[u.ID] = u
	}

	out := make([]TimelinePreviewEntry, 0, len(entries))
	for _, e := range entries {
		if e.Kind != timeline.EntryKindUnit {
			continue
		}
		unit, ok := byID[e.RefID]
		if !ok {
			continue
		}

		preview := TimelinePreviewEntry{
			UnitName:     unit.Actor.Name,
			ReadyInTicks: int(e.ReadyTick) - int(now),
		}

		if unit.Actor.Team == viewer {
			preview.Visibility = VisibilityFull
		} else if dist, found := nearestOpposingDistance(unit.Movement.Position, viewer, units); found {
			preview.Visibility = ComputeVisibility(dist, unit.VisionRadiusOf())
		} else {
			preview.Visibility = VisibilityFull
		}

		if preview.Visibility != VisibilityHidden {
			preview.ActionIcon = nextActionIcon(unit)
		}

		out = append(out, preview)
	}
	return out
}

// nextActionIcon is a coarse stand-in for "what this unit is about to
// do" — a future AI/telegraph system would populate something richer;
// today every unit telegraphs its base attack action, which is enough
// to exercise the visibility gate.
func nextActionIcon(unit *domain.Entity) string {
	if unit.Combat.RangeMax > 1 {
		return domain.ActionStandardAttack.String()
	}
	return domain.ActionQuickStrike.String()
}

func buildForecast(state State) *ForecastView {
	forecast := state.PendingForecast()
	if forecast == nil {
		return nil
	}
	attacker, defender, ok := state.ForecastParticipants()
	if !ok {
		return nil
	}

	view := &ForecastView{
		Attacker:  attacker,
		Defender:  defender,
		DamageMin: forecast.DamageMin,
		DamageMax: forecast.DamageMax,
	}
	if forecast.CounterPossible && forecast.CounterForecast != nil {
		view.Counter = &ForecastView{
			Attacker:  defender,
			Defender:  attacker,
			DamageMin: forecast.CounterForecast.DamageMin,
			DamageMax: forecast.CounterForecast.DamageMax,
		}
	}
	return view
}
