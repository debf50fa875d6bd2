package engine

import (
	"fmt"
	"math/rand"

	"github.com/pfassina/grimdark/internal/combat"
	"github.com/pfassina/grimdark/internal/domain"
	"github.com/pfassina/grimdark/internal/grid"
	"github.com/pfassina/grimdark/internal/scenario"
	"github.com/pfassina/grimdark/internal/timeline"
)

// Materialize turns a decoded ScenarioPlan into a live, Battle-phase
// GameState: composes the tile layers, resolves every placement into a
// concrete position, allocates an EntityID and component set per unit,
// compiles the objective list, and schedules every unit's first
// timeline entry at tick zero (spec §3.2-§3.5, §6.3). Grounded on the
// teacher's world_builder.go + state_builder.go split (compose the map
// first, then populate entities into it), collapsed into one function
// since this core's GameState is a single aggregate rather than a
// World/Entities pair assembled by two separate builders.
func Materialize(plan *scenario.ScenarioPlan, seed int64, tuning ...combat.Tuning) (*GameState, error) {
	tiles := composeTiles(plan)
	m := grid.NewMap(tiles)

	rng := rand.New(rand.NewSource(seed))
	resolver := scenario.NewResolver()
	positions, err := resolver.Resolve(plan, func(pos domain.Vector2) bool {
		return m.InBounds(pos) && m.Tile(pos).Passable() && !m.IsOccupied(pos)
	}, rng)
	if err != nil {
		return nil, fmt.Errorf("materialize: %w", err)
	}

	s := NewGameState(m, seed, tuning...)

	unitIDs := make(map[string]domain.EntityID, len(plan.UnitDefs))
	for _, def := range plan.UnitDefs {
		pos, ok := positions[def.Name]
		if !ok {
			return nil, fmt.Errorf("materialize: unit %q has no resolved placement", def.Name)
		}
		id, err := spawnUnit(s, def, pos)
		if err != nil {
			return nil, fmt.Errorf("materialize: unit %q: %w", def.Name, err)
		}
		unitIDs[def.Name] = id
	}

	objs, err := scenario.CompileObjectives(plan.Objectives, unitIDs, plan.Markers)
	if err != nil {
		return nil, fmt.Errorf("materialize: %w", err)
	}
	om, err := newObjectiveManager(objs, s, s.bus)
	if err != nil {
		return nil, fmt.Errorf("materialize: %w", err)
	}
	s.Objectives = om

	s.phase = domain.GamePhaseBattle
	return s, nil
}

func spawnUnit(s *GameState, def scenario.UnitDef, pos domain.Vector2) (domain.EntityID, error) {
	team, err := parseTeam(def.Team)
	if err != nil {
		return domain.NilEntityID, err
	}

	actor, health, movement, combat := buildComponents(def.Class, def.StatOverrides, pos)
	actor.Name = def.Name
	actor.Team = team

	id := s.NextEntityID(domain.EntityKindUnit)
	e := domain.NewEntity(id, actor, health, movement, combat)
	if team == domain.TeamEnemy {
		e.AI = &domain.AIComponent{Personality: domain.AIBalanced}
	}
	s.AddEntity(e)
	s.scheduler.Schedule(0, timeline.EntryKindUnit, id)
	return id, nil
}

func parseTeam(s string) (domain.Team, error) {
	switch s {
	case "player", "Player":
		return domain.TeamPlayer, nil
	case "enemy", "Enemy":
		return domain.TeamEnemy, nil
	case "neutral", "Neutral", "":
		return domain.TeamNeutral, nil
	default:
		return domain.TeamNeutral, fmt.Errorf("unknown team %q", s)
	}
}

// composeTiles turns a plan's raw [layer][y][x]tile_id grid plus its
// tileset into the effective composed [][]grid.Tile, then applies any
// single-cell overrides on top (spec §6.3's "overrides: [ tile
// patches ]", applied after composition).
func composeTiles(plan *scenario.ScenarioPlan) [][]grid.Tile {
	layers := make([]grid.Layer, len(plan.MapLayers))
	for i, layerIDs := range plan.MapLayers {
		layers[i] = grid.Layer{Tiles: tilesFromIDs(layerIDs, plan.Tileset)}
	}
	tiles := grid.Compose(layers...)

	for _, patch := range plan.Overrides {
		if patch.Y < 0 || patch.Y >= len(tiles) || patch.X < 0 || patch.X >= len(tiles[patch.Y]) {
			continue
		}
		tiles[patch.Y][patch.X] = tileFromID(plan.Tileset, patch.TileID)
	}
	return tiles
}

func tilesFromIDs(ids [][]int, tileset map[int]scenario.TileDef) [][]grid.Tile {
	out := make([][]grid.Tile, len(ids))
	for y, row := range ids {
		out[y] = make([]grid.Tile, len(row))
		for x, id := range row {
			out[y][x] = tileFromID(tileset, id)
		}
	}
	return out
}

func tileFromID(tileset map[int]scenario.TileDef, id int) grid.Tile {
	def, ok := tileset[id]
	if !ok {
		return grid.Tile{TerrainID: uint16(id)}
	}
	return grid.Tile{
		TerrainID:      uint16(id),
		MovementCost:   def.MovementCost,
		DefenseBonus:   def.DefenseBonus,
		AvoidBonus:     def.AvoidBonus,
		BlocksVision:   def.BlocksVision,
		BlocksMovement: def.BlocksMovement,
	}
}
