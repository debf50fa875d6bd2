// Package scenario implements the scenario-loading interface of spec
// §6.3: a YAML document decodes into a ScenarioPlan, then a
// Resolver turns its markers/regions/placements into concrete
// starting positions at battle-init time. After resolution, nothing in
// the simulation references a marker or region name again.
//
// Grounded on rdtc8822-debug-L1JGO-Whale/internal/data's
// read-file-then-yaml.Unmarshal-into-a-wrapper-struct loaders
// (npc.go's npcListFile/LoadNpcTable), generalized from a flat template
// table to the nested ScenarioPlan document shape spec §6.3 names.
package scenario

import "github.com/pfassina/grimdark/internal/domain"

// TileDef is one tileset entry: the effective per-terrain-id stats
// internal/grid.Tile needs, keyed by tile_id in the YAML document.
type TileDef struct {
	MovementCost   int  `yaml:"movement_cost"`
	DefenseBonus   int  `yaml:"defense_bonus"`
	AvoidBonus     int  `yaml:"avoid_bonus"`
	BlocksVision   bool `yaml:"blocks_vision"`
	BlocksMovement bool `yaml:"blocks_movement"`
}

// UnitDef names a unit to be placed, with stat overrides layered on
// top of its class's base stats (resolved by the engine at battle
// init, not by this package).
type UnitDef struct {
	Name          string         `yaml:"name"`
	Class         string         `yaml:"class"`
	Team          string         `yaml:"team"`
	StatOverrides map[string]int `yaml:"stat_overrides"`
}

// ObjectDef is a scenario prop (hazard spawn point, destructible
// terrain feature, ...); properties are implementation-defined per
// Type and read by the engine's scenario-instantiation step.
type ObjectDef struct {
	Name       string         `yaml:"name"`
	Type       string         `yaml:"type"`
	Properties map[string]any `yaml:"properties"`
}

// Rect is an axis-aligned tile region, named in Regions and referenced
// by Placement.AtRegion.
type Rect struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// RegionPolicy closes the set of region placement strategies (spec
// §6.3).
type RegionPolicy string

const (
	PolicyRandomFreeTile RegionPolicy = "random_free_tile"
	PolicySpreadEvenly   RegionPolicy = "spread_evenly"
)

// PlacementKind closes the sum-type Placement carries: exactly one of
// At/AtMarker/AtRegion is populated, selected by Kind.
type PlacementKind uint8

const (
	PlacementAt PlacementKind = iota
	PlacementAtMarker
	PlacementAtRegion
)

// Placement binds a named target (a unit or object) to a position
// strategy. YAML authors write one of three shorthand forms; Load
// (loader.go) normalizes them into this struct.
type Placement struct {
	TargetName string
	Kind       PlacementKind
	At         domain.Vector2
	MarkerName string
	RegionName string
	Policy     RegionPolicy
}

// PredicateSpec is one YAML-authored objective predicate: Kind names
// one of internal/objective's closed Kind values, Params carries its
// arguments (target_tick, position, unit_name — whichever the kind
// needs). Resolving Params into a concrete *objective.Objective is
// CompileObjectives's job (compile.go), since unit_name must first resolve to
// an domain.EntityID, which only exists once units are placed.
type PredicateSpec struct {
	Name   string         `yaml:"name"`
	Kind   string         `yaml:"kind"`
	Params map[string]any `yaml:"params"`
}

type ObjectiveSpec struct {
	Victory []PredicateSpec `yaml:"victory"`
	Defeat  []PredicateSpec `yaml:"defeat"`
}

type Settings struct {
	TurnLimit    *int   `yaml:"turn_limit"`
	StartingTeam string `yaml:"starting_team"`
	FogOfWar     bool   `yaml:"fog_of_war"`
}

// TilePatch overrides a single cell's tile_id after the base layers
// are composed (spec §6.3's "overrides: [ tile patches ]").
type TilePatch struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	TileID int `yaml:"tile_id"`
}

// ScenarioPlan is the fully-decoded, not-yet-resolved scenario
// document (spec §6.3). Resolver.Resolve turns it into
// concrete starting state; the plan itself is never consulted again
// once a battle starts.
type ScenarioPlan struct {
	Name       string            `yaml:"name"`
	MapLayers  [][][]int         `yaml:"map_layers"`
	Tileset    map[int]TileDef   `yaml:"tileset"`
	UnitDefs   []UnitDef         `yaml:"unit_defs"`
	Objects    []ObjectDef       `yaml:"objects"`
	Markers    map[string]domain.Vector2 `yaml:"markers"`
	Regions    map[string]Rect   `yaml:"regions"`
	Placements []Placement       `yaml:"-"`
	Objectives ObjectiveSpec     `yaml:"objectives"`
	Settings   Settings          `yaml:"settings"`
	Overrides  []TilePatch       `yaml:"overrides"`
}
