package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pfassina/grimdark/internal/domain"
)

// rawPlan mirrors ScenarioPlan's YAML shape but decodes placements into
// their three shorthand forms before Load normalizes them into the
// closed Placement sum type.
type rawPlan struct {
	Name       string                    `yaml:"name"`
	MapLayers  [][][]int                 `yaml:"map_layers"`
	Tileset    map[int]TileDef           `yaml:"tileset"`
	UnitDefs   []UnitDef                 `yaml:"unit_defs"`
	Objects    []ObjectDef               `yaml:"objects"`
	Markers    map[string]domain.Vector2 `yaml:"markers"`
	Regions    map[string]Rect           `yaml:"regions"`
	Placements []rawPlacement            `yaml:"placements"`
	Objectives ObjectiveSpec             `yaml:"objectives"`
	Settings   Settings                  `yaml:"settings"`
	Overrides  []TilePatch               `yaml:"overrides"`
}

type rawPlacement struct {
	TargetName string          `yaml:"target_name"`
	At         *domain.Vector2 `yaml:"at"`
	AtMarker   string          `yaml:"at_marker"`
	AtRegion   string          `yaml:"at_region"`
	Policy     string          `yaml:"policy"`
}

// Load reads and decodes a scenario YAML document. It returns a
// ScenarioLoadError-worthy plain error (spec §7's ScenarioLoadError is
// reported to the host before battle init, never raised as a fatal
// mid-battle) — callers translate this into whatever host-facing
// diagnostic shape they use.
func Load(path string) (*ScenarioPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: read %s: %w", path, err)
	}

	var raw rawPlan
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("scenario: parse %s: %w", path, err)
	}

	placements := make([]Placement, 0, len(raw.Placements))
	for _, p := range raw.Placements {
		placement, err := normalizePlacement(p)
		if err != nil {
			return nil, fmt.Errorf("scenario: %s: %w", path, err)
		}
		placements = append(placements, placement)
	}

	return &ScenarioPlan{
		Name:       raw.Name,
		MapLayers:  raw.MapLayers,
		Tileset:    raw.Tileset,
		UnitDefs:   raw.UnitDefs,
		Objects:    raw.Objects,
		Markers:    raw.Markers,
		Regions:    raw.Regions,
		Placements: placements,
		Objectives: raw.Objectives,
		Settings:   raw.Settings,
		Overrides:  raw.Overrides,
	}, nil
}

func normalizePlacement(p rawPlacement) (Placement, error) {
	switch {
	case p.At != nil:
		return Placement{TargetName: p.TargetName, Kind: PlacementAt, At: *p.At}, nil
	case p.AtMarker != "":
		return Placement{TargetName: p.TargetName, Kind: PlacementAtMarker, MarkerName: p.AtMarker}, nil
	case p.AtRegion != "":
		policy := RegionPolicy(p.Policy)
		if policy != PolicyRandomFreeTile && policy != PolicySpreadEvenly {
			return Placement{}, fmt.Errorf("placement %q: unknown region policy %q", p.TargetName, p.Policy)
		}
		return Placement{TargetName: p.TargetName, Kind: PlacementAtRegion, RegionName: p.AtRegion, Policy: policy}, nil
	default:
		return Placement{}, fmt.Errorf("placement %q: must set one of at/at_marker/at_region", p.TargetName)
	}
}
