package scenario

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/pfassina/grimdark/internal/domain"
	"github.com/pfassina/grimdark/internal/objective"
)

const sampleYAML = `
name: "Ambush at the Crossing"
map_layers:
  - [[1, 1], [1, 1]]
tileset:
  1:
    movement_cost: 1
    defense_bonus: 0
    avoid_bonus: 0
unit_defs:
  - name: Runner
    class: scout
    team: player
markers:
  extraction:
    x: 1
    y: 0
regions:
  enemy_camp:
    x: 0
    y: 0
    width: 2
    height: 1
placements:
  - target_name: Runner
    at:
      x: 0
      y: 0
  - target_name: Orc1
    at_region: enemy_camp
    policy: random_free_tile
objectives:
  victory:
    - name: reach_extraction
      kind: reach_position
      params:
        unit_name: Runner
        marker: extraction
  defeat:
    - name: out_of_time
      kind: turn_limit
      params:
        turn_limit_tick: 50
settings:
  starting_team: player
  turn_limit: 50
`

func writeSample(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "ambush.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	return path
}

func TestLoadDecodesScenarioPlan(t *testing.T) {
	path := writeSample(t)
	plan, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if plan.Name != "Ambush at the Crossing" {
		t.Fatalf("unexpected name %q", plan.Name)
	}
	if len(plan.Placements) != 2 {
		t.Fatalf("expected 2 placements, got %d", len(plan.Placements))
	}
	if plan.Placements[0].Kind != PlacementAt {
		t.Fatalf("expected first placement to be At, got %v", plan.Placements[0].Kind)
	}
	if plan.Placements[1].Kind != PlacementAtRegion || plan.Placements[1].Policy != PolicyRandomFreeTile {
		t.Fatalf("expected second placement to be AtRegion/random_free_tile, got %+v", plan.Placements[1])
	}
}

func TestResolvePlacesAtAndRegionTargets(t *testing.T) {
	path := writeSample(t)
	plan, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	resolver := NewResolver()
	positions, err := resolver.Resolve(plan, func(domain.Vector2) bool { return true }, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if positions["Runner"] != (domain.Vector2{X: 0, Y: 0}) {
		t.Fatalf("expected Runner at (0,0), got %v", positions["Runner"])
	}
	orcPos, ok := positions["Orc1"]
	if !ok {
		t.Fatal("expected Orc1 to be placed")
	}
	if orcPos.X < 0 || orcPos.X > 1 || orcPos.Y != 0 {
		t.Fatalf("expected Orc1 within enemy_camp region, got %v", orcPos)
	}
}

func TestResolveRejectsCollidingPlacements(t *testing.T) {
	plan := &ScenarioPlan{
		Placements: []Placement{
			{TargetName: "A", Kind: PlacementAt, At: domain.Vector2{X: 1, Y: 1}},
			{TargetName: "B", Kind: PlacementAt, At: domain.Vector2{X: 1, Y: 1}},
		},
	}
	resolver := NewResolver()
	_, err := resolver.Resolve(plan, nil, rand.New(rand.NewSource(1)))
	if err == nil {
		t.Fatal("expected a collision error")
	}
}

func TestCompileObjectivesResolvesUnitAndMarkerParams(t *testing.T) {
	path := writeSample(t)
	plan, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	unitIDs := map[string]domain.EntityID{"Runner": 42}
	objs, err := CompileObjectives(plan.Objectives, unitIDs, plan.Markers)
	if err != nil {
		t.Fatalf("CompileObjectives: %v", err)
	}
	if len(objs) != 2 {
		t.Fatalf("expected 2 objectives, got %d", len(objs))
	}

	var reach, limit *objective.Objective
	for _, o := range objs {
		switch o.Kind {
		case objective.KindReachPosition:
			reach = o
		case objective.KindTurnLimit:
			limit = o
		}
	}
	if reach == nil || reach.TargetUnit != 42 || reach.TargetPosition != (domain.Vector2{X: 1, Y: 0}) {
		t.Fatalf("unexpected reach_position objective: %+v", reach)
	}
	if reach.Bucket != objective.BucketVictory {
		t.Fatalf("expected reach_position in victory bucket, got %v", reach.Bucket)
	}
	if limit == nil || limit.TargetTick != 50 || limit.Bucket != objective.BucketDefeat {
		t.Fatalf("unexpected turn_limit objective: %+v", limit)
	}
}

func TestCompileObjectivesRejectsUnknownKind(t *testing.T) {
	spec := ObjectiveSpec{Victory: []PredicateSpec{{Name: "x", Kind: "not_a_real_predicate"}}}
	_, err := CompileObjectives(spec, nil, nil)
	if err == nil {
		t.Fatal("expected an error for an unknown predicate kind")
	}
}
