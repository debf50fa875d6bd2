package engine

import (
	"testing"

	"github.com/pfassina/grimdark/internal/domain"
	"github.com/pfassina/grimdark/internal/scenario"
)

func twoUnitPlan() *scenario.ScenarioPlan {
	return &scenario.ScenarioPlan{
		Name:      "skirmish",
		MapLayers: [][][]int{{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}}},
		Tileset:   map[int]scenario.TileDef{0: {MovementCost: 1}},
		UnitDefs: []scenario.UnitDef{
			{Name: "hero", Class: "knight", Team: "player"},
			{Name: "grunt", Class: "warrior", Team: "enemy"},
		},
		Placements: []scenario.Placement{
			{TargetName: "hero", Kind: scenario.PlacementAt, At: domain.Vector2{X: 0, Y: 0}},
			{TargetName: "grunt", Kind: scenario.PlacementAt, At: domain.Vector2{X: 2, Y: 2}},
		},
		Objectives: scenario.ObjectiveSpec{
			Victory: []scenario.PredicateSpec{{Kind: "defeat_all_enemies"}},
			Defeat:  []scenario.PredicateSpec{{Kind: "all_units_defeated"}},
		},
	}
}

func TestMaterializePlacesUnitsAndOpensBattle(t *testing.T) {
	state, err := Materialize(twoUnitPlan(), 1)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if state.Phase() != domain.GamePhaseBattle {
		t.Fatalf("Phase() = %v, want GamePhaseBattle", state.Phase())
	}
	if len(state.AllEntities()) != 2 {
		t.Fatalf("AllEntities() has %d entries, want 2", len(state.AllEntities()))
	}

	var hero, grunt *domain.Entity
	for _, e := range state.Units() {
		switch e.Actor.Name {
		case "hero":
			hero = e
		case "grunt":
			grunt = e
		}
	}
	if hero == nil || grunt == nil {
		t.Fatalf("missing expected units: hero=%v grunt=%v", hero, grunt)
	}
	if hero.Actor.Team != domain.TeamPlayer || grunt.Actor.Team != domain.TeamEnemy {
		t.Fatalf("team assignment wrong: hero=%v grunt=%v", hero.Actor.Team, grunt.Actor.Team)
	}
	if grunt.AI == nil {
		t.Fatal("enemy unit should have an AIComponent")
	}
	if hero.Health.HPMax != baseStatsByClass["knight"].hpMax {
		t.Fatalf("hero HPMax = %d, want %d", hero.Health.HPMax, baseStatsByClass["knight"].hpMax)
	}
	if state.Objectives == nil {
		t.Fatal("Objectives manager was not wired")
	}
}

func TestMaterializeRejectsUnresolvedPlacement(t *testing.T) {
	plan := twoUnitPlan()
	plan.Placements = plan.Placements[:1] // drop grunt's placement
	if _, err := Materialize(plan, 1); err == nil {
		t.Fatal("expected an error for a unit with no resolved placement")
	}
}

func TestMaterializeAppliesStatOverrides(t *testing.T) {
	plan := twoUnitPlan()
	plan.UnitDefs[0].StatOverrides = map[string]int{"hp_max": 99}
	state, err := Materialize(plan, 1)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	for _, e := range state.Units() {
		if e.Actor.Name == "hero" && e.Health.HPMax != 99 {
			t.Fatalf("hero HPMax = %d, want override 99", e.Health.HPMax)
		}
	}
}
