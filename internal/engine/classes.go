package engine

import "github.com/pfassina/grimdark/internal/domain"

// classBaseStats is the battle-init-time table scenario.UnitDef.Class
// resolves against before stat_overrides are layered on top. Grounded
// on original_source/src/core/data/game_enums.py's UnitClass roster
// (Knight/Archer/Mage/Priest/Thief/Warrior) and the per-class
// health/movement/combat split original_source/.../unit_templates.py
// loads from its own data file — reauthored here as a Go literal table
// since this core has no runtime asset pipeline to load it from.
type classBaseStats struct {
	hpMax          int
	movementPoints int
	speed          int
	strength       int
	defense        int
	rangeMin       int
	rangeMax       int
	critChance     int
	accuracy       int
}

var baseStatsByClass = map[string]classBaseStats{
	"knight": {hpMax: 40, movementPoints: 4, speed: 8, strength: 12, defense: 10, rangeMin: 1, rangeMax: 1, critChance: 5, accuracy: 85},
	"warrior": {hpMax: 34, movementPoints: 5, speed: 10, strength: 11, defense: 6, rangeMin: 1, rangeMax: 1, critChance: 10, accuracy: 85},
	"archer": {hpMax: 24, movementPoints: 5, speed: 11, strength: 7, defense: 4, rangeMin: 2, rangeMax: 4, critChance: 15, accuracy: 80},
	"mage": {hpMax: 20, movementPoints: 4, speed: 9, strength: 9, defense: 2, rangeMin: 2, rangeMax: 3, critChance: 5, accuracy: 75},
	"priest": {hpMax: 22, movementPoints: 4, speed: 9, strength: 5, defense: 3, rangeMin: 1, rangeMax: 2, critChance: 5, accuracy: 80},
	"thief": {hpMax: 22, movementPoints: 6, speed: 13, strength: 8, defense: 3, rangeMin: 1, rangeMax: 1, critChance: 20, accuracy: 90},
}

// defaultClassStats backstops an unrecognized class tag rather than
// failing battle-init outright. Neither scenario.Load nor Materialize
// checks class names, so every unit with an unknown class gets these
// stats.
var defaultClassStats = classBaseStats{hpMax: 30, movementPoints: 4, speed: 10, strength: 8, defense: 5, rangeMin: 1, rangeMax: 1, critChance: 5, accuracy: 80}

func statsForClass(class string) classBaseStats {
	if s, ok := baseStatsByClass[class]; ok {
		return s
	}
	return defaultClassStats
}

// buildComponents turns a class's base stats plus a scenario's
// stat_overrides into the required component set for a new unit
// (spec §6.3: "stat overrides layered on top of its class's base
// stats, resolved by the engine at battle init").
func buildComponents(class string, overrides map[string]int, pos domain.Vector2) (domain.ActorComponent, domain.HealthComponent, domain.MovementComponent, domain.CombatComponent) {
	base := statsForClass(class)

	hpMax := overrideOr(overrides, "hp_max", base.hpMax)
	health := domain.HealthComponent{HPMax: hpMax, HPCurrent: hpMax}

	movement := domain.MovementComponent{
		Position:       pos,
		MovementPoints: overrideOr(overrides, "movement_points", base.movementPoints),
		Speed:          overrideOr(overrides, "speed", base.speed),
	}

	combat := domain.CombatComponent{
		Strength:   overrideOr(overrides, "strength", base.strength),
		Defense:    overrideOr(overrides, "defense", base.defense),
		RangeMin:   overrideOr(overrides, "range_min", base.rangeMin),
		RangeMax:   overrideOr(overrides, "range_max", base.rangeMax),
		CritChance: overrideOr(overrides, "crit_chance", base.critChance),
		Accuracy:   overrideOr(overrides, "accuracy", base.accuracy),
	}

	return domain.ActorComponent{Class: class}, health, movement, combat
}

func overrideOr(overrides map[string]int, key string, fallback int) int {
	if v, ok := overrides[key]; ok {
		return v
	}
	return fallback
}
