// Package combat implements the guaranteed-hit damage model: a pure
// forecaster for previews/AI scoring, and a mutating resolver that
// applies the same formula for real, seeded so replays reproduce
// identical rolls (spec §4.3).
package combat

import "github.com/pfassina/grimdark/internal/domain"

// Forecast is BattleCalculator's pure output — no state mutation, safe
// to call from UI previews and AI candidate scoring alike.
type Forecast struct {
	DamageMin       int
	DamageMax       int
	WillKill        bool
	CounterPossible bool
	CounterForecast *Forecast
}

// Tuning holds the balance constants a scenario's config can retune
// without a rebuild (spec §4.3's crit multiplier and the QuickStrike/
// PowerAttack damage factors). config.CombatConfig binds to this shape.
type Tuning struct {
	CritMultiplier    float64
	QuickStrikeFactor float64
	PowerAttackFactor float64
}

// DefaultTuning mirrors internal/domain's balance constants — the
// values every Calculator/Resolver uses when no config overrides them.
func DefaultTuning() Tuning {
	return Tuning{
		CritMultiplier:    domain.CritDamageMultiplier,
		QuickStrikeFactor: domain.QuickStrikeDamageFactor,
		PowerAttackFactor: domain.PowerAttackDamageFactor,
	}
}

// Calculator computes Forecasts. It holds no state but its Tuning;
// every call is otherwise a pure function of its arguments.
type Calculator struct {
	tuning Tuning
}

// NewCalculator builds a Calculator against tuning, or DefaultTuning()
// if tuning is omitted.
func NewCalculator(tuning ...Tuning) *Calculator {
	return &Calculator{tuning: pickTuning(tuning)}
}

func pickTuning(tuning []Tuning) Tuning {
	if len(tuning) > 0 {
		return tuning[0]
	}
	return DefaultTuning()
}

// DamageFactor returns the scaling factor t applies to the base
// formula — 1.0 for StandardAttack, the tuned value for QuickStrike/
// PowerAttack (spec §4.2). Used by the AI scorers and CombatManager's
// forecast; action.Catalog's construction reads the Tuning fields
// directly instead.
func (c *Calculator) DamageFactor(t domain.ActionType) float64 {
	switch t {
	case domain.ActionQuickStrike:
		return c.tuning.QuickStrikeFactor
	case domain.ActionPowerAttack:
		return c.tuning.PowerAttackFactor
	default:
		return 1.0
	}
}

// baseDamage implements spec §4.3 step 1: max(1, strength - defense/2 +
// terrain_defense_penalty). terrainDefensePenalty is usually 0 or
// negative (a bonus becomes a penalty to the attacker's effective
// damage) — callers pass grid.Tile.DefenseBonus negated.
func baseDamage(strength, defense, terrainDefensePenalty int) int {
	base := strength - defense/2 + terrainDefensePenalty
	if base < 1 {
		base = 1
	}
	return base
}

// variance implements spec §4.3 step 2: ±25%, i.e. round(base/4).
func variance(base int) int {
	v := base / 4
	if base%4*2 >= 4 { // round-half-up without floating point
		v++
	}
	return v
}

// Forecast computes the damage range and kill/counter possibility for
// actor attacking defender with the given damage factor (1.0 for
// StandardAttack, 0.75 for QuickStrike, 1.40 for PowerAttack — spec
// §4.2) and terrain penalty at the defender's tile.
func (c *Calculator) Forecast(attacker, defender *domain.Entity, damageFactor float64, terrainDefensePenalty int) Forecast {
	base := baseDamage(attacker.Combat.Strength, defender.Combat.Defense, terrainDefensePenalty)
	scaled := int(float64(base) * damageFactor)
	if scaled < 1 {
		scaled = 1
	}
	v := variance(scaled)

	dmgMin := scaled - v
	if dmgMin < 1 {
		dmgMin = 1
	}
	dmgMax := scaled + v

	// A critical hit widens the max but not the guaranteed min.
	critMax := int(float64(dmgMax) * c.tuning.CritMultiplier)

	f := Forecast{
		DamageMin: dmgMin,
		DamageMax: critMax,
		WillKill:  dmgMin >= defender.Health.HPCurrent,
	}

	if counterPossible(attacker, defender) {
		f.CounterPossible = true
		counterBase := baseDamage(defender.Combat.Strength, attacker.Combat.Defense, 0)
		cv := variance(counterBase)
		cMin := counterBase - cv
		if cMin < 1 {
			cMin = 1
		}
		f.CounterForecast = &Forecast{
			DamageMin: cMin,
			DamageMax: int(float64(counterBase+cv) * c.tuning.CritMultiplier),
			WillKill:  cMin >= attacker.Health.HPCurrent,
		}
	}

	return f
}

// counterPossible implements spec §4.3's counterattack condition: the
// defender is alive and the attacker's position lies within the
// defender's own [range_min, range_max].
func counterPossible(attacker, defender *domain.Entity) bool {
	if !defender.IsAlive() {
		return false
	}
	dist := attacker.Movement.Position.ManhattanDistance(defender.Movement.Position)
	return dist >= defender.Combat.RangeMin && dist <= defender.Combat.RangeMax
}
