package combat

import (
	"math/rand"

	"github.com/pfassina/grimdark/internal/domain"
	"github.com/pfassina/grimdark/internal/events"
)

// ResolveResult mirrors ActionResult's combat-relevant fields so
// internal/action can fold it straight into its own result.
type ResolveResult struct {
	Damage          int
	Crit            bool
	DefenderKilled  bool
	WoundInflicted  bool
	CounterDamage   int
	CounterCrit     bool
	AttackerKilled  bool
}

// Resolver applies damage for real: rolls the seeded stream, mutates
// HP, grows Wound components past the threshold, and publishes the
// UnitAttacked/UnitTookDamage/UnitDefeated sequence (spec §4.3).
type Resolver struct {
	calc   *Calculator
	tuning Tuning
}

// NewResolver builds a Resolver against tuning, or DefaultTuning() if
// tuning is omitted — the same seam action.Catalog threads a
// scenario's config.CombatConfig through.
func NewResolver(tuning ...Tuning) *Resolver {
	t := pickTuning(tuning)
	return &Resolver{calc: NewCalculator(t), tuning: t}
}

// Resolve runs one full exchange: the primary hit, and — if the
// attacker used StandardAttack and the counter condition holds — the
// single permitted counter-hit, using the same formula with roles
// swapped (spec §4.3's "only one counter per exchange").
func (r *Resolver) Resolve(
	attacker, defender *domain.Entity,
	action domain.ActionType,
	damageFactor float64,
	allowsCounter bool,
	terrainDefensePenalty int,
	now domain.Tick,
	seq uint64,
	bus *events.Bus,
) ResolveResult {
	stream := NewStream(attacker.ID, defender.ID, now, seq)

	result := ResolveResult{}
	result.Damage, result.Crit = r.rollHit(stream, attacker.Combat.Strength, defender.Combat.Defense, damageFactor, terrainDefensePenalty, attacker.Combat.CritChance)

	bus.Publish(domain.EventUnitAttacked, events.UnitAttacked{
		Attacker: attacker.ID,
		Defender: defender.ID,
		Action:   action,
	})

	r.applyDamage(defender, result.Damage, result.Crit, now, attacker.ID, bus)
	result.DefenderKilled = !defender.IsAlive()
	result.WoundInflicted = float64(result.Damage) >= domain.WoundDamageThresholdFraction*float64(defender.Health.HPMax)

	if result.DefenderKilled {
		bus.Publish(domain.EventUnitDefeated, events.UnitDefeated{
			Unit: defender.ID, Killer: attacker.ID, AtTick: now,
		})
		return result
	}

	if allowsCounter && counterPossible(attacker, defender) {
		counterStream := stream // same stream: spec pins one RNG stream per resolution
		result.CounterDamage, result.CounterCrit = r.rollHit(counterStream, defender.Combat.Strength, attacker.Combat.Defense, 1.0, 0, defender.Combat.CritChance)
		r.applyDamage(attacker, result.CounterDamage, result.CounterCrit, now, defender.ID, bus)
		result.AttackerKilled = !attacker.IsAlive()
		if result.AttackerKilled {
			bus.Publish(domain.EventUnitDefeated, events.UnitDefeated{
				Unit: attacker.ID, Killer: defender.ID, AtTick: now,
			})
		}
	}

	return result
}

func (r *Resolver) rollHit(stream *rand.Rand, strength, defense int, damageFactor float64, terrainDefensePenalty, critChance int) (damage int, crit bool) {
	base := baseDamage(strength, defense, terrainDefensePenalty)
	scaled := int(float64(base) * damageFactor)
	if scaled < 1 {
		scaled = 1
	}
	v := variance(scaled)

	span := 2*v + 1
	damage = scaled - v + stream.Intn(span)
	if damage < 1 {
		damage = 1
	}

	if critChance > 0 && stream.Intn(100) < critChance {
		damage = int(float64(damage) * r.tuning.CritMultiplier)
		crit = true
	}
	return damage, crit
}

func (r *Resolver) applyDamage(unit *domain.Entity, damage int, crit bool, now domain.Tick, source domain.EntityID, bus *events.Bus) {
	unit.Health.HPCurrent -= damage
	if unit.Health.HPCurrent < 0 {
		unit.Health.HPCurrent = 0
	}

	bucket := 0
	switch {
	case crit:
		bucket = 1
	case damage < 0:
		bucket = -1
	}

	bus.Publish(domain.EventUnitTookDamage, events.UnitTookDamage{
		Unit: unit.ID, Amount: damage, VarianceBucket: bucket,
		ResultingHP: unit.Health.HPCurrent, Crit: crit,
	})

	if float64(damage) >= domain.WoundDamageThresholdFraction*float64(unit.Health.HPMax) {
		if unit.Wound == nil {
			unit.Wound = &domain.WoundComponent{}
		}
		stream := NewStream(source, unit.ID, now, uint64(damage))
		wound := MakeWound(stream, damage, unit.Health.HPMax, now, source)
		unit.Wound.Wounds = append(unit.Wound.Wounds, wound)
	}
}
