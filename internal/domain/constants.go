package domain

// Base weights (ticks added to an actor's next ready time) per action
// variant. Move's own weight is charged only via the terminating action
// that ends the activation (spec §4.2); Move itself does not schedule.
const (
	WeightMove             Weight = 100
	WeightStandardAttack   Weight = 100
	WeightQuickStrike      Weight = 60
	WeightPowerAttack      Weight = 180
	WeightPrepareInterrupt Weight = 130
	WeightWait             Weight = 50
)

// Damage multipliers relative to the base formula in internal/combat.
// These are the balance defaults; internal/combat.Tuning lets a
// scenario's config retune them without a rebuild.
const (
	QuickStrikeDamageFactor = 0.75
	PowerAttackDamageFactor = 1.40
	CritDamageMultiplier    = 2.0
)

// Wound threshold: a hit whose damage is at least this fraction of the
// defender's hp_max triggers the wound factory.
const WoundDamageThresholdFraction = 0.30

// Perception defaults, used when a unit's Vision/AI scenario data is
// silent on the value.
const (
	VisionRadius = 8
	AggroRadius  = 10
)
