package objective

import "github.com/pfassina/grimdark/internal/domain"

// Bucket is the two outcomes a predicate can push the battle toward.
type Bucket uint8

const (
	BucketVictory Bucket = iota
	BucketDefeat
)

func (b Bucket) String() string {
	if b == BucketDefeat {
		return "Defeat"
	}
	return "Victory"
}

// Kind closes the set of predicate shapes spec §4.9 names.
type Kind uint8

const (
	KindDefeatAllEnemies Kind = iota
	KindSurviveTurns
	KindReachPosition
	KindDefeatUnit
	KindPositionCaptured
	KindAllUnitsDefeated
	KindProtectUnit
	KindTurnLimit
)

func (k Kind) String() string {
	switch k {
	case KindDefeatAllEnemies:
		return "defeat_all_enemies"
	case KindSurviveTurns:
		return "survive_turns"
	case KindReachPosition:
		return "reach_position"
	case KindDefeatUnit:
		return "defeat_unit"
	case KindPositionCaptured:
		return "position_captured"
	case KindAllUnitsDefeated:
		return "all_units_defeated"
	case KindProtectUnit:
		return "protect_unit"
	case KindTurnLimit:
		return "turn_limit"
	default:
		return "unknown"
	}
}

// triggerEvents lists the event kinds that can make each predicate
// kind flip, per spec §4.9's table — objectives are re-checked only
// when one of these fires, never polled.
func (k Kind) triggerEvents() []domain.EventKind {
	switch k {
	case KindDefeatAllEnemies, KindDefeatUnit, KindAllUnitsDefeated, KindProtectUnit:
		return []domain.EventKind{domain.EventUnitDefeated}
	case KindSurviveTurns, KindTurnLimit:
		return []domain.EventKind{domain.EventTurnEnded}
	case KindReachPosition:
		return []domain.EventKind{domain.EventUnitMoved}
	case KindPositionCaptured:
		return []domain.EventKind{domain.EventUnitMoved, domain.EventTurnEnded}
	default:
		return nil
	}
}

// Objective is one instantiated predicate: a kind plus the parameters
// it needs (target tick, target position, target unit) and the
// resolution state tracked across events.
type Objective struct {
	Name   string
	Kind   Kind
	Bucket Bucket

	TargetTick     domain.Tick
	TargetPosition domain.Vector2
	TargetUnit     domain.EntityID

	// occupied and turnsOccupied track position_captured's "for 1 full
	// turn" requirement: occupied reflects UnitMoved in/out of the
	// tile, turnsOccupied counts consecutive TurnEnded boundaries
	// crossed while occupied stayed true.
	occupied      bool
	turnsOccupied int

	resolved bool
}

func NewDefeatAllEnemies(name string) *Objective {
	return &Objective{Name: name, Kind: KindDefeatAllEnemies, Bucket: BucketVictory}
}

func NewAllUnitsDefeated(name string) *Objective {
	return &Objective{Name: name, Kind: KindAllUnitsDefeated, Bucket: BucketDefeat}
}

func NewSurviveTurns(name string, targetTick domain.Tick) *Objective {
	return &Objective{Name: name, Kind: KindSurviveTurns, Bucket: BucketVictory, TargetTick: targetTick}
}

func NewTurnLimit(name string, limitTick domain.Tick) *Objective {
	return &Objective{Name: name, Kind: KindTurnLimit, Bucket: BucketDefeat, TargetTick: limitTick}
}

func NewReachPosition(name string, unit domain.EntityID, pos domain.Vector2) *Objective {
	return &Objective{Name: name, Kind: KindReachPosition, Bucket: BucketVictory, TargetUnit: unit, TargetPosition: pos}
}

func NewDefeatUnit(name string, unit domain.EntityID) *Objective {
	return &Objective{Name: name, Kind: KindDefeatUnit, Bucket: BucketVictory, TargetUnit: unit}
}

// NewProtectUnit's bucket is Defeat: the predicate is satisfied — and
// the battle lost — the moment the protected unit is no longer alive.
func NewProtectUnit(name string, unit domain.EntityID) *Objective {
	return &Objective{Name: name, Kind: KindProtectUnit, Bucket: BucketDefeat, TargetUnit: unit}
}

func NewPositionCaptured(name string, pos domain.Vector2) *Objective {
	return &Objective{Name: name, Kind: KindPositionCaptured, Bucket: BucketVictory, TargetPosition: pos}
}
