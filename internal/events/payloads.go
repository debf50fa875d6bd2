package events

import "github.com/pfassina/grimdark/internal/domain"

// Payload structs for the closed EventKind set (spec §4.4). Handlers
// type-assert Event.Payload to the variant matching the Kind they
// subscribed to — see Typed() in bus.go for the ergonomic wrapper.

type TurnStarted struct {
	Unit domain.EntityID
	Tick domain.Tick
}

type TurnEnded struct {
	Unit domain.EntityID
	Tick domain.Tick
}

type UnitMoved struct {
	Unit domain.EntityID
	From domain.Vector2
	To   domain.Vector2
	Path []domain.Vector2
	Cost int
}

type UnitAttacked struct {
	Attacker domain.EntityID
	Defender domain.EntityID
	Action   domain.ActionType
}

type UnitTookDamage struct {
	Unit           domain.EntityID
	Amount         int
	VarianceBucket int // +1 for a critical hit, otherwise 0
	ResultingHP    int
	Crit           bool
}

type UnitDefeated struct {
	Unit    domain.EntityID
	Killer  domain.EntityID
	AtTick  domain.Tick
}

type BattlePhaseChanged struct {
	From string
	To   string
}

type ActionSelected struct {
	Unit   domain.EntityID
	Action domain.ActionType
}

type ActionExecuted struct {
	Unit           domain.EntityID
	Action         domain.ActionType
	WeightSpent    domain.Weight
	DamageDone     int
	WoundsInflicted int
}

type MovementCompleted struct {
	Unit domain.EntityID
	At   domain.Vector2
}

type InterruptPrepared struct {
	Unit     domain.EntityID
	Priority int
}

type InterruptTriggered struct {
	Unit      domain.EntityID
	TriggerBy domain.EntityID
}

type ObjectiveCompleted struct {
	Name string
	Tick domain.Tick
}

type ObjectiveFailed struct {
	Name string
	Tick domain.Tick
}

type ScenarioLoaded struct {
	ScenarioID string
	UnitCount  int
}

type LogLevel uint8

const (
	LogInfo LogLevel = iota
	LogCombat
	LogSystem
	LogDebug
)

type LogMessage struct {
	Level   LogLevel
	Message string
	Tick    domain.Tick
}

type HazardTriggered struct {
	Hazard domain.EntityID
	At     domain.Vector2
}

type MoraleChanged struct {
	Unit     domain.EntityID
	OldState domain.MoraleState
	NewState domain.MoraleState
	NewValue int
}

type UnitRallied struct {
	Unit domain.EntityID
}

type UnitRouted struct {
	Unit domain.EntityID
}
