package domain

// Entity is a composite unit addressed by a stable EntityID. Required
// components are concrete value fields (never nil on a live entity);
// optional components are pointers, present only once something
// attaches them. Components() exposes the same data behind the closed
// ComponentKind tag the spec requires for generic presence-checking
// code (validators, the objective evaluator) without forcing every
// caller through a type switch.
type Entity struct {
	ID EntityID `json:"id"`

	Actor    ActorComponent    `json:"actor"`
	Health   HealthComponent   `json:"health"`
	Movement MovementComponent `json:"movement"`
	Combat   CombatComponent   `json:"combat"`
	Status   StatusComponent   `json:"status"`

	Morale    *MoraleComponent    `json:"morale,omitempty"`
	Wound     *WoundComponent     `json:"wound,omitempty"`
	Interrupt *InterruptComponent `json:"interrupt,omitempty"`
	AI        *AIComponent        `json:"ai,omitempty"`
	Vision    *VisionComponent    `json:"vision,omitempty"`
}

// NewEntity builds an entity with its required components populated
// and every optional component absent.
func NewEntity(id EntityID, actor ActorComponent, health HealthComponent, movement MovementComponent, combat CombatComponent) *Entity {
	return &Entity{
		ID:       id,
		Actor:    actor,
		Health:   health,
		Movement: movement,
		Combat:   combat,
		Status:   StatusComponent{},
	}
}

// IsAlive reports whether the entity's Health component still has hp.
func (e *Entity) IsAlive() bool { return e.Health.IsAlive() }

// Has reports whether the given optional ComponentKind is attached.
// Required kinds always report true.
func (e *Entity) Has(kind ComponentKind) bool {
	switch kind {
	case ComponentActor, ComponentHealth, ComponentMovement, ComponentCombat, ComponentStatus:
		return true
	case ComponentMorale:
		return e.Morale != nil
	case ComponentWound:
		return e.Wound != nil
	case ComponentInterrupt:
		return e.Interrupt != nil
	case ComponentAI:
		return e.AI != nil
	case ComponentVision:
		return e.Vision != nil
	default:
		return false
	}
}

// VisionRadiusOf returns e's effective perception radius: its own
// VisionComponent if attached, else the package default.
func (e *Entity) VisionRadiusOf() int {
	if e.Vision != nil {
		return e.Vision.Radius
	}
	return VisionRadius
}

// Components returns a sparse map of every attached component, keyed by
// its closed ComponentKind tag. Intended for generic inspection (e.g.
// the objective evaluator's CEL context, diagnostics); hot paths should
// read the typed fields directly instead.
func (e *Entity) Components() map[ComponentKind]any {
	out := map[ComponentKind]any{
		ComponentActor:    &e.Actor,
		ComponentHealth:   &e.Health,
		ComponentMovement: &e.Movement,
		ComponentCombat:   &e.Combat,
		ComponentStatus:   &e.Status,
	}
	if e.Morale != nil {
		out[ComponentMorale] = e.Morale
	}
	if e.Wound != nil {
		out[ComponentWound] = e.Wound
	}
	if e.Interrupt != nil {
		out[ComponentInterrupt] = e.Interrupt
	}
	if e.AI != nil {
		out[ComponentAI] = e.AI
	}
	if e.Vision != nil {
		out[ComponentVision] = e.Vision
	}
	return out
}
