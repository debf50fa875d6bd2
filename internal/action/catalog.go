package action

import (
	"github.com/pfassina/grimdark/internal/combat"
	"github.com/pfassina/grimdark/internal/domain"
)

// Catalog maps every ActionType to its Action implementation. Built
// once and shared — the Action values here are stateless except for
// the combat Resolver they hold, which itself carries no per-call
// state (see combat.Resolver).
type Catalog struct {
	actions map[domain.ActionType]Action
}

// NewCatalog builds the shared Action set. tuning is optional (falls
// back to combat.DefaultTuning()); pass the scenario's
// config.CombatConfig-derived combat.Tuning to retune damage factors
// and crit multiplier without a rebuild.
func NewCatalog(tuning ...combat.Tuning) *Catalog {
	t := combat.DefaultTuning()
	if len(tuning) > 0 {
		t = tuning[0]
	}
	c := &Catalog{actions: make(map[domain.ActionType]Action)}
	c.register(MoveAction{})
	c.register(NewStandardAttack(t))
	c.register(NewQuickStrike(t))
	c.register(NewPowerAttack(t))
	c.register(WaitAction{})
	// PrepareInterrupt is intentionally not registered with a single
	// shared instance: each invocation needs a caller-supplied trigger
	// spec, so callers construct action.PrepareInterruptAction{...}
	// directly rather than going through the catalog.
	return c
}

func (c *Catalog) register(a Action) { c.actions[a.Type()] = a }

// Get returns the Action for t, or nil if t is ActionUnknown or
// ActionPrepareInterrupt (constructed directly — see NewCatalog).
func (c *Catalog) Get(t domain.ActionType) Action {
	return c.actions[t]
}
