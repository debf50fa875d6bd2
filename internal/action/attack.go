package action

import (
	"github.com/pfassina/grimdark/internal/combat"
	"github.com/pfassina/grimdark/internal/domain"
	"github.com/pfassina/grimdark/internal/events"
	"github.com/pfassina/grimdark/internal/pathfind"
)

// attackAction is shared by StandardAttack, QuickStrike, and
// PowerAttack — they differ only in ActionType, damage factor, and
// whether a counter may occur (spec §4.2).
type attackAction struct {
	actionType    domain.ActionType
	damageFactor  float64
	allowsCounter bool
	resolver      *combat.Resolver
}

func newAttackAction(t domain.ActionType, factor float64, allowsCounter bool, tuning combat.Tuning) attackAction {
	return attackAction{actionType: t, damageFactor: factor, allowsCounter: allowsCounter, resolver: combat.NewResolver(tuning)}
}

func (a attackAction) Type() domain.ActionType { return a.actionType }

func (a attackAction) Validate(actorID domain.EntityID, target Target, state State) ActionValidation {
	actor, ok := state.Entity(actorID)
	if !ok || !target.HasEntity {
		return ActionValidation{Reason: domain.ValidationTargetInvalid}
	}
	defender, ok := state.Entity(target.Entity)
	if !ok {
		return ActionValidation{Reason: domain.ValidationTargetInvalid}
	}
	if !defender.IsAlive() {
		return ActionValidation{Reason: domain.ValidationTargetDead}
	}
	if actor.Status.HasActed {
		return ActionValidation{Reason: domain.ValidationAlreadyActed}
	}
	if !pathfind.InRange(actor.Movement.Position, defender.Movement.Position, actor.Combat.RangeMin, actor.Combat.RangeMax) {
		return ActionValidation{Reason: domain.ValidationOutOfRange}
	}
	return ActionValidation{Ok: true, Reason: domain.ValidationOK}
}

func (a attackAction) Execute(actorID domain.EntityID, target Target, state State) ActionResult {
	actor, _ := state.Entity(actorID)
	defender, _ := state.Entity(target.Entity)

	terrainPenalty := -state.Map().Tile(defender.Movement.Position).DefenseBonus
	now := state.Now()
	seq := state.NextSeq()

	res := a.resolver.Resolve(actor, defender, a.actionType, a.damageFactor, a.allowsCounter, terrainPenalty, now, seq, state.Bus())

	actor.Status.HasActed = true
	if actor.AI != nil {
		actor.AI.TargetMemory = defender.ID
	}

	weight := EffectiveWeight(a.actionType.BaseWeight(), actor)

	state.Bus().Publish(domain.EventActionExecuted, events.ActionExecuted{
		Unit: actorID, Action: a.actionType, WeightSpent: weight,
		DamageDone: res.Damage,
	})

	woundCount := 0
	if res.WoundInflicted {
		woundCount = 1
	}
	return ActionResult{WeightSpent: weight, DamageDone: res.Damage, WoundsInflicted: woundCount}
}

// NewStandardAttack/NewQuickStrike/NewPowerAttack take an optional
// combat.Tuning (falling back to combat.DefaultTuning()) so a
// scenario's config.CombatConfig reaches the damage factor and the
// resolver's crit multiplier alike, rather than each carrying its own
// hardcoded literal.
func NewStandardAttack(tuning ...combat.Tuning) Action {
	t := combat.DefaultTuning()
	if len(tuning) > 0 {
		t = tuning[0]
	}
	return newAttackAction(domain.ActionStandardAttack, 1.0, true, t)
}

func NewQuickStrike(tuning ...combat.Tuning) Action {
	t := combat.DefaultTuning()
	if len(tuning) > 0 {
		t = tuning[0]
	}
	return newAttackAction(domain.ActionQuickStrike, t.QuickStrikeFactor, false, t)
}

func NewPowerAttack(tuning ...combat.Tuning) Action {
	t := combat.DefaultTuning()
	if len(tuning) > 0 {
		t = tuning[0]
	}
	return newAttackAction(domain.ActionPowerAttack, t.PowerAttackFactor, false, t)
}
