package engine

import (
	"github.com/pfassina/grimdark/internal/action"
	"github.com/pfassina/grimdark/internal/combat"
	"github.com/pfassina/grimdark/internal/domain"
	"github.com/pfassina/grimdark/internal/phase"
	"github.com/pfassina/grimdark/internal/render"
)

// CombatManager holds targeting state for the unit currently in
// ActionTargeting — the candidate list, the index the cursor is on,
// and the friendly-fire confirmation flag (spec §4.7). It never
// resolves damage itself; Confirm hands off to the chosen Action,
// which in turn drives internal/combat.Resolver.
type CombatManager struct {
	state *GameState

	attacker   domain.EntityID
	actionType domain.ActionType
	candidates []domain.EntityID
	idx        int
	hasTarget  bool

	friendlyFirePending   bool
	friendlyFireConfirmed bool
}

func newCombatManager(s *GameState) *CombatManager { return &CombatManager{state: s} }

// BeginTargeting opens ActionTargeting for attacker using actionType
// against candidates (every entity the attack-range set currently
// covers); the first candidate becomes the default target.
func (cm *CombatManager) BeginTargeting(attacker domain.EntityID, actionType domain.ActionType, candidates []domain.EntityID) {
	cm.attacker = attacker
	cm.actionType = actionType
	cm.candidates = candidates
	cm.idx = 0
	cm.hasTarget = len(candidates) > 0
	cm.friendlyFirePending = false
	cm.friendlyFireConfirmed = false
	cm.checkFriendlyFire()
}

// Clear exits targeting state, called on Cancel or after Confirm.
func (cm *CombatManager) Clear() {
	*cm = CombatManager{state: cm.state}
}

// CycleNext/CyclePrev move the current target index, wrapping.
func (cm *CombatManager) CycleNext() {
	if len(cm.candidates) == 0 {
		return
	}
	cm.idx = (cm.idx + 1) % len(cm.candidates)
	cm.checkFriendlyFire()
}

func (cm *CombatManager) CyclePrev() {
	if len(cm.candidates) == 0 {
		return
	}
	cm.idx = (cm.idx - 1 + len(cm.candidates)) % len(cm.candidates)
	cm.checkFriendlyFire()
}

func (cm *CombatManager) checkFriendlyFire() {
	cm.friendlyFireConfirmed = false
	attacker, aok := cm.state.Entity(cm.attacker)
	defender, dok := cm.currentTarget()
	cm.friendlyFirePending = aok && dok && attacker.Actor.Team == defender.Actor.Team
}

func (cm *CombatManager) currentTarget() (*domain.Entity, bool) {
	if !cm.hasTarget || cm.idx >= len(cm.candidates) {
		return nil, false
	}
	return cm.state.Entity(cm.candidates[cm.idx])
}

// Participants satisfies render.State's forecast seam.
func (cm *CombatManager) Participants() (attacker, defender domain.EntityID, ok bool) {
	target, tok := cm.currentTarget()
	if !tok {
		return domain.NilEntityID, domain.NilEntityID, false
	}
	return cm.attacker, target.ID, true
}

// Forecast computes the pure damage preview for the current
// attacker/target pair, or nil if there is no valid target (spec
// §4.7: "Uses BattleCalculator to produce the forecast exposed via
// GameState for rendering").
func (cm *CombatManager) Forecast() *combat.Forecast {
	attacker, aok := cm.state.Entity(cm.attacker)
	defender, dok := cm.currentTarget()
	if !aok || !dok {
		return nil
	}
	factor := cm.state.calc.DamageFactor(cm.actionType)
	terrainPenalty := -cm.state.Map().Tile(defender.Movement.Position).DefenseBonus
	f := cm.state.calc.Forecast(attacker, defender, factor, terrainPenalty)
	return &f
}

// NeedsFriendlyFireConfirm reports whether the current target shares
// the attacker's team and a second affirmative input is still owed
// (spec §4.7's ConfirmFriendlyFire sub-state).
func (cm *CombatManager) NeedsFriendlyFireConfirm() bool {
	return cm.friendlyFirePending && !cm.friendlyFireConfirmed
}

// ConfirmFriendlyFire records the second affirmative input.
func (cm *CombatManager) ConfirmFriendlyFire() { cm.friendlyFireConfirmed = true }

// Confirm executes the targeted action through the shared catalog —
// the same Validate/Execute path a human or an AI candidate search
// uses (spec §4.2's "no separate AI attack logic"). Returns false
// without mutating state if a friendly-fire confirmation is still
// outstanding or validation fails.
func (cm *CombatManager) Confirm() (action.ActionResult, bool) {
	if cm.NeedsFriendlyFireConfirm() {
		return action.ActionResult{}, false
	}
	target, ok := cm.currentTarget()
	if !ok {
		return action.ActionResult{}, false
	}
	act := cm.state.catalog.Get(cm.actionType)
	if act == nil {
		return action.ActionResult{}, false
	}
	tgt := action.EntityTarget(target.ID)
	validation := act.Validate(cm.attacker, tgt, cm.state)
	if !validation.Ok {
		return action.ActionResult{}, false
	}
	result := act.Execute(cm.attacker, tgt, cm.state)
	cm.state.battlePhase.Apply(phase.Trigger{TargetConfirmed: true})
	return result, true
}

// Overlays builds the UnitMoving/ActionTargeting overlay set from the
// selection manager's reachable/attack-range sets plus the cursor,
// consumed by render.Build (spec §6.2's overlay list).
func (cm *CombatManager) Overlays(sel *SelectionManager) []render.Overlay {
	out := make([]render.Overlay, 0)
	for pos := range sel.ReachableSet().Cost {
		out = append(out, render.Overlay{Kind: render.OverlayMovementRange, X: pos.X, Y: pos.Y})
	}
	for _, pos := range sel.AttackRange() {
		out = append(out, render.Overlay{Kind: render.OverlayAttackRange, X: pos.X, Y: pos.Y})
	}
	cursor := sel.Cursor()
	out = append(out, render.Overlay{Kind: render.OverlayCursor, X: cursor.X, Y: cursor.Y})
	return out
}
