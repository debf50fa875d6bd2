// Package ai implements the synchronous AI Controller interface (spec
// §4.10): given a unit's TurnStarted, produce an (Action, target) pair
// that validates through the same Action.Validate/combat.Calculator
// path a human player uses — the controller gets no hidden-information
// shortcut.
//
// Grounded on the teacher's internal/agent package (a single Decide
// entry point consuming the same handler Context a player action
// would), generalized from its fixed script-driven NPC routines to the
// spec's personality-scored candidate search over the real action
// catalog.
package ai

import (
	"github.com/pfassina/grimdark/internal/action"
	"github.com/pfassina/grimdark/internal/combat"
	"github.com/pfassina/grimdark/internal/domain"
	"github.com/pfassina/grimdark/internal/pathfind"
)

// State is action.State plus the one extra capability the controller
// needs that no Action implementation does: enumerating other units
// to find targets. Kept separate from action.State (rather than
// widening it) so every Action file's narrow contract is untouched.
type State interface {
	action.State
	AllEntities() []domain.EntityID
}

// Candidate is one (action, target) pair the controller considered.
type Candidate struct {
	Action domain.ActionType
	Target action.Target
}

// Scorer assigns a personality-weighted score to a candidate. The
// default implementation lives in scorer.go; internal/ai/script
// supplies a Lua-backed alternative with the same signature.
type Scorer interface {
	Score(unit *domain.Entity, cand Candidate, state State, calc *combat.Calculator) float64
}

// Controller is the concrete AIController (spec §4.10). One instance
// is shared by every AI-personality unit; it holds no per-unit state.
type Controller struct {
	catalog *action.Catalog
	calc    *combat.Calculator
	scorer  Scorer
}

func NewController(catalog *action.Catalog, calc *combat.Calculator, scorer Scorer) *Controller {
	if scorer == nil {
		scorer = DefaultScorer{}
	}
	return &Controller{catalog: catalog, calc: calc, scorer: scorer}
}

// Decide returns the best-scoring validated candidate for unitID, or
// (ActionWait, Target{}, true) if nothing else validates. ok is false
// only if unitID does not name a live entity.
func (c *Controller) Decide(unitID domain.EntityID, state State) (domain.ActionType, action.Target, bool) {
	unit, ok := state.Entity(unitID)
	if !ok || !unit.IsAlive() {
		return domain.ActionUnknown, action.Target{}, false
	}

	var best Candidate
	bestScore := negInf
	found := false

	for _, cand := range c.candidates(unit, state) {
		act := c.catalog.Get(cand.Action)
		if act == nil {
			continue
		}
		v := act.Validate(unitID, cand.Target, state)
		if !v.Ok {
			continue
		}
		score := c.scorer.Score(unit, cand, state, c.calc)
		if !found || score > bestScore {
			best, bestScore, found = cand, score, true
		}
	}

	if !found {
		return domain.ActionWait, action.Target{}, true
	}
	return best.Action, best.Target, true
}

const negInf = -1e18

// attackActionTypes is the subset of the catalog that takes an
// EntityTarget; Wait and Move are handled separately below.
var attackActionTypes = []domain.ActionType{
	domain.ActionStandardAttack,
	domain.ActionQuickStrike,
	domain.ActionPowerAttack,
}

func (c *Controller) candidates(unit *domain.Entity, state State) []Candidate {
	out := []Candidate{{Action: domain.ActionWait}}

	var nearestEnemy *domain.Entity
	nearestDist := -1
	haveAttack := false

	for _, id := range state.AllEntities() {
		other, ok := state.Entity(id)
		if !ok || !other.IsAlive() || other.Actor.Team == unit.Actor.Team {
			continue
		}
		dist := unit.Movement.Position.ManhattanDistance(other.Movement.Position)
		if nearestDist < 0 || dist < nearestDist {
			nearestDist, nearestEnemy = dist, other
		}
		for _, at := range attackActionTypes {
			if pathfind.InRange(unit.Movement.Position, other.Movement.Position, unit.Combat.RangeMin, unit.Combat.RangeMax) {
				out = append(out, Candidate{Action: at, Target: action.EntityTarget(id)})
				haveAttack = true
			}
		}
	}

	if !haveAttack && nearestEnemy != nil && !unit.Status.HasMoved {
		if dest, ok := c.advanceTowards(unit, nearestEnemy, state); ok {
			out = append(out, Candidate{Action: domain.ActionMove, Target: action.PosTarget(dest)})
		}
	}

	return out
}

// advanceTowards picks the reachable tile that minimizes remaining
// Manhattan distance to target, breaking ties by (y, x) for
// determinism (spec §4.8's tie-break convention, reused here).
func (c *Controller) advanceTowards(unit, target *domain.Entity, state State) (domain.Vector2, bool) {
	reachable := pathfind.Reachable(state.Map(), unit.Movement.Position, unit.Movement.MovementPoints, func(p domain.Vector2) bool {
		id, occupied := state.Map().OccupantAt(p)
		if !occupied {
			return false
		}
		other, ok := state.Entity(id)
		return ok && other.IsAlive()
	})

	var (
		best      domain.Vector2
		bestDist  = unit.Movement.Position.ManhattanDistance(target.Movement.Position)
		foundBest bool
	)
	for pos := range reachable.Cost {
		if pos.Equals(unit.Movement.Position) {
			continue
		}
		d := pos.ManhattanDistance(target.Movement.Position)
		switch {
		case !foundBest, d < bestDist, d == bestDist && lessVec(pos, best):
			best, bestDist, foundBest = pos, d, true
		}
	}
	return best, foundBest
}

func lessVec(a, b domain.Vector2) bool {
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.X < b.X
}
