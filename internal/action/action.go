// Package action implements the action system: a closed set of
// variants, each a validate/execute pair returning a value-type result
// rather than throwing (spec §4.2, §9). Grounded on the teacher's
// internal/engine/handlers Context/Result shape
// (internal/engine/handlers/interface.go) and its per-verb handler
// files under internal/engine/handlers/actions/ — same "handler reads
// a narrow Context, returns a plain Result" contract, generalized from
// JSON-command dispatch to the spec's Validate/Execute pair so the
// same path serves both human UI previews and AI planners.
package action

import (
	"github.com/pfassina/grimdark/internal/domain"
	"github.com/pfassina/grimdark/internal/events"
	"github.com/pfassina/grimdark/internal/grid"
)

// State is the narrow view of the simulation an Action needs. Engine
// owns the concrete GameState and satisfies this structurally, so
// internal/action never imports internal/engine (which imports this
// package) and no import cycle exists.
type State interface {
	Entity(id domain.EntityID) (*domain.Entity, bool)
	Map() *grid.Map
	Now() domain.Tick
	Bus() *events.Bus
	// NextSeq returns a monotonically increasing counter, shared with
	// the timeline scheduler, used to seed the deterministic RNG
	// stream for a single combat resolution (spec §4.3).
	NextSeq() uint64
}

// ActionValidation is the value-type result of Action.Validate — Ok
// carries any derived cost adjustment (e.g. actual movement cost);
// Reason is ValidationOK exactly when Ok is true.
type ActionValidation struct {
	Ok     bool
	Reason domain.ValidationReason
	Cost   int
}

// ActionResult is what Action.Execute returns after mutating State and
// publishing events.
type ActionResult struct {
	WeightSpent     domain.Weight
	DamageDone      int
	WoundsInflicted int
}

// Action is implemented once per ActionType variant (spec §4.2).
// Target is an EntityID for attacks, or encodes a destination for
// Move; Wait and PrepareInterrupt ignore it — callers pass the
// variant-appropriate Target value; see each file's doc comment.
type Action interface {
	Type() domain.ActionType
	Validate(actor domain.EntityID, target Target, state State) ActionValidation
	Execute(actor domain.EntityID, target Target, state State) ActionResult
}

// Target is a sum of the two shapes a variant's target can take: a
// grid destination (Move) or another entity (everything else).
type Target struct {
	Pos        domain.Vector2
	HasPos     bool
	Entity     domain.EntityID
	HasEntity  bool
}

func PosTarget(p domain.Vector2) Target    { return Target{Pos: p, HasPos: true} }
func EntityTarget(id domain.EntityID) Target { return Target{Entity: id, HasEntity: true} }

// EffectiveWeight applies modifiers from wounds/morale/equipment on top
// of an action's base weight (spec §4.2). Equipment has no component in
// this core (item/inventory systems are out of scope; see DESIGN.md),
// so only wound and morale modifiers are read here.
func EffectiveWeight(base domain.Weight, actor *domain.Entity) domain.Weight {
	w := int(base)
	if actor.Wound != nil {
		for _, wound := range actor.Wound.Wounds {
			switch wound.Severity {
			case domain.WoundModerate:
				w += 10
			case domain.WoundSevere:
				w += 25
			case domain.WoundMortal:
				w += 50
			}
		}
	}
	if actor.Morale != nil {
		switch actor.Morale.State {
		case domain.MoralePanicked, domain.MoraleRouted:
			w += 20
		case domain.MoraleHeroic, domain.MoraleConfident:
			w -= 10
		}
	}
	if w < domain.MinWeight {
		w = domain.MinWeight
	}
	if w > domain.MaxWeight {
		w = domain.MaxWeight
	}
	return domain.Weight(w)
}
