package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/pfassina/grimdark/internal/action"
	"github.com/pfassina/grimdark/internal/domain"
)

// targetPayload is ReplayAction.Payload's JSON shape: exactly one of
// Pos or Entity is set, mirroring action.Target's sum-type split.
type targetPayload struct {
	Pos    *domain.Vector2 `json:"pos,omitempty"`
	Entity *domain.EntityID `json:"entity,omitempty"`
}

// EncodeTarget turns an action.Target into the payload a ReplayAction
// stores, so a recorded session can reconstruct the exact target passed
// to Action.Validate/Execute without widening ReplayAction itself.
func EncodeTarget(t action.Target) (json.RawMessage, error) {
	var p targetPayload
	if t.HasPos {
		p.Pos = &t.Pos
	}
	if t.HasEntity {
		p.Entity = &t.Entity
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("persistence: encode target: %w", err)
	}
	return data, nil
}

// DecodeTarget is EncodeTarget's inverse.
func DecodeTarget(raw json.RawMessage) (action.Target, error) {
	var p targetPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return action.Target{}, fmt.Errorf("persistence: decode target: %w", err)
	}
	var t action.Target
	if p.Pos != nil {
		t = action.PosTarget(*p.Pos)
	}
	if p.Entity != nil {
		t = action.EntityTarget(*p.Entity)
	}
	return t, nil
}

// Player drives a recorded ReplaySession back through a live game one
// action at a time. It holds no state of its own beyond the session and
// a read cursor — the caller's GameState is the thing actually being
// replayed, which is what makes replay determinism (spec §5, §8
// property 7) meaningful: the same State + the same action stream must
// reach the same event log.
type Player struct {
	session domain.ReplaySession
	cursor  int
}

func NewPlayer(session domain.ReplaySession) *Player {
	return &Player{session: session}
}

// ScenarioID and Seed expose the values a caller needs to rebuild an
// identical GameState before stepping through Next.
func (p *Player) ScenarioID() string { return p.session.ScenarioID }
func (p *Player) Seed() int64        { return p.session.Seed }

// Done reports whether every recorded action has been consumed.
func (p *Player) Done() bool { return p.cursor >= len(p.session.Actions) }

// Next decodes the next recorded action, validates it against catalog
// and state, executes it if valid, and advances the cursor regardless —
// a replay that hits an invalid action has diverged from the recording
// and the caller decides whether that is fatal.
func (p *Player) Next(catalog *action.Catalog, state action.State) (domain.ReplayAction, action.ActionResult, action.ActionValidation, error) {
	if p.Done() {
		return domain.ReplayAction{}, action.ActionResult{}, action.ActionValidation{}, fmt.Errorf("persistence: replay exhausted")
	}
	rec := p.session.Actions[p.cursor]
	p.cursor++

	target, err := DecodeTarget(rec.Payload)
	if err != nil {
		return rec, action.ActionResult{}, action.ActionValidation{}, err
	}

	act := catalog.Get(rec.Action)
	if act == nil {
		return rec, action.ActionResult{}, action.ActionValidation{}, fmt.Errorf("persistence: unknown action type %v", rec.Action)
	}

	validation := act.Validate(rec.Actor, target, state)
	if !validation.Ok {
		return rec, action.ActionResult{}, validation, nil
	}
	result := act.Execute(rec.Actor, target, state)
	return rec, result, validation, nil
}
