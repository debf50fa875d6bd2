package engine

import (
	"context"
	"fmt"

	"github.com/pfassina/grimdark/internal/action"
	"github.com/pfassina/grimdark/internal/ai"
	"github.com/pfassina/grimdark/internal/domain"
	"github.com/pfassina/grimdark/internal/events"
	"github.com/pfassina/grimdark/internal/persistence"
	"github.com/pfassina/grimdark/internal/timeline"
)

// maxActionsPerActivation bounds how many non-terminating actions
// (Move, in practice) one activation can chain before a terminal
// action ends it — a backstop against a controller or replay bug that
// never produces a terminal action, not a named invariant.
const maxActionsPerActivation = 8

// Command is one externally supplied (action, target) pair for the
// human-controlled unit currently active. The UI layer submits it once
// SelectionManager/CombatManager have already walked player intent
// through the same catalog path Confirm uses.
type Command struct {
	Action domain.ActionType
	Target action.Target
}

// Instance owns one battle's turn-sequencing loop, grounded on the
// teacher's internal/engine.Instance.Run (select on join/leave,
// peek-next-actor, human/AI branch, command channel with timeout) —
// generalized from a live-service loop arbitrating many human sources
// over a shared CommandChan with a wall-clock timeout, to a single
// offline battle core with one human seat and no forced turn timeout.
type Instance struct {
	state    *GameState
	ai       *ai.Controller
	recorder *persistence.Recorder

	commands chan Command
	fatal    chan domain.FatalError
}

// InstanceOption customizes NewInstance's construction, following the
// teacher's WithPayload/WithEmptyPayload naming for optional wiring.
type InstanceOption func(*instanceConfig)

type instanceConfig struct {
	scorer ai.Scorer
}

// WithScorer overrides the AI controller's scoring strategy. Omitted,
// the controller falls back to ai.DefaultScorer; pass an
// ai.NewScriptScorer(engine) to let a scenario's Lua files tune AI
// behavior instead.
func WithScorer(scorer ai.Scorer) InstanceOption {
	return func(c *instanceConfig) { c.scorer = scorer }
}

// NewInstance wires a GameState already materialized by Materialize
// into a runnable turn loop.
func NewInstance(state *GameState, scenarioID string, timestamp int64, opts ...InstanceOption) *Instance {
	cfg := instanceConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	inst := &Instance{
		state:    state,
		ai:       ai.NewController(state.Catalog(), state.Calculator(), cfg.scorer),
		recorder: persistence.NewRecorder(scenarioID, state.Seed(), timestamp),
		commands: make(chan Command),
		fatal:    make(chan domain.FatalError, 1),
	}
	state.Bus().OnRecursionLimit(func(kind domain.EventKind, depth int) {
		select {
		case inst.fatal <- domain.NewEventRecursionLimitError(state.Now(), state.Seed(), events.DefaultRecursionLimit):
		default:
		}
	})
	return inst
}

// Submit delivers a human command to the currently active unit's
// activation. Blocks until Run is ready to receive it or ctx ends.
func (i *Instance) Submit(ctx context.Context, cmd Command) error {
	select {
	case i.commands <- cmd:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Recorder exposes the replay recorder so a host can flush it on
// battle end or its own autosave cadence.
func (i *Instance) Recorder() *persistence.Recorder { return i.recorder }

// Run drives one activation per timeline pop until GamePhase reaches
// GameOver, ctx is cancelled, an invariant breaks (spec §7's
// FatalError set), or an activation fails with a plain error (an
// unknown action, an AI choice that fails validation, or an AI unit
// that cannot decide).
func (i *Instance) Run(ctx context.Context) error {
	for {
		select {
		case err := <-i.fatal:
			return err
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if i.state.Phase() == domain.GamePhaseGameOver {
			return nil
		}

		entry := i.state.scheduler.Pop()
		if entry == nil {
			return domain.NewEmptyTimelineError(i.state.now, i.state.seed)
		}

		unit, ok := i.state.Entity(entry.RefID)
		if !ok || !unit.IsAlive() {
			return domain.NewDeadUnitOnTimelineError(i.state.now, i.state.seed, entry.RefID)
		}

		i.state.now = entry.ReadyTick
		unit.Status.HasMoved = false
		unit.Status.HasActed = false

		isAI := unit.AI != nil
		i.state.Bus().Publish(domain.EventTurnStarted, events.TurnStarted{Unit: unit.ID, Tick: i.state.now})

		weight, err := i.runActivation(ctx, unit, isAI)
		if err != nil {
			return err
		}

		i.state.Bus().Publish(domain.EventTurnEnded, events.TurnEnded{Unit: unit.ID, Tick: i.state.now})
		i.state.Bus().Drain()

		if i.state.IsAlive(unit.ID) {
			i.state.scheduler.Schedule(i.state.now+domain.Tick(weight), timeline.EntryKindUnit, unit.ID)
		}

		if i.state.Phase() == domain.GamePhaseGameOver {
			return nil
		}
	}
}

// runActivation chains actions for one unit's turn until a terminal
// one executes — everything but Move, which spends no timeline weight
// of its own (spec §4.2) — returning the terminal action's WeightSpent.
func (i *Instance) runActivation(ctx context.Context, unit *domain.Entity, isAI bool) (domain.Weight, error) {
	for step := 0; step < maxActionsPerActivation; step++ {
		actionType, target, err := i.nextAction(ctx, unit, isAI)
		if err != nil {
			return 0, err
		}

		act := i.state.Catalog().Get(actionType)
		if act == nil {
			return domain.ActionWait.BaseWeight(), fmt.Errorf("engine: unknown action %v", actionType)
		}
		validation := act.Validate(unit.ID, target, i.state)
		if !validation.Ok {
			if isAI {
				return domain.ActionWait.BaseWeight(), fmt.Errorf("engine: AI chose an action that failed validation: %s", validation.Reason)
			}
			continue // a stale human command; wait for the next one rather than aborting the battle
		}

		result := act.Execute(unit.ID, target, i.state)
		if payload, encErr := persistence.EncodeTarget(target); encErr == nil {
			i.recorder.Record(domain.ReplayAction{Tick: i.state.now, Actor: unit.ID, Action: actionType, Payload: payload})
		}

		if actionType != domain.ActionMove {
			return result.WeightSpent, nil
		}
	}
	return domain.ActionWait.BaseWeight(), nil
}

// nextAction gets one (action, target) pair from the AI controller or
// blocks for a human command.
func (i *Instance) nextAction(ctx context.Context, unit *domain.Entity, isAI bool) (domain.ActionType, action.Target, error) {
	if isAI {
		actionType, target, ok := i.ai.Decide(unit.ID, i.state)
		if !ok {
			return domain.ActionWait, action.Target{}, fmt.Errorf("engine: AI controller could not decide for unit %s", unit.ID)
		}
		return actionType, target, nil
	}

	select {
	case cmd := <-i.commands:
		return cmd.Action, cmd.Target, nil
	case <-ctx.Done():
		return domain.ActionUnknown, action.Target{}, ctx.Err()
	}
}
