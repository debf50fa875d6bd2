package domain

import "fmt"

// ValidationReason closes the set of ways an action can fail
// precondition checks. Returned as data from Action.Validate, never
// thrown — spec §9 replaces exceptions-as-control-flow with a result
// type.
type ValidationReason uint8

const (
	ValidationOK ValidationReason = iota
	ValidationOutOfRange
	ValidationImpassableTerrain
	ValidationInsufficientMovement
	ValidationTargetInvalid
	ValidationTargetOccupied
	ValidationTargetDead
	ValidationAlreadyActed
	ValidationNoInterruptSlot
)

func (r ValidationReason) String() string {
	switch r {
	case ValidationOK:
		return "OK"
	case ValidationOutOfRange:
		return "OutOfRange"
	case ValidationImpassableTerrain:
		return "ImpassableTerrain"
	case ValidationInsufficientMovement:
		return "InsufficientMovement"
	case ValidationTargetInvalid:
		return "TargetInvalid"
	case ValidationTargetOccupied:
		return "TargetOccupied"
	case ValidationTargetDead:
		return "TargetDead"
	case ValidationAlreadyActed:
		return "AlreadyActed"
	case ValidationNoInterruptSlot:
		return "NoInterruptSlot"
	default:
		return "Unknown"
	}
}

// FatalError marks the small set of conditions that indicate a broken
// invariant rather than bad input — the simulation has no recovery path
// for these and must abort with enough context to reproduce the run.
// EmptyTimelineError, DeadUnitOnTimeline, InvariantViolation, and
// EventRecursionLimit all satisfy this (spec §7).
type FatalError interface {
	error
	Diagnostic() string
}

// baseFatal carries the reproduction context every FatalError needs:
// the tick and RNG seed in play when the invariant broke.
type baseFatal struct {
	kind     string
	atTick   Tick
	seed     int64
	detail   string
}

func (e *baseFatal) Error() string {
	return fmt.Sprintf("%s at tick %d: %s", e.kind, e.atTick, e.detail)
}

func (e *baseFatal) Diagnostic() string {
	return fmt.Sprintf("kind=%s tick=%d seed=%d detail=%s", e.kind, e.atTick, e.seed, e.detail)
}

// NewEmptyTimelineError reports the timeline draining while the battle
// is still in progress.
func NewEmptyTimelineError(atTick Tick, seed int64) FatalError {
	return &baseFatal{kind: "EmptyTimelineError", atTick: atTick, seed: seed,
		detail: "timeline empty but battle phase is not GameOver"}
}

// NewDeadUnitOnTimelineError reports a popped entry referencing a unit
// that is no longer alive — evidence of a missing cancel() call.
func NewDeadUnitOnTimelineError(atTick Tick, seed int64, unit EntityID) FatalError {
	return &baseFatal{kind: "DeadUnitOnTimeline", atTick: atTick, seed: seed,
		detail: fmt.Sprintf("popped entry for dead unit %s", unit)}
}

// NewInvariantViolation reports any other broken invariant (out-of-bounds
// position, negative hp without a death event, and similar).
func NewInvariantViolation(atTick Tick, seed int64, detail string) FatalError {
	return &baseFatal{kind: "InvariantViolation", atTick: atTick, seed: seed, detail: detail}
}

// NewEventRecursionLimitError reports more than the allowed nested
// publish depth, surfacing an infinite event loop.
func NewEventRecursionLimitError(atTick Tick, seed int64, limit int) FatalError {
	return &baseFatal{kind: "EventRecursionLimit", atTick: atTick, seed: seed,
		detail: fmt.Sprintf("exceeded recursion limit of %d nested publishes", limit)}
}
