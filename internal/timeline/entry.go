// Package timeline implements the discrete-tick scheduler: a min-heap
// of TimelineEntry ordered strictly by (ready_tick, seq), with lazy
// tombstoning so cancellation never needs a heap-internal index fixup.
// Grounded on the teacher's internal/engine/turn_queue.go +
// turn_manager.go container/heap usage, generalized from "one entity,
// keyed by AI.NextActionTick" to the spec's closed EntryKind union and
// explicit seq tie-break.
package timeline

import "github.com/pfassina/grimdark/internal/domain"

// EntryKind closes the set of things a TimelineEntry can reference.
type EntryKind uint8

const (
	EntryKindUnit EntryKind = iota
	EntryKindHazard
	EntryKindEvent
)

// Entry is one scheduled activation. Seq is assigned by the Scheduler
// at push time and is monotonic across the whole session — it is the
// sole tie-breaker when two entries share a ready tick.
type Entry struct {
	ReadyTick domain.Tick
	Seq       uint64
	Kind      EntryKind
	RefID     domain.EntityID

	// Tombstoned marks an entry as logically removed without touching
	// the heap; Scheduler.Pop skips tombstoned entries instead of
	// doing a heap.Remove, which would require tracking each entry's
	// live heap index through every subsequent Swap.
	Tombstoned bool

	index int // heap.Interface bookkeeping, unused outside this package
}
