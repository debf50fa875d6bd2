package timeline

import (
	"container/heap"

	"github.com/pfassina/grimdark/internal/domain"
)

// Scheduler owns the timeline heap plus the next-seq counter and the
// live-entry index used for cancellation. One GameState owns one
// Scheduler (spec §3.5).
type Scheduler struct {
	heap    entryHeap
	nextSeq uint64

	// live maps a unit's EntityID to its current (possibly stale once
	// superseded) entry, so Cancel can tombstone in O(1) without a
	// heap scan.
	live map[domain.EntityID]*Entry
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		heap: make(entryHeap, 0),
		live: make(map[domain.EntityID]*Entry),
	}
}

// Schedule inserts a new entry at readyTick for the given unit and
// returns the entry. Any previously live entry for that unit is
// tombstoned first — spec §3.4's invariant that no two live entries
// reference the same alive unit at once.
func (s *Scheduler) Schedule(readyTick domain.Tick, kind EntryKind, id domain.EntityID) *Entry {
	if prev, ok := s.live[id]; ok {
		prev.Tombstoned = true
	}
	e := &Entry{
		ReadyTick: readyTick,
		Seq:       s.nextSeq,
		Kind:      kind,
		RefID:     id,
	}
	s.nextSeq++
	heap.Push(&s.heap, e)
	s.live[id] = e
	return e
}

// NextSeq hands out the next value from the same monotonic counter
// Schedule uses, so a single combat resolution can seed its RNG stream
// with a number no other scheduling or resolution call will ever reuse
// (spec §4.3).
func (s *Scheduler) NextSeq() uint64 {
	seq := s.nextSeq
	s.nextSeq++
	return seq
}

// Cancel tombstones the live entry for id, if any. Used when a unit
// dies before its scheduled activation (spec §3.4, §4.1).
func (s *Scheduler) Cancel(id domain.EntityID) {
	if e, ok := s.live[id]; ok {
		e.Tombstoned = true
		delete(s.live, id)
	}
}

// Pop removes and returns the earliest non-tombstoned entry, or nil if
// the timeline is exhausted. Tombstoned entries are discarded lazily
// here rather than removed eagerly at Cancel time.
func (s *Scheduler) Pop() *Entry {
	for s.heap.Len() > 0 {
		e := heap.Pop(&s.heap).(*Entry)
		if e.Tombstoned {
			continue
		}
		delete(s.live, e.RefID)
		return e
	}
	return nil
}

// Peek returns the earliest non-tombstoned entry without removing it.
func (s *Scheduler) Peek() *Entry {
	for s.heap.Len() > 0 {
		head := s.heap[0]
		if !head.Tombstoned {
			return head
		}
		heap.Pop(&s.heap)
	}
	return nil
}

// Len reports the number of entries still in the heap, including any
// not-yet-collected tombstones.
func (s *Scheduler) Len() int { return s.heap.Len() }

// IsEmpty reports whether the timeline has no live entries left.
func (s *Scheduler) IsEmpty() bool { return s.Peek() == nil }

// PreviewUpcoming returns up to n non-tombstoned entries in pop order,
// without mutating the scheduler (internal/render's timeline_preview,
// spec §6.2, needs a read-only look ahead on the same heap that Pop
// drains one frame's worth at a time).
func (s *Scheduler) PreviewUpcoming(n int) []*Entry {
	scratch := make(entryHeap, len(s.heap))
	copy(scratch, s.heap)

	out := make([]*Entry, 0, n)
	for scratch.Len() > 0 && len(out) < n {
		e := heap.Pop(&scratch).(*Entry)
		if e.Tombstoned {
			continue
		}
		out = append(out, e)
	}
	return out
}
