package timeline

import (
	"testing"

	"github.com/pfassina/grimdark/internal/domain"
)

func TestSchedulerOrdersByTickThenSeq(t *testing.T) {
	s := NewScheduler()
	a := domain.EntityID(1)
	b := domain.EntityID(2)
	c := domain.EntityID(3)

	s.Schedule(10, EntryKindUnit, a)
	s.Schedule(5, EntryKindUnit, b)
	s.Schedule(5, EntryKindUnit, c) // same tick as b, later seq

	first := s.Pop()
	if first.RefID != b {
		t.Fatalf("expected b first (tick 5, earlier seq), got %v", first.RefID)
	}
	second := s.Pop()
	if second.RefID != c {
		t.Fatalf("expected c second (tick 5, later seq), got %v", second.RefID)
	}
	third := s.Pop()
	if third.RefID != a {
		t.Fatalf("expected a last (tick 10), got %v", third.RefID)
	}
}

func TestScheduleTombstonesPriorEntry(t *testing.T) {
	s := NewScheduler()
	unit := domain.EntityID(7)

	s.Schedule(100, EntryKindUnit, unit)
	s.Schedule(50, EntryKindUnit, unit) // reschedule earlier

	e := s.Pop()
	if e.ReadyTick != 50 {
		t.Fatalf("expected rescheduled entry at tick 50, got %d", e.ReadyTick)
	}
	if !s.IsEmpty() {
		t.Fatal("expected original stale entry to be skipped as tombstoned, not popped")
	}
}

func TestCancelTombstonesLiveEntry(t *testing.T) {
	s := NewScheduler()
	unit := domain.EntityID(9)
	s.Schedule(20, EntryKindUnit, unit)

	s.Cancel(unit)

	if !s.IsEmpty() {
		t.Fatal("expected cancelled entry to be skipped by Pop")
	}
}

func TestPeekDoesNotRemove(t *testing.T) {
	s := NewScheduler()
	unit := domain.EntityID(3)
	s.Schedule(1, EntryKindUnit, unit)

	peeked := s.Peek()
	if peeked == nil || peeked.RefID != unit {
		t.Fatal("expected peek to return the scheduled entry")
	}
	if s.Len() != 1 {
		t.Fatalf("expected Peek not to remove the entry, Len=%d", s.Len())
	}
}
