package events

import (
	"testing"

	"github.com/pfassina/grimdark/internal/domain"
)

func TestPublishInvokesHandlersInPriorityOrder(t *testing.T) {
	b := NewBus()
	var order []string

	b.Subscribe(domain.EventUnitMoved, 1, func(Event) { order = append(order, "low") })
	b.Subscribe(domain.EventUnitMoved, 10, func(Event) { order = append(order, "high") })
	b.Subscribe(domain.EventUnitMoved, 5, func(Event) { order = append(order, "mid") })

	b.Publish(domain.EventUnitMoved, UnitMoved{})

	want := []string{"high", "mid", "low"}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got %v, want %v", order, want)
		}
	}
}

func TestTiesBreakBySubscriptionOrder(t *testing.T) {
	b := NewBus()
	var order []string
	b.Subscribe(domain.EventTurnStarted, 1, func(Event) { order = append(order, "first") })
	b.Subscribe(domain.EventTurnStarted, 1, func(Event) { order = append(order, "second") })

	b.Publish(domain.EventTurnStarted, TurnStarted{})

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("expected subscription-order tie break, got %v", order)
	}
}

func TestTypedIgnoresMismatchedPayload(t *testing.T) {
	b := NewBus()
	called := false
	b.Subscribe(domain.EventUnitMoved, 0, Typed(func(UnitMoved) { called = true }))

	b.Publish(domain.EventUnitMoved, "not a UnitMoved")
	if called {
		t.Fatal("expected Typed handler to ignore mismatched payload type")
	}

	b.Publish(domain.EventUnitMoved, UnitMoved{})
	if !called {
		t.Fatal("expected Typed handler to fire on matching payload type")
	}
}

func TestRecursionLimitStopsInfiniteNesting(t *testing.T) {
	b := NewBus()
	hits := 0
	limitHit := false
	b.OnRecursionLimit(func(domain.EventKind, int) { limitHit = true })

	var handler HandlerFunc
	handler = func(Event) {
		hits++
		b.Publish(domain.EventLogMessage, LogMessage{})
	}
	b.Subscribe(domain.EventLogMessage, 0, handler)

	b.Publish(domain.EventLogMessage, LogMessage{})

	if !limitHit {
		t.Fatal("expected recursion limit callback to fire")
	}
	if hits > DefaultRecursionLimit+1 {
		t.Fatalf("expected nesting to stop near the limit, got %d hits", hits)
	}
}

func TestEnqueueDrain(t *testing.T) {
	b := NewBus()
	var got []domain.EntityID
	b.Subscribe(domain.EventUnitRallied, 0, Typed(func(p UnitRallied) {
		got = append(got, p.Unit)
	}))

	b.Enqueue(domain.EventUnitRallied, UnitRallied{Unit: domain.EntityID(1)})
	b.Enqueue(domain.EventUnitRallied, UnitRallied{Unit: domain.EntityID(2)})
	if len(got) != 0 {
		t.Fatal("expected enqueued events not to fire before Drain")
	}

	b.Drain()
	if len(got) != 2 || got[0] != domain.EntityID(1) || got[1] != domain.EntityID(2) {
		t.Fatalf("expected drain to publish in enqueue order, got %v", got)
	}
}
