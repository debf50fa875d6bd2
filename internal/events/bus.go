// Package events implements the simulation's sole integration seam: a
// synchronous, priority-ordered, typed pub/sub bus. No manager ever
// holds a direct reference to another manager — they only publish and
// subscribe (spec §4.4).
//
// Grounded on the teacher's internal/engine/handlers WithPayload[T]
// generic-unmarshal-and-dispatch pattern (internal/engine/handlers/wrapper.go),
// adapted from "unmarshal JSON into T" to "type-assert an already-typed
// Go value into T" — the core has no wire boundary at this layer, so
// there's nothing to unmarshal, but the ergonomic shape (wrap a clean
// typed handler so callers never touch the untyped envelope) carries
// over directly.
package events

import (
	"sort"

	"github.com/pfassina/grimdark/internal/domain"
)

// Event is the untyped envelope every handler receives; Payload is one
// of the structs in payloads.go matching Kind.
type Event struct {
	Kind    domain.EventKind
	Payload any
}

// HandlerFunc is the low-level subscriber shape. Most callers should
// use Typed() instead of implementing this directly.
type HandlerFunc func(Event)

// Typed wraps a handler that only cares about one payload type so
// callers never see the untyped Event envelope. Mirrors the teacher's
// WithPayload[T]: unwrap, then call the clean typed function.
func Typed[T any](handler func(T)) HandlerFunc {
	return func(e Event) {
		payload, ok := e.Payload.(T)
		if !ok {
			return
		}
		handler(payload)
	}
}

// DefaultRecursionLimit bounds re-entrant Publish calls (a handler that
// publishes an event whose handler publishes again, ...). Exceeding it
// is a fatal programming error — it surfaces infinite event loops
// rather than hanging (spec §4.4, §7).
const DefaultRecursionLimit = 16

type subscription struct {
	priority int
	order    int
	handler  HandlerFunc
}

// Bus is a single synchronous dispatcher. One GameState owns one Bus.
type Bus struct {
	subs      map[domain.EventKind][]subscription
	nextOrder int
	depth     int
	queue     []Event

	onRecursionLimit func(kind domain.EventKind, depth int)
}

func NewBus() *Bus {
	return &Bus{subs: make(map[domain.EventKind][]subscription)}
}

// Subscribe registers handler for kind. Handlers for the same kind run
// in descending priority; ties break by subscription order (spec
// §4.4).
func (b *Bus) Subscribe(kind domain.EventKind, priority int, handler HandlerFunc) {
	b.subs[kind] = append(b.subs[kind], subscription{
		priority: priority,
		order:    b.nextOrder,
		handler:  handler,
	})
	b.nextOrder++
	sort.SliceStable(b.subs[kind], func(i, j int) bool {
		return b.subs[kind][i].priority > b.subs[kind][j].priority
	})
}

// OnRecursionLimit installs a callback invoked instead of panicking
// when Publish nesting exceeds DefaultRecursionLimit, so callers (the
// engine) can turn it into a domain.FatalError with tick/seed context
// rather than a bare panic crossing a package boundary.
func (b *Bus) OnRecursionLimit(fn func(kind domain.EventKind, depth int)) {
	b.onRecursionLimit = fn
}

// Publish invokes every handler subscribed to kind, synchronously, in
// priority order, before returning. Re-entrant publishes from inside a
// handler are allowed up to DefaultRecursionLimit deep.
func (b *Bus) Publish(kind domain.EventKind, payload any) {
	b.depth++
	defer func() { b.depth-- }()

	if b.depth > DefaultRecursionLimit {
		if b.onRecursionLimit == nil {
			panic("events: publish nesting exceeded DefaultRecursionLimit")
		}
		b.onRecursionLimit(kind, b.depth)
		return
	}

	event := Event{Kind: kind, Payload: payload}
	for _, sub := range b.subs[kind] {
		sub.handler(event)
	}
}

// Enqueue defers an event for a later Drain instead of publishing it
// immediately — used at end-of-activation to batch objective/morale
// checks (spec §4.4).
func (b *Bus) Enqueue(kind domain.EventKind, payload any) {
	b.queue = append(b.queue, Event{Kind: kind, Payload: payload})
}

// Drain publishes and clears every enqueued event, in enqueue order.
// Handlers invoked during drain may themselves Enqueue further events;
// those are published in the same Drain call (it loops until the
// queue is empty), still subject to the recursion-limit-guarded
// Publish path.
func (b *Bus) Drain() {
	for len(b.queue) > 0 {
		pending := b.queue
		b.queue = nil
		for _, e := range pending {
			b.Publish(e.Kind, e.Payload)
		}
	}
}
