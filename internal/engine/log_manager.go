package engine

import (
	"github.com/pfassina/grimdark/internal/domain"
	"github.com/pfassina/grimdark/internal/events"
)

// logCapacity bounds each level's ring so a long battle never grows the
// log without limit (spec §D.3: "leveled ring buffer").
const logCapacity = 256

// LogManager keeps a capped per-level history of LogMessage events,
// one ring per LogLevel, grounded on the teacher's Instance.AddLog
// (internal/engine/instance_log.go in the reference repo) generalized
// from a single flat slice to the Python LogManager's leveled rings.
type LogManager struct {
	rings [4][]events.LogMessage
}

func newLogManager(bus *events.Bus) *LogManager {
	lm := &LogManager{}
	bus.Subscribe(domain.EventLogMessage, 0, events.Typed(func(p events.LogMessage) {
		lm.append(p)
	}))
	return lm
}

func (lm *LogManager) append(msg events.LogMessage) {
	ring := &lm.rings[msg.Level]
	*ring = append(*ring, msg)
	if over := len(*ring) - logCapacity; over > 0 {
		*ring = (*ring)[over:]
	}
}

// Entries returns the current history for level, oldest first.
func (lm *LogManager) Entries(level events.LogLevel) []events.LogMessage {
	out := make([]events.LogMessage, len(lm.rings[level]))
	copy(out, lm.rings[level])
	return out
}

// All returns every level's entries concatenated in level order
// (Info, Combat, System, Debug).
func (lm *LogManager) All() []events.LogMessage {
	out := make([]events.LogMessage, 0)
	for level := range lm.rings {
		out = append(out, lm.rings[level]...)
	}
	return out
}
