package domain

import "encoding/json"

// ReplayAction records one externally-supplied action: who acted, what
// they chose, and the raw target/parameter payload needed to reconstruct
// it (a Vector2 for Move, an EntityID for an attack, ...).
type ReplayAction struct {
	Tick    Tick            `json:"tick"`
	Actor   EntityID        `json:"actor"`
	Action  ActionType      `json:"action"`
	Payload json.RawMessage `json:"payload"`
}

// ReplaySession is a complete recording of one battle: the seed that
// drove scenario placement and the RNG stream, plus every action taken.
// Re-running Actions against a GameState built from the same ScenarioID
// and Seed must reproduce an identical event log (spec §5 determinism).
type ReplaySession struct {
	ScenarioID string         `json:"scenarioId"`
	Seed       int64          `json:"seed"`
	Timestamp  int64          `json:"timestamp"`
	Actions    []ReplayAction `json:"actions"`
}
