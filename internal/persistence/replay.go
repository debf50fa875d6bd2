// Package persistence serializes and restores battle recordings.
//
// Spec §6.4 leaves the on-disk format implementation-defined and only
// requires that it round-trip; this package stores a domain.ReplaySession
// as indented JSON, the same encoding/json convention the teacher uses
// for every other wire payload (internal/server/debug.go's writeJSON,
// internal/server/http.go's command envelopes).
package persistence

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pfassina/grimdark/internal/domain"
)

// SaveReplay writes session to path as JSON. The file is truncated and
// replaced wholesale; there is no incremental append mode.
func SaveReplay(path string, session *domain.ReplaySession) error {
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("persistence: marshal replay: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("persistence: write %s: %w", path, err)
	}
	return nil
}

// LoadReplay reads and decodes a replay session previously written by
// SaveReplay.
func LoadReplay(path string) (*domain.ReplaySession, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("persistence: read %s: %w", path, err)
	}
	var session domain.ReplaySession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("persistence: parse %s: %w", path, err)
	}
	return &session, nil
}

// Recorder accumulates ReplayActions during a live battle so the full
// session can be flushed to disk at any point (on battle end, or on a
// periodic autosave timer the host owns).
type Recorder struct {
	session domain.ReplaySession
}

// NewRecorder starts a recording for a battle built from scenarioID
// with the given RNG seed (spec §6.4: "serialization of GameState +
// RNG seeds + pending timeline" — the seed is what makes a replay
// reproduce the same GameState and timeline from scratch rather than
// needing to serialize them directly).
func NewRecorder(scenarioID string, seed int64, timestamp int64) *Recorder {
	return &Recorder{session: domain.ReplaySession{
		ScenarioID: scenarioID,
		Seed:       seed,
		Timestamp:  timestamp,
		Actions:    make([]domain.ReplayAction, 0, 64),
	}}
}

// Record appends one externally-supplied action to the session.
func (r *Recorder) Record(action domain.ReplayAction) {
	r.session.Actions = append(r.session.Actions, action)
}

// Session returns the recording accumulated so far. The returned value
// shares no state with the Recorder's internal slice after the copy;
// callers must not mutate session.Actions in place.
func (r *Recorder) Session() domain.ReplaySession {
	out := r.session
	out.Actions = append([]domain.ReplayAction(nil), r.session.Actions...)
	return out
}

// Save flushes the current recording to path.
func (r *Recorder) Save(path string) error {
	session := r.Session()
	return SaveReplay(path, &session)
}
