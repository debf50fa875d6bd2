package engine

import (
	"github.com/pfassina/grimdark/internal/domain"
	"github.com/pfassina/grimdark/internal/events"
	"github.com/pfassina/grimdark/internal/pathfind"
	"github.com/pfassina/grimdark/internal/phase"
)

// snapshot is the pre-activation position/movement-points pair the
// cancel path restores (spec §4.6: "snapshot of the actor's pre-move
// position for cancellation").
type snapshot struct {
	position       domain.Vector2
	movementPoints int
	committed      bool // true once a Move actually executed since the snapshot was taken
}

// SelectionManager owns cursor position, the actor's reachable set,
// and the pre-move snapshot used to undo a move on Cancel (spec
// §4.6). One GameState owns one SelectionManager.
type SelectionManager struct {
	state *GameState

	selected    domain.EntityID
	hasSelected bool

	cursor domain.Vector2

	reachable    pathfind.ReachableSet
	attackRange  []domain.Vector2
	snap         snapshot
}

func newSelectionManager(s *GameState) *SelectionManager {
	return &SelectionManager{state: s}
}

// Select designates id as the acting unit, computes its reachable
// set, and snapshots its position/movement points for a later Cancel.
// Returns false if id does not name a live entity.
func (sm *SelectionManager) Select(id domain.EntityID) bool {
	unit, ok := sm.state.Entity(id)
	if !ok || !unit.IsAlive() {
		return false
	}
	sm.selected = id
	sm.hasSelected = true
	sm.cursor = unit.Movement.Position
	sm.snap = snapshot{position: unit.Movement.Position, movementPoints: unit.Movement.MovementPoints}
	sm.recomputeReachable(unit)
	sm.state.battlePhase.Apply(phase.Trigger{UnitSelected: true})
	return true
}

func (sm *SelectionManager) recomputeReachable(unit *domain.Entity) {
	sm.reachable = pathfind.Reachable(sm.state.Map(), unit.Movement.Position, unit.Movement.MovementPoints, func(p domain.Vector2) bool {
		id, occupied := sm.state.Map().OccupantAt(p)
		if !occupied {
			return false
		}
		other, ok := sm.state.Entity(id)
		return ok && other.IsAlive()
	})
}

// Selected satisfies render.State's SelectedUnit seam.
func (sm *SelectionManager) Selected() (domain.EntityID, bool) { return sm.selected, sm.hasSelected }

// Clear drops the current selection and its attack-range set.
func (sm *SelectionManager) Clear() {
	sm.hasSelected = false
	sm.selected = domain.NilEntityID
	sm.attackRange = nil
}

// Cursor returns the current cursor position.
func (sm *SelectionManager) Cursor() domain.Vector2 { return sm.cursor }

// MoveCursorTo clamps the cursor into the reachable set (UnitMoving)
// or the attack-range set (ActionTargeting), per spec §4.6. Returns
// false (cursor unchanged) if pos is outside the active set.
func (sm *SelectionManager) MoveCursorTo(pos domain.Vector2, targeting bool) bool {
	if targeting {
		for _, p := range sm.attackRange {
			if p.Equals(pos) {
				sm.cursor = pos
				return true
			}
		}
		return false
	}
	if sm.reachable.Contains(pos) {
		sm.cursor = pos
		return true
	}
	return false
}

// ReachableSet exposes the current movement reachability, used by the
// UI/render overlay builder.
func (sm *SelectionManager) ReachableSet() pathfind.ReachableSet { return sm.reachable }

// BeginTargeting computes the attack-range tile set for the selected
// unit, entered once a damaging action is chosen (UnitMoving/ActionSelection
// -> ActionTargeting).
func (sm *SelectionManager) BeginTargeting() {
	unit, ok := sm.state.Entity(sm.selected)
	if !ok {
		return
	}
	sm.attackRange = pathfind.AttackRange(sm.state.Map(), unit.Movement.Position, unit.Combat.RangeMin, unit.Combat.RangeMax)
}

// AttackRange exposes the current targeting tile set.
func (sm *SelectionManager) AttackRange() []domain.Vector2 { return sm.attackRange }

// MarkCommitted records that the selected unit's Move actually
// executed, so CancelMove knows whether a reversing UnitMoved is
// owed.
func (sm *SelectionManager) MarkCommitted() { sm.snap.committed = true }

// CancelMove restores the selected unit to its pre-activation
// position and movement points (spec §4.6's ActionSelection -> Cancel
// -> UnitMoving row), emitting a reversing UnitMoved only if a move
// was actually committed since Select.
func (sm *SelectionManager) CancelMove() {
	unit, ok := sm.state.Entity(sm.selected)
	if !ok || !sm.snap.committed {
		return
	}
	from := unit.Movement.Position
	sm.state.Map().Move(sm.selected, from, sm.snap.position)
	unit.Movement.Position = sm.snap.position
	unit.Movement.MovementPoints = sm.snap.movementPoints
	unit.Status.HasMoved = false
	sm.cursor = sm.snap.position
	sm.snap.committed = false
	sm.recomputeReachable(unit)

	sm.state.Bus().Publish(domain.EventUnitMoved, events.UnitMoved{
		Unit: sm.selected, From: from, To: sm.snap.position,
	})
}
