package render

import "github.com/pfassina/grimdark/internal/domain"

// ComputeVisibility implements SPEC_FULL.md section E's hidden-intent
// distance threshold: Full within the previewed unit's own vision
// radius, Partial within twice that radius, Hidden beyond — grounded on
// original_source/'s core/hidden_intent.py IntentInfo gating
// action_description by distance-to-viewer.
func ComputeVisibility(distance, visionRadius int) Visibility {
	switch {
	case distance <= visionRadius:
		return VisibilityFull
	case distance <= visionRadius*2:
		return VisibilityPartial
	default:
		return VisibilityHidden
	}
}

// nearestOpposingDistance returns the smallest Manhattan distance from
// pos to any living unit on the viewer's team, or false if the viewer
// has no living unit (nothing to hide from — treated as Full
// visibility by the caller).
func nearestOpposingDistance(pos domain.Vector2, viewer domain.Team, units []*domain.Entity) (int, bool) {
	best := -1
	found := false
	for _, u := range units {
		if !u.IsAlive() || u.Actor.Team != viewer {
			continue
		}
		d := pos.ManhattanDistance(u.Movement.Position)
		if !found || d < best {
			best, found = d, true
		}
	}
	return best, found
}
