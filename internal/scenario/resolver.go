package scenario

import (
	"fmt"
	"math/rand"

	"github.com/pfassina/grimdark/internal/domain"
)

// Resolver turns a ScenarioPlan's Placements into concrete starting
// positions, one time, at battle-init (spec §6.3: "the core resolves
// all placements into concrete positions at battle-init time; after
// that, markers/regions are not referenced by the simulation").
type Resolver struct{}

func NewResolver() *Resolver { return &Resolver{} }

// Resolve returns target_name -> position for every Placement. passable
// reports whether a tile can receive a unit (bounds + terrain +
// not already occupied by something placed outside this scenario);
// Resolve additionally tracks collisions between placements within the
// same call. rng drives PolicyRandomFreeTile only — PolicySpreadEvenly
// and the direct/marker forms are fully deterministic.
func (r *Resolver) Resolve(plan *ScenarioPlan, passable func(domain.Vector2) bool, rng *rand.Rand) (map[string]domain.Vector2, error) {
	spreadTotal := make(map[string]int)
	for _, p := range plan.Placements {
		if p.Kind == PlacementAtRegion && p.Policy == PolicySpreadEvenly {
			spreadTotal[p.RegionName]++
		}
	}

	taken := make(map[domain.Vector2]bool)
	spreadIdx := make(map[string]int)
	result := make(map[string]domain.Vector2, len(plan.Placements))

	for _, p := range plan.Placements {
		pos, err := r.resolveOne(plan, p, passable, taken, spreadTotal, spreadIdx, rng)
		if err != nil {
			return nil, err
		}
		if taken[pos] {
			return nil, fmt.Errorf("scenario: placement %q collides with an earlier placement at %v", p.TargetName, pos)
		}
		taken[pos] = true
		result[p.TargetName] = pos
	}
	return result, nil
}

func (r *Resolver) resolveOne(
	plan *ScenarioPlan,
	p Placement,
	passable func(domain.Vector2) bool,
	taken map[domain.Vector2]bool,
	spreadTotal map[string]int,
	spreadIdx map[string]int,
	rng *rand.Rand,
) (domain.Vector2, error) {
	switch p.Kind {
	case PlacementAt:
		return p.At, nil

	case PlacementAtMarker:
		pos, ok := plan.Markers[p.MarkerName]
		if !ok {
			return domain.Vector2{}, fmt.Errorf("scenario: placement %q references unknown marker %q", p.TargetName, p.MarkerName)
		}
		return pos, nil

	case PlacementAtRegion:
		region, ok := plan.Regions[p.RegionName]
		if !ok {
			return domain.Vector2{}, fmt.Errorf("scenario: placement %q references unknown region %q", p.TargetName, p.RegionName)
		}
		switch p.Policy {
		case PolicyRandomFreeTile:
			pos, found := randomFreeTile(region, passable, taken, rng)
			if !found {
				return domain.Vector2{}, fmt.Errorf("scenario: no free tile in region %q for placement %q", p.RegionName, p.TargetName)
			}
			return pos, nil
		case PolicySpreadEvenly:
			idx := spreadIdx[p.RegionName]
			spreadIdx[p.RegionName] = idx + 1
			return spreadTile(region, idx, spreadTotal[p.RegionName]), nil
		default:
			return domain.Vector2{}, fmt.Errorf("scenario: placement %q has unknown region policy %q", p.TargetName, p.Policy)
		}

	default:
		return domain.Vector2{}, fmt.Errorf("scenario: placement %q has no target position", p.TargetName)
	}
}

// randomFreeTile scans region in a random cell order and returns the
// first tile that is both passable and not already taken by an
// earlier placement this call.
func randomFreeTile(region Rect, passable func(domain.Vector2) bool, taken map[domain.Vector2]bool, rng *rand.Rand) (domain.Vector2, bool) {
	cellCount := region.Width * region.Height
	if cellCount <= 0 {
		return domain.Vector2{}, false
	}
	for _, idx := range rng.Perm(cellCount) {
		pos := domain.Vector2{X: region.X + idx%region.Width, Y: region.Y + idx/region.Width}
		if taken[pos] {
			continue
		}
		if passable != nil && !passable(pos) {
			continue
		}
		return pos, true
	}
	return domain.Vector2{}, false
}

// spreadTile distributes total placements across region's cells in
// row-major order at a fixed stride, so units land apart rather than
// clustered at the region's origin.
func spreadTile(region Rect, idx, total int) domain.Vector2 {
	cellCount := region.Width * region.Height
	if cellCount <= 0 {
		return domain.Vector2{X: region.X, Y: region.Y}
	}
	if total <= 0 {
		total = 1
	}
	step := cellCount / total
	if step < 1 {
		step = 1
	}
	linear := (idx * step) % cellCount
	return domain.Vector2{X: region.X + linear%region.Width, Y: region.Y + linear/region.Width}
}
