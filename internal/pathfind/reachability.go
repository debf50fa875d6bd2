// Package pathfind computes movement reachability and attack-range
// sets. No third-party graph library appears anywhere in the
// retrieval pack — the teacher hand-rolls adjacency/range checks
// directly against its grid (internal/systems/{movement,targeting}.go
// read Position and GameWorld cell-by-cell with no intermediate graph
// structure) — so this follows that precedent with a small dedicated
// Dijkstra over grid.Map rather than reaching for an external package.
package pathfind

import (
	"container/heap"
	"sort"

	"github.com/pfassina/grimdark/internal/domain"
	"github.com/pfassina/grimdark/internal/grid"
)

// ReachableSet maps every tile a unit can end its move on to the
// cheapest path there and its total movement cost.
type ReachableSet struct {
	Cost map[domain.Vector2]int
	Path map[domain.Vector2][]domain.Vector2
}

// Contains reports whether pos is reachable within budget.
func (r ReachableSet) Contains(pos domain.Vector2) bool {
	_, ok := r.Cost[pos]
	return ok
}

type frontierItem struct {
	pos   domain.Vector2
	cost  int
	index int
}

type frontier []*frontierItem

func (f frontier) Len() int { return len(f) }
func (f frontier) Less(i, j int) bool {
	if f[i].cost != f[j].cost {
		return f[i].cost < f[j].cost
	}
	// Deterministic tie-break: lower y, then lower x (spec §4.8).
	if f[i].pos.Y != f[j].pos.Y {
		return f[i].pos.Y < f[j].pos.Y
	}
	return f[i].pos.X < f[j].pos.X
}
func (f frontier) Swap(i, j int) {
	f[i], f[j] = f[j], f[i]
	f[i].index = i
	f[j].index = j
}
func (f *frontier) Push(x any) {
	item := x.(*frontierItem)
	item.index = len(*f)
	*f = append(*f, item)
}
func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*f = old[:n-1]
	return item
}

var neighborOffsets = []domain.Vector2{
	{X: 0, Y: -1}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 1, Y: 0},
}

// Reachable runs a budget-bounded Dijkstra from origin over m, blocked
// by impassable terrain and by enemy-occupied tiles (friendly/neutral
// units block occupancy but not attack targeting — the caller decides
// which occupants count as blocking via isBlocked).
func Reachable(m *grid.Map, origin domain.Vector2, movementPoints int, isBlocked func(domain.Vector2) bool) ReachableSet {
	result := ReachableSet{
		Cost: map[domain.Vector2]int{origin: 0},
		Path: map[domain.Vector2][]domain.Vector2{origin: {origin}},
	}

	pq := &frontier{}
	heap.Init(pq)
	heap.Push(pq, &frontierItem{pos: origin, cost: 0})

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(*frontierItem)
		if cur.cost > result.Cost[cur.pos] {
			continue // stale entry, a cheaper path to this tile already won
		}

		for _, off := range neighborOffsets {
			next := cur.pos.Add(off)
			if !m.InBounds(next) {
				continue
			}
			tile := m.Tile(next)
			if !tile.Passable() {
				continue
			}
			if next != origin && isBlocked != nil && isBlocked(next) {
				continue
			}

			nextCost := cur.cost + tile.MovementCost
			if nextCost > movementPoints {
				continue
			}
			if existing, ok := result.Cost[next]; ok && existing <= nextCost {
				continue
			}

			result.Cost[next] = nextCost
			path := append(append([]domain.Vector2{}, result.Path[cur.pos]...), next)
			result.Path[next] = path
			heap.Push(pq, &frontierItem{pos: next, cost: nextCost})
		}
	}

	return result
}

// AttackRange returns every in-bounds tile whose Manhattan distance
// from origin lies in [rangeMin, rangeMax] (spec §4.8: Manhattan is the
// default metric). Independent of line-of-sight and of movement cost.
func AttackRange(m *grid.Map, origin domain.Vector2, rangeMin, rangeMax int) []domain.Vector2 {
	var out []domain.Vector2
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			pos := domain.Vector2{X: x, Y: y}
			dist := origin.ManhattanDistance(pos)
			if dist >= rangeMin && dist <= rangeMax {
				out = append(out, pos)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// InRange reports whether target lies within [rangeMin, rangeMax]
// Manhattan distance of origin.
func InRange(origin, target domain.Vector2, rangeMin, rangeMax int) bool {
	dist := origin.ManhattanDistance(target)
	return dist >= rangeMin && dist <= rangeMax
}
