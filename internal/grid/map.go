package grid

import (
	"fmt"

	"github.com/pfassina/grimdark/internal/domain"
)

// Map is the rectangular W×H grid of effective tiles plus the
// position → EntityId index. Grounded on the teacher's GameWorld +
// SpatialHash (internal/domain/world.go, world_comp_gameworld.go):
// same flat-index-over-2D-slice shape, generalized from "list of
// entities per cell" to "at most one unit per cell" (spec §3.3 makes
// units mutually exclusive occupants; non-unit actors are out of this
// core's scope).
type Map struct {
	Width  int
	Height int
	tiles  [][]Tile // [y][x]

	// occupants indexes by y*Width+x, same convention as the teacher's
	// GetIndex, kept private so Movement is the only writer.
	occupants map[int]domain.EntityID
}

// NewMap builds a Map from a fully composed tile grid (see Compose).
func NewMap(tiles [][]Tile) *Map {
	height := len(tiles)
	width := 0
	if height > 0 {
		width = len(tiles[0])
	}
	return &Map{
		Width:     width,
		Height:    height,
		tiles:     tiles,
		occupants: make(map[int]domain.EntityID),
	}
}

func (m *Map) index(x, y int) int { return y*m.Width + x }

// InBounds reports the spec §3.2 invariant: 0 <= x < W and 0 <= y < H.
func (m *Map) InBounds(pos domain.Vector2) bool {
	return pos.X >= 0 && pos.X < m.Width && pos.Y >= 0 && pos.Y < m.Height
}

// Tile returns the effective tile at pos. Panics on out-of-bounds
// access — callers must check InBounds first; this is an invariant
// violation, not a recoverable input error (spec §7).
func (m *Map) Tile(pos domain.Vector2) Tile {
	if !m.InBounds(pos) {
		panic(fmt.Sprintf("grid: out of bounds tile access at %v", pos))
	}
	return m.tiles[pos.Y][pos.X]
}

// IsOccupied reports whether a unit currently occupies pos.
func (m *Map) IsOccupied(pos domain.Vector2) bool {
	_, ok := m.occupants[m.index(pos.X, pos.Y)]
	return ok
}

// OccupantAt returns the unit at pos, if any.
func (m *Map) OccupantAt(pos domain.Vector2) (domain.EntityID, bool) {
	id, ok := m.occupants[m.index(pos.X, pos.Y)]
	return id, ok
}

// Place records id as occupying pos. Used during scenario materialization
// and by the movement manager after a successful Move.execute.
func (m *Map) Place(id domain.EntityID, pos domain.Vector2) {
	m.occupants[m.index(pos.X, pos.Y)] = id
}

// Vacate removes any occupant recorded at pos.
func (m *Map) Vacate(pos domain.Vector2) {
	delete(m.occupants, m.index(pos.X, pos.Y))
}

// Move relocates an occupant from one cell to another in one step, so
// the index is never observably empty-then-filled mid-update.
func (m *Map) Move(id domain.EntityID, from, to domain.Vector2) {
	delete(m.occupants, m.index(from.X, from.Y))
	m.occupants[m.index(to.X, to.Y)] = id
}

// Compose layers ground-up: later layers in the slice override earlier
// ones cell-by-cell, but only where the later layer has a non-zero
// TerrainID (spec §3.2: "higher layers override lower non-zero
// values"). Grounded on the teacher's world_builder.go, which stacks a
// base floor pass under wall/feature passes the same way.
func Compose(layers ...Layer) [][]Tile {
	if len(layers) == 0 {
		return nil
	}
	height := len(layers[0].Tiles)
	width := 0
	if height > 0 {
		width = len(layers[0].Tiles[0])
	}
	out := make([][]Tile, height)
	for y := 0; y < height; y++ {
		out[y] = make([]Tile, width)
		copy(out[y], layers[0].Tiles[y])
	}
	for _, layer := range layers[1:] {
		for y := 0; y < height && y < len(layer.Tiles); y++ {
			for x := 0; x < width && x < len(layer.Tiles[y]); x++ {
				if layer.Tiles[y][x].TerrainID != 0 {
					out[y][x] = layer.Tiles[y][x]
				}
			}
		}
	}
	return out
}
