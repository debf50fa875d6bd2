package grid

import (
	"testing"

	"github.com/pfassina/grimdark/internal/domain"
)

func flatTiles(w, h int, cost int) [][]Tile {
	out := make([][]Tile, h)
	for y := 0; y < h; y++ {
		out[y] = make([]Tile, w)
		for x := 0; x < w; x++ {
			out[y][x] = Tile{TerrainID: 1, MovementCost: cost}
		}
	}
	return out
}

func TestComposeOverridesNonZeroTerrain(t *testing.T) {
	ground := Layer{Name: "ground", Tiles: flatTiles(3, 3, 1)}
	walls := Layer{Name: "walls", Tiles: make([][]Tile, 3)}
	for y := range walls.Tiles {
		walls.Tiles[y] = make([]Tile, 3)
	}
	walls.Tiles[1][1] = Tile{TerrainID: 2, MovementCost: Infinite, BlocksMovement: true}

	composed := Compose(ground, walls)

	if composed[1][1].TerrainID != 2 || !composed[1][1].BlocksMovement {
		t.Fatalf("expected wall layer to override ground at (1,1), got %+v", composed[1][1])
	}
	if composed[0][0].TerrainID != 1 {
		t.Fatalf("expected ground layer untouched at (0,0), got %+v", composed[0][0])
	}
}

func TestMapOccupancy(t *testing.T) {
	m := NewMap(flatTiles(4, 4, 1))
	unit := domain.EntityID(42)
	pos := domain.Vector2{X: 1, Y: 1}

	if m.IsOccupied(pos) {
		t.Fatal("expected cell unoccupied before Place")
	}
	m.Place(unit, pos)
	if !m.IsOccupied(pos) {
		t.Fatal("expected cell occupied after Place")
	}
	got, ok := m.OccupantAt(pos)
	if !ok || got != unit {
		t.Fatalf("OccupantAt = %v,%v want %v,true", got, ok, unit)
	}

	to := domain.Vector2{X: 2, Y: 2}
	m.Move(unit, pos, to)
	if m.IsOccupied(pos) {
		t.Fatal("expected origin vacated after Move")
	}
	if !m.IsOccupied(to) {
		t.Fatal("expected destination occupied after Move")
	}
}

func TestInBounds(t *testing.T) {
	m := NewMap(flatTiles(5, 5, 1))
	if !m.InBounds(domain.Vector2{X: 0, Y: 0}) || !m.InBounds(domain.Vector2{X: 4, Y: 4}) {
		t.Fatal("expected corners in bounds")
	}
	if m.InBounds(domain.Vector2{X: 5, Y: 0}) || m.InBounds(domain.Vector2{X: -1, Y: 0}) {
		t.Fatal("expected out-of-range coordinates rejected")
	}
}
