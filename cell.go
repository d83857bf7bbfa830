package flatspatial

import (
	"fmt"
	"math"

	"github.com/Uriopass/flat-spatial/geom"
)

// Cell addresses one fixed-size square of the grid plane.
type Cell struct {
	X int32
	Y int32
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// CellAt returns the cell containing p for the given cell size. Cells
// are half-open on their upper edges: a coordinate exactly on the edge
// belongs to the next cell. Negative coordinates floor toward negative
// infinity, so cell (-1,-1) covers [-size,0) on both axes.
func CellAt(cellSize float32, p geom.Vec2) Cell {
	return Cell{
		X: int32(math.Floor(float64(p.X) / float64(cellSize))),
		Y: int32(math.Floor(float64(p.Y) / float64(cellSize))),
	}
}

// CellBounds returns the region of the plane covered by c.
func CellBounds(cellSize float32, c Cell) geom.AABB {
	ll := geom.V(float32(c.X)*cellSize, float32(c.Y)*cellSize)
	return geom.AABB{LL: ll, UR: geom.V(ll.X+cellSize, ll.Y+cellSize)}
}

// cellRange visits every cell overlapping bounds, row by row in
// ascending y then ascending x, until fn returns false. An inverted
// bounds (LL beyond UR) visits nothing.
func cellRange(cellSize float32, bounds geom.AABB, fn func(Cell) bool) {
	lo := CellAt(cellSize, bounds.LL)
	hi := CellAt(cellSize, bounds.UR)
	for y := lo.Y; y <= hi.Y; y++ {
		for x := lo.X; x <= hi.X; x++ {
			if !fn(Cell{X: x, Y: y}) {
				return
			}
		}
	}
}
