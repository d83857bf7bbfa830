package flatspatial

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Uriopass/flat-spatial/geom"
)

func TestCellAt(t *testing.T) {
	t.Run("Interior", func(t *testing.T) {
		assert.Equal(t, Cell{X: 0, Y: 0}, CellAt(10, geom.V(3, 7)))
		assert.Equal(t, Cell{X: 2, Y: 1}, CellAt(10, geom.V(25, 17)))
	})

	t.Run("UpperEdgeBelongsToNextCell", func(t *testing.T) {
		assert.Equal(t, Cell{X: 1, Y: 0}, CellAt(10, geom.V(10, 0)))
		assert.Equal(t, Cell{X: 1, Y: 1}, CellAt(10, geom.V(10, 10)))
	})

	t.Run("NegativeCoordinatesFloor", func(t *testing.T) {
		// Floor division: -0.5 is in cell -1, not cell 0.
		assert.Equal(t, Cell{X: -1, Y: -1}, CellAt(10, geom.V(-0.5, -0.5)))
		assert.Equal(t, Cell{X: -1, Y: -1}, CellAt(10, geom.V(-10, -10)))
		assert.Equal(t, Cell{X: -2, Y: 0}, CellAt(10, geom.V(-10.5, 0)))
	})

	t.Run("OriginInCellZero", func(t *testing.T) {
		assert.Equal(t, Cell{X: 0, Y: 0}, CellAt(10, geom.V(0, 0)))
	})
}

func TestCellBounds(t *testing.T) {
	b := CellBounds(10, Cell{X: -1, Y: 2})
	assert.Equal(t, geom.V(-10, 20), b.LL)
	assert.Equal(t, geom.V(0, 30), b.UR)

	// CellAt of the lower-left corner round-trips.
	assert.Equal(t, Cell{X: -1, Y: 2}, CellAt(10, b.LL))
}

func TestCellRange(t *testing.T) {
	t.Run("RowMajorOrder", func(t *testing.T) {
		var cells []Cell
		cellRange(10, geom.AABB{LL: geom.V(-5, -5), UR: geom.V(15, 5)}, func(c Cell) bool {
			cells = append(cells, c)
			return true
		})
		assert.Equal(t, []Cell{
			{-1, -1}, {0, -1}, {1, -1},
			{-1, 0}, {0, 0}, {1, 0},
		}, cells)
	})

	t.Run("EarlyStop", func(t *testing.T) {
		n := 0
		cellRange(10, geom.AABB{LL: geom.V(0, 0), UR: geom.V(100, 100)}, func(Cell) bool {
			n++
			return n < 3
		})
		assert.Equal(t, 3, n)
	})

	t.Run("InvertedBoundsVisitsNothing", func(t *testing.T) {
		cellRange(10, geom.AABB{LL: geom.V(50, 50), UR: geom.V(0, 0)}, func(Cell) bool {
			t.Fatal("should not be called")
			return false
		})
	})
}
