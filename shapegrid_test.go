package flatspatial

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Uriopass/flat-spatial/geom"
)

func TestShapeGrid(t *testing.T) {
	t.Run("SegmentOccupiesOnlyTouchedCells", func(t *testing.T) {
		sg, err := NewShapeGrid[int](1)
		require.NoError(t, err)

		// A diagonal across a 5x5 block of candidate cells only touches
		// the diagonal band, not the full rectangle of its bounds.
		sg.Insert(geom.Segment{Src: geom.V(0.5, 0.5), Dst: geom.V(4.5, 4.5)}, 0)
		assert.Less(t, sg.OccupiedCells(), 25)

		// A query box in the off-diagonal corner of the bounds misses.
		got := maps.Collect(sg.Query(geom.NewAABB(geom.V(0.1, 4.1), geom.V(0.4, 4.4))))
		assert.Empty(t, got)

		// A query box crossing the diagonal hits.
		got = maps.Collect(sg.Query(geom.NewAABB(geom.V(2, 2), geom.V(3, 3))))
		assert.Len(t, got, 1)
	})

	t.Run("CircleQuery", func(t *testing.T) {
		sg, _ := NewShapeGrid[string](10)
		disc := sg.Insert(geom.Circle{Center: geom.V(5, 5), Radius: 3}, "disc")
		sg.Insert(geom.Circle{Center: geom.V(50, 50), Radius: 3}, "far")

		got := maps.Collect(sg.QueryAround(geom.V(0, 0), 5))
		require.Len(t, got, 1)
		assert.Contains(t, got, disc)

		assert.Empty(t, maps.Collect(sg.QueryAround(geom.V(0, 0), -1)))
	})

	t.Run("MultiCellYieldedOnce", func(t *testing.T) {
		sg, _ := NewShapeGrid[int](10)
		h := sg.Insert(geom.NewAABB(geom.V(5, 5), geom.V(25, 25)), 0)

		count := 0
		for got := range sg.Query(geom.NewAABB(geom.V(0, 0), geom.V(30, 30))) {
			assert.Equal(t, h, got)
			count++
		}
		assert.Equal(t, 1, count)
	})

	t.Run("SetShape", func(t *testing.T) {
		sg, _ := NewShapeGrid[int](10)
		h := sg.Insert(geom.Point(geom.V(5, 5)), 0)

		require.NoError(t, sg.SetShape(h, geom.Circle{Center: geom.V(50, 50), Radius: 2}))

		assert.Empty(t, maps.Collect(sg.QueryAround(geom.V(5, 5), 1)))
		got := maps.Collect(sg.QueryAround(geom.V(50, 50), 1))
		assert.Contains(t, got, h)

		shape, _, err := sg.Get(h)
		require.NoError(t, err)
		assert.Equal(t, geom.Circle{Center: geom.V(50, 50), Radius: 2}, shape)
	})

	t.Run("RemoveAndInvalidHandle", func(t *testing.T) {
		sg, _ := NewShapeGrid[int](10)
		h := sg.Insert(geom.Point(geom.V(1, 1)), 7)

		v, err := sg.Remove(h)
		require.NoError(t, err)
		assert.Equal(t, 7, v)
		assert.Equal(t, 0, sg.OccupiedCells())

		_, err = sg.Remove(h)
		assert.True(t, IsInvalidHandle(err))
		err = sg.SetShape(h, geom.Point(geom.V(0, 0)))
		assert.True(t, IsInvalidHandle(err))
	})

	t.Run("RejectsInvalidCellSize", func(t *testing.T) {
		_, err := NewShapeGrid[int](-5)
		assert.ErrorIs(t, err, ErrInvalidCellSize)
	})
}
