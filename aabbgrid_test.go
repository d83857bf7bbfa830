package flatspatial

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Uriopass/flat-spatial/geom"
	"github.com/Uriopass/flat-spatial/testutil"
)

func TestNewAABBGrid(t *testing.T) {
	_, err := NewAABBGrid[int](0)
	assert.ErrorIs(t, err, ErrInvalidCellSize)

	ag, err := NewAABBGrid[int](10)
	require.NoError(t, err)
	assert.Equal(t, 0, ag.Len())
}

func TestAABBGridInsertQuery(t *testing.T) {
	t.Run("MultiCellYieldedOnce", func(t *testing.T) {
		ag, _ := NewAABBGrid[string](10)
		// Spans a 3x3 block of cells.
		h := ag.Insert(geom.NewAABB(geom.V(5, 5), geom.V(25, 25)), "building")
		assert.Greater(t, ag.OccupiedCells(), 1)

		count := 0
		for got := range ag.QueryAABB(geom.NewAABB(geom.V(0, 0), geom.V(30, 30))) {
			assert.Equal(t, h, got)
			count++
		}
		assert.Equal(t, 1, count)
	})

	t.Run("TouchingEdgesIntersect", func(t *testing.T) {
		ag, _ := NewAABBGrid[int](10)
		h := ag.Insert(geom.NewAABB(geom.V(0, 0), geom.V(5, 5)), 0)

		// Query box shares only the edge x=5.
		got := maps.Collect(ag.QueryAABB(geom.NewAABB(geom.V(5, 0), geom.V(9, 5))))
		assert.Contains(t, got, h)

		// Strictly beyond the edge.
		got = maps.Collect(ag.QueryAABB(geom.NewAABB(geom.V(5.01, 0), geom.V(9, 5))))
		assert.NotContains(t, got, h)
	})

	t.Run("DegeneratePointBox", func(t *testing.T) {
		ag, _ := NewAABBGrid[int](10)
		h := ag.Insert(geom.AABB{LL: geom.V(3, 3), UR: geom.V(3, 3)}, 0)

		got := maps.Collect(ag.QueryAABB(geom.NewAABB(geom.V(0, 0), geom.V(5, 5))))
		assert.Contains(t, got, h)
	})
}

func TestAABBGridSetAABB(t *testing.T) {
	t.Run("ImmediateRelocation", func(t *testing.T) {
		ag, _ := NewAABBGrid[int](10)
		h := ag.Insert(geom.NewAABB(geom.V(0, 0), geom.V(5, 5)), 0)

		require.NoError(t, ag.SetAABB(h, geom.NewAABB(geom.V(100, 100), geom.V(105, 105))))

		// No Maintain step: old location is empty, new one answers.
		assert.Empty(t, maps.Collect(ag.QueryAABB(geom.NewAABB(geom.V(0, 0), geom.V(10, 10)))))
		got := maps.Collect(ag.QueryAABB(geom.NewAABB(geom.V(95, 95), geom.V(110, 110))))
		require.Contains(t, got, h)
		assert.Equal(t, geom.NewAABB(geom.V(100, 100), geom.V(105, 105)), got[h])
	})

	t.Run("GrowAndShrink", func(t *testing.T) {
		ag, _ := NewAABBGrid[int](10)
		h := ag.Insert(geom.NewAABB(geom.V(0, 0), geom.V(5, 5)), 0)
		before := ag.OccupiedCells()

		require.NoError(t, ag.SetAABB(h, geom.NewAABB(geom.V(0, 0), geom.V(35, 35))))
		assert.Greater(t, ag.OccupiedCells(), before)

		require.NoError(t, ag.SetAABB(h, geom.NewAABB(geom.V(0, 0), geom.V(5, 5))))
		assert.Equal(t, before, ag.OccupiedCells())
	})

	t.Run("InvalidHandle", func(t *testing.T) {
		ag, _ := NewAABBGrid[int](10)
		err := ag.SetAABB(Handle{}, geom.AABB{})
		assert.True(t, IsInvalidHandle(err))
	})
}

func TestAABBGridRemove(t *testing.T) {
	ag, _ := NewAABBGrid[string](10)
	h := ag.Insert(geom.NewAABB(geom.V(5, 5), geom.V(25, 25)), "building")

	v, err := ag.Remove(h)
	require.NoError(t, err)
	assert.Equal(t, "building", v)
	assert.Equal(t, 0, ag.Len())
	assert.Equal(t, 0, ag.OccupiedCells())

	_, err = ag.Remove(h)
	assert.True(t, IsInvalidHandle(err))
	assert.False(t, ag.Contains(h))
}

func TestAABBGridQueryAround(t *testing.T) {
	ag, _ := NewAABBGrid[int](10)
	near := ag.Insert(geom.NewAABB(geom.V(8, 0), geom.V(12, 4)), 0)
	far := ag.Insert(geom.NewAABB(geom.V(50, 50), geom.V(55, 55)), 1)

	got := maps.Collect(ag.QueryAround(geom.V(0, 0), 9))
	assert.Contains(t, got, near)
	assert.NotContains(t, got, far)

	assert.Empty(t, maps.Collect(ag.QueryAround(geom.V(0, 0), -1)))
}

func TestAABBGridAgainstBruteForce(t *testing.T) {
	rng := testutil.NewRNG(1337)
	ag, err := NewAABBGrid[int](20)
	require.NoError(t, err)

	boxes := make([]geom.AABB, 300)
	handles := make(map[Handle]int, len(boxes))
	for i := range boxes {
		boxes[i] = rng.AABBIn(150, 40)
		handles[ag.Insert(boxes[i], i)] = i
	}

	for range 50 {
		q := rng.AABBIn(150, 60)

		var want []int
		for i, b := range boxes {
			if q.Intersects(b) {
				want = append(want, i)
			}
		}

		var got []int
		for h := range ag.QueryAABB(q) {
			got = append(got, handles[h])
		}
		assert.ElementsMatch(t, want, got)
	}
}
