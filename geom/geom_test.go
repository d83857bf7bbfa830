package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec2(t *testing.T) {
	a := V(1, 2)
	b := V(4, 6)

	assert.Equal(t, V(5, 8), a.Add(b))
	assert.Equal(t, V(3, 4), b.Sub(a))
	assert.Equal(t, float32(16), a.Dot(b))
	assert.Equal(t, float32(25), a.SquaredDistance(b))
}

func TestAABB(t *testing.T) {
	t.Run("NewAABBNormalizes", func(t *testing.T) {
		b := NewAABB(V(5, 1), V(2, 8))
		assert.Equal(t, V(2, 1), b.LL)
		assert.Equal(t, V(5, 8), b.UR)
	})

	t.Run("ContainsInclusive", func(t *testing.T) {
		b := NewAABB(V(0, 0), V(10, 10))
		assert.True(t, b.Contains(V(5, 5)))
		assert.True(t, b.Contains(V(0, 0)))
		assert.True(t, b.Contains(V(10, 10)))
		assert.False(t, b.Contains(V(10.01, 5)))
		assert.False(t, b.Contains(V(5, -0.01)))
	})

	t.Run("IntersectsTouching", func(t *testing.T) {
		a := NewAABB(V(0, 0), V(5, 5))
		assert.True(t, a.Intersects(NewAABB(V(5, 0), V(9, 5))))
		assert.True(t, a.Intersects(NewAABB(V(5, 5), V(9, 9))))
		assert.False(t, a.Intersects(NewAABB(V(5.01, 0), V(9, 5))))
		assert.True(t, a.Intersects(NewAABB(V(1, 1), V(2, 2)))) // contained
	})

	t.Run("Segments", func(t *testing.T) {
		b := NewAABB(V(0, 0), V(2, 3))
		segs := b.Segments()
		assert.Len(t, segs, 4)
		for _, s := range segs {
			assert.True(t, b.Contains(s.Src))
			assert.True(t, b.Contains(s.Dst))
		}
	})
}

func TestCircle(t *testing.T) {
	c := Circle{Center: V(0, 0), Radius: 5}

	t.Run("Bounds", func(t *testing.T) {
		assert.Equal(t, V(-5, -5), c.Bounds().LL)
		assert.Equal(t, V(5, 5), c.Bounds().UR)
	})

	t.Run("ContainsPoint", func(t *testing.T) {
		assert.True(t, c.ContainsPoint(V(3, 4))) // on the boundary
		assert.True(t, c.ContainsPoint(V(0, 0)))
		assert.False(t, c.ContainsPoint(V(4, 4)))
	})

	t.Run("IntersectsAABB", func(t *testing.T) {
		assert.True(t, c.IntersectsAABB(NewAABB(V(-1, -1), V(1, 1))))   // center inside
		assert.True(t, c.IntersectsAABB(NewAABB(V(4, -1), V(10, 1))))   // edge within radius
		assert.False(t, c.IntersectsAABB(NewAABB(V(10, 10), V(12, 12))))
	})

	t.Run("IntersectsCircle", func(t *testing.T) {
		assert.True(t, c.IntersectsCircle(Circle{Center: V(8, 0), Radius: 3}))  // touching
		assert.False(t, c.IntersectsCircle(Circle{Center: V(9, 0), Radius: 3}))
	})
}

func TestSegment(t *testing.T) {
	s := Segment{Src: V(0, 0), Dst: V(10, 0)}

	t.Run("Project", func(t *testing.T) {
		assert.Equal(t, V(5, 0), s.Project(V(5, 3)))
		assert.Equal(t, V(0, 0), s.Project(V(-4, 2)))  // clamped to Src
		assert.Equal(t, V(10, 0), s.Project(V(14, 2))) // clamped to Dst
	})

	t.Run("SquaredDistanceTo", func(t *testing.T) {
		assert.Equal(t, float32(9), s.SquaredDistanceTo(V(5, 3)))
		assert.Equal(t, float32(0), s.SquaredDistanceTo(V(5, 0)))
	})

	t.Run("IntersectsSegment", func(t *testing.T) {
		assert.True(t, s.IntersectsSegment(Segment{Src: V(5, -1), Dst: V(5, 1)}))
		assert.False(t, s.IntersectsSegment(Segment{Src: V(5, 1), Dst: V(5, 3)}))
		// Touching at an endpoint counts.
		assert.True(t, s.IntersectsSegment(Segment{Src: V(10, 0), Dst: V(12, 2)}))
	})

	t.Run("IntersectsAABB", func(t *testing.T) {
		assert.True(t, s.IntersectsAABB(NewAABB(V(4, -1), V(6, 1))))   // crosses
		assert.True(t, s.IntersectsAABB(NewAABB(V(-1, -1), V(11, 1)))) // contained
		assert.False(t, s.IntersectsAABB(NewAABB(V(4, 1), V(6, 2))))
	})
}

func TestIntersects(t *testing.T) {
	t.Run("PointInCircle", func(t *testing.T) {
		assert.True(t, Intersects(Point(V(3, 4)), Circle{Center: V(0, 0), Radius: 5}))
		assert.False(t, Intersects(Point(V(4, 4)), Circle{Center: V(0, 0), Radius: 5}))
	})

	t.Run("CircleSegment", func(t *testing.T) {
		c := Circle{Center: V(5, 3), Radius: 3}
		assert.True(t, Intersects(c, Segment{Src: V(0, 0), Dst: V(10, 0)}))
		assert.True(t, Intersects(Segment{Src: V(0, 0), Dst: V(10, 0)}, c))
		far := Circle{Center: V(5, 10), Radius: 3}
		assert.False(t, Intersects(far, Segment{Src: V(0, 0), Dst: V(10, 0)}))
	})

	t.Run("SymmetricPairs", func(t *testing.T) {
		b := NewAABB(V(0, 0), V(4, 4))
		c := Circle{Center: V(6, 2), Radius: 2.5}
		assert.Equal(t, Intersects(b, c), Intersects(c, b))

		s := Segment{Src: V(-1, 2), Dst: V(5, 2)}
		assert.Equal(t, Intersects(b, s), Intersects(s, b))
	})
}
