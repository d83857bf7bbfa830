package geom

import "encoding/gob"

// Shape is the interface satisfied by every geometry a ShapeGrid can
// store or query with. Bounds is used to find the candidate cell range;
// IntersectsAABB prunes cells the shape does not actually touch.
type Shape interface {
	Bounds() AABB
	IntersectsAABB(b AABB) bool
}

// Point is a Vec2 used as a degenerate Shape.
type Point Vec2

// Bounds implements Shape.
func (p Point) Bounds() AABB {
	v := Vec2(p)
	return AABB{LL: v, UR: v}
}

// IntersectsAABB implements Shape.
func (p Point) IntersectsAABB(b AABB) bool {
	return b.Contains(Vec2(p))
}

// Intersects reports whether two shapes overlap, dispatching on the
// concrete pair. Unknown shape pairs fall back to comparing bounding
// boxes, which over-approximates but never misses an intersection.
func Intersects(a, b Shape) bool {
	switch sa := a.(type) {
	case Point:
		return containsPoint(b, Vec2(sa))
	case Circle:
		switch sb := b.(type) {
		case Point:
			return sa.ContainsPoint(Vec2(sb))
		case Circle:
			return sa.IntersectsCircle(sb)
		case AABB:
			return sa.IntersectsAABB(sb)
		case Segment:
			return sb.SquaredDistanceTo(sa.Center) <= sa.Radius*sa.Radius
		}
	case AABB:
		switch sb := b.(type) {
		case Point:
			return sa.Contains(Vec2(sb))
		case Circle:
			return sb.IntersectsAABB(sa)
		case AABB:
			return sa.Intersects(sb)
		case Segment:
			return sb.IntersectsAABB(sa)
		}
	case Segment:
		switch sb := b.(type) {
		case Point:
			return sa.SquaredDistanceTo(Vec2(sb)) == 0
		case Circle:
			return sa.SquaredDistanceTo(sb.Center) <= sb.Radius*sb.Radius
		case AABB:
			return sa.IntersectsAABB(sb)
		case Segment:
			return sa.IntersectsSegment(sb)
		}
	}
	return a.Bounds().Intersects(b.Bounds())
}

func containsPoint(s Shape, p Vec2) bool {
	switch c := s.(type) {
	case Point:
		return Vec2(c) == p
	case Circle:
		return c.ContainsPoint(p)
	case AABB:
		return c.Contains(p)
	case Segment:
		return c.SquaredDistanceTo(p) == 0
	}
	return s.Bounds().Contains(p)
}

func init() {
	// Shapes travel through gob as Shape interface values in grid
	// snapshots, so the concrete types must be registered up front.
	gob.Register(Point{})
	gob.Register(Circle{})
	gob.Register(AABB{})
	gob.Register(Segment{})
}
