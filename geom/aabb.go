package geom

// AABB is an axis-aligned bounding box described by its lower-left and
// upper-right corners.
type AABB struct {
	// LL is the lower-left corner.
	LL Vec2
	// UR is the upper-right corner.
	UR Vec2
}

// NewAABB builds an AABB from two arbitrary corners, normalizing them so
// that LL <= UR on both axes.
func NewAABB(p1, p2 Vec2) AABB {
	return AABB{
		LL: Vec2{X: min(p1.X, p2.X), Y: min(p1.Y, p2.Y)},
		UR: Vec2{X: max(p1.X, p2.X), Y: max(p1.Y, p2.Y)},
	}
}

// Contains reports whether p lies inside the box, borders included.
func (a AABB) Contains(p Vec2) bool {
	return p.X >= a.LL.X && p.Y >= a.LL.Y && p.X <= a.UR.X && p.Y <= a.UR.Y
}

// Intersects reports whether a and b overlap, borders included.
// Uses the center/extent comparison to stay branch-free per axis.
func (a AABB) Intersects(b AABB) bool {
	x := abs((a.LL.X+a.UR.X)-(b.LL.X+b.UR.X)) <= (a.UR.X - a.LL.X + b.UR.X - b.LL.X)
	y := abs((a.LL.Y+a.UR.Y)-(b.LL.Y+b.UR.Y)) <= (a.UR.Y - a.LL.Y + b.UR.Y - b.LL.Y)
	return x && y
}

// Segments returns the four edges of the box in counter-clockwise order.
func (a AABB) Segments() [4]Segment {
	ul := Vec2{X: a.LL.X, Y: a.UR.Y}
	lr := Vec2{X: a.UR.X, Y: a.LL.Y}
	return [4]Segment{
		{Src: a.LL, Dst: lr},
		{Src: lr, Dst: a.UR},
		{Src: a.UR, Dst: ul},
		{Src: ul, Dst: a.LL},
	}
}

// Bounds implements Shape.
func (a AABB) Bounds() AABB { return a }

// IntersectsAABB implements Shape.
func (a AABB) IntersectsAABB(b AABB) bool { return a.Intersects(b) }

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
