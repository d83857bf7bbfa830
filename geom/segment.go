package geom

// Segment is a line segment between two points.
type Segment struct {
	Src Vec2
	Dst Vec2
}

// Project returns the point of the segment closest to p.
func (s Segment) Project(p Vec2) Vec2 {
	diff := s.Dst.Sub(s.Src)
	proj1 := p.Sub(s.Src).Dot(diff)
	proj2 := -p.Sub(s.Dst).Dot(diff)

	if proj1 <= 0 {
		return s.Src
	}
	if proj2 <= 0 {
		return s.Dst
	}
	t := proj1 / diff.Dot(diff)
	return Vec2{X: s.Src.X + diff.X*t, Y: s.Src.Y + diff.Y*t}
}

// SquaredDistanceTo returns the squared distance from p to the segment.
func (s Segment) SquaredDistanceTo(p Vec2) float32 {
	return s.Project(p).SquaredDistance(p)
}

// Bounds implements Shape.
func (s Segment) Bounds() AABB {
	return NewAABB(s.Src, s.Dst)
}

// IntersectsAABB implements Shape.
func (s Segment) IntersectsAABB(b AABB) bool {
	if b.Contains(s.Src) || b.Contains(s.Dst) {
		return true
	}
	for _, e := range b.Segments() {
		if s.IntersectsSegment(e) {
			return true
		}
	}
	return false
}

// IntersectsSegment reports whether two segments cross or touch.
func (s Segment) IntersectsSegment(o Segment) bool {
	d1 := orient(o.Src, o.Dst, s.Src)
	d2 := orient(o.Src, o.Dst, s.Dst)
	d3 := orient(s.Src, s.Dst, o.Src)
	d4 := orient(s.Src, s.Dst, o.Dst)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	// Collinear touching cases.
	switch {
	case d1 == 0 && onSegment(o.Src, o.Dst, s.Src):
		return true
	case d2 == 0 && onSegment(o.Src, o.Dst, s.Dst):
		return true
	case d3 == 0 && onSegment(s.Src, s.Dst, o.Src):
		return true
	case d4 == 0 && onSegment(s.Src, s.Dst, o.Dst):
		return true
	}
	return false
}

// orient returns the signed area of the triangle (a, b, c): positive for a
// counter-clockwise turn, negative for clockwise, zero for collinear.
func orient(a, b, c Vec2) float32 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// onSegment reports whether collinear point p lies on the segment [a, b].
func onSegment(a, b, p Vec2) bool {
	return p.X >= min(a.X, b.X) && p.X <= max(a.X, b.X) &&
		p.Y >= min(a.Y, b.Y) && p.Y <= max(a.Y, b.Y)
}
