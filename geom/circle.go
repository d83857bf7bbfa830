package geom

// Circle is a disk described by its center and radius.
type Circle struct {
	Center Vec2
	Radius float32
}

// Bounds implements Shape.
func (c Circle) Bounds() AABB {
	r := c.Radius
	return AABB{
		LL: Vec2{X: c.Center.X - r, Y: c.Center.Y - r},
		UR: Vec2{X: c.Center.X + r, Y: c.Center.Y + r},
	}
}

// IntersectsAABB implements Shape. The disk touches the box if the box
// contains its center or one of the box edges passes within the radius.
func (c Circle) IntersectsAABB(b AABB) bool {
	if b.Contains(c.Center) {
		return true
	}
	r2 := c.Radius * c.Radius
	for _, s := range b.Segments() {
		p := s.Project(c.Center).Sub(c.Center)
		if p.Dot(p) <= r2 {
			return true
		}
	}
	return false
}

// IntersectsCircle reports whether two disks overlap.
func (c Circle) IntersectsCircle(o Circle) bool {
	rr := c.Radius + o.Radius
	return c.Center.SquaredDistance(o.Center) <= rr*rr
}

// ContainsPoint reports whether p lies inside the disk, border included.
func (c Circle) ContainsPoint(p Vec2) bool {
	return c.Center.SquaredDistance(p) <= c.Radius*c.Radius
}
