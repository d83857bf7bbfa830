// Package geom provides the small set of 2D primitives the grids work
// with: vectors, axis-aligned boxes, circles and segments.
package geom

// Vec2 is a 2D point or vector.
type Vec2 struct {
	X float32
	Y float32
}

// V is shorthand for Vec2{X: x, Y: y}.
func V(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float32 {
	return v.X*o.X + v.Y*o.Y
}

// SquaredDistance returns the squared euclidean distance between v and o.
// Comparing squared distances avoids the square root on query hot paths.
func (v Vec2) SquaredDistance(o Vec2) float32 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	return dx*dx + dy*dy
}
