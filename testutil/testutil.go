package testutil

import (
	"math/rand"
	"sync"

	"github.com/Uriopass/flat-spatial/geom"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float32 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float32() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float32()
}

// Vec2In returns a pseudo-random point in [-extent, extent) on both axes.
func (r *RNG) Vec2In(extent float32) geom.Vec2 {
	return geom.V(
		(r.Float32()*2-1)*extent,
		(r.Float32()*2-1)*extent,
	)
}

// Points returns n pseudo-random points in [-extent, extent)².
func (r *RNG) Points(n int, extent float32) []geom.Vec2 {
	pts := make([]geom.Vec2, n)
	for i := range pts {
		pts[i] = r.Vec2In(extent)
	}
	return pts
}

// AABBIn returns a pseudo-random box with corners in [-extent, extent)²
// and sides no longer than maxSide.
func (r *RNG) AABBIn(extent, maxSide float32) geom.AABB {
	ll := r.Vec2In(extent)
	return geom.NewAABB(ll, ll.Add(geom.V(r.Float32()*maxSide, r.Float32()*maxSide)))
}

// ExactAround is the brute-force ground truth for QueryAround: the
// indices of every point with squared distance to center at most
// radius², in input order.
func ExactAround(points []geom.Vec2, center geom.Vec2, radius float32) []int {
	var hits []int
	r2 := radius * radius
	for i, p := range points {
		if p.SquaredDistance(center) <= r2 {
			hits = append(hits, i)
		}
	}
	return hits
}

// ExactInAABB is the brute-force ground truth for QueryAABB on points:
// the indices of every point inside b, edges included, in input order.
func ExactInAABB(points []geom.Vec2, b geom.AABB) []int {
	var hits []int
	for i, p := range points {
		if b.Contains(p) {
			hits = append(hits, i)
		}
	}
	return hits
}
