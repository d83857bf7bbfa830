package flatspatial

import (
	"testing"

	"github.com/Uriopass/flat-spatial/geom"
	"github.com/Uriopass/flat-spatial/testutil"
)

func BenchmarkGridInsert(b *testing.B) {
	rng := testutil.NewRNG(42)
	points := rng.Points(b.N, 1000)
	g, _ := NewGrid[int](20)

	b.ResetTimer()
	for i := 0; b.Loop(); i++ {
		g.Insert(points[i%len(points)], i)
	}
}

func BenchmarkGridMaintain(b *testing.B) {
	rng := testutil.NewRNG(42)
	g, _ := NewGrid[int](20)
	handles := make([]Handle, 10000)
	for i := range handles {
		handles[i] = g.Insert(rng.Vec2In(1000), i)
	}

	b.ResetTimer()
	for b.Loop() {
		for _, h := range handles {
			_ = g.SetPosition(h, rng.Vec2In(1000))
		}
		g.Maintain()
	}
}

func BenchmarkGridQueryAround(b *testing.B) {
	rng := testutil.NewRNG(42)
	g, _ := NewGrid[int](20)
	for i := range 10000 {
		g.Insert(rng.Vec2In(1000), i)
	}
	centers := rng.Points(1024, 1000)

	b.ResetTimer()
	for i := 0; b.Loop(); i++ {
		for range g.QueryAround(centers[i%len(centers)], 50) {
		}
	}
}

func BenchmarkAABBGridQueryAABB(b *testing.B) {
	rng := testutil.NewRNG(42)
	ag, _ := NewAABBGrid[int](20)
	for i := range 10000 {
		ag.Insert(rng.AABBIn(1000, 30), i)
	}
	queries := make([]geom.AABB, 1024)
	for i := range queries {
		queries[i] = rng.AABBIn(1000, 80)
	}

	b.ResetTimer()
	for i := 0; b.Loop(); i++ {
		for range ag.QueryAABB(queries[i%len(queries)]) {
		}
	}
}
