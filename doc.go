// Package flatspatial provides flat (non-hierarchical) spatial
// partitioning structures for movable 2D objects.
//
// Instead of a tree, space is cut into a uniform grid of fixed-size
// cells and membership is kept in a sparse cell -> bucket mapping. This
// makes insert, update and remove O(1) amortized, and query cost
// proportional only to the cells touched.
//
// Two sibling engines share the same substrate:
//
//   - Grid stores points and updates cell membership lazily: SetPosition
//     only marks the object dirty, and a batch Maintain pass reconciles
//     membership. Queries between the two observe the last-maintained
//     positions.
//   - AABBGrid stores axis-aligned boxes and keeps membership eagerly
//     consistent on every mutation, at the cost of touching every cell a
//     box overlaps.
//
// A third variant, ShapeGrid, generalizes the eager protocol to
// arbitrary geom.Shape values with per-cell pruning.
//
// # Quick start
//
//	g, _ := flatspatial.NewGrid[string](10)
//	h := g.Insert(geom.V(3, 3), "car")
//	for h, pos := range g.QueryAround(geom.V(2, 2), 5) {
//	    fmt.Println(h, pos)
//	}
//
//	g.SetPosition(h, geom.V(100, 100)) // lazy: not visible yet
//	g.Maintain()                       // now it is
//
// Handles returned by Insert are generational: once removed they can
// never alias a later object, even when the slot is reused.
//
// All structures are single-threaded by design; callers needing
// concurrent access must provide external mutual exclusion. The target
// use case is one update/query pass per frame in a host loop.
package flatspatial
