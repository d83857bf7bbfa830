package flatspatial

import (
	"fmt"
	"iter"
	"math"
	"time"

	"github.com/Uriopass/flat-spatial/geom"
	"github.com/Uriopass/flat-spatial/internal/bitmap"
)

type aabbObject[O any] struct {
	box      geom.AABB
	occupied []Cell // every cell the box overlaps, kept in sync eagerly
	obj      O
}

// AABBGrid is a sparse grid of axis-aligned boxes with eager membership
// updates. A box is registered in every cell it overlaps, so there is
// no Maintain step: Insert, SetAABB and Remove leave the index fully
// consistent and queries always observe current extents.
//
// The flip side is that mutations cost one bucket operation per
// overlapped cell. Keep boxes small relative to the cell size, or the
// cell size large, if objects move every frame.
type AABBGrid[O any] struct {
	cellSize float32
	table    *HandleTable[aabbObject[O]]
	cells    *CellIndex[Handle]
	opts     options
}

// NewAABBGrid creates a box grid with the given cell size, which must
// be a finite positive number.
func NewAABBGrid[O any](cellSize float32, optFns ...Option) (*AABBGrid[O], error) {
	if !(cellSize > 0) || math.IsInf(float64(cellSize), 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCellSize, cellSize)
	}
	return &AABBGrid[O]{
		cellSize: cellSize,
		table:    NewHandleTable[aabbObject[O]](),
		cells:    NewCellIndex[Handle](),
		opts:     applyOptions(optFns),
	}, nil
}

// CellSize returns the side length of the grid's cells.
func (ag *AABBGrid[O]) CellSize() float32 { return ag.cellSize }

// Len returns the number of stored objects.
func (ag *AABBGrid[O]) Len() int { return ag.table.Len() }

// OccupiedCells returns the number of cells holding at least one box.
func (ag *AABBGrid[O]) OccupiedCells() int { return ag.cells.Cells() }

func (ag *AABBGrid[O]) occupy(h Handle, box geom.AABB, occupied []Cell) []Cell {
	cellRange(ag.cellSize, box, func(c Cell) bool {
		ag.cells.Add(c, h)
		occupied = append(occupied, c)
		return true
	})
	return occupied
}

// Insert stores obj with extent box and returns its handle. The box is
// registered in every cell it overlaps; a degenerate (point) box still
// occupies exactly one cell.
func (ag *AABBGrid[O]) Insert(box geom.AABB, obj O) Handle {
	start := time.Now()
	h := ag.table.Insert(aabbObject[O]{box: box, obj: obj})
	o, _ := ag.table.Get(h)
	o.occupied = ag.occupy(h, box, o.occupied)
	ag.opts.logger.LogInsert(h, len(o.occupied))
	ag.opts.metricsCollector.RecordInsert(time.Since(start))
	return h
}

// Remove deletes the object behind h from the store and from every cell
// its box occupied.
func (ag *AABBGrid[O]) Remove(h Handle) (O, error) {
	start := time.Now()
	o, ok := ag.table.Get(h)
	if !ok {
		var zero O
		err := &InvalidHandleError{Handle: h}
		ag.opts.logger.LogRemove(h, err)
		ag.opts.metricsCollector.RecordRemove(time.Since(start), err)
		return zero, err
	}
	for _, c := range o.occupied {
		ag.cells.Remove(c, h)
	}
	v, _ := ag.table.Remove(h)
	ag.opts.logger.LogRemove(h, nil)
	ag.opts.metricsCollector.RecordRemove(time.Since(start), nil)
	return v.obj, nil
}

// SetAABB replaces the extent of h. Membership is updated immediately:
// the box leaves every cell it no longer overlaps and enters every new
// one before SetAABB returns.
func (ag *AABBGrid[O]) SetAABB(h Handle, box geom.AABB) error {
	start := time.Now()
	o, ok := ag.table.Get(h)
	if !ok {
		err := &InvalidHandleError{Handle: h}
		ag.opts.metricsCollector.RecordUpdate(time.Since(start), err)
		return err
	}
	for _, c := range o.occupied {
		ag.cells.Remove(c, h)
	}
	o.occupied = ag.occupy(h, box, o.occupied[:0])
	o.box = box
	ag.opts.metricsCollector.RecordUpdate(time.Since(start), nil)
	return nil
}

// Get returns the extent and object behind h.
func (ag *AABBGrid[O]) Get(h Handle) (geom.AABB, O, error) {
	o, ok := ag.table.Get(h)
	if !ok {
		var zero O
		return geom.AABB{}, zero, &InvalidHandleError{Handle: h}
	}
	return o.box, o.obj, nil
}

// GetMut returns a mutable pointer to the object behind h. The pointer
// is invalidated by the next Insert.
func (ag *AABBGrid[O]) GetMut(h Handle) (*O, error) {
	o, ok := ag.table.Get(h)
	if !ok {
		return nil, &InvalidHandleError{Handle: h}
	}
	return &o.obj, nil
}

// Contains reports whether h refers to a live object.
func (ag *AABBGrid[O]) Contains(h Handle) bool {
	_, ok := ag.table.Get(h)
	return ok
}

// QueryAABB streams every stored box intersecting q, touching edges
// included. A box spanning several scanned cells is yielded exactly
// once.
func (ag *AABBGrid[O]) QueryAABB(q geom.AABB) iter.Seq2[Handle, geom.AABB] {
	return func(yield func(Handle, geom.AABB) bool) {
		start := time.Now()
		n := 0
		defer func() {
			ag.opts.logger.LogQuery("aabb", n)
			ag.opts.metricsCollector.RecordQuery("aabb", n, time.Since(start))
		}()
		seen := bitmap.Get()
		defer bitmap.Put(seen)
		cellRange(ag.cellSize, q, func(c Cell) bool {
			for _, h := range ag.cells.Bucket(c) {
				if !seen.CheckedAdd(h.slot) {
					continue
				}
				o, ok := ag.table.Get(h)
				if !ok {
					continue
				}
				if q.Intersects(o.box) {
					n++
					if !yield(h, o.box) {
						return false
					}
				}
			}
			return true
		})
	}
}

// QueryAround streams every stored box within radius of center, using
// an exact circle/box test. Boxes touching the circle boundary are
// included; a negative radius yields nothing.
func (ag *AABBGrid[O]) QueryAround(center geom.Vec2, radius float32) iter.Seq2[Handle, geom.AABB] {
	return func(yield func(Handle, geom.AABB) bool) {
		start := time.Now()
		n := 0
		defer func() {
			ag.opts.logger.LogQuery("around", n)
			ag.opts.metricsCollector.RecordQuery("around", n, time.Since(start))
		}()
		if radius < 0 {
			return
		}
		circle := geom.Circle{Center: center, Radius: radius}
		seen := bitmap.Get()
		defer bitmap.Put(seen)
		cellRange(ag.cellSize, circle.Bounds(), func(c Cell) bool {
			for _, h := range ag.cells.Bucket(c) {
				if !seen.CheckedAdd(h.slot) {
					continue
				}
				o, ok := ag.table.Get(h)
				if !ok {
					continue
				}
				if circle.IntersectsAABB(o.box) {
					n++
					if !yield(h, o.box) {
						return false
					}
				}
			}
			return true
		})
	}
}

// All iterates every stored object with its extent, in ascending slot
// order.
func (ag *AABBGrid[O]) All() iter.Seq2[Handle, geom.AABB] {
	return func(yield func(Handle, geom.AABB) bool) {
		for h, o := range ag.table.All() {
			if !yield(h, o.box) {
				return
			}
		}
	}
}
