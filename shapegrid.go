package flatspatial

import (
	"fmt"
	"iter"
	"math"
	"time"

	"github.com/Uriopass/flat-spatial/geom"
	"github.com/Uriopass/flat-spatial/internal/bitmap"
)

type shapeObject[O any] struct {
	shape    geom.Shape
	occupied []Cell
	obj      O
}

// ShapeGrid generalizes AABBGrid to arbitrary geom.Shape values. A
// shape is registered only in the cells it actually touches: candidate
// cells come from the shape's bounding box and are pruned with
// IntersectsAABB, so a long diagonal segment does not occupy the whole
// rectangle of its bounds.
//
// Membership is eager, like AABBGrid. Queries run an exact
// shape-versus-shape test on the survivors.
type ShapeGrid[O any] struct {
	cellSize float32
	table    *HandleTable[shapeObject[O]]
	cells    *CellIndex[Handle]
	opts     options
}

// NewShapeGrid creates a shape grid with the given cell size, which
// must be a finite positive number.
func NewShapeGrid[O any](cellSize float32, optFns ...Option) (*ShapeGrid[O], error) {
	if !(cellSize > 0) || math.IsInf(float64(cellSize), 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCellSize, cellSize)
	}
	return &ShapeGrid[O]{
		cellSize: cellSize,
		table:    NewHandleTable[shapeObject[O]](),
		cells:    NewCellIndex[Handle](),
		opts:     applyOptions(optFns),
	}, nil
}

// CellSize returns the side length of the grid's cells.
func (sg *ShapeGrid[O]) CellSize() float32 { return sg.cellSize }

// Len returns the number of stored objects.
func (sg *ShapeGrid[O]) Len() int { return sg.table.Len() }

// OccupiedCells returns the number of cells holding at least one shape.
func (sg *ShapeGrid[O]) OccupiedCells() int { return sg.cells.Cells() }

func (sg *ShapeGrid[O]) occupy(h Handle, shape geom.Shape, occupied []Cell) []Cell {
	cellRange(sg.cellSize, shape.Bounds(), func(c Cell) bool {
		if shape.IntersectsAABB(CellBounds(sg.cellSize, c)) {
			sg.cells.Add(c, h)
			occupied = append(occupied, c)
		}
		return true
	})
	return occupied
}

// Insert stores obj with the given shape and returns its handle.
func (sg *ShapeGrid[O]) Insert(shape geom.Shape, obj O) Handle {
	start := time.Now()
	h := sg.table.Insert(shapeObject[O]{shape: shape, obj: obj})
	o, _ := sg.table.Get(h)
	o.occupied = sg.occupy(h, shape, o.occupied)
	sg.opts.logger.LogInsert(h, len(o.occupied))
	sg.opts.metricsCollector.RecordInsert(time.Since(start))
	return h
}

// Remove deletes the object behind h from the store and from every cell
// its shape occupied.
func (sg *ShapeGrid[O]) Remove(h Handle) (O, error) {
	start := time.Now()
	o, ok := sg.table.Get(h)
	if !ok {
		var zero O
		err := &InvalidHandleError{Handle: h}
		sg.opts.logger.LogRemove(h, err)
		sg.opts.metricsCollector.RecordRemove(time.Since(start), err)
		return zero, err
	}
	for _, c := range o.occupied {
		sg.cells.Remove(c, h)
	}
	v, _ := sg.table.Remove(h)
	sg.opts.logger.LogRemove(h, nil)
	sg.opts.metricsCollector.RecordRemove(time.Since(start), nil)
	return v.obj, nil
}

// SetShape replaces the shape of h, updating membership immediately.
func (sg *ShapeGrid[O]) SetShape(h Handle, shape geom.Shape) error {
	start := time.Now()
	o, ok := sg.table.Get(h)
	if !ok {
		err := &InvalidHandleError{Handle: h}
		sg.opts.metricsCollector.RecordUpdate(time.Since(start), err)
		return err
	}
	for _, c := range o.occupied {
		sg.cells.Remove(c, h)
	}
	o.occupied = sg.occupy(h, shape, o.occupied[:0])
	o.shape = shape
	sg.opts.metricsCollector.RecordUpdate(time.Since(start), nil)
	return nil
}

// Get returns the shape and object behind h.
func (sg *ShapeGrid[O]) Get(h Handle) (geom.Shape, O, error) {
	o, ok := sg.table.Get(h)
	if !ok {
		var zero O
		return nil, zero, &InvalidHandleError{Handle: h}
	}
	return o.shape, o.obj, nil
}

// GetMut returns a mutable pointer to the object behind h. The pointer
// is invalidated by the next Insert.
func (sg *ShapeGrid[O]) GetMut(h Handle) (*O, error) {
	o, ok := sg.table.Get(h)
	if !ok {
		return nil, &InvalidHandleError{Handle: h}
	}
	return &o.obj, nil
}

// Contains reports whether h refers to a live object.
func (sg *ShapeGrid[O]) Contains(h Handle) bool {
	_, ok := sg.table.Get(h)
	return ok
}

// Query streams every stored shape intersecting q, each exactly once.
// Candidate cells come from q's bounds and are pruned with q's own
// IntersectsAABB before their buckets are scanned.
func (sg *ShapeGrid[O]) Query(q geom.Shape) iter.Seq2[Handle, geom.Shape] {
	return func(yield func(Handle, geom.Shape) bool) {
		start := time.Now()
		n := 0
		defer func() {
			sg.opts.logger.LogQuery("shape", n)
			sg.opts.metricsCollector.RecordQuery("shape", n, time.Since(start))
		}()
		seen := bitmap.Get()
		defer bitmap.Put(seen)
		cellRange(sg.cellSize, q.Bounds(), func(c Cell) bool {
			if !q.IntersectsAABB(CellBounds(sg.cellSize, c)) {
				return true
			}
			for _, h := range sg.cells.Bucket(c) {
				if !seen.CheckedAdd(h.slot) {
					continue
				}
				o, ok := sg.table.Get(h)
				if !ok {
					continue
				}
				if geom.Intersects(q, o.shape) {
					n++
					if !yield(h, o.shape) {
						return false
					}
				}
			}
			return true
		})
	}
}

// QueryAround streams every stored shape within radius of center.
func (sg *ShapeGrid[O]) QueryAround(center geom.Vec2, radius float32) iter.Seq2[Handle, geom.Shape] {
	if radius < 0 {
		return func(yield func(Handle, geom.Shape) bool) {}
	}
	return sg.Query(geom.Circle{Center: center, Radius: radius})
}

// All iterates every stored object with its shape, in ascending slot
// order.
func (sg *ShapeGrid[O]) All() iter.Seq2[Handle, geom.Shape] {
	return func(yield func(Handle, geom.Shape) bool) {
		for h, o := range sg.table.All() {
			if !yield(h, o.shape) {
				return
			}
		}
	}
}
