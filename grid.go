package flatspatial

import (
	"fmt"
	"iter"
	"math"
	"time"

	"github.com/Uriopass/flat-spatial/geom"
	"github.com/Uriopass/flat-spatial/internal/bitmap"
)

// pointEntry is what a point-grid bucket holds: a handle and the
// position it had when its membership was last reconciled. Queries read
// this position, not the authoritative one, so objects moved since the
// last Maintain are observed where they used to be.
type pointEntry struct {
	h   Handle
	pos geom.Vec2
}

type gridObject[O any] struct {
	pos     geom.Vec2 // authoritative, set by Insert/SetPosition
	cellPos geom.Vec2 // position currently reflected in the cell index
	cell    Cell
	obj     O
}

// Grid is a sparse point grid with lazy membership updates. Insert and
// Remove take effect immediately; SetPosition only records the new
// position and marks the object dirty. A Maintain call reconciles every
// dirty object in one batch, which is the intended rhythm for
// simulations that move many objects per frame.
//
// Between SetPosition and Maintain, queries observe the object at its
// last-maintained position.
type Grid[O any] struct {
	cellSize float32
	table    *HandleTable[gridObject[O]]
	cells    *CellIndex[pointEntry]
	dirty    *bitmap.Bitmap
	opts     options
}

// NewGrid creates a point grid with the given cell size. The cell size
// must be a finite positive number; pick it close to the typical query
// radius for the best cells-scanned/entries-scanned trade-off.
func NewGrid[O any](cellSize float32, optFns ...Option) (*Grid[O], error) {
	if !(cellSize > 0) || math.IsInf(float64(cellSize), 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCellSize, cellSize)
	}
	return &Grid[O]{
		cellSize: cellSize,
		table:    NewHandleTable[gridObject[O]](),
		cells:    NewCellIndex[pointEntry](),
		dirty:    bitmap.New(),
		opts:     applyOptions(optFns),
	}, nil
}

// CellSize returns the side length of the grid's cells.
func (g *Grid[O]) CellSize() float32 { return g.cellSize }

// Len returns the number of stored objects.
func (g *Grid[O]) Len() int { return g.table.Len() }

// OccupiedCells returns the number of cells currently holding at least
// one object.
func (g *Grid[O]) OccupiedCells() int { return g.cells.Cells() }

// Insert stores obj at pos and returns its handle. Membership is
// established immediately; no Maintain is needed for the object to be
// visible to queries.
func (g *Grid[O]) Insert(pos geom.Vec2, obj O) Handle {
	start := time.Now()
	c := CellAt(g.cellSize, pos)
	h := g.table.Insert(gridObject[O]{pos: pos, cellPos: pos, cell: c, obj: obj})
	g.cells.Add(c, pointEntry{h: h, pos: pos})
	g.opts.logger.LogInsert(h, 1)
	g.opts.metricsCollector.RecordInsert(time.Since(start))
	return h
}

// Remove deletes the object behind h immediately, from both the store
// and its cell. The handle and all copies of it go stale.
func (g *Grid[O]) Remove(h Handle) (O, error) {
	start := time.Now()
	o, ok := g.table.Get(h)
	if !ok {
		var zero O
		err := &InvalidHandleError{Handle: h}
		g.opts.logger.LogRemove(h, err)
		g.opts.metricsCollector.RecordRemove(time.Since(start), err)
		return zero, err
	}
	g.cells.Remove(o.cell, pointEntry{h: h, pos: o.cellPos})
	g.dirty.Remove(h.slot)
	v, _ := g.table.Remove(h)
	g.opts.logger.LogRemove(h, nil)
	g.opts.metricsCollector.RecordRemove(time.Since(start), nil)
	return v.obj, nil
}

// SetPosition records a new authoritative position for h and marks it
// dirty. Cell membership is not touched until the next Maintain, so
// queries keep observing the old position until then. Setting the same
// position twice is harmless.
func (g *Grid[O]) SetPosition(h Handle, pos geom.Vec2) error {
	start := time.Now()
	o, ok := g.table.Get(h)
	if !ok {
		err := &InvalidHandleError{Handle: h}
		g.opts.metricsCollector.RecordUpdate(time.Since(start), err)
		return err
	}
	o.pos = pos
	g.dirty.Add(h.slot)
	g.opts.metricsCollector.RecordUpdate(time.Since(start), nil)
	return nil
}

// Get returns the authoritative position and object behind h. The
// position reflects the latest SetPosition even before Maintain.
func (g *Grid[O]) Get(h Handle) (geom.Vec2, O, error) {
	o, ok := g.table.Get(h)
	if !ok {
		var zero O
		return geom.Vec2{}, zero, &InvalidHandleError{Handle: h}
	}
	return o.pos, o.obj, nil
}

// GetMut returns a mutable pointer to the object behind h. The pointer
// is invalidated by the next Insert.
func (g *Grid[O]) GetMut(h Handle) (*O, error) {
	o, ok := g.table.Get(h)
	if !ok {
		return nil, &InvalidHandleError{Handle: h}
	}
	return &o.obj, nil
}

// Contains reports whether h refers to a live object.
func (g *Grid[O]) Contains(h Handle) bool {
	_, ok := g.table.Get(h)
	return ok
}

// Maintain reconciles every dirty object: each one is removed from the
// cell of its last-maintained position and re-added under its current
// one, after which queries observe the up-to-date positions. Objects in
// the same cell before and after still get their bucket entry
// refreshed. Returns the number of objects reconciled.
//
// Maintain on a clean grid is a no-op.
func (g *Grid[O]) Maintain() int {
	start := time.Now()
	reconciled := 0
	relocated := 0
	g.dirty.ForEach(func(slot uint32) bool {
		h, o, ok := g.table.AtSlot(slot)
		if !ok {
			return true
		}
		newCell := CellAt(g.cellSize, o.pos)
		g.cells.Remove(o.cell, pointEntry{h: h, pos: o.cellPos})
		g.cells.Add(newCell, pointEntry{h: h, pos: o.pos})
		if newCell != o.cell {
			relocated++
		}
		o.cell = newCell
		o.cellPos = o.pos
		reconciled++
		return true
	})
	g.dirty.Clear()
	g.opts.logger.LogMaintain(reconciled, relocated)
	g.opts.metricsCollector.RecordMaintain(reconciled, time.Since(start))
	return reconciled
}

// QueryAround streams every object within radius of center, measured
// with an exact squared-distance test against last-maintained
// positions. Objects exactly on the boundary are included, so a
// zero-radius query finds objects coincident with center. A negative
// radius yields nothing.
//
// Results come in cell-scan order, which is not distance order.
func (g *Grid[O]) QueryAround(center geom.Vec2, radius float32) iter.Seq2[Handle, geom.Vec2] {
	return func(yield func(Handle, geom.Vec2) bool) {
		start := time.Now()
		n := 0
		defer func() {
			g.opts.logger.LogQuery("around", n)
			g.opts.metricsCollector.RecordQuery("around", n, time.Since(start))
		}()
		if radius < 0 {
			return
		}
		r2 := radius * radius
		r := geom.V(radius, radius)
		bounds := geom.AABB{LL: center.Sub(r), UR: center.Add(r)}
		cellRange(g.cellSize, bounds, func(c Cell) bool {
			for _, e := range g.cells.Bucket(c) {
				if e.pos.SquaredDistance(center) <= r2 {
					n++
					if !yield(e.h, e.pos) {
						return false
					}
				}
			}
			return true
		})
	}
}

// QueryAABB streams every object whose last-maintained position lies
// inside b, edges included. Points never span cells, so no
// deduplication is needed.
func (g *Grid[O]) QueryAABB(b geom.AABB) iter.Seq2[Handle, geom.Vec2] {
	return func(yield func(Handle, geom.Vec2) bool) {
		start := time.Now()
		n := 0
		defer func() {
			g.opts.logger.LogQuery("aabb", n)
			g.opts.metricsCollector.RecordQuery("aabb", n, time.Since(start))
		}()
		cellRange(g.cellSize, b, func(c Cell) bool {
			for _, e := range g.cells.Bucket(c) {
				if b.Contains(e.pos) {
					n++
					if !yield(e.h, e.pos) {
						return false
					}
				}
			}
			return true
		})
	}
}

// All iterates every stored object with its authoritative position, in
// ascending slot order.
func (g *Grid[O]) All() iter.Seq2[Handle, geom.Vec2] {
	return func(yield func(Handle, geom.Vec2) bool) {
		for h, o := range g.table.All() {
			if !yield(h, o.pos) {
				return
			}
		}
	}
}
