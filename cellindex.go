package flatspatial

import "iter"

// CellIndex is a sparse mapping from occupied cells to their entries.
// Only occupied cells exist in the map; a bucket is dropped the moment
// its last entry is removed, so memory tracks occupancy rather than the
// extent of the world.
type CellIndex[E comparable] struct {
	buckets map[Cell][]E
}

// NewCellIndex creates an empty index.
func NewCellIndex[E comparable]() *CellIndex[E] {
	return &CellIndex[E]{buckets: make(map[Cell][]E)}
}

// Add appends e to the bucket of c, creating the bucket if needed.
func (ci *CellIndex[E]) Add(c Cell, e E) {
	ci.buckets[c] = append(ci.buckets[c], e)
}

// Remove deletes e from the bucket of c by swapping in the last entry,
// so order inside a bucket is not preserved. It reports whether e was
// present.
func (ci *CellIndex[E]) Remove(c Cell, e E) bool {
	b := ci.buckets[c]
	for i, cur := range b {
		if cur == e {
			b[i] = b[len(b)-1]
			b = b[:len(b)-1]
			if len(b) == 0 {
				delete(ci.buckets, c)
			} else {
				ci.buckets[c] = b
			}
			return true
		}
	}
	return false
}

// Bucket returns the entries of c, nil when the cell is empty. The
// returned slice aliases the index and must not be mutated or retained
// across mutations.
func (ci *CellIndex[E]) Bucket(c Cell) []E {
	return ci.buckets[c]
}

// Cells returns the number of occupied cells.
func (ci *CellIndex[E]) Cells() int {
	return len(ci.buckets)
}

// All iterates occupied cells and their buckets in map order.
func (ci *CellIndex[E]) All() iter.Seq2[Cell, []E] {
	return func(yield func(Cell, []E) bool) {
		for c, b := range ci.buckets {
			if !yield(c, b) {
				return
			}
		}
	}
}
