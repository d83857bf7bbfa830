// Package bitmap wraps a 32-bit roaring bitmap for slot tracking.
//
// The grids use it for the dirty-slot set of the lazy point grid and for
// deduplicating handles during multi-cell queries.
package bitmap

import (
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
)

// Bitmap is a set of uint32 slot indices.
type Bitmap struct {
	rb *roaring.Bitmap
}

// pool reuses bitmaps on query hot paths to avoid re-allocating
// containers for every multi-cell query.
var pool = sync.Pool{
	New: func() any {
		return &Bitmap{rb: roaring.New()}
	},
}

// New creates a new empty bitmap.
func New() *Bitmap {
	return &Bitmap{rb: roaring.New()}
}

// Get fetches a cleared bitmap from the pool. Call Put when done.
func Get() *Bitmap {
	b := pool.Get().(*Bitmap)
	b.rb.Clear()
	return b
}

// Put returns a bitmap to the pool.
func Put(b *Bitmap) {
	if b == nil {
		return
	}
	// Clear before pooling to release container memory.
	b.rb.Clear()
	pool.Put(b)
}

// Add inserts a slot index.
func (b *Bitmap) Add(i uint32) {
	b.rb.Add(i)
}

// CheckedAdd inserts a slot index and reports whether it was absent.
func (b *Bitmap) CheckedAdd(i uint32) bool {
	return b.rb.CheckedAdd(i)
}

// Remove deletes a slot index.
func (b *Bitmap) Remove(i uint32) {
	b.rb.Remove(i)
}

// Contains reports whether the slot index is present.
func (b *Bitmap) Contains(i uint32) bool {
	return b.rb.Contains(i)
}

// Clear empties the bitmap.
func (b *Bitmap) Clear() {
	b.rb.Clear()
}

// IsEmpty reports whether the bitmap holds no indices.
func (b *Bitmap) IsEmpty() bool {
	return b.rb.IsEmpty()
}

// Cardinality returns the number of indices present.
func (b *Bitmap) Cardinality() uint64 {
	return b.rb.GetCardinality()
}

// ForEach calls fn for every index in ascending order until fn returns
// false.
func (b *Bitmap) ForEach(fn func(i uint32) bool) {
	it := b.rb.Iterator()
	for it.HasNext() {
		if !fn(it.Next()) {
			return
		}
	}
}

// ToBytes serializes the bitmap in the portable roaring format.
func (b *Bitmap) ToBytes() ([]byte, error) {
	return b.rb.ToBytes()
}

// FromBytes deserializes a bitmap written by ToBytes.
func FromBytes(data []byte) (*Bitmap, error) {
	rb := roaring.New()
	if err := rb.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return &Bitmap{rb: rb}, nil
}
