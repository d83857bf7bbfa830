package flatspatial

import (
	"container/heap"
	"fmt"
	"iter"
)

// Handle is a generational reference to an object stored in a grid. It
// stays valid until the object is removed; after that it can never
// alias another object, even when the underlying slot is reused. The
// zero Handle is never valid.
type Handle struct {
	slot uint32
	gen  uint32
}

// Slot returns the slot index backing the handle.
func (h Handle) Slot() uint32 { return h.slot }

// Gen returns the generation of the handle. Generations start at 1; a
// generation of 0 marks the zero Handle.
func (h Handle) Gen() uint32 { return h.gen }

// Valid reports whether the handle could ever have been issued by a
// table. It does not check liveness; use the table for that.
func (h Handle) Valid() bool { return h.gen != 0 }

func (h Handle) String() string {
	return fmt.Sprintf("%d@%d", h.slot, h.gen)
}

// slotHeap is a min-heap of free slot indices so the lowest-numbered
// free slot is always reused first. This keeps slot indices dense under
// churn, which in turn keeps the dirty bitmap small.
type slotHeap []uint32

func (s slotHeap) Len() int           { return len(s) }
func (s slotHeap) Less(i, j int) bool { return s[i] < s[j] }
func (s slotHeap) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
func (s *slotHeap) Push(x any)        { *s = append(*s, x.(uint32)) }
func (s *slotHeap) Pop() any {
	old := *s
	n := len(old)
	v := old[n-1]
	*s = old[:n-1]
	return v
}

type tableSlot[T any] struct {
	gen  uint32
	live bool
	val  T
}

// HandleTable is a generational slot map: a dense slice of slots plus a
// free list. Insert returns a Handle; Get and Remove reject handles
// whose generation no longer matches the slot.
type HandleTable[T any] struct {
	slots []tableSlot[T]
	free  slotHeap
	live  int
}

// NewHandleTable creates an empty table.
func NewHandleTable[T any]() *HandleTable[T] {
	return &HandleTable[T]{}
}

// Insert stores v and returns a fresh handle for it.
func (t *HandleTable[T]) Insert(v T) Handle {
	if len(t.free) > 0 {
		slot := heap.Pop(&t.free).(uint32)
		s := &t.slots[slot]
		s.live = true
		s.val = v
		t.live++
		return Handle{slot: slot, gen: s.gen}
	}
	slot := uint32(len(t.slots))
	t.slots = append(t.slots, tableSlot[T]{gen: 1, live: true, val: v})
	t.live++
	return Handle{slot: slot, gen: 1}
}

// Get returns a pointer to the value behind h, or false if h is stale
// or unknown. The pointer is invalidated by the next Insert.
func (t *HandleTable[T]) Get(h Handle) (*T, bool) {
	if int(h.slot) >= len(t.slots) {
		return nil, false
	}
	s := &t.slots[h.slot]
	if !s.live || s.gen != h.gen {
		return nil, false
	}
	return &s.val, true
}

// Remove deletes the value behind h and returns it. The slot's
// generation is bumped immediately so h and every copy of it go stale.
func (t *HandleTable[T]) Remove(h Handle) (T, bool) {
	var zero T
	if int(h.slot) >= len(t.slots) {
		return zero, false
	}
	s := &t.slots[h.slot]
	if !s.live || s.gen != h.gen {
		return zero, false
	}
	v := s.val
	s.val = zero
	s.live = false
	s.gen++
	t.live--
	heap.Push(&t.free, h.slot)
	return v, true
}

// AtSlot returns the live entry occupying the given slot, if any,
// together with its current handle.
func (t *HandleTable[T]) AtSlot(slot uint32) (Handle, *T, bool) {
	if int(slot) >= len(t.slots) {
		return Handle{}, nil, false
	}
	s := &t.slots[slot]
	if !s.live {
		return Handle{}, nil, false
	}
	return Handle{slot: slot, gen: s.gen}, &s.val, true
}

// Len returns the number of live entries.
func (t *HandleTable[T]) Len() int { return t.live }

// All iterates live entries in ascending slot order. The yielded
// pointers are invalidated by the next Insert.
func (t *HandleTable[T]) All() iter.Seq2[Handle, *T] {
	return func(yield func(Handle, *T) bool) {
		for i := range t.slots {
			s := &t.slots[i]
			if !s.live {
				continue
			}
			if !yield(Handle{slot: uint32(i), gen: s.gen}, &s.val) {
				return
			}
		}
	}
}
