package flatspatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleTable(t *testing.T) {
	t.Run("InsertGet", func(t *testing.T) {
		tb := NewHandleTable[string]()

		h := tb.Insert("car")
		assert.True(t, h.Valid())
		assert.Equal(t, uint32(0), h.Slot())
		assert.Equal(t, uint32(1), h.Gen())

		v, ok := tb.Get(h)
		require.True(t, ok)
		assert.Equal(t, "car", *v)
		assert.Equal(t, 1, tb.Len())
	})

	t.Run("ZeroHandleInvalid", func(t *testing.T) {
		tb := NewHandleTable[string]()
		tb.Insert("car")

		_, ok := tb.Get(Handle{})
		assert.False(t, ok)
		assert.False(t, Handle{}.Valid())
	})

	t.Run("RemoveInvalidatesAllCopies", func(t *testing.T) {
		tb := NewHandleTable[string]()
		h := tb.Insert("car")
		cp := h

		v, ok := tb.Remove(h)
		require.True(t, ok)
		assert.Equal(t, "car", v)
		assert.Equal(t, 0, tb.Len())

		_, ok = tb.Get(h)
		assert.False(t, ok)
		_, ok = tb.Get(cp)
		assert.False(t, ok)
		_, ok = tb.Remove(cp)
		assert.False(t, ok)
	})

	t.Run("SlotReuseBumpsGeneration", func(t *testing.T) {
		tb := NewHandleTable[string]()
		old := tb.Insert("car")
		_, ok := tb.Remove(old)
		require.True(t, ok)

		h := tb.Insert("truck")
		assert.Equal(t, old.Slot(), h.Slot())
		assert.NotEqual(t, old.Gen(), h.Gen())

		// The stale handle must not observe the new occupant.
		_, ok = tb.Get(old)
		assert.False(t, ok)
		v, ok := tb.Get(h)
		require.True(t, ok)
		assert.Equal(t, "truck", *v)
	})

	t.Run("LowestSlotReusedFirst", func(t *testing.T) {
		tb := NewHandleTable[int]()
		h0 := tb.Insert(0)
		h1 := tb.Insert(1)
		h2 := tb.Insert(2)

		_, _ = tb.Remove(h2)
		_, _ = tb.Remove(h0)
		_, _ = tb.Remove(h1)

		assert.Equal(t, uint32(0), tb.Insert(10).Slot())
		assert.Equal(t, uint32(1), tb.Insert(11).Slot())
		assert.Equal(t, uint32(2), tb.Insert(12).Slot())
	})

	t.Run("AtSlot", func(t *testing.T) {
		tb := NewHandleTable[string]()
		h := tb.Insert("car")

		got, v, ok := tb.AtSlot(h.Slot())
		require.True(t, ok)
		assert.Equal(t, h, got)
		assert.Equal(t, "car", *v)

		_, _, ok = tb.AtSlot(99)
		assert.False(t, ok)

		_, _ = tb.Remove(h)
		_, _, ok = tb.AtSlot(h.Slot())
		assert.False(t, ok)
	})

	t.Run("AllAscendingSlots", func(t *testing.T) {
		tb := NewHandleTable[int]()
		tb.Insert(0)
		h1 := tb.Insert(1)
		tb.Insert(2)
		_, _ = tb.Remove(h1)

		var slots []uint32
		for h := range tb.All() {
			slots = append(slots, h.Slot())
		}
		assert.Equal(t, []uint32{0, 2}, slots)
	})
}
