package blobstore

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopy(t *testing.T) {
	ctx := context.Background()
	src := NewMemoryStore()
	dst := NewMemoryStore()

	require.NoError(t, Put(ctx, src, "snap/001", []byte("one")))
	require.NoError(t, Copy(ctx, src, dst, "snap/001"))

	data, err := ReadAll(ctx, dst, "snap/001")
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), data)
}

func TestCopyMissingSource(t *testing.T) {
	ctx := context.Background()
	err := Copy(ctx, NewMemoryStore(), NewMemoryStore(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCopyAll(t *testing.T) {
	ctx := context.Background()
	src := NewMemoryStore()
	dst := NewMemoryStore()

	var want []string
	for i := range 20 {
		name := fmt.Sprintf("snap/%03d", i)
		require.NoError(t, Put(ctx, src, name, []byte(name)))
		want = append(want, name)
	}
	require.NoError(t, Put(ctx, src, "other/blob", []byte("skip")))

	require.NoError(t, CopyAll(ctx, src, dst, "snap/", 4))

	names, err := dst.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, want, names)

	for _, name := range want {
		data, err := ReadAll(ctx, dst, name)
		require.NoError(t, err)
		assert.Equal(t, []byte(name), data)
	}
}

func TestCopyAllThrottledDestination(t *testing.T) {
	ctx := context.Background()
	src := NewMemoryStore()
	dst := NewThrottledStore(NewMemoryStore(), 2, 0)

	for i := range 8 {
		require.NoError(t, Put(ctx, src, fmt.Sprintf("s/%d", i), []byte("x")))
	}

	require.NoError(t, CopyAll(ctx, src, dst, "s/", 4))

	names, err := dst.List(ctx, "s/")
	require.NoError(t, err)
	assert.Len(t, names, 8)
}
