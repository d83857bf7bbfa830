package blobstore

import (
	"context"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ThrottledStore wraps a BlobStore with a cap on concurrent transfers
// and an optional byte-throughput limit. Use it to keep background
// snapshot uploads from starving the host's foreground IO.
type ThrottledStore struct {
	inner   BlobStore
	sem     *semaphore.Weighted
	limiter *rate.Limiter // nil if unlimited
}

// NewThrottledStore wraps inner. maxConcurrent caps simultaneous open
// transfers (minimum 1); bytesPerSec limits aggregate read+write
// throughput, 0 meaning unlimited.
func NewThrottledStore(inner BlobStore, maxConcurrent int64, bytesPerSec int64) *ThrottledStore {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	s := &ThrottledStore{
		inner: inner,
		sem:   semaphore.NewWeighted(maxConcurrent),
	}
	if bytesPerSec > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(bytesPerSec), int(bytesPerSec))
	}
	return s
}

// Open opens a blob, holding a transfer slot until the blob is closed.
func (s *ThrottledStore) Open(ctx context.Context, name string) (Blob, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	b, err := s.inner.Open(ctx, name)
	if err != nil {
		s.sem.Release(1)
		return nil, err
	}
	return &throttledBlob{Blob: b, store: s, ctx: ctx}, nil
}

// Create creates a blob, holding a transfer slot until it is closed.
func (s *ThrottledStore) Create(ctx context.Context, name string) (WritableBlob, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	w, err := s.inner.Create(ctx, name)
	if err != nil {
		s.sem.Release(1)
		return nil, err
	}
	return &throttledWritableBlob{WritableBlob: w, store: s, ctx: ctx}, nil
}

// Delete removes a blob. Deletes are not throttled.
func (s *ThrottledStore) Delete(ctx context.Context, name string) error {
	return s.inner.Delete(ctx, name)
}

// List returns blob names with the given prefix. Lists are not throttled.
func (s *ThrottledStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

// waitBytes blocks until the limiter allows n more bytes. Bursts larger
// than the limiter's capacity are split.
func (s *ThrottledStore) waitBytes(ctx context.Context, n int) error {
	if s.limiter == nil || n <= 0 {
		return nil
	}
	burst := s.limiter.Burst()
	for n > 0 {
		chunk := n
		if chunk > burst {
			chunk = burst
		}
		if err := s.limiter.WaitN(ctx, chunk); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}

type throttledBlob struct {
	Blob
	store    *ThrottledStore
	ctx      context.Context
	released bool
}

func (b *throttledBlob) Read(p []byte) (int, error) {
	n, err := b.Blob.Read(p)
	if n > 0 {
		if werr := b.store.waitBytes(b.ctx, n); werr != nil {
			return n, werr
		}
	}
	return n, err
}

func (b *throttledBlob) Close() error {
	if !b.released {
		b.released = true
		defer b.store.sem.Release(1)
	}
	return b.Blob.Close()
}

type throttledWritableBlob struct {
	WritableBlob
	store    *ThrottledStore
	ctx      context.Context
	released bool
}

func (w *throttledWritableBlob) Write(p []byte) (int, error) {
	if err := w.store.waitBytes(w.ctx, len(p)); err != nil {
		return 0, err
	}
	return w.WritableBlob.Write(p)
}

func (w *throttledWritableBlob) Close() error {
	if !w.released {
		w.released = true
		defer w.store.sem.Release(1)
	}
	return w.WritableBlob.Close()
}
