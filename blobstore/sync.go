package blobstore

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"
)

// Copy copies one blob from src to dst under the same name.
func Copy(ctx context.Context, src, dst BlobStore, name string) error {
	r, err := src.Open(ctx, name)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer r.Close()

	w, err := dst.Create(ctx, name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		_ = dst.Delete(ctx, name)
		return fmt.Errorf("copy %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		_ = dst.Delete(ctx, name)
		return fmt.Errorf("close %s: %w", name, err)
	}
	return nil
}

// CopyAll mirrors every blob under prefix from src to dst, transferring
// up to concurrency blobs in parallel (minimum 1). The first failure
// cancels the remaining transfers. Useful for replicating snapshot
// directories between a local store and an object store.
func CopyAll(ctx context.Context, src, dst BlobStore, prefix string, concurrency int) error {
	names, err := src.List(ctx, prefix)
	if err != nil {
		return err
	}
	if concurrency <= 0 {
		concurrency = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, name := range names {
		g.Go(func() error {
			return Copy(ctx, src, dst, name)
		})
	}
	return g.Wait()
}
