package snapshot

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Uriopass/flat-spatial/blobstore"
)

// Options configures snapshot writing.
type Options struct {
	// Compression selects the payload compression. Defaults to LZ4.
	Compression Compression
}

// DefaultOptions are the options used when none are given.
var DefaultOptions = Options{
	Compression: CompressionLZ4,
}

// Write serializes grid into w as a checksummed snapshot. grid is any
// gob-encodable value; all three grid types implement gob.GobEncoder.
func Write(w io.Writer, grid any, optFns ...func(o *Options)) error {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	var payload bytes.Buffer
	if err := gob.NewEncoder(&payload).Encode(grid); err != nil {
		return fmt.Errorf("encode grid: %w", err)
	}

	stored, compression, err := compress(payload.Bytes(), opts.Compression)
	if err != nil {
		return err
	}

	header := FileHeader{
		Magic:            MagicNumber,
		Version:          Version,
		Compression:      uint8(compression),
		UncompressedSize: uint64(payload.Len()),
		StoredSize:       uint64(len(stored)),
		Checksum:         checksum(stored),
	}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return err
	}
	if _, err := w.Write(stored); err != nil {
		return err
	}
	return nil
}

// Read restores a snapshot written by Write into grid, which must be a
// pointer to the same grid type (with matching object type) that was
// saved.
func Read(r io.Reader, grid any) error {
	var header FileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return err
	}
	if header.Magic != MagicNumber {
		return ErrInvalidMagic
	}
	if header.Version != Version {
		return ErrInvalidVersion
	}

	stored := make([]byte, header.StoredSize)
	if _, err := io.ReadFull(r, stored); err != nil {
		return err
	}
	if actual := checksum(stored); actual != header.Checksum {
		return &ChecksumMismatchError{Expected: header.Checksum, Actual: actual}
	}

	payload, err := decompress(stored, Compression(header.Compression), header.UncompressedSize)
	if err != nil {
		return err
	}

	if err := gob.NewDecoder(bytes.NewReader(payload)).Decode(grid); err != nil {
		return fmt.Errorf("decode grid: %w", err)
	}
	return nil
}

// Save writes a snapshot to path, going through a temp file and rename
// so a crash never leaves a truncated snapshot behind.
func Save(path string, grid any, optFns ...func(o *Options)) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	if err := Write(f, grid, optFns...); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return err
	}
	return os.Rename(f.Name(), path)
}

// Load restores a snapshot from path into grid.
func Load(path string, grid any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Read(f, grid)
}

// SaveToStore writes a snapshot as the named blob in store.
func SaveToStore(ctx context.Context, store blobstore.BlobStore, name string, grid any, optFns ...func(o *Options)) error {
	w, err := store.Create(ctx, name)
	if err != nil {
		return err
	}
	if err := Write(w, grid, optFns...); err != nil {
		_ = w.Close()
		_ = store.Delete(ctx, name)
		return err
	}
	return w.Close()
}

// LoadFromStore restores the named snapshot blob from store into grid.
func LoadFromStore(ctx context.Context, store blobstore.BlobStore, name string, grid any) error {
	b, err := store.Open(ctx, name)
	if err != nil {
		return err
	}
	defer b.Close()
	return Read(b, grid)
}
