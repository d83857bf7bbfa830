package snapshot

import (
	"errors"
	"fmt"
	"hash/crc32"
)

const (
	// MagicNumber identifies grid snapshot files (ASCII: "FSG1").
	MagicNumber = 0x46534731
	// Version is the current snapshot envelope version.
	Version = 0x00010000
)

var (
	ErrInvalidMagic       = errors.New("invalid magic number")
	ErrInvalidVersion     = errors.New("unsupported snapshot version")
	ErrInvalidCompression = errors.New("unknown compression type")
)

// FileHeader is the fixed-size header at the start of every snapshot.
// The checksum is the CRC32 (IEEE) of the stored payload bytes, i.e.
// after compression.
type FileHeader struct {
	Magic            uint32
	Version          uint32
	Compression      uint8
	Padding          [3]byte
	UncompressedSize uint64
	StoredSize       uint64
	Checksum         uint32
	Reserved         [4]byte
}

// checksum computes the CRC32 (IEEE) of data.
//
// CRC32 detects accidental corruption only; it is not tamper-proof.
func checksum(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}

// ChecksumMismatchError is returned when checksum verification fails.
type ChecksumMismatchError struct {
	Expected uint32
	Actual   uint32
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch: expected 0x%08x, got 0x%08x", e.Expected, e.Actual)
}

// IsChecksumMismatch returns true if err is a checksum mismatch error.
func IsChecksumMismatch(err error) bool {
	var cm *ChecksumMismatchError
	return errors.As(err, &cm)
}
