// Package snapshot persists grids to files or blob stores.
//
// A snapshot is a small binary envelope: a fixed header (magic,
// version, compression, sizes, CRC32 of the stored payload) followed by
// the gob encoding of the grid, optionally LZ4- or zstd-compressed.
// Corrupt or truncated snapshots fail on load with a checksum or size
// error rather than producing a half-restored grid.
package snapshot
