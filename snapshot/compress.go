package snapshot

import (
	"errors"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the payload compression algorithm.
type Compression uint8

const (
	// CompressionNone stores the payload uncompressed.
	CompressionNone Compression = 0
	// CompressionLZ4 is fast with a modest ratio, good for frequent
	// autosaves.
	CompressionLZ4 Compression = 1
	// CompressionZSTD trades speed for a better ratio, good for archived
	// snapshots.
	CompressionZSTD Compression = 2
)

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// compress compresses data and returns the stored bytes along with the
// compression actually used. Payloads that don't shrink by at least 10%
// are stored uncompressed so decompression never pays for nothing.
func compress(data []byte, c Compression) ([]byte, Compression, error) {
	if c == CompressionNone || len(data) == 0 {
		return data, CompressionNone, nil
	}

	var compressed []byte
	switch c {
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, 0, err
		}
		if n == 0 {
			// Incompressible
			return data, CompressionNone, nil
		}
		compressed = buf[:n]
	case CompressionZSTD:
		enc := getZstdEncoder()
		defer putZstdEncoder(enc)
		compressed = enc.EncodeAll(data, nil)
	default:
		return nil, 0, ErrInvalidCompression
	}

	if float64(len(compressed)) > float64(len(data))*0.9 {
		return data, CompressionNone, nil
	}
	return compressed, c, nil
}

// decompress reverses compress given the stored bytes, the compression
// recorded in the header and the expected uncompressed size.
func decompress(stored []byte, c Compression, uncompressedSize uint64) ([]byte, error) {
	switch c {
	case CompressionNone:
		return stored, nil
	case CompressionLZ4:
		result := make([]byte, uncompressedSize)
		n, err := lz4.UncompressBlock(stored, result)
		if err != nil {
			return nil, err
		}
		if uint64(n) != uncompressedSize {
			return nil, errors.New("decompressed size mismatch")
		}
		return result, nil
	case CompressionZSTD:
		dec := getZstdDecoder()
		defer putZstdDecoder(dec)
		result, err := dec.DecodeAll(stored, make([]byte, 0, uncompressedSize))
		if err != nil {
			return nil, err
		}
		if uint64(len(result)) != uncompressedSize {
			return nil, errors.New("decompressed size mismatch")
		}
		return result, nil
	default:
		return nil, ErrInvalidCompression
	}
}
