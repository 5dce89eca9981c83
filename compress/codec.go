package compress

import (
	"fmt"

	"github.com/arloliu/ogg/errs"
	"github.com/arloliu/ogg/format"
)

// MaxDecompressedSize bounds the output of Decompress. Ogg imposes no packet
// size limit, but a decompressed packet above this size is treated as
// corrupt input.
const MaxDecompressedSize = 64 * 1024 * 1024

// Compressor compresses one packet payload.
//
// The returned slice is owned by the caller, except for NoOpCompressor which
// returns its input. The input is never modified.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor.
//
// Decompress returns an error when data is corrupted or was produced by a
// different algorithm. Implementations are safe for concurrent use.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionStats accumulates payload sizes before and after compression.
type CompressionStats struct {
	// Algorithm identifies the compression algorithm used.
	Algorithm format.CompressionType
	// Packets is the number of payloads compressed.
	Packets int64
	// OriginalSize is the total payload size before compression.
	OriginalSize int64
	// CompressedSize is the total payload size after compression.
	CompressedSize int64
}

// Add records one compressed payload.
func (s *CompressionStats) Add(original, compressed int) {
	s.Packets++
	s.OriginalSize += int64(original)
	s.CompressedSize += int64(compressed)
}

// CompressionRatio returns compressed size / original size, 0 when nothing
// was recorded. Values below 1.0 mean the codec saved space.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space saved as a percentage.
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// CreateCodec creates a new Codec for compressionType.
//
// Parameters:
//   - compressionType: Type of compression (None, Zstd, S2, or LZ4)
//   - target: Description of target usage (for error messages)
//
// Returns:
//   - Codec: codec instance for the specified type
//   - error: errs.ErrInvalidCompression for unknown types
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("%w: %s compression %s", errs.ErrInvalidCompression, target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec returns the shared built-in Codec for compressionType.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrInvalidCompression, compressionType)
}
