package compress

// ZstdCompressor provides Zstandard compression of packet payloads.
//
// The implementation is selected at build time: pure Go
// (klauspost/compress/zstd) by default, or cgo libzstd (valyala/gozstd) when
// built with cgo enabled and the gozstd build tag. Both produce standard
// zstd frames and decode each other's output.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a Zstd codec with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
